package domain

// Route is a navigable destination in the application.
type Route string

const (
	RouteHome          Route = "/"
	RouteLogin         Route = "/login"
	RouteSignup        Route = "/signup"
	RouteProfile       Route = "/profile"
	RouteMovies        Route = "/movies"
	RouteMovieDetail   Route = "/movieDetail"
	RouteInfo          Route = "/info"
	RouteMovieRegister Route = "/movies/register"
	RouteAdmin         Route = "/admin"
)

// PrivilegeTag marks a route as requiring a specific authorization level.
// The zero value means the route is open to everyone.
type PrivilegeTag string

// PrivilegeAdmin gates routes to admin-role sessions.
const PrivilegeAdmin PrivilegeTag = "admin"

// routePrivileges maps protected routes to their required privilege.
// Routes absent from the table carry no privilege tag.
var routePrivileges = map[Route]PrivilegeTag{
	RouteAdmin: PrivilegeAdmin,
}

// RequiredPrivilege returns the privilege tag a route demands, if any.
func (r Route) RequiredPrivilege() (PrivilegeTag, bool) {
	tag, ok := routePrivileges[r]
	return tag, ok
}

// Routes lists every navigable destination, in menu order.
func Routes() []Route {
	return []Route{
		RouteHome,
		RouteLogin,
		RouteSignup,
		RouteProfile,
		RouteMovies,
		RouteMovieDetail,
		RouteInfo,
		RouteMovieRegister,
		RouteAdmin,
	}
}
