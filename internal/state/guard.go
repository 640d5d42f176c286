package state

import "github.com/jspark-dev/cinegrid/internal/domain"

// RedirectReason explains why the guard denied a transition.
type RedirectReason int

const (
	ReasonNone RedirectReason = iota
	// ReasonLoginRequired: the destination needs a privilege and the
	// session is logged out.
	ReasonLoginRequired
	// ReasonForbidden: logged in, but the role does not satisfy the
	// destination's privilege tag.
	ReasonForbidden
)

// Decision is the guard's verdict on a navigation attempt.
type Decision struct {
	Proceed bool
	Target  domain.Route   // redirect destination when !Proceed
	Reason  RedirectReason // why the redirect happened
	// Intended carries the originally requested route so a login flow can
	// resume there afterwards. Set for ReasonLoginRequired.
	Intended domain.Route
}

// Guard checks route transitions against the session. The check is pure
// and synchronous; session restoration must have completed before the
// first navigation.
type Guard struct {
	session *Session
}

// NewGuard creates a navigation guard over session.
func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Check decides whether the session may enter dest. Unprivileged routes
// always proceed. Privileged routes redirect logged-out sessions to login
// (carrying the intended destination) and non-admin sessions home.
func (g *Guard) Check(dest domain.Route) Decision {
	tag, required := dest.RequiredPrivilege()
	if !required {
		return Decision{Proceed: true}
	}

	if !g.session.Authenticated() {
		return Decision{
			Target:   domain.RouteLogin,
			Reason:   ReasonLoginRequired,
			Intended: dest,
		}
	}

	if tag == domain.PrivilegeAdmin && !g.session.IsAdmin() {
		return Decision{
			Target: domain.RouteHome,
			Reason: ReasonForbidden,
		}
	}

	return Decision{Proceed: true}
}
