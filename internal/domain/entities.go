package domain

import "time"

// Identity is the authenticated member's id and role, as returned by the
// backend after login.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// RoleAdmin is the only privileged role the backend defines.
const RoleAdmin = "admin"

// IsAdmin reports whether this identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Movie is a catalog entry. RecommendedByCurrentUser reflects the session
// member's own recommendation, not the aggregate count.
type Movie struct {
	ID                       int64     `json:"id"`
	Title                    string    `json:"title"`
	Director                 string    `json:"director"`
	Genre                    string    `json:"genre"`
	ReleaseDate              string    `json:"releaseDate"`
	PosterURL                string    `json:"posterUrl,omitempty"`
	RecommendationCount      int       `json:"recommendationCount"`
	RecommendedByCurrentUser bool      `json:"recommendedByCurrentUser"`
	CreatedAt                time.Time `json:"createdAt"`
}

// Recommendation is the backend's authoritative answer to a recommend
// toggle: the new count and whether the calling member now recommends it.
type Recommendation struct {
	RecommendationCount int  `json:"recommendationCount"`
	Recommended         bool `json:"recommended"`
}

// Member is a site member record as served by the /member endpoints.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Birth string `json:"birth"`
	Role  string `json:"role,omitempty"`
}

// SortField selects the movie list ordering.
type SortField string

const (
	SortByCreatedAt           SortField = "createdAt"
	SortByRecommendationCount SortField = "recommendationCount"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// MovieFilters are the query-side filter and sort options for the movie list.
type MovieFilters struct {
	Search        string
	Genre         string
	SortBy        SortField
	SortDirection SortDirection
}

// DefaultMovieFilters returns the initial filter state: newest first.
func DefaultMovieFilters() MovieFilters {
	return MovieFilters{
		SortBy:        SortByCreatedAt,
		SortDirection: SortDesc,
	}
}

// Pagination tracks the one-based page window over a remote collection.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// DefaultPagination returns the initial page window.
func DefaultPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	return Pagination{
		CurrentPage:  1,
		TotalPages:   1,
		ItemsPerPage: pageSize,
	}
}

// GridMode selects which remote collection the admin data grid shows.
type GridMode string

const (
	GridModeMembers GridMode = "members"
	GridModeMovies  GridMode = "movies"
)

// Valid reports whether the mode is one of the known grid modes.
func (m GridMode) Valid() bool {
	return m == GridModeMembers || m == GridModeMovies
}

// GridRow is one row of the admin data grid. Exactly one of Member or Movie
// is set, matching Kind.
type GridRow struct {
	Kind   GridMode `json:"kind"`
	Member *Member  `json:"member,omitempty"`
	Movie  *Movie   `json:"movie,omitempty"`
}

// Title returns the row's display label.
func (r GridRow) Title() string {
	switch r.Kind {
	case GridModeMembers:
		if r.Member != nil {
			return r.Member.Name
		}
	case GridModeMovies:
		if r.Movie != nil {
			return r.Movie.Title
		}
	}
	return ""
}
