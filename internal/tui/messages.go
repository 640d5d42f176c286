package tui

import "github.com/jspark-dev/cinegrid/internal/domain"

// Message types for the TUI

// ErrMsg represents an error surfaced by an async command
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// MoviesLoadedMsg signals the movie list store finished a fetch
type MoviesLoadedMsg struct{}

// RecommendedLoadedMsg signals the top-recommended list is ready
type RecommendedLoadedMsg struct{}

// MovieLoadedMsg signals a movie detail fetch completed
type MovieLoadedMsg struct {
	MovieID int64
}

// MovieCreatedMsg signals a new movie was registered
type MovieCreatedMsg struct {
	Movie *domain.Movie
}

// RecommendToggledMsg signals the recommendation toggle completed
type RecommendToggledMsg struct {
	MovieID int64
	Result  domain.Recommendation
}

// GridLoadedMsg signals the admin grid finished a fetch
type GridLoadedMsg struct {
	Mode domain.GridMode
}

// ProfileLoadedMsg signals the member profile is ready
type ProfileLoadedMsg struct{}

// LoginResultMsg carries the outcome of a login attempt
type LoginResultMsg struct {
	Identity *domain.Identity
	Err      error
}

// SignupResultMsg carries the outcome of a signup attempt
type SignupResultMsg struct {
	Err error
}

// LoggedOutMsg signals session teardown finished
type LoggedOutMsg struct{}
