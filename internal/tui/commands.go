package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
	"github.com/jspark-dev/cinegrid/internal/state"
)

// commandTimeout bounds every store action issued from the UI loop. The
// transport has its own timeout; this is the outer guard so a view never
// waits forever.
const commandTimeout = 30 * time.Second

func (m *Model) fetchMoviesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.movies.FetchMovies(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading movies"}
		}
		return MoviesLoadedMsg{}
	}
}

func (m *Model) fetchRecommendedCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.movies.FetchRecommended(ctx, m.recommendedLimit); err != nil {
			return ErrMsg{Err: err, Context: "loading recommended movies"}
		}
		return RecommendedLoadedMsg{}
	}
}

func (m *Model) fetchMovieCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.movies.FetchMovie(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "loading movie"}
		}
		return MovieLoadedMsg{MovieID: id}
	}
}

func (m *Model) toggleRecommendCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		rec, err := m.movies.ToggleRecommendation(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "toggling recommendation"}
		}
		return RecommendToggledMsg{MovieID: id, Result: rec}
	}
}

func (m *Model) createMovieCmd(movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		created, err := m.movies.CreateMovie(ctx, movie)
		if err != nil {
			return ErrMsg{Err: err, Context: "registering movie"}
		}
		return MovieCreatedMsg{Movie: created}
	}
}

func (m *Model) setFiltersCmd(patch state.FilterPatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.movies.SetFilters(ctx, patch); err != nil {
			return ErrMsg{Err: err, Context: "applying filters"}
		}
		return MoviesLoadedMsg{}
	}
}

func (m *Model) setPageCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.movies.SetPage(ctx, page); err != nil {
			return ErrMsg{Err: err, Context: "changing page"}
		}
		return MoviesLoadedMsg{}
	}
}

func (m *Model) fetchGridCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.grid.Fetch(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading grid data"}
		}
		return GridLoadedMsg{Mode: m.grid.Mode()}
	}
}

func (m *Model) setGridModeCmd(mode domain.GridMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.grid.SetMode(ctx, mode); err != nil {
			return ErrMsg{Err: err, Context: "switching grid mode"}
		}
		return GridLoadedMsg{Mode: mode}
	}
}

func (m *Model) fetchProfileCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := m.member.FetchProfile(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading profile"}
		}
		return ProfileLoadedMsg{}
	}
}

func (m *Model) loginCmd(id, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		identity, err := m.client.Login(ctx, api.Credentials{ID: id, Password: password})
		return LoginResultMsg{Identity: identity, Err: err}
	}
}

func (m *Model) signupCmd(req api.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return SignupResultMsg{Err: m.client.Signup(ctx, req)}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		// Best-effort backend teardown; local state clears regardless.
		if err := m.client.Logout(ctx); err != nil {
			m.logger.Warn("backend logout failed", "error", err)
		}
		return LoggedOutMsg{}
	}
}
