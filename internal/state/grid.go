package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
)

// GridAPI is the slice of the backend the data grid consumes. *api.Client
// satisfies it.
type GridAPI interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	ListMovies(ctx context.Context, q api.MovieQuery) (api.MoviePage, error)
}

// GridStore is the generalized data grid over members or movies: one
// collection store whose target switches with the mode. The active mode is
// persisted session-scoped so it survives soft restarts but not a fresh
// launch.
type GridStore struct {
	api    GridAPI
	logger *slog.Logger

	rows *Collection[domain.GridRow]

	modeMu sync.Mutex
	mode   domain.GridMode

	kv domain.KVStore // nil disables persistence
}

// NewGridStore creates the grid store, restoring a persisted mode. The
// default mode is members.
func NewGridStore(gridAPI GridAPI, kv domain.KVStore, logger *slog.Logger) *GridStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &GridStore{api: gridAPI, kv: kv, logger: logger, mode: domain.GridModeMembers}

	if kv != nil {
		var mode domain.GridMode
		if kv.GetSession(domain.KeyGridMode, &mode) && mode.Valid() {
			s.mode = mode
		}
	}
	s.rows = NewCollection(s.fetchRows, logger)
	return s
}

// fetchRows loads the collection the current mode targets.
func (s *GridStore) fetchRows(ctx context.Context) ([]domain.GridRow, error) {
	switch s.Mode() {
	case domain.GridModeMovies:
		page, err := s.api.ListMovies(ctx, api.MovieQuery{})
		if err != nil {
			return nil, err
		}
		rows := make([]domain.GridRow, len(page.Movies))
		for i := range page.Movies {
			rows[i] = domain.GridRow{Kind: domain.GridModeMovies, Movie: &page.Movies[i]}
		}
		return rows, nil
	default:
		members, err := s.api.ListMembers(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]domain.GridRow, len(members))
		for i := range members {
			rows[i] = domain.GridRow{Kind: domain.GridModeMembers, Member: &members[i]}
		}
		return rows, nil
	}
}

// Fetch loads the grid rows for the current mode.
func (s *GridStore) Fetch(ctx context.Context) error {
	return s.rows.Fetch(ctx)
}

// Refresh refetches the grid rows.
func (s *GridStore) Refresh(ctx context.Context) error {
	return s.rows.Refresh(ctx)
}

// SetMode switches the grid between members and movies. Unknown modes are
// rejected with a logged diagnostic and no state change. A real change
// clears the rows, discards any in-flight fetch for the old mode, persists
// the new mode, and fetches.
func (s *GridStore) SetMode(ctx context.Context, mode domain.GridMode) error {
	if !mode.Valid() {
		s.logger.Warn("ignoring invalid grid mode", "mode", string(mode))
		return domain.ErrInvalidGridMode
	}

	s.modeMu.Lock()
	if s.mode == mode {
		s.modeMu.Unlock()
		return nil
	}
	s.logger.Debug("grid mode change", "from", string(s.mode), "to", string(mode))
	s.mode = mode
	s.modeMu.Unlock()

	s.rows.invalidate()

	if s.kv != nil {
		if err := s.kv.SetSession(domain.KeyGridMode, mode); err != nil {
			s.logger.Warn("failed to persist grid mode", "error", err)
		}
	}
	return s.rows.Fetch(ctx)
}

// Mode returns the active grid mode.
func (s *GridStore) Mode() domain.GridMode {
	s.modeMu.Lock()
	defer s.modeMu.Unlock()
	return s.mode
}

// ClearError dismisses the last error.
func (s *GridStore) ClearError() { s.rows.ClearError() }

// Rows returns the current grid rows.
func (s *GridStore) Rows() []domain.GridRow { return s.rows.Items() }

// Loading reports whether a grid fetch is in flight.
func (s *GridStore) Loading() bool { return s.rows.Loading() }

// Err returns the last error, or nil.
func (s *GridStore) Err() *domain.ErrorInfo { return s.rows.Err() }

// LastUpdated returns the time of the last successful grid refresh.
func (s *GridStore) LastUpdated() time.Time { return s.rows.LastUpdated() }
