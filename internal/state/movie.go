package state

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
)

// MovieAPI is the slice of the catalog backend the movie store consumes.
// *api.Client satisfies it.
type MovieAPI interface {
	ListMovies(ctx context.Context, q api.MovieQuery) (api.MoviePage, error)
	TopRecommended(ctx context.Context, limit int) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id int64) (*domain.Movie, error)
	CreateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error)
	ToggleRecommend(ctx context.Context, id int64, memberID string) (domain.Recommendation, error)
}

// FilterPatch is a partial update of the movie filters; nil fields keep
// their current value.
type FilterPatch struct {
	Search        *string
	Genre         *string
	SortBy        *domain.SortField
	SortDirection *domain.SortDirection
}

// MovieStore is the collection store for the movie catalog, extended with
// filter/sort/pagination state, a top-recommended list, a current movie,
// and the recommendation toggle.
type MovieStore struct {
	api     MovieAPI
	session *Session
	logger  *slog.Logger

	list *Collection[domain.Movie]

	mu          sync.Mutex
	filters     domain.MovieFilters
	pagination  domain.Pagination
	recommended []domain.Movie
	current     *domain.Movie
}

// NewMovieStore creates the movie store. pageSize sets ItemsPerPage.
func NewMovieStore(movieAPI MovieAPI, session *Session, pageSize int, logger *slog.Logger) *MovieStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MovieStore{
		api:        movieAPI,
		session:    session,
		logger:     logger,
		filters:    domain.DefaultMovieFilters(),
		pagination: domain.DefaultPagination(pageSize),
	}
	s.list = NewCollection(s.fetchPage, logger)
	return s
}

// fetchPage is the collection fetcher: one page of the catalog under the
// current filters, with pagination totals folded back in when the backend
// returned a paged envelope.
func (s *MovieStore) fetchPage(ctx context.Context) ([]domain.Movie, error) {
	s.mu.Lock()
	q := api.MovieQuery{
		Page:          s.pagination.CurrentPage,
		Size:          s.pagination.ItemsPerPage,
		Search:        s.filters.Search,
		Genre:         s.filters.Genre,
		SortBy:        s.filters.SortBy,
		SortDirection: s.filters.SortDirection,
	}
	s.mu.Unlock()

	page, err := s.api.ListMovies(ctx, q)
	if err != nil {
		return nil, err
	}

	if page.HasTotals {
		s.mu.Lock()
		s.pagination.TotalItems = page.TotalElements
		s.pagination.TotalPages = page.TotalPages
		if s.pagination.TotalPages < 1 {
			s.pagination.TotalPages = 1
		}
		s.mu.Unlock()
	}
	return page.Movies, nil
}

// FetchMovies loads the movie list for the current filters and page.
func (s *MovieStore) FetchMovies(ctx context.Context) error {
	return s.list.Fetch(ctx)
}

// Refresh refetches the current page.
func (s *MovieStore) Refresh(ctx context.Context) error {
	return s.list.Refresh(ctx)
}

// FetchRecommended loads the top-recommended list, at most limit entries.
func (s *MovieStore) FetchRecommended(ctx context.Context, limit int) error {
	s.list.begin()
	movies, err := s.api.TopRecommended(ctx, limit)
	if err == nil {
		s.mu.Lock()
		s.recommended = movies
		s.mu.Unlock()
	}
	return s.list.finish(err)
}

// FetchMovie loads one movie's detail into Current.
func (s *MovieStore) FetchMovie(ctx context.Context, id int64) error {
	s.list.begin()
	movie, err := s.api.GetMovie(ctx, id)
	if err == nil {
		s.mu.Lock()
		s.current = movie
		s.mu.Unlock()
	}
	return s.list.finish(err)
}

// CreateMovie registers a movie and prepends the stored record to the list.
func (s *MovieStore) CreateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	s.list.begin()
	created, err := s.api.CreateMovie(ctx, movie)
	if err != nil {
		return nil, s.list.finish(err)
	}
	s.list.mutate(func(items []domain.Movie) []domain.Movie {
		return append([]domain.Movie{*created}, items...)
	})
	s.list.finish(nil)
	return created, nil
}

// ToggleRecommendation flips the session member's recommendation on a
// movie. The locally-known flag decides which call to issue; the backend
// toggles either way, so its response is the truth. The movie being absent
// from the local list defaults the guess to "not recommended"; callers
// should trust the returned state, not the guess.
func (s *MovieStore) ToggleRecommendation(ctx context.Context, movieID int64) (domain.Recommendation, error) {
	recommended := false
	for _, m := range s.list.Items() {
		if m.ID == movieID {
			recommended = m.RecommendedByCurrentUser
			break
		}
	}
	if recommended {
		s.logger.Debug("unrecommending movie", "movie", movieID)
	} else {
		s.logger.Debug("recommending movie", "movie", movieID)
	}

	s.list.begin()
	rec, err := s.api.ToggleRecommend(ctx, movieID, s.session.MemberID())
	if err != nil {
		return domain.Recommendation{}, s.list.finish(err)
	}

	s.applyRecommendation(movieID, rec)
	s.list.finish(nil)
	return rec, nil
}

// applyRecommendation patches the movie in the main list, the recommended
// list, and the current movie with the server's authoritative counts, then
// re-sorts the recommended list.
func (s *MovieStore) applyRecommendation(movieID int64, rec domain.Recommendation) {
	patch := func(m *domain.Movie) {
		m.RecommendationCount = rec.RecommendationCount
		m.RecommendedByCurrentUser = rec.Recommended
	}

	s.list.mutate(func(items []domain.Movie) []domain.Movie {
		for i := range items {
			if items[i].ID == movieID {
				patch(&items[i])
				break
			}
		}
		return items
	})

	s.mu.Lock()
	for i := range s.recommended {
		if s.recommended[i].ID == movieID {
			patch(&s.recommended[i])
			break
		}
	}
	sortByRecommendation(s.recommended)
	if s.current != nil && s.current.ID == movieID {
		patch(s.current)
	}
	s.mu.Unlock()
}

// sortByRecommendation orders movies by recommendation count descending,
// ties broken by creation time, most recent first.
func sortByRecommendation(movies []domain.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		if movies[i].RecommendationCount != movies[j].RecommendationCount {
			return movies[i].RecommendationCount > movies[j].RecommendationCount
		}
		return movies[i].CreatedAt.After(movies[j].CreatedAt)
	})
}

// SetFilters shallow-merges patch into the filters, resets to page 1, and
// refetches.
func (s *MovieStore) SetFilters(ctx context.Context, patch FilterPatch) error {
	s.mu.Lock()
	if patch.Search != nil {
		s.filters.Search = *patch.Search
	}
	if patch.Genre != nil {
		s.filters.Genre = *patch.Genre
	}
	if patch.SortBy != nil {
		s.filters.SortBy = *patch.SortBy
	}
	if patch.SortDirection != nil {
		s.filters.SortDirection = *patch.SortDirection
	}
	s.pagination.CurrentPage = 1
	s.mu.Unlock()

	// An in-flight fetch carries the old parameters; joining it would
	// return the wrong page. Detach it so a fresh request goes out.
	s.list.detach()
	return s.FetchMovies(ctx)
}

// SetPage moves to page and refetches. Out-of-range pages are not checked
// here; the backend's empty-result behavior is authoritative.
func (s *MovieStore) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.pagination.CurrentPage = page
	s.mu.Unlock()

	s.list.detach()
	return s.FetchMovies(ctx)
}

// ClearError dismisses the last error.
func (s *MovieStore) ClearError() { s.list.ClearError() }

// Movies returns the current page of the catalog.
func (s *MovieStore) Movies() []domain.Movie { return s.list.Items() }

// Recommended returns the top-recommended list, ordered by count.
func (s *MovieStore) Recommended() []domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommended
}

// Current returns the movie loaded by FetchMovie, or nil.
func (s *MovieStore) Current() *domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Filters returns the active filter state.
func (s *MovieStore) Filters() domain.MovieFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Pagination returns the current page window.
func (s *MovieStore) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Loading reports whether any movie action is in flight.
func (s *MovieStore) Loading() bool { return s.list.Loading() }

// Err returns the last error, or nil.
func (s *MovieStore) Err() *domain.ErrorInfo { return s.list.Err() }
