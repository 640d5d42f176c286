package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

// MovieQuery parameterizes a movie list request. Page is one-based on the
// client side; the backend expects zero-based page indexes.
type MovieQuery struct {
	Page          int
	Size          int
	Search        string
	Genre         string
	SortBy        domain.SortField
	SortDirection domain.SortDirection
}

// ListMovies fetches a filtered, sorted page of the catalog.
func (c *Client) ListMovies(ctx context.Context, q MovieQuery) (MoviePage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page-1))
	if q.Size > 0 {
		query.Set("size", strconv.Itoa(q.Size))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Genre != "" {
		query.Set("genre", q.Genre)
	}
	if q.SortBy != "" {
		query.Set("sortBy", string(q.SortBy))
	}
	if q.SortDirection != "" {
		query.Set("sortDirection", string(q.SortDirection))
	}

	body, err := c.do(ctx, http.MethodGet, "/movies", query, nil)
	if err != nil {
		return MoviePage{}, err
	}
	return decodeMoviePage(body)
}

// TopRecommended fetches the most-recommended movies, at most limit entries.
func (c *Client) TopRecommended(ctx context.Context, limit int) ([]domain.Movie, error) {
	if limit <= 0 {
		limit = 6
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.do(ctx, http.MethodGet, "/movies/top-recommended", query, nil)
	if err != nil {
		return nil, err
	}
	var movies []domain.Movie
	if err := decode(body, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches one movie's detail. A 404 satisfies
// errors.Is(err, domain.ErrMovieNotFound).
func (c *Client) GetMovie(ctx context.Context, id int64) (*domain.Movie, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, nil)
	if err != nil {
		var terr *TransportError
		if errors.As(err, &terr) && terr.Status == http.StatusNotFound {
			terr.Err = domain.ErrMovieNotFound
		}
		return nil, err
	}
	var movie domain.Movie
	if err := decode(body, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// CreateMovie registers a new movie and returns the stored record.
func (c *Client) CreateMovie(ctx context.Context, movie domain.Movie) (*domain.Movie, error) {
	body, err := c.do(ctx, http.MethodPost, "/movies", nil, movie)
	if err != nil {
		return nil, err
	}
	var created domain.Movie
	if err := decode(body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ToggleRecommend flips the calling member's recommendation on a movie.
// The backend implements this as a toggle regardless of current state; the
// returned Recommendation is authoritative.
func (c *Client) ToggleRecommend(ctx context.Context, id int64, memberID string) (domain.Recommendation, error) {
	if memberID == "" {
		memberID = "anonymous"
	}
	query := url.Values{}
	query.Set("memberId", memberID)

	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/movies/%d/recommend", id), query, nil)
	if err != nil {
		return domain.Recommendation{}, err
	}
	var rec domain.Recommendation
	if err := decode(body, &rec); err != nil {
		return domain.Recommendation{}, err
	}
	return rec, nil
}
