package api

import (
	"encoding/json"
	"fmt"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

// MoviePage is a normalized movie-list response. HasTotals is false when
// the backend returned a bare array and the envelope carried no counts.
type MoviePage struct {
	Movies        []domain.Movie
	TotalElements int
	TotalPages    int
	HasTotals     bool
}

// pagedEnvelope is the backend's paginated response shape.
type pagedEnvelope struct {
	Content       []domain.Movie `json:"content"`
	TotalElements *int           `json:"totalElements"`
	TotalPages    *int           `json:"totalPages"`
}

// decodeMoviePage normalizes the two wire shapes the backend may produce:
// a bare array, or a paged object with a content field. The distinction is
// decided once here rather than at each call site.
func decodeMoviePage(body []byte) (MoviePage, error) {
	if len(body) == 0 {
		return MoviePage{}, nil
	}

	// Bare array form.
	if body[0] == '[' {
		var movies []domain.Movie
		if err := json.Unmarshal(body, &movies); err != nil {
			return MoviePage{}, fmt.Errorf("failed to parse movie list: %w", err)
		}
		return MoviePage{Movies: movies}, nil
	}

	var env pagedEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return MoviePage{}, fmt.Errorf("failed to parse movie page: %w", err)
	}

	page := MoviePage{Movies: env.Content}
	if env.TotalElements != nil {
		page.TotalElements = *env.TotalElements
		page.HasTotals = true
	}
	if env.TotalPages != nil {
		page.TotalPages = *env.TotalPages
	}
	return page, nil
}
