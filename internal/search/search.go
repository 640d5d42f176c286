// Package search provides client-side fuzzy filtering over the movie
// titles already held in the stores, for the quick-filter in the movie
// list view. Server-side search stays a backend query parameter.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

// Match is one ranked filter hit.
type Match struct {
	Movie          domain.Movie
	Score          int   // higher is better
	MatchedIndexes []int // character positions in the title, for highlighting
}

// movieIndex implements sahilm/fuzzy.Source over pre-lowered titles.
type movieIndex struct {
	movies      []domain.Movie
	lowerTitles []string
}

func (idx *movieIndex) String(i int) string { return idx.lowerTitles[i] }
func (idx *movieIndex) Len() int            { return len(idx.movies) }

func newIndex(movies []domain.Movie) *movieIndex {
	idx := &movieIndex{
		movies:      movies,
		lowerTitles: make([]string, len(movies)),
	}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.Title)
	}
	return idx
}

// Filter returns the movies whose titles match query, best match first.
// Subsequence matching handles typos and partial words; when it finds
// nothing, a looser normalized-fold rank pass runs as a fallback.
func Filter(query string, movies []domain.Movie) []Match {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || len(movies) == 0 {
		return nil
	}

	idx := newIndex(movies)
	matches := fuzzy.FindFrom(query, idx)
	if len(matches) > 0 {
		results := make([]Match, len(matches))
		for i, m := range matches {
			results[i] = Match{
				Movie:          idx.movies[m.Index],
				Score:          m.Score,
				MatchedIndexes: m.MatchedIndexes,
			}
		}
		return results
	}

	return rankFoldFallback(query, idx)
}

// rankFoldFallback matches with unicode-normalized case folding, ranked by
// Levenshtein distance. Catches accented titles the subsequence pass missed.
func rankFoldFallback(query string, idx *movieIndex) []Match {
	ranks := lfuzzy.RankFindNormalizedFold(query, idx.lowerTitles)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	results := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		// Rank distance is lower-better; invert so Match.Score stays
		// higher-better across both passes.
		results = append(results, Match{
			Movie: idx.movies[r.OriginalIndex],
			Score: -r.Distance,
		})
	}
	return results
}
