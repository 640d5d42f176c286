package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

func catalog() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "Blade Runner"},
		{ID: 2, Title: "The Blues Brothers"},
		{ID: 3, Title: "Alien"},
		{ID: 4, Title: "Aliens"},
	}
}

func TestFilterExactSubstring(t *testing.T) {
	matches := Filter("blade", catalog())
	require.NotEmpty(t, matches)
	assert.Equal(t, "Blade Runner", matches[0].Movie.Title)
}

func TestFilterSubsequence(t *testing.T) {
	// "bldrnr" is a subsequence of "blade runner" only.
	matches := Filter("bldrnr", catalog())
	require.Len(t, matches, 1)
	assert.Equal(t, "Blade Runner", matches[0].Movie.Title)
}

func TestFilterCaseInsensitive(t *testing.T) {
	matches := Filter("ALIEN", catalog())
	require.NotEmpty(t, matches)
	assert.Equal(t, "Alien", matches[0].Movie.Title)
}

func TestFilterRanksBetterMatchFirst(t *testing.T) {
	matches := Filter("alien", catalog())
	require.Len(t, matches, 2)
	// The exact title outranks the longer one.
	assert.Equal(t, "Alien", matches[0].Movie.Title)
	assert.Equal(t, "Aliens", matches[1].Movie.Title)
}

func TestFilterEmptyQuery(t *testing.T) {
	assert.Nil(t, Filter("", catalog()))
	assert.Nil(t, Filter("   ", catalog()))
}

func TestFilterEmptyCatalog(t *testing.T) {
	assert.Nil(t, Filter("alien", nil))
}

func TestFilterNoMatch(t *testing.T) {
	assert.Empty(t, Filter("zzzzqqqq", catalog()))
}

func TestFilterMatchedIndexes(t *testing.T) {
	matches := Filter("blade", catalog())
	require.NotEmpty(t, matches)
	assert.NotEmpty(t, matches[0].MatchedIndexes)
}
