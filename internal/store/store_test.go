package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", record{Name: "jane", Count: 3}))

	var got record
	require.True(t, s.Get("k", &got))
	assert.Equal(t, "jane", got.Name)
	assert.Equal(t, 3, got.Count)

	s.Delete("k")
	assert.False(t, s.Get("k", &got))
}

func TestMissingKey(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	var got record
	assert.False(t, s.Get("absent", &got))
	assert.False(t, s.GetSession("absent", &got))
}

func TestDurableEntriesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("identity", record{Name: "jane"}))
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var got record
	require.True(t, reopened.Get("identity", &got))
	assert.Equal(t, "jane", got.Name)
}

func TestSessionEntriesWipedOnReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetSession("mode", "movies"))

	var mode string
	require.True(t, s.GetSession("mode", &mode))
	assert.Equal(t, "movies", mode)
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.False(t, reopened.GetSession("mode", &mode))
}

func TestScopesAreSeparate(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", "durable"))
	require.NoError(t, s.SetSession("k", "transient"))

	var durable, transient string
	require.True(t, s.Get("k", &durable))
	require.True(t, s.GetSession("k", &transient))
	assert.Equal(t, "durable", durable)
	assert.Equal(t, "transient", transient)

	s.DeleteSession("k")
	assert.False(t, s.GetSession("k", &transient))
	assert.True(t, s.Get("k", &durable), "durable scope untouched")
}

func TestSetUnmarshalableValue(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	assert.Error(t, s.Set("bad", make(chan int)))
}
