package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jspark-dev/cinegrid/internal/adapter"
	"github.com/jspark-dev/cinegrid/internal/api"
)

func TestCollectionFetchSuccess(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}, adapter.NullLogger())

	require.NoError(t, c.Fetch(context.Background()))

	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.False(t, c.Loading())
	assert.Nil(t, c.Err())
	assert.False(t, c.LastUpdated().IsZero())
}

func TestCollectionFetchFailureKeepsItems(t *testing.T) {
	fail := false
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, &api.TransportError{Kind: api.KindHTTPError, Status: 500}
		}
		return []string{"a"}, nil
	}, adapter.NullLogger())

	require.NoError(t, c.Fetch(context.Background()))

	fail = true
	err := c.Fetch(context.Background())
	require.Error(t, err)

	// Previous items survive a failed refresh; the error slot is set.
	assert.Equal(t, []string{"a"}, c.Items())
	assert.False(t, c.Loading())
	require.NotNil(t, c.Err())
	assert.Equal(t, "The server encountered an error.", c.Err().Message)
}

func TestCollectionClearError(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return nil, errors.New("boom")
	}, adapter.NullLogger())

	require.Error(t, c.Fetch(context.Background()))
	require.NotNil(t, c.Err())

	c.ClearError()
	assert.Nil(t, c.Err())
}

func TestCollectionSingleFlight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCollection(func(ctx context.Context) ([]int, error) {
		calls.Add(1)
		<-release
		return []int{1, 2, 3}, nil
	}, adapter.NullLogger())

	const joiners = 5
	var wg sync.WaitGroup
	errs := make([]error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Fetch(context.Background())
		}(i)
	}

	// Wait for the first fetch to be in flight, then release everyone.
	require.Eventually(t, c.Loading, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3}, c.Items())
}

func TestCollectionInvalidateDiscardsInflightResult(t *testing.T) {
	release := make(chan struct{})
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		<-release
		return []string{"stale"}, nil
	}, adapter.NullLogger())

	done := make(chan error, 1)
	go func() { done <- c.Fetch(context.Background()) }()

	require.Eventually(t, c.Loading, time.Second, time.Millisecond)
	c.invalidate()
	close(release)
	require.NoError(t, <-done)

	// The stale result must not have landed.
	assert.Empty(t, c.Items())
	assert.False(t, c.Loading())
	assert.True(t, c.LastUpdated().IsZero())
}

func TestCollectionMutate(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return []string{"b"}, nil
	}, adapter.NullLogger())
	require.NoError(t, c.Fetch(context.Background()))

	c.mutate(func(items []string) []string {
		return append([]string{"a"}, items...)
	})
	assert.Equal(t, []string{"a", "b"}, c.Items())
}

func TestCollectionBeginFinish(t *testing.T) {
	c := NewCollection(func(ctx context.Context) ([]string, error) {
		return nil, nil
	}, adapter.NullLogger())

	c.begin()
	assert.True(t, c.Loading())

	err := c.finish(&api.TransportError{Kind: api.KindHTTPError, Status: 403})
	require.Error(t, err)
	assert.False(t, c.Loading())
	require.NotNil(t, c.Err())
	assert.Equal(t, "You do not have permission to do that.", c.Err().Message)

	c.begin()
	assert.Nil(t, c.Err(), "begin clears the previous error")
	require.NoError(t, c.finish(nil))
	assert.Nil(t, c.Err())
}
