package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdash.app/pkg/errors"
)

func TestSession_LastRequestWins(t *testing.T) {
	client := newGatedClient("Paris", "Tokyo")
	ts := newTestSessionWithClient(t, client)

	older := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Paris")
		older <- err
	}()
	require.Equal(t, "Paris", <-client.entered)

	newer := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Tokyo")
		newer <- err
	}()
	require.Equal(t, "Tokyo", <-client.entered)

	client.release("Tokyo")
	require.NoError(t, <-newer)

	client.release("Paris")
	require.NoError(t, <-older)

	assert.Equal(t, "Tokyo", ts.Snapshot().City)
	assert.Equal(t, 1, ts.metrics.StaleCount(CommandSearch))
	assert.Equal(t, "Tokyo", ts.flags.value("lastSearchedCity"))
}

func TestSession_InOrderCompletionAppliesBoth(t *testing.T) {
	client := newGatedClient("Paris", "Tokyo")
	ts := newTestSessionWithClient(t, client)

	older := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Paris")
		older <- err
	}()
	require.Equal(t, "Paris", <-client.entered)

	newer := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Tokyo")
		newer <- err
	}()
	require.Equal(t, "Tokyo", <-client.entered)

	client.release("Paris")
	require.NoError(t, <-older)
	assert.Equal(t, "Paris", ts.Snapshot().City)

	client.release("Tokyo")
	require.NoError(t, <-newer)
	assert.Equal(t, "Tokyo", ts.Snapshot().City)
	assert.Zero(t, ts.metrics.StaleCount(CommandSearch))
}

func TestSession_StaleFailureIsDropped(t *testing.T) {
	client := newGatedClient("Paris", "Tokyo")
	client.errs["Paris"] = errors.NewNetworkError("", nil)
	ts := newTestSessionWithClient(t, client)

	older := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Paris")
		older <- err
	}()
	require.Equal(t, "Paris", <-client.entered)

	newer := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Tokyo")
		newer <- err
	}()
	require.Equal(t, "Tokyo", <-client.entered)

	client.release("Tokyo")
	require.NoError(t, <-newer)
	client.release("Paris")

	assert.NoError(t, <-older)
	assert.Equal(t, "Tokyo", ts.Snapshot().City)
}

func TestSession_NewerFailureStillSupersedesOlderRequest(t *testing.T) {
	client := newGatedClient("Paris", "Tokyo")
	client.errs["Tokyo"] = errors.NewCityNotFoundError(errors.MessageCityNotFound)
	ts := newTestSessionWithClient(t, client)

	older := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Paris")
		older <- err
	}()
	require.Equal(t, "Paris", <-client.entered)

	newer := make(chan error, 1)
	go func() {
		_, err := ts.Search(context.Background(), "Tokyo")
		newer <- err
	}()
	require.Equal(t, "Tokyo", <-client.entered)

	client.release("Tokyo")
	assert.True(t, errors.IsCityNotFoundError(<-newer))

	client.release("Paris")
	require.NoError(t, <-older)

	assert.Empty(t, ts.Snapshot().City)
	assert.Empty(t, ts.flags.value("lastSearchedCity"))
	assert.Equal(t, 1, ts.metrics.StaleCount(CommandSearch))
}
