package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set LASTONE_TEST_POSTGRES_URL to run these against a scratch database.
func newPostgresTestRepository(t *testing.T) Repository {
	t.Helper()
	connStr := os.Getenv("LASTONE_TEST_POSTGRES_URL")
	if connStr == "" {
		t.Skip("LASTONE_TEST_POSTGRES_URL is not set")
	}
	ctx := context.Background()
	repository, err := NewPostgresRepository(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		repository.Close(ctx)
	})
	return repository
}

func TestPostgresRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repository := newPostgresTestRepository(t)

	// names are unique per run since the database is shared
	alice := "Alice-" + uuid.NewString()
	want := testResult(time.UnixMilli(1700000000000).UTC(), alice, "Bob-"+uuid.NewString())
	require.NoError(t, repository.SaveSetResult(ctx, want))

	got, err := repository.GetSetResult(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	record, err := repository.PlayerRecord(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, record.SetsPlayed)
	assert.Equal(t, 1, record.SetsWon)

	_, err = repository.GetSetResult(ctx, uuid.New())
	assert.True(t, IsNotFound(err))
}
