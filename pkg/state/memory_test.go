package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStandingsManager(t *testing.T) {
	ctx := context.Background()
	m := NewInMemoryStandingsManager()

	_, err := m.Get(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	assert.Error(t, m.Set(ctx, nil))

	snapshot := &Snapshot{
		SetID:    "a",
		PileSize: 12,
		BestOf:   3,
		Standings: []Standing{
			{Seat: 0, Name: "Hard AI"},
			{Seat: 1, Name: "Alice", Losses: 1},
		},
	}
	require.NoError(t, m.Set(ctx, snapshot))

	// later changes by the writer do not leak into the stored copy
	snapshot.Standings[1].Losses = 2

	got, err := m.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Standings[1].Losses)

	got.Standings[0].Losses = 9
	again, err := m.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Standings[0].Losses)
}
