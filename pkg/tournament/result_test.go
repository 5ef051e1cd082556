package tournament

import (
	"math/rand"
	"testing"
	"time"

	mocks "github.com/cbodonnell/lastone/mocks/github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game/constants"
	"github.com/cbodonnell/lastone/pkg/matchlog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "single token", cfg: Config{PileSize: 1, BestOf: 1, FirstTurn: constants.NoForcedTurn}},
		{name: "forced seat", cfg: Config{PileSize: 12, BestOf: 3, FirstTurn: 2}},
		{name: "empty pile", cfg: Config{PileSize: 0, BestOf: 1, FirstTurn: constants.NoForcedTurn}, wantErr: true},
		{name: "no matches", cfg: Config{PileSize: 12, BestOf: 0, FirstTurn: constants.NoForcedTurn}, wantErr: true},
		{name: "negative seat", cfg: Config{PileSize: 12, BestOf: 1, FirstTurn: -3}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResult_Standings(t *testing.T) {
	a := game.NewPlayer("A", game.Greedy())
	b := game.NewPlayer("B", game.Greedy())
	c := game.NewPlayer("C", game.Greedy())
	result := &Result{
		Players: []*game.Player{a, b, c},
		Losses:  map[*game.Player]int{a: 2, b: 0, c: 0},
	}

	standings := result.Standings()
	require.Len(t, standings, 3)
	assert.Equal(t, []Standing{
		{Seat: 1, Player: b, Losses: 0},
		{Seat: 2, Player: c, Losses: 0},
		{Seat: 0, Player: a, Losses: 2},
	}, standings)
	assert.Equal(t, b, result.Winner())
}

func TestResult_SameNameTalliedApart(t *testing.T) {
	first := game.NewPlayer("Sam", game.Greedy())
	second := game.NewPlayer("Sam", game.Greedy())
	result := &Result{
		Players: []*game.Player{first, second},
		Losses:  map[*game.Player]int{first: 1},
	}
	assert.Equal(t, second, result.Winner())
	assert.Equal(t, Standing{Seat: 0, Player: first, Losses: 1}, result.Standings()[1])
}

func TestResult_Model(t *testing.T) {
	a := game.NewPlayer("Hard AI", game.Optimal())
	b := game.NewPlayer("Ann", game.Greedy())
	id := uuid.New()
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	result := &Result{
		SetID:        id,
		Config:       Config{PileSize: 7, BestOf: 2},
		Players:      []*game.Player{a, b},
		Losses:       map[*game.Player]int{b: 2},
		Matches:      []MatchSummary{{FirstTurn: 0, Moves: []int{2, 1, 3, 1}, LoserSeat: 1}, {FirstTurn: 1, Moves: []int{1, 1, 3, 1, 1}, LoserSeat: 1}},
		Resumed:      true,
		AIDifficulty: 2,
	}

	model := result.Model(createdAt)
	assert.Equal(t, id, model.ID)
	assert.Equal(t, createdAt, model.CreatedAt)
	assert.Equal(t, 7, model.PileSize)
	assert.Equal(t, 2, model.BestOf)
	assert.Equal(t, 2, model.AIDifficulty)
	assert.Equal(t, 0, model.WinnerSeat)
	assert.Equal(t, "Hard AI", model.Winner())
	assert.True(t, model.Resumed)
	require.Len(t, model.Standings, 2)
	assert.Equal(t, "Ann", model.Standings[1].Name)
	assert.Equal(t, 2, model.Standings[1].Losses)
	require.Len(t, model.Matches, 2)
	assert.Equal(t, []int{1, 1, 3, 1, 1}, model.Matches[1].Moves)

	// the model owns its move slices
	model.Matches[0].Moves[0] = 9
	assert.Equal(t, 2, result.Matches[0].Moves[0])
}

func TestPlayersFromHeader(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("ai seat keeps its logged name", func(t *testing.T) {
		prompter := mocks.NewPrompter(t)
		h := matchlog.Header{BestOf: 1, PileSize: 12, AIDifficulty: int(game.DifficultyEasy), Names: []string{"Robo", "Ann"}}

		players, err := PlayersFromHeader(h, prompter, rng)
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, "Robo", players[0].Name())
		assert.Equal(t, game.StrategyGreedy, players[0].Strategy().Kind())
		assert.True(t, players[1].IsHuman())
	})

	t.Run("no ai seat", func(t *testing.T) {
		h := matchlog.Header{BestOf: 1, PileSize: 12, AIDifficulty: constants.NoAI, Names: []string{"A", "B", "C"}}

		players, err := PlayersFromHeader(h, mocks.NewPrompter(t), rng)
		require.NoError(t, err)
		for _, p := range players {
			assert.True(t, p.IsHuman())
		}
	})

	t.Run("high difficulty plays optimally", func(t *testing.T) {
		h := matchlog.Header{BestOf: 1, PileSize: 12, AIDifficulty: 7, Names: []string{"Hard AI", "Ann"}}

		players, err := PlayersFromHeader(h, mocks.NewPrompter(t), rng)
		require.NoError(t, err)
		assert.Equal(t, game.StrategyOptimal, players[0].Strategy().Kind())
	})

	t.Run("ai only set needs no prompter", func(t *testing.T) {
		h := matchlog.Header{BestOf: 1, PileSize: 12, AIDifficulty: int(game.DifficultyChaotic), Names: []string{"Chaotic AI"}}

		players, err := PlayersFromHeader(h, nil, rng)
		require.NoError(t, err)
		assert.Equal(t, game.StrategyUniform, players[0].Strategy().Kind())
	})
}
