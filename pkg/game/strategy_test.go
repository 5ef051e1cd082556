package game

import (
	"errors"
	"math/rand"
	"testing"

	mocks "github.com/cbodonnell/lastone/mocks/github.com/cbodonnell/lastone/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimal_Choose(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		want      int
	}{
		{name: "multiple of four", remaining: 12, want: 3},
		{name: "four", remaining: 4, want: 3},
		{name: "one more than a multiple of four", remaining: 9, want: 1},
		{name: "two more than a multiple of four", remaining: 6, want: 1},
		{name: "three more than a multiple of four", remaining: 7, want: 2},
		{name: "last token", remaining: 1, want: 1},
		{name: "two left", remaining: 2, want: 1},
		{name: "three left", remaining: 3, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Optimal().Choose(tt.remaining)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptimal_ChooseWithinBounds(t *testing.T) {
	for remaining := 1; remaining <= 200; remaining++ {
		got, err := Optimal().Choose(remaining)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 1, "remaining %d", remaining)
		assert.LessOrEqual(t, got, min(3, remaining), "remaining %d", remaining)
	}
}

func TestUniform_ChooseWithinBounds(t *testing.T) {
	strategy := Uniform(rand.New(rand.NewSource(42)))
	for remaining := 1; remaining <= 20; remaining++ {
		seen := map[int]bool{}
		for i := 0; i < 300; i++ {
			got, err := strategy.Choose(remaining)
			require.NoError(t, err)
			require.GreaterOrEqual(t, got, 1)
			require.LessOrEqual(t, got, min(3, remaining))
			seen[got] = true
		}
		// every legal move shows up in 300 draws
		assert.Len(t, seen, min(3, remaining), "remaining %d", remaining)
	}
}

func TestUniform_NoRandomSource(t *testing.T) {
	_, err := Uniform(nil).Choose(5)
	assert.Error(t, err)
}

func TestGreedy_Choose(t *testing.T) {
	for _, remaining := range []int{1, 2, 3, 4, 17} {
		got, err := Greedy().Choose(remaining)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	}
}

func TestHuman_Choose(t *testing.T) {
	prompter := mocks.NewPrompter(t)
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").Return(7, nil).Once()

	player := NewHumanPlayer("P1", prompter)
	got, err := player.Strategy().Choose(5)
	require.NoError(t, err)
	// out of range answers pass through, the match validates them
	assert.Equal(t, 7, got)
	assert.True(t, player.IsHuman())
}

func TestHuman_ChoosePropagatesError(t *testing.T) {
	prompter := mocks.NewPrompter(t)
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").Return(0, errors.New("EOF")).Once()

	_, err := NewHumanPlayer("P1", prompter).Strategy().Choose(5)
	assert.Error(t, err)
}

func TestNewAIPlayer(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name       string
		difficulty Difficulty
		wantName   string
		wantKind   StrategyKind
		wantErr    bool
	}{
		{name: "none", difficulty: DifficultyNone, wantErr: true},
		{name: "chaotic", difficulty: DifficultyChaotic, wantName: "Chaotic AI", wantKind: StrategyUniform},
		{name: "easy", difficulty: DifficultyEasy, wantName: "Easy AI", wantKind: StrategyGreedy},
		{name: "hard", difficulty: DifficultyHard, wantName: "Hard AI", wantKind: StrategyOptimal},
		{name: "above hard", difficulty: Difficulty(7), wantName: "Hard AI", wantKind: StrategyOptimal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAIPlayer(tt.difficulty, rng)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name())
			assert.Equal(t, tt.wantKind, got.Strategy().Kind())
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{in: "none", want: DifficultyNone},
		{in: "0", want: DifficultyChaotic},
		{in: "easy", want: DifficultyEasy},
		{in: "2", want: DifficultyHard},
		{in: "brutal", want: DifficultyNone, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.want, got)
		})
	}
}
