package game

import (
	"math/rand"
	"testing"

	mocks "github.com/cbodonnell/lastone/mocks/github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatch(t *testing.T) {
	a := NewPlayer("A", Greedy())
	b := NewPlayer("B", Greedy())

	tests := []struct {
		name     string
		players  []*Player
		pileSize int
		wantErr  bool
	}{
		{name: "two players", players: []*Player{a, b}, pileSize: 12},
		{name: "one player", players: []*Player{a}, pileSize: 12, wantErr: true},
		{name: "empty pile", players: []*Player{a, b}, pileSize: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatch(tt.players, tt.pileSize)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, MatchStateNotStarted, m.State())
			assert.Equal(t, tt.pileSize, m.Remaining())
		})
	}
}

func TestMatch_StepBeforeStart(t *testing.T) {
	m, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy())}, 5)
	require.NoError(t, err)

	_, _, err = m.Step()
	assert.ErrorIs(t, err, ErrMatchNotStarted)
}

func TestMatch_StartForced(t *testing.T) {
	m, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy())}, 5)
	require.NoError(t, err)

	decision, err := m.Start(StartOptions{FirstTurn: 1})
	require.NoError(t, err)
	assert.Equal(t, FirstTurnForced, decision.Method)
	assert.Equal(t, 1, m.Turn())
	assert.Equal(t, "B", m.ActivePlayer().Name())

	_, err = m.Start(StartOptions{FirstTurn: 0})
	assert.Error(t, err, "starting twice")
}

func TestMatch_StartForcedOutOfRange(t *testing.T) {
	m, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy())}, 5)
	require.NoError(t, err)

	_, err = m.Start(StartOptions{FirstTurn: 2})
	assert.Error(t, err)
	assert.Equal(t, MatchStateNotStarted, m.State())
}

func TestMatch_StartThreePlayers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	players := []*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy()), NewPlayer("C", Greedy())}
	for i := 0; i < 50; i++ {
		m, err := NewMatch(players, 5)
		require.NoError(t, err)
		decision, err := m.Start(StartOptions{FirstTurn: constants.NoForcedTurn, Rand: rng})
		require.NoError(t, err)
		assert.Equal(t, FirstTurnRandom, decision.Method)
		assert.GreaterOrEqual(t, decision.Turn, 0)
		assert.Less(t, decision.Turn, 3)
	}
}

func TestNewStartOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	opts := NewStartOptions(nil, rng)
	assert.Equal(t, constants.NoForcedTurn, opts.FirstTurn)

	players := []*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy()), NewPlayer("C", Greedy())}
	m, err := NewMatch(players, 5)
	require.NoError(t, err)
	decision, err := m.Start(opts)
	require.NoError(t, err)
	assert.Equal(t, FirstTurnRandom, decision.Method)

	// the zero value is a forced opening by seat 0
	m, err = NewMatch(players, 5)
	require.NoError(t, err)
	decision, err = m.Start(StartOptions{})
	require.NoError(t, err)
	assert.Equal(t, FirstTurnForced, decision.Method)
	assert.Equal(t, 0, decision.Turn)
}

func TestMatch_StartCoinToss(t *testing.T) {
	const seed = 11
	outcome := "heads"
	if rand.New(rand.NewSource(seed)).Intn(2) == 1 {
		outcome = "tails"
	}
	wrong := "tails"
	if outcome == "tails" {
		wrong = "heads"
	}

	tests := []struct {
		name     string
		answers  []string
		wantTurn int
	}{
		{name: "correct call", answers: []string{outcome}, wantTurn: 1},
		{name: "wrong call", answers: []string{wrong}, wantTurn: 0},
		{name: "reprompts until heads or tails", answers: []string{"edge", "", "  " + outcome + " "}, wantTurn: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := mocks.NewPrompter(t)
			for _, answer := range tt.answers {
				prompter.EXPECT().PromptString("B, choose 'heads' or 'tails': ").Return(answer, nil).Once()
			}

			m, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewHumanPlayer("B", prompter)}, 5)
			require.NoError(t, err)

			decision, err := m.Start(StartOptions{
				FirstTurn: constants.NoForcedTurn,
				Prompter:  prompter,
				Rand:      rand.New(rand.NewSource(seed)),
			})
			require.NoError(t, err)
			assert.Equal(t, FirstTurnCoin, decision.Method)
			assert.Equal(t, outcome, decision.Outcome)
			assert.Equal(t, tt.wantTurn, decision.Turn)
			assert.Equal(t, tt.wantTurn, m.Turn())
		})
	}
}

func TestMatch_StartNeedsForcedTurn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	two, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy())}, 5)
	require.NoError(t, err)
	_, err = two.Start(StartOptions{FirstTurn: constants.NoForcedTurn, Rand: rng})
	assert.ErrorIs(t, err, ErrFirstTurnRequired, "coin toss without a prompter")

	four, err := NewMatch([]*Player{
		NewPlayer("A", Greedy()), NewPlayer("B", Greedy()), NewPlayer("C", Greedy()), NewPlayer("D", Greedy()),
	}, 5)
	require.NoError(t, err)
	_, err = four.Start(StartOptions{FirstTurn: constants.NoForcedTurn, Rand: rng})
	assert.ErrorIs(t, err, ErrFirstTurnRequired)
}

func TestMatch_OptimalNeverFacesLosingPile(t *testing.T) {
	prompter := mocks.NewPrompter(t)
	answers := []int{1, 2, 3, 3, 2, 1}
	asked := 0
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").RunAndReturn(func(string) (int, error) {
		answer := answers[asked%len(answers)]
		asked++
		return answer, nil
	})

	ai := NewPlayer("AI", Optimal())
	human := NewHumanPlayer("P1", prompter)
	m, err := NewMatch([]*Player{ai, human}, 12)
	require.NoError(t, err)
	_, err = m.Start(StartOptions{FirstTurn: 0})
	require.NoError(t, err)

	first, terminal, err := m.Step()
	require.NoError(t, err)
	require.False(t, terminal)
	assert.Equal(t, ai, first.Player)
	assert.Equal(t, 3, first.Count)
	assert.Equal(t, 9, first.Remaining)

	for !m.IsTerminal() {
		if m.ActivePlayer() == ai {
			assert.NotEqual(t, 1, m.Remaining()%4, "AI faced %d", m.Remaining())
		}
		_, _, err := m.Step()
		require.NoError(t, err)
	}

	loser, err := m.Loser()
	require.NoError(t, err)
	assert.Equal(t, human, loser)
}

func TestMatch_HumanReprompted(t *testing.T) {
	prompter := mocks.NewPrompter(t)
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").Return(4, nil).Once()
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").Return(0, nil).Once()
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").Return(3, nil).Once()
	prompter.EXPECT().PromptInt("P1's turn (1, 2, or 3): ").Return(2, nil).Once()

	human := NewHumanPlayer("P1", prompter)
	m, err := NewMatch([]*Player{human, NewPlayer("AI", Greedy())}, 2)
	require.NoError(t, err)
	_, err = m.Start(StartOptions{FirstTurn: 0})
	require.NoError(t, err)

	// 4 and 0 are out of range, 3 exceeds the pile
	move, terminal, err := m.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, move.Count)
	assert.True(t, terminal)

	loser, err := m.Loser()
	require.NoError(t, err)
	assert.Equal(t, human, loser)
}

func TestMatch_StepAfterTerminal(t *testing.T) {
	m, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy())}, 2)
	require.NoError(t, err)
	_, err = m.Start(StartOptions{FirstTurn: 0})
	require.NoError(t, err)

	_, terminal, err := m.Step()
	require.NoError(t, err)
	require.False(t, terminal)
	_, terminal, err = m.Step()
	require.NoError(t, err)
	require.True(t, terminal)

	_, _, err = m.Step()
	assert.ErrorIs(t, err, ErrMatchOver)
	_, _, err = m.Apply(1)
	assert.ErrorIs(t, err, ErrMatchOver)

	loser, err := m.Loser()
	require.NoError(t, err)
	assert.Equal(t, "B", loser.Name())
}

func TestMatch_LoserWhileInProgress(t *testing.T) {
	m, err := NewMatch([]*Player{NewPlayer("A", Greedy()), NewPlayer("B", Greedy())}, 4)
	require.NoError(t, err)
	_, err = m.Start(StartOptions{FirstTurn: 0})
	require.NoError(t, err)

	_, err = m.Loser()
	assert.ErrorIs(t, err, ErrMatchInProgress)
}

func TestMatch_ApplyRejectsIllegalMove(t *testing.T) {
	m, err := NewMatch([]*Player{NewPlayer("A", Optimal()), NewPlayer("B", Optimal())}, 2)
	require.NoError(t, err)
	_, err = m.Start(StartOptions{FirstTurn: 0})
	require.NoError(t, err)

	tests := []struct {
		name  string
		count int
	}{
		{name: "zero", count: 0},
		{name: "four", count: 4},
		{name: "more than remaining", count: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := m.Apply(tt.count)
			assert.True(t, IsInvalidMove(err))
			assert.Equal(t, 2, m.Remaining())
		})
	}
}

func TestResume(t *testing.T) {
	a := NewPlayer("A", Greedy())
	b := NewPlayer("B", Greedy())

	m, err := Resume([]*Player{a, b}, 5, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, MatchStateInProgress, m.State())
	assert.Equal(t, b, m.ActivePlayer())

	move, terminal, err := m.Apply(3)
	require.NoError(t, err)
	assert.True(t, terminal)
	assert.Equal(t, b, move.Player)

	loser, err := m.Loser()
	require.NoError(t, err)
	assert.Equal(t, b, loser)

	_, err = Resume([]*Player{a, b}, 5, 1, 0)
	assert.Error(t, err, "nothing left to play")
	_, err = Resume([]*Player{a, b}, 5, -1, 3)
	assert.Error(t, err)
}
