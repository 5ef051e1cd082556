package game

import (
	"fmt"
	"math/rand"
)

// Player binds a name to a strategy. Players are compared by pointer,
// two players may share a name.
type Player struct {
	name     string
	strategy Strategy
}

func NewPlayer(name string, strategy Strategy) *Player {
	return &Player{
		name:     name,
		strategy: strategy,
	}
}

// NewHumanPlayer returns a player prompted for each move.
func NewHumanPlayer(name string, prompter Prompter) *Player {
	return NewPlayer(name, Human(prompter, fmt.Sprintf("%s's turn (1, 2, or 3): ", name)))
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Strategy() Strategy {
	return p.strategy
}

func (p *Player) IsHuman() bool {
	return p.strategy.IsHuman()
}

func (p *Player) String() string {
	return p.name
}

// Difficulty selects the AI seat of a set. It is stored in the match log header.
type Difficulty int

const (
	DifficultyNone    Difficulty = -1
	DifficultyChaotic Difficulty = 0
	DifficultyEasy    Difficulty = 1
	DifficultyHard    Difficulty = 2
)

func (d Difficulty) String() string {
	switch {
	case d < DifficultyChaotic:
		return "none"
	case d == DifficultyChaotic:
		return "chaotic"
	case d == DifficultyEasy:
		return "easy"
	default:
		return "hard"
	}
}

// ParseDifficulty accepts a name or the numeric value used in the log header.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "none", "-1":
		return DifficultyNone, nil
	case "chaotic", "0":
		return DifficultyChaotic, nil
	case "easy", "1":
		return DifficultyEasy, nil
	case "hard", "2":
		return DifficultyHard, nil
	default:
		return DifficultyNone, fmt.Errorf("unknown difficulty: %s", s)
	}
}

// HasAI reports whether the set has an AI in seat 0.
func (d Difficulty) HasAI() bool {
	return d >= DifficultyChaotic
}

// NewAIPlayer returns the AI for the difficulty. Values above hard are hard.
func NewAIPlayer(d Difficulty, rng *rand.Rand) (*Player, error) {
	switch {
	case d < DifficultyChaotic:
		return nil, fmt.Errorf("difficulty %d has no AI", d)
	case d == DifficultyChaotic:
		return NewPlayer("Chaotic AI", Uniform(rng)), nil
	case d == DifficultyEasy:
		return NewPlayer("Easy AI", Greedy()), nil
	default:
		return NewPlayer("Hard AI", Optimal()), nil
	}
}
