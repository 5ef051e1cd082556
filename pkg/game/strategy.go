package game

import (
	"fmt"
	"math/rand"

	"github.com/cbodonnell/lastone/pkg/game/constants"
)

// Prompter is the input collaborator used by human strategies and the coin toss.
// Implementations block until the user enters something parsable.
type Prompter interface {
	PromptInt(message string) (int, error)
	PromptString(message string) (string, error)
}

type StrategyKind int

const (
	StrategyHuman StrategyKind = iota
	StrategyUniform
	StrategyGreedy
	StrategyOptimal
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyHuman:
		return "human"
	case StrategyUniform:
		return "uniform"
	case StrategyGreedy:
		return "greedy"
	case StrategyOptimal:
		return "optimal"
	default:
		return "unknown"
	}
}

// Strategy picks how many tokens to take given only the remaining pile.
// The zero value is not usable; build one with the constructors below.
type Strategy struct {
	kind     StrategyKind
	prompter Prompter
	prompt   string
	rng      *rand.Rand
}

// Human returns a strategy that asks the prompter for every move.
// The returned value is not validated here.
func Human(prompter Prompter, prompt string) Strategy {
	return Strategy{
		kind:     StrategyHuman,
		prompter: prompter,
		prompt:   prompt,
	}
}

// Uniform returns a strategy drawing uniformly from the legal moves.
func Uniform(rng *rand.Rand) Strategy {
	return Strategy{
		kind: StrategyUniform,
		rng:  rng,
	}
}

// Greedy returns a strategy that always takes a single token.
func Greedy() Strategy {
	return Strategy{kind: StrategyGreedy}
}

// Optimal returns the modulo 4 strategy.
func Optimal() Strategy {
	return Strategy{kind: StrategyOptimal}
}

func (s Strategy) Kind() StrategyKind {
	return s.kind
}

func (s Strategy) IsHuman() bool {
	return s.kind == StrategyHuman
}

// Choose returns the number of tokens to take from a pile of remaining tokens.
func (s Strategy) Choose(remaining int) (int, error) {
	switch s.kind {
	case StrategyHuman:
		if s.prompter == nil {
			return 0, fmt.Errorf("human strategy has no prompter")
		}
		return s.prompter.PromptInt(s.prompt)
	case StrategyUniform:
		if s.rng == nil {
			return 0, fmt.Errorf("uniform strategy has no random source")
		}
		return constants.MinTake + s.rng.Intn(maxTake(remaining)), nil
	case StrategyGreedy:
		return 1, nil
	case StrategyOptimal:
		return optimalTake(remaining), nil
	default:
		return 0, fmt.Errorf("unknown strategy kind %d", s.kind)
	}
}

// optimalTake leaves the opponent on a pile of 4k+1 when it can.
func optimalTake(remaining int) int {
	switch remaining % 4 {
	case 0:
		return 3
	case 2:
		return 1
	case 3:
		return 2
	default:
		return 1
	}
}

// maxTake is the largest legal move for the pile, at least 1.
func maxTake(remaining int) int {
	if remaining < constants.MinTake {
		return constants.MinTake
	}
	if remaining > constants.MaxTake {
		return constants.MaxTake
	}
	return remaining
}
