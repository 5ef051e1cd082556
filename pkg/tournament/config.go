package tournament

import (
	"fmt"

	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game/constants"
)

// Config is the configuration of one match set.
type Config struct {
	PileSize int
	BestOf   int
	// AIDifficulty is recorded in the log header when seat 0 is an AI
	AIDifficulty game.Difficulty
	// FirstTurn forces the opening seat of every match unless it is constants.NoForcedTurn
	FirstTurn int
}

func DefaultConfig() Config {
	return Config{
		PileSize:     constants.DefaultPileSize,
		BestOf:       constants.DefaultBestOf,
		AIDifficulty: game.Difficulty(constants.DefaultAIDifficulty),
		FirstTurn:    constants.NoForcedTurn,
	}
}

func (c Config) Validate() error {
	if c.PileSize < 1 {
		return fmt.Errorf("pile size must be at least 1, got %d", c.PileSize)
	}
	if c.BestOf < 1 {
		return fmt.Errorf("best of must be at least 1, got %d", c.BestOf)
	}
	if c.FirstTurn < constants.NoForcedTurn {
		return fmt.Errorf("first turn must be a seat or %d, got %d", constants.NoForcedTurn, c.FirstTurn)
	}
	return nil
}
