package constants

const (
	// MinTake is the fewest tokens a move may remove
	MinTake int = 1
	// MaxTake is the most tokens a move may remove
	MaxTake int = 3

	// DefaultPileSize is the number of tokens in a fresh pile
	DefaultPileSize int = 12
	// DefaultBestOf is the number of matches in a set
	DefaultBestOf int = 1
	// DefaultAIDifficulty is the difficulty used for single player sets
	DefaultAIDifficulty int = 2

	// MinPlayers is the fewest seats a match can have
	MinPlayers int = 2

	// NoAI marks a set without an AI seat
	NoAI int = -1
	// NoForcedTurn lets the match decide who goes first
	NoForcedTurn int = -1
)
