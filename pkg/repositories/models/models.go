package models

import (
	"time"

	"github.com/google/uuid"
)

type Standing struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Losses int    `json:"losses"`
}

type MatchSummary struct {
	FirstTurn int   `json:"first_turn"`
	Moves     []int `json:"moves"`
	LoserSeat int   `json:"loser_seat"`
}

// SetResult is a completed match set. Standings are ordered by seat.
type SetResult struct {
	ID           uuid.UUID      `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	PileSize     int            `json:"pile_size"`
	BestOf       int            `json:"best_of"`
	AIDifficulty int            `json:"ai_difficulty"`
	WinnerSeat   int            `json:"winner_seat"`
	Resumed      bool           `json:"resumed"`
	Standings    []Standing     `json:"standings"`
	Matches      []MatchSummary `json:"matches,omitempty"`
}

// Winner returns the name in the winning seat.
func (s *SetResult) Winner() string {
	for _, standing := range s.Standings {
		if standing.Seat == s.WinnerSeat {
			return standing.Name
		}
	}
	return ""
}

// PlayerRecord aggregates every stored set a name took part in.
type PlayerRecord struct {
	Name          string `json:"name"`
	SetsPlayed    int    `json:"sets_played"`
	SetsWon       int    `json:"sets_won"`
	MatchesPlayed int    `json:"matches_played"`
	Losses        int    `json:"losses"`
}
