package tournament

import (
	"sort"
	"time"

	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/messages"
	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/cbodonnell/lastone/pkg/state"
	"github.com/google/uuid"
)

// MatchSummary is one finished match of a set.
type MatchSummary struct {
	FirstTurn int
	Moves     []int
	LoserSeat int
}

type Standing struct {
	Seat   int
	Player *game.Player
	Losses int
}

// Result is the outcome of a match set. Losses are keyed by player identity,
// so two players with the same name are tallied apart.
type Result struct {
	SetID   uuid.UUID
	Config  Config
	Players []*game.Player
	Losses  map[*game.Player]int
	Matches []MatchSummary
	// Resumed is set when the set was continued from the match log
	Resumed bool
	// AIDifficulty is the value written to the log header
	AIDifficulty int
}

// Standings orders players by ascending losses. Ties keep seat order.
func (r *Result) Standings() []Standing {
	standings := r.bySeat()
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Losses < standings[j].Losses
	})
	return standings
}

// Winner is the player with the fewest losses.
func (r *Result) Winner() *game.Player {
	standings := r.Standings()
	if len(standings) == 0 {
		return nil
	}
	return standings[0].Player
}

func (r *Result) bySeat() []Standing {
	standings := make([]Standing, 0, len(r.Players))
	for seat, p := range r.Players {
		standings = append(standings, Standing{Seat: seat, Player: p, Losses: r.Losses[p]})
	}
	return standings
}

// Model converts the result into the stored form.
func (r *Result) Model(createdAt time.Time) *models.SetResult {
	model := &models.SetResult{
		ID:           r.SetID,
		CreatedAt:    createdAt.UTC(),
		PileSize:     r.Config.PileSize,
		BestOf:       r.Config.BestOf,
		AIDifficulty: r.AIDifficulty,
		Resumed:      r.Resumed,
	}
	if standings := r.Standings(); len(standings) > 0 {
		model.WinnerSeat = standings[0].Seat
	}
	for _, s := range r.bySeat() {
		model.Standings = append(model.Standings, models.Standing{Seat: s.Seat, Name: s.Player.Name(), Losses: s.Losses})
	}
	for _, m := range r.Matches {
		model.Matches = append(model.Matches, models.MatchSummary{
			FirstTurn: m.FirstTurn,
			Moves:     append([]int(nil), m.Moves...),
			LoserSeat: m.LoserSeat,
		})
	}
	return model
}

func (r *Result) snapshot(remaining int, activeSeat int, finished bool) *state.Snapshot {
	snapshot := &state.Snapshot{
		SetID:         r.SetID.String(),
		PileSize:      r.Config.PileSize,
		BestOf:        r.Config.BestOf,
		MatchesPlayed: len(r.Matches),
		Remaining:     remaining,
		ActiveSeat:    activeSeat,
		Finished:      finished,
	}
	for _, s := range r.bySeat() {
		snapshot.Standings = append(snapshot.Standings, state.Standing{Seat: s.Seat, Name: s.Player.Name(), Losses: s.Losses})
	}
	return snapshot
}

func (r *Result) feedStandings() []messages.Standing {
	var standings []messages.Standing
	for _, s := range r.Standings() {
		standings = append(standings, messages.Standing{Seat: s.Seat, Name: s.Player.Name(), Losses: s.Losses})
	}
	return standings
}
