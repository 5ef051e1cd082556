package matchlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/cbodonnell/lastone/pkg/game/constants"
)

// MatchRecord is one match as stored in the log: the opening seat and the
// number of tokens taken by each move in order.
type MatchRecord struct {
	FirstTurn int
	Moves     []int
}

// Taken is the number of tokens removed so far.
func (m MatchRecord) Taken() int {
	sum := 0
	for _, move := range m.Moves {
		sum += move
	}
	return sum
}

// CompletedMatch is a match whose moves emptied the pile.
type CompletedMatch struct {
	MatchRecord
	LoserSeat int
}

// PartialMatch is the match that was running when the log ended.
type PartialMatch struct {
	MatchRecord
	// Turn is the turn counter to resume with, the active seat is Turn mod player count
	Turn      int
	Remaining int
}

// Replay is everything the log knows about a set.
type Replay struct {
	Header    Header
	Completed []CompletedMatch
	Partial   *PartialMatch
}

// Losers returns the loser seat of every completed match in order.
func (r *Replay) Losers() []int {
	losers := make([]int, 0, len(r.Completed))
	for _, m := range r.Completed {
		losers = append(losers, m.LoserSeat)
	}
	return losers
}

// MatchesPlayed counts completed matches plus the partial one, if any.
func (r *Replay) MatchesPlayed() int {
	n := len(r.Completed)
	if r.Partial != nil {
		n++
	}
	return n
}

// Decode reads a whole log. Moves are checked against the pile as they are
// read; a move that would take more tokens than remain is a torn write and
// fails with CorruptLogError.
func Decode(r io.Reader) (*Replay, error) {
	br := bufio.NewReader(&sourceReader{r: r})

	header, err := decodeHeader(br)
	if err != nil {
		return nil, err
	}

	replay := &Replay{Header: header}
	n := header.PlayerCount()

	var current *MatchRecord
	taken := 0
	for record := 0; ; record++ {
		v, err := readInt32(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classify(record, "truncated record", err)
		}

		if current == nil {
			if len(replay.Completed) >= header.BestOf {
				return nil, &CorruptLogError{Record: record, Reason: fmt.Sprintf("match %d starts after all %d matches closed", len(replay.Completed)+1, header.BestOf)}
			}
			if v < 0 || v >= n {
				return nil, &CorruptLogError{Record: record, Reason: fmt.Sprintf("first turn %d out of range for %d players", v, n)}
			}
			current = &MatchRecord{FirstTurn: v}
			taken = 0
			continue
		}

		if v < constants.MinTake || v > constants.MaxTake {
			return nil, &CorruptLogError{Record: record, Reason: fmt.Sprintf("move %d out of range", v)}
		}
		if taken+v > header.PileSize {
			return nil, &CorruptLogError{Record: record, Reason: fmt.Sprintf("move %d overshoots pile of %d with %d taken", v, header.PileSize, taken)}
		}

		current.Moves = append(current.Moves, v)
		taken += v
		if taken == header.PileSize {
			replay.Completed = append(replay.Completed, CompletedMatch{
				MatchRecord: *current,
				LoserSeat:   (current.FirstTurn + len(current.Moves) - 1) % n,
			})
			current = nil
		}
	}

	if current != nil {
		replay.Partial = &PartialMatch{
			MatchRecord: *current,
			Turn:        current.FirstTurn + len(current.Moves),
			Remaining:   header.PileSize - taken,
		}
	}

	return replay, nil
}
