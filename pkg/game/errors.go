package game

import (
	"errors"
	"fmt"
)

var (
	// ErrMatchNotStarted is returned when stepping a match before Start
	ErrMatchNotStarted = errors.New("match not started")
	// ErrMatchOver is returned when stepping a match whose pile is empty
	ErrMatchOver = errors.New("match is over")
	// ErrMatchInProgress is returned when asking for the loser too early
	ErrMatchInProgress = errors.New("match is still in progress")
	// ErrFirstTurnRequired is returned when no first turn policy applies
	ErrFirstTurnRequired = errors.New("first turn must be supplied")
)

// InvalidMoveError is returned when a strategy picks an illegal number of tokens.
type InvalidMoveError struct {
	Player    string
	Move      int
	Remaining int
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move by %s: took %d with %d remaining", e.Player, e.Move, e.Remaining)
}

func IsInvalidMove(err error) bool {
	var target *InvalidMoveError
	return errors.As(err, &target)
}
