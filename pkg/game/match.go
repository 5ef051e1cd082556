package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cbodonnell/lastone/pkg/game/constants"
	"github.com/cbodonnell/lastone/pkg/log"
)

type MatchState int

const (
	MatchStateNotStarted MatchState = iota
	MatchStateInProgress
	MatchStateTerminal
)

func (s MatchState) String() string {
	switch s {
	case MatchStateNotStarted:
		return "not started"
	case MatchStateInProgress:
		return "in progress"
	case MatchStateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Match is a single game over one pile. It does no I/O beyond what the
// player strategies and the coin toss prompter do.
type Match struct {
	turn      int
	remaining int
	pileSize  int
	players   []*Player
	state     MatchState
}

// Move is an accepted move.
type Move struct {
	Seat      int
	Player    *Player
	Count     int
	Remaining int
}

// NewMatch creates a match that has not started yet.
func NewMatch(players []*Player, pileSize int) (*Match, error) {
	if len(players) < constants.MinPlayers {
		return nil, fmt.Errorf("a match needs at least %d players, got %d", constants.MinPlayers, len(players))
	}
	if pileSize < 1 {
		return nil, fmt.Errorf("pile size must be positive, got %d", pileSize)
	}
	return &Match{
		remaining: pileSize,
		pileSize:  pileSize,
		players:   players,
		state:     MatchStateNotStarted,
	}, nil
}

// Resume recreates a match that was in progress, e.g. from a replayed log.
func Resume(players []*Player, pileSize int, turn int, remaining int) (*Match, error) {
	m, err := NewMatch(players, pileSize)
	if err != nil {
		return nil, err
	}
	if turn < 0 {
		return nil, fmt.Errorf("turn must not be negative, got %d", turn)
	}
	if remaining < 1 || remaining > pileSize {
		return nil, fmt.Errorf("remaining must be within [1, %d], got %d", pileSize, remaining)
	}
	m.turn = turn
	m.remaining = remaining
	m.state = MatchStateInProgress
	return m, nil
}

type FirstTurnMethod int

const (
	FirstTurnForced FirstTurnMethod = iota
	FirstTurnRandom
	FirstTurnCoin
)

func (f FirstTurnMethod) String() string {
	switch f {
	case FirstTurnForced:
		return "forced"
	case FirstTurnRandom:
		return "random"
	case FirstTurnCoin:
		return "coin"
	default:
		return "unknown"
	}
}

// FirstTurn records how the opening seat was chosen.
type FirstTurn struct {
	Turn   int
	Method FirstTurnMethod
	// Call and Outcome are "heads" or "tails" for a coin toss
	Call    string
	Outcome string
}

// StartOptions controls the first turn decision. Build it with
// NewStartOptions unless the opening seat is forced.
type StartOptions struct {
	// FirstTurn forces the opening seat when it is not constants.NoForcedTurn.
	// The zero value forces seat 0.
	FirstTurn int
	// Prompter is asked for the coin call in two player matches
	Prompter Prompter
	Rand     *rand.Rand
}

// NewStartOptions leaves the first turn to the match: a coin toss or a
// random seat.
func NewStartOptions(prompter Prompter, rng *rand.Rand) StartOptions {
	return StartOptions{
		FirstTurn: constants.NoForcedTurn,
		Prompter:  prompter,
		Rand:      rng,
	}
}

// Start decides the first turn and moves the match into progress.
// Three player matches pick a seat uniformly. Two player matches toss a coin
// called by the second seat; a correct call lets the second seat open.
// Any other player count needs a forced first turn.
func (m *Match) Start(opts StartOptions) (*FirstTurn, error) {
	if m.state != MatchStateNotStarted {
		return nil, fmt.Errorf("cannot start a match that is %s", m.state)
	}

	decision, err := m.decideFirstTurn(opts)
	if err != nil {
		return nil, err
	}

	m.turn = decision.Turn
	m.state = MatchStateInProgress
	return decision, nil
}

func (m *Match) decideFirstTurn(opts StartOptions) (*FirstTurn, error) {
	n := len(m.players)
	if opts.FirstTurn != constants.NoForcedTurn {
		if opts.FirstTurn < 0 || opts.FirstTurn >= n {
			return nil, fmt.Errorf("first turn %d out of range for %d players", opts.FirstTurn, n)
		}
		return &FirstTurn{Turn: opts.FirstTurn, Method: FirstTurnForced}, nil
	}

	switch n {
	case 3:
		if opts.Rand == nil {
			return nil, fmt.Errorf("random first turn needs a random source")
		}
		return &FirstTurn{Turn: opts.Rand.Intn(3), Method: FirstTurnRandom}, nil
	case 2:
		if opts.Prompter == nil || opts.Rand == nil {
			return nil, ErrFirstTurnRequired
		}
		return tossCoin(m.players[1], opts.Prompter, opts.Rand)
	default:
		return nil, ErrFirstTurnRequired
	}
}

func tossCoin(caller *Player, prompter Prompter, rng *rand.Rand) (*FirstTurn, error) {
	var call string
	for {
		answer, err := prompter.PromptString(fmt.Sprintf("%s, choose 'heads' or 'tails': ", caller.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read coin call: %w", err)
		}
		call = strings.ToLower(strings.TrimSpace(answer))
		if call == "heads" || call == "tails" {
			break
		}
	}

	outcome := "heads"
	if rng.Intn(2) == 1 {
		outcome = "tails"
	}

	turn := 0
	if call == outcome {
		turn = 1
	}
	return &FirstTurn{
		Turn:    turn,
		Method:  FirstTurnCoin,
		Call:    call,
		Outcome: outcome,
	}, nil
}

// Step plays one move for the active player. Human answers are requested
// again until legal; an illegal answer from any other strategy is an error.
func (m *Match) Step() (*Move, bool, error) {
	switch m.state {
	case MatchStateNotStarted:
		return nil, false, ErrMatchNotStarted
	case MatchStateTerminal:
		return nil, true, ErrMatchOver
	}

	seat := m.ActiveSeat()
	player := m.players[seat]

	var count int
	for {
		c, err := player.strategy.Choose(m.remaining)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get move from %s: %w", player.Name(), err)
		}
		if err := m.validate(player, c); err != nil {
			if player.IsHuman() {
				log.Debug("Rejected move %d from %s with %d remaining", c, player.Name(), m.remaining)
				continue
			}
			return nil, false, err
		}
		count = c
		break
	}

	move := m.advance(seat, count)
	return move, m.IsTerminal(), nil
}

// Apply plays a known move for the active player, as when replaying a log.
func (m *Match) Apply(count int) (*Move, bool, error) {
	switch m.state {
	case MatchStateNotStarted:
		return nil, false, ErrMatchNotStarted
	case MatchStateTerminal:
		return nil, true, ErrMatchOver
	}

	seat := m.ActiveSeat()
	player := m.players[seat]
	if err := m.validate(player, count); err != nil {
		return nil, false, err
	}

	move := m.advance(seat, count)
	return move, m.IsTerminal(), nil
}

func (m *Match) advance(seat int, count int) *Move {
	m.remaining -= count
	m.turn++
	if m.remaining == 0 {
		m.state = MatchStateTerminal
	}
	return &Move{
		Seat:      seat,
		Player:    m.players[seat],
		Count:     count,
		Remaining: m.remaining,
	}
}

func (m *Match) validate(player *Player, count int) error {
	if count < constants.MinTake || count > constants.MaxTake || count > m.remaining {
		return &InvalidMoveError{
			Player:    player.Name(),
			Move:      count,
			Remaining: m.remaining,
		}
	}
	return nil
}

// Loser returns the player who took the last token.
func (m *Match) Loser() (*Player, error) {
	seat, err := m.LoserSeat()
	if err != nil {
		return nil, err
	}
	return m.players[seat], nil
}

func (m *Match) LoserSeat() (int, error) {
	if m.state != MatchStateTerminal {
		return 0, ErrMatchInProgress
	}
	return (m.turn - 1) % len(m.players), nil
}

// ActiveSeat is the seat whose turn it is.
func (m *Match) ActiveSeat() int {
	return m.turn % len(m.players)
}

func (m *Match) ActivePlayer() *Player {
	return m.players[m.ActiveSeat()]
}

func (m *Match) Turn() int {
	return m.turn
}

func (m *Match) Remaining() int {
	return m.remaining
}

func (m *Match) PileSize() int {
	return m.pileSize
}

func (m *Match) Players() []*Player {
	return m.players
}

func (m *Match) State() MatchState {
	return m.state
}

func (m *Match) IsTerminal() bool {
	return m.state == MatchStateTerminal
}
