package tournament

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/lastone/pkg/console"
	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game/constants"
	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/matchlog"
	"github.com/cbodonnell/lastone/pkg/messages"
	"github.com/cbodonnell/lastone/pkg/queue"
	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/cbodonnell/lastone/pkg/state"
	"github.com/google/uuid"
)

const (
	// DefaultAppendAttempts is how often a log append is tried before the
	// set continues without persistence
	DefaultAppendAttempts = 3
)

// Emitter receives the text the runner reports while a set is played.
type Emitter interface {
	Emit(text string, style console.Style)
}

// PileRenderer is implemented by emitters that can draw the pile.
type PileRenderer interface {
	RenderPile(remaining int)
}

// Runner plays match sets, keeping the match log in step with every move.
type Runner struct {
	log            *matchlog.Log
	emitter        Emitter
	prompter       game.Prompter
	rng            *rand.Rand
	eventQueue     queue.Queue
	standings      state.StandingsManager
	saveResultChan chan<- *models.SetResult
	appendAttempts int
}

type NewRunnerOptions struct {
	// Log is optional; without it sets are played without persistence
	Log     *matchlog.Log
	Emitter Emitter
	// Prompter is used for coin calls and for human seats rebuilt on resume
	Prompter game.Prompter
	Rand     *rand.Rand
	// EventQueue, Standings and SaveResultChan are optional outlets for
	// spectators and the results history
	EventQueue     queue.Queue
	Standings      state.StandingsManager
	SaveResultChan chan<- *models.SetResult
	AppendAttempts int
}

func NewRunner(opts NewRunnerOptions) *Runner {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	attempts := opts.AppendAttempts
	if attempts <= 0 {
		attempts = DefaultAppendAttempts
	}
	return &Runner{
		log:            opts.Log,
		emitter:        opts.Emitter,
		prompter:       opts.Prompter,
		rng:            rng,
		eventQueue:     opts.EventQueue,
		standings:      opts.Standings,
		saveResultChan: opts.SaveResultChan,
		appendAttempts: attempts,
	}
}

// set is the running state of one match set.
type set struct {
	result  *Result
	persist bool
	// complete marks a resumed set whose log already held every match; its
	// result went to the history when it was first played
	complete bool
}

// Run starts a fresh set, replacing any previous match log.
func (r *Runner) Run(ctx context.Context, cfg Config, players []*game.Player) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(players) < constants.MinPlayers {
		return nil, fmt.Errorf("a set needs at least %d players, got %d", constants.MinPlayers, len(players))
	}
	if cfg.FirstTurn >= len(players) {
		return nil, fmt.Errorf("first turn %d out of range for %d players", cfg.FirstTurn, len(players))
	}

	s := r.newSet(cfg, players, headerDifficulty(cfg, players), false)

	header := matchlog.Header{
		BestOf:       cfg.BestOf,
		PileSize:     cfg.PileSize,
		AIDifficulty: s.result.AIDifficulty,
	}
	for _, p := range players {
		header.Names = append(header.Names, p.Name())
	}
	if r.log != nil {
		if err := r.log.WriteHeader(header); err != nil {
			if !matchlog.IsIO(err) {
				return nil, err
			}
			log.Warn("Failed to write match log header: %v", err)
			r.emit(fmt.Sprintf("An error occurred: %v\n", err), console.StyleError)
			r.emit("This set will not be saved\n", console.StyleError)
			s.persist = false
		}
	}

	log.Info("Starting set %s: %d players, best of %d, pile %d", s.result.SetID, len(players), cfg.BestOf, cfg.PileSize)
	r.publishSetStarted(s)

	for i := 0; i < cfg.BestOf; i++ {
		if err := r.playMatch(ctx, s, nil); err != nil {
			return nil, err
		}
	}

	return r.finish(ctx, s), nil
}

// Resume continues the set stored in the match log. A corrupt or unreadable
// log is returned as an error and nothing is played.
func (r *Runner) Resume(ctx context.Context) (*Result, error) {
	if r.log == nil {
		return nil, fmt.Errorf("no match log to resume from")
	}
	replay, err := r.log.Replay()
	if err != nil {
		return nil, err
	}

	players, err := PlayersFromHeader(replay.Header, r.prompter, r.rng)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		PileSize:     replay.Header.PileSize,
		BestOf:       replay.Header.BestOf,
		AIDifficulty: game.Difficulty(replay.Header.AIDifficulty),
		FirstTurn:    constants.NoForcedTurn,
	}
	s := r.newSet(cfg, players, replay.Header.AIDifficulty, true)
	s.complete = replay.Partial == nil && len(replay.Completed) >= cfg.BestOf

	r.emit(fmt.Sprintf("Loaded %d player game. Play best out of %d. Starting Matchsticks: %d \n", len(players), cfg.BestOf, cfg.PileSize), console.StyleHighlight)
	log.Info("Resuming set %s: %d completed matches, partial match %t", s.result.SetID, len(replay.Completed), replay.Partial != nil)

	for _, m := range replay.Completed {
		s.result.Losses[players[m.LoserSeat]]++
		s.result.Matches = append(s.result.Matches, MatchSummary{
			FirstTurn: m.FirstTurn,
			Moves:     append([]int(nil), m.Moves...),
			LoserSeat: m.LoserSeat,
		})
	}
	r.publishSetStarted(s)

	if replay.Partial != nil {
		if err := r.playMatch(ctx, s, replay.Partial); err != nil {
			return nil, err
		}
	}
	for played := replay.MatchesPlayed(); played < cfg.BestOf; played++ {
		if err := r.playMatch(ctx, s, nil); err != nil {
			return nil, err
		}
	}

	return r.finish(ctx, s), nil
}

// PlayersFromHeader rebuilds the seats of a logged set. Seat 0 is the AI when
// the header names a difficulty; every other seat is human.
func PlayersFromHeader(h matchlog.Header, prompter game.Prompter, rng *rand.Rand) ([]*game.Player, error) {
	players := make([]*game.Player, 0, len(h.Names))
	for seat, name := range h.Names {
		difficulty := game.Difficulty(h.AIDifficulty)
		if seat == 0 && difficulty.HasAI() {
			ai, err := game.NewAIPlayer(difficulty, rng)
			if err != nil {
				return nil, err
			}
			players = append(players, game.NewPlayer(name, ai.Strategy()))
			continue
		}
		if prompter == nil {
			return nil, fmt.Errorf("seat %d (%s) is human but there is no prompter", seat, name)
		}
		players = append(players, game.NewHumanPlayer(name, prompter))
	}
	return players, nil
}

func headerDifficulty(cfg Config, players []*game.Player) int {
	if players[0].IsHuman() || !cfg.AIDifficulty.HasAI() {
		return constants.NoAI
	}
	return int(cfg.AIDifficulty)
}

func (r *Runner) newSet(cfg Config, players []*game.Player, aiDifficulty int, resumed bool) *set {
	return &set{
		result: &Result{
			SetID:        uuid.New(),
			Config:       cfg,
			Players:      players,
			Losses:       make(map[*game.Player]int, len(players)),
			Resumed:      resumed,
			AIDifficulty: aiDifficulty,
		},
		persist: r.log != nil,
	}
}

// playMatch plays one match to the end. A partial match from the log is
// continued where it stopped; its first turn is already in the log.
func (r *Runner) playMatch(ctx context.Context, s *set, partial *matchlog.PartialMatch) error {
	players := s.result.Players
	index := len(s.result.Matches) + 1
	summary := MatchSummary{}

	var m *game.Match
	var err error
	if partial != nil {
		m, err = game.Resume(players, s.result.Config.PileSize, partial.Turn, partial.Remaining)
		if err != nil {
			return fmt.Errorf("failed to resume match: %w", err)
		}
		summary.FirstTurn = partial.FirstTurn
		summary.Moves = append(summary.Moves, partial.Moves...)
		r.publish(messages.MessageTypeMatchStarted, &messages.MatchStarted{
			Match:     index,
			FirstTurn: partial.FirstTurn,
			Player:    players[partial.FirstTurn].Name(),
			Method:    "resumed",
			Remaining: partial.Remaining,
		})
	} else {
		m, err = game.NewMatch(players, s.result.Config.PileSize)
		if err != nil {
			return err
		}
		decision, err := m.Start(r.startOptions(s))
		if err != nil {
			return fmt.Errorf("failed to start match: %w", err)
		}
		if decision.Method == game.FirstTurnCoin {
			r.emit(fmt.Sprintf("The coin flipped %s\n", decision.Outcome), console.StyleNotice)
		}
		summary.FirstTurn = decision.Turn
		r.appendRecord(s, "first turn", decision.Turn, r.log.AppendFirstTurn)
		r.publish(messages.MessageTypeMatchStarted, &messages.MatchStarted{
			Match:     index,
			FirstTurn: decision.Turn,
			Player:    players[decision.Turn].Name(),
			Method:    decision.Method.String(),
			Call:      decision.Call,
			Outcome:   decision.Outcome,
			Remaining: m.Remaining(),
		})
	}
	r.updateStandings(ctx, s, m.Remaining(), m.ActiveSeat(), false)

	for !m.IsTerminal() {
		if err := ctx.Err(); err != nil {
			log.Info("Set %s interrupted with %d tokens remaining", s.result.SetID, m.Remaining())
			return err
		}

		r.emit(fmt.Sprintf("There are %d matches remaining\n", m.Remaining()), console.StyleInfo)
		r.renderPile(m.Remaining())

		move, _, err := m.Step()
		if err != nil {
			return fmt.Errorf("failed to play move: %w", err)
		}
		r.emit(fmt.Sprintf("%s played %d\n", move.Player.Name(), move.Count), console.StylePlain)
		r.appendRecord(s, "move", move.Count, r.log.AppendMove)

		summary.Moves = append(summary.Moves, move.Count)
		r.publish(messages.MessageTypeMove, &messages.Move{
			Match:     index,
			Seat:      move.Seat,
			Player:    move.Player.Name(),
			Count:     move.Count,
			Remaining: move.Remaining,
		})
		r.updateStandings(ctx, s, m.Remaining(), m.ActiveSeat(), false)
	}

	loserSeat, err := m.LoserSeat()
	if err != nil {
		return err
	}
	loser := players[loserSeat]
	r.emit(fmt.Sprintf("%s Lost!\n", loser.Name()), console.StyleError)

	summary.LoserSeat = loserSeat
	s.result.Losses[loser]++
	s.result.Matches = append(s.result.Matches, summary)
	r.publish(messages.MessageTypeMatchEnded, &messages.MatchEnded{
		Match:     index,
		LoserSeat: loserSeat,
		Loser:     loser.Name(),
	})
	r.updateStandings(ctx, s, 0, 0, false)
	return nil
}

// startOptions forces a random first turn when the match could not decide
// one itself: no prompter for the coin call, or an unusual player count.
func (r *Runner) startOptions(s *set) game.StartOptions {
	opts := game.NewStartOptions(r.prompter, r.rng)
	opts.FirstTurn = s.result.Config.FirstTurn
	n := len(s.result.Players)
	if opts.FirstTurn == constants.NoForcedTurn && (r.prompter == nil || (n != 2 && n != 3)) {
		opts.FirstTurn = r.rng.Intn(n)
	}
	return opts
}

// appendRecord writes one record to the log, retrying a few times. When every
// attempt fails the rest of the set is played without persistence.
func (r *Runner) appendRecord(s *set, what string, v int, appendFn func(int) error) {
	if !s.persist {
		return
	}

	var err error
	for attempt := 1; attempt <= r.appendAttempts; attempt++ {
		if err = appendFn(v); err == nil {
			return
		}
		log.Warn("Failed to append %s to match log (attempt %d of %d): %v", what, attempt, r.appendAttempts, err)
		if matchlog.IsTorn(err) {
			// the record may be in the log already
			break
		}
	}

	s.persist = false
	r.emit(fmt.Sprintf("An error occurred: %v \n", err), console.StyleError)
	r.emit("The rest of this set will not be saved\n", console.StyleError)
}

func (r *Runner) finish(ctx context.Context, s *set) *Result {
	result := s.result
	standings := result.Standings()

	if result.Config.BestOf > 1 && len(standings) > 0 {
		r.emit(fmt.Sprintf("%s won!\n", standings[0].Player.Name()), console.StyleHighlight)
		r.emit("Details: \n", console.StyleMuted)
		for _, standing := range standings {
			r.emit(fmt.Sprintf("%s lost %d times\n", standing.Player.Name(), standing.Losses), console.StyleMuted)
		}
	}

	winner := ""
	if len(standings) > 0 {
		winner = standings[0].Player.Name()
	}
	r.publish(messages.MessageTypeSetEnded, &messages.SetEnded{
		SetID:     result.SetID.String(),
		Winner:    winner,
		Standings: result.feedStandings(),
	})
	r.updateStandings(ctx, s, 0, 0, true)

	if s.complete {
		log.Info("Set %s was already complete, not saving it again", result.SetID)
	} else if r.saveResultChan != nil {
		select {
		case r.saveResultChan <- result.Model(time.Now()):
		case <-ctx.Done():
			log.Warn("Set %s finished but was not saved: %v", result.SetID, ctx.Err())
		}
	}

	log.Info("Finished set %s, winner %s", result.SetID, winner)
	return result
}

func (r *Runner) publishSetStarted(s *set) {
	names := make([]string, 0, len(s.result.Players))
	for _, p := range s.result.Players {
		names = append(names, p.Name())
	}
	r.publish(messages.MessageTypeSetStarted, &messages.SetStarted{
		SetID:        s.result.SetID.String(),
		Players:      names,
		PileSize:     s.result.Config.PileSize,
		BestOf:       s.result.Config.BestOf,
		AIDifficulty: s.result.AIDifficulty,
		Resumed:      s.result.Resumed,
	})
}

func (r *Runner) publish(t messages.MessageType, payload interface{}) {
	if r.eventQueue == nil {
		return
	}
	if err := r.eventQueue.Enqueue(messages.Event{Type: t, Payload: payload}); err != nil {
		log.Debug("Dropped %s event: %v", t, err)
	}
}

func (r *Runner) updateStandings(ctx context.Context, s *set, remaining int, activeSeat int, finished bool) {
	if r.standings == nil {
		return
	}
	if err := r.standings.Set(ctx, s.result.snapshot(remaining, activeSeat, finished)); err != nil {
		log.Error("Failed to update standings: %v", err)
	}
}

func (r *Runner) emit(text string, style console.Style) {
	if r.emitter != nil {
		r.emitter.Emit(text, style)
	}
}

func (r *Runner) renderPile(remaining int) {
	if renderer, ok := r.emitter.(PileRenderer); ok {
		renderer.RenderPile(remaining)
	}
}
