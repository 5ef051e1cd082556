package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/cbodonnell/lastone/pkg/console"
	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/matchlog"
	"github.com/cbodonnell/lastone/pkg/queue"
	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/cbodonnell/lastone/pkg/state"
	"github.com/cbodonnell/lastone/pkg/tournament"
)

// app is one interactive session at the terminal.
type app struct {
	console  *console.Console
	matchLog *matchlog.Log
	runner   *tournament.Runner
	rng      *rand.Rand
	cfg      tournament.Config
}

type newAppOptions struct {
	Console *console.Console
	Log     *matchlog.Log
	Rand    *rand.Rand
	Config  tournament.Config
	// optional outlets, set when history or the spectator feed is enabled
	EventQueue     queue.Queue
	Standings      state.StandingsManager
	SaveResultChan chan<- *models.SetResult
}

func newApp(opts newAppOptions) *app {
	return &app{
		console:  opts.Console,
		matchLog: opts.Log,
		rng:      opts.Rand,
		cfg:      opts.Config,
		runner: tournament.NewRunner(tournament.NewRunnerOptions{
			Log:            opts.Log,
			Emitter:        opts.Console,
			Prompter:       opts.Console,
			Rand:           opts.Rand,
			EventQueue:     opts.EventQueue,
			Standings:      opts.Standings,
			SaveResultChan: opts.SaveResultChan,
		}),
	}
}

// play runs a fresh set with the current configuration.
func (a *app) play(ctx context.Context, players []*game.Player) error {
	_, err := a.runner.Run(ctx, a.cfg, players)
	return err
}

// resume continues the set in the match log. An unreadable log is reported
// and leaves the caller free to carry on.
func (a *app) resume(ctx context.Context) error {
	_, err := a.runner.Resume(ctx)
	switch {
	case err == nil:
		return nil
	case matchlog.IsNotExist(err):
		a.console.Emit("There is no saved game\n", console.StyleError)
		return nil
	case matchlog.IsCorrupt(err), matchlog.IsIO(err):
		log.Warn("Failed to resume from %s: %v", a.matchLog.Path(), err)
		a.console.Emit(fmt.Sprintf("Could not load the saved game: %v\n", err), console.StyleError)
		return nil
	default:
		return err
	}
}

// aiPlayer is the seat 0 player for single player sets.
func (a *app) aiPlayer() (*game.Player, error) {
	difficulty := a.cfg.AIDifficulty
	if !difficulty.HasAI() {
		difficulty = game.DifficultyHard
	}
	return game.NewAIPlayer(difficulty, a.rng)
}

// promptPlayers asks for count human player names.
func (a *app) promptPlayers(count int) ([]*game.Player, error) {
	players := make([]*game.Player, 0, count)
	for i := 1; i <= count; i++ {
		name, err := a.console.PromptString(fmt.Sprintf("Player %d Name: ", i))
		if err != nil {
			return nil, err
		}
		players = append(players, game.NewHumanPlayer(name, a.console))
	}
	return players, nil
}

// playersFromNames builds the seats for non-interactive play. With an AI
// difficulty the AI takes seat 0 ahead of the named players.
func (a *app) playersFromNames(names string, difficulty game.Difficulty) ([]*game.Player, error) {
	var players []*game.Player
	if difficulty.HasAI() {
		ai, err := game.NewAIPlayer(difficulty, a.rng)
		if err != nil {
			return nil, err
		}
		players = append(players, ai)
	}
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		players = append(players, game.NewHumanPlayer(name, a.console))
	}
	if len(players) < 2 {
		return nil, fmt.Errorf("a set needs at least 2 players, got %d", len(players))
	}
	return players, nil
}

// inspect prints the decoded match log.
func (a *app) inspect(w io.Writer) error {
	replay, err := a.matchLog.Replay()
	if err != nil {
		return err
	}

	h := replay.Header
	fmt.Fprintf(w, "Players: %s\n", strings.Join(h.Names, ", "))
	fmt.Fprintf(w, "Best of: %d\n", h.BestOf)
	fmt.Fprintf(w, "Starting matchsticks: %d\n", h.PileSize)
	if difficulty := game.Difficulty(h.AIDifficulty); difficulty.HasAI() {
		fmt.Fprintf(w, "AI difficulty: %s\n", difficulty)
	}
	for i, m := range replay.Completed {
		fmt.Fprintf(w, "Match %d: %s opened, moves %v, %s lost\n", i+1, h.Names[m.FirstTurn], m.Moves, h.Names[m.LoserSeat])
	}
	if p := replay.Partial; p != nil {
		fmt.Fprintf(w, "Match %d: %s opened, moves %v, %d remaining, %s to move\n",
			len(replay.Completed)+1, h.Names[p.FirstTurn], p.Moves, p.Remaining, h.Names[p.Turn%len(h.Names)])
	}
	return nil
}

func (a *app) export(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := a.matchLog.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *app) importArchive(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	replay, err := a.matchLog.Import(f)
	if err != nil {
		return err
	}
	a.console.Emit(fmt.Sprintf("Imported %d player game with %d of %d matches played\n",
		replay.Header.PlayerCount(), replay.MatchesPlayed(), replay.Header.BestOf), console.StyleInfo)
	return nil
}

// interrupted reports whether err only means the session was cancelled.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, console.ErrClosed)
}
