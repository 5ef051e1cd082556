package main

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cbodonnell/lastone/pkg/console"
	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game/constants"
	"github.com/cbodonnell/lastone/pkg/matchlog"
	"github.com/cbodonnell/lastone/pkg/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, input string) (*app, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	a := newApp(newAppOptions{
		Console: console.NewConsole(console.NewConsoleOptions{In: strings.NewReader(input), Out: out}),
		Log:     matchlog.New(filepath.Join(t.TempDir(), matchlog.DefaultPath)),
		Rand:    rand.New(rand.NewSource(5)),
		Config:  tournament.DefaultConfig(),
	})
	return a, out
}

func writeTestLog(t *testing.T, l *matchlog.Log, header matchlog.Header, records ...matchlog.MatchRecord) {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, matchlog.Encode(buf, header, records))
	require.NoError(t, os.WriteFile(l.Path(), buf.Bytes(), 0o644))
}

func TestApp_MenuSinglePlayer(t *testing.T) {
	input := strings.Join([]string{
		// options: 5 matchsticks, one match, hard AI
		"4", "5", "1", "2",
		// single player; taking one at a time from 5 loses to the hard AI
		"1", "Ann", "heads", "1", "1",
		"6",
	}, "\n") + "\n"
	a, out := newTestApp(t, input)

	require.NoError(t, a.menu(context.Background()))
	assert.Contains(t, out.String(), "Ann Lost!\n")
	assert.Contains(t, out.String(), "The coin flipped ")

	replay, err := a.matchLog.Replay()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hard AI", "Ann"}, replay.Header.Names)
	assert.Equal(t, int(game.DifficultyHard), replay.Header.AIDifficulty)
	assert.Equal(t, 5, replay.Header.PileSize)
	assert.Equal(t, []int{1}, replay.Losers())
}

func TestApp_MenuLoadGame(t *testing.T) {
	t.Run("no saved game", func(t *testing.T) {
		a, out := newTestApp(t, "5\n6\n")
		require.NoError(t, a.menu(context.Background()))
		assert.Contains(t, out.String(), "There is no saved game\n")
	})

	t.Run("corrupt saved game", func(t *testing.T) {
		a, out := newTestApp(t, "5\n6\n")
		writeTestLog(t, a.matchLog,
			matchlog.Header{BestOf: 1, PileSize: 5, AIDifficulty: constants.NoAI, Names: []string{"A", "B"}},
			matchlog.MatchRecord{FirstTurn: 0, Moves: []int{3, 3}},
		)

		require.NoError(t, a.menu(context.Background()))
		assert.Contains(t, out.String(), "Could not load the saved game")
	})

	t.Run("finishes the saved match", func(t *testing.T) {
		a, out := newTestApp(t, "5\n1\n6\n")
		writeTestLog(t, a.matchLog,
			matchlog.Header{BestOf: 1, PileSize: 5, AIDifficulty: constants.NoAI, Names: []string{"A", "B"}},
			matchlog.MatchRecord{FirstTurn: 0, Moves: []int{2, 2}},
		)

		require.NoError(t, a.menu(context.Background()))
		assert.Contains(t, out.String(), "Loaded 2 player game. Play best out of 1. Starting Matchsticks: 5 \n")
		assert.Contains(t, out.String(), "A Lost!\n")
	})
}

func TestApp_MenuIgnoresUnknownChoices(t *testing.T) {
	a, out := newTestApp(t, "9\n0\n6\n")
	require.NoError(t, a.menu(context.Background()))
	assert.Equal(t, 3, strings.Count(out.String(), "Choose an option: "))
}

func TestApp_MenuInputClosed(t *testing.T) {
	a, _ := newTestApp(t, "")
	err := a.menu(context.Background())
	assert.ErrorIs(t, err, console.ErrClosed)
	assert.True(t, interrupted(err))
}

func TestApp_OptionsRepromptsOutOfRange(t *testing.T) {
	a, _ := newTestApp(t, "0\n7\n-1\n3\n-1\n1\n")
	require.NoError(t, a.options(context.Background()))
	assert.Equal(t, 7, a.cfg.PileSize)
	assert.Equal(t, 3, a.cfg.BestOf)
	assert.Equal(t, game.DifficultyEasy, a.cfg.AIDifficulty)
}

func TestApp_PlayersFromNames(t *testing.T) {
	tests := []struct {
		name       string
		names      string
		difficulty game.Difficulty
		want       []string
		wantErr    bool
	}{
		{name: "two humans", names: "A,B", difficulty: game.DifficultyNone, want: []string{"A", "B"}},
		{name: "ai first", names: "Ann", difficulty: game.DifficultyEasy, want: []string{"Easy AI", "Ann"}},
		{name: "blank names skipped", names: " A , ,C", difficulty: game.DifficultyNone, want: []string{"A", "C"}},
		{name: "alone", names: "A", difficulty: game.DifficultyNone, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, "")
			players, err := a.playersFromNames(tt.names, tt.difficulty)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, p := range players {
				names = append(names, p.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestApp_Inspect(t *testing.T) {
	a, _ := newTestApp(t, "")
	writeTestLog(t, a.matchLog,
		matchlog.Header{BestOf: 3, PileSize: 5, AIDifficulty: constants.NoAI, Names: []string{"A", "B"}},
		matchlog.MatchRecord{FirstTurn: 0, Moves: []int{2, 3}},
		matchlog.MatchRecord{FirstTurn: 1, Moves: []int{1}},
	)

	out := &bytes.Buffer{}
	require.NoError(t, a.inspect(out))
	assert.Equal(t, "Players: A, B\n"+
		"Best of: 3\n"+
		"Starting matchsticks: 5\n"+
		"Match 1: A opened, moves [2 3], B lost\n"+
		"Match 2: B opened, moves [1], 4 remaining, A to move\n", out.String())
}

func TestApp_ExportImport(t *testing.T) {
	source, _ := newTestApp(t, "")
	writeTestLog(t, source.matchLog,
		matchlog.Header{BestOf: 2, PileSize: 5, AIDifficulty: int(game.DifficultyHard), Names: []string{"Hard AI", "Ann"}},
		matchlog.MatchRecord{FirstTurn: 1, Moves: []int{1, 3, 1}},
	)
	archive := filepath.Join(t.TempDir(), "set.zst")
	require.NoError(t, source.export(archive))

	target, out := newTestApp(t, "")
	require.NoError(t, target.importArchive(archive))
	assert.Equal(t, "Imported 2 player game with 1 of 2 matches played\n", out.String())

	want, err := os.ReadFile(source.matchLog.Path())
	require.NoError(t, err)
	got, err := os.ReadFile(target.matchLog.Path())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunCommand(t *testing.T) {
	a, _ := newTestApp(t, "")

	assert.Error(t, runCommand(context.Background(), a, "dance", commandArgs{}))
	assert.Error(t, runCommand(context.Background(), a, "export", commandArgs{}))
	assert.Error(t, runCommand(context.Background(), a, "import", commandArgs{}))
	assert.Error(t, runCommand(context.Background(), a, "play", commandArgs{playerNames: "Solo", aiDifficulty: game.DifficultyNone}))
}
