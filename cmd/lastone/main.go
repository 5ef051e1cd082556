package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cbodonnell/lastone/pkg/console"
	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/game/constants"
	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/matchlog"
	"github.com/cbodonnell/lastone/pkg/repositories"
	"github.com/cbodonnell/lastone/pkg/tournament"
	"github.com/cbodonnell/lastone/pkg/version"
)

const usage = `Usage: lastone [command] [flags]

Commands:
  menu     interactive menu (default)
  play     play a set without the menu
  resume   continue the saved set
  inspect  print the saved set
  export   write a compressed copy of the saved set
  import   replace the saved set with an exported copy

Flags:
`

func main() {
	command := "menu"
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	flags := flag.NewFlagSet("lastone", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), usage)
		flags.PrintDefaults()
	}
	logFile := flags.String("log-file", matchlog.DefaultPath, "match log file")
	logLevel := flags.String("log-level", "warn", "Log level")
	serveAddr := flags.String("serve", "", "address to serve the API and spectator feed on, e.g. :9090")
	allowOrigin := flags.String("allow-origin", "*", "allowed CORS origin for the API")
	history := flags.Bool("history", true, "save finished sets to the results history")
	color := flags.Bool("color", true, "colored output")
	seed := flags.Int64("seed", 0, "random seed, 0 seeds from the clock")
	playerNames := flags.String("players", "", "comma-separated player names for play")
	aiDifficulty := flags.Int("ai", constants.NoAI, "AI difficulty for seat 0 (0: chaotic, 1: easy, 2: hard), -1 for none")
	pileSize := flags.Int("pile", constants.DefaultPileSize, "starting matchsticks")
	bestOf := flags.Int("best-of", constants.DefaultBestOf, "number of matches in the set")
	firstTurn := flags.Int("first", constants.NoForcedTurn, "seat that opens every match, -1 to decide per match")
	output := flags.String("o", "", "archive to write for export")
	input := flags.String("i", "", "archive to read for import")
	flags.Parse(args)

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Starting lastone version %s", version.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debug("Random seed %d", *seed)

	cfg := tournament.DefaultConfig()
	cfg.PileSize = *pileSize
	cfg.BestOf = *bestOf
	cfg.FirstTurn = *firstTurn
	if *aiDifficulty != constants.NoAI {
		cfg.AIDifficulty = game.Difficulty(*aiDifficulty)
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	var repository repositories.Repository
	if *history || *serveAddr != "" {
		repository, err = repositories.Open(ctx, os.Getenv("LASTONE_DATABASE_URL"))
		if err != nil {
			panic(fmt.Sprintf("Failed to open results history: %v", err))
		}
	}
	services := startBackend(ctx, newBackendOptions{
		Repository:  repository,
		ServeAddr:   *serveAddr,
		AllowOrigin: *allowOrigin,
	})

	a := newApp(services.appOptions(newAppOptions{
		Console: console.NewConsole(console.NewConsoleOptions{In: os.Stdin, Out: os.Stdout, Color: *color}),
		Log:     matchlog.New(*logFile),
		Rand:    rand.New(rand.NewSource(*seed)),
		Config:  cfg,
	}))

	err = runCommand(ctx, a, command, commandArgs{
		playerNames:  *playerNames,
		aiDifficulty: game.Difficulty(*aiDifficulty),
		output:       *output,
		input:        *input,
	})
	if err != nil && !interrupted(err) {
		log.Error("%s failed: %v", command, err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
	}

	if *serveAddr != "" && ctx.Err() == nil {
		a.console.Emit(fmt.Sprintf("Serving on %s, press Ctrl+C to stop\n", *serveAddr), console.StyleMuted)
		<-ctx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	services.close(shutdownCtx)

	if err != nil && !interrupted(err) {
		os.Exit(1)
	}
}

type commandArgs struct {
	playerNames  string
	aiDifficulty game.Difficulty
	output       string
	input        string
}

func runCommand(ctx context.Context, a *app, command string, args commandArgs) error {
	switch command {
	case "menu":
		return a.menu(ctx)
	case "play":
		players, err := a.playersFromNames(args.playerNames, args.aiDifficulty)
		if err != nil {
			return err
		}
		return a.play(ctx, players)
	case "resume":
		return a.resume(ctx)
	case "inspect":
		return a.inspect(os.Stdout)
	case "export":
		if args.output == "" {
			return fmt.Errorf("export needs -o")
		}
		return a.export(args.output)
	case "import":
		if args.input == "" {
			return fmt.Errorf("import needs -i")
		}
		return a.importArchive(args.input)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
