package main

import (
	"context"
	"fmt"

	"github.com/cbodonnell/lastone/pkg/console"
	"github.com/cbodonnell/lastone/pkg/game"
	"github.com/cbodonnell/lastone/pkg/log"
)

type menuOption struct {
	label  string
	action func(ctx context.Context) error
}

// menu shows the home menu until quit is chosen or the input closes.
func (a *app) menu(ctx context.Context) error {
	quit := false
	options := []menuOption{
		{label: "Single player", action: a.singlePlayer},
		{label: "Two player", action: a.multiPlayer(2)},
		{label: "Three player", action: a.multiPlayer(3)},
		{label: "Options", action: a.options},
		{label: "Load game", action: a.resume},
		{label: "Quit", action: func(context.Context) error {
			quit = true
			return nil
		}},
	}

	for !quit {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.console.Emit("\n", console.StylePlain)
		for i, option := range options {
			a.console.Emit(fmt.Sprintf("%d. %s\n", i+1, option.label), console.StyleNotice)
		}
		choice, err := a.console.PromptInt("Choose an option: ")
		if err != nil {
			return err
		}
		if choice < 1 || choice > len(options) {
			continue
		}

		option := options[choice-1]
		if err := option.action(ctx); err != nil {
			if interrupted(err) {
				return err
			}
			log.Error("%s failed: %v", option.label, err)
			a.console.Emit(fmt.Sprintf("An error occurred: %v\n", err), console.StyleError)
		}
	}
	return nil
}

func (a *app) singlePlayer(ctx context.Context) error {
	ai, err := a.aiPlayer()
	if err != nil {
		return err
	}
	humans, err := a.promptPlayers(1)
	if err != nil {
		return err
	}
	return a.play(ctx, append([]*game.Player{ai}, humans...))
}

func (a *app) multiPlayer(count int) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		players, err := a.promptPlayers(count)
		if err != nil {
			return err
		}
		return a.play(ctx, players)
	}
}

// options updates the configuration used by the next fresh set.
func (a *app) options(ctx context.Context) error {
	pileSize, err := a.promptAtLeast("Enter the starting matchsticks: ", 1)
	if err != nil {
		return err
	}
	bestOf, err := a.promptAtLeast("Play best out of: ", 1)
	if err != nil {
		return err
	}
	difficulty, err := a.promptAtLeast("AI Difficulty (0: chaotic, 1: easy, 2: hard): ", int(game.DifficultyChaotic))
	if err != nil {
		return err
	}

	a.cfg.PileSize = pileSize
	a.cfg.BestOf = bestOf
	a.cfg.AIDifficulty = game.Difficulty(difficulty)
	log.Info("Options set: pile %d, best of %d, difficulty %s", pileSize, bestOf, a.cfg.AIDifficulty)
	return nil
}

func (a *app) promptAtLeast(message string, min int) (int, error) {
	for {
		v, err := a.console.PromptInt(message)
		if err != nil {
			return 0, err
		}
		if v >= min {
			return v, nil
		}
	}
}
