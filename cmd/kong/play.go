package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
	"github.com/vovakirdan/tui-kong/internal/platform/tui"
	"github.com/vovakirdan/tui-kong/internal/registry"
)

var (
	flagEndless bool
	flagWatch   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game directly, skipping the mode menu.

Controls:
  Left/Right, A/D, H/L  - Walk
  Up/Down, W/S, K/J     - Climb ladders
  Space                 - Jump
  P                     - Pause
  R                     - Resume
  Enter                 - Start / Confirm
  Q/Esc                 - Quit (ends the game, then leaves)
  Ctrl+S                - Screenshot

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  kong play
  kong play --endless
  kong play --difficulty hard
  kong play --config ./my-kong.yaml
  kong play --levels ./levels --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Loop the level set until game over")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --levels when its files change")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagWatch && flagLevels == "" {
		return errors.New("--watch requires --levels")
	}

	gameID := "kong"
	if flagEndless {
		gameID = "kong_endless"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	model := tui.NewModel(game, store, runtimeConfig())
	if flagWatch {
		w, err := level.NewWatcher(flagLevels)
		if err != nil {
			return fmt.Errorf("watching levels: %w", err)
		}
		defer w.Close()
		model = model.WithLevelWatch(w, level.NewLoader(flagLevels))
	}

	if err := tui.Run(model); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
