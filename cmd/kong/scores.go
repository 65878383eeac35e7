package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kong/internal/platform/tui"
	"github.com/vovakirdan/tui-kong/internal/registry"
	"github.com/vovakirdan/tui-kong/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard for a mode",
	Long: `Display the best runs for a mode (kong or kong_endless).

Examples:
  kong scores
  kong scores kong_endless --limit 20
  kong scores -i
  kong scores kong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultLimit, "Number of entries to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all modes in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every entry of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "kong"
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if flagClear {
		if err := store.ClearEntries(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared leaderboard for %s\n", game.Title())
		return nil
	}

	entries, err := store.TopEntries(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard - %s\n", game.Title())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'kong play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")

	for i, e := range entries {
		lvl := fmt.Sprintf("%d", e.Level)
		if e.Completed {
			lvl += "*"
		}
		fmt.Printf("  %-4d  %-16s  %-8d  %-5s  %s\n",
			i+1, e.Name, e.Score, lvl, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("* completed the level set")
	return nil
}
