// kong is a Donkey-Kong-style platformer for the terminal.
//
// Usage:
//
//	kong                    - Open the mode menu
//	kong play               - Play the campaign directly
//	kong play --endless     - Loop the levels until the last life is gone
//	kong scores [mode]      - Show the leaderboard for a mode
//	kong levels [dir]       - List and validate level files
//	kong serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.kong/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--levels <dir>        - Play the levels in dir instead of the built-in set
//	--debug-log <path>    - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-kong/internal/core"
	"github.com/vovakirdan/tui-kong/internal/games/kong"
	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
	"github.com/vovakirdan/tui-kong/internal/platform/tui"
	"github.com/vovakirdan/tui-kong/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagDebugLog   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kong",
	Short: "Kong - climb, jump and smash barrels in your terminal",
	Long: `Kong is a terminal platformer. Climb ladders, jump over rolling
barrels, grab the hammer and rescue the princess.

Without a subcommand the mode menu opens. After a game ends you
return to the menu.

Available commands:
  play     - Play a mode directly
  scores   - View the leaderboard
  levels   - List and validate level files
  serve    - Start SSH server for remote play

Examples:
  kong
  kong play --difficulty hard
  kong play --endless
  kong play --levels ./levels --watch
  kong serve --ssh :2222
  kong scores kong_endless`,
	PersistentPreRunE: setupGame,
	RunE:              runSession,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kong/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDebugLog, "debug-log", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupGame applies the game flags shared by every command.
func setupGame(_ *cobra.Command, _ []string) error {
	kong.SetConfigPath(flagConfig)
	kong.SetDifficultyPreset(flagDifficulty)

	if flagDebugLog != "" {
		f, err := os.OpenFile(flagDebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		kong.SetLogger(log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
			Prefix:          "kong",
		}))
	}

	if flagLevels != "" {
		set, err := level.NewLoader(flagLevels).LoadSet()
		if err != nil {
			return err
		}
		kong.SetLevels(set)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the leaderboard. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runSession(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	return tui.RunSession(store, runtimeConfig(), os.Getenv("USER"))
}
