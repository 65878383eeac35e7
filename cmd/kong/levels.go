package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-kong/internal/games/kong/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List and validate level files",
	Long: `Load every level file (` + strings.Join(level.FormatExtensions(), ", ") + `) under dir and
print the resulting level order. Without dir, the built-in levels are listed.
An invalid file makes the command fail with the reason.

Examples:
  kong levels
  kong levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, args []string) error {
	var (
		set *level.Set
		err error
	)
	if len(args) > 0 {
		set, err = level.NewLoader(args[0]).LoadSet()
	} else {
		set, err = level.Builtin()
	}
	if err != nil {
		return err
	}

	levels := set.Levels()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-9s  %-5s  %s\n", "#", maxIDLen, "ID", "Goal", "Throw", "Name")
	fmt.Printf("  %-3s  %-*s  %-9s  %-5s  %s\n", "-", maxIDLen, "--", "----", "-----", "----")

	for _, l := range levels {
		throw := "no"
		if l.CanThrow {
			throw = "yes"
		}
		fmt.Printf("  %-3d  %-*s  %-9s  %-5s  %s\n", l.Index, maxIDLen, l.ID, l.Goal, throw, l.Name)
	}

	fmt.Println()
	fmt.Printf("%d levels OK\n", len(levels))
	return nil
}

