package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <user>",
	Short: "Show a player's match history",
	Long: `Lists a player's finished matches, best score first.

Examples:
  invaders history p
  invaders history alice --limit 5`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to show (0 = all)")
}

func runHistory(_ *cobra.Command, args []string) {
	username := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if _, err := store.UserByUsername(username); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail("unknown player %q", username)
		}
		fail("%v", err)
	}

	records, err := store.History(username, flagHistoryLimit)
	if err != nil {
		fail("retrieving history: %v", err)
	}

	fmt.Printf("Match history - %s\n", username)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No matches played yet.")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-9s  %s\n", "Rank", "Score", "Kills", "Time", "Result", "When")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-9s  %s\n", "----", "-----", "-----", "----", "------", "----")
	for i, r := range records {
		result := "Defeat"
		if r.Victory {
			result = "Victory"
		}
		fmt.Printf("  %-4d  %-8s  %-5d  %-6s  %-9s  %s\n",
			i+1,
			humanize.Comma(int64(r.Score)),
			r.EnemiesKilled,
			invaders.FormatClock(r.ElapsedSecs),
			result,
			humanize.Time(r.CompletedAt))
	}
}
