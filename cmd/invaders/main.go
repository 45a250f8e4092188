// invaders is a terminal Space Invaders game with local accounts, per-player
// history and an SSH server for remote play.
//
// Usage:
//
//	invaders play              - Log in and start a match right away
//	invaders menu              - Log in and use the main menu
//	invaders list              - List available games
//	invaders scores            - Show the global leaderboard
//	invaders history <user>    - Show a player's match history
//	invaders register          - Create an account
//	invaders serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.invaders/invaders.db)
//	--log-file <path>   - Write logs to a file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Space Invaders in your terminal",
	Long: `Invaders is a fixed-formation arcade shooter for the terminal.

Shoot down the enemy formation before the clock runs out, the ships reach
your zone, or you run out of lives.

Available commands:
  play      - Log in and start a match
  menu      - Log in and use the main menu
  list      - Show available games
  scores    - View the global leaderboard
  history   - View a player's match history
  register  - Create an account
  serve     - Start SSH server for remote play

Examples:
  invaders play
  invaders play --user p --difficulty hard
  invaders menu --fps 30
  invaders serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/invaders.db", "Path to accounts and scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(serveCmd)
}
