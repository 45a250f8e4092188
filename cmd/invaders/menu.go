package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Log in and open the main menu",
	Long: `Log in and open the main menu. From there you can start a match,
change match settings, look at the leaderboard or log out.

Menu controls:
  ↑/↓ or W/S   - Navigate
  Enter        - Select
  Q            - Quit

Examples:
  invaders menu
  invaders menu --difficulty easy
  invaders menu --user p --mute`,
	Run: runMenu,
}

func init() {
	addMatchFlags(menuCmd)
	menuCmd.Flags().StringVar(&flagUser, "user", "", "Skip the login screen for this existing player")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runMenu(cmd *cobra.Command, _ []string) {
	runSession(cmd, false)
}
