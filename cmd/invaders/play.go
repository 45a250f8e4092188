package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/audio"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagUser string
	flagMute bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Log in and start a match",
	Long: `Log in and start a match right away. When the match ends the
results screen offers a replay, the settings screen or the main menu.

Controls:
  ←/→ or A/D   - Move
  Space        - Fire (see --fire-key)
  P            - Pause
  Q            - Back to the menu
  Ctrl+S       - Save a screenshot

Examples:
  invaders play
  invaders play --user p
  invaders play --difficulty hard --minutes 3
  invaders play --fire-key F --player-color '#22c55e'
  invaders play --config ./my-invaders.yaml --mute`,
	Run: runPlay,
}

func init() {
	addMatchFlags(playCmd)
	playCmd.Flags().StringVar(&flagUser, "user", "", "Skip the login screen for this existing player")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(cmd *cobra.Command, _ []string) {
	runSession(cmd, true)
}

// runSession runs a local session; direct skips the main menu after login.
func runSession(cmd *cobra.Command, direct bool) {
	logger, closeLog, err := newLogger("invaders", io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	match, err := matchSettings(cmd, logger)
	if err != nil {
		fail("%v", err)
	}

	store, accounts, err := openAccounts(logger)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	if flagUser != "" {
		if _, err := store.UserByUsername(flagUser); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fail("unknown player %q (run 'invaders register' first)", flagUser)
			}
			fail("%v", err)
		}
	}

	// A missing audio device only costs the effects; Init logs it.
	sink := audio.NewSink(audio.Options{Muted: flagMute, Logger: logger})
	_ = sink.Init()
	defer sink.Close()

	err = tui.Run(tui.SessionOptions{
		Store:    store,
		Accounts: accounts,
		Runtime:  runtimeConfig(),
		Match:    match,
		Username: flagUser,
		Direct:   direct,
		Sounds:   sink,
		Logger:   logger,
	})
	if err != nil {
		fail("%v", err)
	}
}
