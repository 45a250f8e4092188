package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/account"
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Match flags shared by play and menu.
var (
	flagConfig      string
	flagDifficulty  string
	flagFireKey     string
	flagMinutes     int
	flagPlayerColor string
	flagEnemyColor  string
)

func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagFireKey, "fire-key", "", "Fire key: Space or a letter A-Z")
	cmd.Flags().IntVar(&flagMinutes, "minutes", 0, "Match length in minutes")
	cmd.Flags().StringVar(&flagPlayerColor, "player-color", "", "Player ship color (#rrggbb)")
	cmd.Flags().StringVar(&flagEnemyColor, "enemy-color", "", "Enemy ship color (#rrggbb)")
}

// matchSettings loads the game config and applies the match flags on top.
func matchSettings(cmd *cobra.Command, logger *log.Logger) (config.MatchConfig, error) {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return config.MatchConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	invaders.SetConfigPath(flagConfig)
	invaders.SetDifficultyPreset(flagDifficulty)

	settings, err := invaders.LoadSettings()
	if err != nil {
		if flagConfig != "" {
			return config.MatchConfig{}, err
		}
		logger.Warn("using default config", "err", err)
	}

	m := settings.Match
	if cmd.Flags().Changed("fire-key") {
		m.FireKey = flagFireKey
	}
	if flagMinutes > 0 {
		m.DurationSecs = flagMinutes * 60
	}
	if flagPlayerColor != "" {
		m.PlayerColor = flagPlayerColor
	}
	if flagEnemyColor != "" {
		m.EnemyColor = flagEnemyColor
	}
	return m.WithDefaults(), nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed // 0 picks a fresh seed per match
	return cfg
}

// newLogger builds the command logger. Without --log-file logs go to
// fallback; the returned func closes the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// openAccounts opens the database and seeds the default player.
func openAccounts(logger *log.Logger) (*storage.Store, *account.Service, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	accounts := account.NewService(store, account.WithLogger(logger))
	if err := accounts.EnsureDefaultUser(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("seeding default user: %w", err)
	}
	return store, accounts, nil
}

// fail prints err to stderr and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
