package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "invaders.yaml"

// LoadInvaders loads the game configuration.
// Search order: customPath -> ~/.invaders/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default.
// Keys missing from the file keep their default values.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	for _, path := range []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultInvadersConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate.normalized(), nil
		}
	}

	if err := yaml.Unmarshal(defaultInvadersYAML, &cfg); err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "configs", filename)
}

// normalized clamps values that would break the simulation back to defaults.
func (c InvadersConfig) normalized() InvadersConfig {
	def := DefaultInvadersConfig()
	c.Match = c.Match.WithDefaults()
	if c.Player.Lives <= 0 {
		c.Player.Lives = def.Player.Lives
	}
	if c.Player.Speed <= 0 {
		c.Player.Speed = def.Player.Speed
	}
	if c.Player.FireCooldownMs < 0 {
		c.Player.FireCooldownMs = def.Player.FireCooldownMs
	}
	if c.Formation.InitialSpeed <= 0 {
		c.Formation.InitialSpeed = def.Formation.InitialSpeed
	}
	if c.Difficulty.IntervalMs <= 0 {
		c.Difficulty.IntervalMs = def.Difficulty.IntervalMs
	}
	if c.Difficulty.Multiplier < 1 {
		c.Difficulty.Multiplier = def.Difficulty.Multiplier
	}
	if c.Difficulty.MaxEscalations < 0 {
		c.Difficulty.MaxEscalations = 0
	}
	if c.Rules.InvulnerabilityMs < 0 {
		c.Rules.InvulnerabilityMs = 0
	}
	return c
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true

	// Lives stay at the configured value on every preset.
	switch preset {
	case DifficultyEasy:
		cfg.Formation.InitialSpeed = 1.5
		cfg.Projectiles.EnemyFireChance = 0.03
	case DifficultyHard:
		cfg.Formation.InitialSpeed = 3
		cfg.Projectiles.EnemyFireChance = 0.08
	}
}
