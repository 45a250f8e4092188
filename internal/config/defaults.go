package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Match: MatchConfig{
			FireKey:      DefaultFireKey,
			DurationSecs: DefaultDurationSecs,
			PlayerColor:  DefaultPlayerColor,
			EnemyColor:   DefaultEnemyColor,
		},
		Player: PlayerConfig{
			Lives:          3,
			Speed:          5,
			FireCooldownMs: 300,
		},
		Formation: FormationConfig{
			InitialSpeed: 2,
		},
		Projectiles: ProjectileConfig{
			PlayerSpeed:     7,
			PlayerDrift:     5,
			EnemyBaseSpeed:  3,
			EnemySpeedStep:  0.5,
			EnemyDrift:      4,
			EnemyFireChance: 0.05,
			EnemyFireGate:   0.75,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			IntervalMs:     5000,
			Multiplier:     1.5,
			MaxEscalations: 4,
		},
		Rules: RulesConfig{
			InvulnerabilityMs: 0,
			VictoryScore:      100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultInvadersYAML
}
