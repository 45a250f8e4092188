// Package config provides YAML-based configuration loading and difficulty
// presets for the invaders engine.
package config

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Defaults for a match when the player supplies nothing.
const (
	DefaultFireKey      = "Space"
	DefaultDurationSecs = 120
	DefaultPlayerColor  = "#6d28d9"
	DefaultEnemyColor   = "#ef4444"
)

// InvadersConfig contains all configuration for the Space Invaders game.
type InvadersConfig struct {
	Field       FieldConfig      `yaml:"field"`
	Match       MatchConfig      `yaml:"match"`
	Player      PlayerConfig     `yaml:"player"`
	Formation   FormationConfig  `yaml:"formation"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
	Rules       RulesConfig      `yaml:"rules"`
}

// FieldConfig is the play field size in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// MatchConfig is chosen by the player before a match and stays fixed for it.
type MatchConfig struct {
	FireKey      string `yaml:"fire_key"` // "Space" or a single letter A-Z
	DurationSecs int    `yaml:"duration_secs"`
	PlayerColor  string `yaml:"player_color"`
	EnemyColor   string `yaml:"enemy_color"`
}

// PlayerConfig defines player ship parameters.
type PlayerConfig struct {
	Lives          int     `yaml:"lives"`
	Speed          float64 `yaml:"speed"`
	FireCooldownMs int     `yaml:"fire_cooldown_ms"`
}

// FormationConfig defines the enemy wave.
type FormationConfig struct {
	InitialSpeed float64 `yaml:"initial_speed"`
}

// ProjectileConfig defines bullet speeds and enemy fire behavior.
type ProjectileConfig struct {
	PlayerSpeed     float64 `yaml:"player_speed"`
	PlayerDrift     float64 `yaml:"player_drift"`
	EnemyBaseSpeed  float64 `yaml:"enemy_base_speed"`
	EnemySpeedStep  float64 `yaml:"enemy_speed_step"` // added per escalation
	EnemyDrift      float64 `yaml:"enemy_drift"`
	EnemyFireChance float64 `yaml:"enemy_fire_chance"` // per tick
	EnemyFireGate   float64 `yaml:"enemy_fire_gate"`   // fraction of field height
}

// DifficultyConfig defines the periodic speed escalation.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	IntervalMs     int     `yaml:"interval_ms"`
	Multiplier     float64 `yaml:"multiplier"`
	MaxEscalations int     `yaml:"max_escalations"`
}

// RulesConfig holds scoring and hit rules.
type RulesConfig struct {
	InvulnerabilityMs int `yaml:"invulnerability_ms"` // 0 disables the window
	VictoryScore      int `yaml:"victory_score"`      // needed to win on time-out
}

// WithDefaults returns a copy of m with missing or invalid fields replaced
// by defaults. The fire key is normalized to "Space" or an upper-case letter.
func (m MatchConfig) WithDefaults() MatchConfig {
	m.FireKey = NormalizeFireKey(m.FireKey)
	if m.DurationSecs <= 0 {
		m.DurationSecs = DefaultDurationSecs
	}
	m.PlayerColor = normalizeColor(m.PlayerColor, DefaultPlayerColor)
	m.EnemyColor = normalizeColor(m.EnemyColor, DefaultEnemyColor)
	return m
}

// NormalizeFireKey maps user input to a valid fire key.
// Anything other than "space" or a single ASCII letter yields the default.
func NormalizeFireKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.EqualFold(key, "space") || key == " " {
		return DefaultFireKey
	}
	if len(key) == 1 {
		c := key[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			return string(c)
		}
	}
	return DefaultFireKey
}

// normalizeColor returns hex in canonical "#rrggbb" form, or fallback when
// it does not parse.
func normalizeColor(hex, fallback string) string {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return fallback
	}
	return c.Hex()
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset returns the preset named s, or false when s is unknown.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
