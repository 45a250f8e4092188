package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

// Sound identifies one sound effect.
type Sound int

const (
	SoundNone Sound = iota
	SoundPlayerShoot
	SoundEnemyShoot
	SoundEnemyHit
	SoundPlayerHit
	SoundSpeedUp
	SoundGameWin
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundPlayerShoot:
		return "player-shoot"
	case SoundEnemyShoot:
		return "enemy-shoot"
	case SoundEnemyHit:
		return "enemy-hit"
	case SoundPlayerHit:
		return "player-hit"
	case SoundSpeedUp:
		return "speed-up"
	case SoundGameWin:
		return "game-win"
	case SoundGameOver:
		return "game-over"
	default:
		return "none"
	}
}

// SoundFor maps a gameplay event to its sound effect.
// A finished match plays the win jingle only for victories.
func SoundFor(e invaders.Event) Sound {
	switch ev := e.(type) {
	case invaders.PlayerFired:
		return SoundPlayerShoot
	case invaders.EnemyFired:
		return SoundEnemyShoot
	case invaders.EnemyDestroyed:
		return SoundEnemyHit
	case invaders.PlayerHit:
		return SoundPlayerHit
	case invaders.SpeedIncreased:
		return SoundSpeedUp
	case invaders.MatchEnded:
		if ev.Result.Victory {
			return SoundGameWin
		}
		return SoundGameOver
	default:
		return SoundNone
	}
}

var patches = map[Sound][]note{
	SoundPlayerShoot: {{freq: 1200, endFreq: 600, d: 80 * time.Millisecond, wave: WaveSquare}},
	SoundEnemyShoot:  {{freq: 300, endFreq: 180, d: 90 * time.Millisecond, wave: WaveSquare}},
	SoundEnemyHit:    {{freq: 0, d: 120 * time.Millisecond, wave: WaveNoise}},
	SoundPlayerHit: {
		{freq: 220, endFreq: 110, d: 150 * time.Millisecond, wave: WaveSquare},
		{freq: 0, d: 200 * time.Millisecond, wave: WaveNoise},
	},
	SoundSpeedUp: {
		{freq: 440, d: 70 * time.Millisecond, wave: WaveSine},
		{freq: 660, d: 70 * time.Millisecond, wave: WaveSine},
		{freq: 880, d: 110 * time.Millisecond, wave: WaveSine},
	},
	SoundGameWin: {
		{freq: 523.25, d: 120 * time.Millisecond, wave: WaveSquare},
		{freq: 659.25, d: 120 * time.Millisecond, wave: WaveSquare},
		{freq: 783.99, d: 120 * time.Millisecond, wave: WaveSquare},
		{freq: 1046.5, d: 300 * time.Millisecond, wave: WaveSquare},
	},
	SoundGameOver: {
		{freq: 392, d: 180 * time.Millisecond, wave: WaveSine},
		{freq: 330, d: 180 * time.Millisecond, wave: WaveSine},
		{freq: 262, endFreq: 196, d: 400 * time.Millisecond, wave: WaveSine},
	},
}

// Build returns a playable streamer for s at the given volume, or nil for
// SoundNone.
func Build(s Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	notes, ok := patches[s]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = n.streamer(rate)
	}
	return volume(beep.Seq(parts...), vol)
}

// Length is the playing time of s.
func Length(s Sound) time.Duration {
	var d time.Duration
	for _, n := range patches[s] {
		d += n.d
	}
	return d
}
