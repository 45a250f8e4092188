package invaders

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

const frame = time.Second / 60

var testField = Field{Width: 800, Height: 600}

func testEpoch() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

// quietSettings disables random enemy fire so tests control every bullet.
func quietSettings() *config.InvadersConfig {
	s := config.DefaultInvadersConfig()
	s.Projectiles.EnemyFireChance = 0
	return &s
}

// recorder captures everything the driver hands to its sinks.
type recorder struct {
	events  []Event
	results []MatchResult
	frames  int
}

func (r *recorder) Render(Snapshot) error {
	r.frames++
	return nil
}

func (r *recorder) Notify(e Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Record(m MatchResult) error {
	r.results = append(r.results, m)
	return nil
}

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

func newTestDriver(t *testing.T, settings *config.InvadersConfig, m config.MatchConfig) (*Driver, *ManualClock, *recorder) {
	t.Helper()
	clock := NewManualClock(testEpoch())
	rec := &recorder{}
	d := NewDriver(DriverOptions{
		Clock:    clock,
		Seed:     7,
		Settings: settings,
		Render:   rec,
		Notify:   rec,
		Results:  rec,
	})
	if err := d.Start(m, testField); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return d, clock, rec
}

// step advances the clock by one frame and ticks once.
func step(d *Driver, clock *ManualClock, in core.InputFrame) TickResult {
	clock.Advance(frame)
	return d.Tick(in)
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

// bulletInside returns a player bullet that still overlaps e after one
// tick of movement.
func bulletInside(e Enemy) Bullet {
	return Bullet{X: e.X + EnemyWidth/2 - BulletWidth/2, Y: e.Y + 10, VY: -7}
}

// enemyBulletOnPlayer returns an enemy bullet that overlaps p after one
// tick of movement.
func enemyBulletOnPlayer(p Player) Bullet {
	return Bullet{X: p.X + 20, Y: p.Y + 10, VY: 0.5}
}

var errSink = errors.New("sink is down")
