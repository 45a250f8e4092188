package invaders

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// ErrNoField is returned by Start when the play field has no area.
var ErrNoField = errors.New("invaders: play field dimensions must be positive")

// DriverState is the lifecycle state of a Driver.
type DriverState int

const (
	StateIdle DriverState = iota
	StateRunning
	StateEnded
)

func (s DriverState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DriverOptions wires a Driver to its collaborators. Every field is optional.
type DriverOptions struct {
	Clock    Clock
	Seed     int64
	Logger   *log.Logger
	Settings *config.InvadersConfig
	Render   RenderSink
	Notify   NotificationSink
	Results  ResultSink
}

// TickResult is what one Tick produced.
type TickResult struct {
	Snapshot Snapshot
	Ended    bool
	Result   *MatchResult // set only on the tick that ended the match
}

// Driver runs matches: idle -> running -> ended. It is not safe for
// concurrent use; the host calls Tick from a single goroutine.
type Driver struct {
	clock    Clock
	seed     int64
	log      *log.Logger
	settings config.InvadersConfig
	render   RenderSink
	notify   NotificationSink
	results  ResultSink

	state   DriverState
	match   *MatchState
	rng     *RNG
	victory bool
	result  *MatchResult
}

// NewDriver creates an idle driver.
func NewDriver(opts DriverOptions) *Driver {
	d := &Driver{
		clock:    opts.Clock,
		seed:     opts.Seed,
		log:      opts.Logger,
		settings: config.DefaultInvadersConfig(),
		render:   opts.Render,
		notify:   opts.Notify,
		results:  opts.Results,
	}
	if d.clock == nil {
		d.clock = SystemClock()
	}
	if d.log == nil {
		d.log = log.New(io.Discard)
	}
	if opts.Settings != nil {
		d.settings = *opts.Settings
	}
	return d
}

// State returns the lifecycle state.
func (d *Driver) State() DriverState {
	return d.state
}

// Reseed changes the RNG seed used by the next Start.
func (d *Driver) Reseed(seed int64) {
	d.seed = seed
}

// Start begins a new match, discarding any previous one. Missing match
// settings fall back to defaults; only a field without area is fatal.
func (d *Driver) Start(m config.MatchConfig, f Field) error {
	if !f.Valid() {
		return ErrNoField
	}
	d.Stop()

	m = m.WithDefaults()
	now := d.clock.Now()
	d.match = newMatchState(m, f, d.settings, now)
	d.rng = NewRNG(d.seed)
	d.victory = false
	d.result = nil
	d.state = StateRunning

	d.log.Debug("match started",
		"field", fmt.Sprintf("%gx%g", f.Width, f.Height),
		"duration", m.DurationSecs,
		"fire_key", m.FireKey,
		"seed", d.seed)
	return nil
}

// Stop abandons the current match without recording a result and releases
// its timers. Stopping an idle driver is a no-op.
func (d *Driver) Stop() {
	if d.match != nil {
		d.match.timers.release()
	}
	if d.state == StateRunning {
		d.log.Debug("match stopped", "tick", d.match.Tick)
	}
	d.state = StateIdle
}

// Snapshot returns a deep copy of the current match, or an empty snapshot
// when no match was ever started.
func (d *Driver) Snapshot() Snapshot {
	if d.match == nil {
		return Snapshot{State: d.state}
	}
	return takeSnapshot(d.match, d.state, d.victory, d.rng.State())
}

// Result returns the result of the last completed match.
func (d *Driver) Result() (MatchResult, bool) {
	if d.result == nil {
		return MatchResult{}, false
	}
	return *d.result, true
}

// Tick advances the running match by one step. It is a no-op in any other
// state.
func (d *Driver) Tick(in Input) TickResult {
	if d.state != StateRunning {
		return TickResult{Ended: d.state == StateEnded}
	}

	s := d.match
	now := d.clock.Now()
	s.Tick++
	s.timers.prune(now)

	s.Clock.Advance(now)
	if s.Clock.Expired() {
		return d.finish(now)
	}

	if s.Player.Hit && s.Player.InvulnerableUntil <= now.UnixMilli() {
		s.Player.Hit = false
		s.Player.InvulnerableUntil = 0
	}
	s.Player.Move(in, s.Field)
	s.Player.clampToZone(s.Field)

	if Advance(s.Enemies, &s.Formation, s.Field.Width, s.Field.PlayerMinY()).Invaded {
		s.Invaded = true
		return d.finish(now)
	}

	pc := d.settings.Projectiles
	if in.FireRequested() && s.cooldown.Ready(now) {
		b := newPlayerBullet(s.Player, in, pc)
		s.PlayerBullets = append(s.PlayerBullets, b)
		s.cooldown.trigger(&s.timers, now)
		d.emit(PlayerFired{X: b.X, Y: b.Y})
	}
	s.PlayerBullets = advancePlayerBullets(s.PlayerBullets, s.Field)
	s.EnemyBullets = advanceEnemyBullets(s.EnemyBullets, s.Field)

	for _, ev := range resolvePlayerShots(s) {
		d.emit(ev)
	}
	invuln := time.Duration(d.settings.Rules.InvulnerabilityMs) * time.Millisecond
	if ev, hit := resolveEnemyShots(s, now, invuln); hit {
		d.emit(ev)
	}

	if b, fired := tryEnemyFire(s, d.rng, pc); fired {
		d.emit(EnemyFired{X: b.X, Y: b.Y})
	}

	if s.escalation.poll(now) {
		if ev, ok := escalate(s, d.settings.Difficulty.Multiplier, d.settings.Difficulty.MaxEscalations); ok {
			d.log.Debug("speed increased", "level", ev.Level, "speed", ev.Speed)
			d.emit(ev)
		}
	}

	// Terminal conditions are checked after every step has run.
	if _, _, done := evaluateOutcome(s, d.settings.Rules.VictoryScore); done {
		return d.finish(now)
	}

	snap := d.Snapshot()
	d.draw(snap)
	return TickResult{Snapshot: snap}
}

// finish moves the match to ended, releases its timers and hands the result
// to the sinks exactly once.
func (d *Driver) finish(now time.Time) TickResult {
	s := d.match
	outcome, victory, _ := evaluateOutcome(s, d.settings.Rules.VictoryScore)
	s.Outcome = outcome
	s.timers.release()
	d.state = StateEnded
	d.victory = victory

	r := newMatchResult(s.Score, s.Clock.ElapsedSecs(), s.Kills, s.Match.DurationSecs, s.Lives, outcome, victory, now)
	d.result = &r

	d.log.Debug("match ended",
		"outcome", outcome,
		"victory", victory,
		"score", s.Score,
		"kills", s.Kills,
		"elapsed", r.ElapsedSecs)

	snap := d.Snapshot()
	d.draw(snap)
	d.record(r)
	d.emit(MatchEnded{Result: r})

	return TickResult{Snapshot: snap, Ended: true, Result: &r}
}

// Sink failures are logged and swallowed: a broken side channel never
// stops the simulation.

func (d *Driver) emit(ev Event) {
	if d.notify == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("notification sink panicked", "event", ev.Kind(), "panic", r)
		}
	}()
	if err := d.notify.Notify(ev); err != nil {
		d.log.Warn("notification sink failed", "event", ev.Kind(), "err", err)
	}
}

func (d *Driver) draw(snap Snapshot) {
	if d.render == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("render sink panicked", "tick", snap.Tick, "panic", r)
		}
	}()
	if err := d.render.Render(snap); err != nil {
		d.log.Warn("render sink failed", "tick", snap.Tick, "err", err)
	}
}

func (d *Driver) record(r MatchResult) {
	if d.results == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			d.log.Warn("result sink panicked", "match", r.ID, "panic", p)
		}
	}()
	if err := d.results.Record(r); err != nil {
		d.log.Warn("result sink failed", "match", r.ID, "err", err)
	}
}
