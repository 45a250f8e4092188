package invaders

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestStartRejectsEmptyField(t *testing.T) {
	d := NewDriver(DriverOptions{Clock: NewManualClock(testEpoch())})

	err := d.Start(config.MatchConfig{}, Field{Width: 800})
	if !errors.Is(err, ErrNoField) {
		t.Fatalf("Start() error = %v, expected ErrNoField", err)
	}
	if d.State() != StateIdle {
		t.Errorf("state = %v, expected idle", d.State())
	}
}

func TestStartAppliesDefaults(t *testing.T) {
	d, _, _ := newTestDriver(t, quietSettings(), config.MatchConfig{})

	snap := d.Snapshot()
	if snap.TimeRemaining != 120 {
		t.Errorf("time remaining = %d, expected 120", snap.TimeRemaining)
	}
	if snap.PlayerColor != config.DefaultPlayerColor || snap.EnemyColor != config.DefaultEnemyColor {
		t.Errorf("colors = %s/%s, expected defaults", snap.PlayerColor, snap.EnemyColor)
	}
	if snap.Lives != 3 || snap.Score != 0 || len(snap.Enemies) != EnemyCount {
		t.Errorf("unexpected initial snapshot: lives %d score %d enemies %d", snap.Lives, snap.Score, len(snap.Enemies))
	}
}

func TestTickIsNoOpWhenIdle(t *testing.T) {
	rec := &recorder{}
	d := NewDriver(DriverOptions{Clock: NewManualClock(testEpoch()), Render: rec, Notify: rec})

	res := d.Tick(noInput())
	if res.Ended || rec.frames != 0 || len(rec.events) != 0 {
		t.Errorf("idle tick produced output: %+v, frames %d", res, rec.frames)
	}
}

func TestEndToEndWin(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{DurationSecs: 60})

	for _, e := range d.match.Enemies {
		d.match.PlayerBullets = append(d.match.PlayerBullets, bulletInside(e))
	}
	clock.Advance(15 * time.Second)
	res := d.Tick(noInput())

	if !res.Ended || res.Result == nil {
		t.Fatalf("expected the match to end, got %+v", res)
	}
	r := *res.Result
	if r.Outcome != OutcomeWin || !r.Victory {
		t.Errorf("outcome %s victory %v, expected win", r.Outcome, r.Victory)
	}
	if r.Score != 250 || r.EnemiesKilled != EnemyCount {
		t.Errorf("score %d kills %d, expected 250 and 20", r.Score, r.EnemiesKilled)
	}
	if r.ElapsedSecs != 15 {
		t.Errorf("elapsed = %d, expected 15", r.ElapsedSecs)
	}
	if r.Message() != "Champion! You destroyed all spaceships!" {
		t.Errorf("message = %q", r.Message())
	}
	if r.ID == "" {
		t.Error("result should carry a match ID")
	}
	if rec.count(KindEnemyDestroyed) != EnemyCount || rec.count(KindMatchEnded) != 1 {
		t.Errorf("events: destroyed %d ended %d", rec.count(KindEnemyDestroyed), rec.count(KindMatchEnded))
	}
}

func TestEndToEndTimeOut(t *testing.T) {
	tests := []struct {
		name    string
		kill    []int // enemy indexes to shoot down
		score   int
		victory bool
		message string
	}{
		{"winner", []int{0, 1, 2, 3, 4, 10, 11}, 120, true, "Time's up! Winner! Score: 120"},
		{"loser", []int{0, 1}, 40, false, "Time's up! You can do better. Score: 40"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{DurationSecs: 30})

			for _, i := range tc.kill {
				d.match.PlayerBullets = append(d.match.PlayerBullets, bulletInside(d.match.Enemies[i]))
			}
			step(d, clock, noInput())
			if d.match.Score != tc.score {
				t.Fatalf("score = %d, expected %d", d.match.Score, tc.score)
			}

			clock.Advance(30 * time.Second)
			res := d.Tick(noInput())
			if !res.Ended {
				t.Fatal("expected the match to end on time")
			}
			r := *res.Result
			if r.Outcome != OutcomeTime || r.Victory != tc.victory {
				t.Errorf("outcome %s victory %v, expected time/%v", r.Outcome, r.Victory, tc.victory)
			}
			if r.ElapsedSecs != 30 {
				t.Errorf("elapsed = %d, expected 30", r.ElapsedSecs)
			}
			if r.Message() != tc.message {
				t.Errorf("message = %q, expected %q", r.Message(), tc.message)
			}
			if len(rec.results) != 1 {
				t.Errorf("results recorded = %d, expected 1", len(rec.results))
			}
		})
	}
}

func TestEndToEndThreeHits(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{})

	for hit := 1; hit <= 3; hit++ {
		d.match.Player.X = 100
		d.match.EnemyBullets = []Bullet{enemyBulletOnPlayer(d.match.Player)}
		res := step(d, clock, noInput())

		snap := res.Snapshot
		if snap.Lives != 3-hit {
			t.Fatalf("after hit %d lives = %d", hit, snap.Lives)
		}
		if hit < 3 {
			if res.Ended {
				t.Fatalf("match ended after hit %d", hit)
			}
			if snap.Player.X != 375 || snap.Player.Y != 540 {
				t.Errorf("hit %d: player at (%v, %v), expected respawn", hit, snap.Player.X, snap.Player.Y)
			}
			continue
		}

		if !res.Ended || res.Result.Outcome != OutcomeLives || res.Result.Victory {
			t.Fatalf("final hit result = %+v", res.Result)
		}
		if snap.Player.X != 100 {
			t.Errorf("player respawned after the last life")
		}
		if res.Result.Message() != "Game Over! You Lost!" {
			t.Errorf("message = %q", res.Result.Message())
		}
	}

	if rec.count(KindPlayerHit) != 3 {
		t.Errorf("player-hit events = %d, expected 3", rec.count(KindPlayerHit))
	}
}

func TestEndToEndInvaded(t *testing.T) {
	d, clock, _ := newTestDriver(t, quietSettings(), config.MatchConfig{})

	d.match.Enemies[19].X = 760
	d.match.Enemies[19].Y = 330
	res := step(d, clock, noInput())

	if !res.Ended || res.Result.Outcome != OutcomeInvaded || res.Result.Victory {
		t.Fatalf("result = %+v, expected invaded loss", res.Result)
	}
	if res.Result.Message() != "You can do better!" {
		t.Errorf("message = %q", res.Result.Message())
	}
}

func TestLivesBoundedAndNonIncreasing(t *testing.T) {
	settings := config.DefaultInvadersConfig()
	settings.Projectiles.EnemyFireChance = 1
	d, clock, _ := newTestDriver(t, &settings, config.MatchConfig{})

	prev := 3
	for range 5000 {
		res := step(d, clock, noInput())
		lives := res.Snapshot.Lives
		if res.Ended {
			lives = d.Snapshot().Lives
		}
		if lives < 0 || lives > 3 || lives > prev {
			t.Fatalf("lives went from %d to %d", prev, lives)
		}
		prev = lives
		if res.Ended {
			break
		}
	}
}

func TestTickAfterEndIsNoOp(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{DurationSecs: 1})

	clock.Advance(2 * time.Second)
	if res := d.Tick(noInput()); !res.Ended {
		t.Fatal("expected the match to end")
	}
	frames := rec.frames

	for range 10 {
		res := step(d, clock, noInput())
		if !res.Ended || res.Result != nil {
			t.Fatalf("tick after end returned %+v", res)
		}
	}
	if rec.frames != frames || len(rec.results) != 1 || rec.count(KindMatchEnded) != 1 {
		t.Errorf("sinks called after end: frames %d->%d results %d", frames, rec.frames, len(rec.results))
	}
}

func TestStopReleasesTimers(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{})
	escalation := d.match.escalation

	d.Stop()
	if d.State() != StateIdle {
		t.Fatalf("state = %v, expected idle", d.State())
	}
	if d.match.timers.len() != 0 {
		t.Error("timers survived Stop")
	}

	clock.Advance(time.Minute)
	if escalation.poll(clock.Now()) {
		t.Error("stale escalation timer fired")
	}
	d.Tick(noInput())
	if len(rec.results) != 0 || rec.count(KindSpeedIncreased) != 0 {
		t.Error("stopped match produced output")
	}
}

func TestRestartIsFresh(t *testing.T) {
	d, clock, _ := newTestDriver(t, quietSettings(), config.MatchConfig{})

	d.match.PlayerBullets = []Bullet{bulletInside(d.match.Enemies[0])}
	step(d, clock, noInput())
	if d.match.Score == 0 {
		t.Fatal("setup: expected a kill")
	}

	if err := d.Start(config.MatchConfig{}, testField); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	snap := d.Snapshot()
	if snap.Score != 0 || snap.Kills != 0 || snap.Lives != 3 || snap.AliveEnemies() != EnemyCount {
		t.Errorf("restart carried state over: %+v", snap)
	}
}

func TestDifficultyEscalatesOnWallClock(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{})

	for range 6 {
		clock.Advance(5 * time.Second)
		d.Tick(noInput())
	}

	snap := d.Snapshot()
	if snap.Formation.Escalations != 4 {
		t.Errorf("escalations = %d, expected 4", snap.Formation.Escalations)
	}
	if snap.Formation.Speed != 10.125 {
		t.Errorf("speed = %v, expected 10.125", snap.Formation.Speed)
	}
	if rec.count(KindSpeedIncreased) != 4 {
		t.Errorf("speed events = %d, expected 4", rec.count(KindSpeedIncreased))
	}
}

func TestEscalationReportedOnFinalTick(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{DurationSecs: 60})

	for _, e := range d.match.Enemies {
		d.match.PlayerBullets = append(d.match.PlayerBullets, bulletInside(e))
	}
	clock.Advance(5 * time.Second)
	if res := d.Tick(noInput()); !res.Ended {
		t.Fatal("expected the match to end on this tick")
	}

	speedAt, endAt := -1, -1
	for i, e := range rec.events {
		switch e.Kind() {
		case KindSpeedIncreased:
			speedAt = i
		case KindMatchEnded:
			endAt = i
		}
	}
	if speedAt < 0 {
		t.Fatal("speed increase on the final tick was dropped")
	}
	if speedAt > endAt {
		t.Errorf("speed event at %d after match end at %d", speedAt, endAt)
	}
}

func TestFixedDifficultyNeverEscalates(t *testing.T) {
	settings := quietSettings()
	config.ApplyInvadersPreset(settings, config.DifficultyFixed)
	d, clock, _ := newTestDriver(t, settings, config.MatchConfig{})

	for range 4 {
		clock.Advance(5 * time.Second)
		d.Tick(noInput())
	}
	if got := d.Snapshot().Formation.Escalations; got != 0 {
		t.Errorf("escalations = %d, expected 0", got)
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{})

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)

	step(d, clock, fire)
	step(d, clock, fire) // 16ms later, gate closed
	if rec.count(KindPlayerFired) != 1 {
		t.Fatalf("shots = %d, expected 1", rec.count(KindPlayerFired))
	}

	clock.Advance(300 * time.Millisecond)
	d.Tick(fire)
	if rec.count(KindPlayerFired) != 2 {
		t.Errorf("shots = %d, expected 2 after the cooldown", rec.count(KindPlayerFired))
	}
}

func TestHeldFireDoesNotShoot(t *testing.T) {
	d, clock, rec := newTestDriver(t, quietSettings(), config.MatchConfig{})

	in := core.NewInputFrame()
	in.Hold(core.ActionFire)
	for range 30 {
		step(d, clock, in)
	}
	if rec.count(KindPlayerFired) != 0 {
		t.Error("fire must be edge-triggered")
	}
}

func TestSinkFailuresDoNotStopTheMatch(t *testing.T) {
	clock := NewManualClock(testEpoch())
	var recorded []MatchResult

	d := NewDriver(DriverOptions{
		Clock:    clock,
		Settings: quietSettings(),
		Render:   RenderFunc(func(Snapshot) error { panic("render exploded") }),
		Notify:   NotifyFunc(func(Event) error { return errSink }),
		Results: RecordFunc(func(r MatchResult) error {
			recorded = append(recorded, r)
			return errSink
		}),
	})
	if err := d.Start(config.MatchConfig{DurationSecs: 1}, testField); err != nil {
		t.Fatal(err)
	}

	d.match.PlayerBullets = []Bullet{bulletInside(d.match.Enemies[0])}
	res := step(d, clock, noInput())
	if res.Ended || res.Snapshot.Score != 20 {
		t.Fatalf("tick did not complete: %+v", res)
	}

	clock.Advance(time.Second)
	if res := d.Tick(noInput()); !res.Ended {
		t.Fatal("match should still end")
	}
	if len(recorded) != 1 {
		t.Errorf("results recorded = %d, expected 1", len(recorded))
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	d, clock, _ := newTestDriver(t, quietSettings(), config.MatchConfig{})
	in := core.NewInputFrame()
	in.Hold(core.ActionLeft)
	snap := step(d, clock, in).Snapshot

	snap.Enemies[0].Alive = false
	snap.Player.Held[core.ActionRight] = true
	snap.EnemyBullets = append(snap.EnemyBullets, Bullet{})

	fresh := d.Snapshot()
	if !fresh.Enemies[0].Alive || fresh.Player.Held[core.ActionRight] || len(fresh.EnemyBullets) != 0 {
		t.Error("mutating a snapshot leaked into the match")
	}
}

func TestDeterminism(t *testing.T) {
	settings := config.DefaultInvadersConfig()

	run := func() Snapshot {
		clock := NewManualClock(testEpoch())
		d := NewDriver(DriverOptions{Clock: clock, Seed: 12345, Settings: &settings})
		if err := d.Start(config.MatchConfig{}, testField); err != nil {
			t.Fatal(err)
		}
		for i := range 600 {
			in := core.NewInputFrame()
			switch {
			case i%40 < 20:
				in.Hold(core.ActionLeft)
			default:
				in.Hold(core.ActionRight)
			}
			if i%25 == 0 {
				in.Set(core.ActionFire)
			}
			if step(d, clock, in).Ended {
				break
			}
		}
		return d.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if s1.Score != s2.Score || s1.Lives != s2.Lives {
		t.Errorf("determinism failed: score %d/%d lives %d/%d", s1.Score, s2.Score, s1.Lives, s2.Lives)
	}
}
