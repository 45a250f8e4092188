package invaders

import (
	"math"
	"testing"
)

func TestEscalateCapsAtMax(t *testing.T) {
	s := newTestState()
	s.EnemyBullets = []Bullet{{VX: 4, VY: 3}, {VX: -4, VY: 3.5}}

	for i := 1; i <= 6; i++ {
		ev, ok := escalate(s, 1.5, 4)
		if i <= 4 {
			if !ok || ev.Level != i {
				t.Fatalf("escalation %d: ok=%v level=%d", i, ok, ev.Level)
			}
			continue
		}
		if ok {
			t.Fatalf("escalation %d should be refused", i)
		}
	}

	if s.Formation.Escalations != 4 {
		t.Errorf("escalations = %d, expected 4", s.Formation.Escalations)
	}
	want := 2 * math.Pow(1.5, 4)
	if s.Formation.Speed != want {
		t.Errorf("speed = %v, expected %v", s.Formation.Speed, want)
	}
	if got := s.EnemyBullets[0].VY; got != 3*math.Pow(1.5, 4) {
		t.Errorf("bullet VY = %v, expected %v", got, 3*math.Pow(1.5, 4))
	}
	if got := s.EnemyBullets[1].VX; got != -4*math.Pow(1.5, 4) {
		t.Errorf("bullet VX = %v, expected %v", got, -4*math.Pow(1.5, 4))
	}
}

func TestEscalateSpeedNonDecreasing(t *testing.T) {
	s := newTestState()
	prev := s.Formation.Speed
	for range 10 {
		escalate(s, 1.5, 4)
		if s.Formation.Speed < prev {
			t.Fatalf("speed dropped from %v to %v", prev, s.Formation.Speed)
		}
		prev = s.Formation.Speed
	}
}
