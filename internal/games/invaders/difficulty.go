package invaders

// escalate speeds the formation and every live enemy bullet up by mult.
// It does nothing once max escalations have happened.
func escalate(s *MatchState, mult float64, maxEscalations int) (SpeedIncreased, bool) {
	if s.Formation.Escalations >= maxEscalations {
		return SpeedIncreased{}, false
	}

	s.Formation.Escalations++
	s.Formation.Speed *= mult
	for i := range s.EnemyBullets {
		s.EnemyBullets[i].VY *= mult
		s.EnemyBullets[i].VX *= mult
	}

	return SpeedIncreased{
		Level: s.Formation.Escalations,
		Speed: s.Formation.Speed,
	}, true
}
