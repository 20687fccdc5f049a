package game

import (
	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/death"
)

// endDay runs the End phase: mortality, defeat, victory, then the next day
func (e *GameEngine) endDay() {
	s := e.state
	s.Logf("--- End of day %d ---", s.Day)

	for _, c := range e.deathLoop.Sweep() {
		switch c.Cause {
		case death.CauseInfection:
			s.Logf("%s succumbs to the infection", c.Name)
		case death.CauseWounds:
			s.Logf("%s dies of their wounds", c.Name)
		}
	}

	if e.deathLoop.Extinct() {
		e.finish(StatusLost, "No survivors remain")
		return
	}

	if s.Morale <= 0 && e.hasSurvivorWith(content.SkillInspiring) {
		s.Morale = 1
		s.Logf("Hope holds the colony together (morale 1)")
	}
	if s.Morale <= 0 {
		e.finish(StatusLost, "The colony has lost all hope")
		return
	}

	if s.ObjectiveMet() {
		e.finish(StatusWon, "Objective complete: "+s.Objective.Title)
		return
	}

	s.tickDebuffs()
	s.Day++
	s.Phase = PhaseCrisis
}

func (e *GameEngine) finish(status Status, reason string) {
	s := e.state
	s.Status = status
	s.Logf("%s. Game over: %s", reason, status)
	e.logger.Info("session finished",
		zap.String("status", string(status)),
		zap.Int("day", s.Day),
		zap.Int("morale", s.Morale),
		zap.Int("survivors", len(s.Survivors)),
	)
}

func (e *GameEngine) hasSurvivorWith(kind content.SkillKind) bool {
	for _, sv := range e.state.Survivors {
		if sv.Skill.Kind == kind {
			return true
		}
	}
	return false
}

// ObjectiveMet evaluates the main objective against the current state
func (s *GameState) ObjectiveMet() bool {
	if s.Objective == nil {
		return false
	}
	return s.winConditionMet(s.Objective.WinCondition)
}

func (s *GameState) winConditionMet(win content.WinCondition) bool {
	switch w := win.(type) {
	case content.SurviveDays:
		return s.Day >= w.Days

	case content.Stockpile:
		return s.CountColony(w.Category) >= w.Amount

	case content.BarricadesAt:
		loc, ok := s.Location(w.LocationID)
		return ok && loc.Barricades >= w.Count

	case content.SecureLocation:
		loc, ok := s.Location(w.LocationID)
		return ok && loc.Zombies == 0 && loc.Barricades >= w.Barricades

	case content.MultiStockpile:
		for _, req := range w.Requirements {
			if s.CountColony(req.Category) < req.Amount {
				return false
			}
		}
		return true

	default:
		return false
	}
}
