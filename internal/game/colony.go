package game

import (
	"github.com/qninhdt/last-compound/server/internal/content"
)

// RatRatio is how much waste feeds one rat
const RatRatio = 3

// resolveColony runs the Colony phase: crisis, food, debuff upkeep, rats
func (e *GameEngine) resolveColony() {
	s := e.state
	s.Logf("--- Colony phase ---")

	e.resolveCrisis()
	s.consumeFood()
	s.applyDebuffUpkeep()
	s.ratPressure()
}

// consumeFood feeds every survivor at the compound from colony stock. The
// shortfall becomes pending starvation wounds for the player to assign.
func (s *GameState) consumeFood() {
	needed := len(s.occupants(s.homeID))
	if needed == 0 {
		return
	}
	available := s.CountColony(content.CategoryFood)
	eaten := s.removeColony(content.CategoryFood, needed)

	if available >= needed {
		s.Logf("%d survivor(s) eat", eaten)
		return
	}
	deficit := needed - available
	s.PendingStarvationWounds += deficit
	s.Logf("Not enough food! %d survivor(s) go hungry", deficit)
}

// Rats returns the rat pressure derived from waste
func (s *GameState) Rats() int {
	return s.Waste / RatRatio
}

// ratPressure costs morale and food once rats outnumber the survivors
func (s *GameState) ratPressure() {
	if s.Rats() <= len(s.Survivors) {
		return
	}
	s.AdjustMorale(-1)
	if s.removeColony(content.CategoryFood, 1) > 0 {
		s.Logf("Rats swarm the stores: morale drops and food is spoiled")
	} else {
		s.Logf("Rats swarm the stores: morale drops")
	}
}

// ResolveStarvation assigns one pending starvation wound to a survivor at
// the compound
func (e *GameEngine) ResolveStarvation(survivorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	if s.Status != StatusPlaying || s.PendingCrossroad != nil || s.PendingStarvationWounds == 0 {
		return
	}
	sv, ok := s.Survivor(survivorID)
	if !ok || sv.LocationID != s.homeID {
		return
	}

	s.PendingStarvationWounds--
	s.Logf("%s goes without food", sv.Name)
	s.Wound(sv.ID, 1)
	e.touch()
}
