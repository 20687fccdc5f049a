package game

import (
	"github.com/qninhdt/last-compound/server/internal/content"
)

// applyDebuffUpkeep applies the daily effect of every active debuff once per
// Colony phase. Attack difficulty is read directly by attacks.
func (s *GameState) applyDebuffUpkeep() {
	for _, d := range s.Debuffs {
		switch d.Kind {
		case content.DebuffMoraleDrain:
			s.AdjustMorale(-1)
			s.Logf("Despair spreads: morale -1")
		case content.DebuffInfestation:
			s.Waste++
			s.Logf("Vermin spread through the compound: waste +1")
		case content.DebuffAttackDifficultyUp:
		}
	}
}

// tickDebuffs decrements remaining durations and drops expired debuffs
func (s *GameState) tickDebuffs() {
	kept := s.Debuffs[:0]
	for _, d := range s.Debuffs {
		d.Remaining--
		if d.Remaining > 0 {
			kept = append(kept, d)
			continue
		}
		s.Logf("Debuff %s has worn off", d.Kind)
	}
	s.Debuffs = kept
}
