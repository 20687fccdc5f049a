package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/content"
)

// eligiblePool counts the items of category a crisis of scope may consume
func (s *GameState) eligiblePool(scope content.Scope, category content.Category) int {
	n := s.CountColony(category)
	if scope == content.ScopeAbstract {
		for _, sv := range s.Survivors {
			for _, item := range sv.Inventory {
				if item.Category == category {
					n++
				}
			}
		}
	}
	return n
}

// CanAvert reports whether the eligible pool covers every requirement of crisis
func (s *GameState) CanAvert(crisis *content.Crisis) bool {
	for _, req := range crisis.Requirements {
		if s.eligiblePool(crisis.Scope, req.Category) < req.Amount {
			return false
		}
	}
	return true
}

// payCrisis deducts the requirements of crisis, colony stock first, then
// personal inventories in roster order for abstract crises
func (s *GameState) payCrisis(crisis *content.Crisis) {
	for _, req := range crisis.Requirements {
		remaining := req.Amount - s.removeColony(req.Category, req.Amount)
		if crisis.Scope != content.ScopeAbstract {
			continue
		}
		for _, sv := range s.Survivors {
			if remaining == 0 {
				break
			}
			remaining -= removePersonal(sv, req.Category, remaining)
		}
	}
}

// resolveCrisis settles the active crisis, paying it or applying its penalty
func (e *GameEngine) resolveCrisis() {
	s := e.state
	crisis := s.ActiveCrisis
	if crisis == nil {
		return
	}

	if s.CanAvert(crisis) {
		s.payCrisis(crisis)
		s.Logf("Crisis averted: %s", crisis.Title)
		return
	}

	s.Logf("Crisis failed: %s", crisis.Title)
	if err := e.applyPenalty(crisis.Penalty, crisis.Scope); err != nil {
		e.logger.Error("crisis penalty failed", zap.String("crisis_id", crisis.ID), zap.Error(err))
	}
}

// applyPenalty applies one penalty variant. Composites apply in order.
// A purge reaches the same inventories scope lets the crisis be paid from.
func (e *GameEngine) applyPenalty(penalty content.Penalty, scope content.Scope) error {
	s := e.state
	switch p := penalty.(type) {
	case content.MoraleLoss:
		s.AdjustMorale(-p.Amount)
		s.Logf("Morale drops by %d", p.Amount)

	case content.ZombieSpawn:
		s.SpawnZombies(s.homeID, p.Count)

	case content.UniversalWound:
		for _, sv := range s.Survivors {
			s.Wound(sv.ID, p.Amount)
		}

	case content.BarricadeLoss:
		compound := s.Compound()
		lost := min(p.Count, compound.Barricades)
		compound.Barricades -= lost
		s.Logf("%d barricade(s) at %s are destroyed", lost, compound.Name)

	case content.InventoryPurge:
		lost := s.removeColony(p.Category, len(s.Inventory))
		if scope == content.ScopeAbstract {
			for _, sv := range s.Survivors {
				lost += removePersonal(sv, p.Category, len(sv.Inventory))
			}
		}
		s.Logf("All %s is lost (%d item(s))", p.Category, lost)

	case content.LocationOverrun:
		loc, ok := s.Location(p.LocationID)
		if !ok {
			return fmt.Errorf("overrun location %s: %w", p.LocationID, content.ErrUnknownReference)
		}
		s.overrun(loc)

	case content.TimedDebuff:
		s.AddDebuff(p.Debuff, p.Duration)

	case content.CompositePenalty:
		for _, sub := range p.Effects {
			if err := e.applyPenalty(sub, scope); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("unhandled penalty %T", penalty)
	}
	return nil
}
