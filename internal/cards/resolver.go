package cards

import (
	"fmt"

	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/random"
)

// ExposureWoundChance is the chance that one crossroad exposure check wounds
const ExposureWoundChance = 0.2

// StateUpdater is the slice of game state a crossroad action may touch
type StateUpdater interface {
	AdjustMorale(delta int)
	SurvivorLocation(survivorID string) (string, bool)
	SpawnZombies(locationID string, count int)
	GrantItem(survivorID, itemID string, toColony bool) error
	LoseItems(category content.Category, count int) int
	AddDebuff(kind content.DebuffKind, duration int)
	AddSurvivorTag(survivorID, tag string)
	RemoveSurvivorTag(survivorID, tag string)
	Relocate(survivorID, locationID string) bool
	ReturnToPrevious(survivorID string) bool
	Wound(survivorID string, count int)
	Logf(format string, args ...any)
}

// ActionExecutor runs crossroad actions against game state
type ActionExecutor struct {
	state StateUpdater
	rng   random.Source
}

// NewActionExecutor creates a new executor
func NewActionExecutor(state StateUpdater, rng random.Source) *ActionExecutor {
	return &ActionExecutor{state: state, rng: rng}
}

// Execute runs action on behalf of actorID. Composite actions run their
// children in listed order and stop at the first error.
func (e *ActionExecutor) Execute(actorID string, action content.Action) error {
	switch a := action.(type) {
	case content.NoOp:
		return nil

	case content.MoraleChange:
		e.state.AdjustMorale(a.Delta)
		e.state.Logf("Morale changes by %+d", a.Delta)
		return nil

	case content.SpawnZombies:
		locationID := a.LocationID
		if locationID == "" {
			loc, ok := e.state.SurvivorLocation(actorID)
			if !ok {
				return nil
			}
			locationID = loc
		}
		e.state.SpawnZombies(locationID, a.Count)
		return nil

	case content.GrantItem:
		return e.state.GrantItem(actorID, a.ItemID, a.ToColony)

	case content.LoseItems:
		lost := e.state.LoseItems(a.Category, a.Count)
		e.state.Logf("Lost %d %s from the colony stores", lost, a.Category)
		return nil

	case content.GlobalDebuff:
		e.state.AddDebuff(a.Debuff, a.Duration)
		return nil

	case content.SurvivorTag:
		if a.Remove {
			e.state.RemoveSurvivorTag(actorID, a.Tag)
		} else {
			e.state.AddSurvivorTag(actorID, a.Tag)
		}
		return nil

	case content.Relocate:
		if a.ToPrevious {
			e.state.ReturnToPrevious(actorID)
		} else {
			e.state.Relocate(actorID, a.LocationID)
		}
		return nil

	case content.Wound:
		e.state.Wound(actorID, a.Count)
		return nil

	case content.Exposure:
		for i := 0; i < a.Checks; i++ {
			if e.rng.Float64() < ExposureWoundChance {
				e.state.Logf("Exposure check failed")
				e.state.Wound(actorID, 1)
			}
		}
		return nil

	case content.CompositeAction:
		for _, sub := range a.Actions {
			if err := e.Execute(actorID, sub); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unhandled crossroad action %T", action)
	}
}
