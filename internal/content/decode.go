package content

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned for an effect, penalty or win condition kind
// the engine does not implement
var ErrUnknownKind = errors.New("unknown kind")

// rawEffect is the on-disk shape shared by penalties, win conditions and
// crossroad actions. Kind selects the variant; the other fields are its payload.
type rawEffect struct {
	Kind         string        `yaml:"kind"`
	Amount       int           `yaml:"amount"`
	Count        int           `yaml:"count"`
	Days         int           `yaml:"days"`
	Delta        int           `yaml:"delta"`
	Category     Category      `yaml:"category"`
	Location     string        `yaml:"location"`
	Debuff       DebuffKind    `yaml:"debuff"`
	Duration     int           `yaml:"duration"`
	Item         string        `yaml:"item"`
	ToColony     bool          `yaml:"to_colony"`
	Tag          string        `yaml:"tag"`
	Remove       bool          `yaml:"remove"`
	ToPrevious   bool          `yaml:"to_previous"`
	Requirements []Requirement `yaml:"requirements"`
	Effects      []rawEffect   `yaml:"effects"`
}

func (r rawEffect) toPenalty() (Penalty, error) {
	switch r.Kind {
	case "LOSE_MORALE":
		return MoraleLoss{Amount: orDefault(r.Amount, 1)}, nil
	case "SPAWN_ZOMBIES":
		return ZombieSpawn{Count: orDefault(r.Count, 1)}, nil
	case "WOUND_ALL":
		return UniversalWound{Amount: orDefault(r.Amount, 1)}, nil
	case "DESTROY_BARRICADES":
		return BarricadeLoss{Count: orDefault(r.Count, 1)}, nil
	case "PURGE_INVENTORY":
		if !r.Category.valid() {
			return nil, fmt.Errorf("PURGE_INVENTORY: invalid category %q", r.Category)
		}
		return InventoryPurge{Category: r.Category}, nil
	case "OVERRUN_LOCATION":
		if r.Location == "" {
			return nil, fmt.Errorf("OVERRUN_LOCATION: missing location")
		}
		return LocationOverrun{LocationID: r.Location}, nil
	case "TIMED_DEBUFF":
		if !r.Debuff.valid() {
			return nil, fmt.Errorf("TIMED_DEBUFF: invalid debuff %q", r.Debuff)
		}
		return TimedDebuff{Debuff: r.Debuff, Duration: orDefault(r.Duration, 1)}, nil
	case "COMPOSITE":
		effects := make([]Penalty, 0, len(r.Effects))
		for _, sub := range r.Effects {
			p, err := sub.toPenalty()
			if err != nil {
				return nil, err
			}
			effects = append(effects, p)
		}
		return CompositePenalty{Effects: effects}, nil
	default:
		return nil, fmt.Errorf("penalty %q: %w", r.Kind, ErrUnknownKind)
	}
}

func (r rawEffect) toWinCondition() (WinCondition, error) {
	switch r.Kind {
	case "SURVIVE_DAYS":
		if r.Days <= 0 {
			return nil, fmt.Errorf("SURVIVE_DAYS: days must be positive")
		}
		return SurviveDays{Days: r.Days}, nil
	case "STOCKPILE":
		if !r.Category.valid() || r.Amount <= 0 {
			return nil, fmt.Errorf("STOCKPILE: invalid requirement")
		}
		return Stockpile{Requirement{Category: r.Category, Amount: r.Amount}}, nil
	case "BARRICADES_AT":
		if r.Location == "" {
			return nil, fmt.Errorf("BARRICADES_AT: missing location")
		}
		return BarricadesAt{LocationID: r.Location, Count: r.Count}, nil
	case "SECURE_LOCATION":
		if r.Location == "" {
			return nil, fmt.Errorf("SECURE_LOCATION: missing location")
		}
		return SecureLocation{LocationID: r.Location, Barricades: r.Count}, nil
	case "MULTI_STOCKPILE":
		if len(r.Requirements) == 0 {
			return nil, fmt.Errorf("MULTI_STOCKPILE: no requirements")
		}
		for _, req := range r.Requirements {
			if !req.Category.valid() {
				return nil, fmt.Errorf("MULTI_STOCKPILE: invalid category %q", req.Category)
			}
		}
		return MultiStockpile{Requirements: r.Requirements}, nil
	default:
		return nil, fmt.Errorf("win condition %q: %w", r.Kind, ErrUnknownKind)
	}
}

func (r rawEffect) toAction() (Action, error) {
	switch r.Kind {
	case "", "NONE":
		return NoOp{}, nil
	case "MORALE":
		return MoraleChange{Delta: r.Delta}, nil
	case "SPAWN_ZOMBIES":
		return SpawnZombies{Count: orDefault(r.Count, 1), LocationID: r.Location}, nil
	case "GRANT_ITEM":
		if r.Item == "" {
			return nil, fmt.Errorf("GRANT_ITEM: missing item")
		}
		return GrantItem{ItemID: r.Item, ToColony: r.ToColony}, nil
	case "LOSE_ITEMS":
		if !r.Category.valid() {
			return nil, fmt.Errorf("LOSE_ITEMS: invalid category %q", r.Category)
		}
		return LoseItems{Category: r.Category, Count: orDefault(r.Count, 1)}, nil
	case "GLOBAL_DEBUFF":
		if !r.Debuff.valid() {
			return nil, fmt.Errorf("GLOBAL_DEBUFF: invalid debuff %q", r.Debuff)
		}
		return GlobalDebuff{Debuff: r.Debuff, Duration: orDefault(r.Duration, 1)}, nil
	case "TAG":
		if r.Tag == "" {
			return nil, fmt.Errorf("TAG: missing tag")
		}
		return SurvivorTag{Tag: r.Tag, Remove: r.Remove}, nil
	case "RELOCATE":
		if r.Location == "" && !r.ToPrevious {
			return nil, fmt.Errorf("RELOCATE: missing location")
		}
		return Relocate{LocationID: r.Location, ToPrevious: r.ToPrevious}, nil
	case "WOUND":
		return Wound{Count: orDefault(r.Count, 1)}, nil
	case "EXPOSURE":
		return Exposure{Checks: orDefault(r.Count, 1)}, nil
	case "COMPOSITE":
		actions := make([]Action, 0, len(r.Effects))
		for _, sub := range r.Effects {
			a, err := sub.toAction()
			if err != nil {
				return nil, err
			}
			actions = append(actions, a)
		}
		return CompositeAction{Actions: actions}, nil
	default:
		return nil, fmt.Errorf("action %q: %w", r.Kind, ErrUnknownKind)
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
