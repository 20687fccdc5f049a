package content

import (
	"encoding/json"
	"strconv"
)

// Penalty is applied once when a crisis is not averted. Implementations:
// MoraleLoss, ZombieSpawn, UniversalWound, BarricadeLoss, InventoryPurge,
// LocationOverrun, TimedDebuff, CompositePenalty.
type Penalty interface {
	isPenalty()
}

// MoraleLoss lowers colony morale
type MoraleLoss struct {
	Amount int `json:"amount"`
}

// ZombieSpawn adds zombies at the compound
type ZombieSpawn struct {
	Count int `json:"count"`
}

// UniversalWound wounds every survivor
type UniversalWound struct {
	Amount int `json:"amount"`
}

// BarricadeLoss destroys barricades at the compound
type BarricadeLoss struct {
	Count int `json:"count"`
}

// InventoryPurge removes every colony item of a category
type InventoryPurge struct {
	Category Category `json:"category"`
}

// LocationOverrun marks a location overrun
type LocationOverrun struct {
	LocationID string `json:"location_id"`
}

// TimedDebuff appends a global debuff for a number of days
type TimedDebuff struct {
	Debuff   DebuffKind `json:"debuff"`
	Duration int        `json:"duration"`
}

// CompositePenalty applies several penalties in order
type CompositePenalty struct {
	Effects []Penalty `json:"effects"`
}

func (MoraleLoss) isPenalty()       {}
func (ZombieSpawn) isPenalty()      {}
func (UniversalWound) isPenalty()   {}
func (BarricadeLoss) isPenalty()    {}
func (InventoryPurge) isPenalty()   {}
func (LocationOverrun) isPenalty()  {}
func (TimedDebuff) isPenalty()      {}
func (CompositePenalty) isPenalty() {}

// WinCondition is the victory predicate of a main objective. Implementations:
// SurviveDays, Stockpile, BarricadesAt, SecureLocation, MultiStockpile.
type WinCondition interface {
	isWinCondition()
}

// SurviveDays wins once the day counter reaches Days
type SurviveDays struct {
	Days int `json:"days"`
}

// Stockpile wins when the colony holds Amount items of Category
type Stockpile struct {
	Requirement
}

// BarricadesAt wins when a location holds Count barricades
type BarricadesAt struct {
	LocationID string `json:"location_id"`
	Count      int    `json:"count"`
}

// SecureLocation wins when a location has no zombies and enough barricades
type SecureLocation struct {
	LocationID string `json:"location_id"`
	Barricades int    `json:"barricades"`
}

// MultiStockpile wins when every requirement is held at once
type MultiStockpile struct {
	Requirements []Requirement `json:"requirements"`
}

func (SurviveDays) isWinCondition()    {}
func (Stockpile) isWinCondition()      {}
func (BarricadesAt) isWinCondition()   {}
func (SecureLocation) isWinCondition() {}
func (MultiStockpile) isWinCondition() {}

// Action is the consequence of a crossroad choice. Implementations:
// NoOp, MoraleChange, SpawnZombies, GrantItem, LoseItems, GlobalDebuff,
// SurvivorTag, Relocate, Wound, Exposure, CompositeAction.
type Action interface {
	isAction()
}

// NoOp does nothing
type NoOp struct{}

// MoraleChange adds Delta to morale
type MoraleChange struct {
	Delta int `json:"delta"`
}

// SpawnZombies adds zombies at LocationID, or where the actor stands when empty
type SpawnZombies struct {
	Count      int    `json:"count"`
	LocationID string `json:"location_id,omitempty"`
}

// GrantItem gives an item to the actor or to colony stock
type GrantItem struct {
	ItemID   string `json:"item_id"`
	ToColony bool   `json:"to_colony"`
}

// LoseItems removes up to Count colony items of Category
type LoseItems struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// GlobalDebuff appends a timed colony-wide debuff
type GlobalDebuff struct {
	Debuff   DebuffKind `json:"debuff"`
	Duration int        `json:"duration"`
}

// SurvivorTag adds or removes a buff/debuff tag on the actor
type SurvivorTag struct {
	Tag    string `json:"tag"`
	Remove bool   `json:"remove"`
}

// Relocate moves the actor to LocationID or back to their previous location
type Relocate struct {
	LocationID string `json:"location_id,omitempty"`
	ToPrevious bool   `json:"to_previous"`
}

// Wound inflicts Count wounds on the actor
type Wound struct {
	Count int `json:"count"`
}

// Exposure runs Checks independent exposure checks against the actor
type Exposure struct {
	Checks int `json:"checks"`
}

// CompositeAction runs sub-actions in listed order
type CompositeAction struct {
	Actions []Action `json:"actions"`
}

func (NoOp) isAction()            {}
func (MoraleChange) isAction()    {}
func (SpawnZombies) isAction()    {}
func (GrantItem) isAction()       {}
func (LoseItems) isAction()       {}
func (GlobalDebuff) isAction()    {}
func (SurvivorTag) isAction()     {}
func (Relocate) isAction()        {}
func (Wound) isAction()           {}
func (Exposure) isAction()        {}
func (CompositeAction) isAction() {}

// marshalKind encodes v as a JSON object with a leading kind field carrying
// the same tag the catalog uses
func marshalKind(kind string, v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := []byte(`{"kind":` + strconv.Quote(kind))
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
		return out, nil
	}
	return append(out, '}'), nil
}

func (p MoraleLoss) MarshalJSON() ([]byte, error) {
	type plain MoraleLoss
	return marshalKind("LOSE_MORALE", plain(p))
}

func (p ZombieSpawn) MarshalJSON() ([]byte, error) {
	type plain ZombieSpawn
	return marshalKind("SPAWN_ZOMBIES", plain(p))
}

func (p UniversalWound) MarshalJSON() ([]byte, error) {
	type plain UniversalWound
	return marshalKind("WOUND_ALL", plain(p))
}

func (p BarricadeLoss) MarshalJSON() ([]byte, error) {
	type plain BarricadeLoss
	return marshalKind("DESTROY_BARRICADES", plain(p))
}

func (p InventoryPurge) MarshalJSON() ([]byte, error) {
	type plain InventoryPurge
	return marshalKind("PURGE_INVENTORY", plain(p))
}

func (p LocationOverrun) MarshalJSON() ([]byte, error) {
	type plain LocationOverrun
	return marshalKind("OVERRUN_LOCATION", plain(p))
}

func (p TimedDebuff) MarshalJSON() ([]byte, error) {
	type plain TimedDebuff
	return marshalKind("TIMED_DEBUFF", plain(p))
}

func (p CompositePenalty) MarshalJSON() ([]byte, error) {
	type plain CompositePenalty
	return marshalKind("COMPOSITE", plain(p))
}

func (w SurviveDays) MarshalJSON() ([]byte, error) {
	type plain SurviveDays
	return marshalKind("SURVIVE_DAYS", plain(w))
}

func (w Stockpile) MarshalJSON() ([]byte, error) {
	return marshalKind("STOCKPILE", w.Requirement)
}

func (w BarricadesAt) MarshalJSON() ([]byte, error) {
	type plain BarricadesAt
	return marshalKind("BARRICADES_AT", plain(w))
}

func (w SecureLocation) MarshalJSON() ([]byte, error) {
	type plain SecureLocation
	return marshalKind("SECURE_LOCATION", plain(w))
}

func (w MultiStockpile) MarshalJSON() ([]byte, error) {
	type plain MultiStockpile
	return marshalKind("MULTI_STOCKPILE", plain(w))
}

func (a NoOp) MarshalJSON() ([]byte, error) {
	return marshalKind("NONE", struct{}{})
}

func (a MoraleChange) MarshalJSON() ([]byte, error) {
	type plain MoraleChange
	return marshalKind("MORALE", plain(a))
}

func (a SpawnZombies) MarshalJSON() ([]byte, error) {
	type plain SpawnZombies
	return marshalKind("SPAWN_ZOMBIES", plain(a))
}

func (a GrantItem) MarshalJSON() ([]byte, error) {
	type plain GrantItem
	return marshalKind("GRANT_ITEM", plain(a))
}

func (a LoseItems) MarshalJSON() ([]byte, error) {
	type plain LoseItems
	return marshalKind("LOSE_ITEMS", plain(a))
}

func (a GlobalDebuff) MarshalJSON() ([]byte, error) {
	type plain GlobalDebuff
	return marshalKind("GLOBAL_DEBUFF", plain(a))
}

func (a SurvivorTag) MarshalJSON() ([]byte, error) {
	type plain SurvivorTag
	return marshalKind("TAG", plain(a))
}

func (a Relocate) MarshalJSON() ([]byte, error) {
	type plain Relocate
	return marshalKind("RELOCATE", plain(a))
}

func (a Wound) MarshalJSON() ([]byte, error) {
	type plain Wound
	return marshalKind("WOUND", plain(a))
}

func (a Exposure) MarshalJSON() ([]byte, error) {
	type plain Exposure
	return marshalKind("EXPOSURE", plain(a))
}

func (a CompositeAction) MarshalJSON() ([]byte, error) {
	type plain CompositeAction
	return marshalKind("COMPOSITE", plain(a))
}
