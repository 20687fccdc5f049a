package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/qninhdt/last-compound/server/internal/cards"
	"github.com/qninhdt/last-compound/server/internal/content"
)

// Phase is one step of the daily cycle
type Phase string

const (
	PhaseCrisis Phase = "Crisis"
	PhasePlayer Phase = "Player"
	PhaseColony Phase = "Colony"
	PhaseEnd    Phase = "End"
)

// Status is the overall session status
type Status string

const (
	StatusPlaying Status = "Playing"
	StatusWon     Status = "Won"
	StatusLost    Status = "Lost"
)

// Health is a survivor's health status
type Health string

const (
	Healthy  Health = "Healthy"
	Infected Health = "Infected"
)

// Survivor tags with rule effects
const (
	TagFreeAction = "free_action"
	TagShaken     = "shaken"
)

// Survivor is a member of the active roster
type Survivor struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	HP                 int            `json:"hp"`
	Health             Health         `json:"health"`
	LocationID         string         `json:"location_id"`
	PreviousLocationID string         `json:"previous_location_id,omitempty"`
	Inventory          []content.Item `json:"inventory"`
	Skill              content.Skill  `json:"skill"`
	Tags               []string       `json:"tags"`
	SkillUsed          bool           `json:"skill_used"`
}

// HasTag reports whether the survivor carries tag
func (s *Survivor) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

func (s *Survivor) addTag(tag string) {
	if !s.HasTag(tag) {
		s.Tags = append(s.Tags, tag)
	}
}

func (s *Survivor) removeTag(tag string) {
	s.Tags = slices.DeleteFunc(s.Tags, func(t string) bool { return t == tag })
}

// Location is a session location built from its catalog template
type Location struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Slots      int      `json:"slots"`
	Zombies    int      `json:"zombies"`
	Barricades int      `json:"barricades"`
	Overrun    bool     `json:"overrun"`
	Home       bool     `json:"home"`
	SearchDeck []string `json:"-"`
}

// Debuff is an active global debuff with its remaining days
type Debuff struct {
	Kind      content.DebuffKind `json:"kind"`
	Remaining int                `json:"remaining"`
}

// GameState is the single authoritative state of a session
type GameState struct {
	Day    int    `json:"day"`
	Phase  Phase  `json:"phase"`
	Status Status `json:"status"`
	Morale int    `json:"morale"`
	Waste  int    `json:"waste"`

	Inventory []content.Item `json:"inventory"`
	Survivors []*Survivor    `json:"survivors"`
	Locations []*Location    `json:"locations"`
	Debuffs   []Debuff       `json:"debuffs"`

	PendingStarvationWounds int                    `json:"pending_starvation_wounds"`
	PendingCrossroad        *cards.Pending         `json:"pending_crossroad,omitempty"`
	ActiveCrisis            *content.Crisis        `json:"active_crisis,omitempty"`
	Objective               *content.MainObjective `json:"objective"`
	SelectedSurvivorID      string                 `json:"selected_survivor_id,omitempty"`

	Log []string `json:"log"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	catalog *content.Catalog
	homeID  string
}

// Survivor returns the active survivor with id
func (s *GameState) Survivor(id string) (*Survivor, bool) {
	for _, sv := range s.Survivors {
		if sv.ID == id {
			return sv, true
		}
	}
	return nil, false
}

// Location returns the location with id
func (s *GameState) Location(id string) (*Location, bool) {
	for _, loc := range s.Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return nil, false
}

// Compound returns the home location
func (s *GameState) Compound() *Location {
	loc, _ := s.Location(s.homeID)
	return loc
}

// HasDebuff reports whether a debuff of kind is active
func (s *GameState) HasDebuff(kind content.DebuffKind) bool {
	for _, d := range s.Debuffs {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// CountColony returns how many colony items belong to category
func (s *GameState) CountColony(category content.Category) int {
	n := 0
	for _, item := range s.Inventory {
		if item.Category == category {
			n++
		}
	}
	return n
}

// occupants returns survivors standing at locationID, in roster order
func (s *GameState) occupants(locationID string) []*Survivor {
	var result []*Survivor
	for _, sv := range s.Survivors {
		if sv.LocationID == locationID {
			result = append(result, sv)
		}
	}
	return result
}

// removeColony removes up to count colony items of category, oldest first
func (s *GameState) removeColony(category content.Category, count int) int {
	removed := 0
	kept := s.Inventory[:0]
	for _, item := range s.Inventory {
		if removed < count && item.Category == category {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.Inventory = kept
	return removed
}

// removePersonal removes up to count items of category from sv
func removePersonal(sv *Survivor, category content.Category, count int) int {
	removed := 0
	kept := sv.Inventory[:0]
	for _, item := range sv.Inventory {
		if removed < count && item.Category == category {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	sv.Inventory = kept
	return removed
}

// overrun fills loc to capacity, raises its flag and wounds each occupant once
func (s *GameState) overrun(loc *Location) {
	loc.Zombies = loc.Slots
	loc.Overrun = true
	s.Logf("%s is overrun!", loc.Name)
	for _, sv := range s.occupants(loc.ID) {
		s.Wound(sv.ID, 1)
	}
}

// killZombies removes up to n zombies at loc and reports how many died
func (s *GameState) killZombies(loc *Location, n int) int {
	killed := min(n, loc.Zombies)
	loc.Zombies -= killed
	if loc.Overrun && loc.Zombies < loc.Slots {
		loc.Overrun = false
		s.Logf("%s is no longer overrun", loc.Name)
	}
	return killed
}

// Logf appends a line to the action log
func (s *GameState) Logf(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf("[Day %d] ", s.Day)+fmt.Sprintf(format, args...))
}

// AdjustMorale changes morale without bounds; it is checked at End
func (s *GameState) AdjustMorale(delta int) {
	s.Morale += delta
}

// SurvivorLocation returns where a survivor stands
func (s *GameState) SurvivorLocation(survivorID string) (string, bool) {
	sv, ok := s.Survivor(survivorID)
	if !ok {
		return "", false
	}
	return sv.LocationID, true
}

// SpawnZombies adds zombies at a location, overrunning it past capacity
func (s *GameState) SpawnZombies(locationID string, count int) {
	loc, ok := s.Location(locationID)
	if !ok || count <= 0 {
		return
	}
	loc.Zombies += count
	s.Logf("%d zombie(s) appear at %s", count, loc.Name)
	if loc.Zombies > loc.Slots {
		s.overrun(loc)
	}
}

// GrantItem gives a catalog item to a survivor or the colony
func (s *GameState) GrantItem(survivorID, itemID string, toColony bool) error {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return fmt.Errorf("grant item %s: %w", itemID, content.ErrUnknownReference)
	}
	if toColony {
		s.Inventory = append(s.Inventory, item)
		s.Logf("The colony receives %s", item.Name)
		return nil
	}

	sv, ok := s.Survivor(survivorID)
	if !ok {
		return nil
	}
	sv.Inventory = append(sv.Inventory, item)
	s.Logf("%s receives %s", sv.Name, item.Name)
	return nil
}

// LoseItems removes up to count colony items of category
func (s *GameState) LoseItems(category content.Category, count int) int {
	return s.removeColony(category, count)
}

// AddDebuff appends a timed global debuff
func (s *GameState) AddDebuff(kind content.DebuffKind, duration int) {
	if duration <= 0 {
		return
	}
	s.Debuffs = append(s.Debuffs, Debuff{Kind: kind, Remaining: duration})
	s.Logf("Debuff %s active for %d day(s)", kind, duration)
}

// AddSurvivorTag adds a tag to a survivor
func (s *GameState) AddSurvivorTag(survivorID, tag string) {
	if sv, ok := s.Survivor(survivorID); ok {
		sv.addTag(tag)
		s.Logf("%s is now %s", sv.Name, tag)
	}
}

// RemoveSurvivorTag removes a tag from a survivor
func (s *GameState) RemoveSurvivorTag(survivorID, tag string) {
	if sv, ok := s.Survivor(survivorID); ok {
		sv.removeTag(tag)
	}
}

// Relocate moves a survivor, recording where they came from
func (s *GameState) Relocate(survivorID, locationID string) bool {
	sv, ok := s.Survivor(survivorID)
	if !ok {
		return false
	}
	loc, ok := s.Location(locationID)
	if !ok || sv.LocationID == locationID {
		return false
	}
	sv.PreviousLocationID = sv.LocationID
	sv.LocationID = loc.ID
	s.Logf("%s moves to %s", sv.Name, loc.Name)
	return true
}

// ReturnToPrevious sends a survivor back to their previous location
func (s *GameState) ReturnToPrevious(survivorID string) bool {
	sv, ok := s.Survivor(survivorID)
	if !ok || sv.PreviousLocationID == "" {
		return false
	}
	return s.Relocate(survivorID, sv.PreviousLocationID)
}

// Wound lowers a survivor's hit points, never below zero
func (s *GameState) Wound(survivorID string, count int) {
	sv, ok := s.Survivor(survivorID)
	if !ok || count <= 0 {
		return
	}
	sv.HP = max(0, sv.HP-count)
	s.Logf("%s takes %d wound(s) (HP %d)", sv.Name, count, sv.HP)
}

// SurvivorIDs returns the roster ids in order
func (s *GameState) SurvivorIDs() []string {
	ids := make([]string, 0, len(s.Survivors))
	for _, sv := range s.Survivors {
		ids = append(ids, sv.ID)
	}
	return ids
}

// SurvivorName returns a survivor's display name
func (s *GameState) SurvivorName(id string) string {
	if sv, ok := s.Survivor(id); ok {
		return sv.Name
	}
	return id
}

// IsInfected reports whether a survivor is infected
func (s *GameState) IsInfected(id string) bool {
	sv, ok := s.Survivor(id)
	return ok && sv.Health == Infected
}

// HP returns a survivor's hit points
func (s *GameState) HP(id string) int {
	if sv, ok := s.Survivor(id); ok {
		return sv.HP
	}
	return 0
}

// SetHP overwrites a survivor's hit points
func (s *GameState) SetHP(id string, hp int) {
	if sv, ok := s.Survivor(id); ok {
		sv.HP = max(0, hp)
	}
}

// RemoveSurvivor drops a survivor from the roster
func (s *GameState) RemoveSurvivor(id string) {
	s.Survivors = slices.DeleteFunc(s.Survivors, func(sv *Survivor) bool { return sv.ID == id })
	if s.SelectedSurvivorID == id {
		s.SelectedSurvivorID = ""
	}
}
