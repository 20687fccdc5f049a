package game

import (
	"time"

	"github.com/qninhdt/last-compound/server/internal/cards"
	"github.com/qninhdt/last-compound/server/internal/content"
)

// Snapshot is a detached copy of everything a client may read
type Snapshot struct {
	ID                      string                 `json:"id"`
	Day                     int                    `json:"day"`
	Phase                   Phase                  `json:"phase"`
	Status                  Status                 `json:"status"`
	Morale                  int                    `json:"morale"`
	Waste                   int                    `json:"waste"`
	Rats                    int                    `json:"rats"`
	Inventory               []content.Item         `json:"inventory"`
	Survivors               []Survivor             `json:"survivors"`
	Locations               []Location             `json:"locations"`
	Dice                    []int                  `json:"dice"`
	RerollUsed              bool                   `json:"reroll_used"`
	Debuffs                 []Debuff               `json:"debuffs"`
	PendingStarvationWounds int                    `json:"pending_starvation_wounds"`
	PendingCrossroad        *cards.Pending         `json:"pending_crossroad,omitempty"`
	ActiveCrisis            *content.Crisis        `json:"active_crisis,omitempty"`
	Objective               *content.MainObjective `json:"objective"`
	SelectedSurvivorID      string                 `json:"selected_survivor_id,omitempty"`
	SearchDeckSizes         map[string]int         `json:"search_deck_sizes"`
	CrisesLeft              int                    `json:"crises_left"`
	CrossroadsLeft          int                    `json:"crossroads_left"`
	Log                     []string               `json:"log"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

func (e *GameEngine) snapshot() *Snapshot {
	s := e.state
	snap := &Snapshot{
		ID:                      e.ID,
		Day:                     s.Day,
		Phase:                   s.Phase,
		Status:                  s.Status,
		Morale:                  s.Morale,
		Waste:                   s.Waste,
		Rats:                    s.Rats(),
		Inventory:               append([]content.Item{}, s.Inventory...),
		Survivors:               make([]Survivor, 0, len(s.Survivors)),
		Locations:               make([]Location, 0, len(s.Locations)),
		Dice:                    e.pool.Values(),
		RerollUsed:              e.pool.RerollUsed(),
		Debuffs:                 append([]Debuff{}, s.Debuffs...),
		PendingStarvationWounds: s.PendingStarvationWounds,
		ActiveCrisis:            s.ActiveCrisis,
		Objective:               s.Objective,
		SelectedSurvivorID:      s.SelectedSurvivorID,
		SearchDeckSizes:         make(map[string]int, len(s.Locations)),
		CrisesLeft:              e.crises.Size(),
		CrossroadsLeft:          e.crossroads.Size(),
		Log:                     append([]string{}, s.Log...),
		CreatedAt:               s.CreatedAt,
		UpdatedAt:               s.UpdatedAt,
	}

	for _, sv := range s.Survivors {
		c := *sv
		c.Inventory = append([]content.Item{}, sv.Inventory...)
		c.Tags = append([]string{}, sv.Tags...)
		snap.Survivors = append(snap.Survivors, c)
	}
	for _, loc := range s.Locations {
		c := *loc
		c.SearchDeck = append([]string{}, loc.SearchDeck...)
		snap.Locations = append(snap.Locations, c)
		snap.SearchDeckSizes[loc.ID] = len(loc.SearchDeck)
	}
	if s.PendingCrossroad != nil {
		p := *s.PendingCrossroad
		snap.PendingCrossroad = &p
	}
	return snap
}
