package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/cards"
	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/death"
	"github.com/qninhdt/last-compound/server/internal/dice"
	"github.com/qninhdt/last-compound/server/internal/random"
)

// Rule constants
const (
	PartySize      = 3
	StartingMorale = 5

	// TriggerChance is the probability that a qualifying trigger draws a crossroad
	TriggerChance = 0.3

	// Percentile bands of the travel exposure check: safe, zombie, wound, infection
	ExposureSafeMax   = 60
	ExposureZombieMax = 80
	ExposureWoundMax  = 95
)

var (
	// ErrNotEnoughSurvivors is returned when the catalog cannot fill a party
	ErrNotEnoughSurvivors = errors.New("not enough survivors in catalog")
	// ErrNoObjective is returned when the catalog has no main objective
	ErrNoObjective = errors.New("catalog has no main objective")
)

// GameEngine orchestrates one session: it owns the state, the decks, the
// dice pool and the random source. Every exported method takes the lock, so
// a command is never interleaved with another.
type GameEngine struct {
	ID         string
	state      *GameState
	catalog    *content.Catalog
	rng        random.Source
	logger     *zap.Logger
	pool       dice.Pool
	crises     *cards.Deck[*content.Crisis]
	crossroads *cards.Deck[*content.Crossroad]
	executor   *cards.ActionExecutor
	deathLoop  *death.DeathLoop
	thresholds map[string]bool
	mu         sync.RWMutex
}

// NewGameEngine sets up a new session from the catalog
func NewGameEngine(id string, catalog *content.Catalog, rng random.Source, logger *zap.Logger) (*GameEngine, error) {
	if len(catalog.Survivors) < PartySize {
		return nil, fmt.Errorf("need %d, have %d: %w", PartySize, len(catalog.Survivors), ErrNotEnoughSurvivors)
	}
	if len(catalog.Objectives) == 0 {
		return nil, ErrNoObjective
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	state := newGameState(catalog, rng)
	engine := &GameEngine{
		ID:         id,
		state:      state,
		catalog:    catalog,
		rng:        rng,
		logger:     logger.With(zap.String("session_id", id)),
		crises:     cards.NewDeck(catalog.Crises, rng),
		crossroads: cards.NewDeck(catalog.Crossroads, rng),
		executor:   cards.NewActionExecutor(state, rng),
		deathLoop:  death.NewDeathLoop(state),
		thresholds: make(map[string]bool),
	}

	for _, th := range catalog.Thresholds {
		engine.thresholds[th.Name] = engine.evalThreshold(th)
	}

	names := make([]string, 0, len(state.Survivors))
	for _, sv := range state.Survivors {
		names = append(names, sv.Name)
	}
	state.Logf("A new session begins. Objective: %s", state.Objective.Title)
	state.Logf("Survivors: %s", strings.Join(names, ", "))

	engine.logger.Info("session created",
		zap.String("objective", state.Objective.ID),
		zap.Strings("survivors", state.SurvivorIDs()),
	)
	return engine, nil
}

func newGameState(catalog *content.Catalog, rng random.Source) *GameState {
	now := time.Now()
	state := &GameState{
		Day:       1,
		Phase:     PhaseCrisis,
		Status:    StatusPlaying,
		Morale:    StartingMorale,
		Inventory: make([]content.Item, 0),
		Survivors: make([]*Survivor, 0, PartySize),
		Locations: make([]*Location, 0, len(catalog.Locations)),
		Debuffs:   make([]Debuff, 0),
		Log:       make([]string, 0),
		CreatedAt: now,
		UpdatedAt: now,
		catalog:   catalog,
		homeID:    catalog.HomeID(),
	}

	order := make([]int, len(catalog.Survivors))
	for i := range order {
		order[i] = i
	}
	random.Shuffle(rng, len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for _, idx := range order[:PartySize] {
		tpl := catalog.Survivors[idx]
		state.Survivors = append(state.Survivors, &Survivor{
			ID:         tpl.ID,
			Name:       tpl.Name,
			HP:         tpl.HP,
			Health:     Healthy,
			LocationID: state.homeID,
			Inventory:  make([]content.Item, 0),
			Skill:      tpl.Skill,
			Tags:       make([]string, 0),
		})
	}

	state.Objective = catalog.Objectives[rng.IntN(len(catalog.Objectives))]

	for _, tpl := range catalog.Locations {
		deck := make([]string, len(tpl.SearchDeck))
		copy(deck, tpl.SearchDeck)
		random.Shuffle(rng, len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
		state.Locations = append(state.Locations, &Location{
			ID:         tpl.ID,
			Name:       tpl.Name,
			Slots:      tpl.ZombieSlots,
			Home:       tpl.Home,
			SearchDeck: deck,
		})
	}

	return state
}

// Snapshot returns a deep copy of the current state
func (e *GameEngine) Snapshot() *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot()
}

// View returns a snapshot together with the eligibility of each pending
// crossroad choice for the survivor who triggered it, read under one lock
func (e *GameEngine) View() (*Snapshot, []bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot(), e.eligibleChoices("")
}

// Status returns the session status
func (e *GameEngine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Status
}

// SelectSurvivor records the survivor the player is looking at. An empty id
// clears the selection. Selection never feeds into rule resolution.
func (e *GameEngine) SelectSurvivor(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status != StatusPlaying {
		return
	}
	if id == "" {
		e.state.SelectedSurvivorID = ""
		return
	}
	if _, ok := e.state.Survivor(id); ok {
		e.state.SelectedSurvivorID = id
	}
}

// AdvancePhase moves the session one phase forward. It is a no-op once the
// session has ended, while a crossroad is pending or while starvation
// wounds are unassigned.
func (e *GameEngine) AdvancePhase() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status != StatusPlaying || e.state.PendingCrossroad != nil {
		return
	}
	if e.state.PendingStarvationWounds > 0 {
		return
	}

	switch e.state.Phase {
	case PhaseCrisis:
		e.startPlayerPhase()
	case PhasePlayer:
		e.state.Logf("--- Player phase ends ---")
		e.state.Phase = PhaseColony
	case PhaseColony:
		e.resolveColony()
		e.state.Phase = PhaseEnd
	case PhaseEnd:
		e.endDay()
	}

	if e.state.Status == StatusPlaying {
		e.checkThresholds()
	}
	e.touch()
}

func (e *GameEngine) startPlayerPhase() {
	s := e.state
	s.Logf("--- Day %d, Crisis phase ---", s.Day)

	if crisis, ok := e.crises.Draw(); ok {
		s.ActiveCrisis = crisis
		s.Logf("Crisis: %s", crisis.Title)
	} else {
		s.ActiveCrisis = nil
		s.Logf("No crisis today")
	}

	for _, loc := range s.Locations {
		if loc.ID == s.homeID || len(s.occupants(loc.ID)) == 0 {
			continue
		}
		s.SpawnZombies(loc.ID, 1)
	}

	rolled := e.pool.Roll(e.rng, len(s.Survivors)+1)
	for _, sv := range s.Survivors {
		sv.SkillUsed = false
	}
	s.Logf("Rolled dice: %s", joinInts(rolled))
	s.Phase = PhasePlayer
}

// canAct reports whether survivor commands are accepted right now
func (e *GameEngine) canAct() bool {
	s := e.state
	return s.Status == StatusPlaying && s.Phase == PhasePlayer && s.PendingCrossroad == nil
}

// actor returns the survivor a command acts on, if commands are accepted
func (e *GameEngine) actor(survivorID string) (*Survivor, bool) {
	if !e.canAct() {
		return nil, false
	}
	return e.state.Survivor(survivorID)
}

func (e *GameEngine) touch() {
	e.state.UpdatedAt = time.Now()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
