package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/random"
)

// TestNewGameEngine tests session setup
func TestNewGameEngine(t *testing.T) {
	catalog, err := content.Load()
	require.NoError(t, err)

	engine, err := NewGameEngine("test-game", catalog, random.New(1), zap.NewNop())
	require.NoError(t, err)

	s := engine.state
	assert.Equal(t, "test-game", engine.ID)
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, PhaseCrisis, s.Phase)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, StartingMorale, s.Morale)
	assert.NotNil(t, s.Objective)
	require.Len(t, s.Survivors, PartySize)
	assert.Len(t, s.Locations, len(catalog.Locations))

	seen := make(map[string]bool)
	for _, sv := range s.Survivors {
		assert.False(t, seen[sv.ID], "survivor %s drawn twice", sv.ID)
		seen[sv.ID] = true
		assert.Equal(t, catalog.HomeID(), sv.LocationID)
		assert.Equal(t, Healthy, sv.Health)
	}
	assert.Equal(t, len(catalog.Crises), engine.crises.Size())
	assert.Equal(t, len(catalog.Crossroads), engine.crossroads.Size())
}

// TestNewGameEngineSeedReplay tests that a fixed seed replays the same session
func TestNewGameEngineSeedReplay(t *testing.T) {
	catalog, err := content.Load()
	require.NoError(t, err)

	a, err := NewGameEngine("a", catalog, random.New(99), nil)
	require.NoError(t, err)
	b, err := NewGameEngine("b", catalog, random.New(99), nil)
	require.NoError(t, err)

	a.AdvancePhase()
	b.AdvancePhase()

	assert.Equal(t, a.state.SurvivorIDs(), b.state.SurvivorIDs())
	assert.Equal(t, a.state.Objective.ID, b.state.Objective.ID)
	assert.Equal(t, a.pool.Values(), b.pool.Values())
}

// TestNewGameEngineSmallCatalog tests the party size check
func TestNewGameEngineSmallCatalog(t *testing.T) {
	catalog, err := content.Load()
	require.NoError(t, err)
	catalog.Survivors = catalog.Survivors[:2]

	_, err = NewGameEngine("x", catalog, random.New(1), nil)
	assert.ErrorIs(t, err, ErrNotEnoughSurvivors)
}

// TestPlayerPhaseDicePool tests the pool size and faces after the daily roll
func TestPlayerPhaseDicePool(t *testing.T) {
	catalog, err := content.Load()
	require.NoError(t, err)

	for seed := int64(0); seed < 20; seed++ {
		engine, err := NewGameEngine("dice", catalog, random.New(seed), nil)
		require.NoError(t, err)

		engine.AdvancePhase()

		snap := engine.Snapshot()
		require.Equal(t, PhasePlayer, snap.Phase)
		require.Len(t, snap.Dice, len(snap.Survivors)+1)
		for _, d := range snap.Dice {
			assert.GreaterOrEqual(t, d, 1)
			assert.LessOrEqual(t, d, 6)
		}
	}
}

// TestCrisisPhaseSpawnsAtOccupiedLocations tests the daily zombie spawn
func TestCrisisPhaseSpawnsAtOccupiedLocations(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001", "S002")
	survivor(t, engine, "S002").LocationID = "L003"

	engine.AdvancePhase()

	assert.Equal(t, 1, location(t, engine, "L003").Zombies)
	assert.Equal(t, 0, location(t, engine, "L001").Zombies, "the compound never gets the daily spawn")
	assert.Equal(t, 0, location(t, engine, "L002").Zombies)
	assert.Nil(t, engine.state.ActiveCrisis)
}

// TestCrisisPhaseResetsDailyFlags tests that skills and the reroll reset each day
func TestCrisisPhaseResetsDailyFlags(t *testing.T) {
	engine, rng := newTestEngine(t)
	withRoster(t, engine, "S009", "S006")
	playerPhase(engine, 1, 2)

	rng.PushDie(4)
	engine.RerollDie(1)
	require.True(t, engine.pool.RerollUsed())
	survivor(t, engine, "S006").SkillUsed = true

	engine.state.Phase = PhaseCrisis
	engine.AdvancePhase()

	assert.False(t, engine.pool.RerollUsed())
	assert.False(t, survivor(t, engine, "S006").SkillUsed)
}

// TestAdvanceFullDay tests a quiet day that rolls into the next one
func TestAdvanceFullDay(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001", "S002", "S003")
	engine.state.Objective = &content.MainObjective{ID: "T", Title: "Hold", WinCondition: content.SurviveDays{Days: 10}}
	giveColony(t, engine, "I001", 3)

	for _, want := range []Phase{PhasePlayer, PhaseColony, PhaseEnd, PhaseCrisis} {
		engine.AdvancePhase()
		require.Equal(t, want, engine.state.Phase)
	}

	assert.Equal(t, 2, engine.state.Day)
	assert.Equal(t, StatusPlaying, engine.state.Status)
	assert.Equal(t, 0, engine.state.CountColony(content.CategoryFood))
}

// TestAdvanceAfterGameOver tests that a finished session ignores advances
func TestAdvanceAfterGameOver(t *testing.T) {
	engine, _ := newTestEngine(t)
	engine.state.Status = StatusLost
	engine.state.Phase = PhaseEnd

	engine.AdvancePhase()

	assert.Equal(t, PhaseEnd, engine.state.Phase)
	assert.Equal(t, 1, engine.state.Day)
}

// TestSelectSurvivor tests selection bookkeeping
func TestSelectSurvivor(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001", "S002")

	engine.SelectSurvivor("S002")
	assert.Equal(t, "S002", engine.state.SelectedSurvivorID)

	engine.SelectSurvivor("S999")
	assert.Equal(t, "S002", engine.state.SelectedSurvivorID, "unknown ids are ignored")

	engine.SelectSurvivor("")
	assert.Empty(t, engine.state.SelectedSurvivorID)
}

// TestSnapshotIsDetached tests that snapshots do not alias engine state
func TestSnapshotIsDetached(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001")
	give(t, engine, "S001", "I001")
	playerPhase(engine, 3, 4)

	snap := engine.Snapshot()
	snap.Survivors[0].HP = 99
	snap.Survivors[0].Inventory[0].Name = "changed"
	snap.Dice[0] = 6
	snap.Locations[0].Zombies = 42

	assert.Equal(t, 3, survivor(t, engine, "S001").HP)
	assert.NotEqual(t, "changed", survivor(t, engine, "S001").Inventory[0].Name)
	assert.Equal(t, []int{3, 4}, engine.pool.Values())
	assert.Equal(t, 0, engine.state.Locations[0].Zombies)
}
