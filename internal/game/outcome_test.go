package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qninhdt/last-compound/server/internal/content"
)

func endPhase(e *GameEngine, win content.WinCondition) {
	e.state.Objective = &content.MainObjective{ID: "T", Title: "Test objective", WinCondition: win}
	e.state.Phase = PhaseEnd
}

// TestExtinctionBeatsObjective tests that an empty roster loses even when the objective holds
func TestExtinctionBeatsObjective(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001", "S002")
	survivor(t, engine, "S001").HP = 0
	survivor(t, engine, "S002").Health = Infected
	endPhase(engine, content.SurviveDays{Days: 1})

	engine.AdvancePhase()

	assert.Equal(t, StatusLost, engine.state.Status)
	assert.Empty(t, engine.state.Survivors)
}

// TestInfectedSurvivorDies tests that infection is fatal at day end
func TestInfectedSurvivorDies(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001", "S002")
	survivor(t, engine, "S002").Health = Infected
	endPhase(engine, content.SurviveDays{Days: 10})

	engine.AdvancePhase()

	assert.Equal(t, StatusPlaying, engine.state.Status)
	assert.Equal(t, []string{"S001"}, engine.state.SurvivorIDs())
	assert.Equal(t, 2, engine.state.Day)
}

// TestMoraleCollapse tests the morale defeat
func TestMoraleCollapse(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001")
	engine.state.Morale = 0
	endPhase(engine, content.SurviveDays{Days: 1})

	engine.AdvancePhase()

	assert.Equal(t, StatusLost, engine.state.Status)
}

// TestInspiringFloorsMorale tests that an inspiring survivor keeps the colony going
func TestInspiringFloorsMorale(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001", "S010")
	engine.state.Morale = -3
	endPhase(engine, content.SurviveDays{Days: 10})

	engine.AdvancePhase()

	assert.Equal(t, StatusPlaying, engine.state.Status)
	assert.Equal(t, 1, engine.state.Morale)
}

// TestObjectives tests every win condition variant
func TestObjectives(t *testing.T) {
	tests := []struct {
		name  string
		win   content.WinCondition
		setup func(t *testing.T, e *GameEngine)
		want  Status
	}{
		{"survive reached", content.SurviveDays{Days: 1}, nil, StatusWon},
		{"survive pending", content.SurviveDays{Days: 2}, nil, StatusPlaying},
		{"stockpile", content.Stockpile{Requirement: content.Requirement{Category: content.CategoryFood, Amount: 2}},
			func(t *testing.T, e *GameEngine) { giveColony(t, e, "I001", 2) }, StatusWon},
		{"stockpile short", content.Stockpile{Requirement: content.Requirement{Category: content.CategoryFood, Amount: 2}},
			func(t *testing.T, e *GameEngine) { giveColony(t, e, "I001", 1) }, StatusPlaying},
		{"barricades", content.BarricadesAt{LocationID: "L001", Count: 3},
			func(t *testing.T, e *GameEngine) { location(t, e, "L001").Barricades = 3 }, StatusWon},
		{"secure", content.SecureLocation{LocationID: "L004", Barricades: 2},
			func(t *testing.T, e *GameEngine) { location(t, e, "L004").Barricades = 2 }, StatusWon},
		{"secure with zombies", content.SecureLocation{LocationID: "L004", Barricades: 2},
			func(t *testing.T, e *GameEngine) {
				loc := location(t, e, "L004")
				loc.Barricades = 2
				loc.Zombies = 1
			}, StatusPlaying},
		{"multi", content.MultiStockpile{Requirements: []content.Requirement{
			{Category: content.CategoryFood, Amount: 1},
			{Category: content.CategoryFuel, Amount: 1},
		}}, func(t *testing.T, e *GameEngine) {
			giveColony(t, e, "I001", 1)
			giveColony(t, e, "I006", 1)
		}, StatusWon},
		{"multi partial", content.MultiStockpile{Requirements: []content.Requirement{
			{Category: content.CategoryFood, Amount: 1},
			{Category: content.CategoryFuel, Amount: 1},
		}}, func(t *testing.T, e *GameEngine) { giveColony(t, e, "I001", 1) }, StatusPlaying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(t)
			withRoster(t, engine, "S001")
			endPhase(engine, tt.win)
			if tt.setup != nil {
				tt.setup(t, engine)
			}

			engine.AdvancePhase()

			assert.Equal(t, tt.want, engine.state.Status)
		})
	}
}
