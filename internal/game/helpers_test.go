package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/cards"
	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/random"
)

// newTestEngine creates an engine over the embedded catalog driven by a
// scripted random source
func newTestEngine(t *testing.T) (*GameEngine, *random.Scripted) {
	t.Helper()

	catalog, err := content.Load()
	require.NoError(t, err)

	rng := &random.Scripted{}
	engine, err := NewGameEngine("test-session", catalog, rng, zap.NewNop())
	require.NoError(t, err)

	// no crisis unless a test installs one
	engine.crises = cards.NewDeck([]*content.Crisis{}, rng)
	return engine, rng
}

// withRoster replaces the roster with catalog survivors standing at the compound
func withRoster(t *testing.T, e *GameEngine, ids ...string) {
	t.Helper()

	e.state.Survivors = nil
	for _, id := range ids {
		var found bool
		for _, tpl := range e.catalog.Survivors {
			if tpl.ID != id {
				continue
			}
			e.state.Survivors = append(e.state.Survivors, &Survivor{
				ID:         tpl.ID,
				Name:       tpl.Name,
				HP:         tpl.HP,
				Health:     Healthy,
				LocationID: e.state.homeID,
				Skill:      tpl.Skill,
			})
			found = true
		}
		require.True(t, found, "unknown survivor %s", id)
	}
}

// playerPhase puts the session in the Player phase with a fixed pool
func playerPhase(e *GameEngine, faces ...int) {
	e.state.Phase = PhasePlayer
	e.pool.Set(faces)
}

// giveColony adds n copies of a catalog item to colony stock
func giveColony(t *testing.T, e *GameEngine, itemID string, n int) {
	t.Helper()
	item, ok := e.catalog.Item(itemID)
	require.True(t, ok, "unknown item %s", itemID)
	for i := 0; i < n; i++ {
		e.state.Inventory = append(e.state.Inventory, item)
	}
}

// give adds a catalog item to a survivor's inventory
func give(t *testing.T, e *GameEngine, survivorID, itemID string) {
	t.Helper()
	item, ok := e.catalog.Item(itemID)
	require.True(t, ok, "unknown item %s", itemID)
	sv := survivor(t, e, survivorID)
	sv.Inventory = append(sv.Inventory, item)
}

func survivor(t *testing.T, e *GameEngine, id string) *Survivor {
	t.Helper()
	sv, ok := e.state.Survivor(id)
	require.True(t, ok, "survivor %s not in roster", id)
	return sv
}

func location(t *testing.T, e *GameEngine, id string) *Location {
	t.Helper()
	loc, ok := e.state.Location(id)
	require.True(t, ok, "location %s not found", id)
	return loc
}

func lastLog(e *GameEngine) string {
	if len(e.state.Log) == 0 {
		return ""
	}
	return e.state.Log[len(e.state.Log)-1]
}
