package content

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "L001", c.HomeID())
	assert.GreaterOrEqual(t, len(c.Survivors), 3)
	assert.NotEmpty(t, c.Crises)
	assert.NotEmpty(t, c.Objectives)
	assert.NotEmpty(t, c.Crossroads)

	item, ok := c.Item("I004")
	require.True(t, ok)
	assert.Equal(t, CategoryMedicine, item.Category)
	require.NotNil(t, item.Effect)
	assert.Equal(t, EffectHealSelf, item.Effect.Kind)
}

func TestCompositePenaltyDecoded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	var breach *Crisis
	for _, cr := range c.Crises {
		if cr.ID == "C010" {
			breach = cr
		}
	}
	require.NotNil(t, breach)

	composite, ok := breach.Penalty.(CompositePenalty)
	require.True(t, ok, "expected composite penalty, got %T", breach.Penalty)
	require.Len(t, composite.Effects, 3)
	assert.Equal(t, BarricadeLoss{Count: 1}, composite.Effects[0])
	assert.Equal(t, ZombieSpawn{Count: 2}, composite.Effects[1])
	assert.Equal(t, MoraleLoss{Amount: 1}, composite.Effects[2])
}

func TestParseRejectsUnknownPenalty(t *testing.T) {
	doc := `
items: []
locations:
  - {id: L001, name: Home, zombie_slots: 3, home: true}
crises:
  - id: C1
    title: Bad
    scope: Physical
    penalty: {kind: SUMMON_DRAGON}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestParseRejectsDanglingSearchDeck(t *testing.T) {
	doc := `
items: []
locations:
  - {id: L001, name: Home, zombie_slots: 3, home: true, search_deck: [I999]}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownReference))
}

func TestParseRejectsBadCondition(t *testing.T) {
	doc := `
items: []
locations:
  - {id: L001, name: Home, zombie_slots: 3, home: true}
crossroads:
  - id: X1
    title: Typo
    trigger: {kind: action, value: search}
    choices:
      - text: go
        condition: 'survivor.hitpoints > 1'
        action: {kind: NONE}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
}

func TestParseRejectsUnknownThresholdTrigger(t *testing.T) {
	doc := `
items: []
locations:
  - {id: L001, name: Home, zombie_slots: 3, home: true}
thresholds:
  - name: low_morale
    condition: 'colony.morale <= 2'
crossroads:
  - id: X1
    title: Typo
    trigger: {kind: threshold, value: low_moral}
    choices:
      - text: go
        action: {kind: NONE}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownReference))
}

func TestParseRejectsUnknownActionTrigger(t *testing.T) {
	doc := `
items: []
locations:
  - {id: L001, name: Home, zombie_slots: 3, home: true}
crossroads:
  - id: X1
    title: Typo
    trigger: {kind: action, value: serach}
    choices:
      - text: go
        action: {kind: NONE}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestParseRejectsUnknownField(t *testing.T) {
	doc := `
items: []
locations:
  - {id: L001, name: Home, zombie_slots: 3, home: true, color: red}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
}

func TestTriggerMatches(t *testing.T) {
	exact := Trigger{Kind: TriggerLocation, Value: "L004"}
	wild := Trigger{Kind: TriggerLocation, Value: TriggerAny}

	assert.True(t, exact.Matches(TriggerLocation, "L004"))
	assert.False(t, exact.Matches(TriggerLocation, "L002"))
	assert.False(t, exact.Matches(TriggerAction, "L004"))
	assert.True(t, wild.Matches(TriggerLocation, "L002"))
	assert.False(t, wild.Matches(TriggerAction, "search"))
}

func TestSkillEffects(t *testing.T) {
	assert.Equal(t, EffectHealAlly, SkillMedic.Effect())
	assert.Equal(t, EffectRemoteKill, SkillSniper.Effect())
	assert.Equal(t, EffectFreeAction, SkillCommander.Effect())
	assert.Equal(t, EffectHealSelf, SkillResilient.Effect())
	assert.Equal(t, EffectNone, SkillDoubleTap.Effect())
}

func TestEffectsMarshalWithKind(t *testing.T) {
	cases := []struct {
		value interface{}
		want  string
	}{
		{MoraleLoss{Amount: 1}, `{"kind":"LOSE_MORALE","amount":1}`},
		{Stockpile{Requirement{Category: CategoryFood, Amount: 5}}, `{"kind":"STOCKPILE","category":"FOOD","amount":5}`},
		{NoOp{}, `{"kind":"NONE"}`},
		{
			CompositePenalty{Effects: []Penalty{MoraleLoss{Amount: 2}, ZombieSpawn{Count: 1}}},
			`{"kind":"COMPOSITE","effects":[{"kind":"LOSE_MORALE","amount":2},{"kind":"SPAWN_ZOMBIES","count":1}]}`,
		},
	}
	for _, tc := range cases {
		got, err := json.Marshal(tc.value)
		require.NoError(t, err)
		assert.JSONEq(t, tc.want, string(got))
	}
}
