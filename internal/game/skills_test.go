package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUseSkillMedic tests ally healing and the daily limit
func TestUseSkillMedic(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S006", "S001")
	survivor(t, engine, "S001").HP = 1
	playerPhase(engine, 3)

	engine.UseSkill("S006", "S001")
	assert.Equal(t, 2, survivor(t, engine, "S001").HP)
	assert.True(t, survivor(t, engine, "S006").SkillUsed)

	engine.UseSkill("S006", "S001")
	assert.Equal(t, 2, survivor(t, engine, "S001").HP, "skills work once per day")
	assert.Equal(t, []int{3}, engine.pool.Values(), "skills are free")
}

// TestUseSkillMedicNeedsAllyNearby tests the target rules for healing
func TestUseSkillMedicNeedsAllyNearby(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S006", "S001")
	survivor(t, engine, "S001").LocationID = "L002"
	playerPhase(engine)

	engine.UseSkill("S006", "S001")
	engine.UseSkill("S006", "")
	engine.UseSkill("S006", "S006")

	assert.Equal(t, 3, survivor(t, engine, "S001").HP)
	assert.False(t, survivor(t, engine, "S006").SkillUsed)
}

// TestUseSkillSniper tests the remote kill at the compound
func TestUseSkillSniper(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S007")
	survivor(t, engine, "S007").LocationID = "L004"
	playerPhase(engine)

	engine.UseSkill("S007", "")
	assert.False(t, survivor(t, engine, "S007").SkillUsed, "no zombies to shoot")

	location(t, engine, "L001").Zombies = 2
	engine.UseSkill("S007", "")
	assert.Equal(t, 1, location(t, engine, "L001").Zombies)
}

// TestUseSkillCommander tests granting a free action
func TestUseSkillCommander(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S008", "S002")
	playerPhase(engine)

	engine.UseSkill("S008", "S002")

	assert.True(t, survivor(t, engine, "S002").HasTag(TagFreeAction))
	assert.False(t, survivor(t, engine, "S008").HasTag(TagFreeAction))
}

// TestUseSkillResilient tests self healing
func TestUseSkillResilient(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S011")
	playerPhase(engine)

	engine.UseSkill("S011", "")

	assert.Equal(t, 4, survivor(t, engine, "S011").HP)
}

// TestUseSkillPassive tests that passive skills cannot be activated
func TestUseSkillPassive(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001")
	playerPhase(engine)

	engine.UseSkill("S001", "")

	assert.False(t, survivor(t, engine, "S001").SkillUsed)
}

// TestUseItem tests consuming a usable item
func TestUseItem(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S001")
	give(t, engine, "S001", "I001")
	give(t, engine, "S001", "I005")
	playerPhase(engine)

	engine.UseItem("S001", "I001")
	assert.Len(t, survivor(t, engine, "S001").Inventory, 2, "food is not usable")

	engine.UseItem("S001", "I005")
	sv := survivor(t, engine, "S001")
	assert.Equal(t, 5, sv.HP)
	assert.Len(t, sv.Inventory, 1)
	assert.Equal(t, "I001", sv.Inventory[0].ID)
}

// TestUseItemRifle tests a remote kill item
func TestUseItemRifle(t *testing.T) {
	engine, _ := newTestEngine(t)
	withRoster(t, engine, "S002")
	give(t, engine, "S002", "I008")
	location(t, engine, "L001").Zombies = 3
	playerPhase(engine)

	engine.UseItem("S002", "I008")

	assert.Equal(t, 2, location(t, engine, "L001").Zombies)
	assert.Empty(t, survivor(t, engine, "S002").Inventory)
}
