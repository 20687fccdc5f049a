package game

import (
	"strings"

	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/content"
	"github.com/qninhdt/last-compound/server/internal/random"
)

// Action rule constants
const (
	AttackThreshold       = 3
	HardAttackThreshold   = 4
	DoubleTapMinPips      = 5
	FortifyAmount         = 1
	EngineerFortifyAmount = 2
	SanitizeAmount        = 3
	JanitorSanitizeAmount = 5
	ScavengerBonusChance  = 0.5
)

// MoveSurvivor spends a die to travel to another location. Unless the
// survivor has safe travel, the trip rolls an exposure check.
func (e *GameEngine) MoveSurvivor(survivorID, locationID string, die int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok {
		return
	}
	dest, ok := e.state.Location(locationID)
	if !ok || dest.ID == sv.LocationID {
		return
	}
	if !e.pool.Spend(die) {
		return
	}

	e.state.Relocate(sv.ID, dest.ID)
	if sv.Skill.Kind == content.SkillSafeTravel {
		e.state.Logf("%s knows the back roads and travels safely", sv.Name)
	} else {
		e.exposure(sv, dest)
	}

	e.trigger(content.TriggerLocation, dest.ID, sv.ID)
	e.touch()
}

// exposure rolls the travel percentile for sv arriving at dest
func (e *GameEngine) exposure(sv *Survivor, dest *Location) {
	roll := random.Percentile(e.rng)
	switch {
	case roll <= ExposureSafeMax:
		e.state.Logf("The trip is uneventful")
	case roll <= ExposureZombieMax:
		e.state.Logf("%s was followed", sv.Name)
		e.state.SpawnZombies(dest.ID, 1)
	case roll <= ExposureWoundMax:
		e.state.Logf("%s is ambushed on the way", sv.Name)
		e.state.Wound(sv.ID, 1)
	default:
		sv.Health = Infected
		e.state.Logf("%s was bitten and is infected", sv.Name)
	}
}

// attackThreshold returns the pips sv needs for a kill
func (e *GameEngine) attackThreshold(sv *Survivor) int {
	threshold := AttackThreshold
	if e.state.HasDebuff(content.DebuffAttackDifficultyUp) {
		threshold = HardAttackThreshold
	}
	if sv.HasTag(TagShaken) {
		threshold++
	}
	return threshold
}

// Attack spends a die to kill a zombie where the survivor stands. A die
// below the threshold is still spent.
func (e *GameEngine) Attack(survivorID string, die int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok {
		return
	}
	loc, ok := e.state.Location(sv.LocationID)
	if !ok || loc.Zombies == 0 {
		return
	}

	free := sv.HasTag(TagFreeAction)
	if free {
		sv.removeTag(TagFreeAction)
	} else if !e.pool.Spend(die) {
		return
	}

	if threshold := e.attackThreshold(sv); !free && die < threshold {
		e.state.Logf("%s attacks with a %d but needs %d: insufficient dice", sv.Name, die, threshold)
		e.touch()
		return
	}

	kills := 1
	if !free && sv.Skill.Kind == content.SkillDoubleTap && die >= DoubleTapMinPips {
		kills = 2
	}
	killed := e.state.killZombies(loc, kills)
	e.state.Logf("%s attacks and kills %d zombie(s) at %s", sv.Name, killed, loc.Name)
	e.touch()
}

// Search spends a die to draw from the location's search deck. Every search
// adds one waste, even when nothing is found.
func (e *GameEngine) Search(survivorID string, die int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok {
		return
	}
	loc, ok := e.state.Location(sv.LocationID)
	if !ok {
		return
	}
	if !e.pool.Spend(die) {
		return
	}

	found := e.drawSearch(sv, loc)
	if sv.Skill.Kind == content.SkillScavenger && len(loc.SearchDeck) > 0 && e.rng.Float64() < ScavengerBonusChance {
		found += e.drawSearch(sv, loc)
	}
	if found == 0 {
		e.state.Logf("%s searches %s but finds nothing", sv.Name, loc.Name)
	}
	e.state.Waste++

	e.trigger(content.TriggerAction, content.ActionSearch, sv.ID)
	e.touch()
}

// drawSearch pops the back of loc's search deck into sv's inventory
func (e *GameEngine) drawSearch(sv *Survivor, loc *Location) int {
	if len(loc.SearchDeck) == 0 {
		return 0
	}
	itemID := loc.SearchDeck[len(loc.SearchDeck)-1]
	loc.SearchDeck = loc.SearchDeck[:len(loc.SearchDeck)-1]

	item, ok := e.catalog.Item(itemID)
	if !ok {
		e.logger.Error("search deck references unknown item",
			zap.String("location_id", loc.ID),
			zap.String("item_id", itemID),
		)
		return 0
	}
	sv.Inventory = append(sv.Inventory, item)
	e.state.Logf("%s searches %s and finds %s", sv.Name, loc.Name, item.Name)
	return 1
}

// Fortify spends a die to add barricades where the survivor stands
func (e *GameEngine) Fortify(survivorID string, die int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok {
		return
	}
	loc, ok := e.state.Location(sv.LocationID)
	if !ok {
		return
	}
	if sv.HasTag(TagFreeAction) {
		sv.removeTag(TagFreeAction)
	} else if !e.pool.Spend(die) {
		return
	}

	amount := FortifyAmount
	if sv.Skill.Kind == content.SkillEngineer {
		amount = EngineerFortifyAmount
	}
	loc.Barricades += amount
	e.state.Logf("%s fortifies %s (+%d barricade)", sv.Name, loc.Name, amount)
	e.touch()
}

// Sanitize spends a die to reduce waste. Only possible at the compound.
func (e *GameEngine) Sanitize(survivorID string, die int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok || sv.LocationID != e.state.homeID {
		return
	}
	if !e.pool.Spend(die) {
		return
	}

	amount := SanitizeAmount
	if sv.Skill.Kind == content.SkillJanitor {
		amount = JanitorSanitizeAmount
	}
	e.state.Waste = max(0, e.state.Waste-amount)
	e.state.Logf("%s cleans up the compound (waste %d)", sv.Name, e.state.Waste)

	e.trigger(content.TriggerAction, content.ActionSanitize, sv.ID)
	e.touch()
}

// DepositItems moves a survivor's whole inventory into colony stock. Free,
// and only possible at the compound.
func (e *GameEngine) DepositItems(survivorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok || sv.LocationID != e.state.homeID || len(sv.Inventory) == 0 {
		return
	}

	names := make([]string, 0, len(sv.Inventory))
	for _, item := range sv.Inventory {
		names = append(names, item.Name)
	}
	e.state.Inventory = append(e.state.Inventory, sv.Inventory...)
	sv.Inventory = make([]content.Item, 0)
	e.state.Logf("%s deposits %s", sv.Name, strings.Join(names, ", "))

	e.trigger(content.TriggerAction, content.ActionDeposit, sv.ID)
	e.touch()
}

// RerollDie rerolls one die, once per day, if a lucky survivor is alive
func (e *GameEngine) RerollDie(die int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.canAct() {
		return
	}
	var lucky *Survivor
	for _, sv := range e.state.Survivors {
		if sv.Skill.Kind == content.SkillLuckyBreak {
			lucky = sv
			break
		}
	}
	if lucky == nil {
		return
	}

	if value, ok := e.pool.Reroll(e.rng, die); ok {
		e.state.Logf("%s rerolls a %d into a %d", lucky.Name, die, value)
		e.touch()
	}
}
