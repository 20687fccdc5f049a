package game

import (
	"github.com/qninhdt/last-compound/server/internal/content"
)

// skillMagnitude is the strength of every activated skill
const skillMagnitude = 1

// UseSkill activates a survivor's skill, once per day. targetID names the
// ally for healing or the survivor granted a free action; it may be empty
// for skills that act on their user. Passive skills cannot be activated.
func (e *GameEngine) UseSkill(survivorID, targetID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok || sv.SkillUsed {
		return
	}
	effect := sv.Skill.Kind.Effect()
	if effect == content.EffectNone {
		return
	}

	var target *Survivor
	if targetID != "" {
		if target, ok = e.state.Survivor(targetID); !ok {
			return
		}
	}
	if effect == content.EffectHealAlly && (target == nil || target.ID == sv.ID) {
		return
	}

	if e.applyEffect(sv, effect, skillMagnitude, target) {
		sv.SkillUsed = true
		e.state.Logf("%s uses %s", sv.Name, sv.Skill.Name)
		e.touch()
	}
}

// UseItem consumes a usable item from the survivor's inventory. Healing
// items used through this command heal their holder.
func (e *GameEngine) UseItem(survivorID, itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sv, ok := e.actor(survivorID)
	if !ok {
		return
	}
	idx := -1
	for i, item := range sv.Inventory {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	item := sv.Inventory[idx]
	if !item.Usable || item.Effect == nil {
		return
	}

	if e.applyEffect(sv, item.Effect.Kind, item.Effect.Magnitude, sv) {
		sv.Inventory = append(sv.Inventory[:idx], sv.Inventory[idx+1:]...)
		e.state.Logf("%s uses %s", sv.Name, item.Name)
		e.touch()
	}
}

// applyEffect resolves one activated effect and reports whether it did
// anything. target is the ally for HealAlly and the recipient of FreeAction.
func (e *GameEngine) applyEffect(sv *Survivor, effect content.EffectKind, magnitude int, target *Survivor) bool {
	switch effect {
	case content.EffectHealSelf:
		sv.HP += magnitude
		e.state.Logf("%s recovers %d HP (HP %d)", sv.Name, magnitude, sv.HP)
		return true

	case content.EffectHealAlly:
		if target == nil || target.LocationID != sv.LocationID {
			return false
		}
		target.HP += magnitude
		e.state.Logf("%s treats %s (HP %d)", sv.Name, target.Name, target.HP)
		return true

	case content.EffectRemoteKill:
		compound := e.state.Compound()
		if compound == nil || compound.Zombies == 0 {
			return false
		}
		killed := e.state.killZombies(compound, magnitude)
		e.state.Logf("%s picks off %d zombie(s) at %s", sv.Name, killed, compound.Name)
		return true

	case content.EffectFreeAction:
		if target == nil {
			target = sv
		}
		target.addTag(TagFreeAction)
		e.state.Logf("%s gets a free action", target.Name)
		return true

	case content.EffectNone:
		return false

	default:
		return false
	}
}
