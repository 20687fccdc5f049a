package content

import "github.com/qninhdt/last-compound/server/internal/condition"

// Category is the resource category of an item
type Category string

const (
	CategoryFood      Category = "FOOD"
	CategoryMedicine  Category = "MEDICINE"
	CategoryFuel      Category = "FUEL"
	CategoryJunk      Category = "JUNK"
	CategoryWeapon    Category = "WEAPON"
	CategoryBarricade Category = "BARRICADE"
)

// Categories lists every item category
var Categories = []Category{
	CategoryFood, CategoryMedicine, CategoryFuel, CategoryJunk, CategoryWeapon, CategoryBarricade,
}

func (c Category) valid() bool {
	switch c {
	case CategoryFood, CategoryMedicine, CategoryFuel, CategoryJunk, CategoryWeapon, CategoryBarricade:
		return true
	}
	return false
}

// EffectKind is what a usable item or an active skill does
type EffectKind string

const (
	EffectNone       EffectKind = ""
	EffectHealSelf   EffectKind = "heal_self"
	EffectHealAlly   EffectKind = "heal_ally"
	EffectRemoteKill EffectKind = "remote_kill"
	EffectFreeAction EffectKind = "free_action"
)

// Effect is an effect kind with its magnitude
type Effect struct {
	Kind      EffectKind `yaml:"kind" json:"kind"`
	Magnitude int        `yaml:"magnitude" json:"magnitude"`
}

// Item is an immutable catalog record
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    Category `yaml:"category" json:"category"`
	Usable      bool     `yaml:"usable" json:"usable"`
	Description string   `yaml:"description" json:"description"`
	Effect      *Effect  `yaml:"effect,omitempty" json:"effect,omitempty"`
}

// SkillKind identifies a survivor's fixed skill
type SkillKind string

const (
	SkillDoubleTap  SkillKind = "double_tap"
	SkillScavenger  SkillKind = "scavenger"
	SkillSafeTravel SkillKind = "safe_travel"
	SkillEngineer   SkillKind = "engineer"
	SkillJanitor    SkillKind = "janitor"
	SkillMedic      SkillKind = "medic"
	SkillSniper     SkillKind = "sniper"
	SkillCommander  SkillKind = "commander"
	SkillLuckyBreak SkillKind = "lucky_break"
	SkillInspiring  SkillKind = "inspiring"
	SkillResilient  SkillKind = "resilient"
)

func (k SkillKind) valid() bool {
	switch k {
	case SkillDoubleTap, SkillScavenger, SkillSafeTravel, SkillEngineer, SkillJanitor, SkillMedic,
		SkillSniper, SkillCommander, SkillLuckyBreak, SkillInspiring, SkillResilient:
		return true
	}
	return false
}

// Effect returns the activated effect of a skill, or EffectNone for passive skills.
func (k SkillKind) Effect() EffectKind {
	switch k {
	case SkillMedic:
		return EffectHealAlly
	case SkillSniper:
		return EffectRemoteKill
	case SkillCommander:
		return EffectFreeAction
	case SkillResilient:
		return EffectHealSelf
	default:
		return EffectNone
	}
}

// Skill is the named skill descriptor of a survivor
type Skill struct {
	Kind        SkillKind `yaml:"kind" json:"kind"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
}

// SurvivorTemplate is a catalog survivor
type SurvivorTemplate struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	HP    int    `yaml:"hp" json:"hp"`
	Skill Skill  `yaml:"skill" json:"skill"`
}

// LocationTemplate is a catalog location
type LocationTemplate struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	ZombieSlots int      `yaml:"zombie_slots" json:"zombie_slots"`
	SearchDeck  []string `yaml:"search_deck" json:"search_deck"`
	Home        bool     `yaml:"home" json:"home"`
}

// Requirement is one (category, amount) line of a crisis or objective
type Requirement struct {
	Category Category `yaml:"category" json:"category"`
	Amount   int      `yaml:"amount" json:"amount"`
}

// Scope selects which inventories may pay a crisis
type Scope string

const (
	ScopePhysical Scope = "Physical"
	ScopeAbstract Scope = "Abstract"
)

// DebuffKind is a timed global debuff
type DebuffKind string

const (
	DebuffAttackDifficultyUp DebuffKind = "ATTACK_DIFFICULTY_UP"
	DebuffMoraleDrain        DebuffKind = "MORALE_DRAIN"
	DebuffInfestation        DebuffKind = "INFESTATION"
)

func (k DebuffKind) valid() bool {
	switch k {
	case DebuffAttackDifficultyUp, DebuffMoraleDrain, DebuffInfestation:
		return true
	}
	return false
}

// Crisis is a daily obstacle card
type Crisis struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Story        string        `json:"story"`
	Requirements []Requirement `json:"requirements"`
	Scope        Scope         `json:"scope"`
	Penalty      Penalty       `json:"-"`
}

// MainObjective is the session's win condition
type MainObjective struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	WinCondition WinCondition `json:"-"`
}

// TriggerKind is what kind of event may draw a crossroad
type TriggerKind string

const (
	TriggerLocation  TriggerKind = "location"
	TriggerAction    TriggerKind = "action"
	TriggerThreshold TriggerKind = "threshold"
)

// TriggerAny matches every trigger value of the same kind
const TriggerAny = "any"

// Actions that fire an action trigger
const (
	ActionSearch   = "search"
	ActionSanitize = "sanitize"
	ActionDeposit  = "deposit"
)

// TriggerActions lists every value an action trigger may name
var TriggerActions = []string{ActionSearch, ActionSanitize, ActionDeposit}

// Trigger is the qualifying predicate of a crossroad card
type Trigger struct {
	Kind  TriggerKind `yaml:"kind" json:"kind"`
	Value string      `yaml:"value" json:"value"`
}

// Matches reports whether the trigger fires for kind and value.
func (t Trigger) Matches(kind TriggerKind, value string) bool {
	return t.Kind == kind && (t.Value == value || t.Value == TriggerAny)
}

// Choice is one branch of a crossroad
type Choice struct {
	Text      string               `json:"text"`
	Condition string               `json:"condition,omitempty"`
	Action    Action               `json:"-"`
	Eligible  *condition.Predicate `json:"-"`
}

// Crossroad is a narrative event card
type Crossroad struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Setup   string   `json:"setup"`
	Trigger Trigger  `json:"trigger"`
	Choices []Choice `json:"choices"`
}

// Threshold is a named state check that may trigger crossroads
type Threshold struct {
	Name      string               `yaml:"name" json:"name"`
	Condition string               `yaml:"condition" json:"condition"`
	Predicate *condition.Predicate `yaml:"-" json:"-"`
}
