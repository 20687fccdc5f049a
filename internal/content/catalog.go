// Package content holds the immutable catalogs a session is built from:
// survivors, locations, items, crises, main objectives and crossroads.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/qninhdt/last-compound/server/internal/condition"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrUnknownReference is returned when a catalog entry names an id that
// does not exist
var ErrUnknownReference = errors.New("unknown reference")

type rawCrisis struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Story        string        `yaml:"story"`
	Requirements []Requirement `yaml:"requirements"`
	Scope        Scope         `yaml:"scope"`
	Penalty      rawEffect     `yaml:"penalty"`
}

type rawObjective struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Win         rawEffect `yaml:"win"`
}

type rawChoice struct {
	Text      string    `yaml:"text"`
	Condition string    `yaml:"condition"`
	Action    rawEffect `yaml:"action"`
}

type rawCrossroad struct {
	ID      string      `yaml:"id"`
	Title   string      `yaml:"title"`
	Setup   string      `yaml:"setup"`
	Trigger Trigger     `yaml:"trigger"`
	Choices []rawChoice `yaml:"choices"`
}

type catalogFile struct {
	Items      []Item             `yaml:"items"`
	Survivors  []SurvivorTemplate `yaml:"survivors"`
	Locations  []LocationTemplate `yaml:"locations"`
	Crises     []rawCrisis        `yaml:"crises"`
	Objectives []rawObjective     `yaml:"objectives"`
	Crossroads []rawCrossroad     `yaml:"crossroads"`
	Thresholds []Threshold        `yaml:"thresholds"`
}

// Catalog is the loaded, validated content repository
type Catalog struct {
	Items      []Item
	Survivors  []SurvivorTemplate
	Locations  []LocationTemplate
	Crises     []*Crisis
	Objectives []*MainObjective
	Crossroads []*Crossroad
	Thresholds []Threshold

	items     map[string]*Item
	locations map[string]*LocationTemplate
	homeID    string
}

// Load parses the catalog embedded in the binary
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Parse decodes and validates a catalog document. Every cross reference must
// resolve and every expression must compile.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		Items:     file.Items,
		Survivors: file.Survivors,
		Locations: file.Locations,
		items:     make(map[string]*Item),
		locations: make(map[string]*LocationTemplate),
	}

	for i := range c.Items {
		item := &c.Items[i]
		if !item.Category.valid() {
			return nil, fmt.Errorf("item %s: invalid category %q", item.ID, item.Category)
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("item %s: duplicate id", item.ID)
		}
		c.items[item.ID] = item
	}

	for i := range c.Locations {
		loc := &c.Locations[i]
		if _, dup := c.locations[loc.ID]; dup {
			return nil, fmt.Errorf("location %s: duplicate id", loc.ID)
		}
		c.locations[loc.ID] = loc
		if loc.Home {
			if c.homeID != "" {
				return nil, fmt.Errorf("location %s: second home location", loc.ID)
			}
			c.homeID = loc.ID
		}
		for _, itemID := range loc.SearchDeck {
			if err := c.checkItem(itemID); err != nil {
				return nil, fmt.Errorf("location %s: %w", loc.ID, err)
			}
		}
	}
	if c.homeID == "" {
		return nil, fmt.Errorf("catalog has no home location")
	}

	for _, s := range c.Survivors {
		if !s.Skill.Kind.valid() {
			return nil, fmt.Errorf("survivor %s: invalid skill %q", s.ID, s.Skill.Kind)
		}
		if s.HP <= 0 {
			return nil, fmt.Errorf("survivor %s: hp must be positive", s.ID)
		}
	}

	for _, rc := range file.Crises {
		penalty, err := rc.Penalty.toPenalty()
		if err != nil {
			return nil, fmt.Errorf("crisis %s: %w", rc.ID, err)
		}
		if err := c.checkPenalty(penalty); err != nil {
			return nil, fmt.Errorf("crisis %s: %w", rc.ID, err)
		}
		if rc.Scope != ScopePhysical && rc.Scope != ScopeAbstract {
			return nil, fmt.Errorf("crisis %s: invalid scope %q", rc.ID, rc.Scope)
		}
		c.Crises = append(c.Crises, &Crisis{
			ID:           rc.ID,
			Title:        rc.Title,
			Story:        rc.Story,
			Requirements: rc.Requirements,
			Scope:        rc.Scope,
			Penalty:      penalty,
		})
	}

	for _, ro := range file.Objectives {
		win, err := ro.Win.toWinCondition()
		if err != nil {
			return nil, fmt.Errorf("objective %s: %w", ro.ID, err)
		}
		if err := c.checkWinCondition(win); err != nil {
			return nil, fmt.Errorf("objective %s: %w", ro.ID, err)
		}
		c.Objectives = append(c.Objectives, &MainObjective{
			ID:           ro.ID,
			Title:        ro.Title,
			Description:  ro.Description,
			WinCondition: win,
		})
	}

	thresholds := make(map[string]bool, len(file.Thresholds))
	for _, th := range file.Thresholds {
		if thresholds[th.Name] {
			return nil, fmt.Errorf("threshold %s: duplicate name", th.Name)
		}
		p, err := condition.Compile(th.Condition)
		if err != nil {
			return nil, fmt.Errorf("threshold %s: %w", th.Name, err)
		}
		th.Predicate = p
		c.Thresholds = append(c.Thresholds, th)
		thresholds[th.Name] = true
	}

	for _, rx := range file.Crossroads {
		card, err := c.buildCrossroad(rx, thresholds)
		if err != nil {
			return nil, fmt.Errorf("crossroad %s: %w", rx.ID, err)
		}
		c.Crossroads = append(c.Crossroads, card)
	}

	return c, nil
}

func (c *Catalog) buildCrossroad(rx rawCrossroad, thresholds map[string]bool) (*Crossroad, error) {
	switch rx.Trigger.Kind {
	case TriggerLocation:
		if rx.Trigger.Value != TriggerAny {
			if _, ok := c.locations[rx.Trigger.Value]; !ok {
				return nil, fmt.Errorf("trigger location %s: %w", rx.Trigger.Value, ErrUnknownReference)
			}
		}
	case TriggerAction:
		if rx.Trigger.Value != TriggerAny && !slices.Contains(TriggerActions, rx.Trigger.Value) {
			return nil, fmt.Errorf("trigger action %q: %w", rx.Trigger.Value, ErrUnknownKind)
		}
	case TriggerThreshold:
		if rx.Trigger.Value != TriggerAny && !thresholds[rx.Trigger.Value] {
			return nil, fmt.Errorf("trigger threshold %s: %w", rx.Trigger.Value, ErrUnknownReference)
		}
	default:
		return nil, fmt.Errorf("trigger %q: %w", rx.Trigger.Kind, ErrUnknownKind)
	}
	if len(rx.Choices) == 0 {
		return nil, fmt.Errorf("no choices")
	}

	card := &Crossroad{
		ID:      rx.ID,
		Title:   rx.Title,
		Setup:   rx.Setup,
		Trigger: rx.Trigger,
	}
	for _, rc := range rx.Choices {
		action, err := rc.Action.toAction()
		if err != nil {
			return nil, err
		}
		if err := c.checkAction(action); err != nil {
			return nil, err
		}
		eligible, err := condition.Compile(rc.Condition)
		if err != nil {
			return nil, err
		}
		card.Choices = append(card.Choices, Choice{
			Text:      rc.Text,
			Condition: rc.Condition,
			Action:    action,
			Eligible:  eligible,
		})
	}
	return card, nil
}

func (c *Catalog) checkItem(id string) error {
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("item %s: %w", id, ErrUnknownReference)
	}
	return nil
}

func (c *Catalog) checkLocation(id string) error {
	if _, ok := c.locations[id]; !ok {
		return fmt.Errorf("location %s: %w", id, ErrUnknownReference)
	}
	return nil
}

func (c *Catalog) checkPenalty(p Penalty) error {
	switch p := p.(type) {
	case LocationOverrun:
		return c.checkLocation(p.LocationID)
	case CompositePenalty:
		for _, sub := range p.Effects {
			if err := c.checkPenalty(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Catalog) checkWinCondition(w WinCondition) error {
	switch w := w.(type) {
	case BarricadesAt:
		return c.checkLocation(w.LocationID)
	case SecureLocation:
		return c.checkLocation(w.LocationID)
	}
	return nil
}

func (c *Catalog) checkAction(a Action) error {
	switch a := a.(type) {
	case GrantItem:
		return c.checkItem(a.ItemID)
	case SpawnZombies:
		if a.LocationID != "" {
			return c.checkLocation(a.LocationID)
		}
	case Relocate:
		if !a.ToPrevious {
			return c.checkLocation(a.LocationID)
		}
	case CompositeAction:
		for _, sub := range a.Actions {
			if err := c.checkAction(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// Item returns a catalog item by id
func (c *Catalog) Item(id string) (Item, bool) {
	item, ok := c.items[id]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Location returns a catalog location by id
func (c *Catalog) Location(id string) (*LocationTemplate, bool) {
	loc, ok := c.locations[id]
	return loc, ok
}

// HomeID returns the id of the compound
func (c *Catalog) HomeID() string {
	return c.homeID
}
