package game

import (
	"go.uber.org/zap"

	"github.com/qninhdt/last-compound/server/internal/cards"
	"github.com/qninhdt/last-compound/server/internal/condition"
	"github.com/qninhdt/last-compound/server/internal/content"
)

// trigger runs a crossroad check. With TriggerChance it draws a matching
// card uniformly from the remaining deck and makes it pending.
func (e *GameEngine) trigger(kind content.TriggerKind, value, actorID string) {
	s := e.state
	if s.Status != StatusPlaying || s.PendingCrossroad != nil {
		return
	}
	if e.rng.Float64() >= TriggerChance {
		return
	}

	card, ok := e.crossroads.DrawMatching(e.rng, func(c *content.Crossroad) bool {
		return c.Trigger.Matches(kind, value)
	})
	if !ok {
		return
	}

	s.PendingCrossroad = &cards.Pending{
		Card:        card,
		ActorID:     actorID,
		TriggerKind: kind,
		TriggerOn:   value,
	}
	s.Logf("Crossroad: %s", card.Title)
}

// ResolveCrossroad answers the pending crossroad with choice on behalf of
// actorID. An empty actorID falls back to whoever triggered the card. An
// ineligible or out of range choice leaves the crossroad pending.
func (e *GameEngine) ResolveCrossroad(actorID string, choice int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	pending := s.PendingCrossroad
	if s.Status != StatusPlaying || pending == nil {
		return
	}
	c, ok := pending.Choice(choice)
	if !ok {
		return
	}

	if actorID == "" {
		actorID = pending.ActorID
	}
	actor, ok := s.Survivor(actorID)
	if !ok {
		if len(s.Survivors) == 0 {
			return
		}
		actor = s.Survivors[0]
	}

	eligible, err := c.Eligible.Eval(e.env(actor))
	if err != nil {
		e.logger.Warn("crossroad condition failed",
			zap.String("crossroad_id", pending.Card.ID),
			zap.Int("choice", choice),
			zap.Error(err),
		)
		return
	}
	if !eligible {
		return
	}

	s.Logf("%s: %s", actor.Name, c.Text)
	if err := e.executor.Execute(actor.ID, c.Action); err != nil {
		e.logger.Error("crossroad action failed",
			zap.String("crossroad_id", pending.Card.ID),
			zap.Int("choice", choice),
			zap.Error(err),
		)
	}
	s.PendingCrossroad = nil
	e.touch()
}

// EligibleChoices returns which choices of the pending crossroad actorID may
// pick, or nil when nothing is pending
func (e *GameEngine) EligibleChoices(actorID string) []bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.eligibleChoices(actorID)
}

func (e *GameEngine) eligibleChoices(actorID string) []bool {
	pending := e.state.PendingCrossroad
	if pending == nil {
		return nil
	}
	if actorID == "" {
		actorID = pending.ActorID
	}
	actor, _ := e.state.Survivor(actorID)

	result := make([]bool, len(pending.Card.Choices))
	for i, c := range pending.Card.Choices {
		ok, err := c.Eligible.Eval(e.env(actor))
		result[i] = err == nil && ok
	}
	return result
}

// checkThresholds fires a threshold trigger for every named threshold that
// turned true since the last check
func (e *GameEngine) checkThresholds() {
	for _, th := range e.catalog.Thresholds {
		now := e.evalThreshold(th)
		was := e.thresholds[th.Name]
		e.thresholds[th.Name] = now
		if now && !was {
			e.logger.Debug("threshold crossed", zap.String("threshold", th.Name))
			e.trigger(content.TriggerThreshold, th.Name, e.firstSurvivorID())
		}
	}
}

func (e *GameEngine) evalThreshold(th content.Threshold) bool {
	ok, err := th.Predicate.Eval(e.env(nil))
	if err != nil {
		e.logger.Warn("threshold evaluation failed", zap.String("threshold", th.Name), zap.Error(err))
		return false
	}
	return ok
}

func (e *GameEngine) firstSurvivorID() string {
	if len(e.state.Survivors) == 0 {
		return ""
	}
	return e.state.Survivors[0].ID
}

// env builds the expression environment for actor, which may be nil
func (e *GameEngine) env(actor *Survivor) condition.Env {
	s := e.state
	stock := make(map[string]int, len(content.Categories))
	for _, c := range content.Categories {
		stock[string(c)] = 0
	}
	for _, item := range s.Inventory {
		stock[string(item.Category)]++
	}

	env := condition.Env{
		Colony: condition.ColonyView{
			Day:       s.Day,
			Morale:    s.Morale,
			Waste:     s.Waste,
			Survivors: len(s.Survivors),
			Stock:     stock,
		},
	}
	if compound := s.Compound(); compound != nil {
		env.Compound = locationView(compound)
	}
	if actor == nil {
		return env
	}

	env.Survivor = condition.SurvivorView{
		ID:       actor.ID,
		Name:     actor.Name,
		HP:       actor.HP,
		Infected: actor.Health == Infected,
		Items:    len(actor.Inventory),
		Skill:    string(actor.Skill.Kind),
		Tags:     append([]string(nil), actor.Tags...),
	}
	if loc, ok := s.Location(actor.LocationID); ok {
		env.Location = locationView(loc)
	}
	return env
}

func locationView(loc *Location) condition.LocationView {
	return condition.LocationView{
		ID:         loc.ID,
		Zombies:    loc.Zombies,
		Barricades: loc.Barricades,
		Slots:      loc.Slots,
		Overrun:    loc.Overrun,
	}
}
