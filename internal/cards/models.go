package cards

import (
	"github.com/qninhdt/last-compound/server/internal/content"
)

// Pending is a drawn crossroad waiting for the player's answer
type Pending struct {
	Card        *content.Crossroad  `json:"card"`
	ActorID     string              `json:"actor_id,omitempty"`
	TriggerKind content.TriggerKind `json:"trigger_kind"`
	TriggerOn   string              `json:"trigger_on"`
}

// Choice returns the choice at index i
func (p *Pending) Choice(i int) (content.Choice, bool) {
	if p == nil || p.Card == nil || i < 0 || i >= len(p.Card.Choices) {
		return content.Choice{}, false
	}
	return p.Card.Choices[i], true
}
