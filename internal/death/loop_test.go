package death

import (
	"testing"
)

type member struct {
	id       string
	hp       int
	infected bool
}

type fakeRoster struct {
	members []*member
}

func (r *fakeRoster) SurvivorIDs() []string {
	ids := make([]string, 0, len(r.members))
	for _, m := range r.members {
		ids = append(ids, m.id)
	}
	return ids
}

func (r *fakeRoster) find(id string) *member {
	for _, m := range r.members {
		if m.id == id {
			return m
		}
	}
	return nil
}

func (r *fakeRoster) SurvivorName(id string) string { return "name-" + id }
func (r *fakeRoster) IsInfected(id string) bool     { return r.find(id).infected }
func (r *fakeRoster) HP(id string) int              { return r.find(id).hp }
func (r *fakeRoster) SetHP(id string, hp int)       { r.find(id).hp = hp }

func (r *fakeRoster) RemoveSurvivor(id string) {
	for i, m := range r.members {
		if m.id == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

// TestSweepInfection tests that infected survivors die regardless of hit points
func TestSweepInfection(t *testing.T) {
	roster := &fakeRoster{members: []*member{
		{id: "a", hp: 3, infected: true},
		{id: "b", hp: 2},
	}}

	casualties := NewDeathLoop(roster).Sweep()

	if len(casualties) != 1 {
		t.Fatalf("Expected 1 casualty, got %d", len(casualties))
	}
	if casualties[0].SurvivorID != "a" || casualties[0].Cause != CauseInfection {
		t.Errorf("Unexpected casualty %+v", casualties[0])
	}
	if len(roster.members) != 1 || roster.members[0].id != "b" {
		t.Errorf("Expected only b to remain, got %v", roster.SurvivorIDs())
	}
}

// TestSweepWounds tests removal at zero or negative hit points
func TestSweepWounds(t *testing.T) {
	roster := &fakeRoster{members: []*member{
		{id: "a", hp: 0},
		{id: "b", hp: -2},
		{id: "c", hp: 1},
	}}

	casualties := NewDeathLoop(roster).Sweep()

	if len(casualties) != 2 {
		t.Fatalf("Expected 2 casualties, got %d", len(casualties))
	}
	for _, c := range casualties {
		if c.Cause != CauseWounds {
			t.Errorf("Expected wounds cause, got %s", c.Cause)
		}
	}
}

// TestExtinct tests empty roster detection
func TestExtinct(t *testing.T) {
	roster := &fakeRoster{members: []*member{{id: "a", hp: 0}}}
	dl := NewDeathLoop(roster)

	if dl.Extinct() {
		t.Error("Roster should not be extinct before the sweep")
	}
	dl.Sweep()
	if !dl.Extinct() {
		t.Error("Roster should be extinct after the sweep")
	}
}
