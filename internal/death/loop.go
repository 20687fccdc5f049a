package death

// Cause is why a survivor died
type Cause string

const (
	CauseInfection Cause = "infection"
	CauseWounds    Cause = "wounds"
)

// Casualty is one survivor removed by a sweep
type Casualty struct {
	SurvivorID string `json:"survivor_id"`
	Name       string `json:"name"`
	Cause      Cause  `json:"cause"`
}

// Roster is the survivor list a sweep walks
type Roster interface {
	SurvivorIDs() []string
	SurvivorName(id string) string
	IsInfected(id string) bool
	HP(id string) int
	SetHP(id string, hp int)
	RemoveSurvivor(id string)
}

// DeathLoop handles end-of-day mortality
type DeathLoop struct {
	roster Roster
}

// NewDeathLoop creates a new death loop
func NewDeathLoop(roster Roster) *DeathLoop {
	return &DeathLoop{roster: roster}
}

// Sweep kills infected survivors, then removes everyone at zero hit points
// or below. Casualties are returned in roster order.
func (dl *DeathLoop) Sweep() []Casualty {
	causes := make(map[string]Cause)

	for _, id := range dl.roster.SurvivorIDs() {
		if dl.roster.IsInfected(id) {
			dl.roster.SetHP(id, 0)
			causes[id] = CauseInfection
		}
	}

	var casualties []Casualty
	for _, id := range dl.roster.SurvivorIDs() {
		if dl.roster.HP(id) > 0 {
			continue
		}
		cause, ok := causes[id]
		if !ok {
			cause = CauseWounds
		}
		casualties = append(casualties, Casualty{
			SurvivorID: id,
			Name:       dl.roster.SurvivorName(id),
			Cause:      cause,
		})
	}

	for _, c := range casualties {
		dl.roster.RemoveSurvivor(c.SurvivorID)
	}
	return casualties
}

// Extinct reports whether nobody is left
func (dl *DeathLoop) Extinct() bool {
	return len(dl.roster.SurvivorIDs()) == 0
}
