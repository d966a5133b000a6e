package stage

import "time"

// Kind classifies what a stage delivers. Robot and system stages must carry
// a scope and a tool list; not-applicable stages carry neither.
type Kind string

const (
	KindRobot         Kind = "robot"
	KindSystem        Kind = "system"
	KindNotApplicable Kind = "not_applicable"
)

// Valid reports whether k is one of the known stage kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindRobot, KindSystem, KindNotApplicable:
		return true
	}
	return false
}

// RequiresScope reports whether stages of this kind must carry scope and tools.
func (k Kind) RequiresScope() bool {
	return k == KindRobot || k == KindSystem
}

// Stage groups tasks under a staged macro stage. Its date range is derived
// from its tasks and never written directly.
type Stage struct {
	ID           string     `json:"id"`
	MacrostageID string     `json:"macrostage_id"`
	Name         string     `json:"name"`
	Position     int        `json:"position"`
	Kind         Kind       `json:"kind"`
	Scope        string     `json:"scope,omitempty"`
	Tools        []string   `json:"tools,omitempty"`
	OtherTools   string     `json:"other_tools,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
