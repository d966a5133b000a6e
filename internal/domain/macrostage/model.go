package macrostage

import "time"

// StructureType selects which child collection a macro stage owns. A macro
// stage holds either stages or directly attached tasks, never both.
type StructureType string

const (
	StructureUnset  StructureType = ""
	StructureStages StructureType = "stages"
	StructureTasks  StructureType = "tasks"
)

// Valid reports whether t is one of the known structure types.
func (t StructureType) Valid() bool {
	switch t {
	case StructureUnset, StructureStages, StructureTasks:
		return true
	}
	return false
}

// MacroStage groups stages or direct tasks under a project. Its date range
// is derived from its children and never written directly.
type MacroStage struct {
	ID            string        `json:"id"`
	ProjectID     string        `json:"project_id"`
	Name          string        `json:"name"`
	Position      int           `json:"position"`
	StructureType StructureType `json:"structure_type"`
	StartDate     *time.Time    `json:"start_date,omitempty"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
