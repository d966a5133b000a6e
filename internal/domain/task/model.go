package task

import "time"

// Task is the leaf of the schedule hierarchy and the only entity whose
// dates are entered directly. It always belongs to a macro stage; StageID is
// set when it was created under a stage. Start and end are independently
// nullable and no ordering between them is enforced.
type Task struct {
	ID           string     `json:"id"`
	MacrostageID string     `json:"macrostage_id"`
	StageID      *string    `json:"stage_id,omitempty"`
	Name         string     `json:"name"`
	Position     int        `json:"position"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// WeeklyUpdate is a free-text progress note on a task. It does not
// participate in date aggregation.
type WeeklyUpdate struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"task_id"`
	Content   string     `json:"content"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
