package project

import (
	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// Tree is the full nested read of a project for rendering: every macro
// stage with its stages or direct tasks, every task with its weekly updates.
type Tree struct {
	Project     Project          `json:"project"`
	MacroStages []MacroStageNode `json:"macrostages"`
}

// MacroStageNode carries one macro stage with whichever child collection its
// structure type selects. At most one of Stages and Tasks is populated.
type MacroStageNode struct {
	MacroStage macrostage.MacroStage `json:"macrostage"`
	Stages     []StageNode           `json:"stages,omitempty"`
	Tasks      []TaskNode            `json:"tasks,omitempty"`
}

// StageNode carries one stage and its tasks.
type StageNode struct {
	Stage stage.Stage `json:"stage"`
	Tasks []TaskNode  `json:"tasks"`
}

// TaskNode carries one task and its weekly updates, newest date first.
type TaskNode struct {
	Task    task.Task           `json:"task"`
	Updates []task.WeeklyUpdate `json:"updates,omitempty"`
}
