package project

import (
	"context"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Summary, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}

// MacroStageRepository lists a project's macro stages for tree reads.
type MacroStageRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]macrostage.MacroStage, error)
}

// StageRepository lists a macro stage's stages for tree reads.
type StageRepository interface {
	ListByMacroStage(ctx context.Context, macrostageID string) ([]stage.Stage, error)
}

// TaskRepository lists tasks for tree reads.
type TaskRepository interface {
	ListByStage(ctx context.Context, stageID string) ([]task.Task, error)
	ListDirect(ctx context.Context, macrostageID string) ([]task.Task, error)
}

// UpdateRepository lists weekly updates for tree reads.
type UpdateRepository interface {
	ListByTask(ctx context.Context, taskID string) ([]task.WeeklyUpdate, error)
}
