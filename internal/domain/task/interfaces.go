package task

import (
	"context"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/domain/stage"
)

// Repository provides persistence for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	ListByStage(ctx context.Context, stageID string) ([]Task, error)
	ListDirect(ctx context.Context, macrostageID string) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	SetPositions(ctx context.Context, positions []ordering.Position) error
	Delete(ctx context.Context, id string) error
}

// UpdateRepository provides persistence for weekly updates.
type UpdateRepository interface {
	Create(ctx context.Context, u *WeeklyUpdate) error
	Get(ctx context.Context, id string) (*WeeklyUpdate, error)
	ListByTask(ctx context.Context, taskID string) ([]WeeklyUpdate, error)
	Update(ctx context.Context, u *WeeklyUpdate) error
	Delete(ctx context.Context, id string) error
}

// MacroStageRepository provides the parent lookups the service needs.
type MacroStageRepository interface {
	Get(ctx context.Context, id string) (*macrostage.MacroStage, error)
	SetStructureType(ctx context.Context, id string, structureType macrostage.StructureType) error
}

// StageRepository resolves stage parents for stage-owned tasks.
type StageRepository interface {
	Get(ctx context.Context, id string) (*stage.Stage, error)
}

// Recalculator recomputes derived dates after task changes.
type Recalculator interface {
	FromStage(ctx context.Context, stageID string) error
	FromMacroStage(ctx context.Context, macrostageID string) error
}
