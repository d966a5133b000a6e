package schedule

import (
	"context"
	"time"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// ProjectRepository persists derived project dates.
type ProjectRepository interface {
	SetDates(ctx context.Context, id string, start, end *time.Time) error
}

// MacroStageRepository reads macro stages and persists their derived dates.
type MacroStageRepository interface {
	Get(ctx context.Context, id string) (*macrostage.MacroStage, error)
	ListByProject(ctx context.Context, projectID string) ([]macrostage.MacroStage, error)
	SetDates(ctx context.Context, id string, start, end *time.Time) error
}

// StageRepository reads stages and persists their derived dates.
type StageRepository interface {
	Get(ctx context.Context, id string) (*stage.Stage, error)
	ListByMacroStage(ctx context.Context, macrostageID string) ([]stage.Stage, error)
	SetDates(ctx context.Context, id string, start, end *time.Time) error
}

// TaskRepository reads the leaf dates aggregation starts from.
type TaskRepository interface {
	ListByStage(ctx context.Context, stageID string) ([]task.Task, error)
	ListDirect(ctx context.Context, macrostageID string) ([]task.Task, error)
}
