package macrostage

import (
	"context"

	"github.com/rpggio/lattice/internal/domain/ordering"
)

// Repository provides persistence for macro stages.
type Repository interface {
	Create(ctx context.Context, ms *MacroStage) error
	Get(ctx context.Context, id string) (*MacroStage, error)
	ListByProject(ctx context.Context, projectID string) ([]MacroStage, error)
	Rename(ctx context.Context, id, name string) error
	SetStructureType(ctx context.Context, id string, structureType StructureType) error
	SetPositions(ctx context.Context, positions []ordering.Position) error
	Delete(ctx context.Context, id string) error
}

// ProjectRepository provides the project lookups the service needs.
type ProjectRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// StageRepository counts stages owned by a macro stage.
type StageRepository interface {
	CountByMacroStage(ctx context.Context, macrostageID string) (int, error)
}

// TaskRepository counts tasks attached directly to a macro stage.
type TaskRepository interface {
	CountDirect(ctx context.Context, macrostageID string) (int, error)
}

// Recalculator recomputes derived dates after membership changes.
type Recalculator interface {
	FromMacroStage(ctx context.Context, macrostageID string) error
	FromProject(ctx context.Context, projectID string) error
}
