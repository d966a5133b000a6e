package stage

import (
	"context"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
)

// Repository provides persistence for stages.
type Repository interface {
	Create(ctx context.Context, st *Stage) error
	Get(ctx context.Context, id string) (*Stage, error)
	ListByMacroStage(ctx context.Context, macrostageID string) ([]Stage, error)
	Update(ctx context.Context, st *Stage) error
	SetPositions(ctx context.Context, positions []ordering.Position) error
	Delete(ctx context.Context, id string) error
}

// MacroStageRepository provides the parent lookups the service needs.
type MacroStageRepository interface {
	Get(ctx context.Context, id string) (*macrostage.MacroStage, error)
	SetStructureType(ctx context.Context, id string, structureType macrostage.StructureType) error
}

// Recalculator recomputes derived dates after membership changes.
type Recalculator interface {
	FromMacroStage(ctx context.Context, macrostageID string) error
}
