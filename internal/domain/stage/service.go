package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/repository"
)

// Service handles stage operations. Creation and deletion are guarded by the
// owning macro stage's structure mode.
type Service struct {
	store       repository.Store
	stages      Repository
	macrostages MacroStageRepository
	recalc      Recalculator
	logger      *slog.Logger
}

// NewService creates a new stage service.
func NewService(
	store repository.Store,
	stages Repository,
	macrostages MacroStageRepository,
	recalc Recalculator,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:       store,
		stages:      stages,
		macrostages: macrostages,
		recalc:      recalc,
		logger:      logger,
	}
}

// CreateRequest defines stage creation inputs.
type CreateRequest struct {
	MacrostageID string
	Name         string
	Kind         Kind
	Scope        string
	Tools        []string
	OtherTools   string
}

// UpdateRequest defines stage update inputs. Name changes only when
// provided; kind changes re-apply the scope/tools rules, clearing the detail
// fields when the new kind does not carry them.
type UpdateRequest struct {
	ID         string
	Name       *string
	Kind       Kind
	Scope      string
	Tools      []string
	OtherTools string
}

// Create creates a stage under a macro stage in staged mode. A macro stage
// still unset is switched to staged mode as a convenience; one already in
// direct-task mode refuses with a mode conflict.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Stage, error) {
	if strings.TrimSpace(req.MacrostageID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	kind := req.Kind
	if kind == "" {
		kind = KindNotApplicable
	}
	if err := validateDetail(kind, req.Scope, req.Tools); err != nil {
		return nil, err
	}

	st := &Stage{
		ID:           uuid.NewString(),
		MacrostageID: req.MacrostageID,
		Name:         req.Name,
		Kind:         kind,
		CreatedAt:    time.Now(),
	}
	if kind.RequiresScope() {
		st.Scope = req.Scope
		st.Tools = req.Tools
		st.OtherTools = req.OtherTools
	}

	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ms, err := s.macrostages.Get(ctx, req.MacrostageID)
		if err != nil {
			return err
		}
		if err := macrostage.CanAttachStage(ms.StructureType); err != nil {
			return err
		}
		if ms.StructureType == macrostage.StructureUnset {
			if err := s.macrostages.SetStructureType(ctx, ms.ID, macrostage.StructureStages); err != nil {
				return fmt.Errorf("setting structure type: %w", err)
			}
		}

		siblings, err := s.stages.ListByMacroStage(ctx, req.MacrostageID)
		if err != nil {
			return fmt.Errorf("listing siblings: %w", err)
		}
		st.Position = ordering.Next(positionsOf(siblings))

		if err := s.stages.Create(ctx, st); err != nil {
			return fmt.Errorf("creating stage: %w", err)
		}
		return s.recalc.FromMacroStage(ctx, req.MacrostageID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, macrostage.ErrMacroStageNotFound
		}
		return nil, err
	}
	return st, nil
}

// Get fetches a stage by ID.
func (s *Service) Get(ctx context.Context, id string) (*Stage, error) {
	st, err := s.stages.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, fmt.Errorf("getting stage: %w", err)
	}
	return st, nil
}

// Update modifies a stage's editable fields. Dates are untouched; they only
// move through recalculation.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Stage, error) {
	kind := req.Kind
	if kind == "" {
		kind = KindNotApplicable
	}
	if err := validateDetail(kind, req.Scope, req.Tools); err != nil {
		return nil, err
	}

	var updated *Stage
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		st, err := s.stages.Get(ctx, req.ID)
		if err != nil {
			return err
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			st.Name = *req.Name
		}
		st.Kind = kind
		if kind.RequiresScope() {
			st.Scope = req.Scope
			st.Tools = req.Tools
			st.OtherTools = req.OtherTools
		} else {
			st.Scope = ""
			st.Tools = nil
			st.OtherTools = ""
		}
		if err := s.stages.Update(ctx, st); err != nil {
			return fmt.Errorf("updating stage: %w", err)
		}
		updated = st
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Reorder applies a caller-supplied ordering to a macro stage's stages.
func (s *Service) Reorder(ctx context.Context, macrostageID string, ids []string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.macrostages.Get(ctx, macrostageID); err != nil {
			return err
		}
		siblings, err := s.stages.ListByMacroStage(ctx, macrostageID)
		if err != nil {
			return fmt.Errorf("listing stages: %w", err)
		}
		current := make([]string, len(siblings))
		for i, st := range siblings {
			current[i] = st.ID
		}
		positions, err := ordering.Apply(current, ids)
		if err != nil {
			return err
		}
		return s.stages.SetPositions(ctx, positions)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return macrostage.ErrMacroStageNotFound
	}
	return err
}

// Delete removes a stage and its tasks, then recomputes the surviving
// ancestor chain.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		st, err := s.stages.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.stages.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting stage: %w", err)
		}
		return s.recalc.FromMacroStage(ctx, st.MacrostageID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrStageNotFound
	}
	return err
}

func positionsOf(siblings []Stage) []int {
	positions := make([]int, len(siblings))
	for i, st := range siblings {
		positions[i] = st.Position
	}
	return positions
}
