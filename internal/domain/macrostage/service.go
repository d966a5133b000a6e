package macrostage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/repository"
)

// Service handles macro stage operations.
type Service struct {
	store       repository.Store
	macrostages Repository
	projects    ProjectRepository
	stages      StageRepository
	tasks       TaskRepository
	recalc      Recalculator
	logger      *slog.Logger
}

// NewService creates a new macro stage service.
func NewService(
	store repository.Store,
	macrostages Repository,
	projects ProjectRepository,
	stages StageRepository,
	tasks TaskRepository,
	recalc Recalculator,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:       store,
		macrostages: macrostages,
		projects:    projects,
		stages:      stages,
		tasks:       tasks,
		recalc:      recalc,
		logger:      logger,
	}
}

// CreateRequest defines macro stage creation inputs.
type CreateRequest struct {
	ProjectID string
	Name      string
}

// Create creates a macro stage at the end of its project's ordering.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*MacroStage, error) {
	if strings.TrimSpace(req.ProjectID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	ms := &MacroStage{
		ID:            uuid.NewString(),
		ProjectID:     req.ProjectID,
		Name:          req.Name,
		StructureType: StructureUnset,
		CreatedAt:     time.Now(),
	}

	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ok, err := s.projects.Exists(ctx, req.ProjectID)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !ok {
			return fmt.Errorf("project %s: %w", req.ProjectID, repository.ErrNotFound)
		}

		siblings, err := s.macrostages.ListByProject(ctx, req.ProjectID)
		if err != nil {
			return fmt.Errorf("listing siblings: %w", err)
		}
		ms.Position = ordering.Next(positionsOf(siblings))

		if err := s.macrostages.Create(ctx, ms); err != nil {
			return fmt.Errorf("creating macrostage: %w", err)
		}
		return s.recalc.FromProject(ctx, req.ProjectID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return ms, nil
}

// Get fetches a macro stage by ID.
func (s *Service) Get(ctx context.Context, id string) (*MacroStage, error) {
	ms, err := s.macrostages.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMacroStageNotFound
		}
		return nil, fmt.Errorf("getting macrostage: %w", err)
	}
	return ms, nil
}

// Rename updates a macro stage's name.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		return s.macrostages.Rename(ctx, id, name)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMacroStageNotFound
	}
	return err
}

// SetStructureType switches a macro stage between staged and direct-task
// modes. Transitions are refused while children of the other kind exist;
// setting the current mode again is a no-op.
func (s *Service) SetStructureType(ctx context.Context, id string, requested StructureType) error {
	if !requested.Valid() {
		return ErrInvalidInput
	}

	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ms, err := s.macrostages.Get(ctx, id)
		if err != nil {
			return err
		}
		if ms.StructureType == requested {
			return nil
		}

		stageCount, err := s.stages.CountByMacroStage(ctx, id)
		if err != nil {
			return fmt.Errorf("counting stages: %w", err)
		}
		taskCount, err := s.tasks.CountDirect(ctx, id)
		if err != nil {
			return fmt.Errorf("counting direct tasks: %w", err)
		}
		if err := ValidateTransition(requested, stageCount, taskCount); err != nil {
			return err
		}

		if err := s.macrostages.SetStructureType(ctx, id, requested); err != nil {
			return fmt.Errorf("setting structure type: %w", err)
		}
		return s.recalc.FromMacroStage(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMacroStageNotFound
	}
	return err
}

// Reorder applies a caller-supplied ordering to a project's macro stages.
// The id sequence must match the current set exactly.
func (s *Service) Reorder(ctx context.Context, projectID string, ids []string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ok, err := s.projects.Exists(ctx, projectID)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !ok {
			return repository.ErrNotFound
		}

		siblings, err := s.macrostages.ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing macrostages: %w", err)
		}
		current := make([]string, len(siblings))
		for i, ms := range siblings {
			current[i] = ms.ID
		}

		positions, err := ordering.Apply(current, ids)
		if err != nil {
			return err
		}
		return s.macrostages.SetPositions(ctx, positions)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}

// Delete removes a macro stage and all its descendants, then recomputes the
// owning project's dates.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ms, err := s.macrostages.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.macrostages.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting macrostage: %w", err)
		}
		return s.recalc.FromProject(ctx, ms.ProjectID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMacroStageNotFound
	}
	return err
}

func positionsOf(siblings []MacroStage) []int {
	positions := make([]int, len(siblings))
	for i, ms := range siblings {
		positions[i] = ms.Position
	}
	return positions
}
