package task

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
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/repository"
)

// Service handles task and weekly update operations. Every date-relevant
// mutation runs the upward recalculation chain inside its transaction.
type Service struct {
	store       repository.Store
	tasks       Repository
	updates     UpdateRepository
	stages      StageRepository
	macrostages MacroStageRepository
	recalc      Recalculator
	logger      *slog.Logger
}

// NewService creates a new task service.
func NewService(
	store repository.Store,
	tasks Repository,
	updates UpdateRepository,
	stages StageRepository,
	macrostages MacroStageRepository,
	recalc Recalculator,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:       store,
		tasks:       tasks,
		updates:     updates,
		stages:      stages,
		macrostages: macrostages,
		recalc:      recalc,
		logger:      logger,
	}
}

// CreateRequest defines task creation inputs. StageID selects a stage-owned
// task; when nil the task attaches directly to the macro stage.
type CreateRequest struct {
	MacrostageID string
	StageID      *string
	Name         string
	StartDate    *time.Time
	EndDate      *time.Time
}

// UpdateRequest defines task update inputs. Name changes only when provided;
// both dates are always overwritten with the submitted values, so passing
// nil clears a date. A start after the end is stored as given.
type UpdateRequest struct {
	ID        string
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Create creates a task under a stage or directly under a macro stage,
// guarded by the macro stage's structure mode, then recomputes the chain.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if strings.TrimSpace(req.MacrostageID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	t := &Task{
		ID:           uuid.NewString(),
		MacrostageID: req.MacrostageID,
		StageID:      req.StageID,
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedAt:    time.Now(),
	}

	var notFound error
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		ms, err := s.macrostages.Get(ctx, req.MacrostageID)
		if err != nil {
			notFound = macrostage.ErrMacroStageNotFound
			return err
		}

		if req.StageID != nil {
			st, err := s.stages.Get(ctx, *req.StageID)
			if err != nil {
				notFound = stage.ErrStageNotFound
				return err
			}
			if st.MacrostageID != ms.ID {
				return macrostage.ErrModeConflict
			}
			if err := macrostage.CanAttachTask(ms.StructureType, true); err != nil {
				return err
			}
			siblings, err := s.tasks.ListByStage(ctx, st.ID)
			if err != nil {
				return fmt.Errorf("listing siblings: %w", err)
			}
			t.Position = ordering.Next(positionsOf(siblings))
		} else {
			if err := macrostage.CanAttachTask(ms.StructureType, false); err != nil {
				return err
			}
			if ms.StructureType == macrostage.StructureUnset {
				if err := s.macrostages.SetStructureType(ctx, ms.ID, macrostage.StructureTasks); err != nil {
					return fmt.Errorf("setting structure type: %w", err)
				}
			}
			siblings, err := s.tasks.ListDirect(ctx, ms.ID)
			if err != nil {
				return fmt.Errorf("listing siblings: %w", err)
			}
			t.Position = ordering.Next(positionsOf(siblings))
		}

		if err := s.tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("creating task: %w", err)
		}
		return s.recalcFrom(ctx, t)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) && notFound != nil {
			return nil, notFound
		}
		return nil, err
	}
	return t, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// Update modifies a task and recomputes the chain when done.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Task, error) {
	var updated *Task
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		t, err := s.tasks.Get(ctx, req.ID)
		if err != nil {
			return err
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			t.Name = *req.Name
		}
		t.StartDate = req.StartDate
		t.EndDate = req.EndDate
		if err := s.tasks.Update(ctx, t); err != nil {
			return fmt.Errorf("updating task: %w", err)
		}
		updated = t
		return s.recalcFrom(ctx, t)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Reorder applies a caller-supplied ordering to a sibling task set: the
// tasks of a stage when stageID is set, otherwise the direct tasks of the
// macro stage. Positions do not affect derived dates.
func (s *Service) Reorder(ctx context.Context, macrostageID string, stageID *string, ids []string) error {
	var notFound error
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		var siblings []Task
		if stageID != nil {
			st, err := s.stages.Get(ctx, *stageID)
			if err != nil {
				notFound = stage.ErrStageNotFound
				return err
			}
			siblings, err = s.tasks.ListByStage(ctx, st.ID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
		} else {
			if _, err := s.macrostages.Get(ctx, macrostageID); err != nil {
				notFound = macrostage.ErrMacroStageNotFound
				return err
			}
			var err error
			siblings, err = s.tasks.ListDirect(ctx, macrostageID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
		}

		current := make([]string, len(siblings))
		for i, t := range siblings {
			current[i] = t.ID
		}
		positions, err := ordering.Apply(current, ids)
		if err != nil {
			return err
		}
		return s.tasks.SetPositions(ctx, positions)
	})
	if errors.Is(err, repository.ErrNotFound) && notFound != nil {
		return notFound
	}
	return err
}

// Delete removes a task and its weekly updates, then recomputes the
// surviving ancestor chain.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		t, err := s.tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.tasks.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting task: %w", err)
		}
		return s.recalcFrom(ctx, t)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}

// AddUpdateRequest defines weekly update creation inputs.
type AddUpdateRequest struct {
	TaskID  string
	Content string
	Date    *time.Time
}

// EditUpdateRequest defines weekly update edit inputs. Content changes only
// when provided; the date is always overwritten.
type EditUpdateRequest struct {
	ID      string
	Content *string
	Date    *time.Time
}

// AddUpdate records a weekly progress note on a task.
func (s *Service) AddUpdate(ctx context.Context, req AddUpdateRequest) (*WeeklyUpdate, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrInvalidInput
	}
	u := &WeeklyUpdate{
		ID:        uuid.NewString(),
		TaskID:    req.TaskID,
		Content:   req.Content,
		Date:      req.Date,
		CreatedAt: time.Now(),
	}
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.tasks.Get(ctx, req.TaskID); err != nil {
			return err
		}
		return s.updates.Create(ctx, u)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return u, nil
}

// EditUpdate modifies a weekly update.
func (s *Service) EditUpdate(ctx context.Context, req EditUpdateRequest) (*WeeklyUpdate, error) {
	var updated *WeeklyUpdate
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		u, err := s.updates.Get(ctx, req.ID)
		if err != nil {
			return err
		}
		if req.Content != nil && strings.TrimSpace(*req.Content) != "" {
			u.Content = *req.Content
		}
		u.Date = req.Date
		if err := s.updates.Update(ctx, u); err != nil {
			return fmt.Errorf("updating weekly update: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUpdateNotFound
		}
		return nil, err
	}
	return updated, nil
}

// RemoveUpdate deletes a weekly update. Derived dates are unaffected.
func (s *Service) RemoveUpdate(ctx context.Context, id string) error {
	err := s.store.WithTx(ctx, func(ctx context.Context) error {
		return s.updates.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUpdateNotFound
	}
	return err
}

// ListUpdates returns a task's weekly updates, newest date first.
func (s *Service) ListUpdates(ctx context.Context, taskID string) ([]WeeklyUpdate, error) {
	if _, err := s.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return s.updates.ListByTask(ctx, taskID)
}

func (s *Service) recalcFrom(ctx context.Context, t *Task) error {
	if t.StageID != nil {
		return s.recalc.FromStage(ctx, *t.StageID)
	}
	return s.recalc.FromMacroStage(ctx, t.MacrostageID)
}

func positionsOf(siblings []Task) []int {
	positions := make([]int, len(siblings))
	for i, t := range siblings {
		positions[i] = t.Position
	}
	return positions
}
