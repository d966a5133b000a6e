// Package schedule recomputes derived date ranges bottom-up through the
// Task → Stage → MacroStage → Project chain. Callers invoke it inside the
// same transaction as the mutation, so a committed change never leaves a
// stale derived date behind.
package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// Recalculator walks the ancestor chain after a mutation.
type Recalculator struct {
	projects    ProjectRepository
	macrostages MacroStageRepository
	stages      StageRepository
	tasks       TaskRepository
	logger      *slog.Logger
}

// NewRecalculator creates a new Recalculator.
func NewRecalculator(
	projects ProjectRepository,
	macrostages MacroStageRepository,
	stages StageRepository,
	tasks TaskRepository,
	logger *slog.Logger,
) *Recalculator {
	return &Recalculator{
		projects:    projects,
		macrostages: macrostages,
		stages:      stages,
		tasks:       tasks,
		logger:      logger,
	}
}

// FromStage recomputes a stage's range from its tasks, then continues up
// through the owning macro stage and project.
func (r *Recalculator) FromStage(ctx context.Context, stageID string) error {
	st, err := r.stages.Get(ctx, stageID)
	if err != nil {
		return fmt.Errorf("loading stage: %w", err)
	}

	tasks, err := r.tasks.ListByStage(ctx, stageID)
	if err != nil {
		return fmt.Errorf("listing stage tasks: %w", err)
	}
	start, end := Merge(taskSpans(tasks))
	if err := r.stages.SetDates(ctx, stageID, start, end); err != nil {
		return fmt.Errorf("setting stage dates: %w", err)
	}

	return r.FromMacroStage(ctx, st.MacrostageID)
}

// FromMacroStage recomputes a macro stage's range from whichever child
// collection its structure type selects, then continues up to the project.
// An unset macro stage derives a null range.
func (r *Recalculator) FromMacroStage(ctx context.Context, macrostageID string) error {
	ms, err := r.macrostages.Get(ctx, macrostageID)
	if err != nil {
		return fmt.Errorf("loading macrostage: %w", err)
	}

	var spans []Span
	switch ms.StructureType {
	case macrostage.StructureStages:
		stages, err := r.stages.ListByMacroStage(ctx, macrostageID)
		if err != nil {
			return fmt.Errorf("listing stages: %w", err)
		}
		spans = stageSpans(stages)
	case macrostage.StructureTasks:
		tasks, err := r.tasks.ListDirect(ctx, macrostageID)
		if err != nil {
			return fmt.Errorf("listing direct tasks: %w", err)
		}
		spans = taskSpans(tasks)
	}

	start, end := Merge(spans)
	if err := r.macrostages.SetDates(ctx, macrostageID, start, end); err != nil {
		return fmt.Errorf("setting macrostage dates: %w", err)
	}

	return r.FromProject(ctx, ms.ProjectID)
}

// FromProject recomputes a project's range from its macro stages.
func (r *Recalculator) FromProject(ctx context.Context, projectID string) error {
	macrostages, err := r.macrostages.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("listing macrostages: %w", err)
	}

	spans := make([]Span, len(macrostages))
	for i, ms := range macrostages {
		spans[i] = Span{Start: ms.StartDate, End: ms.EndDate}
	}
	start, end := Merge(spans)
	if err := r.projects.SetDates(ctx, projectID, start, end); err != nil {
		return fmt.Errorf("setting project dates: %w", err)
	}
	return nil
}

func taskSpans(tasks []task.Task) []Span {
	spans := make([]Span, len(tasks))
	for i, t := range tasks {
		spans[i] = Span{Start: t.StartDate, End: t.EndDate}
	}
	return spans
}

func stageSpans(stages []stage.Stage) []Span {
	spans := make([]Span, len(stages))
	for i, st := range stages {
		spans[i] = Span{Start: st.StartDate, End: st.EndDate}
	}
	return spans
}
