package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/schedule"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/repository/mocks"
)

func TestRecalculator_FromStage_PropagatesToProject(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	macrostages := &mocks.MacroStageRepository{}
	stages := &mocks.StageRepository{}
	tasks := &mocks.TaskRepository{}

	stages.On("Get", ctx, "st1").Return(&stage.Stage{ID: "st1", MacrostageID: "ms1"}, nil)
	tasks.On("ListByStage", ctx, "st1").Return([]task.Task{
		{ID: "t1", StartDate: date("2026-03-05"), EndDate: date("2026-03-12")},
		{ID: "t2", StartDate: date("2026-03-01"), EndDate: date("2026-03-08")},
	}, nil)
	stages.On("SetDates", ctx, "st1", date("2026-03-01"), date("2026-03-12")).Return(nil)

	macrostages.On("Get", ctx, "ms1").Return(&macrostage.MacroStage{
		ID: "ms1", ProjectID: "p1", StructureType: macrostage.StructureStages,
	}, nil)
	stages.On("ListByMacroStage", ctx, "ms1").Return([]stage.Stage{
		{ID: "st1", StartDate: date("2026-03-01"), EndDate: date("2026-03-12")},
		{ID: "st2", StartDate: date("2026-02-01"), EndDate: date("2026-02-10")},
	}, nil)
	macrostages.On("SetDates", ctx, "ms1", date("2026-02-01"), date("2026-03-12")).Return(nil)

	macrostages.On("ListByProject", ctx, "p1").Return([]macrostage.MacroStage{
		{ID: "ms1", StartDate: date("2026-02-01"), EndDate: date("2026-03-12")},
	}, nil)
	projects.On("SetDates", ctx, "p1", date("2026-02-01"), date("2026-03-12")).Return(nil)

	recalc := schedule.NewRecalculator(projects, macrostages, stages, tasks, nil)
	require.NoError(t, recalc.FromStage(ctx, "st1"))

	stages.AssertExpectations(t)
	macrostages.AssertExpectations(t)
	projects.AssertExpectations(t)
}

func TestRecalculator_FromMacroStage_TaskMode(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	macrostages := &mocks.MacroStageRepository{}
	stages := &mocks.StageRepository{}
	tasks := &mocks.TaskRepository{}

	macrostages.On("Get", ctx, "ms1").Return(&macrostage.MacroStage{
		ID: "ms1", ProjectID: "p1", StructureType: macrostage.StructureTasks,
	}, nil)
	tasks.On("ListDirect", ctx, "ms1").Return([]task.Task{
		{ID: "t1", StartDate: date("2026-05-01")},
		{ID: "t2", EndDate: date("2026-05-20")},
	}, nil)
	macrostages.On("SetDates", ctx, "ms1", date("2026-05-01"), date("2026-05-20")).Return(nil)
	macrostages.On("ListByProject", ctx, "p1").Return([]macrostage.MacroStage{
		{ID: "ms1", StartDate: date("2026-05-01"), EndDate: date("2026-05-20")},
	}, nil)
	projects.On("SetDates", ctx, "p1", date("2026-05-01"), date("2026-05-20")).Return(nil)

	recalc := schedule.NewRecalculator(projects, macrostages, stages, tasks, nil)
	require.NoError(t, recalc.FromMacroStage(ctx, "ms1"))

	tasks.AssertExpectations(t)
	macrostages.AssertExpectations(t)
	projects.AssertExpectations(t)
}

func TestRecalculator_FromMacroStage_UnsetDerivesNull(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	macrostages := &mocks.MacroStageRepository{}
	stages := &mocks.StageRepository{}
	tasks := &mocks.TaskRepository{}

	macrostages.On("Get", ctx, "ms1").Return(&macrostage.MacroStage{
		ID: "ms1", ProjectID: "p1", StructureType: macrostage.StructureUnset,
	}, nil)
	macrostages.On("SetDates", ctx, "ms1", (*time.Time)(nil), (*time.Time)(nil)).Return(nil)
	macrostages.On("ListByProject", ctx, "p1").Return([]macrostage.MacroStage{{ID: "ms1"}}, nil)
	projects.On("SetDates", ctx, "p1", (*time.Time)(nil), (*time.Time)(nil)).Return(nil)

	recalc := schedule.NewRecalculator(projects, macrostages, stages, tasks, nil)
	require.NoError(t, recalc.FromMacroStage(ctx, "ms1"))

	// Neither child collection is consulted for an unset macro stage.
	stages.AssertNotCalled(t, "ListByMacroStage", mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "ListDirect", mock.Anything, mock.Anything)
}

func TestRecalculator_FromProject_EmptyProject(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	macrostages := &mocks.MacroStageRepository{}

	macrostages.On("ListByProject", ctx, "p1").Return([]macrostage.MacroStage(nil), nil)
	projects.On("SetDates", ctx, "p1", (*time.Time)(nil), (*time.Time)(nil)).Return(nil)

	recalc := schedule.NewRecalculator(projects, macrostages, &mocks.StageRepository{}, &mocks.TaskRepository{}, nil)
	require.NoError(t, recalc.FromProject(ctx, "p1"))
	projects.AssertExpectations(t)
}
