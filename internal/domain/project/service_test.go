package project_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/repository"
	"github.com/rpggio/lattice/internal/repository/mocks"
)

type projectMocks struct {
	projects    *mocks.ProjectRepository
	macrostages *mocks.MacroStageRepository
	stages      *mocks.StageRepository
	tasks       *mocks.TaskRepository
	updates     *mocks.UpdateRepository
}

func newProjectService() (*project.Service, projectMocks) {
	m := projectMocks{
		projects:    &mocks.ProjectRepository{},
		macrostages: &mocks.MacroStageRepository{},
		stages:      &mocks.StageRepository{},
		tasks:       &mocks.TaskRepository{},
		updates:     &mocks.UpdateRepository{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := project.NewService(mocks.Store{}, m.projects, m.macrostages, m.stages, m.tasks, m.updates, logger)
	return svc, m
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()

	m.projects.On("Create", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.ID != "" && p.Name == "Invoice automation" && p.Status == "active"
	})).Return(nil)

	p, err := svc.Create(ctx, project.CreateRequest{
		Name:        "Invoice automation",
		Status:      "active",
		Coordinator: "R. Vance",
	})
	require.NoError(t, err)
	require.Nil(t, p.StartDate)
	require.Nil(t, p.EndDate)
	m.projects.AssertExpectations(t)
}

func TestProjectService_Create_BlankName(t *testing.T) {
	svc, m := newProjectService()

	_, err := svc.Create(context.Background(), project.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	m.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()

	m.projects.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()

	m.projects.On("List", ctx).Return([]project.Summary{
		{ID: "p1", Name: "Invoice automation", MacroStageCount: 3},
	}, nil)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, 3, summaries[0].MacroStageCount)
}

func TestProjectService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()
	status := "on hold"

	m.projects.On("Get", ctx, "p1").Return(&project.Project{
		ID: "p1", Name: "Invoice automation", Status: "active", Coordinator: "R. Vance",
	}, nil)
	m.projects.On("Update", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.Status == "on hold" && p.Name == "Invoice automation" && p.Coordinator == "R. Vance"
	})).Return(nil)

	p, err := svc.Update(ctx, "p1", project.UpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "on hold", p.Status)
	m.projects.AssertExpectations(t)
}

func TestProjectService_Update_BlankNameRejected(t *testing.T) {
	svc, m := newProjectService()
	name := ""

	_, err := svc.Update(context.Background(), "p1", project.UpdateRequest{Name: &name})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	m.projects.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestProjectService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()

	m.projects.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "missing"), project.ErrProjectNotFound)
}

func TestProjectService_GetTree_MixedStructures(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()
	stageID := "st1"

	m.projects.On("Get", ctx, "p1").Return(&project.Project{ID: "p1", Name: "Invoice automation"}, nil)
	m.macrostages.On("ListByProject", ctx, "p1").Return([]macrostage.MacroStage{
		{ID: "ms1", ProjectID: "p1", Name: "Build", StructureType: macrostage.StructureStages, Position: 1},
		{ID: "ms2", ProjectID: "p1", Name: "Rollout", StructureType: macrostage.StructureTasks, Position: 2},
		{ID: "ms3", ProjectID: "p1", Name: "Later", StructureType: macrostage.StructureUnset, Position: 3},
	}, nil)
	m.stages.On("ListByMacroStage", ctx, "ms1").Return([]stage.Stage{
		{ID: "st1", MacrostageID: "ms1", Name: "Extraction", Position: 1},
	}, nil)
	m.tasks.On("ListByStage", ctx, "st1").Return([]task.Task{
		{ID: "t1", MacrostageID: "ms1", StageID: &stageID, Name: "Write parser", Position: 1},
	}, nil)
	m.tasks.On("ListDirect", ctx, "ms2").Return([]task.Task{
		{ID: "t2", MacrostageID: "ms2", Name: "Announce", Position: 1},
	}, nil)
	m.updates.On("ListByTask", ctx, "t1").Return([]task.WeeklyUpdate{
		{ID: "u1", TaskID: "t1", Content: "parser handling PDFs"},
	}, nil)
	m.updates.On("ListByTask", ctx, "t2").Return([]task.WeeklyUpdate(nil), nil)

	tree, err := svc.GetTree(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, tree.MacroStages, 3)

	staged := tree.MacroStages[0]
	require.Len(t, staged.Stages, 1)
	require.Empty(t, staged.Tasks)
	require.Len(t, staged.Stages[0].Tasks, 1)
	require.Len(t, staged.Stages[0].Tasks[0].Updates, 1)

	flat := tree.MacroStages[1]
	require.Empty(t, flat.Stages)
	require.Len(t, flat.Tasks, 1)

	unset := tree.MacroStages[2]
	require.Empty(t, unset.Stages)
	require.Empty(t, unset.Tasks)
	m.stages.AssertNotCalled(t, "ListByMacroStage", mock.Anything, "ms3")
	m.tasks.AssertNotCalled(t, "ListDirect", mock.Anything, "ms3")
}

func TestProjectService_GetTree_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newProjectService()

	m.projects.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.GetTree(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
