// Package mocks provides testify mocks for the persistence interfaces the
// domain services depend on.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// Store is a pass-through repository.Store: WithTx runs the callback
// directly, so service tests exercise transactional code without a database.
type Store struct{}

func (Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) SetDates(ctx context.Context, id string, start, end *time.Time) error {
	args := m.Called(ctx, id, start, end)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MacroStageRepository is a mock for macrostage.Repository.
type MacroStageRepository struct {
	mock.Mock
}

func (m *MacroStageRepository) Create(ctx context.Context, ms *macrostage.MacroStage) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MacroStageRepository) Get(ctx context.Context, id string) (*macrostage.MacroStage, error) {
	args := m.Called(ctx, id)
	if ms, ok := args.Get(0).(*macrostage.MacroStage); ok {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MacroStageRepository) ListByProject(ctx context.Context, projectID string) ([]macrostage.MacroStage, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]macrostage.MacroStage); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MacroStageRepository) Rename(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MacroStageRepository) SetStructureType(ctx context.Context, id string, structureType macrostage.StructureType) error {
	args := m.Called(ctx, id, structureType)
	return args.Error(0)
}

func (m *MacroStageRepository) SetPositions(ctx context.Context, positions []ordering.Position) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *MacroStageRepository) SetDates(ctx context.Context, id string, start, end *time.Time) error {
	args := m.Called(ctx, id, start, end)
	return args.Error(0)
}

func (m *MacroStageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// StageRepository is a mock for stage.Repository.
type StageRepository struct {
	mock.Mock
}

func (m *StageRepository) Create(ctx context.Context, st *stage.Stage) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *StageRepository) Get(ctx context.Context, id string) (*stage.Stage, error) {
	args := m.Called(ctx, id)
	if st, ok := args.Get(0).(*stage.Stage); ok {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StageRepository) ListByMacroStage(ctx context.Context, macrostageID string) ([]stage.Stage, error) {
	args := m.Called(ctx, macrostageID)
	if list, ok := args.Get(0).([]stage.Stage); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StageRepository) CountByMacroStage(ctx context.Context, macrostageID string) (int, error) {
	args := m.Called(ctx, macrostageID)
	return args.Int(0), args.Error(1)
}

func (m *StageRepository) Update(ctx context.Context, st *stage.Stage) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *StageRepository) SetPositions(ctx context.Context, positions []ordering.Position) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *StageRepository) SetDates(ctx context.Context, id string, start, end *time.Time) error {
	args := m.Called(ctx, id, start, end)
	return args.Error(0)
}

func (m *StageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByStage(ctx context.Context, stageID string) ([]task.Task, error) {
	args := m.Called(ctx, stageID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListDirect(ctx context.Context, macrostageID string) ([]task.Task, error) {
	args := m.Called(ctx, macrostageID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) CountDirect(ctx context.Context, macrostageID string) (int, error) {
	args := m.Called(ctx, macrostageID)
	return args.Int(0), args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) SetPositions(ctx context.Context, positions []ordering.Position) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UpdateRepository is a mock for task.UpdateRepository.
type UpdateRepository struct {
	mock.Mock
}

func (m *UpdateRepository) Create(ctx context.Context, u *task.WeeklyUpdate) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UpdateRepository) Get(ctx context.Context, id string) (*task.WeeklyUpdate, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*task.WeeklyUpdate); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UpdateRepository) ListByTask(ctx context.Context, taskID string) ([]task.WeeklyUpdate, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]task.WeeklyUpdate); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UpdateRepository) Update(ctx context.Context, u *task.WeeklyUpdate) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UpdateRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Recalculator is a mock for the date recalculation chain.
type Recalculator struct {
	mock.Mock
}

func (m *Recalculator) FromStage(ctx context.Context, stageID string) error {
	args := m.Called(ctx, stageID)
	return args.Error(0)
}

func (m *Recalculator) FromMacroStage(ctx context.Context, macrostageID string) error {
	args := m.Called(ctx, macrostageID)
	return args.Error(0)
}

func (m *Recalculator) FromProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}
