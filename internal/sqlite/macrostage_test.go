package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/repository"
)

func seedProject(t *testing.T, repo *ProjectRepository, id string) {
	t.Helper()
	err := repo.Create(context.Background(), &project.Project{
		ID:        id,
		Name:      "Project " + id,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func seedMacroStage(t *testing.T, repo *MacroStageRepository, id, projectID string, position int) {
	t.Helper()
	err := repo.Create(context.Background(), &macrostage.MacroStage{
		ID:        id,
		ProjectID: projectID,
		Name:      "Macro stage " + id,
		Position:  position,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestMacroStageRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	seedMacroStage(t, repo, "m1", "p1", 1)

	ms, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "p1", ms.ProjectID)
	require.Equal(t, 1, ms.Position)
	require.Equal(t, macrostage.StructureUnset, ms.StructureType)
}

func TestMacroStageRepository_Create_MissingProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewMacroStageRepository(db)

	err := repo.Create(context.Background(), &macrostage.MacroStage{
		ID:        "m1",
		ProjectID: "nonexistent",
		Name:      "Orphan",
		Position:  1,
		CreatedAt: time.Now(),
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestMacroStageRepository_ListByProject(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	// Insert out of position order; the list must come back sorted.
	seedMacroStage(t, repo, "m3", "p1", 3)
	seedMacroStage(t, repo, "m1", "p1", 1)
	seedMacroStage(t, repo, "m2", "p1", 2)

	list, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "m1", list[0].ID)
	require.Equal(t, "m2", list[1].ID)
	require.Equal(t, "m3", list[2].ID)
}

func TestMacroStageRepository_SetStructureType(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	seedMacroStage(t, repo, "m1", "p1", 1)

	require.NoError(t, repo.SetStructureType(ctx, "m1", macrostage.StructureStages))
	ms, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, macrostage.StructureStages, ms.StructureType)

	require.NoError(t, repo.SetStructureType(ctx, "m1", macrostage.StructureUnset))
	ms, err = repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, macrostage.StructureUnset, ms.StructureType)
}

func TestMacroStageRepository_Rename(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	seedMacroStage(t, repo, "m1", "p1", 1)

	require.NoError(t, repo.Rename(ctx, "m1", "Rollout"))
	ms, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, "Rollout", ms.Name)

	require.ErrorIs(t, repo.Rename(ctx, "missing", "X"), repository.ErrNotFound)
}

func TestMacroStageRepository_SetPositions(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	seedMacroStage(t, repo, "m1", "p1", 1)
	seedMacroStage(t, repo, "m2", "p1", 2)

	err := repo.SetPositions(ctx, []ordering.Position{
		{ID: "m2", Position: 1},
		{ID: "m1", Position: 2},
	})
	require.NoError(t, err)

	list, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "m2", list[0].ID)
	require.Equal(t, "m1", list[1].ID)

	err = repo.SetPositions(ctx, []ordering.Position{{ID: "missing", Position: 1}})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMacroStageRepository_SetDates(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	seedMacroStage(t, repo, "m1", "p1", 1)

	start := testDate(t, "2026-03-01")
	require.NoError(t, repo.SetDates(ctx, "m1", start, nil))

	ms, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, start, ms.StartDate)
	require.Nil(t, ms.EndDate)
}

func TestMacroStageRepository_DeleteCascadesToProjectChildren(t *testing.T) {
	db := NewTestDB(t)
	projRepo := NewProjectRepository(db)
	repo := NewMacroStageRepository(db)
	ctx := context.Background()

	seedProject(t, projRepo, "p1")
	seedMacroStage(t, repo, "m1", "p1", 1)

	require.NoError(t, projRepo.Delete(ctx, "p1"))

	_, err := repo.Get(ctx, "m1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
