package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/repository"
)

func seedUpdateFixtures(t *testing.T, db *DB) *UpdateRepository {
	t.Helper()
	seedProject(t, NewProjectRepository(db), "p1")
	seedMacroStage(t, NewMacroStageRepository(db), "m1", "p1", 1)
	seedTask(t, NewTaskRepository(db), "t1", "m1", nil, 1)
	return NewUpdateRepository(db)
}

func TestUpdateRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := seedUpdateFixtures(t, db)
	ctx := context.Background()

	u := &task.WeeklyUpdate{
		ID:        "u1",
		TaskID:    "t1",
		Content:   "parser handling PDFs",
		Date:      testDate(t, "2026-04-06"),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))

	retrieved, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "parser handling PDFs", retrieved.Content)
	require.Equal(t, testDate(t, "2026-04-06"), retrieved.Date)
}

func TestUpdateRepository_Create_MissingTask(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUpdateRepository(db)

	err := repo.Create(context.Background(), &task.WeeklyUpdate{
		ID:        "u1",
		TaskID:    "nonexistent",
		Content:   "orphan",
		CreatedAt: time.Now(),
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestUpdateRepository_ListByTask_Ordering(t *testing.T) {
	db := NewTestDB(t)
	repo := seedUpdateFixtures(t, db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &task.WeeklyUpdate{
		ID: "older", TaskID: "t1", Content: "week one",
		Date: testDate(t, "2026-03-30"), CreatedAt: now,
	}))
	require.NoError(t, repo.Create(ctx, &task.WeeklyUpdate{
		ID: "newer", TaskID: "t1", Content: "week two",
		Date: testDate(t, "2026-04-06"), CreatedAt: now,
	}))
	require.NoError(t, repo.Create(ctx, &task.WeeklyUpdate{
		ID: "undated", TaskID: "t1", Content: "no date", CreatedAt: now,
	}))

	list, err := repo.ListByTask(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "newer", list[0].ID)
	require.Equal(t, "older", list[1].ID)
	require.Equal(t, "undated", list[2].ID)
}

func TestUpdateRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := seedUpdateFixtures(t, db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &task.WeeklyUpdate{
		ID: "u1", TaskID: "t1", Content: "draft",
		Date: testDate(t, "2026-04-06"), CreatedAt: time.Now(),
	}))

	require.NoError(t, repo.Update(ctx, &task.WeeklyUpdate{
		ID: "u1", Content: "final", Date: nil,
	}))

	retrieved, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "final", retrieved.Content)
	require.Nil(t, retrieved.Date)

	err = repo.Update(ctx, &task.WeeklyUpdate{ID: "missing", Content: "x"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateRepository_DeleteAndCascade(t *testing.T) {
	db := NewTestDB(t)
	repo := seedUpdateFixtures(t, db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &task.WeeklyUpdate{
		ID: "u1", TaskID: "t1", Content: "note", CreatedAt: time.Now(),
	}))
	require.NoError(t, repo.Create(ctx, &task.WeeklyUpdate{
		ID: "u2", TaskID: "t1", Content: "other note", CreatedAt: time.Now(),
	}))

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err := repo.Get(ctx, "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "u1"), repository.ErrNotFound)

	// Removing the task takes its remaining updates with it.
	require.NoError(t, NewTaskRepository(db).Delete(ctx, "t1"))
	_, err = repo.Get(ctx, "u2")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
