package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/repository"
)

// TaskRepository implements task persistence for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, macrostage_id, stage_id, name, position,
		start_date, end_date, created_at`

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		t.ID,
		t.MacrostageID,
		t.StageID,
		t.Name,
		t.Position,
		dateArg(t.StartDate),
		dateArg(t.EndDate),
		t.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// ListByStage retrieves a stage's tasks in position order
func (r *TaskRepository) ListByStage(ctx context.Context, stageID string) ([]task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE stage_id = ?
		ORDER BY position
	`
	return r.list(ctx, query, stageID)
}

// ListDirect retrieves a macro stage's directly attached tasks in position order
func (r *TaskRepository) ListDirect(ctx context.Context, macrostageID string) ([]task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE macrostage_id = ? AND stage_id IS NULL
		ORDER BY position
	`
	return r.list(ctx, query, macrostageID)
}

func (r *TaskRepository) list(ctx context.Context, query string, parentID string) ([]task.Task, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var list []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// CountDirect counts a macro stage's directly attached tasks
func (r *TaskRepository) CountDirect(ctx context.Context, macrostageID string) (int, error) {
	var n int
	err := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE macrostage_id = ? AND stage_id IS NULL`,
		macrostageID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count direct tasks: %w", err)
	}
	return n, nil
}

// Update rewrites a task's name and user-entered dates
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET name = ?, start_date = ?, end_date = ?
		WHERE id = ?
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		t.Name,
		dateArg(t.StartDate),
		dateArg(t.EndDate),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result)
}

// SetPositions rewrites sibling positions
func (r *TaskRepository) SetPositions(ctx context.Context, positions []ordering.Position) error {
	for _, pos := range positions {
		result, err := r.db.conn(ctx).ExecContext(ctx,
			`UPDATE tasks SET position = ? WHERE id = ?`,
			pos.Position, pos.ID)
		if err != nil {
			return fmt.Errorf("failed to set task position: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a task; foreign keys cascade to its weekly updates
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result)
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var stageID sql.NullString
	var start, end sql.NullString
	err := row.Scan(
		&t.ID,
		&t.MacrostageID,
		&stageID,
		&t.Name,
		&t.Position,
		&start,
		&end,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if stageID.Valid {
		t.StageID = &stageID.String
	}
	if t.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if t.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &t, nil
}
