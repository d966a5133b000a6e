package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/lattice/internal/domain/task"
	"github.com/rpggio/lattice/internal/repository"
)

// UpdateRepository implements weekly update persistence for SQLite
type UpdateRepository struct {
	db *DB
}

// NewUpdateRepository creates a new UpdateRepository
func NewUpdateRepository(db *DB) *UpdateRepository {
	return &UpdateRepository{db: db}
}

const updateColumns = `id, task_id, content, update_date, created_at`

// Create creates a new weekly update
func (r *UpdateRepository) Create(ctx context.Context, u *task.WeeklyUpdate) error {
	query := `
		INSERT INTO weekly_updates (` + updateColumns + `)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		u.ID,
		u.TaskID,
		u.Content,
		dateArg(u.Date),
		u.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create weekly update: %w", err)
	}
	return nil
}

// Get retrieves a weekly update by ID
func (r *UpdateRepository) Get(ctx context.Context, id string) (*task.WeeklyUpdate, error) {
	query := `SELECT ` + updateColumns + ` FROM weekly_updates WHERE id = ?`

	u, err := scanUpdate(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly update: %w", err)
	}
	return u, nil
}

// ListByTask retrieves a task's weekly updates, newest date first.
// Undated updates sort last, ties broken by creation time.
func (r *UpdateRepository) ListByTask(ctx context.Context, taskID string) ([]task.WeeklyUpdate, error) {
	query := `
		SELECT ` + updateColumns + `
		FROM weekly_updates
		WHERE task_id = ?
		ORDER BY update_date IS NULL, update_date DESC, created_at DESC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly updates: %w", err)
	}
	defer rows.Close()

	var list []task.WeeklyUpdate
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly update: %w", err)
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

// Update rewrites a weekly update's content and date
func (r *UpdateRepository) Update(ctx context.Context, u *task.WeeklyUpdate) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE weekly_updates SET content = ?, update_date = ? WHERE id = ?`,
		u.Content, dateArg(u.Date), u.ID)
	if err != nil {
		return fmt.Errorf("failed to update weekly update: %w", err)
	}
	return requireRow(result)
}

// Delete removes a weekly update
func (r *UpdateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM weekly_updates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete weekly update: %w", err)
	}
	return requireRow(result)
}

func scanUpdate(row rowScanner) (*task.WeeklyUpdate, error) {
	var u task.WeeklyUpdate
	var date sql.NullString
	err := row.Scan(
		&u.ID,
		&u.TaskID,
		&u.Content,
		&date,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	return &u, nil
}
