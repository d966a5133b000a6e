package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/repository"
)

// StageRepository implements stage persistence for SQLite
type StageRepository struct {
	db *DB
}

// NewStageRepository creates a new StageRepository
func NewStageRepository(db *DB) *StageRepository {
	return &StageRepository{db: db}
}

const stageColumns = `id, macrostage_id, name, position, kind, scope, tools,
		other_tools, start_date, end_date, created_at`

// Create creates a new stage
func (r *StageRepository) Create(ctx context.Context, st *stage.Stage) error {
	query := `
		INSERT INTO stages (` + stageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		st.ID,
		st.MacrostageID,
		st.Name,
		st.Position,
		string(st.Kind),
		st.Scope,
		joinTools(st.Tools),
		st.OtherTools,
		dateArg(st.StartDate),
		dateArg(st.EndDate),
		st.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create stage: %w", err)
	}
	return nil
}

// Get retrieves a stage by ID
func (r *StageRepository) Get(ctx context.Context, id string) (*stage.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE id = ?`

	st, err := scanStage(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	return st, nil
}

// ListByMacroStage retrieves a macro stage's stages in position order
func (r *StageRepository) ListByMacroStage(ctx context.Context, macrostageID string) ([]stage.Stage, error) {
	query := `
		SELECT ` + stageColumns + `
		FROM stages
		WHERE macrostage_id = ?
		ORDER BY position
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, macrostageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var list []stage.Stage
	for rows.Next() {
		st, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		list = append(list, *st)
	}
	return list, rows.Err()
}

// CountByMacroStage counts a macro stage's stages
func (r *StageRepository) CountByMacroStage(ctx context.Context, macrostageID string) (int, error) {
	var n int
	err := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stages WHERE macrostage_id = ?`, macrostageID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count stages: %w", err)
	}
	return n, nil
}

// Update rewrites a stage's detail fields
func (r *StageRepository) Update(ctx context.Context, st *stage.Stage) error {
	query := `
		UPDATE stages
		SET name = ?, kind = ?, scope = ?, tools = ?, other_tools = ?
		WHERE id = ?
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		st.Name,
		string(st.Kind),
		st.Scope,
		joinTools(st.Tools),
		st.OtherTools,
		st.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}
	return requireRow(result)
}

// SetPositions rewrites sibling positions
func (r *StageRepository) SetPositions(ctx context.Context, positions []ordering.Position) error {
	for _, pos := range positions {
		result, err := r.db.conn(ctx).ExecContext(ctx,
			`UPDATE stages SET position = ? WHERE id = ?`,
			pos.Position, pos.ID)
		if err != nil {
			return fmt.Errorf("failed to set stage position: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
	}
	return nil
}

// SetDates writes a stage's derived date range
func (r *StageRepository) SetDates(ctx context.Context, id string, start, end *time.Time) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE stages SET start_date = ?, end_date = ? WHERE id = ?`,
		dateArg(start), dateArg(end), id)
	if err != nil {
		return fmt.Errorf("failed to set stage dates: %w", err)
	}
	return requireRow(result)
}

// Delete removes a stage; foreign keys cascade to its tasks
func (r *StageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM stages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stage: %w", err)
	}
	return requireRow(result)
}

func scanStage(row rowScanner) (*stage.Stage, error) {
	var st stage.Stage
	var kind, tools string
	var start, end sql.NullString
	err := row.Scan(
		&st.ID,
		&st.MacrostageID,
		&st.Name,
		&st.Position,
		&kind,
		&st.Scope,
		&tools,
		&st.OtherTools,
		&start,
		&end,
		&st.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	st.Kind = stage.Kind(kind)
	st.Tools = splitTools(tools)
	if st.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if st.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &st, nil
}
