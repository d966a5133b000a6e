package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/repository"
)

// MacroStageRepository implements macro stage persistence for SQLite
type MacroStageRepository struct {
	db *DB
}

// NewMacroStageRepository creates a new MacroStageRepository
func NewMacroStageRepository(db *DB) *MacroStageRepository {
	return &MacroStageRepository{db: db}
}

const macrostageColumns = `id, project_id, name, position, structure_type,
		start_date, end_date, created_at`

// Create creates a new macro stage
func (r *MacroStageRepository) Create(ctx context.Context, ms *macrostage.MacroStage) error {
	query := `
		INSERT INTO macrostages (` + macrostageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		ms.ID,
		ms.ProjectID,
		ms.Name,
		ms.Position,
		string(ms.StructureType),
		dateArg(ms.StartDate),
		dateArg(ms.EndDate),
		ms.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to create macrostage: %w", err)
	}
	return nil
}

// Get retrieves a macro stage by ID
func (r *MacroStageRepository) Get(ctx context.Context, id string) (*macrostage.MacroStage, error) {
	query := `SELECT ` + macrostageColumns + ` FROM macrostages WHERE id = ?`

	ms, err := scanMacroStage(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get macrostage: %w", err)
	}
	return ms, nil
}

// ListByProject retrieves a project's macro stages in position order
func (r *MacroStageRepository) ListByProject(ctx context.Context, projectID string) ([]macrostage.MacroStage, error) {
	query := `
		SELECT ` + macrostageColumns + `
		FROM macrostages
		WHERE project_id = ?
		ORDER BY position
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list macrostages: %w", err)
	}
	defer rows.Close()

	var list []macrostage.MacroStage
	for rows.Next() {
		ms, err := scanMacroStage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan macrostage: %w", err)
		}
		list = append(list, *ms)
	}
	return list, rows.Err()
}

// Rename updates a macro stage's name
func (r *MacroStageRepository) Rename(ctx context.Context, id, name string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE macrostages SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename macrostage: %w", err)
	}
	return requireRow(result)
}

// SetStructureType updates a macro stage's structure type
func (r *MacroStageRepository) SetStructureType(ctx context.Context, id string, structureType macrostage.StructureType) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE macrostages SET structure_type = ? WHERE id = ?`,
		string(structureType), id)
	if err != nil {
		return fmt.Errorf("failed to set structure type: %w", err)
	}
	return requireRow(result)
}

// SetPositions rewrites sibling positions
func (r *MacroStageRepository) SetPositions(ctx context.Context, positions []ordering.Position) error {
	for _, pos := range positions {
		result, err := r.db.conn(ctx).ExecContext(ctx,
			`UPDATE macrostages SET position = ? WHERE id = ?`,
			pos.Position, pos.ID)
		if err != nil {
			return fmt.Errorf("failed to set macrostage position: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
	}
	return nil
}

// SetDates writes a macro stage's derived date range
func (r *MacroStageRepository) SetDates(ctx context.Context, id string, start, end *time.Time) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE macrostages SET start_date = ?, end_date = ? WHERE id = ?`,
		dateArg(start), dateArg(end), id)
	if err != nil {
		return fmt.Errorf("failed to set macrostage dates: %w", err)
	}
	return requireRow(result)
}

// Delete removes a macro stage; foreign keys cascade to its children
func (r *MacroStageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM macrostages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete macrostage: %w", err)
	}
	return requireRow(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMacroStage(row rowScanner) (*macrostage.MacroStage, error) {
	var ms macrostage.MacroStage
	var structureType string
	var start, end sql.NullString
	err := row.Scan(
		&ms.ID,
		&ms.ProjectID,
		&ms.Name,
		&ms.Position,
		&structureType,
		&start,
		&end,
		&ms.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ms.StructureType = macrostage.StructureType(structureType)
	if ms.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if ms.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &ms, nil
}
