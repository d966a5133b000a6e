package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/repository"
)

// ProjectRepository implements project persistence for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, scope, status, github_link, coordinator,
		automation_support, requesting_agency, internal_department,
		sponsoring_manager, sponsoring_manager_contact,
		technical_manager, technical_manager_contact,
		start_date, end_date, created_at`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.conn(ctx).ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Scope,
		p.Status,
		p.GithubLink,
		p.Coordinator,
		p.AutomationSupport,
		p.RequestingAgency,
		p.InternalDepartment,
		p.SponsoringManager,
		p.SponsoringManagerContact,
		p.TechnicalManager,
		p.TechnicalManagerContact,
		dateArg(p.StartDate),
		dateArg(p.EndDate),
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	var p project.Project
	var start, end sql.NullString
	err := r.db.conn(ctx).QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Scope,
		&p.Status,
		&p.GithubLink,
		&p.Coordinator,
		&p.AutomationSupport,
		&p.RequestingAgency,
		&p.InternalDepartment,
		&p.SponsoringManager,
		&p.SponsoringManagerContact,
		&p.TechnicalManager,
		&p.TechnicalManagerContact,
		&start,
		&end,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if p.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &p, nil
}

// Exists reports whether a project with the given ID exists
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}
	return n > 0, nil
}

// List retrieves summaries of all projects, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT p.id, p.name, p.status, p.start_date, p.end_date, p.created_at,
		       COUNT(m.id)
		FROM projects p
		LEFT JOIN macrostages m ON m.project_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var s project.Summary
		var start, end sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Status, &start, &end, &s.CreatedAt, &s.MacroStageCount); err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		if s.StartDate, err = parseDate(start); err != nil {
			return nil, err
		}
		if s.EndDate, err = parseDate(end); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Update rewrites a project's metadata fields
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, scope = ?, status = ?, github_link = ?, coordinator = ?,
		    automation_support = ?, requesting_agency = ?, internal_department = ?,
		    sponsoring_manager = ?, sponsoring_manager_contact = ?,
		    technical_manager = ?, technical_manager_contact = ?
		WHERE id = ?
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		p.Name,
		p.Scope,
		p.Status,
		p.GithubLink,
		p.Coordinator,
		p.AutomationSupport,
		p.RequestingAgency,
		p.InternalDepartment,
		p.SponsoringManager,
		p.SponsoringManagerContact,
		p.TechnicalManager,
		p.TechnicalManagerContact,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(result)
}

// SetDates writes a project's derived date range
func (r *ProjectRepository) SetDates(ctx context.Context, id string, start, end *time.Time) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`UPDATE projects SET start_date = ?, end_date = ? WHERE id = ?`,
		dateArg(start), dateArg(end), id)
	if err != nil {
		return fmt.Errorf("failed to set project dates: %w", err)
	}
	return requireRow(result)
}

// Delete removes a project; foreign keys cascade to everything beneath it
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row write to repository.ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
