package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mlowery/punchin/internal/db"
	"github.com/mlowery/punchin/internal/domain"
)

const projectColumns = `id, name, company_id, is_active, deleted_at, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(database *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// List returns all active projects, alphabetically; projects are usually
// presented in pickers.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE is_active = 1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE id = ? AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// GetByName matches the trimmed name within one company, regardless of the
// activity flag.
func (r *SQLiteProjectRepo) GetByName(ctx context.Context, companyID int64, name string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project
		WHERE company_id = ? AND name = ? ORDER BY id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, companyID, strings.TrimSpace(name))
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// Set bulk-upserts projects; see SQLiteCompanyRepo.Set for the contract.
func (r *SQLiteProjectRepo) Set(ctx context.Context, inputs []domain.ProjectInput) (bool, error) {
	candidates := domain.FilterNewProjects(inputs)
	if len(candidates) == 0 {
		return false, nil
	}

	var toInsert []domain.ProjectInput
	for _, in := range candidates {
		if err := validateNameLen("project", in.Name); err != nil {
			return false, err
		}
		existing, err := r.GetByName(ctx, in.CompanyID, in.Name)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return false, err
		}
		if existing != nil {
			if !existing.IsActive {
				if _, err := r.Activate(ctx, existing.ID); err != nil {
					return false, err
				}
			}
			continue
		}
		toInsert = append(toInsert, in)
	}
	if len(toInsert) == 0 {
		return true, nil
	}

	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, in := range toInsert {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO project (name, company_id) VALUES (?, ?)`,
				in.Name, in.CompanyID,
			); err != nil {
				return fmt.Errorf("inserting project %q: %w", in.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteProjectRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE project SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, fmt.Errorf("removing project %d: %w", id, err)
	}
	return rowsChanged(res)
}

func (r *SQLiteProjectRepo) Activate(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE project SET is_active = 1 WHERE id = ? AND is_active = 0`, id)
	if err != nil {
		return false, fmt.Errorf("activating project %d: %w", id, err)
	}
	return rowsChanged(res)
}

func scanProject(row interface{ Scan(...any) error }) (domain.Project, error) {
	var p domain.Project
	var isActive int
	var deletedAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&p.ID, &p.Name, &p.CompanyID, &isActive, &deletedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning project: %w", err)
	}

	p.IsActive = isActive != 0
	p.DeletedAt = parseNullableAuditTime(deletedAt)
	p.CreatedAt = parseAuditTime(createdAt)
	p.UpdatedAt = parseAuditTime(updatedAt)
	return p, nil
}
