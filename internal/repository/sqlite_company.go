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

const companyColumns = `id, name, is_active, deleted_at, created_at, updated_at`

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteCompanyRepo creates a new SQLiteCompanyRepo.
func NewSQLiteCompanyRepo(database *sql.DB) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// List returns all active companies, newest first.
func (r *SQLiteCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM company WHERE is_active = 1 ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return companies, nil
}

func (r *SQLiteCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM company WHERE id = ? AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// GetByName matches the trimmed name exactly, regardless of the activity
// flag, so callers can detect an inactive row to reactivate.
func (r *SQLiteCompanyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM company WHERE name = ? ORDER BY id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, strings.TrimSpace(name))
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &c, nil
}

// Set bulk-upserts the given inputs. Already-persisted inputs and blank
// names are filtered out; an inactive same-name row is reactivated instead
// of inserted; the remainder is inserted in a single transaction with
// per-row conflicts ignored. Returns false when the filtered input is
// empty.
func (r *SQLiteCompanyRepo) Set(ctx context.Context, inputs []domain.CompanyInput) (bool, error) {
	candidates := domain.FilterNewCompanies(inputs)
	if len(candidates) == 0 {
		return false, nil
	}

	var toInsert []domain.CompanyInput
	for _, in := range candidates {
		if err := validateNameLen("company", in.Name); err != nil {
			return false, err
		}
		existing, err := r.GetByName(ctx, in.Name)
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
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO company (name) VALUES (?)`, in.Name); err != nil {
				return fmt.Errorf("inserting company %q: %w", in.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove soft-deletes the company. Returns false when id is missing or no
// active row matched.
func (r *SQLiteCompanyRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE company SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, fmt.Errorf("removing company %d: %w", id, err)
	}
	return rowsChanged(res)
}

// Activate flips the flag back on an inactive company.
func (r *SQLiteCompanyRepo) Activate(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE company SET is_active = 1 WHERE id = ? AND is_active = 0`, id)
	if err != nil {
		return false, fmt.Errorf("activating company %d: %w", id, err)
	}
	return rowsChanged(res)
}

// scanCompany scans one company row from either *sql.Row or *sql.Rows.
func scanCompany(row interface{ Scan(...any) error }) (domain.Company, error) {
	var c domain.Company
	var isActive int
	var deletedAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&c.ID, &c.Name, &isActive, &deletedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("scanning company: %w", err)
	}

	c.IsActive = isActive != 0
	c.DeletedAt = parseNullableAuditTime(deletedAt)
	c.CreatedAt = parseAuditTime(createdAt)
	c.UpdatedAt = parseAuditTime(updatedAt)
	return c, nil
}
