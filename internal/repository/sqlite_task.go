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

const taskColumns = `id, name, project_id, is_active, deleted_at, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(database *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// List returns all active tasks, newest first.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE is_active = 1 ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE id = ? AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// GetByName matches the trimmed name within one project, regardless of the
// activity flag.
func (r *SQLiteTaskRepo) GetByName(ctx context.Context, projectID int64, name string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task
		WHERE project_id = ? AND name = ? ORDER BY id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, projectID, strings.TrimSpace(name))
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// Set bulk-upserts tasks; see SQLiteCompanyRepo.Set for the contract.
func (r *SQLiteTaskRepo) Set(ctx context.Context, inputs []domain.TaskInput) (bool, error) {
	candidates := domain.FilterNewTasks(inputs)
	if len(candidates) == 0 {
		return false, nil
	}

	var toInsert []domain.TaskInput
	for _, in := range candidates {
		if err := validateNameLen("task", in.Name); err != nil {
			return false, err
		}
		existing, err := r.GetByName(ctx, in.ProjectID, in.Name)
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
				`INSERT OR IGNORE INTO task (name, project_id) VALUES (?, ?)`,
				in.Name, in.ProjectID,
			); err != nil {
				return fmt.Errorf("inserting task %q: %w", in.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteTaskRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE task SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, fmt.Errorf("removing task %d: %w", id, err)
	}
	return rowsChanged(res)
}

func (r *SQLiteTaskRepo) Activate(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE task SET is_active = 1 WHERE id = ? AND is_active = 0`, id)
	if err != nil {
		return false, fmt.Errorf("activating task %d: %w", id, err)
	}
	return rowsChanged(res)
}

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var t domain.Task
	var isActive int
	var deletedAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&t.ID, &t.Name, &t.ProjectID, &isActive, &deletedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning task: %w", err)
	}

	t.IsActive = isActive != 0
	t.DeletedAt = parseNullableAuditTime(deletedAt)
	t.CreatedAt = parseAuditTime(createdAt)
	t.UpdatedAt = parseAuditTime(updatedAt)
	return t, nil
}
