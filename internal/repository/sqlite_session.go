package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mlowery/punchin/internal/db"
	"github.com/mlowery/punchin/internal/domain"
)

const sessionColumns = `id, task_id, start_time, end_time, is_active, deleted_at, created_at, updated_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
// Timestamps are taken from the now func so tests can pin the clock.
type SQLiteSessionRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(database *sql.DB) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{
		db:  database,
		uow: db.NewSQLiteUnitOfWork(database),
		now: time.Now,
	}
}

// Start opens a new session on the given task. Any session still open is
// closed first, so the single-open-session invariant holds even if a
// previous stop was missed. A nonexistent task fails the foreign key
// and the error propagates; callers must pre-create the task.
func (r *SQLiteSessionRepo) Start(ctx context.Context, taskID int64) (bool, error) {
	nowMS := r.now().UnixMilli()

	var started bool
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var open int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM session WHERE end_time IS NULL AND is_active = 1`,
		).Scan(&open); err != nil {
			return fmt.Errorf("counting open sessions: %w", err)
		}
		if open > 0 {
			// Closes every open session, not just the newest.
			if _, err := tx.ExecContext(ctx,
				`UPDATE session SET end_time = ? WHERE end_time IS NULL`, nowMS,
			); err != nil {
				return fmt.Errorf("closing dangling sessions: %w", err)
			}
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO session (task_id, start_time) VALUES (?, ?)`, taskID, nowMS,
		)
		if err != nil {
			return fmt.Errorf("starting session for task %d: %w", taskID, err)
		}
		started, err = rowsChanged(res)
		return err
	})
	if err != nil {
		return false, err
	}
	return started, nil
}

// Stop closes all currently-open active sessions. Returns false when
// nothing was open. Global rather than task-scoped: Start guarantees at
// most one is open in normal operation.
func (r *SQLiteSessionRepo) Stop(ctx context.Context) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE session SET end_time = ? WHERE end_time IS NULL AND is_active = 1`,
		r.now().UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("stopping sessions: %w", err)
	}
	return rowsChanged(res)
}

// Open returns the running session, or nil when idle. Idle is an expected
// state, not an error.
func (r *SQLiteSessionRepo) Open(ctx context.Context) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session
		WHERE end_time IS NULL AND is_active = 1
		ORDER BY id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// List returns all sessions newest first, soft-deleted included; callers
// that care about the activity flag filter explicitly.
func (r *SQLiteSessionRepo) List(ctx context.Context) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM session ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// ListWithDetails joins each active session through its owning chain.
// Duration is computed here rather than in SQL so open sessions show live
// elapsed time.
func (r *SQLiteSessionRepo) ListWithDetails(ctx context.Context) ([]domain.SessionDetail, error) {
	query := `SELECT s.id, c.name, p.name, t.name, s.start_time, s.end_time
		FROM session s
		JOIN task    t ON t.id = s.task_id
		JOIN project p ON p.id = t.project_id
		JOIN company c ON c.id = p.company_id
		WHERE s.is_active = 1
		ORDER BY s.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing session details: %w", err)
	}
	defer rows.Close()

	nowMS := r.now().UnixMilli()
	var details []domain.SessionDetail
	for rows.Next() {
		var d domain.SessionDetail
		var endTime sql.NullInt64
		if err := rows.Scan(&d.ID, &d.CompanyName, &d.ProjectName, &d.TaskName, &d.StartTime, &endTime); err != nil {
			return nil, fmt.Errorf("scanning session detail: %w", err)
		}
		d.EndTime = nullableInt64(endTime)
		end := nowMS
		if d.EndTime != nil {
			end = *d.EndTime
		}
		d.DurationMS = end - d.StartTime
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session details: %w", err)
	}
	return details, nil
}

// Remove soft-deletes a session, preserving its time data.
func (r *SQLiteSessionRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `UPDATE session SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, fmt.Errorf("removing session %d: %w", id, err)
	}
	return rowsChanged(res)
}

func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var s domain.Session
	var endTime sql.NullInt64
	var isActive int
	var deletedAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&s.ID, &s.TaskID, &s.StartTime, &endTime, &isActive, &deletedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scanning session: %w", err)
	}

	s.EndTime = nullableInt64(endTime)
	s.IsActive = isActive != 0
	s.DeletedAt = parseNullableAuditTime(deletedAt)
	s.CreatedAt = parseAuditTime(createdAt)
	s.UpdatedAt = parseAuditTime(updatedAt)
	return s, nil
}
