package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlowery/punchin/internal/domain"
)

// SQLiteReportRepo implements ReportRepo over the v_task_daily_totals view.
// The default mode reads the view, whose joins filter the whole owning
// chain to active rows. IncludeDeleted runs the same expansion inline
// without the activity filters and derives the is_deleted flag instead.
type SQLiteReportRepo struct {
	db *sql.DB
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo.
func NewSQLiteReportRepo(database *sql.DB) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: database}
}

const reportOrderCanonical = ` ORDER BY company_name, project_name, task_name, day`
const reportOrderBusiest = ` ORDER BY total_seconds DESC`

func (r *SQLiteReportRepo) Daily(ctx context.Context, opts domain.ReportOptions) ([]domain.ReportRow, error) {
	query := `SELECT company_name, project_name, task_name, task_id, day, total_seconds, total_hours, 0 AS is_deleted
		FROM v_task_daily_totals`
	if opts.IncludeDeleted {
		query = reportWithDeletedQuery
	}
	if opts.BusiestFirst {
		query += reportOrderBusiest
	} else {
		query += reportOrderCanonical
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying daily report: %w", err)
	}
	defer rows.Close()

	var report []domain.ReportRow
	for rows.Next() {
		var row domain.ReportRow
		var deleted int
		if err := rows.Scan(
			&row.CompanyName, &row.ProjectName, &row.TaskName, &row.TaskID,
			&row.Day, &row.TotalSeconds, &row.TotalHours, &deleted,
		); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		row.IsDeleted = deleted != 0
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report rows: %w", err)
	}
	return report, nil
}

// Same day expansion and clamping as the view, but over every closed
// session regardless of activity flags. A row is flagged deleted when any
// entity in its chain is inactive.
const reportWithDeletedQuery = `
	WITH RECURSIVE
	normalized AS (
		SELECT
			s.id,
			s.task_id,
			s.is_active AS session_is_active,
			CAST(s.start_time / 1000 AS INTEGER) AS start_s,
			CAST(s.end_time   / 1000 AS INTEGER) AS end_s
		FROM session s
		WHERE s.end_time IS NOT NULL
	),
	expanded(day, id, task_id, session_is_active, start_s, end_s) AS (
		SELECT
			DATE(start_s, 'unixepoch') AS day,
			id, task_id, session_is_active, start_s, end_s
		FROM normalized
		UNION ALL
		SELECT
			DATE(DATETIME(day, '+1 day')) AS day,
			id, task_id, session_is_active, start_s, end_s
		FROM expanded
		WHERE DATETIME(day, '+1 day') < DATE(end_s, 'unixepoch', '+1 day')
	),
	segments AS (
		SELECT
			id,
			task_id,
			day,
			session_is_active,
			MAX(start_s, CAST(STRFTIME('%s', day) AS INTEGER))                     AS seg_start,
			MIN(end_s,   CAST(STRFTIME('%s', DATETIME(day, '+1 day')) AS INTEGER)) AS seg_end
		FROM expanded
	)
	SELECT
		c.name AS company_name,
		p.name AS project_name,
		t.name AS task_name,
		t.id   AS task_id,
		s.day  AS day,
		SUM(CASE WHEN (s.seg_end - s.seg_start) > 0 THEN (s.seg_end - s.seg_start) ELSE 0 END) AS total_seconds,
		ROUND(SUM(CASE WHEN (s.seg_end - s.seg_start) > 0 THEN (s.seg_end - s.seg_start) ELSE 0 END) / 3600.0, 2) AS total_hours,
		MAX(CASE
			WHEN s.session_is_active = 0 OR t.is_active = 0 OR p.is_active = 0 OR c.is_active = 0
			THEN 1
			ELSE 0
		END) AS is_deleted
	FROM segments s
	JOIN task    t ON t.id = s.task_id
	JOIN project p ON p.id = t.project_id
	JOIN company c ON c.id = p.company_id
	GROUP BY c.name, p.name, t.name, t.id, s.day`
