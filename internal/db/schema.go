package db

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates all tables, partial indexes, audit triggers, and the
// report view. Every statement except the view is IF NOT EXISTS, so the
// function is safe to run on every process start against an existing file.
// There is no fallback storage: any DDL failure is returned to the caller
// and aborts startup.
func EnsureSchema(db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

// Each entity table carries the same soft-delete shape: is_active flag,
// deleted_at stamp, and audit timestamps maintained by triggers. The
// updated_at trigger only fires when the caller left updated_at untouched,
// so explicit writes win. The deleted_at trigger fires on the 1 -> 0
// transition of is_active.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS company (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		is_active   BOOLEAN NOT NULL DEFAULT 1,
		deleted_at  DATETIME,
		created_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		updated_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		CONSTRAINT company_name_len CHECK (length(name) <= 32)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_company_active
		ON company (id)
		WHERE is_active = 1`,

	`CREATE TRIGGER IF NOT EXISTS trg_company_updated_at
		AFTER UPDATE ON company
		FOR EACH ROW
		WHEN NEW.updated_at = OLD.updated_at
		BEGIN
			UPDATE company SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	`CREATE TRIGGER IF NOT EXISTS trg_company_deleted_at
		AFTER UPDATE ON company
		FOR EACH ROW
		WHEN NEW.is_active = 0 AND OLD.is_active = 1
		BEGIN
			UPDATE company SET deleted_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	`CREATE TABLE IF NOT EXISTS project (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		company_id  INTEGER NOT NULL,
		is_active   BOOLEAN NOT NULL DEFAULT 1,
		deleted_at  DATETIME,
		created_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		updated_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		CONSTRAINT project_name_len CHECK (length(name) <= 32),
		CONSTRAINT fk_project_company
			FOREIGN KEY (company_id)
			REFERENCES company(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_active
		ON project (id)
		WHERE is_active = 1`,

	`CREATE TRIGGER IF NOT EXISTS trg_project_updated_at
		AFTER UPDATE ON project
		FOR EACH ROW
		WHEN NEW.updated_at = OLD.updated_at
		BEGIN
			UPDATE project SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	`CREATE TRIGGER IF NOT EXISTS trg_project_deleted_at
		AFTER UPDATE ON project
		FOR EACH ROW
		WHEN NEW.is_active = 0 AND OLD.is_active = 1
		BEGIN
			UPDATE project SET deleted_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	`CREATE TABLE IF NOT EXISTS task (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		project_id  INTEGER NOT NULL,
		is_active   BOOLEAN NOT NULL DEFAULT 1,
		deleted_at  DATETIME,
		created_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		updated_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		CONSTRAINT task_name_len CHECK (length(name) <= 32),
		CONSTRAINT fk_task_project
			FOREIGN KEY (project_id)
			REFERENCES project(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_active
		ON task (id)
		WHERE is_active = 1`,

	`CREATE TRIGGER IF NOT EXISTS trg_task_updated_at
		AFTER UPDATE ON task
		FOR EACH ROW
		WHEN NEW.updated_at = OLD.updated_at
		BEGIN
			UPDATE task SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	`CREATE TRIGGER IF NOT EXISTS trg_task_deleted_at
		AFTER UPDATE ON task
		FOR EACH ROW
		WHEN NEW.is_active = 0 AND OLD.is_active = 1
		BEGIN
			UPDATE task SET deleted_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	// start_time and end_time are epoch milliseconds. A NULL end_time marks
	// the open (currently running) session.
	`CREATE TABLE IF NOT EXISTS session (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id     INTEGER NOT NULL,
		start_time  INTEGER NOT NULL,
		end_time    INTEGER,
		is_active   BOOLEAN NOT NULL DEFAULT 1,
		deleted_at  DATETIME,
		created_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		updated_at  DATETIME NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		CONSTRAINT fk_session_task
			FOREIGN KEY (task_id)
			REFERENCES task(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE,
		CONSTRAINT session_time_order CHECK (end_time IS NULL OR end_time >= start_time)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_active
		ON session (id)
		WHERE is_active = 1`,

	`CREATE INDEX IF NOT EXISTS idx_session_open ON session (end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_session_task ON session (task_id)`,

	`CREATE TRIGGER IF NOT EXISTS trg_session_updated_at
		AFTER UPDATE ON session
		FOR EACH ROW
		WHEN NEW.updated_at = OLD.updated_at
		BEGIN
			UPDATE session SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	`CREATE TRIGGER IF NOT EXISTS trg_session_deleted_at
		AFTER UPDATE ON session
		FOR EACH ROW
		WHEN NEW.is_active = 0 AND OLD.is_active = 1
		BEGIN
			UPDATE session SET deleted_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
		END`,

	// Dropped and recreated on every start so filter changes roll forward.
	`DROP VIEW IF EXISTS v_task_daily_totals`,

	// One row per (company, project, task, UTC calendar day) with total
	// seconds of closed, fully-active sessions. Sessions crossing midnight
	// are expanded into one row per day touched, then each segment is
	// clamped to that day's [00:00, 24:00) window. All arithmetic stays in
	// integer seconds; only total_hours rounds.
	`CREATE VIEW v_task_daily_totals AS
	WITH RECURSIVE
	normalized AS (
		SELECT
			s.id,
			s.task_id,
			CAST(s.start_time / 1000 AS INTEGER) AS start_s,
			CAST(s.end_time   / 1000 AS INTEGER) AS end_s
		FROM session s
		WHERE s.end_time IS NOT NULL
		  AND s.is_active = 1
	),
	expanded(day, id, task_id, start_s, end_s) AS (
		SELECT
			DATE(start_s, 'unixepoch') AS day,
			id, task_id, start_s, end_s
		FROM normalized
		UNION ALL
		SELECT
			DATE(DATETIME(day, '+1 day')) AS day,
			id, task_id, start_s, end_s
		FROM expanded
		WHERE DATETIME(day, '+1 day') < DATE(end_s, 'unixepoch', '+1 day')
	),
	segments AS (
		SELECT
			id,
			task_id,
			day,
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
		ROUND(SUM(CASE WHEN (s.seg_end - s.seg_start) > 0 THEN (s.seg_end - s.seg_start) ELSE 0 END) / 3600.0, 2) AS total_hours
	FROM segments s
	JOIN task    t ON t.id = s.task_id    AND t.is_active = 1
	JOIN project p ON p.id = t.project_id AND p.is_active = 1
	JOIN company c ON c.id = p.company_id AND c.is_active = 1
	GROUP BY c.name, p.name, t.name, t.id, s.day`,
}
