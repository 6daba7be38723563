package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// UniqueName returns prefix with a short random suffix, so fixtures never
// collide on the name-reactivation path when tests share a database.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// SeedChain inserts a company, a project under it, and a task under that,
// returning the three row ids. Fixtures bypass the repositories so tests
// can seed state independently of the code under test.
func SeedChain(t *testing.T, database *sql.DB, company, project, task string) (companyID, projectID, taskID int64) {
	t.Helper()
	companyID = insertRow(t, database, `INSERT INTO company (name) VALUES (?)`, company)
	projectID = insertRow(t, database, `INSERT INTO project (name, company_id) VALUES (?, ?)`, project, companyID)
	taskID = insertRow(t, database, `INSERT INTO task (name, project_id) VALUES (?, ?)`, task, projectID)
	return companyID, projectID, taskID
}

// InsertClosedSession inserts a closed session with the given UTC bounds
// and returns its id.
func InsertClosedSession(t *testing.T, database *sql.DB, taskID int64, start, end time.Time) int64 {
	t.Helper()
	return insertRow(t, database,
		`INSERT INTO session (task_id, start_time, end_time) VALUES (?, ?, ?)`,
		taskID, start.UnixMilli(), end.UnixMilli())
}

// InsertOpenSession inserts a session with no end time and returns its id.
func InsertOpenSession(t *testing.T, database *sql.DB, taskID int64, start time.Time) int64 {
	t.Helper()
	return insertRow(t, database,
		`INSERT INTO session (task_id, start_time) VALUES (?, ?)`,
		taskID, start.UnixMilli())
}

func insertRow(t *testing.T, database *sql.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := database.Exec(query, args...)
	if err != nil {
		t.Fatalf("fixture insert failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("fixture insert id: %v", err)
	}
	return id
}
