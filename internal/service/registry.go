package service

import (
	"database/sql"
	"sync"

	"github.com/mlowery/punchin/internal/repository"
)

// Registry holds the single shared database handle for the process lifetime
// and hands out one repository instance per type. SQLite serializes writes
// internally, so one handle avoids file-locking contention; everything
// downstream receives its repository from here rather than opening its own
// connection.
type Registry struct {
	db *sql.DB

	companyOnce sync.Once
	company     repository.CompanyRepo

	projectOnce sync.Once
	project     repository.ProjectRepo

	taskOnce sync.Once
	task     repository.TaskRepo

	sessionOnce sync.Once
	session     repository.SessionRepo

	reportOnce sync.Once
	report     repository.ReportRepo

	closeOnce sync.Once
}

// NewRegistry creates a Registry over an already-open database handle. The
// registry takes ownership of closing it.
func NewRegistry(database *sql.DB) *Registry {
	return &Registry{db: database}
}

func (g *Registry) Company() repository.CompanyRepo {
	g.companyOnce.Do(func() { g.company = repository.NewSQLiteCompanyRepo(g.db) })
	return g.company
}

func (g *Registry) Project() repository.ProjectRepo {
	g.projectOnce.Do(func() { g.project = repository.NewSQLiteProjectRepo(g.db) })
	return g.project
}

func (g *Registry) Task() repository.TaskRepo {
	g.taskOnce.Do(func() { g.task = repository.NewSQLiteTaskRepo(g.db) })
	return g.task
}

func (g *Registry) Session() repository.SessionRepo {
	g.sessionOnce.Do(func() { g.session = repository.NewSQLiteSessionRepo(g.db) })
	return g.session
}

func (g *Registry) Report() repository.ReportRepo {
	g.reportOnce.Do(func() { g.report = repository.NewSQLiteReportRepo(g.db) })
	return g.report
}

// CloseDB closes the shared handle. Safe to call more than once; only the
// first call closes.
func (g *Registry) CloseDB() error {
	var err error
	g.closeOnce.Do(func() { err = g.db.Close() })
	return err
}
