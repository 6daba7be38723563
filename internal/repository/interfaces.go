package repository

import (
	"context"

	"github.com/mlowery/punchin/internal/domain"
)

// The three entity repositories share one shape: active-only listing and
// lookup, name lookup across the activity flag for the reactivation check,
// bulk Set upsert, and flag-flip Remove/Activate. Soft-deleted rows are
// never hard-deleted at runtime.

type CompanyRepo interface {
	List(ctx context.Context) ([]domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	Set(ctx context.Context, inputs []domain.CompanyInput) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Activate(ctx context.Context, id int64) (bool, error)
}

type ProjectRepo interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	// GetByName is scoped to a company: the same project name may exist
	// under two different companies.
	GetByName(ctx context.Context, companyID int64, name string) (*domain.Project, error)
	Set(ctx context.Context, inputs []domain.ProjectInput) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Activate(ctx context.Context, id int64) (bool, error)
}

type TaskRepo interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// GetByName is scoped to a project.
	GetByName(ctx context.Context, projectID int64, name string) (*domain.Task, error)
	Set(ctx context.Context, inputs []domain.TaskInput) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Activate(ctx context.Context, id int64) (bool, error)
}

// SessionRepo enforces the single-open-session invariant: Start closes any
// dangling open session before inserting the new one.
type SessionRepo interface {
	Start(ctx context.Context, taskID int64) (bool, error)
	Stop(ctx context.Context) (bool, error)
	// Open returns the currently running session, or nil when idle.
	Open(ctx context.Context) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	ListWithDetails(ctx context.Context) ([]domain.SessionDetail, error)
	Remove(ctx context.Context, id int64) (bool, error)
}

type ReportRepo interface {
	Daily(ctx context.Context, opts domain.ReportOptions) ([]domain.ReportRow, error)
}
