package domain

import (
	"strings"
	"time"
)

// Task belongs to exactly one Project. Sessions are recorded against tasks.
type Task struct {
	ID        int64
	Name      string
	ProjectID int64
	IsActive  bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskInput is one element of a bulk Set call; see CompanyInput for the
// persisted/new variant semantics. Name uniqueness is scoped to ProjectID.
type TaskInput struct {
	ID        int64
	Name      string
	ProjectID int64
}

// Persisted reports whether the input refers to an existing row.
func (in TaskInput) Persisted() bool { return in.ID != 0 }

// FilterNewTasks returns the unpersisted inputs with trimmed names,
// dropping blanks and inputs without a project.
func FilterNewTasks(inputs []TaskInput) []TaskInput {
	var out []TaskInput
	for _, in := range inputs {
		if in.Persisted() || in.ProjectID == 0 {
			continue
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			continue
		}
		out = append(out, in)
	}
	return out
}
