package domain

import (
	"strings"
	"time"
)

// Project belongs to exactly one Company.
type Project struct {
	ID        int64
	Name      string
	CompanyID int64
	IsActive  bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectInput is one element of a bulk Set call; see CompanyInput for the
// persisted/new variant semantics. Name uniqueness is scoped to CompanyID.
type ProjectInput struct {
	ID        int64
	Name      string
	CompanyID int64
}

// Persisted reports whether the input refers to an existing row.
func (in ProjectInput) Persisted() bool { return in.ID != 0 }

// FilterNewProjects returns the unpersisted inputs with trimmed names,
// dropping blanks and inputs without a company.
func FilterNewProjects(inputs []ProjectInput) []ProjectInput {
	var out []ProjectInput
	for _, in := range inputs {
		if in.Persisted() || in.CompanyID == 0 {
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
