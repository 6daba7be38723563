package domain

import (
	"strings"
	"time"
)

// Company is the root of the company -> project -> task hierarchy.
type Company struct {
	ID        int64
	Name      string
	IsActive  bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyInput is one element of a bulk Set call. A zero ID marks a new
// company to insert (or reactivate, if an inactive row with the same name
// exists). A non-zero ID refers to an already-persisted row, which Set
// leaves untouched.
type CompanyInput struct {
	ID   int64
	Name string
}

// Persisted reports whether the input refers to an existing row.
func (in CompanyInput) Persisted() bool { return in.ID != 0 }

// FilterNewCompanies returns the unpersisted inputs with trimmed names,
// dropping blanks. Persisted inputs are assumed unchanged and skipped.
func FilterNewCompanies(inputs []CompanyInput) []CompanyInput {
	var out []CompanyInput
	for _, in := range inputs {
		if in.Persisted() {
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
