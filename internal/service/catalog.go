package service

import (
	"context"
	"strings"

	"github.com/mlowery/punchin/internal/domain"
	"github.com/mlowery/punchin/internal/repository"
)

// Catalog is the entity surface over the three repositories: it builds
// inputs from plain names and resolves the company -> project -> task
// chain for the CLI.
type Catalog struct {
	companies repository.CompanyRepo
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
}

// NewCatalog creates a Catalog.
func NewCatalog(companies repository.CompanyRepo, projects repository.ProjectRepo, tasks repository.TaskRepo) *Catalog {
	return &Catalog{companies: companies, projects: projects, tasks: tasks}
}

// AddCompanies bulk-upserts companies by name.
func (c *Catalog) AddCompanies(ctx context.Context, names []string) (bool, error) {
	inputs := make([]domain.CompanyInput, 0, len(names))
	for _, n := range names {
		inputs = append(inputs, domain.CompanyInput{Name: n})
	}
	return c.companies.Set(ctx, inputs)
}

// AddProject upserts one project under the named company.
func (c *Catalog) AddProject(ctx context.Context, companyName, name string) (bool, error) {
	company, err := c.companies.GetByName(ctx, companyName)
	if err != nil {
		return false, err
	}
	return c.projects.Set(ctx, []domain.ProjectInput{{Name: name, CompanyID: company.ID}})
}

// AddTask upserts one task under the named project of the named company.
func (c *Catalog) AddTask(ctx context.Context, companyName, projectName, name string) (bool, error) {
	project, err := c.resolveProject(ctx, companyName, projectName)
	if err != nil {
		return false, err
	}
	return c.tasks.Set(ctx, []domain.TaskInput{{Name: name, ProjectID: project.ID}})
}

// Configure ensures the whole named chain exists, creating or reactivating
// each level, and returns the leaf task ready to start.
func (c *Catalog) Configure(ctx context.Context, companyName, projectName, taskName string) (*domain.Task, error) {
	companyName = strings.TrimSpace(companyName)
	if _, err := c.companies.Set(ctx, []domain.CompanyInput{{Name: companyName}}); err != nil {
		return nil, err
	}
	company, err := c.companies.GetByName(ctx, companyName)
	if err != nil {
		return nil, err
	}

	if _, err := c.projects.Set(ctx, []domain.ProjectInput{{Name: projectName, CompanyID: company.ID}}); err != nil {
		return nil, err
	}
	project, err := c.projects.GetByName(ctx, company.ID, projectName)
	if err != nil {
		return nil, err
	}

	if _, err := c.tasks.Set(ctx, []domain.TaskInput{{Name: taskName, ProjectID: project.ID}}); err != nil {
		return nil, err
	}
	return c.tasks.GetByName(ctx, project.ID, taskName)
}

func (c *Catalog) resolveProject(ctx context.Context, companyName, projectName string) (*domain.Project, error) {
	company, err := c.companies.GetByName(ctx, companyName)
	if err != nil {
		return nil, err
	}
	return c.projects.GetByName(ctx, company.ID, projectName)
}
