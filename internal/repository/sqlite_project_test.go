package repository

import (
	"context"
	"testing"

	"github.com/mlowery/punchin/internal/domain"
	"github.com/mlowery/punchin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_SetAndList_Alphabetical(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	companyID, _, _ := testutil.SeedChain(t, db, "Acme", "Seed", "SeedTask")

	ok, err := repo.Set(ctx, []domain.ProjectInput{
		{Name: "Website", CompanyID: companyID},
		{Name: "API", CompanyID: companyID},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "API", projects[0].Name)
	assert.Equal(t, "Seed", projects[1].Name)
	assert.Equal(t, "Website", projects[2].Name)
}

func TestProjectRepo_Set_SkipsInputsWithoutCompany(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	ok, err := repo.Set(ctx, []domain.ProjectInput{{Name: "Orphan"}})
	require.NoError(t, err)
	assert.False(t, ok)

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectRepo_NameUniquenessScopedToCompany(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	acmeID, _, _ := testutil.SeedChain(t, db, "Acme", "Seed1", "T1")
	globexID, _, _ := testutil.SeedChain(t, db, "Globex", "Seed2", "T2")

	// The same project name under two companies creates two rows.
	ok, err := repo.Set(ctx, []domain.ProjectInput{
		{Name: "Website", CompanyID: acmeID},
		{Name: "Website", CompanyID: globexID},
	})
	require.NoError(t, err)
	assert.True(t, ok)

	acmeSite, err := repo.GetByName(ctx, acmeID, "Website")
	require.NoError(t, err)
	globexSite, err := repo.GetByName(ctx, globexID, "Website")
	require.NoError(t, err)
	assert.NotEqual(t, acmeSite.ID, globexSite.ID)
	assert.Equal(t, acmeID, acmeSite.CompanyID)
	assert.Equal(t, globexID, globexSite.CompanyID)
}

func TestProjectRepo_Set_ReactivatesInactiveByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	companyID, projectID, _ := testutil.SeedChain(t, db, "Acme", "Website", "Design")

	removed, err := repo.Remove(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, removed)

	ok, err := repo.Set(ctx, []domain.ProjectInput{{Name: "Website", CompanyID: companyID}})
	require.NoError(t, err)
	assert.True(t, ok)

	revived, err := repo.GetByID(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, revived.IsActive)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM project WHERE name = 'Website'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestProjectRepo_Set_UnknownCompanyFailsForeignKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.Set(ctx, []domain.ProjectInput{{Name: "Ghost", CompanyID: 424242}})
	assert.Error(t, err)
}

func TestProjectRepo_RemoveDoesNotCascadeToTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	_, projectID, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")

	_, err := projects.Remove(ctx, projectID)
	require.NoError(t, err)

	// Deactivation is a flag flip, not a destructive delete: the child
	// task keeps its own flag.
	task, err := tasks.GetByID(ctx, taskID)
	require.NoError(t, err)
	assert.True(t, task.IsActive)
}
