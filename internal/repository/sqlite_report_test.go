package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mlowery/punchin/internal/domain"
	"github.com/mlowery/punchin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepo_SingleDaySession(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")

	// 09:00 to 17:00 on one day.
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, taskID, start, start.Add(8*time.Hour))

	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	require.Len(t, report, 1)

	row := report[0]
	assert.Equal(t, "Acme", row.CompanyName)
	assert.Equal(t, "Website", row.ProjectName)
	assert.Equal(t, "Design", row.TaskName)
	assert.Equal(t, "2025-03-10", row.Day)
	assert.Equal(t, int64(28800), row.TotalSeconds)
	assert.Equal(t, 8.0, row.TotalHours)
	assert.False(t, row.IsDeleted)
}

func TestReportRepo_MidnightCrossingSplitsTwoDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")

	// 22:00 day one to 02:00 day two: two hours on each side.
	start := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, taskID, start, start.Add(4*time.Hour))

	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.Equal(t, "2025-03-10", report[0].Day)
	assert.Equal(t, int64(7200), report[0].TotalSeconds)
	assert.Equal(t, "2025-03-11", report[1].Day)
	assert.Equal(t, int64(7200), report[1].TotalSeconds)

	// No seconds lost or double counted across the boundary.
	assert.Equal(t, int64(4*3600), report[0].TotalSeconds+report[1].TotalSeconds)
}

func TestReportRepo_MultiDaySpan(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")

	// Noon to noon two days later: 12h + 24h + 12h.
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, taskID, start, start.Add(48*time.Hour))

	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	require.Len(t, report, 3)

	assert.Equal(t, "2025-03-10", report[0].Day)
	assert.Equal(t, int64(43200), report[0].TotalSeconds)
	assert.Equal(t, "2025-03-11", report[1].Day)
	assert.Equal(t, int64(86400), report[1].TotalSeconds)
	assert.Equal(t, "2025-03-12", report[2].Day)
	assert.Equal(t, int64(43200), report[2].TotalSeconds)
}

func TestReportRepo_SameDaySessionsSum(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")

	// Three sessions totaling 1.5 hours on one day.
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, taskID, day.Add(9*time.Hour), day.Add(9*time.Hour+30*time.Minute))
	testutil.InsertClosedSession(t, db, taskID, day.Add(11*time.Hour), day.Add(11*time.Hour+45*time.Minute))
	testutil.InsertClosedSession(t, db, taskID, day.Add(15*time.Hour), day.Add(15*time.Hour+15*time.Minute))

	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	require.Len(t, report, 1)

	row := report[0]
	assert.Equal(t, "Acme", row.CompanyName)
	assert.Equal(t, "Website", row.ProjectName)
	assert.Equal(t, "Design", row.TaskName)
	assert.Equal(t, "2025-03-10", row.Day)
	assert.Equal(t, int64(5400), row.TotalSeconds)
	assert.Equal(t, 1.5, row.TotalHours)
}

func TestReportRepo_OpenSessionsExcluded(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")
	testutil.InsertOpenSession(t, db, taskID, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	assert.Empty(t, report)
}

func TestReportRepo_SoftDeletedChainFiltered(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, taskID, start, start.Add(time.Hour))

	_, err := tasks.Remove(ctx, taskID)
	require.NoError(t, err)

	// Default mode: the session is closed and valid, but its task is
	// inactive, so the row disappears.
	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	assert.Empty(t, report)

	// Audit mode keeps it, flagged.
	report, err = repo.Daily(ctx, domain.ReportOptions{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.True(t, report[0].IsDeleted)
	assert.Equal(t, int64(3600), report[0].TotalSeconds)
}

func TestReportRepo_IncludeDeleted_FlagsRemovedSession(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	sessions := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	_, _, taskID := testutil.SeedChain(t, db, "Acme", "Website", "Design")
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	id := testutil.InsertClosedSession(t, db, taskID, start, start.Add(time.Hour))

	_, err := sessions.Remove(ctx, id)
	require.NoError(t, err)

	report, err := repo.Daily(ctx, domain.ReportOptions{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.True(t, report[0].IsDeleted)
}

func TestReportRepo_CanonicalOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, design := testutil.SeedChain(t, db, "Acme", "Website", "Design")
	_, _, audit := testutil.SeedChain(t, db, "Globex", "API", "Audit")

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, audit, day.Add(9*time.Hour), day.Add(12*time.Hour))
	testutil.InsertClosedSession(t, db, design, day.Add(9*time.Hour), day.Add(10*time.Hour))
	testutil.InsertClosedSession(t, db, design, day.Add(33*time.Hour), day.Add(34*time.Hour))

	report, err := repo.Daily(ctx, domain.ReportOptions{})
	require.NoError(t, err)
	require.Len(t, report, 3)

	// Company, project, task, then day ascending.
	assert.Equal(t, "Acme", report[0].CompanyName)
	assert.Equal(t, "2025-03-10", report[0].Day)
	assert.Equal(t, "Acme", report[1].CompanyName)
	assert.Equal(t, "2025-03-11", report[1].Day)
	assert.Equal(t, "Globex", report[2].CompanyName)
}

func TestReportRepo_BusiestFirstOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteReportRepo(db)
	ctx := context.Background()

	_, _, design := testutil.SeedChain(t, db, "Acme", "Website", "Design")
	_, _, audit := testutil.SeedChain(t, db, "Globex", "API", "Audit")

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testutil.InsertClosedSession(t, db, design, day.Add(9*time.Hour), day.Add(10*time.Hour))
	testutil.InsertClosedSession(t, db, audit, day.Add(9*time.Hour), day.Add(14*time.Hour))

	report, err := repo.Daily(ctx, domain.ReportOptions{BusiestFirst: true})
	require.NoError(t, err)
	require.Len(t, report, 2)
	assert.Equal(t, "Audit", report[0].TaskName)
	assert.Equal(t, int64(5*3600), report[0].TotalSeconds)
	assert.Equal(t, "Design", report[1].TaskName)
}
