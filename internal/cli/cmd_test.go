package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/mlowery/punchin/internal/service"
	"github.com/mlowery/punchin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	reg := service.NewRegistry(db)

	return &App{
		Catalog:   service.NewCatalog(reg.Company(), reg.Project(), reg.Task()),
		Tracker:   service.NewTracker(reg.Session(), reg.Task(), nil),
		Companies: reg.Company(),
		Projects:  reg.Project(),
		Tasks:     reg.Task(),
		Sessions:  reg.Session(),
		Reports:   reg.Report(),
		// Non-interactive: pickers and watch are never offered in tests.
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs a cobra command, capturing stdout so direct fmt.Print
// calls from handlers are observable.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw

	root := NewRootCmd(app)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true

	var buf strings.Builder
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, pr)
		close(done)
	}()

	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), execErr
}

func TestCompanyAddAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "company", "add", "Acme", "Globex")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2")

	out, err = executeCmd(t, app, "company", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Globex")
}

func TestCompanyRemoveAndRestore(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "company", "add", "Acme")
	require.NoError(t, err)

	company, err := app.Companies.GetByName(ctx, "Acme")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "company", "remove", "1")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "company", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No companies found.")

	_, err = executeCmd(t, app, "company", "restore", "1")
	require.NoError(t, err)

	restored, err := app.Companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
}

func TestCompanyRemove_MissingID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "company", "remove", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectAdd_RequiresExistingCompany(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "Website", "--company", "Acme")
	require.Error(t, err)
}

func TestConfigureThenStartStop(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, app,
		"configure", "--company", "Acme", "--project", "Website", "--task", "Design")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme / Website / Design")

	out, err = executeCmd(t, app, "start", "Design")
	require.NoError(t, err)
	assert.Contains(t, out, "Started tracking")

	open, err := app.Tracker.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, open)

	out, err = executeCmd(t, app, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "Stopped")

	open, err = app.Tracker.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestConfigure_NonInteractiveNeedsAllFlags(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "configure", "--company", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-interactive")
}

func TestStart_NonInteractiveNeedsTaskName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-interactive")
}

func TestStatus_Idle(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Idle")
}

func TestStatus_Running(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app,
		"configure", "--company", "Acme", "--project", "Website", "--task", "Design", "--start")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Elapsed")
}

func TestSessionsListAndRemove(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app,
		"configure", "--company", "Acme", "--project", "Website", "--task", "Design", "--start")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "stop")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")

	_, err = executeCmd(t, app, "sessions", "remove", "1")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded.")
}

func TestReport_EmptyAndInvalidSort(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "No completed sessions")

	_, err = executeCmd(t, app, "report", "--sort", "alphabetical")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort")
}

func TestReport_ShowsCompletedWork(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app,
		"configure", "--company", "Acme", "--project", "Website", "--task", "Design", "--start")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "stop")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Total:")
}
