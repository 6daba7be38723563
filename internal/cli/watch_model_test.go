package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedWatchModel(t *testing.T) (watchModel, *App) {
	t.Helper()
	app := testApp(t)
	ctx := context.Background()

	task, err := app.Catalog.Configure(ctx, "Acme", "Website", "Design")
	require.NoError(t, err)
	_, err = app.Tracker.Start(ctx, task.ID)
	require.NoError(t, err)

	m := newWatchModel(app)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(watchModel), app
}

func TestWatchModel_ShowsRunningSession(t *testing.T) {
	m, _ := startedWatchModel(t)

	// A refresh delivers the open session into the model.
	msg := m.refresh()
	state, ok := msg.(watchStateMsg)
	require.True(t, ok)
	require.NotNil(t, state.session)

	updated, _ := m.Update(state)
	m = updated.(watchModel)

	view := m.View()
	assert.Contains(t, view, "Acme / Website / Design")
	assert.Contains(t, view, "Started")
}

func TestWatchModel_IdleView(t *testing.T) {
	app := testApp(t)
	m := newWatchModel(app)

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = sized.(watchModel)

	updated, _ := m.Update(watchStateMsg{})
	m = updated.(watchModel)

	assert.Contains(t, m.View(), "Idle")
}

func TestWatchModel_StopKeyQuits(t *testing.T) {
	m, _ := startedWatchModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(watchModel)

	assert.True(t, m.stopping)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWatchModel_EscapeLeavesTimerRunning(t *testing.T) {
	m, app := startedWatchModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(watchModel)

	assert.True(t, m.exiting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// The session itself is untouched.
	open, err := app.Tracker.Current(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, open)
}

func TestWatchModel_TickStopsAfterQuit(t *testing.T) {
	m, _ := startedWatchModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(watchModel)

	_, cmd := m.Update(watchTickMsg{})
	assert.Nil(t, cmd, "no further ticks once exiting")
}

func TestWatchModel_ElapsedAdvances(t *testing.T) {
	m, _ := startedWatchModel(t)

	msg := m.refresh()
	updated, _ := m.Update(msg)
	m = updated.(watchModel)

	require.NotNil(t, m.session)
	first := m.session.DurationMS(time.Now())
	later := m.session.DurationMS(time.Now().Add(2 * time.Second))
	assert.Greater(t, later, first)
}
