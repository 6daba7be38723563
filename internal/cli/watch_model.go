package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mlowery/punchin/internal/cli/formatter"
	"github.com/mlowery/punchin/internal/domain"
)

// watchModel is the full-screen live timer for `status --watch`. Each tick
// re-reads the open session through the Tracker, whose cache keeps the
// once-a-second refresh from hammering the database.
type watchModel struct {
	app *App

	width  int
	height int

	session *domain.Session
	path    string

	spin     spinner.Model
	stopping bool
	exiting  bool
	err      error
}

type watchTickMsg struct{}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func newWatchModel(app *App) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return watchModel{app: app, spin: sp}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh, watchTick(), m.spin.Tick)
}

func (m watchModel) refresh() tea.Msg {
	ctx := context.Background()
	session, err := m.app.Tracker.Current(ctx)
	if err != nil {
		return watchErrMsg{err}
	}
	path := ""
	if session != nil {
		if task, err := m.app.Tasks.GetByID(ctx, session.TaskID); err == nil {
			path = taskPath(ctx, m.app, task)
		}
	}
	return watchStateMsg{session: session, path: path}
}

type watchStateMsg struct {
	session *domain.Session
	path    string
}

type watchErrMsg struct{ err error }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchTickMsg:
		if m.stopping || m.exiting {
			return m, nil
		}
		return m, tea.Batch(m.refresh, watchTick())

	case watchStateMsg:
		m.session = msg.session
		m.path = msg.path
		return m, nil

	case watchErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	if m.session == nil {
		body = lipgloss.JoinVertical(
			lipgloss.Center,
			formatter.Dim("Idle. Nothing is being tracked."),
			"",
			formatter.Dim("Start a task with `punchin start`."),
		)
	} else {
		elapsed := formatter.FormatElapsedMS(m.session.DurationMS(time.Now()))
		clock := lipgloss.NewStyle().
			Foreground(formatter.ColorHeader).
			Bold(true).
			Render(elapsed)

		body = lipgloss.JoinVertical(
			lipgloss.Center,
			fmt.Sprintf("%s %s", m.spin.View(), formatter.Bold(m.path)),
			"",
			clock,
			"",
			formatter.Dim(fmt.Sprintf("Started %s", formatter.FormatClock(m.session.StartTime))),
		)
	}

	help := formatter.Dim("s stop · esc/q exit (keep running) · ctrl+c quit")

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-1).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)

	helpBar := lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Render(help)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// runWatch runs the live timer and, when the user asked to stop, closes the
// session after the program exits the alt screen.
func runWatch(app *App) error {
	p := tea.NewProgram(newWatchModel(app), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(watchModel)
	if m.err != nil {
		return m.err
	}

	if m.stopping && m.session != nil {
		elapsed := m.session.DurationMS(time.Now())
		if _, err := app.Tracker.Stop(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Stopped after %s\n", formatter.FormatElapsedMS(elapsed))
	} else if m.session != nil {
		fmt.Println("Timer is still running. Use `punchin stop` to end it.")
	}

	return nil
}
