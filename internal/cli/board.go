package cli

import (
	"context"
	"fmt"

	"github.com/avehner/ganttform/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newProjectBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board ID",
		Short: "Open a scrollable chart view of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if app.IsInteractive == nil || !app.IsInteractive() {
				// Non-interactive fallback: print the chart once.
				data, err := loadProjectInspect(ctx, app, projectID)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", formatter.FormatProjectInspect(*data))
				return nil
			}

			m := newBoardModel(app, projectID)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// boardLoadedMsg signals that the project chart data has been loaded.
type boardLoadedMsg struct {
	data *formatter.ProjectInspectData
	err  error
}

// boardModel is the bubbletea Model for the scrollable chart view.
type boardModel struct {
	app       *App
	projectID string

	vp      viewport.Model
	ready   bool
	loading bool
	err     error
	title   string
}

func newBoardModel(app *App, projectID string) boardModel {
	return boardModel{
		app:       app,
		projectID: projectID,
		loading:   true,
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadBoard()
}

func (m boardModel) loadBoard() tea.Cmd {
	app, projectID := m.app, m.projectID
	return func() tea.Msg {
		data, err := loadProjectInspect(context.Background(), app, projectID)
		return boardLoadedMsg{data: data, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.title = msg.data.Project.Name
		m.vp.SetContent(formatter.FormatProjectInspect(*msg.data) + "\n" + formatter.GanttLegend())
		return m, nil

	case tea.WindowSizeMsg:
		headerHeight := 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.loadBoard()
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n" + formatter.Dim("q to quit")
	}
	if m.loading || !m.ready {
		return formatter.Dim("Loading…")
	}
	header := formatter.Header(m.title) + "\n"
	footer := formatter.Dim("↑/↓ scroll · r reload · q quit")
	return header + m.vp.View() + "\n" + footer
}
