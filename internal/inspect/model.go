// Package inspect provides an interactive terminal browser for loaded trajectories.
package inspect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trajviz/internal/loader"
	"trajviz/internal/plotdata"
	"trajviz/internal/trajectory"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	kindColors  = map[trajectory.MovementKind]lipgloss.Color{
		trajectory.Idle:      lipgloss.Color("244"),
		trajectory.Scheduled: lipgloss.Color("12"),
		trajectory.Evasive:   lipgloss.Color("208"),
	}
)

const minTableHeight = 3

// Model is the bubbletea model of the inspector.
type Model struct {
	res        *loader.Result
	table      table.Model
	detail     viewport.Model
	showDetail bool
	width      int
	height     int
}

// New builds an inspector for res.
func New(res *loader.Result) Model {
	cols := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Order", Width: 6},
		{Title: "Safety", Width: 8},
		{Title: "Segments", Width: 9},
		{Title: "Points", Width: 7},
	}
	rows := make([]table.Row, 0, len(res.Trajectories))
	for _, t := range res.Trajectories {
		rows = append(rows, table.Row{
			t.Config.Name,
			fmt.Sprintf("%d", t.Config.Order),
			fmt.Sprintf("%.2f", t.Config.SafetyMargin),
			fmt.Sprintf("%d", len(t.Segments)),
			fmt.Sprintf("%d", t.PointCount()),
		})
	}
	tbl := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(minTableHeight, len(rows)+1)),
	)
	return Model{res: res, table: tbl, detail: viewport.New(0, 0)}
}

// Run starts the inspector on the alternate screen and blocks until it exits.
func Run(res *loader.Result) error {
	_, err := tea.NewProgram(New(res), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.showDetail = !m.showDetail
			if m.showDetail {
				m.refreshDetail()
			}
			m.resize()
			return m, nil
		case "esc":
			m.showDetail = false
			m.resize()
			return m, nil
		}
		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	if m.height == 0 {
		return
	}
	// title + footer
	avail := m.height - 2
	if m.showDetail {
		th := max(minTableHeight, avail/3)
		m.table.SetHeight(th)
		m.detail.Width = m.width
		m.detail.Height = max(1, avail-th-1)
		return
	}
	m.table.SetHeight(max(minTableHeight, avail))
}

// Selected returns the trajectory under the cursor.
func (m Model) Selected() (trajectory.AgentTrajectory, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.res.Trajectories) {
		return trajectory.AgentTrajectory{}, false
	}
	return m.res.Trajectories[i], true
}

func (m *Model) refreshDetail() {
	t, ok := m.Selected()
	if !ok {
		m.detail.SetContent("no agent selected")
		return
	}
	m.detail.SetContent(detailText(t))
	m.detail.GotoTop()
}

func detailText(t trajectory.AgentTrajectory) string {
	var b strings.Builder
	c := t.Config
	fmt.Fprintf(&b, "%s  pos=(%g, %g) vel=(%g, %g) safety=%g order=%d\n",
		titleStyle.Render(c.Name), c.Position.X, c.Position.Y, c.Velocity.X, c.Velocity.Y, c.SafetyMargin, c.Order)
	fmt.Fprintf(&b, "footprint: %d exterior vertices, %d holes\n", len(c.Footprint.Exterior), len(c.Footprint.Interiors))
	for i, s := range t.Segments {
		style := lipgloss.NewStyle().Foreground(kindColors[s.Kind])
		fmt.Fprintf(&b, "segment %d %s: %d points", i, style.Render(s.Kind.String()), len(s.Points))
		if n := len(s.Points); n > 0 {
			first, last := s.Points[0], s.Points[n-1]
			fmt.Fprintf(&b, "  (%g, %g)@%g -> (%g, %g)@%g", first.X, first.Y, first.T, last.X, last.Y, last.T)
		}
		b.WriteString("\n")
	}
	series := plotdata.Extract(t)
	if e, ok := plotdata.Bounds(series); ok {
		fmt.Fprintf(&b, "extent: x %g..%g  y %g..%g  t %g..%g\n", e.MinX, e.MaxX, e.MinY, e.MaxY, e.MinT, e.MaxT)
	}
	return b.String()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("trajviz: %d agents", m.res.Accepted())))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	if m.showDetail {
		b.WriteString("\n")
		b.WriteString(m.detail.View())
	}
	b.WriteString("\n")
	footer := "enter: details  esc: close  q: quit"
	if n := m.res.Rejected(); n > 0 {
		footer += "  " + warnStyle.Render(fmt.Sprintf("%d entries rejected", n))
	}
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}
