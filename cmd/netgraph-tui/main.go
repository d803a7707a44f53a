// netgraph-tui is an interactive terminal browser for imported
// graphs: it runs the import pipeline on a data file, then lets the
// user inspect nodes and edges, delete entities and undo/redo.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/netgraph/netgraph/pkg/engine"
	"github.com/netgraph/netgraph/pkg/importer"
	"github.com/netgraph/netgraph/pkg/logging"
	"github.com/netgraph/netgraph/pkg/metrics"
	"github.com/netgraph/netgraph/pkg/transform"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#005FAF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			MarginLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	summaryView view = iota
	nodesView
	edgesView
)

var viewNames = []string{"Summary", "Nodes", "Edges"}

type keyMap struct {
	Tab    key.Binding
	Delete key.Binding
	Undo   key.Binding
	Redo   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Delete, k.Undo, k.Redo, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Delete}, {k.Undo, k.Redo, k.Quit}}
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete selected"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "redo"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type appModel struct {
	eng        *engine.Engine
	view       view
	nodeTable  table.Model
	edgeTable  table.Model
	help       help.Model
	status     string
	lastError  string
	width      int
	fileName   string
}

func newNodeTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 16},
			{Title: "Name", Width: 24},
			{Title: "Level", Width: 6},
			{Title: "Attributes", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	styles.Selected = styles.Selected.Background(lipgloss.Color("#005FAF"))
	t.SetStyles(styles)
	return t
}

func newEdgeTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 16},
			{Title: "Source", Width: 14},
			{Title: "Target", Width: 14},
			{Title: "Type", Width: 12},
			{Title: "Weight", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	styles.Selected = styles.Selected.Background(lipgloss.Color("#005FAF"))
	t.SetStyles(styles)
	return t
}

func newAppModel(eng *engine.Engine, fileName string) appModel {
	m := appModel{
		eng:       eng,
		nodeTable: newNodeTable(),
		edgeTable: newEdgeTable(),
		help:      help.New(),
		fileName:  fileName,
	}
	m.refresh()
	return m
}

func (m *appModel) refresh() {
	graph, err := m.eng.GetGraph("")
	if err != nil {
		m.lastError = err.Error()
		return
	}

	nodeRows := make([]table.Row, len(graph.Nodes))
	for i, node := range graph.Nodes {
		nodeRows[i] = table.Row{
			node.ID,
			node.Name,
			strconv.Itoa(node.Level),
			strconv.Itoa(len(node.Attributes)),
		}
	}
	m.nodeTable.SetRows(nodeRows)

	edgeRows := make([]table.Row, len(graph.Edges))
	for i, edge := range graph.Edges {
		edgeRows[i] = table.Row{
			edge.ID,
			edge.Source,
			edge.Target,
			edge.RelationshipType,
			strconv.FormatFloat(edge.Weight, 'g', -1, 64),
		}
	}
	m.edgeTable.SetRows(edgeRows)
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Tab):
			m.view = (m.view + 1) % view(len(viewNames))
			return m, nil

		case key.Matches(msg, keys.Undo):
			ok, state, err := m.eng.Undo("")
			m.applyHistoryResult("undo", ok, state, err)
			return m, nil

		case key.Matches(msg, keys.Redo):
			ok, state, err := m.eng.Redo("")
			m.applyHistoryResult("redo", ok, state, err)
			return m, nil

		case key.Matches(msg, keys.Delete):
			m.deleteSelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case nodesView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
	case edgesView:
		m.edgeTable, cmd = m.edgeTable.Update(msg)
	}
	return m, cmd
}

func (m *appModel) applyHistoryResult(op string, ok bool, state engine.HistoryState, err error) {
	switch {
	case err != nil:
		m.lastError = err.Error()
	case ok:
		m.lastError = ""
		m.status = fmt.Sprintf("%s applied (can undo: %v, can redo: %v)", op, state.CanUndo, state.CanRedo)
		m.refresh()
	default:
		m.status = "nothing to " + op
	}
}

func (m *appModel) deleteSelected() {
	switch m.view {
	case nodesView:
		row := m.nodeTable.SelectedRow()
		if row == nil {
			return
		}
		if err := m.eng.DeleteNode("", row[0]); err != nil {
			m.lastError = err.Error()
			return
		}
		m.status = "deleted node " + row[0]
	case edgesView:
		row := m.edgeTable.SelectedRow()
		if row == nil {
			return
		}
		if err := m.eng.DeleteEdge("", row[0]); err != nil {
			m.lastError = err.Error()
			return
		}
		m.status = "deleted edge " + row[0]
	default:
		return
	}
	m.lastError = ""
	m.refresh()
}

func (m appModel) View() string {
	s := titleStyle.Render("netgraph — " + m.fileName)
	s += "\n\n"

	tabs := ""
	for i, name := range viewNames {
		if view(i) == m.view {
			tabs += activeTabStyle.Render(name)
		} else {
			tabs += inactiveTabStyle.Render(name)
		}
	}
	s += lipgloss.NewStyle().MarginLeft(2).Render(tabs)
	s += "\n\n"

	switch m.view {
	case summaryView:
		s += m.renderSummary()
	case nodesView:
		s += lipgloss.NewStyle().MarginLeft(2).Render(m.nodeTable.View())
	case edgesView:
		s += lipgloss.NewStyle().MarginLeft(2).Render(m.edgeTable.View())
	}
	s += "\n"

	if m.lastError != "" {
		s += errorStyle.Render("Error: "+m.lastError) + "\n"
	} else if m.status != "" {
		s += statusStyle.Render(m.status) + "\n"
	}

	s += helpStyle.Render(m.help.View(keys))
	return s
}

func (m appModel) renderSummary() string {
	graph, err := m.eng.GetGraph("")
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	summary := transform.CreateSummary(graph)

	content := fmt.Sprintf("Nodes: %d\nEdges: %d\n\nNode levels: %v\nEdge types: %v",
		summary.TotalNodes, summary.TotalEdges, summary.NodeLevels, summary.EdgeTypes)
	return statsBoxStyle.Render(content)
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: netgraph-tui <data-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	logger := logging.NewNopLogger()
	reg := metrics.NewRegistry()

	imp := importer.NewImporter(logger, reg)
	result := imp.ImportData(&importer.ImportConfig{FilePath: path})
	if !result.Success {
		fmt.Fprintln(os.Stderr, "Import failed:")
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, "  -", e)
		}
		os.Exit(1)
	}

	eng := engine.NewEngine(logger, reg)
	if err := eng.LoadGraph("", result.GraphData); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(newAppModel(eng, path), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
