package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quadplan/quadplan/pkg/graph"
	"github.com/quadplan/quadplan/pkg/pipeline"
	"github.com/quadplan/quadplan/pkg/plan"
	"github.com/quadplan/quadplan/pkg/quad"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command, an interactive browser for a
// plan's rooms and their adjacencies.
func newInspectCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "inspect [plan.toml]",
		Short: "Browse a plan's rooms interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := plan.Load(args[0])
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}
			root, err := def.Build()
			if err != nil {
				return fmt.Errorf("build plan: %w", err)
			}

			model := newInspectModel(def.Name, root, threshold)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", pipeline.DefaultThreshold, "minimum shared wall length for adjacency")

	return cmd
}

// storeyView holds one storey's rooms and adjacency graph.
type storeyView struct {
	root  *quad.Quad
	leafs []*quad.Quad
	graph *graph.Graph[*quad.Quad]
}

// inspectModel is the bubbletea model for the room browser.
type inspectModel struct {
	name    string
	storeys []storeyView
	level   int
	cursor  int
	offset  int
	height  int
}

func newInspectModel(name string, root *quad.Quad, threshold float64) inspectModel {
	var storeys []storeyView
	for storey := root.Lowest(); storey != nil; storey = storey.Above() {
		leafs := storey.Leafs()
		sort.Slice(leafs, func(i, j int) bool { return leafs[i].ID() < leafs[j].ID() })
		storeys = append(storeys, storeyView{
			root:  storey,
			leafs: leafs,
			graph: storey.Graph(threshold),
		})
	}
	return inspectModel{name: name, storeys: storeys, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.storey().leafs)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "left", "h":
			if m.level > 0 {
				m.level--
				m.cursor, m.offset = 0, 0
			}
		case "right", "l":
			if m.level < len(m.storeys)-1 {
				m.level++
				m.cursor, m.offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m inspectModel) storey() storeyView {
	return m.storeys[m.level]
}

func (m inspectModel) View() string {
	var b strings.Builder

	title := m.name
	if title == "" {
		title = "plan"
	}
	b.WriteString(StyleTitle.Render("Inspect " + title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ room  ←/→ storey  q quit"))
	b.WriteString("\n\n")

	s := m.storey()
	b.WriteString(StyleDim.Render(fmt.Sprintf("Storey %d/%d · elevation %.1f m · %d rooms",
		m.level+1, len(m.storeys), s.root.Elevation(), len(s.leafs))))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(s.leafs) {
		end = len(s.leafs)
	}
	for i := m.offset; i < end; i++ {
		leaf := s.leafs[i]
		line := fmt.Sprintf("%-6s %-10s %7.1f m²", displayID(leaf), displayType(leaf), leaf.Area())
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(s.leafs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detail(s, s.leafs[m.cursor]))
	}

	return b.String()
}

// detail renders the selected room's geometry and neighbours.
func (m inspectModel) detail(s storeyView, leaf *quad.Quad) string {
	var b strings.Builder

	c := leaf.Centroid()
	b.WriteString(StyleDim.Render(fmt.Sprintf("centroid (%.1f, %.1f)  aspect %.2f", c.X, c.Y, leaf.Aspect())))
	b.WriteString("\n")

	neighbours := s.graph.Neighbors(leaf)
	sort.Slice(neighbours, func(i, j int) bool { return neighbours[i].ID() < neighbours[j].ID() })
	if len(neighbours) == 0 {
		b.WriteString(StyleDim.Render("no adjacent rooms"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(StyleDim.Render("adjacent:"))
	b.WriteString("\n")
	for _, n := range neighbours {
		width := 0.0
		if v, ok := s.graph.EdgeProperty(leaf, n, quad.PropWidth); ok {
			width, _ = v.(float64)
		}
		b.WriteString("  " + StyleDim.Render(iconArrow) + " " +
			StyleValue.Render(displayID(n)) + " " +
			StyleDim.Render(fmt.Sprintf("shared wall %.1f m", width)))
		b.WriteString("\n")
	}
	return b.String()
}

func displayID(q *quad.Quad) string {
	if q.ID() == "" {
		return "plot"
	}
	return q.ID()
}

func displayType(q *quad.Quad) string {
	if q.Type() == "" {
		return "-"
	}
	return q.Type()
}
