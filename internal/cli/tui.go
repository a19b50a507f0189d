package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// maxExprWidth bounds the sub-expression shown in the detail panel.
const maxExprWidth = 200

// =============================================================================
// InspectModel - Interactive vertex browser
// =============================================================================

// VertexRow is one vertex as shown by the inspector.
type VertexRow struct {
	Vertex   string
	Op       string // raw operation, empty when the table has no entry
	Value    string // formatted value, empty when not evaluated
	Arity    int
	Depth    int
	Expr     string // nested expression rooted at the vertex
	Terminal bool
}

// InspectModel is the bubbletea model for browsing the vertices of a graph.
type InspectModel struct {
	Rows   []VertexRow
	Cursor int
	Height int
	Offset int
	Title  string
}

// NewInspectModel creates a new inspector over rows.
func NewInspectModel(title string, rows []VertexRow) InspectModel {
	return InspectModel{
		Rows:   rows,
		Height: 15,
		Title:  title,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if len(m.Rows) > 0 {
				m.Cursor = len(m.Rows) - 1
				m.Offset = max(0, m.Cursor-m.Height+1)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty graph)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		op := r.Op
		if op == "" {
			op = "—"
		}
		value := r.Value
		if value == "" {
			value = "—"
		}
		rows = append(rows, []string{cursor, r.Vertex, op, fmt.Sprint(r.Arity), fmt.Sprint(r.Depth), value})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Vertex", "Op", "Args", "Depth", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[idx]
			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				base = base.Foreground(colorDim)
			}
			if col == 5 {
				base = base.Foreground(colorCyan)
			}
			if r.Op == "" && col == 2 {
				base = base.Foreground(colorYellow)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			if r.Terminal && col == 1 {
				return base.Foreground(colorGreen)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// detail renders the panel for the vertex under the cursor.
func (m InspectModel) detail() string {
	r := m.Rows[m.Cursor]
	label := r.Vertex
	if r.Terminal {
		label += " (terminal)"
	}
	exprText := r.Expr
	if len(exprText) > maxExprWidth {
		exprText = exprText[:maxExprWidth] + "…"
	}
	return detailBoxStyle.Render(listSelectedStyle.Render(label) + "\n" + StyleValue.Render(exprText))
}
