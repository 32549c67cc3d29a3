package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StrategyCompareModel - Interactive strategy comparison
// =============================================================================

// StrategyRow holds one strategy's results for the comparison table.
type StrategyRow struct {
	Strategy    string
	NodeCount   int
	EdgeCount   int
	TotalLength float64
	BranchCount int
	Duration    time.Duration
	Err         error
}

// StrategyCompareModel is the bubbletea model for the strategy comparison
// table. Selecting a row picks that strategy for rendering.
type StrategyCompareModel struct {
	Input    string
	Rows     []StrategyRow
	Cursor   int
	Selected *StrategyRow
}

// NewStrategyCompareModel creates a new strategy comparison model.
func NewStrategyCompareModel(input string, rows []StrategyRow) StrategyCompareModel {
	return StrategyCompareModel{
		Input:  input,
		Rows:   rows,
		Cursor: 0,
	}
}

func (m StrategyCompareModel) Init() tea.Cmd {
	return nil
}

func (m StrategyCompareModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		case "enter":
			row := m.Rows[m.Cursor]
			if row.Err != nil {
				return m, nil
			}
			m.Selected = &row
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StrategyCompareModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Compare Strategies"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(m.Input))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, r := range m.Rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, strategyTableRow(cursor, r))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Strategy", "Nodes", "Edges", "Length", "Branches", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[row]
			isCurrent := row == m.Cursor

			base := lipgloss.NewStyle()
			if r.Err != nil {
				return base.Foreground(colorDim)
			}
			if isCurrent {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// strategyTableRow formats one comparison row for display.
func strategyTableRow(cursor string, r StrategyRow) []string {
	if r.Err != nil {
		return []string{cursor, r.Strategy, "—", "—", "—", "—", "failed"}
	}
	return []string{
		cursor,
		r.Strategy,
		fmt.Sprintf("%d", r.NodeCount),
		fmt.Sprintf("%d", r.EdgeCount),
		fmt.Sprintf("%.2f", r.TotalLength),
		fmt.Sprintf("%d", r.BranchCount),
		formatDuration(r.Duration),
	}
}

// =============================================================================
// Helpers
// =============================================================================

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
