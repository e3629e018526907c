package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planhaus/planhaus/pkg/plan"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command, an interactive browser for a
// computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse a computed layout interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := plan.ReadDocumentFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}

			model := NewRoomListModel(doc)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("run inspector: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// RoomListModel - Interactive room browser
// =============================================================================

// RoomListModel is the bubbletea model for browsing the rooms of a layout.
type RoomListModel struct {
	Doc    plan.Document
	Cursor int
	Height int
	Offset int
}

// NewRoomListModel creates a new room list model for a layout document.
func NewRoomListModel(doc plan.Document) RoomListModel {
	return RoomListModel{
		Doc:    doc,
		Height: 15,
	}
}

func (m RoomListModel) Init() tea.Cmd {
	return nil
}

func (m RoomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Doc.Rooms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RoomListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout · %gx%g space",
		m.Doc.Dimensions.Width, m.Doc.Dimensions.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Doc.Rooms) {
		end = len(m.Doc.Rooms)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		room := m.Doc.Rooms[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		position := "—"
		if room.Position != nil {
			position = fmt.Sprintf("(%g, %g)", room.Position.X, room.Position.Y)
		}

		size := fmt.Sprintf("%gx%g", room.Dimensions.Width, room.Dimensions.Height)
		area := fmt.Sprintf("%g", room.Dimensions.Area)
		rows = append(rows, []string{cursor, room.Name, room.Type, size, position, area})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Room", "Type", "Size", "Position", "Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Doc.Rooms) {
				return lipgloss.NewStyle()
			}
			room := m.Doc.Rooms[actualIdx]
			placed := room.Position != nil
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if placed {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if placed {
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	validity := StyleSuccess.Render("valid")
	if !m.Doc.Metrics.IsValid {
		validity = StyleWarning.Render(fmt.Sprintf("%d violations", len(m.Doc.Metrics.Violations)))
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  score %.2f · utilization %.1f%% · ",
		m.Doc.Metrics.Score, m.Doc.Metrics.Utilization*100)))
	b.WriteString(validity)
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Doc.Rooms))))

	return b.String()
}
