package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderModal renders a centered dialog with a title and an optional footer.
// The requested size shrinks to fit small terminals.
func (m *Model) renderModal(title, content, footer string, width, height int) string {
	width = min(width, m.width-ViewportPaddingHorizontal)
	height = min(height, m.height-ModalHeightMarginSmall)
	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	full := styleTitle.Render(title) + "\n\n" + content
	if footer != "" {
		full += "\n\n" + styleSubtle.Render(footer)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		MaxHeight(height+MinimalBorderMargin).
		Padding(1, 2).
		Render(full)

	if width >= m.width-2 || height >= m.height-1 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
