package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/bl3edit/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Underline(true)
)

// scaled applies the configured UI scale to a width
func (m *Model) scaled(n int) int {
	scale := 1.0
	if m.cfg != nil && m.cfg.UIScaleFactor > 0 {
		scale = m.cfg.UIScaleFactor
	}
	return int(math.Round(float64(n) * scale))
}

// renderMain renders the active screen
func (m *Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	switch m.view.Screen {
	case ScreenInitializing:
		return m.renderCentered(styleSubtle.Render("Starting..."))
	case ScreenLoading:
		return m.renderCentered(styleSubtle.Render(fmt.Sprintf("Loading files from %s...", m.cfg.SavesDir)))
	case ScreenChooseDirectory:
		return m.renderChooseDirectory()
	}
	return m.renderManage()
}

func (m *Model) renderCentered(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderChooseDirectory() string {
	ctx := keybinds.ContextChooseDirectory
	var lines []string
	lines = append(lines, styleTitle.Render("Borderlands 3 save editor"), "")
	if m.cfg.SavesDir != "" {
		lines = append(lines, "No save or profile files were loaded from", styleWarning.Render(m.cfg.SavesDir), "")
	} else {
		lines = append(lines, "Choose the directory holding your save files.", "")
	}
	lines = append(lines,
		fmt.Sprintf("%s: choose directory", m.keybinds.GetBindingString(ctx, keybinds.ActionChooseDir)),
		fmt.Sprintf("%s: rescan", m.keybinds.GetBindingString(ctx, keybinds.ActionRefresh)),
		fmt.Sprintf("%s: quit", m.keybinds.GetBindingString(ctx, keybinds.ActionQuit)),
	)
	if n := m.renderNotification(); n != "" {
		lines = append(lines, "", n)
	}
	if banner := m.renderUpdateBanner(keybinds.ContextChooseDirectory); banner != "" {
		lines = append(lines, "", banner)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(min(m.scaled(64), m.width-MinimalBorderMargin)).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return m.renderCentered(box)
}

// renderManage renders the file sidebar, the tab panel and the status bar
func (m *Model) renderManage() string {
	sidebarWidth := min(m.scaled(SidebarWidth), m.width/2)
	panelWidth := m.width - sidebarWidth - SplitPaneBorderWidth - 1
	bodyHeight := m.height - MainViewHeightOffset + 2

	header := m.renderHeader()
	sidebar := m.renderSidebar(sidebarWidth-2, bodyHeight-2)
	panel := m.renderPanel(panelWidth-2, bodyHeight-2)

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(sidebarWidth).
		Height(bodyHeight).
		Render(sidebar)

	panelBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(panelWidth).
		Height(bodyHeight).
		Render(panel)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, panelBox)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		mainView,
		m.renderStatusBar(),
	)
}

func (m *Model) renderHeader() string {
	left := styleTitle.Render("bl3edit")
	if m.version != "" {
		left += styleSubtle.Render(" " + m.version)
	}
	right := m.renderUpdateBanner(keybinds.ContextManage)

	spacing := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) renderUpdateBanner(ctx keybinds.Context) string {
	if m.latestRelease == nil {
		return ""
	}
	return styleWarning.Render(fmt.Sprintf("Version %s is available (%s to open)",
		m.latestRelease.Version(), m.keybinds.GetBindingString(ctx, keybinds.ActionUpdate)))
}

// renderSidebar renders the loaded file list
func (m *Model) renderSidebar(width, height int) string {
	var lines []string
	lines = append(lines, styleTitle.Render("Files"), "")

	files := m.registry.Files()
	selected, _ := m.registry.Selected()
	current := m.registry.Index(selected)

	pageSize := max(1, height-4)
	start := max(0, current-pageSize+1)
	end := min(len(files), start+pageSize)

	for i := start; i < end; i++ {
		line := abbreviate(files[i].Label(), max(10, width-2))
		if i == current {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if len(files) > 0 {
		lines = append(lines, styleSubtle.Render(fmt.Sprintf("[%d/%d]", current+1, len(files))))
	} else {
		lines = append(lines, styleSubtle.Render("No files loaded"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderPanel renders the tab bar and the rows of the active tab
func (m *Model) renderPanel(width, height int) string {
	var lines []string
	lines = append(lines, m.renderTabs(), "")

	fields := m.currentFields()
	labelWidth := m.scaled(LabelWidth)
	rows := max(1, height-3)
	start := max(0, m.fieldIndex-rows+1)
	end := min(len(fields), start+rows)

	for i := start; i < end; i++ {
		lines = append(lines, m.renderField(fields[i], i == m.fieldIndex, labelWidth, width))
	}
	if len(fields) == 0 {
		lines = append(lines, styleSubtle.Render("Nothing to edit"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTabs() string {
	names := m.view.TabNames()
	active := m.view.Tab()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if name == active {
			parts = append(parts, styleTabActive.Render(name))
		} else {
			parts = append(parts, styleSubtle.Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderField(f field, selected bool, labelWidth, width int) string {
	var line string
	switch f.kind {
	case fieldAction:
		line = "[ " + f.label + " ]"
	case fieldInfo:
		line = fmt.Sprintf("%-*s %s", labelWidth, f.label, styleSubtle.Render(abbreviate(f.value, max(10, width-labelWidth-4))))
	case fieldToggle:
		line = fmt.Sprintf("%s %s", f.value, f.label)
	default:
		line = fmt.Sprintf("%-*s %s", labelWidth, f.label, f.value)
	}

	if selected {
		line = styleSelected.Render(line)
	}
	if msg, ok := m.fieldErrors[f.errKey]; ok && f.errKey != "" {
		line += " " + styleError.Render(msg)
	}
	return line
}

func (m *Model) renderNotification() string {
	if m.notification == nil {
		return ""
	}
	if m.notification.Sentiment == Negative {
		return styleError.Render(m.notification.Message)
	}
	return styleSuccess.Render(m.notification.Message)
}

// renderStatusBar renders the notification, or key hints when there is none
func (m *Model) renderStatusBar() string {
	selected, _ := m.registry.Selected()
	left := styleSubtle.Render(selected.FileName)
	if m.committing {
		left += styleWarning.Render(" saving...")
	}

	right := m.renderNotification()
	if right == "" {
		ctx := keybinds.ContextManage
		right = styleSubtle.Render(fmt.Sprintf("%s: save | %s: files | %s: tabs | %s: quit",
			m.keybinds.GetBindingString(ctx, keybinds.ActionCommit),
			m.keybinds.GetBindingString(ctx, keybinds.ActionOpenPicker),
			m.keybinds.GetBindingString(ctx, keybinds.ActionNextTab),
			m.keybinds.GetBindingString(ctx, keybinds.ActionQuit)))
	}

	spacing := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) renderPrompt() string {
	content := m.prompt.input.View()
	footer := "enter: confirm | esc: cancel | ctrl+v: paste"
	return m.renderModal(m.prompt.title, content, footer, m.scaled(70), 9)
}

func (m *Model) renderPicker() string {
	var lines []string
	lines = append(lines, m.picker.input.View(), "")

	rows := max(1, m.height-ContentOffsetLarge-4)
	start := max(0, m.picker.cursor-rows+1)
	end := min(len(m.picker.matches), start+rows)
	for i := start; i < end; i++ {
		line := m.picker.matches[i].Label()
		if i == m.picker.cursor {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}
	if len(m.picker.matches) == 0 {
		lines = append(lines, styleSubtle.Render("No match"))
	}

	footer := "up/down: move | enter: open | esc: close"
	return m.renderModal("Open file", strings.Join(lines, "\n"), footer, m.scaled(70), m.height-ModalHeightMarginMed)
}

func (m *Model) renderInspect() string {
	var content strings.Builder
	content.WriteString(m.inspect.query.View())
	content.WriteString("\n")
	if m.inspect.err != "" {
		content.WriteString(styleError.Render(m.inspect.err))
	}
	content.WriteString("\n")
	content.WriteString(m.inspect.view.View())

	footer := "j/k: scroll | g/G: top/bottom | /: query | b: bookmark | n: next bookmark | x: delete bookmark | esc: close"
	if m.notification != nil {
		footer = m.notification.Message + " | " + footer
	}
	return m.renderModal("Inspect", content.String(), footer, m.width-ModalWidthMargin, m.height-ModalHeightMargin)
}
