package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/bl3edit/internal/keybinds"
	"github.com/studiowebux/bl3edit/internal/types"
)

// pickerState is the fuzzy file picker
type pickerState struct {
	input   textinput.Model
	matches []types.LoadedFile
	cursor  int
}

func (m *Model) openPicker() tea.Cmd {
	if m.registry.Len() == 0 {
		return nil
	}
	m.picker.input.SetValue("")
	m.picker.cursor = 0
	m.filterPicker()
	if selected, ok := m.registry.Selected(); ok {
		m.picker.cursor = max(m.registry.Index(selected), 0)
	}
	m.overlay = OverlayPicker
	return tea.Batch(m.picker.input.Focus(), textinput.Blink)
}

func (m *Model) filterPicker() {
	m.picker.matches = m.registry.Filter(m.picker.input.Value())
	if m.picker.cursor >= len(m.picker.matches) {
		m.picker.cursor = max(len(m.picker.matches)-1, 0)
	}
}

func (m *Model) closePicker() {
	m.picker.input.Blur()
	m.overlay = OverlayNone
}

// handlePickerKeys handles keyboard input in the file picker
func (m *Model) handlePickerKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextPicker, msg.String())
	if ok {
		switch action {
		case keybinds.ActionNavigateUp:
			if m.picker.cursor > 0 {
				m.picker.cursor--
			}
			return nil
		case keybinds.ActionNavigateDown:
			if m.picker.cursor < len(m.picker.matches)-1 {
				m.picker.cursor++
			}
			return nil
		case keybinds.ActionSelect:
			m.closePicker()
			if len(m.picker.matches) == 0 {
				return nil
			}
			return m.handleInteraction(FileSelected{File: m.picker.matches[m.picker.cursor]})
		case keybinds.ActionClose:
			m.closePicker()
			return nil
		}
	}

	var cmd tea.Cmd
	m.picker.input, cmd = m.picker.input.Update(msg)
	m.filterPicker()
	return cmd
}
