package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/bl3edit/internal/keybinds"
)

type promptPurpose int

const (
	promptDir promptPurpose = iota
	promptField
	promptItem
)

// promptState is the single-line input used as the directory picker and
// as the editor for text and number fields
type promptState struct {
	input   textinput.Model
	title   string
	purpose promptPurpose
	target  dirTarget
	field   field
}

func (m *Model) showPrompt(title, value string, purpose promptPurpose) tea.Cmd {
	m.prompt.title = title
	m.prompt.purpose = purpose
	m.prompt.input.SetValue(value)
	m.prompt.input.CursorEnd()
	m.prompt.input.Width = max(20, m.width-ModalWidthMarginNarrow-ViewportPaddingHorizontal-2)
	m.overlay = OverlayPrompt
	return tea.Batch(m.prompt.input.Focus(), textinput.Blink)
}

// openDirPrompt asks for a directory, starting from the configured one
func (m *Model) openDirPrompt(target dirTarget) tea.Cmd {
	initial := m.cfg.SavesDir
	if target == targetBackupDir {
		initial = m.cfg.BackupDir
	}
	if initial == "" {
		initial, _ = os.UserHomeDir()
	}
	m.prompt.target = target
	return m.showPrompt("Choose "+target.String(), initial, promptDir)
}

func (m *Model) openFieldPrompt(f field) tea.Cmd {
	m.prompt.field = f
	return m.showPrompt(f.label, f.raw, promptField)
}

func (m *Model) openItemPrompt(f field) tea.Cmd {
	m.prompt.field = f
	return m.showPrompt("Paste an item serial", "", promptItem)
}

func (m *Model) closePrompt() {
	m.prompt.input.Blur()
	m.overlay = OverlayNone
}

// handlePromptKeys handles keyboard input while the prompt is open
func (m *Model) handlePromptKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextPrompt, msg.String())
	if ok {
		switch action {
		case keybinds.ActionTextSubmit:
			return m.submitPrompt()
		case keybinds.ActionTextCancel:
			return m.cancelPrompt()
		case keybinds.ActionTextPaste:
			return m.pasteClipboard()
		}
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return cmd
}

func (m *Model) submitPrompt() tea.Cmd {
	value := m.prompt.input.Value()
	m.closePrompt()

	switch m.prompt.purpose {
	case promptDir:
		target := m.prompt.target
		return func() tea.Msg {
			return dirChosenMsg{target: target, path: value}
		}
	case promptField:
		return m.sendEdit(m.prompt.field, Edit{Op: OpSet, Text: value})
	case promptItem:
		return m.importItem(value)
	}
	return nil
}

func (m *Model) cancelPrompt() tea.Cmd {
	m.closePrompt()
	if m.prompt.purpose == promptDir {
		target := m.prompt.target
		return func() tea.Msg {
			return dirChosenMsg{target: target, cancelled: true}
		}
	}
	return nil
}
