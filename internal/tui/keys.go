package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/bl3edit/internal/keybinds"
)

// handleKeyPress routes key presses based on the overlay and screen
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// Force quit works everywhere
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, key); ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	switch m.overlay {
	case OverlayPrompt:
		return m.handlePromptKeys(msg)
	case OverlayPicker:
		return m.handlePickerKeys(msg)
	case OverlayInspect:
		return m.handleInspectKeys(msg)
	}

	switch m.view.Screen {
	case ScreenChooseDirectory:
		return m.handleChooseDirectoryKeys(key)
	case ScreenManageSave, ScreenManageProfile:
		return m.handleManageKeys(key)
	default:
		if action, ok := m.keybinds.Match(keybinds.ContextManage, key); ok && action == keybinds.ActionQuit {
			return tea.Quit
		}
	}
	return nil
}

func (m *Model) handleChooseDirectoryKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextChooseDirectory, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit
	case keybinds.ActionChooseDir:
		return m.handleInteraction(ChooseDirPressed{})
	case keybinds.ActionRefresh:
		return m.handleInteraction(RefreshPressed{})
	case keybinds.ActionUpdate:
		return m.handleInteraction(UpdatePressed{})
	case keybinds.ActionDismiss:
		return m.handleInteraction(DismissNotification{})
	}
	return nil
}

func (m *Model) handleManageKeys(key string) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextManage, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit
	case keybinds.ActionDismiss:
		return m.handleInteraction(DismissNotification{})
	case keybinds.ActionUpdate:
		return m.handleInteraction(UpdatePressed{})
	case keybinds.ActionChooseDir:
		return m.handleInteraction(ChooseDirPressed{})
	case keybinds.ActionRefresh:
		return m.handleInteraction(RefreshPressed{})

	case keybinds.ActionNextTab:
		return m.handleInteraction(m.tabMsg(1))
	case keybinds.ActionPrevTab:
		return m.handleInteraction(m.tabMsg(-1))

	case keybinds.ActionFieldUp:
		m.notification = nil
		m.moveCursor(-1)
	case keybinds.ActionFieldDown:
		m.notification = nil
		m.moveCursor(1)
	case keybinds.ActionFieldDecrease:
		return m.adjustField(-1)
	case keybinds.ActionFieldIncrease:
		return m.adjustField(1)
	case keybinds.ActionFieldToggle:
		return m.toggleField()
	case keybinds.ActionFieldEdit:
		return m.activateField()
	case keybinds.ActionFieldMax:
		return m.maxField()

	case keybinds.ActionCommit:
		if m.view.Screen == ScreenManageProfile {
			return m.handleInteraction(CommitProfilePressed{})
		}
		return m.handleInteraction(CommitSavePressed{})

	case keybinds.ActionOpenPicker:
		return m.openPicker()
	case keybinds.ActionInspect:
		return m.handleInteraction(InspectPressed{})
	case keybinds.ActionCopyPath:
		return m.handleInteraction(CopyPathPressed{})
	case keybinds.ActionPasteItem:
		return m.handleInteraction(PasteItemPressed{})
	case keybinds.ActionRemoveItem:
		return m.removeItem()
	}
	return nil
}

func (m *Model) tabMsg(delta int) Interaction {
	next := m.view.cycleTab(delta)
	if m.view.Screen == ScreenManageProfile {
		return ProfileTabSelected{Tab: next.ProfileTab}
	}
	return SaveTabSelected{Tab: next.SaveTab}
}

// editMsg wraps an edit in the message of the active tab. It returns nil on
// tabs without editable state.
func (m *Model) editMsg(e Edit) Interaction {
	switch m.view.Screen {
	case ScreenManageSave:
		switch m.view.SaveTab {
		case SaveTabGeneral:
			return SaveGeneralEdit{Edit: e}
		case SaveTabCharacter:
			return SaveCharacterEdit{Edit: e}
		case SaveTabInventory:
			return SaveInventoryEdit{Edit: e}
		case SaveTabCurrency:
			return SaveCurrencyEdit{Edit: e}
		case SaveTabVehicle:
			return SaveVehicleEdit{Edit: e}
		}
	case ScreenManageProfile:
		switch m.view.ProfileTab {
		case ProfileTabGeneral:
			return ProfileGeneralEdit{Edit: e}
		case ProfileTabProfile:
			return ProfileProfileEdit{Edit: e}
		case ProfileTabKeys:
			return ProfileKeysEdit{Edit: e}
		case ProfileTabBank:
			return ProfileBankEdit{Edit: e}
		}
	}
	return nil
}

func (m *Model) sendEdit(f field, e Edit) tea.Cmd {
	e.Field = f.id
	e.Index = f.index
	msg := m.editMsg(e)
	if msg == nil {
		return nil
	}
	return m.handleInteraction(msg)
}

func (m *Model) adjustField(dir int) tea.Cmd {
	f, ok := m.currentField()
	if !ok {
		return nil
	}

	switch {
	case f.settings && f.kind == fieldNumber:
		if dir > 0 {
			return m.handleInteraction(SettingsMsg{Action: IncreaseUIScale})
		}
		return m.handleInteraction(SettingsMsg{Action: DecreaseUIScale})
	case f.kind == fieldNumber:
		return m.sendEdit(f, Edit{Op: OpStep, Delta: dir * f.step})
	case f.kind == fieldChoice:
		return m.sendEdit(f, Edit{Op: OpStep, Delta: dir})
	case f.kind == fieldToggle:
		return m.sendEdit(f, Edit{Op: OpToggle})
	}
	return nil
}

func (m *Model) toggleField() tea.Cmd {
	f, ok := m.currentField()
	if !ok {
		return nil
	}
	switch f.kind {
	case fieldToggle:
		return m.sendEdit(f, Edit{Op: OpToggle})
	case fieldChoice:
		return m.sendEdit(f, Edit{Op: OpStep, Delta: 1})
	}
	return nil
}

// activateField runs action rows and opens the editor on value rows
func (m *Model) activateField() tea.Cmd {
	f, ok := m.currentField()
	if !ok {
		return nil
	}

	switch f.kind {
	case fieldAction:
		if f.settings {
			return m.handleInteraction(SettingsMsg{Action: f.settingsOp})
		}
		if f.op == OpImport {
			return m.openItemPrompt(f)
		}
		return m.sendEdit(f, Edit{Op: f.op})
	case fieldNumber, fieldText:
		if f.settings {
			return nil
		}
		return m.openFieldPrompt(f)
	case fieldToggle:
		return m.sendEdit(f, Edit{Op: OpToggle})
	case fieldChoice:
		return m.sendEdit(f, Edit{Op: OpStep, Delta: 1})
	}
	return nil
}

func (m *Model) maxField() tea.Cmd {
	f, ok := m.currentField()
	if !ok || !f.hasMax {
		return nil
	}
	return m.sendEdit(f, Edit{Op: OpMax})
}

func (m *Model) removeItem() tea.Cmd {
	f, ok := m.currentField()
	if !ok || f.kind != fieldItem {
		return nil
	}
	return m.sendEdit(f, Edit{Op: OpRemove})
}

// currentFields returns the rows of the active tab
func (m *Model) currentFields() []field {
	switch m.view.Screen {
	case ScreenManageSave:
		return saveFields(m.view.SaveTab, &m.save, m.cfg)
	case ScreenManageProfile:
		return profileFields(m.view.ProfileTab, &m.profile, m.cfg)
	}
	return nil
}

func (m *Model) currentField() (field, bool) {
	fields := m.currentFields()
	if m.fieldIndex < 0 || m.fieldIndex >= len(fields) || !fields[m.fieldIndex].selectable() {
		return field{}, false
	}
	return fields[m.fieldIndex], true
}

// moveCursor moves to the next selectable row in direction delta
func (m *Model) moveCursor(delta int) {
	fields := m.currentFields()
	for i := m.fieldIndex + delta; i >= 0 && i < len(fields); i += delta {
		if fields[i].selectable() {
			m.fieldIndex = i
			return
		}
	}
}

func (m *Model) resetCursor() {
	m.fieldIndex = -1
	m.moveCursor(1)
	if m.fieldIndex < 0 {
		m.fieldIndex = 0
	}
}

// clampCursor keeps the cursor on a row after the list changed length
func (m *Model) clampCursor() {
	fields := m.currentFields()
	if m.fieldIndex >= len(fields) {
		m.fieldIndex = len(fields)
		m.moveCursor(-1)
	}
	if m.fieldIndex < 0 || m.fieldIndex >= len(fields) || !fields[m.fieldIndex].selectable() {
		m.resetCursor()
	}
}

func (m *Model) focusLastItem() {
	m.fieldIndex = len(m.currentFields())
	m.moveCursor(-1)
}
