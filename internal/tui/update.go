package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/editstate"
	"github.com/studiowebux/bl3edit/internal/persist"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/types"
)

// handleInteraction clears the notification and applies a user interaction
func (m *Model) handleInteraction(msg Interaction) tea.Cmd {
	m.notification = nil

	switch msg := msg.(type) {
	case ChooseDirPressed:
		return m.openDirPrompt(targetSavesDir)

	case RefreshPressed:
		return m.refresh()

	case FileSelected:
		m.selectFile(msg.File)

	case SaveTabSelected:
		if m.view.Screen == ScreenManageSave && msg.Tab >= 0 && msg.Tab < saveTabCount {
			m.view.SaveTab = msg.Tab
			m.resetCursor()
		}

	case ProfileTabSelected:
		if m.view.Screen == ScreenManageProfile && msg.Tab >= 0 && msg.Tab < profileTabCount {
			m.view.ProfileTab = msg.Tab
			m.resetCursor()
		}

	case SaveEdit:
		if err := applySaveEdit(&m.save, msg); err != nil {
			m.negative(describeError(err))
		}
		m.clampCursor()

	case ProfileEdit:
		if err := applyProfileEdit(&m.profile, msg); err != nil {
			m.negative(describeError(err))
		}
		m.clampCursor()

	case SettingsMsg:
		return m.handleSettings(msg)

	case CommitSavePressed:
		return m.commitSave()

	case CommitProfilePressed:
		return m.commitProfile()

	case UpdatePressed:
		if m.latestRelease == nil {
			return nil
		}
		return m.openTarget(targetReleasePage, m.latestRelease.HTMLURL)

	case DismissNotification:

	case InspectPressed:
		return m.openInspect()

	case CopyPathPressed:
		return m.copyPath()

	case PasteItemPressed:
		return m.pasteClipboard()
	}

	return nil
}

// selectFile makes f current and seeds the editable state of its domain.
// The tab is kept while the domain stays the same.
func (m *Model) selectFile(f types.LoadedFile) {
	if err := m.registry.Select(f); err != nil {
		m.negative(fmt.Sprintf("%s: %v", f.FileName, err))
		return
	}
	selected, _ := m.registry.Selected()
	m.seed(selected)
	m.fieldErrors = nil

	switch {
	case selected.IsSave() && m.view.Screen != ScreenManageSave:
		m.view = manageSave(SaveTabGeneral)
		m.resetCursor()
	case selected.IsProfile() && m.view.Screen != ScreenManageProfile:
		m.view = manageProfile(ProfileTabGeneral)
		m.resetCursor()
	default:
		m.clampCursor()
	}
}

func (m *Model) seed(f types.LoadedFile) {
	switch {
	case f.IsSave():
		m.save = editstate.SeedSave(f)
	case f.IsProfile():
		m.profile = editstate.SeedProfile(f)
	}
}

// defaultView is the first tab of f's domain
func defaultView(f types.LoadedFile) ViewState {
	if f.IsProfile() {
		return manageProfile(ProfileTabGeneral)
	}
	return manageSave(SaveTabGeneral)
}

func (m *Model) refresh() tea.Cmd {
	if m.cfg.SavesDir == "" {
		m.view = ViewState{Screen: ScreenChooseDirectory}
		m.negative("Choose a saves directory first")
		return nil
	}
	m.view = ViewState{Screen: ScreenLoading}
	return m.scan(m.cfg.SavesDir)
}

func (m *Model) handleInitialized(msg initializedMsg) tea.Cmd {
	if msg.dir == "" {
		m.view = ViewState{Screen: ScreenChooseDirectory}
		return nil
	}
	if msg.err != nil {
		m.logger.Warn("remembered saves directory is not usable", zap.String("dir", msg.dir), zap.Error(msg.err))
		m.view = ViewState{Screen: ScreenChooseDirectory}
		m.negative(fmt.Sprintf("Saves directory %s is not available: %v", msg.dir, rootCause(msg.err)))
		return nil
	}
	m.view = ViewState{Screen: ScreenLoading}
	return m.scan(msg.dir)
}

func (m *Model) handleFilesLoaded(msg filesLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("directory scan failed", zap.String("dir", msg.dir), zap.Error(msg.err))
		m.view = ViewState{Screen: ScreenChooseDirectory}
		m.negative(describeError(msg.err))
		return nil
	}

	m.logSkipped(msg.result.Skipped)
	m.registry.Replace(msg.result.Files)

	first, ok := m.registry.First()
	if !ok {
		m.registry.ClearSelection()
		m.view = ViewState{Screen: ScreenChooseDirectory}
		m.negative(noFilesMessage(msg.dir, msg.result.Skipped))
		return nil
	}

	m.registry.Select(first)
	m.seed(first)
	m.fieldErrors = nil
	m.view = defaultView(first)
	m.resetCursor()

	m.logger.Info("files loaded", zap.String("dir", msg.dir), zap.Int("files", m.registry.Len()), zap.Int("skipped", len(msg.result.Skipped)))
	m.notifySkipped(msg.result.Skipped)
	return nil
}

func (m *Model) logSkipped(skipped []registry.SkippedFile) {
	for _, s := range skipped {
		m.logger.Warn("skipped unreadable file", zap.String("file", s.Name), zap.Error(s.Err))
	}
}

// notifySkipped reports unreadable files unless something else was reported
func (m *Model) notifySkipped(skipped []registry.SkippedFile) {
	if len(skipped) == 0 || m.notification != nil {
		return
	}
	m.negative(fmt.Sprintf("Skipped %d unreadable file(s): %s", len(skipped), skippedNames(skipped)))
}

func noFilesMessage(dir string, skipped []registry.SkippedFile) string {
	if len(skipped) == 0 {
		return fmt.Sprintf("No save or profile files found in %s", dir)
	}
	return fmt.Sprintf("No readable save or profile files in %s, skipped %d: %s", dir, len(skipped), skippedNames(skipped))
}

func skippedNames(skipped []registry.SkippedFile) string {
	names := make([]string, len(skipped))
	for i, s := range skipped {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

func (m *Model) handleDirChosen(msg dirChosenMsg) tea.Cmd {
	if msg.cancelled {
		return nil
	}

	path, err := config.ExpandPath(msg.path)
	if err != nil || path == "" {
		m.negative(fmt.Sprintf("Invalid %s: %q", msg.target, msg.path))
		return nil
	}

	switch msg.target {
	case targetSavesDir:
		m.cfg.SavesDir = path
		m.view = ViewState{Screen: ScreenLoading}
		return tea.Batch(m.scan(path), m.saveConfig())
	case targetBackupDir:
		m.cfg.BackupDir = path
		m.positive(fmt.Sprintf("Backups will be written to %s", path))
		return m.saveConfig()
	}
	return nil
}

func (m *Model) handleSettings(msg SettingsMsg) tea.Cmd {
	switch msg.Action {
	case OpenConfigDir:
		return m.openTarget(targetConfigDir, m.cfg.ConfigDir)
	case OpenBackupDir:
		return m.openTarget(targetBackupDir, m.cfg.BackupDir)
	case OpenSavesDir:
		return m.openTarget(targetSavesDir, m.cfg.SavesDir)
	case ChangeBackupDir:
		return m.openDirPrompt(targetBackupDir)
	case ChangeSavesDir:
		return m.openDirPrompt(targetSavesDir)
	case IncreaseUIScale:
		if m.cfg.IncreaseUIScale() {
			return m.saveConfig()
		}
	case DecreaseUIScale:
		if m.cfg.DecreaseUIScale() {
			return m.saveConfig()
		}
	}
	return nil
}

func (m *Model) commitSave() tea.Cmd {
	if m.committing {
		m.logger.Info("commit ignored, another commit is in flight")
		return nil
	}
	file, ok := m.registry.Selected()
	if !ok || !file.IsSave() {
		m.negative("No save file selected")
		return nil
	}

	prep, err := m.pipeline.PrepareSave(file, m.save, m.cfg.SavesDir)
	if err != nil {
		m.commitRejected(file, err)
		return nil
	}
	return m.startCommit(prep.File, m.write(prep, "save"))
}

func (m *Model) commitProfile() tea.Cmd {
	if m.committing {
		m.logger.Info("commit ignored, another commit is in flight")
		return nil
	}
	file, ok := m.registry.Selected()
	if !ok || !file.IsProfile() {
		m.negative("No profile selected")
		return nil
	}

	prep, err := m.pipeline.PrepareProfile(file, m.profile, m.cfg.SavesDir)
	if err != nil {
		m.commitRejected(file, err)
		return nil
	}
	return m.startCommit(prep.File, m.write(prep, "profile"))
}

func (m *Model) startCommit(target types.LoadedFile, write tea.Cmd) tea.Cmd {
	m.committing = true
	m.fieldErrors = nil
	m.pending = &pendingCommit{file: target, view: m.view}
	m.logger.Info("commit started", zap.String("file", target.FileName), zap.String("domain", target.Kind.Domain()))
	return write
}

// commitRejected reports a failed prepare. Nothing was written.
func (m *Model) commitRejected(file types.LoadedFile, err error) {
	if !persist.IsCommitError(err) {
		m.logger.Error("commit could not be prepared", zap.String("file", file.FileName), zap.Error(err))
		m.fieldErrors = nil
		m.negative("Commit failed: " + describeError(err))
		return
	}
	m.logger.Warn("commit rejected", zap.String("file", file.FileName), zap.Error(err))

	m.fieldErrors = make(map[string]string)
	for _, fe := range editstate.FieldErrors(err) {
		m.fieldErrors[fe.Field] = fe.Message
	}
	m.negative(describeError(err))
}

func (m *Model) handleCommitCompleted(msg commitCompletedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("commit failed", zap.String("domain", msg.domain), zap.Error(msg.err))
		m.committing = false
		m.pending = nil
		m.negative("Commit failed: " + describeError(msg.err))
		return nil
	}

	written := msg.commit.File
	if (msg.domain == "save" && !written.IsSave()) || (msg.domain == "profile" && !written.IsProfile()) {
		err := &types.UnexpectedVariantError{Want: msg.domain, Header: written.Kind}
		m.logger.Error("commit produced a file of the wrong kind", zap.String("file", written.FileName), zap.Error(err))
		panic(err)
	}

	if m.pending == nil {
		m.pending = &pendingCommit{file: written, view: m.view}
	}
	m.pending.file = written

	switch {
	case msg.commit.InjectionErr != nil:
		m.negative(fmt.Sprintf("Saved %s, but the guardian rank was not copied to every save: %v", written.FileName, msg.commit.InjectionErr))
	case len(msg.commit.Injected) > 0:
		m.positive(fmt.Sprintf("Saved %s and copied the guardian rank to %d save(s)", written.FileName, len(msg.commit.Injected)))
	default:
		m.positive(fmt.Sprintf("Saved %s (backup %s)", written.FileName, backupNames(msg.commit.Backups)))
	}

	m.view.Screen = ScreenLoading
	return m.reload()
}

func backupNames(paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return strings.Join(names, ", ")
}

// handleFilesReloaded swaps in the rescanned files and finds the file that
// was just written. The view it was edited from is restored when found.
func (m *Model) handleFilesReloaded(msg filesReloadedMsg) tea.Cmd {
	pending := m.pending
	m.pending = nil
	m.committing = false

	if msg.err != nil {
		m.logger.Error("reload after commit failed", zap.Error(msg.err))
		m.view = ViewState{Screen: ScreenChooseDirectory}
		m.negative(describeError(msg.err))
		return nil
	}

	m.logSkipped(msg.result.Skipped)
	m.registry.Replace(msg.result.Files)

	var target types.LoadedFile
	if pending != nil {
		target = pending.file
	}
	selected, found := m.registry.Reselect(target)
	if m.registry.Len() == 0 {
		m.view = ViewState{Screen: ScreenChooseDirectory}
		m.negative(noFilesMessage(m.cfg.SavesDir, msg.result.Skipped))
		return nil
	}

	m.seed(selected)
	if found && pending != nil && pending.view.Managing() {
		m.view = pending.view
		m.clampCursor()
	} else {
		m.logger.Info("written file not found after reload, selecting first file", zap.String("file", target.FileName))
		m.view = defaultView(selected)
		m.resetCursor()
	}
	m.notifySkipped(msg.result.Skipped)
	return nil
}

func (m *Model) handleOpenDirCompleted(msg openDirCompletedMsg) {
	if msg.err != nil {
		m.logger.Warn("failed to open", zap.Stringer("target", msg.target), zap.String("path", msg.path), zap.Error(msg.err))
		m.negative(fmt.Sprintf("Could not open %s: %v", msg.target, rootCause(msg.err)))
	}
}

func (m *Model) handleConfigSaved(msg configSavedMsg) {
	if msg.err != nil {
		m.logger.Error("failed to save config", zap.Error(msg.err))
		m.negative(fmt.Sprintf("Failed to save settings: %v", msg.err))
	}
}

func (m *Model) handleLatestRelease(msg latestReleaseMsg) {
	if msg.err != nil {
		m.logger.Warn("failed to get latest release", zap.Error(msg.err))
		return
	}
	if msg.newer {
		release := msg.release
		m.latestRelease = &release
		m.logger.Info("update available", zap.String("version", release.Version()))
	}
}

func (m *Model) handleClipboard(msg clipboardMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("clipboard failed", zap.Error(msg.err))
		m.negative(fmt.Sprintf("Clipboard unavailable: %v", msg.err))
		return nil
	}

	switch msg.op {
	case clipboardCopy:
		m.positive("Copied " + msg.text)
	case clipboardPaste:
		if m.overlay == OverlayPrompt {
			m.prompt.input.SetValue(m.prompt.input.Value() + strings.TrimSpace(msg.text))
			m.prompt.input.CursorEnd()
			return nil
		}
		return m.importItem(msg.text)
	}
	return nil
}

// importItem adds a serial to the item list of the current tab
func (m *Model) importItem(serial string) tea.Cmd {
	e := Edit{Op: OpImport, Text: serial}
	switch {
	case m.view.Screen == ScreenManageSave && m.view.SaveTab == SaveTabInventory:
		e.Field = fieldInventory
		m.handleInteraction(SaveInventoryEdit{Edit: e})
	case m.view.Screen == ScreenManageProfile && m.view.ProfileTab == ProfileTabBank:
		e.Field = fieldBank
		m.handleInteraction(ProfileBankEdit{Edit: e})
	default:
		m.negative("Items can only be pasted on the Inventory or Bank tab")
		return nil
	}
	if m.notification == nil {
		m.positive("Item imported")
		m.focusLastItem()
	}
	return nil
}

// describeError turns the error taxonomy into one line for the footer
func describeError(err error) string {
	var (
		fieldErr   *editstate.ValidationError
		codecErr   *codec.CodecError
		dirErr     *registry.DirectoryError
		variantErr *types.UnexpectedVariantError
	)

	switch {
	case errors.As(err, &fieldErr):
		fields := editstate.FieldErrors(err)
		if len(fields) > 1 {
			return fmt.Sprintf("%s (and %d more invalid field(s))", fields[0].Error(), len(fields)-1)
		}
		return fieldErr.Error()
	case errors.As(err, &codecErr):
		return codecErr.Error()
	case errors.As(err, &dirErr):
		return dirErr.Error()
	case errors.As(err, &variantErr):
		return variantErr.Error()
	}
	return err.Error()
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
