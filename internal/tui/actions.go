package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/bl3edit/internal/persist"
	"github.com/studiowebux/bl3edit/internal/platform"
)

// Commands capture what they need when they are created. They never touch
// the model; results come back as messages.

// initialize checks the remembered saves directory
func (m *Model) initialize() tea.Cmd {
	dir := m.cfg.SavesDir
	return func() tea.Msg {
		if dir == "" {
			return initializedMsg{}
		}
		info, err := os.Stat(dir)
		if err == nil && !info.IsDir() {
			err = fmt.Errorf("%s is not a directory", dir)
		}
		return initializedMsg{dir: dir, err: err}
	}
}

// scan loads every recognized file in dir
func (m *Model) scan(dir string) tea.Cmd {
	scanner := m.scanner
	return func() tea.Msg {
		result, err := scanner.Load(context.Background(), dir)
		return filesLoadedMsg{dir: dir, result: result, err: err}
	}
}

// write runs the disk half of a commit
func (m *Model) write(prep *persist.Prepared, domain string) tea.Cmd {
	pipeline := m.pipeline
	backupDir := m.cfg.BackupDir
	return func() tea.Msg {
		commit, err := pipeline.Write(context.Background(), prep, backupDir)
		return commitCompletedMsg{domain: domain, commit: commit, err: err}
	}
}

// reload rescans the saves directory after a commit
func (m *Model) reload() tea.Cmd {
	pipeline := m.pipeline
	dir := m.cfg.SavesDir
	return func() tea.Msg {
		result, err := pipeline.Reload(context.Background(), dir)
		return filesReloadedMsg{result: result, err: err}
	}
}

// saveConfig persists a snapshot of the config. Failures are reported but
// not retried.
func (m *Model) saveConfig() tea.Cmd {
	snapshot := m.cfg.Clone()
	return func() tea.Msg {
		if err := snapshot.Initialize(); err != nil {
			return configSavedMsg{err: err}
		}
		return configSavedMsg{err: snapshot.Save()}
	}
}

// openTarget hands a directory or the release page to the desktop
func (m *Model) openTarget(target dirTarget, path string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		var err error
		switch {
		case path == "":
			err = fmt.Errorf("no %s configured", target)
		case target == targetReleasePage:
			err = opener.Open(path)
		default:
			err = platform.OpenDir(opener, path)
		}
		return openDirCompletedMsg{target: target, path: path, err: err}
	}
}

func (m *Model) checkLatestRelease() tea.Cmd {
	releases := m.releases
	current := m.version
	return func() tea.Msg {
		release, newer, err := releases.Latest(context.Background(), current)
		return latestReleaseMsg{release: release, newer: newer, err: err}
	}
}

// copyPath copies the selected file's path to the clipboard
func (m *Model) copyPath() tea.Cmd {
	file, ok := m.registry.Selected()
	if !ok {
		m.negative("No file selected")
		return nil
	}
	target := filepath.Join(m.cfg.SavesDir, file.FileName)
	clip := m.clip
	return func() tea.Msg {
		return clipboardMsg{op: clipboardCopy, text: target, err: clip.WriteAll(target)}
	}
}

// pasteClipboard reads the clipboard for an item import or the open prompt
func (m *Model) pasteClipboard() tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		text, err := clip.ReadAll()
		return clipboardMsg{op: clipboardPaste, text: text, err: err}
	}
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
