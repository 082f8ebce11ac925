package tui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/types"
)

func loadedEnv(t *testing.T) *TestEnv {
	t.Helper()
	env := CreateTestModel(t)
	env.WriteTestSave(t, "save1.sav", 10)
	env.WriteTestSave(t, "save2.sav", 20)
	env.Start(t)
	return env
}

func readLevel(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := codec.NewBinary().Parse(filepath.Base(path), data)
	if err != nil {
		t.Fatal(err)
	}
	level, err := types.LevelForXP(f.Save.Character.ExperiencePoints)
	if err != nil {
		t.Fatal(err)
	}
	return level
}

func TestCommit_LevelChangeIsWrittenAndReselected(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	original, err := os.ReadFile(filepath.Join(env.SavesDir, "save2.sav"))
	if err != nil {
		t.Fatal(err)
	}

	selectByName(t, m, "save2.sav")
	m.Update(SaveTabSelected{Tab: SaveTabCharacter})
	m.Update(SaveCharacterEdit{Edit: Edit{Field: fieldLevel, Op: OpSet, Text: "50"}})

	_, cmd := m.Update(CommitSavePressed{})
	AssertModelField(t, "committing", m.committing, true)
	Drive(t, m, cmd)

	AssertModelField(t, "committing", m.committing, false)
	AssertModelField(t, "view", m.ViewState(), manageSave(SaveTabCharacter))
	selected, _ := m.Registry().Selected()
	AssertModelField(t, "selected", selected.FileName, "save2.sav")
	AssertModelField(t, "save.Character.Level", m.save.Character.Level, 50)
	requireNotification(t, m, Positive, "Saved save2.sav")

	AssertModelField(t, "written level", readLevel(t, filepath.Join(env.SavesDir, "save2.sav")), 50)
	AssertModelField(t, "untouched level", readLevel(t, filepath.Join(env.SavesDir, "save1.sav")), 10)

	backups, err := os.ReadDir(env.BackupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("backups = %d, want 1", len(backups))
	}
	backup, err := os.ReadFile(filepath.Join(env.BackupDir, backups[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(backup, original) {
		t.Error("backup does not hold the pre-edit bytes")
	}
}

func TestCommit_OutOfRangeLevelIsRejected(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	path := filepath.Join(env.SavesDir, "save1.sav")
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	m.Update(SaveTabSelected{Tab: SaveTabCharacter})
	m.Update(SaveCharacterEdit{Edit: Edit{Field: fieldLevel, Op: OpSet, Text: "500"}})
	_, cmd := m.Update(CommitSavePressed{})

	if cmd != nil {
		t.Error("a rejected commit must not start a write")
	}
	AssertModelField(t, "committing", m.committing, false)
	requireNotification(t, m, Negative, "character.level")
	if _, ok := m.fieldErrors["character.level"]; !ok {
		t.Errorf("fieldErrors = %v, want character.level", m.fieldErrors)
	}
	if !strings.Contains(m.View(), "must be between") {
		t.Error("field error not rendered next to the field")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(after, original) {
		t.Error("file changed after a rejected commit")
	}
	if _, err := os.Stat(env.BackupDir); !os.IsNotExist(err) {
		t.Errorf("backup directory created: %v", err)
	}
}

func TestCommit_SettingsChangeDuringReload(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	selectByName(t, m, "save2.sav")
	m.Update(SaveTabSelected{Tab: SaveTabCurrency})
	m.Update(SaveCurrencyEdit{Edit: Edit{Field: fieldMoney, Op: OpSet, Text: "1000"}})

	_, write := m.Update(CommitSavePressed{})
	_, reload := m.Update(write())
	AssertModelField(t, "Screen while reloading", m.ViewState().Screen, ScreenLoading)

	_, save := m.Update(SettingsMsg{Action: IncreaseUIScale})
	AssertModelField(t, "UIScaleFactor", env.Config.UIScaleFactor, 1.05)
	Drive(t, m, save)

	Drive(t, m, reload)

	AssertModelField(t, "UIScaleFactor after reload", env.Config.UIScaleFactor, 1.05)
	AssertModelField(t, "view", m.ViewState(), manageSave(SaveTabCurrency))
	selected, _ := m.Registry().Selected()
	AssertModelField(t, "selected", selected.FileName, "save2.sav")
	AssertModelField(t, "Money", m.save.Currency.Money, int32(1000))

	stored, err := config.Load(env.Config.ConfigDir)
	AssertNoError(t, err)
	AssertModelField(t, "stored UIScaleFactor", stored.UIScaleFactor, 1.05)
}

func TestCommit_IgnoredWhileInFlight(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	_, first := m.Update(CommitSavePressed{})
	if first == nil {
		t.Fatal("first commit did not start")
	}
	_, second := m.Update(CommitSavePressed{})
	if second != nil {
		t.Error("second commit started while the first is in flight")
	}
	AssertModelField(t, "committing", m.committing, true)

	Drive(t, m, first)
	AssertModelField(t, "committing", m.committing, false)
}

func TestCommit_WriteFailureKeepsEditing(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	// Slot 10 is written to a.sav, which is occupied by a directory
	if err := os.MkdirAll(filepath.Join(env.SavesDir, "a.sav", "keep"), config.DirPermissions); err != nil {
		t.Fatal(err)
	}
	m.Update(SaveGeneralEdit{Edit: Edit{Field: fieldSlot, Op: OpSet, Text: "10"}})
	before := m.ViewState()

	_, cmd := m.Update(CommitSavePressed{})
	AssertModelField(t, "committing", m.committing, true)
	Drive(t, m, cmd)

	AssertModelField(t, "committing", m.committing, false)
	AssertModelField(t, "view", m.ViewState(), before)
	if m.pending != nil {
		t.Error("pending commit kept after a failed write")
	}
	requireNotification(t, m, Negative, "Commit failed: write failed")
	AssertModelField(t, "edited slot kept", m.save.General.Slot, 10)

	backups, err := os.ReadDir(env.BackupDir)
	if err != nil {
		t.Fatal(err)
	}
	AssertModelField(t, "backups", len(backups), 1)
}

func TestCommit_ReloadFailureReturnsToChooseDirectory(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	m.Update(SaveTabSelected{Tab: SaveTabCurrency})
	m.Update(SaveCurrencyEdit{Edit: Edit{Field: fieldMoney, Op: OpSet, Text: "1000"}})

	_, write := m.Update(CommitSavePressed{})
	_, reload := m.Update(write())
	AssertModelField(t, "Screen while reloading", m.ViewState().Screen, ScreenLoading)

	if err := os.RemoveAll(env.SavesDir); err != nil {
		t.Fatal(err)
	}
	Drive(t, m, reload)

	AssertModelField(t, "committing", m.committing, false)
	AssertModelField(t, "Screen", m.ViewState().Screen, ScreenChooseDirectory)
	if m.pending != nil {
		t.Error("pending commit kept after a failed reload")
	}
	requireNotification(t, m, Negative, "scan failed")
}

func TestCommit_PrepareFailureOutsideValidation(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	file, _ := m.Registry().Selected()
	m.fieldErrors = map[string]string{"character.level": "stale"}

	m.commitRejected(file, &types.UnexpectedVariantError{Want: "profile", Header: file.Kind})

	requireNotification(t, m, Negative, "Commit failed")
	if len(m.fieldErrors) != 0 {
		t.Errorf("fieldErrors = %v, want none for a non-validation failure", m.fieldErrors)
	}
	AssertModelField(t, "committing", m.committing, false)
}

func TestCommit_ProfileFromKeyboard(t *testing.T) {
	env := CreateTestModel(t)
	env.WriteTestProfile(t, "profile.sav")
	env.Start(t)
	m := env.Model

	m.Update(ProfileTabSelected{Tab: ProfileTabKeys})
	m.Update(ProfileKeysEdit{Edit: Edit{Field: fieldGoldenKeys, Op: OpSet, Text: "99"}})
	press(t, m, "ctrl+s")

	AssertModelField(t, "view", m.ViewState(), manageProfile(ProfileTabKeys))
	AssertModelField(t, "Golden", m.profile.Keys.Golden, int32(99))
	requireNotification(t, m, Positive, "Saved profile.sav")
}

func TestCommit_NothingSelected(t *testing.T) {
	env := CreateTestModel(t)
	env.Start(t)

	_, cmd := env.Model.Update(CommitSavePressed{})
	if cmd != nil {
		t.Error("commit started without a selection")
	}
	requireNotification(t, env.Model, Negative, "No save file selected")
}

func TestSelectFile_TabTransitions(t *testing.T) {
	env := CreateTestModel(t)
	env.WriteTestProfile(t, "profile.sav")
	env.WriteTestSave(t, "save1.sav", 10)
	env.WriteTestSave(t, "save2.sav", 20)
	env.Start(t)
	m := env.Model

	selectByName(t, m, "save1.sav")
	AssertModelField(t, "view after switching domain", m.ViewState(), manageSave(SaveTabGeneral))

	m.Update(SaveTabSelected{Tab: SaveTabVehicle})
	selectByName(t, m, "save2.sav")
	AssertModelField(t, "view within the domain", m.ViewState(), manageSave(SaveTabVehicle))
	AssertModelField(t, "seeded name", m.save.Character.Name, "save2.sav")

	selectByName(t, m, "profile.sav")
	AssertModelField(t, "view back to profile", m.ViewState(), manageProfile(ProfileTabGeneral))

	m.Update(SaveTabSelected{Tab: SaveTabCurrency})
	AssertModelField(t, "save tab ignored on profile", m.ViewState(), manageProfile(ProfileTabGeneral))
}

func TestKeys_TabCycling(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	press(t, m, "tab")
	AssertModelField(t, "after tab", m.ViewState().Tab(), "Character")
	press(t, m, "shift+tab")
	press(t, m, "shift+tab")
	AssertModelField(t, "after wrapping back", m.ViewState().Tab(), "Settings")
	press(t, m, "]")
	AssertModelField(t, "after ]", m.ViewState().Tab(), "General")
}

func TestKeys_FieldEditing(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	m.Update(SaveTabSelected{Tab: SaveTabCharacter})

	press(t, m, "down")
	f, ok := m.currentField()
	if !ok || f.id != fieldLevel {
		t.Fatalf("current field = %+v, want level", f)
	}

	press(t, m, "right")
	AssertModelField(t, "Level after right", m.save.Character.Level, 11)
	press(t, m, "m")
	AssertModelField(t, "Level after max", m.save.Character.Level, types.MaxLevel)

	press(t, m, "enter")
	AssertModelField(t, "overlay", m.overlay, OverlayPrompt)
	AssertModelField(t, "prompt seed", m.prompt.input.Value(), "72")
	m.prompt.input.SetValue("30")
	press(t, m, "enter")
	AssertModelField(t, "overlay after submit", m.overlay, OverlayNone)
	AssertModelField(t, "Level after prompt", m.save.Character.Level, 30)

	press(t, m, "enter")
	m.prompt.input.SetValue("99")
	press(t, m, "esc")
	AssertModelField(t, "Level after cancel", m.save.Character.Level, 30)

	press(t, m, "enter")
	m.prompt.input.SetValue("abc")
	press(t, m, "enter")
	requireNotification(t, m, Negative, "not a whole number")
	AssertModelField(t, "Level after bad input", m.save.Character.Level, 30)
}

func TestNotification_ClearedByNextInteraction(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	m.negative("something went wrong")
	m.Update(SaveTabSelected{Tab: SaveTabCharacter})
	if m.Notification() != nil {
		t.Error("interaction did not clear the notification")
	}

	m.positive("done")
	press(t, m, "esc")
	if m.Notification() != nil {
		t.Error("dismiss did not clear the notification")
	}

	for _, key := range []string{"down", "up"} {
		m.negative("something went wrong")
		press(t, m, key)
		if m.Notification() != nil {
			t.Errorf("moving the cursor with %s did not clear the notification", key)
		}
	}
}

func TestSettings_UIScale(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	m.Update(SaveTabSelected{Tab: SaveTabSettings})

	for range 5 {
		press(t, m, "down")
	}
	f, _ := m.currentField()
	AssertModelField(t, "current field", f.label, "UI scale")

	press(t, m, "right")
	AssertModelField(t, "UIScaleFactor", env.Config.UIScaleFactor, 1.05)

	env.Config.UIScaleFactor = config.MaxUIScale
	_, cmd := m.Update(SettingsMsg{Action: IncreaseUIScale})
	if cmd != nil {
		t.Error("saving config at the upper bound")
	}
	AssertModelField(t, "UIScaleFactor at max", env.Config.UIScaleFactor, config.MaxUIScale)

	env.Config.UIScaleFactor = config.MinUIScale
	m.Update(SettingsMsg{Action: DecreaseUIScale})
	AssertModelField(t, "UIScaleFactor at min", env.Config.UIScaleFactor, config.MinUIScale)
}

func TestSettings_OpenDirectories(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	m.Update(SaveTabSelected{Tab: SaveTabSettings})

	press(t, m, "enter")
	if len(env.Opener.Opened) != 1 || env.Opener.Opened[0] != env.SavesDir {
		t.Errorf("Opened = %v, want the saves directory", env.Opener.Opened)
	}

	// The backup directory does not exist until the first commit
	_, cmd := m.Update(SettingsMsg{Action: OpenBackupDir})
	Drive(t, m, cmd)
	requireNotification(t, m, Negative, "Could not open backup directory")
	AssertModelField(t, "opened", len(env.Opener.Opened), 1)
}

func TestChooseDirectory_Prompt(t *testing.T) {
	env := CreateTestModel(t)
	env.Config.SavesDir = ""
	env.Start(t)
	m := env.Model

	other := t.TempDir()
	env.WriteTestSave(t, "1.sav", 10)
	if err := os.Rename(filepath.Join(env.SavesDir, "1.sav"), filepath.Join(other, "1.sav")); err != nil {
		t.Fatal(err)
	}

	m.Update(Key("o"))
	AssertModelField(t, "overlay", m.overlay, OverlayPrompt)
	m.prompt.input.SetValue(other)
	press(t, m, "enter")

	AssertModelField(t, "SavesDir", env.Config.SavesDir, other)
	AssertModelField(t, "Screen", m.ViewState().Screen, ScreenManageSave)
	AssertModelField(t, "Registry().Len()", m.Registry().Len(), 1)

	stored, err := config.Load(env.Config.ConfigDir)
	AssertNoError(t, err)
	AssertModelField(t, "stored SavesDir", stored.SavesDir, other)
}

func TestChooseDirectory_CancelKeepsScreen(t *testing.T) {
	env := CreateTestModel(t)
	env.Config.SavesDir = ""
	env.Start(t)
	m := env.Model

	m.Update(Key("enter"))
	press(t, m, "esc")

	AssertModelField(t, "overlay", m.overlay, OverlayNone)
	AssertModelField(t, "Screen", m.ViewState().Screen, ScreenChooseDirectory)
	AssertModelField(t, "SavesDir", env.Config.SavesDir, "")
}

func TestChangeBackupDir(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	target := filepath.Join(t.TempDir(), "elsewhere")

	Drive(t, m, func() tea.Msg { return dirChosenMsg{target: targetBackupDir, path: target} })

	AssertModelField(t, "BackupDir", env.Config.BackupDir, target)
	requireNotification(t, m, Positive, target)
}

func TestPicker_SelectsFile(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	m.Update(Key("f"))
	AssertModelField(t, "overlay", m.overlay, OverlayPicker)
	AssertModelField(t, "matches", len(m.picker.matches), 2)

	press(t, m, "down")
	press(t, m, "enter")

	AssertModelField(t, "overlay after select", m.overlay, OverlayNone)
	selected, _ := m.Registry().Selected()
	AssertModelField(t, "selected", selected.FileName, "save2.sav")
}

func TestPicker_Filter(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	m.Update(Key("f"))
	m.picker.input.SetValue("ave2")
	m.filterPicker()
	if len(m.picker.matches) == 0 || m.picker.matches[0].FileName != "save2.sav" {
		t.Errorf("matches = %v", m.picker.matches)
	}

	press(t, m, "esc")
	AssertModelField(t, "overlay", m.overlay, OverlayNone)
}

func TestInspect_ShowsModel(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	press(t, m, "i")
	AssertModelField(t, "overlay", m.overlay, OverlayInspect)
	if !strings.Contains(m.View(), "save1.sav") {
		t.Error("inspect view does not show the selected file")
	}

	m.inspect.query.SetValue("model.character.name")
	m.refreshInspect()
	AssertModelField(t, "inspect error", m.inspect.err, "")

	m.inspect.query.SetValue("model.[")
	m.refreshInspect()
	if m.inspect.err == "" {
		t.Error("invalid query not reported")
	}

	press(t, m, "esc")
	AssertModelField(t, "overlay after close", m.overlay, OverlayNone)
}

func TestInspect_Bookmarks(t *testing.T) {
	env := loadedEnv(t)
	env.Queries.Entries = []history.Bookmark{{ID: 1, Expression: "model.currency"}}
	m := env.Model

	press(t, m, "i")
	AssertModelField(t, "loaded bookmarks", len(m.inspect.bookmarks), 1)

	m.inspect.query.SetValue("model.character.name")
	press(t, m, "b")
	requireNotification(t, m, Positive, "Query bookmarked")
	AssertModelField(t, "stored bookmarks", len(env.Queries.Entries), 2)

	press(t, m, "b")
	requireNotification(t, m, Positive, "already bookmarked")
	AssertModelField(t, "stored bookmarks", len(env.Queries.Entries), 2)

	press(t, m, "n")
	AssertModelField(t, "first bookmark", m.inspect.query.Value(), "model.currency")
	press(t, m, "n")
	AssertModelField(t, "second bookmark", m.inspect.query.Value(), "model.character.name")
	press(t, m, "n")
	AssertModelField(t, "wrapped bookmark", m.inspect.query.Value(), "model.currency")
	AssertModelField(t, "inspect error", m.inspect.err, "")

	press(t, m, "x")
	requireNotification(t, m, Positive, "Bookmark model.currency removed")
	AssertModelField(t, "stored bookmarks after delete", len(env.Queries.Entries), 1)
	AssertModelField(t, "remaining bookmark", env.Queries.Entries[0].Expression, "model.character.name")
	AssertModelField(t, "loaded bookmarks after delete", len(m.inspect.bookmarks), 1)

	press(t, m, "x")
	requireNotification(t, m, Negative, "No bookmark selected")
	AssertModelField(t, "stored bookmarks", len(env.Queries.Entries), 1)
}

func TestInspect_BookmarkErrors(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	press(t, m, "i")
	press(t, m, "n")
	requireNotification(t, m, Negative, "No bookmarked queries")

	press(t, m, "b")
	requireNotification(t, m, Negative, "Nothing to bookmark")

	m.queries = nil
	m.inspect.query.SetValue("model")
	press(t, m, "b")
	requireNotification(t, m, Negative, "unavailable")
}

func TestInspect_DeleteBookmarkFailure(t *testing.T) {
	env := loadedEnv(t)
	env.Queries.Entries = []history.Bookmark{{ID: 7, Expression: "model.currency"}}
	m := env.Model

	press(t, m, "i")
	press(t, m, "n")
	env.Queries.Err = errors.New("database is locked")
	press(t, m, "x")
	requireNotification(t, m, Negative, "Failed to delete bookmark: database is locked")
	AssertModelField(t, "loaded bookmarks", len(m.inspect.bookmarks), 1)
}

func TestClipboard_CopyPath(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model

	press(t, m, "y")
	AssertModelField(t, "clipboard", env.Clipboard.Text, filepath.Join(env.SavesDir, "save1.sav"))
	requireNotification(t, m, Positive, "Copied")
}

func TestClipboard_PasteItem(t *testing.T) {
	env := loadedEnv(t)
	m := env.Model
	m.Update(SaveTabSelected{Tab: SaveTabInventory})

	env.Clipboard.Text = "AAAA"
	press(t, m, "p")
	AssertModelField(t, "inventory", len(m.save.Inventory.Entries), 1)
	requireNotification(t, m, Positive, "Item imported")

	f, ok := m.currentField()
	if !ok || f.kind != fieldItem {
		t.Fatalf("current field = %+v, want the imported item", f)
	}
	press(t, m, "d")
	AssertModelField(t, "inventory after remove", len(m.save.Inventory.Entries), 0)

	env.Clipboard.Text = "not base64!"
	press(t, m, "p")
	AssertModelField(t, "inventory after bad paste", len(m.save.Inventory.Entries), 0)
	requireNotification(t, m, Negative, "base64")
}

func TestClipboard_PasteOutsideItemTabs(t *testing.T) {
	env := loadedEnv(t)
	env.Clipboard.Text = "AAAA"
	press(t, env.Model, "p")
	requireNotification(t, env.Model, Negative, "Inventory or Bank")
}
