package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/bl3edit/internal/codec"
	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/persist"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/types"
	"github.com/studiowebux/bl3edit/internal/version"
)

// TestFixedTime is the clock of pipelines built by CreateTestModel
var TestFixedTime = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

// FakeOpener records what would have been opened
type FakeOpener struct {
	mu     sync.Mutex
	Opened []string
	Err    error
}

func (o *FakeOpener) Open(target string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Opened = append(o.Opened, target)
	return o.Err
}

// FakeReleases returns a fixed release
type FakeReleases struct {
	Release version.Release
	Newer   bool
	Err     error
}

func (r *FakeReleases) Latest(ctx context.Context, current string) (version.Release, bool, error) {
	return r.Release, r.Newer, r.Err
}

// FakeClipboard is an in-memory clipboard
type FakeClipboard struct {
	mu   sync.Mutex
	Text string
	Err  error
}

func (c *FakeClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Text, c.Err
}

func (c *FakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}

// FakeQueryStore keeps bookmarks in memory
type FakeQueryStore struct {
	mu      sync.Mutex
	Entries []history.Bookmark
	Err     error
}

func (q *FakeQueryStore) SaveQuery(expression string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return false, q.Err
	}
	for _, b := range q.Entries {
		if b.Expression == expression {
			return false, nil
		}
	}
	var id int64
	for _, b := range q.Entries {
		id = max(id, b.ID)
	}
	q.Entries = append(q.Entries, history.Bookmark{ID: id + 1, Expression: expression, CreatedAt: TestFixedTime})
	return true, nil
}

func (q *FakeQueryStore) DeleteQuery(id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	for i, b := range q.Entries {
		if b.ID == id {
			q.Entries = append(q.Entries[:i], q.Entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bookmark not found")
}

func (q *FakeQueryStore) Queries() ([]history.Bookmark, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]history.Bookmark(nil), q.Entries...), q.Err
}

// TestEnv is a model wired to temporary directories and fakes
type TestEnv struct {
	Model     *Model
	Config    *config.Config
	SavesDir  string
	BackupDir string
	Opener    *FakeOpener
	Releases  *FakeReleases
	Clipboard *FakeClipboard
	Queries   *FakeQueryStore
}

// CreateTestModel creates a Model whose saves, backup and config directories
// live under t.TempDir(). The saves directory exists but is empty.
func CreateTestModel(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default(filepath.Join(root, "config"))
	cfg.SavesDir = filepath.Join(root, "saves")
	cfg.BackupDir = filepath.Join(root, "backups")
	if err := os.MkdirAll(cfg.SavesDir, config.DirPermissions); err != nil {
		t.Fatalf("Failed to create saves directory: %v", err)
	}

	env := &TestEnv{
		Config:    cfg,
		SavesDir:  cfg.SavesDir,
		BackupDir: cfg.BackupDir,
		Opener:    &FakeOpener{},
		Releases:  &FakeReleases{},
		Clipboard: &FakeClipboard{},
		Queries:   &FakeQueryStore{},
	}

	bin := codec.NewBinary()
	env.Model = New(Options{
		Config:   cfg,
		Pipeline: persist.New(bin, persist.WithClock(func() time.Time { return TestFixedTime })),
		Scanner:  registry.NewScanner(bin, registry.Options{Workers: 2}),
		Opener:   env.Opener,
		Releases: env.Releases,
		Clip:     env.Clipboard,
		Queries:  env.Queries,
		Version:  "1.0.0",
	})
	return env
}

// WriteTestSave writes a PC save at level into the saves directory and
// returns its bytes
func (e *TestEnv) WriteTestSave(t *testing.T, name string, level int) []byte {
	t.Helper()
	f, err := types.NewSaveFile(name, &types.SaveModel{
		Header: types.HeaderPcSave,
		GUID:   "0123456789ABCDEF0123456789ABCDEF",
		Slot:   1,
		Character: types.Character{
			Name:             name,
			ExperiencePoints: types.RequiredXP(level),
			PlayerClass:      types.ClassSiren,
			HeadSkin:         "Default",
			CharacterSkin:    "Default",
			EchoTheme:        "Default",
		},
	})
	if err != nil {
		t.Fatalf("Failed to build save: %v", err)
	}
	return e.writeTestFile(t, f)
}

// WriteTestProfile writes an empty PC profile into the saves directory
func (e *TestEnv) WriteTestProfile(t *testing.T, name string) []byte {
	t.Helper()
	f, err := types.NewProfileFile(name, &types.ProfileModel{Header: types.HeaderPcProfile})
	if err != nil {
		t.Fatalf("Failed to build profile: %v", err)
	}
	return e.writeTestFile(t, f)
}

func (e *TestEnv) writeTestFile(t *testing.T, f types.LoadedFile) []byte {
	t.Helper()
	data, _, err := codec.NewBinary().Serialize(f)
	if err != nil {
		t.Fatalf("Failed to serialize %s: %v", f.FileName, err)
	}
	if err := os.WriteFile(filepath.Join(e.SavesDir, f.FileName), data, config.FilePermissions); err != nil {
		t.Fatalf("Failed to write %s: %v", f.FileName, err)
	}
	return data
}

// Start runs Init and every command it leads to
func (e *TestEnv) Start(t *testing.T) {
	t.Helper()
	Drive(t, e.Model, e.Model.Init())
}

// Drive runs cmd and feeds each message back into Update until no commands
// remain. Commands from focused text inputs block on the cursor blink and
// must not be passed in.
func Drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("Drive: too many commands")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

// Key builds a key press from its string form
func Key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
