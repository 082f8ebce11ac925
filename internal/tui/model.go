package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/editstate"
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/keybinds"
	"github.com/studiowebux/bl3edit/internal/persist"
	"github.com/studiowebux/bl3edit/internal/platform"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/types"
	"github.com/studiowebux/bl3edit/internal/version"
)

// Overlay is a modal drawn over the active screen
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayPrompt
	OverlayPicker
	OverlayInspect
)

// ReleaseChecker fetches the latest published release
type ReleaseChecker interface {
	Latest(ctx context.Context, current string) (version.Release, bool, error)
}

// Clipboard is the system clipboard
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// QueryStore keeps inspector query bookmarks
type QueryStore interface {
	SaveQuery(expression string) (bool, error)
	Queries() ([]history.Bookmark, error)
	DeleteQuery(id int64) error
}

// Options are the collaborators the controller drives
type Options struct {
	Config   *config.Config
	Keybinds *keybinds.Registry
	Pipeline *persist.Pipeline
	Scanner  *registry.Scanner
	Opener   platform.Opener
	Releases ReleaseChecker
	Clip     Clipboard
	Queries  QueryStore
	Logger   *zap.Logger
	Version  string
}

// pendingCommit remembers where the user was when a commit started
type pendingCommit struct {
	file types.LoadedFile
	view ViewState
}

// Model is the application controller. All state is mutated from Update only.
type Model struct {
	// Collaborators
	cfg      *config.Config
	keybinds *keybinds.Registry
	pipeline *persist.Pipeline
	scanner  *registry.Scanner
	opener   platform.Opener
	releases ReleaseChecker
	clip     Clipboard
	queries  QueryStore
	logger   *zap.Logger
	version  string

	// Core state
	view         ViewState
	registry     *registry.Registry
	save         editstate.SaveState
	profile      editstate.ProfileState
	notification *Notification

	// Commit lifecycle
	committing  bool
	pending     *pendingCommit
	fieldErrors map[string]string

	// Release notice
	latestRelease *version.Release

	// UI state
	overlay    Overlay
	fieldIndex int
	width      int
	height     int

	// Overlays
	prompt  promptState
	picker  pickerState
	inspect inspectState
}

// New creates the controller. Missing collaborators get working defaults
// except Config, Pipeline and Scanner, which are required.
func New(opts Options) *Model {
	m := &Model{
		cfg:      opts.Config,
		keybinds: opts.Keybinds,
		pipeline: opts.Pipeline,
		scanner:  opts.Scanner,
		opener:   opts.Opener,
		releases: opts.Releases,
		clip:     opts.Clip,
		queries:  opts.Queries,
		logger:   opts.Logger,
		version:  opts.Version,
		view:     ViewState{Screen: ScreenInitializing},
		registry: registry.New(),
		width:    100,
		height:   30,
	}
	if m.keybinds == nil {
		m.keybinds = keybinds.NewDefaultRegistry()
	}
	if m.opener == nil {
		m.opener = platform.System
	}
	if m.releases == nil {
		m.releases = version.NewChecker()
	}
	if m.clip == nil {
		m.clip = systemClipboard{}
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	m.prompt.input = textinput.New()
	m.picker.input = textinput.New()
	m.picker.input.Placeholder = "filter files"
	m.inspect.query = textinput.New()
	m.inspect.query.Placeholder = "JMESPath query, e.g. model.character"
	m.inspect.view = viewport.New(80, 20)

	return m
}

// Init starts the startup checks
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.initialize(), m.checkLatestRelease())
}

// ViewState returns the active screen and tabs
func (m *Model) ViewState() ViewState { return m.view }

// Notification returns the current notification, nil when cleared
func (m *Model) Notification() *Notification { return m.notification }

// Registry returns the loaded files
func (m *Model) Registry() *registry.Registry { return m.registry }

// Update is the single dispatch point for user input and async completions
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Mouse input is ignored

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeOverlays()

	case Interaction:
		return m, m.handleInteraction(msg)

	case initializedMsg:
		return m, m.handleInitialized(msg)
	case filesLoadedMsg:
		return m, m.handleFilesLoaded(msg)
	case dirChosenMsg:
		return m, m.handleDirChosen(msg)
	case commitCompletedMsg:
		return m, m.handleCommitCompleted(msg)
	case filesReloadedMsg:
		return m, m.handleFilesReloaded(msg)
	case openDirCompletedMsg:
		m.handleOpenDirCompleted(msg)
	case configSavedMsg:
		m.handleConfigSaved(msg)
	case latestReleaseMsg:
		m.handleLatestRelease(msg)
	case clipboardMsg:
		return m, m.handleClipboard(msg)
	case querySavedMsg:
		return m, m.handleQuerySaved(msg)
	case queryDeletedMsg:
		return m, m.handleQueryDeleted(msg)
	case queriesLoadedMsg:
		m.handleQueriesLoaded(msg)
	}

	return m, nil
}

// View renders the TUI
func (m *Model) View() string {
	switch m.overlay {
	case OverlayPrompt:
		return m.renderPrompt()
	case OverlayPicker:
		return m.renderPicker()
	case OverlayInspect:
		return m.renderInspect()
	}
	return m.renderMain()
}

func (m *Model) notify(sentiment Sentiment, message string) {
	m.notification = &Notification{Message: message, Sentiment: sentiment}
}

func (m *Model) positive(message string) { m.notify(Positive, message) }
func (m *Model) negative(message string) { m.notify(Negative, message) }
