package tui

import (
	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/persist"
	"github.com/studiowebux/bl3edit/internal/registry"
	"github.com/studiowebux/bl3edit/internal/types"
	"github.com/studiowebux/bl3edit/internal/version"
)

// Sentiment colours a notification
type Sentiment int

const (
	Positive Sentiment = iota
	Negative
)

// Notification is the single transient message shown in the footer
type Notification struct {
	Message   string
	Sentiment Sentiment
}

// Interaction is a message caused by the user. Handling one clears the
// current notification first.
type Interaction interface {
	isInteraction()
}

type interaction struct{}

func (interaction) isInteraction() {}

type (
	ChooseDirPressed     struct{ interaction }
	RefreshPressed       struct{ interaction }
	CommitSavePressed    struct{ interaction }
	CommitProfilePressed struct{ interaction }
	UpdatePressed        struct{ interaction }
	DismissNotification  struct{ interaction }
	InspectPressed       struct{ interaction }
	CopyPathPressed      struct{ interaction }
	PasteItemPressed     struct{ interaction }
)

// FileSelected picks a file from the registry
type FileSelected struct {
	interaction
	File types.LoadedFile
}

// SaveTabSelected switches tabs while a save is managed
type SaveTabSelected struct {
	interaction
	Tab SaveTab
}

// ProfileTabSelected switches tabs while a profile is managed
type ProfileTabSelected struct {
	interaction
	Tab ProfileTab
}

// EditOp is what an edit does to its field
type EditOp int

const (
	OpStep     EditOp = iota // add Delta
	OpSet                    // parse Text
	OpToggle                 // flip a flag
	OpMax                    // raise to the field's maximum
	OpGenerate               // replace with a generated value
	OpImport                 // append an item from Text
	OpRemove                 // delete the item at Index
)

// Edit addresses one field of an editable state. Field is the name used by
// validation errors; Index picks an element of array fields.
type Edit struct {
	Field string
	Index int
	Op    EditOp
	Delta int
	Text  string
}

// SaveEdit changes the editable save state. Each variant targets one tab.
type SaveEdit interface {
	Interaction
	saveEdit() Edit
}

type (
	SaveGeneralEdit struct {
		interaction
		Edit
	}
	SaveCharacterEdit struct {
		interaction
		Edit
	}
	SaveInventoryEdit struct {
		interaction
		Edit
	}
	SaveCurrencyEdit struct {
		interaction
		Edit
	}
	SaveVehicleEdit struct {
		interaction
		Edit
	}
)

func (e SaveGeneralEdit) saveEdit() Edit   { return e.Edit }
func (e SaveCharacterEdit) saveEdit() Edit { return e.Edit }
func (e SaveInventoryEdit) saveEdit() Edit { return e.Edit }
func (e SaveCurrencyEdit) saveEdit() Edit  { return e.Edit }
func (e SaveVehicleEdit) saveEdit() Edit   { return e.Edit }

// ProfileEdit changes the editable profile state
type ProfileEdit interface {
	Interaction
	profileEdit() Edit
}

type (
	ProfileGeneralEdit struct {
		interaction
		Edit
	}
	ProfileProfileEdit struct {
		interaction
		Edit
	}
	ProfileKeysEdit struct {
		interaction
		Edit
	}
	ProfileBankEdit struct {
		interaction
		Edit
	}
)

func (e ProfileGeneralEdit) profileEdit() Edit { return e.Edit }
func (e ProfileProfileEdit) profileEdit() Edit { return e.Edit }
func (e ProfileKeysEdit) profileEdit() Edit    { return e.Edit }
func (e ProfileBankEdit) profileEdit() Edit    { return e.Edit }

// SettingsAction is one of the settings tab buttons
type SettingsAction int

const (
	OpenConfigDir SettingsAction = iota
	OpenBackupDir
	OpenSavesDir
	ChangeBackupDir
	ChangeSavesDir
	IncreaseUIScale
	DecreaseUIScale
)

// SettingsMsg is a settings tab interaction
type SettingsMsg struct {
	interaction
	Action SettingsAction
}

// dirTarget names the directory a prompt or opener works on
type dirTarget int

const (
	targetSavesDir dirTarget = iota
	targetBackupDir
	targetConfigDir
	targetReleasePage
)

func (d dirTarget) String() string {
	switch d {
	case targetSavesDir:
		return "saves directory"
	case targetBackupDir:
		return "backup directory"
	case targetConfigDir:
		return "config directory"
	case targetReleasePage:
		return "release page"
	}
	return "directory"
}

// Completions of asynchronous commands

type initializedMsg struct {
	dir string
	err error
}

type filesLoadedMsg struct {
	dir    string
	result registry.Result
	err    error
}

type dirChosenMsg struct {
	target    dirTarget
	path      string
	cancelled bool
}

type commitCompletedMsg struct {
	domain string
	commit persist.Commit
	err    error
}

type filesReloadedMsg struct {
	result registry.Result
	err    error
}

type openDirCompletedMsg struct {
	target dirTarget
	path   string
	err    error
}

type configSavedMsg struct {
	err error
}

type latestReleaseMsg struct {
	release version.Release
	newer   bool
	err     error
}

type clipboardOp int

const (
	clipboardCopy clipboardOp = iota
	clipboardPaste
)

type clipboardMsg struct {
	op   clipboardOp
	text string
	err  error
}

type querySavedMsg struct {
	expression string
	added      bool
	err        error
}

type queryDeletedMsg struct {
	expression string
	err        error
}

type queriesLoadedMsg struct {
	queries []history.Bookmark
	err     error
}
