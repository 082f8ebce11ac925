package tui

// Screen is the active top-level screen
type Screen int

const (
	ScreenInitializing Screen = iota
	ScreenLoading
	ScreenChooseDirectory
	ScreenManageSave
	ScreenManageProfile
)

func (s Screen) String() string {
	switch s {
	case ScreenInitializing:
		return "Initializing"
	case ScreenLoading:
		return "Loading"
	case ScreenChooseDirectory:
		return "ChooseDirectory"
	case ScreenManageSave:
		return "ManageSave"
	case ScreenManageProfile:
		return "ManageProfile"
	default:
		return "Unknown"
	}
}

// SaveTab is a sub-view of ScreenManageSave
type SaveTab int

const (
	SaveTabGeneral SaveTab = iota
	SaveTabCharacter
	SaveTabInventory
	SaveTabCurrency
	SaveTabVehicle
	SaveTabSettings
	saveTabCount
)

var saveTabNames = [saveTabCount]string{"General", "Character", "Inventory", "Currency", "Vehicle", "Settings"}

func (t SaveTab) String() string {
	if t < 0 || t >= saveTabCount {
		return "Unknown"
	}
	return saveTabNames[t]
}

// ProfileTab is a sub-view of ScreenManageProfile
type ProfileTab int

const (
	ProfileTabGeneral ProfileTab = iota
	ProfileTabProfile
	ProfileTabKeys
	ProfileTabBank
	ProfileTabSettings
	profileTabCount
)

var profileTabNames = [profileTabCount]string{"General", "Profile", "Keys", "Bank", "Settings"}

func (t ProfileTab) String() string {
	if t < 0 || t >= profileTabCount {
		return "Unknown"
	}
	return profileTabNames[t]
}

// ViewState is the screen plus the tab of whichever domain is managed.
// Only the tab matching Screen is meaningful.
type ViewState struct {
	Screen     Screen
	SaveTab    SaveTab
	ProfileTab ProfileTab
}

// Managing reports whether a file is being edited
func (v ViewState) Managing() bool {
	return v.Screen == ScreenManageSave || v.Screen == ScreenManageProfile
}

// OnSettings reports whether the settings tab of either domain is shown
func (v ViewState) OnSettings() bool {
	return (v.Screen == ScreenManageSave && v.SaveTab == SaveTabSettings) ||
		(v.Screen == ScreenManageProfile && v.ProfileTab == ProfileTabSettings)
}

// Tab returns the active tab name, or "" outside the manage screens
func (v ViewState) Tab() string {
	switch v.Screen {
	case ScreenManageSave:
		return v.SaveTab.String()
	case ScreenManageProfile:
		return v.ProfileTab.String()
	}
	return ""
}

// TabNames lists the tabs of the managed domain
func (v ViewState) TabNames() []string {
	switch v.Screen {
	case ScreenManageSave:
		return saveTabNames[:]
	case ScreenManageProfile:
		return profileTabNames[:]
	}
	return nil
}

// cycleTab moves the active tab by delta, wrapping around
func (v ViewState) cycleTab(delta int) ViewState {
	switch v.Screen {
	case ScreenManageSave:
		v.SaveTab = SaveTab(wrap(int(v.SaveTab)+delta, int(saveTabCount)))
	case ScreenManageProfile:
		v.ProfileTab = ProfileTab(wrap(int(v.ProfileTab)+delta, int(profileTabCount)))
	}
	return v
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func manageSave(tab SaveTab) ViewState {
	return ViewState{Screen: ScreenManageSave, SaveTab: tab}
}

func manageProfile(tab ProfileTab) ViewState {
	return ViewState{Screen: ScreenManageProfile, ProfileTab: tab}
}
