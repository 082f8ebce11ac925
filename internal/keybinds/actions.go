package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal          Context = "global"           // Available everywhere
	ContextChooseDirectory Context = "choose_directory" // No saves directory loaded
	ContextManage          Context = "manage"           // Save and profile editors
	ContextPrompt          Context = "prompt"           // Inline text prompts
	ContextPicker          Context = "picker"           // File picker
	ContextInspect         Context = "inspect"          // Model inspector
)

// AllContexts lists every context in the order they are documented
var AllContexts = []Context{
	ContextGlobal,
	ContextChooseDirectory,
	ContextManage,
	ContextPrompt,
	ContextPicker,
	ContextInspect,
}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionDismiss   Action = "dismiss"    // Dismiss the notification
	ActionUpdate    Action = "update"     // Open the release page when an update exists

	// Directory actions
	ActionChooseDir Action = "choose_dir" // Prompt for the saves directory
	ActionRefresh   Action = "refresh"    // Rescan the saves directory

	// Tab bar
	ActionNextTab Action = "next_tab"
	ActionPrevTab Action = "prev_tab"

	// Field editing
	ActionFieldUp       Action = "field_up"       // Previous field
	ActionFieldDown     Action = "field_down"     // Next field
	ActionFieldDecrease Action = "field_decrease" // Decrease number or previous choice
	ActionFieldIncrease Action = "field_increase" // Increase number or next choice
	ActionFieldToggle   Action = "field_toggle"   // Toggle a flag
	ActionFieldEdit     Action = "field_edit"     // Type a new value or press a button
	ActionFieldMax      Action = "field_max"      // Set the field or its group to the maximum

	// Commit and tools
	ActionCommit     Action = "commit"      // Save the selected file
	ActionOpenPicker Action = "open_picker" // Choose another file
	ActionInspect    Action = "inspect"     // Show the loaded model
	ActionCopyPath   Action = "copy_path"   // Copy the file path to the clipboard
	ActionPasteItem  Action = "paste_item"  // Import an item serial from the clipboard
	ActionRemoveItem Action = "remove_item" // Remove the highlighted item

	// Lists and viewers
	ActionNavigateUp     Action = "navigate_up"
	ActionNavigateDown   Action = "navigate_down"
	ActionPageUp         Action = "page_up"
	ActionPageDown       Action = "page_down"
	ActionGoToTop        Action = "go_to_top"
	ActionGoToBottom     Action = "go_to_bottom"
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence
	ActionSelect         Action = "select"
	ActionEditQuery      Action = "edit_query"   // Edit the inspector's JMESPath query
	ActionSaveQuery      Action = "save_query"   // Bookmark the inspector's query
	ActionNextQuery      Action = "next_query"   // Load the next bookmarked query
	ActionDeleteQuery    Action = "delete_query" // Forget the bookmark being shown
	ActionClose          Action = "close"

	// Text input
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"
	ActionTextPaste  Action = "text_paste"
)

// knownActions is used to reject typos in user configuration
var knownActions = map[Action]bool{
	ActionQuit: true, ActionQuitForce: true, ActionDismiss: true, ActionUpdate: true,
	ActionChooseDir: true, ActionRefresh: true,
	ActionNextTab: true, ActionPrevTab: true,
	ActionFieldUp: true, ActionFieldDown: true, ActionFieldDecrease: true, ActionFieldIncrease: true,
	ActionFieldToggle: true, ActionFieldEdit: true, ActionFieldMax: true,
	ActionCommit: true, ActionOpenPicker: true, ActionInspect: true,
	ActionCopyPath: true, ActionPasteItem: true, ActionRemoveItem: true,
	ActionNavigateUp: true, ActionNavigateDown: true, ActionPageUp: true, ActionPageDown: true,
	ActionGoToTop: true, ActionGoToBottom: true, ActionGoToTopPrepare: true,
	ActionSelect: true, ActionEditQuery: true, ActionSaveQuery: true, ActionNextQuery: true, ActionDeleteQuery: true, ActionClose: true,
	ActionTextSubmit: true, ActionTextCancel: true, ActionTextPaste: true,
}

// IsKnown reports whether a is an action the editor handles
func (a Action) IsKnown() bool {
	return knownActions[a]
}
