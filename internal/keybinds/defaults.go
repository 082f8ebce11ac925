package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerChooseDirectoryBindings(r)
	registerManageBindings(r)
	registerPromptBindings(r)
	registerPickerBindings(r)
	registerInspectBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerChooseDirectoryBindings(r *Registry) {
	r.Register(ContextChooseDirectory, "q", ActionQuit)
	r.RegisterMultiple(ContextChooseDirectory, []string{"enter", "o"}, ActionChooseDir)
	r.Register(ContextChooseDirectory, "r", ActionRefresh)
	r.Register(ContextChooseDirectory, "u", ActionUpdate)
	r.Register(ContextChooseDirectory, "esc", ActionDismiss)
}

// registerManageBindings covers both the save and the profile editor
func registerManageBindings(r *Registry) {
	r.Register(ContextManage, "q", ActionQuit)
	r.Register(ContextManage, "esc", ActionDismiss)
	r.Register(ContextManage, "u", ActionUpdate)

	r.Register(ContextManage, "o", ActionChooseDir)
	r.Register(ContextManage, "r", ActionRefresh)

	r.RegisterMultiple(ContextManage, []string{"tab", "]"}, ActionNextTab)
	r.RegisterMultiple(ContextManage, []string{"shift+tab", "["}, ActionPrevTab)

	r.RegisterMultiple(ContextManage, []string{"up", "k"}, ActionFieldUp)
	r.RegisterMultiple(ContextManage, []string{"down", "j"}, ActionFieldDown)
	r.RegisterMultiple(ContextManage, []string{"left", "h", "-"}, ActionFieldDecrease)
	r.RegisterMultiple(ContextManage, []string{"right", "l", "+", "="}, ActionFieldIncrease)
	r.Register(ContextManage, " ", ActionFieldToggle)
	r.Register(ContextManage, "enter", ActionFieldEdit)
	r.Register(ContextManage, "m", ActionFieldMax)

	r.RegisterMultiple(ContextManage, []string{"ctrl+s", "s"}, ActionCommit)
	r.RegisterMultiple(ContextManage, []string{"f", "/"}, ActionOpenPicker)
	r.Register(ContextManage, "i", ActionInspect)
	r.Register(ContextManage, "y", ActionCopyPath)
	r.Register(ContextManage, "p", ActionPasteItem)
	r.Register(ContextManage, "d", ActionRemoveItem)
}

func registerPromptBindings(r *Registry) {
	r.Register(ContextPrompt, "enter", ActionTextSubmit)
	r.Register(ContextPrompt, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextPrompt, []string{"ctrl+v", "shift+insert"}, ActionTextPaste)
}

func registerPickerBindings(r *Registry) {
	r.RegisterMultiple(ContextPicker, []string{"up", "ctrl+k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextPicker, []string{"down", "ctrl+j"}, ActionNavigateDown)
	r.Register(ContextPicker, "enter", ActionSelect)
	r.Register(ContextPicker, "esc", ActionClose)
}

func registerInspectBindings(r *Registry) {
	r.RegisterMultiple(ContextInspect, []string{"esc", "q", "i"}, ActionClose)
	r.RegisterMultiple(ContextInspect, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextInspect, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextInspect, "pgup", ActionPageUp)
	r.Register(ContextInspect, "pgdown", ActionPageDown)
	r.Register(ContextInspect, "g", ActionGoToTopPrepare)
	r.RegisterMultiple(ContextInspect, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextInspect, []string{"G", "end"}, ActionGoToBottom)
	r.RegisterMultiple(ContextInspect, []string{"/", ":"}, ActionEditQuery)
	r.Register(ContextInspect, "b", ActionSaveQuery)
	r.Register(ContextInspect, "n", ActionNextQuery)
	r.Register(ContextInspect, "x", ActionDeleteQuery)
}
