package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	if opts.Config == nil || opts.Pipeline == nil || opts.Scanner == nil {
		return fmt.Errorf("tui: config, pipeline and scanner are required")
	}
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
