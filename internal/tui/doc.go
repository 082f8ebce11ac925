/*
Package tui implements the terminal user interface of the save editor.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: the controller, holding the loaded files and the editable state
  - Update: applies one interaction or async completion at a time
  - View: renders the active screen, tab and overlay

# Key Components

  - model.go: Model, collaborators and the Update dispatch
  - messages.go: interactions and completion messages
  - update.go: interaction handling and the commit lifecycle
  - edits.go: applying field edits to the editable state
  - fields.go: the rows shown on each tab
  - keys.go: keyboard input handling and keybind routing
  - render.go: view rendering
  - actions.go: side effects run as tea.Cmd (scan, write, reload, open)

# Commit Lifecycle

A commit validates and maps the editable state synchronously, then writes in
a tea.Cmd. On completion the directory is rescanned and the committed file is
reselected. Further commit presses are ignored while one is in flight.

# Threading Model

All state is mutated on Bubble Tea's event loop. Blocking work runs inside
tea.Cmd functions, which capture the values they need and report back with
a message.
*/
package tui
