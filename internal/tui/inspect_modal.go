package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/bl3edit/internal/history"
	"github.com/studiowebux/bl3edit/internal/inspect"
	"github.com/studiowebux/bl3edit/internal/keybinds"
)

// inspectState is the read-only JSON view of the selected file
type inspectState struct {
	view    viewport.Model
	query   textinput.Model
	editing bool
	err     string

	// bookmarks cycles with next_query; bookmark is -1 before the first step
	bookmarks []history.Bookmark
	bookmark  int
}

// openInspect shows the authoritative model of the selected file, not the
// pending edits
func (m *Model) openInspect() tea.Cmd {
	if _, ok := m.registry.Selected(); !ok {
		m.negative("No file selected")
		return nil
	}
	m.inspect.query.SetValue("")
	m.inspect.editing = false
	m.inspect.bookmark = -1
	m.overlay = OverlayInspect
	m.resizeOverlays()
	m.refreshInspect()
	return m.loadQueries()
}

func (m *Model) refreshInspect() {
	file, ok := m.registry.Selected()
	if !ok {
		return
	}
	out, err := inspect.Render(file, m.inspect.query.Value())
	if err != nil {
		m.inspect.err = err.Error()
		return
	}
	m.inspect.err = ""
	m.inspect.view.SetContent(inspect.Highlight(out))
	m.inspect.view.GotoTop()
}

func (m *Model) resizeOverlays() {
	m.inspect.view.Width = max(20, m.width-ModalWidthMargin-ViewportPaddingHorizontal-ViewportBorderWidth)
	m.inspect.view.Height = max(5, m.height-ContentOffsetLarge)
	m.inspect.query.Width = m.inspect.view.Width - 10
}

func (m *Model) loadQueries() tea.Cmd {
	if m.queries == nil {
		return nil
	}
	store := m.queries
	return func() tea.Msg {
		queries, err := store.Queries()
		return queriesLoadedMsg{queries: queries, err: err}
	}
}

func (m *Model) saveQuery() tea.Cmd {
	expression := strings.TrimSpace(m.inspect.query.Value())
	if expression == "" {
		m.negative("Nothing to bookmark")
		return nil
	}
	if m.queries == nil {
		m.negative("Bookmarks are unavailable")
		return nil
	}
	store := m.queries
	return func() tea.Msg {
		added, err := store.SaveQuery(expression)
		return querySavedMsg{expression: expression, added: added, err: err}
	}
}

func (m *Model) handleQuerySaved(msg querySavedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("bookmark save failed", zap.String("expression", msg.expression), zap.Error(msg.err))
		m.negative(fmt.Sprintf("Failed to bookmark query: %v", msg.err))
		return nil
	}
	if !msg.added {
		m.positive("Query already bookmarked")
		return nil
	}
	m.positive("Query bookmarked")
	return m.loadQueries()
}

// deleteQuery forgets the bookmark last applied with next_query
func (m *Model) deleteQuery() tea.Cmd {
	if m.queries == nil {
		m.negative("Bookmarks are unavailable")
		return nil
	}
	if m.inspect.bookmark < 0 || m.inspect.bookmark >= len(m.inspect.bookmarks) {
		m.negative("No bookmark selected, press n to pick one")
		return nil
	}
	bookmark := m.inspect.bookmarks[m.inspect.bookmark]
	store := m.queries
	return func() tea.Msg {
		return queryDeletedMsg{expression: bookmark.Expression, err: store.DeleteQuery(bookmark.ID)}
	}
}

func (m *Model) handleQueryDeleted(msg queryDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("bookmark delete failed", zap.String("expression", msg.expression), zap.Error(msg.err))
		m.negative(fmt.Sprintf("Failed to delete bookmark: %v", msg.err))
		return nil
	}
	m.positive(fmt.Sprintf("Bookmark %s removed", msg.expression))
	return m.loadQueries()
}

func (m *Model) handleQueriesLoaded(msg queriesLoadedMsg) {
	if msg.err != nil {
		m.logger.Warn("bookmark load failed", zap.Error(msg.err))
		return
	}
	m.inspect.bookmarks = msg.queries
	m.inspect.bookmark = -1
}

// nextQuery applies the next bookmark, wrapping at the end
func (m *Model) nextQuery() {
	if len(m.inspect.bookmarks) == 0 {
		m.negative("No bookmarked queries")
		return
	}
	m.inspect.bookmark = (m.inspect.bookmark + 1) % len(m.inspect.bookmarks)
	m.inspect.query.SetValue(m.inspect.bookmarks[m.inspect.bookmark].Expression)
	m.refreshInspect()
}

// handleInspectKeys handles keyboard input in inspect mode
func (m *Model) handleInspectKeys(msg tea.KeyMsg) tea.Cmd {
	if m.inspect.editing {
		switch msg.String() {
		case "enter":
			m.inspect.editing = false
			m.inspect.query.Blur()
			m.refreshInspect()
			return nil
		case "esc":
			m.inspect.editing = false
			m.inspect.query.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.inspect.query, cmd = m.inspect.query.Update(msg)
		return cmd
	}

	action, complete, partial := m.keybinds.MatchMultiKey(keybinds.ContextInspect, msg.String())
	if partial || !complete {
		return nil
	}
	m.notification = nil

	switch action {
	case keybinds.ActionClose:
		m.overlay = OverlayNone
		m.keybinds.ClearMultiKeyState(keybinds.ContextInspect)

	case keybinds.ActionNavigateUp:
		m.inspect.view.ScrollUp(1)

	case keybinds.ActionNavigateDown:
		m.inspect.view.ScrollDown(1)

	case keybinds.ActionPageUp:
		m.inspect.view.PageUp()

	case keybinds.ActionPageDown:
		m.inspect.view.PageDown()

	case keybinds.ActionGoToTop:
		m.inspect.view.GotoTop()

	case keybinds.ActionGoToBottom:
		m.inspect.view.GotoBottom()

	case keybinds.ActionEditQuery:
		m.inspect.editing = true
		return m.inspect.query.Focus()

	case keybinds.ActionSaveQuery:
		return m.saveQuery()

	case keybinds.ActionNextQuery:
		m.nextQuery()

	case keybinds.ActionDeleteQuery:
		return m.deleteQuery()
	}

	return nil
}
