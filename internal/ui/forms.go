package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/rankr/internal/shared"
)

func (m *Model) openAddForm() tea.Cmd {
	if m.lib.Current() == nil {
		return m.fail(shared.ErrNoBoardOpen)
	}
	m.nameInput.Reset()
	m.rankInput.Reset()
	m.rankInput.Blur()
	m.view = AddEntryView
	return m.nameInput.Focus()
}

func (m *Model) openNewBoardForm() tea.Cmd {
	m.boardInput.Reset()
	m.view = NewBoardView
	return m.boardInput.Focus()
}

func (m *Model) closeForm() {
	m.nameInput.Blur()
	m.rankInput.Blur()
	m.boardInput.Blur()
	m.view = BoardView
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.formKeys.nextField), key.Matches(msg, m.formKeys.prevField):
		if m.nameInput.Focused() {
			m.nameInput.Blur()
			return m, m.rankInput.Focus()
		}
		m.rankInput.Blur()
		return m, m.nameInput.Focus()
	case key.Matches(msg, m.formKeys.submit):
		return m, m.submitAdd()
	}

	var cmd tea.Cmd
	if m.nameInput.Focused() {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.rankInput, cmd = m.rankInput.Update(msg)
	}
	return m, cmd
}

// submitAdd inserts the form's entry. An empty rank appends; input errors keep the form open.
func (m *Model) submitAdd() tea.Cmd {
	board := m.lib.Current()
	if board == nil {
		m.closeForm()
		return m.fail(shared.ErrNoBoardOpen)
	}

	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return m.fail(fmt.Errorf("%w: name is required", shared.ErrInvalidInput))
	}

	rank := board.Len() + 1
	if s := strings.TrimSpace(m.rankInput.Value()); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return m.fail(fmt.Errorf("%w: rank %q is not a number", shared.ErrInvalidInput, s))
		}
		rank = n
	}

	id, err := m.lib.AddEntry(name, rank)
	if err != nil && !errors.Is(err, shared.ErrPersistence) {
		return m.fail(err)
	}

	m.closeForm()
	got := m.rankOf(id)
	m.refresh(got - 1)

	if err != nil {
		return m.fail(err)
	}
	return m.notify("Added %s at rank %d", name, got)
}

func (m *Model) handleNewBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.formKeys.submit):
		return m, m.submitNewBoard()
	}

	var cmd tea.Cmd
	m.boardInput, cmd = m.boardInput.Update(msg)
	return m, cmd
}

func (m *Model) submitNewBoard() tea.Cmd {
	name := strings.TrimSpace(m.boardInput.Value())
	err := m.lib.Create(name)

	// A failed manifest write still leaves the board created and open.
	if err != nil && !createdAnyway(err, m.lib.Names(), name) {
		return m.fail(err)
	}

	m.closeForm()
	m.yanked = nil
	m.refresh(0)

	if err != nil {
		return m.fail(err)
	}
	return m.notify("Created leaderboard %s", name)
}

// createdAnyway reports whether a failed Create still added name, which only a persistence
// failure after the board was saved can do.
func createdAnyway(err error, names []string, name string) bool {
	return errors.Is(err, shared.ErrPersistence) && slices.Contains(names, name)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.no):
		m.view = BoardView
		return m, nil
	case key.Matches(msg, m.formKeys.yes):
		m.view = BoardView
		return m, m.deleteBoard()
	}
	return m, nil
}

func (m *Model) deleteBoard() tea.Cmd {
	board := m.lib.Current()
	if board == nil {
		return m.fail(shared.ErrNoBoardOpen)
	}

	name := board.Name()
	if err := m.lib.Remove(m.lib.Index()); err != nil {
		m.refresh(0)
		return m.fail(err)
	}

	m.yanked = nil
	m.refresh(0)
	return m.notify("Deleted leaderboard %s", name)
}

func (m *Model) renderAddForm() string {
	title := styles.title.Render(fmt.Sprintf("Add to '%s'", m.lib.Current().Name()))
	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n%s\n",
		title,
		styles.label.Render("Name"), m.nameInput.View(),
		styles.label.Render("Rank"), m.rankInput.View(),
	)
}

func (m *Model) renderNewBoardForm() string {
	title := styles.title.Render("New leaderboard")
	return fmt.Sprintf("%s\n%s\n%s\n", title, styles.label.Render("Name"), m.boardInput.View())
}

func (m *Model) renderConfirm() string {
	board := m.lib.Current()
	if board == nil {
		return styles.err.Render("No leaderboard open")
	}

	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", board.Name()))
	info := fmt.Sprintf("\nEntries: %d\n%s\n", board.Len(), styles.warn.Render("This cannot be undone."))
	return fmt.Sprintf("%s\n%s", title, info)
}
