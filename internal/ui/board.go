package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/rankr/internal/shared"
)

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.entries.CursorUp()
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.entries.CursorDown()
		return m, nil
	case key.Matches(msg, m.keys.prev):
		return m, m.switchBoard(m.lib.Prev)
	case key.Matches(msg, m.keys.next):
		return m, m.switchBoard(m.lib.Next)
	case key.Matches(msg, m.keys.add):
		return m, m.openAddForm()
	case key.Matches(msg, m.keys.remove):
		return m, m.removeEntry()
	case key.Matches(msg, m.keys.yank):
		return m, m.yank()
	case key.Matches(msg, m.keys.paste):
		return m, m.paste()
	case key.Matches(msg, m.keys.clear):
		if m.yanked != nil {
			m.yanked = nil
			m.refresh(m.entries.Index())
		}
		return m, nil
	case key.Matches(msg, m.keys.newBoard):
		return m, m.openNewBoardForm()
	case key.Matches(msg, m.keys.deleteBoard):
		if m.lib.Current() == nil {
			return m, m.fail(shared.ErrNoBoardOpen)
		}
		m.view = ConfirmDeleteView
		return m, nil
	case key.Matches(msg, m.keys.logs):
		m.showLogs = !m.showLogs
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

// cursorRank is the rank of the entry under the cursor, or 0 on an empty board.
func (m *Model) cursorRank() int {
	item, ok := m.entries.SelectedItem().(entryItem)
	if !ok {
		return 0
	}
	return item.entry.Rank
}

// rankOf finds the current rank of the entry with id on the open board, or 0.
func (m *Model) rankOf(id uint64) int {
	board := m.lib.Current()
	if board == nil {
		return 0
	}
	for _, e := range board.Entries() {
		if e.ID == id {
			return e.Rank
		}
	}
	return 0
}

func (m *Model) switchBoard(open func() error) tea.Cmd {
	before := m.lib.Index()
	err := open()
	if m.lib.Index() != before {
		m.yanked = nil
		m.refresh(0)
	}
	if err != nil {
		return m.fail(err)
	}
	return nil
}

func (m *Model) removeEntry() tea.Cmd {
	if m.lib.Current() == nil {
		return m.fail(shared.ErrNoBoardOpen)
	}

	item, ok := m.entries.SelectedItem().(entryItem)
	if !ok {
		return m.fail(fmt.Errorf("%w: the board is empty", shared.ErrRankOutOfBounds))
	}

	name, err := m.lib.RemoveEntry(item.entry.Rank)
	if err != nil && !errors.Is(err, shared.ErrPersistence) {
		return m.fail(err)
	}

	if m.yanked != nil && m.yanked.ID == item.entry.ID {
		m.yanked = nil
	}
	m.refresh(item.entry.Rank - 1)

	if err != nil {
		return m.fail(err)
	}
	return m.notify("Removed %s from rank %d", name, item.entry.Rank)
}

func (m *Model) yank() tea.Cmd {
	item, ok := m.entries.SelectedItem().(entryItem)
	if !ok {
		return m.fail(fmt.Errorf("%w: nothing to yank", shared.ErrInvalidInput))
	}

	e := item.entry
	m.yanked = &e
	m.refresh(m.entries.Index())
	return m.notify("Yanked %s, move the cursor and press p to paste", e.Name)
}

// paste moves the yanked entry to the cursor's rank.
func (m *Model) paste() tea.Cmd {
	if m.yanked == nil {
		return m.fail(fmt.Errorf("%w: nothing yanked", shared.ErrInvalidInput))
	}

	from := m.rankOf(m.yanked.ID)
	if from == 0 {
		m.yanked = nil
		m.refresh(m.entries.Index())
		return m.fail(fmt.Errorf("%w: yanked entry is gone", shared.ErrRankOutOfBounds))
	}

	to := m.cursorRank()
	if from == to {
		return m.notify("%s is already at rank %d", m.yanked.Name, to)
	}

	name := m.yanked.Name
	got, err := m.lib.MoveEntry(from, to)
	if err != nil && !errors.Is(err, shared.ErrPersistence) {
		return m.fail(err)
	}

	m.yanked = nil
	m.refresh(got - 1)

	if err != nil {
		return m.fail(err)
	}
	return m.notify("Moved %s from rank %d to %d", name, from, got)
}
