package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/rankr/internal/library"
	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BoardView ViewState = iota
	AddEntryView
	NewBoardView
	ConfirmDeleteView
)

// StatusTTL is how long a status line stays on screen.
var StatusTTL = 4 * time.Second

const (
	logPaneLines  = 8
	defaultWidth  = 80
	defaultHeight = 24
)

// Model represents the TUI application state.
type Model struct {
	lib        *library.Library
	logs       *shared.LogBuffer
	view       ViewState
	width      int
	height     int
	entries    list.Model
	nameInput  textinput.Model
	rankInput  textinput.Model
	boardInput textinput.Model
	yanked     *models.Entry
	showLogs   bool
	status     string
	statusErr  bool
	statusSeq  int
	help       help.Model
	keys       keyMap
	formKeys   formKeyMap
}

// NewModel creates a TUI model over lib. logs may be nil, in which case the log pane stays empty.
func NewModel(lib *library.Library, logs *shared.LogBuffer) *Model {
	m := &Model{
		lib:        lib,
		logs:       logs,
		view:       BoardView,
		width:      defaultWidth,
		height:     defaultHeight,
		entries:    newEntryList(defaultWidth, defaultHeight),
		nameInput:  newInput("Name", 128),
		rankInput:  newInput("Rank (empty appends)", 6),
		boardInput: newInput("Leaderboard name", 64),
		help:       help.New(),
		keys:       newKeyMap(),
		formKeys:   newFormKeyMap(),
	}
	m.resize()
	m.refresh(0)
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "> "
	return ti
}

// Init sets the terminal title.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("rankr")
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AddEntryView:
			return m.handleAddKeys(msg)
		case NewBoardView:
			return m.handleNewBoardKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBoardKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgStatusExpired:
			if seq, ok := msg.data.(int); ok && seq == m.statusSeq {
				m.status, m.statusErr = "", false
			}
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	switch m.view {
	case AddEntryView:
		b.WriteString(m.renderAddForm())
	case NewBoardView:
		b.WriteString(m.renderNewBoardForm())
	case ConfirmDeleteView:
		b.WriteString(m.renderConfirm())
	default:
		b.WriteString(m.entries.View())
	}

	if m.status != "" {
		style := styles.ok
		if m.statusErr {
			style = styles.err
		}
		b.WriteString("\n" + style.Render(m.status))
	}

	if m.showLogs {
		b.WriteString("\n" + m.renderLogs())
	}

	b.WriteString("\n" + m.renderHelp())
	return b.String()
}

// Status returns the visible status line and whether it reports a failure.
func (m *Model) Status() (string, bool) { return m.status, m.statusErr }

// State returns the active view.
func (m *Model) State() ViewState { return m.view }

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case AddEntryView:
		var c1, c2 tea.Cmd
		m.nameInput, c1 = m.nameInput.Update(msg)
		m.rankInput, c2 = m.rankInput.Update(msg)
		cmd = tea.Batch(c1, c2)
	case NewBoardView:
		m.boardInput, cmd = m.boardInput.Update(msg)
	default:
		m.entries, cmd = m.entries.Update(msg)
	}
	return m, cmd
}

// refresh rebuilds the list from the open board and selects the entry at index selected.
func (m *Model) refresh(selected int) {
	board := m.lib.Current()
	if board == nil {
		m.entries.Title = "No leaderboards (press n to create one)"
		m.entries.SetItems(nil)
		return
	}

	m.entries.Title = fmt.Sprintf("%s (%d/%d)", board.Name(), m.lib.Index()+1, len(m.lib.Names()))

	entries := board.Entries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e, yanked: m.yanked != nil && m.yanked.ID == e.ID}
	}
	m.entries.SetItems(items)

	if len(items) > 0 {
		m.entries.Select(max(0, min(selected, len(items)-1)))
	}
}

func (m *Model) resize() {
	reserved := 4
	if m.showLogs {
		reserved += logPaneLines + 2
	}
	m.entries.SetSize(max(m.width-2, 20), max(m.height-reserved, 5))
	m.help.Width = m.width
	for _, ti := range []*textinput.Model{&m.nameInput, &m.rankInput, &m.boardInput} {
		ti.Width = max(m.width-6, 10)
	}
}

// setStatus shows text on the status line and schedules its expiry.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status, m.statusErr = text, isErr
	return expireStatus(m.statusSeq, StatusTTL)
}

func (m *Model) notify(format string, args ...any) tea.Cmd {
	return m.setStatus(fmt.Sprintf(format, args...), false)
}

func (m *Model) fail(err error) tea.Cmd {
	return m.setStatus("Error: "+err.Error(), true)
}

func (m *Model) renderLogs() string {
	var lines []string
	if m.logs != nil {
		lines = m.logs.Lines()
	}
	if len(lines) > logPaneLines {
		lines = lines[len(lines)-logPaneLines:]
	}
	if len(lines) == 0 {
		lines = []string{"(no log output)"}
	}
	return styles.pane.Width(max(m.width-4, 20)).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHelp() string {
	var bindings []key.Binding
	switch m.view {
	case AddEntryView:
		bindings = []key.Binding{m.formKeys.submit, m.formKeys.nextField, m.formKeys.cancel}
	case NewBoardView:
		bindings = []key.Binding{m.formKeys.submit, m.formKeys.cancel}
	case ConfirmDeleteView:
		bindings = []key.Binding{m.formKeys.yes, m.formKeys.no}
	default:
		return styles.help.Render(m.help.View(m.keys))
	}
	return styles.help.Render(m.help.ShortHelpView(bindings))
}
