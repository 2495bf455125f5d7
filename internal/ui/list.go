package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/rankr/internal/models"
)

var _ list.DefaultItem = entryItem{}

// entryItem wraps [models.Entry] to implement [list.DefaultItem].
type entryItem struct {
	entry  models.Entry
	yanked bool
}

func (i entryItem) FilterValue() string { return i.entry.Name }
func (i entryItem) Title() string       { return fmt.Sprintf("%d. %s", i.entry.Rank, i.entry.Name) }
func (i entryItem) Description() string {
	desc := fmt.Sprintf("id %d", i.entry.ID)
	if i.yanked {
		desc = fmt.Sprintf("%s • %s", desc, styles.warn.Render("yanked"))
	}
	return desc
}

// newEntryList builds the board's list with its own quit, filter and help handling switched off.
func newEntryList(width, height int) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("entry", "entries")
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}
