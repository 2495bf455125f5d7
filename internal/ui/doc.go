// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI edits the leaderboards of a [library.Library] through four views:
//  1. [BoardView] : Browse the open board, move between boards, yank and paste entries
//  2. [AddEntryView] : Name and rank form for a new entry
//  3. [NewBoardView] : Name form for a new board
//  4. [ConfirmDeleteView] : Confirm deleting the open board
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Edits are
// applied to the library synchronously inside Update, so the library is only touched from
// the bubbletea event loop. Results are reported on a status line that expires through the
// Msg union type.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l, y/p, esc, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
