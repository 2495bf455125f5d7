// Package library is the owning collection of leaderboards.
//
// A [Library] mirrors the manifest (the ordered list of board names) and keeps one board open.
// Edits made through [Library.AddEntry], [Library.RemoveEntry] and [Library.MoveEntry] are
// write-through: the board is changed in memory and then saved in full before the call returns.
//
// Both the TUI and the one-shot CLI commands drive the same Library, so logging and error
// wrapping are identical across interfaces.
package library
