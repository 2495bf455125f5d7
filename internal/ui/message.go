package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStatusExpired MsgKind = iota
)

// statusExpiredMsg is the constructor for [MsgStatusExpired].
//
// seq identifies the status line that scheduled it so a newer line is not cleared early.
func statusExpiredMsg(seq int) Msg {
	return Msg{kind: MsgStatusExpired, data: seq}
}

// expireStatus schedules a [MsgStatusExpired] for the status line seq after ttl.
func expireStatus(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return statusExpiredMsg(seq)
	})
}
