package models

import (
	"fmt"
	"slices"

	"github.com/desertthunder/rankr/internal/shared"
)

// Leaderboard is a named list of entries ranked 1..N without gaps.
//
// The zero value is not usable; create one with [NewLeaderboard] or [Decode].
type Leaderboard struct {
	name    string
	entries []Entry // entries[i].Rank == i+1
	nextID  uint64
}

// NewLeaderboard returns an empty leaderboard.
func NewLeaderboard(name string) *Leaderboard {
	return &Leaderboard{name: name, nextID: 1}
}

func (l *Leaderboard) Name() string   { return l.name }
func (l *Leaderboard) Len() int       { return len(l.entries) }
func (l *Leaderboard) NextID() uint64 { return l.nextID }

// Entries returns a copy of the entries in rank order.
func (l *Leaderboard) Entries() []Entry {
	return slices.Clone(l.entries)
}

// At returns the entry holding rank.
func (l *Leaderboard) At(rank int) (Entry, error) {
	if rank < 1 || rank > len(l.entries) {
		return Entry{}, fmt.Errorf("%w: %d", shared.ErrRankOutOfBounds, rank)
	}
	return l.entries[rank-1], nil
}

// Insert adds an entry at rank and returns its id.
//
// Ranks past the end are clamped to Len()+1. Entries at or below the target rank move down by one,
// so repeated inserts at the same rank leave the most recent one on top.
func (l *Leaderboard) Insert(name string, rank int) (uint64, error) {
	if rank < 1 {
		return 0, fmt.Errorf("%w: got %d", shared.ErrInvalidRank, rank)
	}

	e := Entry{ID: l.nextID, Name: name}
	l.nextID++
	l.place(e, rank)
	return e.ID, nil
}

// Remove deletes the entry at rank and closes the gap. It returns the removed name and rank.
func (l *Leaderboard) Remove(rank int) (string, int, error) {
	e, err := l.take(rank)
	if err != nil {
		return "", 0, err
	}
	return e.Name, rank, nil
}

// Move changes the rank of the entry at from to to, keeping its id.
//
// to is clamped against the length after the entry is lifted out, exactly as [Leaderboard.Insert]
// clamps. The effective destination rank is returned. Both ranks are checked before anything
// changes, so a failed move leaves the list as it was.
func (l *Leaderboard) Move(from, to int) (int, error) {
	if from < 1 || from > len(l.entries) {
		return 0, fmt.Errorf("%w: %w: %d", shared.ErrMoveFailed, shared.ErrRankOutOfBounds, from)
	}
	if to < 1 {
		return 0, fmt.Errorf("%w: %w: got %d", shared.ErrMoveFailed, shared.ErrInvalidRank, to)
	}

	e, err := l.take(from)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", shared.ErrMoveFailed, err)
	}
	return l.place(e, to), nil
}

// place inserts e at min(rank, Len()+1) and renumbers everything after it.
func (l *Leaderboard) place(e Entry, rank int) int {
	rank = min(rank, len(l.entries)+1)
	l.entries = slices.Insert(l.entries, rank-1, e)
	l.renumber(rank - 1)
	return rank
}

// take removes and returns the entry at rank, renumbering the tail.
func (l *Leaderboard) take(rank int) (Entry, error) {
	if rank < 1 || rank > len(l.entries) {
		return Entry{}, fmt.Errorf("%w: %d", shared.ErrRankOutOfBounds, rank)
	}
	e := l.entries[rank-1]
	l.entries = slices.Delete(l.entries, rank-1, rank)
	l.renumber(rank - 1)
	return e, nil
}

func (l *Leaderboard) renumber(from int) {
	for i := from; i < len(l.entries); i++ {
		l.entries[i].Rank = i + 1
	}
}

// Lines renders each entry as "rank: name", the format used for plain display.
func (l *Leaderboard) Lines() []string {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.String()
	}
	return lines
}
