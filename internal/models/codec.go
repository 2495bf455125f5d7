package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/desertthunder/rankr/internal/shared"
)

// document is the persisted shape of a [Leaderboard].
//
// Pointer fields let [Decode] tell a missing key from a zero value.
type document struct {
	Name    *string  `json:"name"`
	Entries *[]Entry `json:"entries"`
	NextID  *uint64  `json:"next_id"`
}

// Encode returns the JSON document for l.
func (l *Leaderboard) Encode() ([]byte, error) {
	return json.Marshal(l)
}

// Decode parses a JSON document produced by [Leaderboard.Encode].
//
// Documents with missing fields, an empty name, ranks other than exactly 1..N, repeated ids,
// or a next_id not above every id are rejected with [shared.ErrMalformedState].
func Decode(data []byte) (*Leaderboard, error) {
	var l Leaderboard
	if err := json.Unmarshal(data, &l); err != nil {
		if errors.Is(err, shared.ErrMalformedState) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrMalformedState, err)
	}
	return &l, nil
}

func (l *Leaderboard) MarshalJSON() ([]byte, error) {
	entries := l.entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(document{Name: &l.name, Entries: &entries, NextID: &l.nextID})
}

func (l *Leaderboard) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrMalformedState, err)
	}

	switch {
	case doc.Name == nil:
		return fmt.Errorf("%w: missing name", shared.ErrMalformedState)
	case doc.Entries == nil:
		return fmt.Errorf("%w: missing entries", shared.ErrMalformedState)
	case doc.NextID == nil:
		return fmt.Errorf("%w: missing next_id", shared.ErrMalformedState)
	case *doc.Name == "":
		return fmt.Errorf("%w: empty name", shared.ErrMalformedState)
	case *doc.NextID == 0:
		return fmt.Errorf("%w: next_id must be at least 1", shared.ErrMalformedState)
	}

	entries := *doc.Entries
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })

	seen := make(map[uint64]bool, len(entries))
	for i, e := range entries {
		if e.Rank != i+1 {
			return fmt.Errorf("%w: ranks are not contiguous at position %d (rank %d)", shared.ErrMalformedState, i+1, e.Rank)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate id %d", shared.ErrMalformedState, e.ID)
		}
		if e.ID >= *doc.NextID {
			return fmt.Errorf("%w: id %d is not below next_id %d", shared.ErrMalformedState, e.ID, *doc.NextID)
		}
		seen[e.ID] = true
	}

	*l = Leaderboard{name: *doc.Name, entries: entries, nextID: *doc.NextID}
	if len(l.entries) == 0 {
		l.entries = nil
	}
	return nil
}
