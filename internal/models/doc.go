// Package models defines the ranked-list domain for rankr.
//
// A [Leaderboard] owns an ordered sequence of [Entry] values whose ranks are always exactly 1..N.
// Every mutation ([Leaderboard.Insert], [Leaderboard.Remove], [Leaderboard.Move]) renumbers the
// affected entries so there are never gaps or duplicate ranks.
//
// Leaderboards are pure in-memory values. Persisting them is the caller's job, through the
// [BoardStore] and [ManifestStore] interfaces implemented in the repositories package.
//
// The persisted form is a JSON document:
//
//	{"name": "Games", "entries": [{"id": 1, "name": "Hades", "rank": 1}], "next_id": 2}
//
// [Decode] rejects documents whose ranks are not contiguous, returning [shared.ErrMalformedState].
package models
