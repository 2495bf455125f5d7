package models

import "fmt"

// Entry is a single named item occupying one rank in a [Leaderboard].
type Entry struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%d: %s", e.Rank, e.Name)
}
