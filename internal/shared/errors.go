package shared

import "fmt"

var (
	// Ranking errors
	ErrInvalidRank     = fmt.Errorf("rank must be at least 1")
	ErrRankOutOfBounds = fmt.Errorf("no entry at rank")
	ErrMoveFailed      = fmt.Errorf("move failed")
	ErrMalformedState  = fmt.Errorf("malformed leaderboard state")

	// Storage errors
	ErrPersistence      = fmt.Errorf("persistence failure")
	ErrBoardNotFound    = fmt.Errorf("leaderboard not found")
	ErrBoardExists      = fmt.Errorf("leaderboard already exists")
	ErrInvalidBoardName = fmt.Errorf("invalid leaderboard name")
	ErrNoBoardOpen      = fmt.Errorf("no leaderboard open")
	ErrManifestNotFound = fmt.Errorf("leaderboard manifest not found")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidFormat   = fmt.Errorf("unsupported export format")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
