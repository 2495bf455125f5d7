// package models defines the data model for ranked leaderboards
package models

// BoardStore persists leaderboards keyed by name.
type BoardStore interface {
	Load(name string) (*Leaderboard, error) // Load returns the stored board or shared.ErrBoardNotFound
	Save(board *Leaderboard) error          // Save replaces the stored board with board's current state
	Delete(name string) error               // Delete removes the stored board
}

// ManifestStore persists the ordered list of known leaderboard names.
type ManifestStore interface {
	ReadManifest() ([]string, error)
	WriteManifest(names []string) error
}

// Store is implemented by backends that hold both boards and the manifest.
type Store interface {
	BoardStore
	ManifestStore
}
