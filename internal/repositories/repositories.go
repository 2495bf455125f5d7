// package repositories provides persistence implementations for leaderboards.
package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/rankr/internal/shared"
)

// manifestDocument is the on-disk shape of the manifest.
type manifestDocument struct {
	Leaderboards []string `json:"leaderboards"`
}

func encodeManifest(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	return json.Marshal(manifestDocument{Leaderboards: names})
}

func decodeManifest(data []byte) ([]string, error) {
	var doc manifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: manifest: %w", shared.ErrMalformedState, err)
	}
	if err := checkManifest(doc.Leaderboards); err != nil {
		return nil, err
	}
	return doc.Leaderboards, nil
}

// checkManifest rejects empty and repeated names; every name must reach exactly one board.
func checkManifest(names []string) error {
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%w: manifest: empty name at position %d", shared.ErrMalformedState, i+1)
		}
		if seen[name] {
			return fmt.Errorf("%w: manifest: duplicate name %q", shared.ErrMalformedState, name)
		}
		seen[name] = true
	}
	return nil
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers record creation order for debugging; they are never shown to users.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := nextSequence(tx, table)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// nextSequence increments the table's sequence inside tx, so callers can insert under the same commit.
func nextSequence(tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable)); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}
	return sequence, nil
}
