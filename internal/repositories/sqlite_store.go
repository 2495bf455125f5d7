package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
)

var _ models.Store = (*SQLiteStore)(nil)

// SQLiteStore keeps each leaderboard's JSON document in the leaderboards table and the
// manifest in the manifest table. The schema comes from [shared.RunMigrations].
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore with the given, already migrated, database connection
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves and decodes the named board.
func (s *SQLiteStore) Load(name string) (*models.Leaderboard, error) {
	var state string
	err := s.db.QueryRow("SELECT state FROM leaderboards WHERE name = ?", name).Scan(&state)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
		}
		return nil, fmt.Errorf("%w: query %s: %w", shared.ErrPersistence, name, err)
	}

	board, err := models.Decode([]byte(state))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if board.Name() != name {
		return nil, fmt.Errorf("%w: row for %q holds board %q", shared.ErrMalformedState, name, board.Name())
	}
	return board, nil
}

// Save updates the board's row, inserting it with a new sequence number the first time.
// Both paths commit as one transaction.
func (s *SQLiteStore) Save(board *models.Leaderboard) error {
	if err := models.ValidateName(board.Name()); err != nil {
		return err
	}

	state, err := board.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", shared.ErrPersistence, board.Name(), err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %w", shared.ErrPersistence, err)
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(
		"UPDATE leaderboards SET state = ?, updated_at = ? WHERE name = ?",
		string(state), now, board.Name(),
	)
	if err != nil {
		return fmt.Errorf("%w: update %s: %w", shared.ErrPersistence, board.Name(), err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %w", shared.ErrPersistence, err)
	}

	if rows == 0 {
		sequence, err := nextSequence(tx, "leaderboards")
		if err != nil {
			return fmt.Errorf("%w: %w", shared.ErrPersistence, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO leaderboards (name, sequence, state, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			board.Name(), sequence, string(state), now, now,
		); err != nil {
			return fmt.Errorf("%w: insert %s: %w", shared.ErrPersistence, board.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %w", shared.ErrPersistence, board.Name(), err)
	}
	return nil
}

// Delete removes the named board's row.
func (s *SQLiteStore) Delete(name string) error {
	result, err := s.db.Exec("DELETE FROM leaderboards WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", shared.ErrPersistence, name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get affected rows: %w", shared.ErrPersistence, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
	}
	return nil
}

// ReadManifest returns the known board names ordered by position.
func (s *SQLiteStore) ReadManifest() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM manifest ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: query manifest: %w", shared.ErrPersistence, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan manifest: %w", shared.ErrPersistence, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate manifest: %w", shared.ErrPersistence, err)
	}
	if err := checkManifest(names); err != nil {
		return nil, err
	}
	return names, nil
}

// WriteManifest replaces the manifest in a single transaction.
func (s *SQLiteStore) WriteManifest(names []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %w", shared.ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM manifest"); err != nil {
		return fmt.Errorf("%w: clear manifest: %w", shared.ErrPersistence, err)
	}
	for i, name := range names {
		if _, err := tx.Exec("INSERT INTO manifest (position, name) VALUES (?, ?)", i, name); err != nil {
			return fmt.Errorf("%w: insert manifest %s: %w", shared.ErrPersistence, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit manifest: %w", shared.ErrPersistence, err)
	}
	return nil
}
