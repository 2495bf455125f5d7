package repositories

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
)

var _ models.Store = (*FileStore)(nil)

// FileStore keeps each leaderboard in <dir>/<name>.json and the manifest in <dir>/<manifest>.
//
// Writes go to a temporary file in dir that is renamed over the target, so a crash leaves
// either the old or the new document in place.
type FileStore struct {
	dir      string
	manifest string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir, manifest string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", shared.ErrPersistence, dir, err)
	}
	return &FileStore{dir: dir, manifest: manifest}, nil
}

// Dir returns the directory holding the store's files.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file backing the named board.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) checkName(name string) error {
	if err := models.ValidateName(name); err != nil {
		return err
	}
	if filepath.Base(s.Path(name)) == s.manifest {
		return fmt.Errorf("%w: %q collides with the manifest file", shared.ErrInvalidBoardName, name)
	}
	return nil
}

// Load reads and decodes the named board.
func (s *FileStore) Load(name string) (*models.Leaderboard, error) {
	if err := s.checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
		}
		return nil, fmt.Errorf("%w: read %s: %w", shared.ErrPersistence, name, err)
	}

	board, err := models.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if board.Name() != name {
		return nil, fmt.Errorf("%w: file for %q holds board %q", shared.ErrMalformedState, name, board.Name())
	}
	return board, nil
}

// Save writes the board's current state.
func (s *FileStore) Save(board *models.Leaderboard) error {
	if err := s.checkName(board.Name()); err != nil {
		return err
	}

	data, err := board.Encode()
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", shared.ErrPersistence, board.Name(), err)
	}
	return s.write(s.Path(board.Name()), data)
}

// Delete removes the named board's file.
func (s *FileStore) Delete(name string) error {
	if err := s.checkName(name); err != nil {
		return err
	}

	if err := os.Remove(s.Path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
		}
		return fmt.Errorf("%w: delete %s: %w", shared.ErrPersistence, name, err)
	}
	return nil
}

// ReadManifest returns the known board names in order.
func (s *FileStore) ReadManifest() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, s.manifest))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shared.ErrManifestNotFound
		}
		return nil, fmt.Errorf("%w: read manifest: %w", shared.ErrPersistence, err)
	}
	return decodeManifest(data)
}

// WriteManifest replaces the manifest.
func (s *FileStore) WriteManifest(names []string) error {
	data, err := encodeManifest(names)
	if err != nil {
		return fmt.Errorf("%w: encode manifest: %w", shared.ErrPersistence, err)
	}
	return s.write(filepath.Join(s.dir, s.manifest), data)
}

func (s *FileStore) write(path string, data []byte) error {
	tmp := filepath.Join(s.dir, "."+filepath.Base(path)+"."+shared.GenerateID()+".tmp")

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: write %s: %w", shared.ErrPersistence, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %w", shared.ErrPersistence, path, err)
	}
	return nil
}
