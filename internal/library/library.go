// package library manages the collection of leaderboards and applies write-through edits.
package library

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
)

// Library holds the manifest of board names and the board currently open.
//
// Every mutation is saved before the method returns. When a save fails the in-memory change
// is kept and the returned error wraps [shared.ErrPersistence].
type Library struct {
	store   models.Store
	logger  *log.Logger
	names   []string
	index   int
	current *models.Leaderboard
}

// New reads the manifest from store and opens the first board, if any.
//
// A store without a manifest gets an empty one. Any other manifest error is returned.
// A first board that cannot be loaded is logged and left closed.
func New(store models.Store, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	logger = shared.WithLogger(logger, "component", "library")
	lib := &Library{store: store, logger: logger, index: -1}

	names, err := store.ReadManifest()
	switch {
	case errors.Is(err, shared.ErrManifestNotFound):
		logger.Info("no manifest found, creating an empty one")
		if err := store.WriteManifest(nil); err != nil {
			return nil, fmt.Errorf("failed to create manifest: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	lib.names = names

	if len(lib.names) > 0 {
		if err := lib.Open(0); err != nil {
			logger.Warn("failed to open first leaderboard", "error", err)
		}
	}
	return lib, nil
}

// Names returns a copy of the known board names in manifest order.
func (l *Library) Names() []string { return slices.Clone(l.names) }

// Current returns the open board, or nil when none is open.
//
// Callers read from it; edits go through the Library so they are persisted.
func (l *Library) Current() *models.Leaderboard { return l.current }

// Index returns the manifest position of the open board, or -1.
func (l *Library) Index() int { return l.index }

// Open loads the board at manifest position index and makes it current.
func (l *Library) Open(index int) error {
	if index < 0 || index >= len(l.names) {
		return fmt.Errorf("%w: no leaderboard at index %d", shared.ErrBoardNotFound, index)
	}

	board, err := l.store.Load(l.names[index])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", l.names[index], err)
	}

	l.current, l.index = board, index
	l.logger.Debug("opened leaderboard", "board", board.Name(), "entries", board.Len())
	return nil
}

// OpenByName opens the named board.
func (l *Library) OpenByName(name string) error {
	i := slices.Index(l.names, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
	}
	return l.Open(i)
}

// Next opens the following board. At the last board it does nothing.
func (l *Library) Next() error {
	if l.index+1 >= len(l.names) {
		return nil
	}
	return l.Open(l.index + 1)
}

// Prev opens the preceding board. At the first board it does nothing.
func (l *Library) Prev() error {
	if l.index <= 0 {
		return nil
	}
	return l.Open(l.index - 1)
}

// Create saves a new empty board, appends it to the manifest and opens it.
func (l *Library) Create(name string) error {
	if err := models.ValidateName(name); err != nil {
		return err
	}
	if slices.Contains(l.names, name) {
		return fmt.Errorf("%w: %s", shared.ErrBoardExists, name)
	}

	board := models.NewLeaderboard(name)
	if err := l.store.Save(board); err != nil {
		if errors.Is(err, shared.ErrInvalidBoardName) {
			return err
		}
		return wrapPersistence(fmt.Errorf("create %s: %w", name, err))
	}

	l.names = append(l.names, name)
	l.current, l.index = board, len(l.names)-1
	l.logger.Info("created leaderboard", "board", name)

	return l.writeManifest()
}

// Remove deletes the board at manifest position index along with its stored state.
//
// If it was open, the board now at the same position (or the new last one) is opened.
func (l *Library) Remove(index int) error {
	if index < 0 || index >= len(l.names) {
		return fmt.Errorf("%w: no leaderboard at index %d", shared.ErrBoardNotFound, index)
	}

	name := l.names[index]
	if err := l.store.Delete(name); err != nil && !errors.Is(err, shared.ErrBoardNotFound) {
		return wrapPersistence(fmt.Errorf("delete %s: %w", name, err))
	}

	l.names = slices.Delete(l.names, index, index+1)
	l.logger.Info("removed leaderboard", "board", name)

	switch {
	case index == l.index:
		l.current, l.index = nil, -1
		if len(l.names) > 0 {
			if err := l.Open(min(index, len(l.names)-1)); err != nil {
				l.logger.Warn("failed to open neighbour", "error", err)
			}
		}
	case index < l.index:
		l.index--
	}

	return l.writeManifest()
}

// RemoveByName deletes the named board.
func (l *Library) RemoveByName(name string) error {
	i := slices.Index(l.names, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", shared.ErrBoardNotFound, name)
	}
	return l.Remove(i)
}

// AddEntry inserts name at rank on the open board and returns the new entry's id.
func (l *Library) AddEntry(name string, rank int) (uint64, error) {
	if l.current == nil {
		return 0, shared.ErrNoBoardOpen
	}

	id, err := l.current.Insert(name, rank)
	if err != nil {
		l.logger.Warn("insert failed", "board", l.current.Name(), "name", name, "rank", rank, "error", err)
		return 0, err
	}

	l.logger.Info("entry added", "board", l.current.Name(), "name", name, "id", id)
	return id, l.save()
}

// RemoveEntry deletes the entry at rank on the open board and returns its name.
func (l *Library) RemoveEntry(rank int) (string, error) {
	if l.current == nil {
		return "", shared.ErrNoBoardOpen
	}

	name, _, err := l.current.Remove(rank)
	if err != nil {
		l.logger.Warn("remove failed", "board", l.current.Name(), "rank", rank, "error", err)
		return "", err
	}

	l.logger.Info("entry removed", "board", l.current.Name(), "name", name, "rank", rank)
	return name, l.save()
}

// MoveEntry moves the entry at from to to on the open board and returns its final rank.
func (l *Library) MoveEntry(from, to int) (int, error) {
	if l.current == nil {
		return 0, shared.ErrNoBoardOpen
	}

	got, err := l.current.Move(from, to)
	if err != nil {
		l.logger.Warn("move failed", "board", l.current.Name(), "from", from, "to", to, "error", err)
		return 0, err
	}

	l.logger.Info("entry moved", "board", l.current.Name(), "from", from, "to", got)
	return got, l.save()
}

// Save persists the open board.
func (l *Library) Save() error {
	if l.current == nil {
		return shared.ErrNoBoardOpen
	}
	return l.save()
}

// Close makes a final best-effort save of the open board and the manifest.
func (l *Library) Close() error {
	var errs []error
	if l.current != nil {
		errs = append(errs, l.save())
	}
	errs = append(errs, l.writeManifest())
	return errors.Join(errs...)
}

func (l *Library) save() error {
	if err := l.store.Save(l.current); err != nil {
		l.logger.Error("save failed", "board", l.current.Name(), "error", err)
		return wrapPersistence(fmt.Errorf("save %s: %w", l.current.Name(), err))
	}
	return nil
}

func (l *Library) writeManifest() error {
	if err := l.store.WriteManifest(l.names); err != nil {
		l.logger.Error("manifest write failed", "error", err)
		return wrapPersistence(fmt.Errorf("write manifest: %w", err))
	}
	return nil
}

func wrapPersistence(err error) error {
	if errors.Is(err, shared.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", shared.ErrPersistence, err)
}
