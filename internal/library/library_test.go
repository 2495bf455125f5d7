package library

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/repositories"
	"github.com/desertthunder/rankr/internal/shared"
	tu "github.com/desertthunder/rankr/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibrary(t *testing.T, store models.Store) *Library {
	t.Helper()
	lib, err := New(store, shared.NewLogger(io.Discard))
	require.NoError(t, err)
	return lib
}

// seededStore returns a memory store holding boards in manifest order.
func seededStore(t *testing.T, boards ...*models.Leaderboard) *repositories.MemoryStore {
	t.Helper()
	s := repositories.NewMemoryStore()
	names := make([]string, 0, len(boards))
	for _, b := range boards {
		require.NoError(t, s.Save(b))
		names = append(names, b.Name())
	}
	require.NoError(t, s.WriteManifest(names))
	return s
}

func TestNew(t *testing.T) {
	t.Run("creates missing manifest", func(t *testing.T) {
		s := repositories.NewMemoryStore()
		lib := newLibrary(t, s)

		assert.Empty(t, lib.Names())
		assert.Nil(t, lib.Current())
		assert.Equal(t, -1, lib.Index())

		names, err := s.ReadManifest()
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("opens first board", func(t *testing.T) {
		s := seededStore(t, tu.Board(t, "Games", "Hades"), tu.Board(t, "Movies"))
		lib := newLibrary(t, s)

		assert.Equal(t, []string{"Games", "Movies"}, lib.Names())
		require.NotNil(t, lib.Current())
		assert.Equal(t, "Games", lib.Current().Name())
		assert.Equal(t, 0, lib.Index())
	})

	t.Run("unreadable manifest is an error", func(t *testing.T) {
		s := tu.NewFailingStore(repositories.NewMemoryStore())
		s.FailManifest = true
		_, err := New(s, shared.NewLogger(io.Discard))
		require.ErrorIs(t, err, tu.ErrInjected)
	})

	t.Run("unloadable first board stays closed", func(t *testing.T) {
		s := repositories.NewMemoryStore()
		require.NoError(t, s.WriteManifest([]string{"Ghost"}))
		lib := newLibrary(t, s)
		assert.Nil(t, lib.Current())
		assert.Equal(t, []string{"Ghost"}, lib.Names())
	})
}

func TestNavigation(t *testing.T) {
	s := seededStore(t, tu.Board(t, "A"), tu.Board(t, "B"), tu.Board(t, "C"))
	lib := newLibrary(t, s)

	require.NoError(t, lib.Prev())
	assert.Equal(t, "A", lib.Current().Name(), "prev at first board stays put")

	require.NoError(t, lib.Next())
	require.NoError(t, lib.Next())
	assert.Equal(t, "C", lib.Current().Name())

	require.NoError(t, lib.Next())
	assert.Equal(t, "C", lib.Current().Name(), "next at last board stays put")

	require.NoError(t, lib.Prev())
	assert.Equal(t, "B", lib.Current().Name())

	require.NoError(t, lib.OpenByName("A"))
	assert.Equal(t, 0, lib.Index())

	require.ErrorIs(t, lib.OpenByName("Z"), shared.ErrBoardNotFound)
	require.ErrorIs(t, lib.Open(5), shared.ErrBoardNotFound)
	assert.Equal(t, "A", lib.Current().Name(), "failed open keeps current board")
}

func TestCreate(t *testing.T) {
	t.Run("saves board and manifest", func(t *testing.T) {
		s := repositories.NewMemoryStore()
		lib := newLibrary(t, s)

		require.NoError(t, lib.Create("Games"))
		require.NoError(t, lib.Create("Movies"))

		assert.Equal(t, "Movies", lib.Current().Name())
		assert.Equal(t, 1, lib.Index())

		names, err := s.ReadManifest()
		require.NoError(t, err)
		assert.Equal(t, []string{"Games", "Movies"}, names)

		_, err = s.Load("Movies")
		require.NoError(t, err)
	})

	t.Run("rejects duplicates and bad names", func(t *testing.T) {
		lib := newLibrary(t, seededStore(t, tu.Board(t, "Games")))
		require.ErrorIs(t, lib.Create("Games"), shared.ErrBoardExists)
		require.ErrorIs(t, lib.Create(""), shared.ErrInvalidBoardName)
		require.ErrorIs(t, lib.Create("a/b"), shared.ErrInvalidBoardName)
		assert.Equal(t, []string{"Games"}, lib.Names())
	})

	t.Run("file store refuses the manifest's own name", func(t *testing.T) {
		fs, err := repositories.NewFileStore(filepath.Join(t.TempDir(), "Leaderboards"), "Leaderboards.json")
		require.NoError(t, err)
		lib := newLibrary(t, fs)

		err = lib.Create("Leaderboards")
		require.ErrorIs(t, err, shared.ErrInvalidBoardName)
		assert.Empty(t, lib.Names())
	})

	t.Run("save failure", func(t *testing.T) {
		s := tu.NewFailingStore(repositories.NewMemoryStore())
		lib := newLibrary(t, s)
		s.FailSave = true

		require.ErrorIs(t, lib.Create("Games"), shared.ErrPersistence)
		assert.Empty(t, lib.Names())
	})
}

func TestRemove(t *testing.T) {
	t.Run("removing open board opens neighbour", func(t *testing.T) {
		s := seededStore(t, tu.Board(t, "A"), tu.Board(t, "B"), tu.Board(t, "C"))
		lib := newLibrary(t, s)
		require.NoError(t, lib.Open(1))

		require.NoError(t, lib.Remove(1))
		assert.Equal(t, []string{"A", "C"}, lib.Names())
		assert.Equal(t, "C", lib.Current().Name())
		assert.Equal(t, 1, lib.Index())

		_, err := s.Load("B")
		require.ErrorIs(t, err, shared.ErrBoardNotFound)

		names, err := s.ReadManifest()
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, names)
	})

	t.Run("removing last open board falls back to previous", func(t *testing.T) {
		lib := newLibrary(t, seededStore(t, tu.Board(t, "A"), tu.Board(t, "B")))
		require.NoError(t, lib.Open(1))
		require.NoError(t, lib.RemoveByName("B"))
		assert.Equal(t, "A", lib.Current().Name())
		assert.Equal(t, 0, lib.Index())
	})

	t.Run("removing earlier board shifts index", func(t *testing.T) {
		lib := newLibrary(t, seededStore(t, tu.Board(t, "A"), tu.Board(t, "B")))
		require.NoError(t, lib.Open(1))
		require.NoError(t, lib.Remove(0))
		assert.Equal(t, "B", lib.Current().Name())
		assert.Equal(t, 0, lib.Index())
	})

	t.Run("removing only board leaves none open", func(t *testing.T) {
		lib := newLibrary(t, seededStore(t, tu.Board(t, "A")))
		require.NoError(t, lib.Remove(0))
		assert.Nil(t, lib.Current())
		assert.Equal(t, -1, lib.Index())
	})

	t.Run("unknown board", func(t *testing.T) {
		lib := newLibrary(t, seededStore(t, tu.Board(t, "A")))
		require.ErrorIs(t, lib.Remove(3), shared.ErrBoardNotFound)
		require.ErrorIs(t, lib.RemoveByName("Z"), shared.ErrBoardNotFound)
	})

	t.Run("delete failure keeps manifest", func(t *testing.T) {
		s := tu.NewFailingStore(seededStore(t, tu.Board(t, "A")))
		lib := newLibrary(t, s)
		s.FailDelete = true
		require.ErrorIs(t, lib.Remove(0), shared.ErrPersistence)
		assert.Equal(t, []string{"A"}, lib.Names())
	})
}

func TestEntries(t *testing.T) {
	t.Run("write-through", func(t *testing.T) {
		s := seededStore(t, tu.Board(t, "Games"))
		lib := newLibrary(t, s)

		_, err := lib.AddEntry("Hades", 1)
		require.NoError(t, err)
		_, err = lib.AddEntry("Risebreak", 2)
		require.NoError(t, err)
		_, err = lib.AddEntry("Witcher 3", 2)
		require.NoError(t, err)

		stored, err := s.Load("Games")
		require.NoError(t, err)
		assert.Equal(t, []string{"1: Hades", "2: Witcher 3", "3: Risebreak"}, stored.Lines())

		name, err := lib.RemoveEntry(1)
		require.NoError(t, err)
		assert.Equal(t, "Hades", name)

		to, err := lib.MoveEntry(1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, to)

		stored, err = s.Load("Games")
		require.NoError(t, err)
		assert.Equal(t, []string{"1: Risebreak", "2: Witcher 3"}, stored.Lines())
		assert.Equal(t, uint64(4), stored.NextID())
	})

	t.Run("failed edits are not saved", func(t *testing.T) {
		s := tu.NewFailingStore(seededStore(t, tu.Board(t, "Games", "a")))
		lib := newLibrary(t, s)

		_, err := lib.AddEntry("x", 0)
		require.ErrorIs(t, err, shared.ErrInvalidRank)
		_, err = lib.RemoveEntry(9)
		require.ErrorIs(t, err, shared.ErrRankOutOfBounds)
		_, err = lib.MoveEntry(9, 1)
		require.ErrorIs(t, err, shared.ErrMoveFailed)

		assert.Equal(t, 0, s.Saves)
	})

	t.Run("persistence failure keeps in-memory change", func(t *testing.T) {
		s := tu.NewFailingStore(seededStore(t, tu.Board(t, "Games", "a")))
		lib := newLibrary(t, s)
		s.FailSave = true

		id, err := lib.AddEntry("b", 1)
		require.ErrorIs(t, err, shared.ErrPersistence)
		assert.Equal(t, uint64(2), id)
		assert.Equal(t, []string{"1: b", "2: a"}, lib.Current().Lines())

		stored, err := s.Store.Load("Games")
		require.NoError(t, err)
		assert.Equal(t, []string{"1: a"}, stored.Lines(), "stored copy is stale")

		s.FailSave = false
		require.NoError(t, lib.Save())
		stored, err = s.Store.Load("Games")
		require.NoError(t, err)
		assert.Equal(t, []string{"1: b", "2: a"}, stored.Lines())
	})

	t.Run("no board open", func(t *testing.T) {
		lib := newLibrary(t, repositories.NewMemoryStore())
		_, err := lib.AddEntry("a", 1)
		require.ErrorIs(t, err, shared.ErrNoBoardOpen)
		_, err = lib.RemoveEntry(1)
		require.ErrorIs(t, err, shared.ErrNoBoardOpen)
		_, err = lib.MoveEntry(1, 2)
		require.ErrorIs(t, err, shared.ErrNoBoardOpen)
		require.ErrorIs(t, lib.Save(), shared.ErrNoBoardOpen)
	})
}

func TestClose(t *testing.T) {
	t.Run("persists board and manifest", func(t *testing.T) {
		s := tu.NewFailingStore(seededStore(t, tu.Board(t, "Games")))
		lib := newLibrary(t, s)

		require.NoError(t, lib.Close())
		assert.Equal(t, 1, s.Saves)
	})

	t.Run("reports every failure", func(t *testing.T) {
		s := tu.NewFailingStore(seededStore(t, tu.Board(t, "Games")))
		lib := newLibrary(t, s)
		s.FailSave = true
		s.FailManifest = true

		err := lib.Close()
		require.ErrorIs(t, err, shared.ErrPersistence)
		require.ErrorIs(t, err, tu.ErrInjected)
	})
}
