package repositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
	tu "github.com/desertthunder/rankr/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "Leaderboards"), "Leaderboards.json")
	require.NoError(t, err)
	return s
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, func(t *testing.T) models.Store { return newFileStore(t) })

	t.Run("creates directory", func(t *testing.T) {
		s := newFileStore(t)
		tu.AssertDirExists(t, s.Dir())
	})

	t.Run("writes one JSON file per board", func(t *testing.T) {
		s := newFileStore(t)
		b := models.NewLeaderboard("Games")
		_, _ = b.Insert("Hades", 1)
		require.NoError(t, s.Save(b))

		tu.AssertFileExists(t, filepath.Join(s.Dir(), "Games.json"))
		content := tu.MustReadFile(t, s.Path("Games"))
		assert.JSONEq(t, `{"name":"Games","entries":[{"id":1,"name":"Hades","rank":1}],"next_id":2}`, content)
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		s := newFileStore(t)
		require.NoError(t, s.Save(models.NewLeaderboard("Games")))
		require.NoError(t, s.WriteManifest([]string{"Games"}))

		entries, err := os.ReadDir(s.Dir())
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover %s", e.Name())
		}
		assert.Len(t, entries, 2)
	})

	t.Run("manifest format", func(t *testing.T) {
		s := newFileStore(t)
		require.NoError(t, s.WriteManifest([]string{"Games", "Movies"}))
		content := tu.MustReadFile(t, filepath.Join(s.Dir(), "Leaderboards.json"))
		assert.JSONEq(t, `{"leaderboards":["Games","Movies"]}`, content)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := newFileStore(t).ReadManifest()
		require.ErrorIs(t, err, shared.ErrManifestNotFound)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		s := newFileStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "Leaderboards.json"), []byte("{"), 0644))
		_, err := s.ReadManifest()
		require.ErrorIs(t, err, shared.ErrMalformedState)
	})

	t.Run("manifest with repeated or empty names", func(t *testing.T) {
		for _, doc := range []string{
			`{"leaderboards":["Games","Movies","Games"]}`,
			`{"leaderboards":["Games",""]}`,
		} {
			s := newFileStore(t)
			require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "Leaderboards.json"), []byte(doc), 0644))
			_, err := s.ReadManifest()
			require.ErrorIs(t, err, shared.ErrMalformedState, doc)
		}
	})

	t.Run("malformed board", func(t *testing.T) {
		s := newFileStore(t)
		doc := `{"name":"Games","entries":[{"id":1,"name":"a","rank":2}],"next_id":2}`
		require.NoError(t, os.WriteFile(s.Path("Games"), []byte(doc), 0644))
		_, err := s.Load("Games")
		require.ErrorIs(t, err, shared.ErrMalformedState)
	})

	t.Run("board name mismatch", func(t *testing.T) {
		s := newFileStore(t)
		require.NoError(t, s.Save(models.NewLeaderboard("Movies")))
		require.NoError(t, os.Rename(s.Path("Movies"), s.Path("Games")))
		_, err := s.Load("Games")
		require.ErrorIs(t, err, shared.ErrMalformedState)
	})

	t.Run("rejects unsafe names", func(t *testing.T) {
		s := newFileStore(t)
		for _, name := range []string{"../escape", "", "Leaderboards"} {
			require.ErrorIs(t, s.Save(models.NewLeaderboard(name)), shared.ErrInvalidBoardName, name)
			_, err := s.Load(name)
			require.ErrorIs(t, err, shared.ErrInvalidBoardName, name)
		}
	})

	t.Run("write failure wraps ErrPersistence", func(t *testing.T) {
		s := newFileStore(t)
		require.NoError(t, os.RemoveAll(s.Dir()))
		require.NoError(t, os.WriteFile(s.Dir(), []byte("not a dir"), 0644))

		err := s.Save(models.NewLeaderboard("Games"))
		require.ErrorIs(t, err, shared.ErrPersistence)
	})
}

func TestFileStoreWatch(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, s.Save(models.NewLeaderboard("Games")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *models.Leaderboard, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, "Games", func(b *models.Leaderboard, err error) {
			if err == nil {
				updates <- b
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	other := models.NewLeaderboard("Movies")
	require.NoError(t, s.Save(other))

	b := models.NewLeaderboard("Games")
	_, _ = b.Insert("Hades", 1)
	require.NoError(t, s.Save(b))

	select {
	case got := <-updates:
		assert.Equal(t, []string{"1: Hades"}, got.Lines())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch update")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
