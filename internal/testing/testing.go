// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/rankr/internal/models"
)

// ErrInjected is returned by [FailingStore] when a failure is switched on.
var ErrInjected = errors.New("injected store failure")

// FailingStore wraps a [models.Store] and fails selected operations on demand.
type FailingStore struct {
	models.Store
	FailSave     bool
	FailLoad     bool
	FailDelete   bool
	FailManifest bool
	// FailManifestWrite fails only WriteManifest, so the manifest can still be read.
	FailManifestWrite bool
	Saves             int
}

// NewFailingStore wraps s with every failure switched off.
func NewFailingStore(s models.Store) *FailingStore {
	return &FailingStore{Store: s}
}

func (f *FailingStore) Save(board *models.Leaderboard) error {
	if f.FailSave {
		return ErrInjected
	}
	f.Saves++
	return f.Store.Save(board)
}

func (f *FailingStore) Load(name string) (*models.Leaderboard, error) {
	if f.FailLoad {
		return nil, ErrInjected
	}
	return f.Store.Load(name)
}

func (f *FailingStore) Delete(name string) error {
	if f.FailDelete {
		return ErrInjected
	}
	return f.Store.Delete(name)
}

func (f *FailingStore) ReadManifest() ([]string, error) {
	if f.FailManifest {
		return nil, ErrInjected
	}
	return f.Store.ReadManifest()
}

func (f *FailingStore) WriteManifest(names []string) error {
	if f.FailManifest || f.FailManifestWrite {
		return ErrInjected
	}
	return f.Store.WriteManifest(names)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// Board builds a leaderboard holding names in order.
func Board(t *testing.T, name string, names ...string) *models.Leaderboard {
	t.Helper()
	b := models.NewLeaderboard(name)
	for _, n := range names {
		if _, err := b.Insert(n, b.Len()+1); err != nil {
			t.Fatalf("failed to insert %q: %v", n, err)
		}
	}
	return b
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File should not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
