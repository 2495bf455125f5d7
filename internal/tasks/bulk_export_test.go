package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/desertthunder/rankr/internal/formatter"
	"github.com/desertthunder/rankr/internal/repositories"
	"github.com/desertthunder/rankr/internal/shared"
	tu "github.com/desertthunder/rankr/internal/testing"
)

func seededStore(t *testing.T) *repositories.MemoryStore {
	t.Helper()
	s := repositories.NewMemoryStore()
	for _, b := range []struct {
		name    string
		entries []string
	}{
		{"Games", []string{"Hades", "Risebreak", "Witcher 3"}},
		{"Movies", []string{"Heat"}},
		{"Books", nil},
	} {
		if err := s.Save(tu.Board(t, b.name, b.entries...)); err != nil {
			t.Fatalf("seed %s: %v", b.name, err)
		}
	}
	return s
}

func TestBulkExport(t *testing.T) {
	names := []string{"Games", "Movies", "Books"}

	t.Run("every format", func(t *testing.T) {
		for _, f := range formatter.Formats {
			t.Run(string(f), func(t *testing.T) {
				dir := t.TempDir()
				result, err := BulkExport(context.Background(), nil, seededStore(t), names, BulkExportOpts{
					Format:    string(f),
					OutputDir: dir,
				})
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if result.SuccessfulExports != 3 || result.FailedExports != 0 {
					t.Errorf("expected 3 successes, got %d ok / %d failed", result.SuccessfulExports, result.FailedExports)
				}
				for _, name := range names {
					tu.AssertFileExists(t, filepath.Join(dir, name+"."+f.Extension()))
				}
				tu.AssertFileExists(t, result.ManifestPath)
			})
		}
	})

	t.Run("content matches single export", func(t *testing.T) {
		dir := t.TempDir()
		s := seededStore(t)
		if _, err := BulkExport(context.Background(), nil, s, []string{"Games"}, BulkExportOpts{
			Format:    "txt",
			OutputDir: dir,
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		board, _ := s.Load("Games")
		want, _ := formatter.ExportToText(board)
		if got := tu.MustReadFile(t, filepath.Join(dir, "Games.txt")); got != string(want) {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("missing boards are recorded and the rest continue", func(t *testing.T) {
		dir := t.TempDir()
		result, err := BulkExport(context.Background(), nil, seededStore(t), []string{"Games", "Nope", "Movies"}, BulkExportOpts{
			Format:     "csv",
			OutputDir:  dir,
			NumWorkers: 2,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.SuccessfulExports != 2 || result.FailedExports != 1 {
			t.Fatalf("expected 2 ok / 1 failed, got %d / %d", result.SuccessfulExports, result.FailedExports)
		}

		for _, res := range result.Results {
			if res.Board != "Nope" {
				continue
			}
			if !errors.Is(res.Error, shared.ErrBoardNotFound) {
				t.Errorf("expected ErrBoardNotFound, got %v", res.Error)
			}
			if res.Message == "" {
				t.Error("expected failure message in manifest row")
			}
		}
		tu.AssertFileMissing(t, filepath.Join(dir, "Nope.csv"))
	})

	t.Run("manifest", func(t *testing.T) {
		dir := t.TempDir()
		result, err := BulkExport(context.Background(), nil, seededStore(t), names, BulkExportOpts{
			Format:    "json",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.ManifestPath != filepath.Join(dir, ManifestFile) {
			t.Errorf("unexpected manifest path %s", result.ManifestPath)
		}

		var doc BulkExportResult
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &doc); err != nil {
			t.Fatalf("manifest is not JSON: %v", err)
		}
		if doc.TotalBoards != 3 || len(doc.Results) != 3 {
			t.Errorf("unexpected manifest %+v", doc)
		}

		got := []string{}
		for _, res := range doc.Results {
			got = append(got, res.Board)
		}
		sort.Strings(got)
		if strings.Join(got, ",") != "Books,Games,Movies" {
			t.Errorf("unexpected boards in manifest: %v", got)
		}
	})

	t.Run("progress updates", func(t *testing.T) {
		prog := make(chan ProgressUpdate, 32)
		if _, err := BulkExport(context.Background(), prog, seededStore(t), names, BulkExportOpts{
			Format:    "md",
			OutputDir: t.TempDir(),
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(prog)

		phases := map[Phase]int{}
		for u := range prog {
			phases[u.Phase]++
			if u.Message == "" {
				t.Errorf("empty message for phase %s", u.Phase)
			}
		}
		if phases[LoadBoards] != 3 || phases[ExportBoards] != 3 || phases[WriteManifest] != 1 {
			t.Errorf("unexpected phase counts: %v", phases)
		}
	})

	t.Run("full progress channel never blocks", func(t *testing.T) {
		prog := make(chan ProgressUpdate)
		if _, err := BulkExport(context.Background(), prog, seededStore(t), names, BulkExportOpts{
			Format:    "txt",
			OutputDir: t.TempDir(),
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("defaults output directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		result, err := BulkExport(context.Background(), nil, seededStore(t), names, BulkExportOpts{Format: "txt"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(result.OutputDirectory, "rankr_export_") {
			t.Errorf("unexpected output directory %s", result.OutputDirectory)
		}
		tu.AssertDirExists(t, result.OutputDirectory)
	})

	t.Run("rate limited", func(t *testing.T) {
		result, err := BulkExport(context.Background(), nil, seededStore(t), names, BulkExportOpts{
			Format:    "txt",
			OutputDir: t.TempDir(),
			RateLimit: 100,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.SuccessfulExports != 3 {
			t.Errorf("expected 3 successes, got %d", result.SuccessfulExports)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := BulkExport(context.Background(), nil, nil, names, BulkExportOpts{Format: "txt"}); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence for nil store, got %v", err)
		}

		dir := filepath.Join(t.TempDir(), "out")
		if _, err := BulkExport(context.Background(), nil, seededStore(t), names, BulkExportOpts{
			Format:    "pdf",
			OutputDir: dir,
		}); !errors.Is(err, shared.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("output directory should not be created for a bad format")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dir := t.TempDir()
		_, err := BulkExport(ctx, nil, seededStore(t), names, BulkExportOpts{
			Format:    "txt",
			OutputDir: dir,
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		tu.AssertFileMissing(t, filepath.Join(dir, ManifestFile))
	})
}
