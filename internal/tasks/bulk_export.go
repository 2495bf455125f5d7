package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/rankr/internal/formatter"
	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/shared"
	"golang.org/x/time/rate"
)

// ManifestFile is the name of the summary written into the output directory.
const ManifestFile = "export_manifest.json"

// BulkExportOpts contains configuration for bulk leaderboard exports.
type BulkExportOpts struct {
	Format     string  // Export format: csv, md, txt, json
	OutputDir  string  // Base output directory (default: rankr_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 4, max: 8)
	RateLimit  float64 // Board loads per second (0: unlimited)
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalBoards       int                 `json:"total_boards"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"-"`
	Results           []BoardExportResult `json:"results"`
}

// BoardExportResult is the outcome for one leaderboard.
type BoardExportResult struct {
	Board   string `json:"board"`
	Entries int    `json:"entries"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   error  `json:"-"`
	Message string `json:"error,omitempty"`
}

type exportJob struct {
	board *models.Leaderboard
}

// BulkExport writes every named leaderboard from store into opts.OutputDir.
//
// Results are collected in completion order. Cancelling ctx stops new loads; boards already
// queued are skipped. The manifest is written even when some boards fail.
func BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	store models.BoardStore,
	names []string,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: no store", shared.ErrPersistence)
	}

	format, err := formatter.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("rankr_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalBoards:     len(names),
		OutputDirectory: opts.OutputDir,
		Results:         make([]BoardExportResult, 0, len(names)),
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)

	jobs := make(chan exportJob, len(names))
	results := make(chan BoardExportResult, len(names))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, results, format, opts.OutputDir)
	}

	go func() {
		defer close(jobs)
		for i, name := range names {
			if ctx.Err() != nil {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			sendProgress(prog, loadingBoardUpdate(i+1, len(names), name))
			board, err := store.Load(name)
			if err != nil {
				results <- BoardExportResult{
					Board: name,
					Error: fmt.Errorf("failed to load leaderboard: %w", err),
				}
				continue
			}
			jobs <- exportJob{board: board}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(names), res.Board, res.File))
		} else {
			result.FailedExports++
			res.Message = res.Error.Error()
			sendProgress(prog, exportFailedUpdate(completed, len(names), res.Board, res.Error))
		}
		result.Results = append(result.Results, res)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestFile)
	sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- BoardExportResult,
	format formatter.Format,
	dir string,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			continue
		}
		results <- exportBoard(job.board, format, dir)
	}
}

func exportBoard(board *models.Leaderboard, format formatter.Format, dir string) BoardExportResult {
	res := BoardExportResult{Board: board.Name(), Entries: board.Len()}

	path := filepath.Join(dir, board.Name()+"."+format.Extension())
	written, err := formatter.WriteExport(board, string(format), path)
	if err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", format, err)
		return res
	}

	res.File = written
	res.Success = true
	return res
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
