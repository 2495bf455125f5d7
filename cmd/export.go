package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/rankr/internal/formatter"
	"github.com/desertthunder/rankr/internal/shared"
	"github.com/desertthunder/rankr/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export renders a leaderboard in the --format format to --output, or to stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if _, err := formatter.ParseFormat(format); err != nil {
		return err
	}

	if cmd.Bool("all") {
		return r.ExportAll(ctx, cmd)
	}

	lib, err := r.openBoard(cmd.StringArg("board"))
	if err != nil {
		return err
	}
	board := lib.Current()

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(board, format, output)
		if err != nil {
			return err
		}
		r.logger.Info("export written", "board", board.Name(), "format", format, "path", path)
		return r.writePlain("Exported %s to %s\n", board.Name(), path)
	}

	data, err := formatter.Export(board, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// ExportAll writes every leaderboard in the manifest into the --output directory.
func (r *Runner) ExportAll(ctx context.Context, cmd *cli.Command) error {
	if cmd.StringArg("board") != "" {
		return fmt.Errorf("%w: --all takes no leaderboard name", shared.ErrInvalidArgument)
	}

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}
	names := lib.Names()
	if len(names) == 0 {
		return r.writePlain("No leaderboards to export.\n")
	}

	prog := make(chan tasks.ProgressUpdate, len(names)*2+1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for u := range prog {
			r.logger.Info(u.Message, "phase", u.Phase)
		}
	}()

	result, err := tasks.BulkExport(ctx, prog, r.store, names, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	wg.Wait()

	if result == nil {
		return err
	}

	for _, res := range result.Results {
		if !res.Success {
			r.logger.Warn("export failed", "board", res.Board, "error", res.Error)
		}
	}
	if werr := r.writePlain("Exported %d of %d leaderboards to %s\n",
		result.SuccessfulExports, result.TotalBoards, result.OutputDirectory); werr != nil {
		return werr
	}
	return err
}
