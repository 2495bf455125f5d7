package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/desertthunder/rankr/internal/formatter"
	"github.com/desertthunder/rankr/internal/models"
	"github.com/desertthunder/rankr/internal/repositories"
	"github.com/desertthunder/rankr/internal/shared"
	"github.com/urfave/cli/v3"
)

// Show prints a leaderboard, optionally re-printing it on every change.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("board")
	asJSON := cmd.Bool("json")

	lib, err := r.openBoard(name)
	if err != nil {
		return err
	}

	if err := r.printBoard(lib.Current(), asJSON); err != nil {
		return err
	}

	if !cmd.Bool("watch") {
		return nil
	}

	fs, ok := r.store.(*repositories.FileStore)
	if !ok {
		return fmt.Errorf("%w: --watch needs the file backend", shared.ErrInvalidArgument)
	}

	r.logger.Info("watching for changes", "board", name, "path", fs.Path(name))
	return fs.Watch(ctx, name, func(board *models.Leaderboard, err error) {
		if err != nil {
			r.logger.Warn("reload failed", "board", name, "error", err)
			return
		}
		if err := r.printBoard(board, asJSON); err != nil {
			r.logger.Error("print failed", "error", err)
		}
	})
}

func (r *Runner) printBoard(board *models.Leaderboard, asJSON bool) error {
	if asJSON {
		data, err := formatter.ExportToJSON(board)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	if err := r.writePlainHeader(fmt.Sprintf("%s (%d entries)", board.Name(), board.Len())); err != nil {
		return err
	}
	data, err := formatter.ExportToText(board)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// Add inserts an entry into a leaderboard. Without --rank it goes to the end.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	entry := cmd.StringArg("name")
	if entry == "" {
		return fmt.Errorf("%w: entry name", shared.ErrMissingArgument)
	}

	lib, err := r.openBoard(cmd.StringArg("board"))
	if err != nil {
		return err
	}

	rank := lib.Current().Len() + 1
	if cmd.IsSet("rank") {
		rank = int(cmd.Int("rank"))
	}

	id, err := lib.AddEntry(entry, rank)
	if err != nil && !errors.Is(err, shared.ErrPersistence) {
		return err
	}

	got, _ := rankOf(lib.Current(), id)
	if werr := r.writePlain("Added %s to %s at rank %d (id %d)\n", entry, lib.Current().Name(), got, id); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}

// Remove deletes the entry at a rank.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	rank, err := parseRank(cmd, "rank")
	if err != nil {
		return err
	}

	lib, err := r.openBoard(cmd.StringArg("board"))
	if err != nil {
		return err
	}

	entry, err := lib.RemoveEntry(rank)
	if err != nil && !errors.Is(err, shared.ErrPersistence) {
		return err
	}

	if werr := r.writePlain("Removed %s from %s (rank %d)\n", entry, lib.Current().Name(), rank); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}

// Move re-ranks the entry at from to to. A to past the end moves it to the last rank.
func (r *Runner) Move(ctx context.Context, cmd *cli.Command) error {
	from, err := parseRank(cmd, "from")
	if err != nil {
		return err
	}
	to, err := parseRank(cmd, "to")
	if err != nil {
		return err
	}

	lib, err := r.openBoard(cmd.StringArg("board"))
	if err != nil {
		return err
	}

	entry, _ := lib.Current().At(from)
	got, err := lib.MoveEntry(from, to)
	if err != nil && !errors.Is(err, shared.ErrPersistence) {
		return err
	}

	if werr := r.writePlain("Moved %s in %s from rank %d to %d\n", entry.Name, lib.Current().Name(), from, got); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}

// parseRank reads a positional rank argument. Range checks are left to the leaderboard.
func parseRank(cmd *cli.Command, arg string) (int, error) {
	s := cmd.StringArg(arg)
	if s == "" {
		return 0, fmt.Errorf("%w: %s", shared.ErrMissingArgument, arg)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", shared.ErrInvalidArgument, arg, s)
	}
	return n, nil
}

func rankOf(board *models.Leaderboard, id uint64) (int, bool) {
	for _, e := range board.Entries() {
		if e.ID == id {
			return e.Rank, true
		}
	}
	return 0, false
}
