package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/desertthunder/rankr/internal/shared"
	"github.com/urfave/cli/v3"
)

// boardSummary is one row of "boards list".
type boardSummary struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}

// BoardsList prints every leaderboard with its entry count.
func (r *Runner) BoardsList(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	summaries := make([]boardSummary, 0, len(lib.Names()))
	for _, name := range lib.Names() {
		s := boardSummary{Name: name}
		if board, err := r.store.Load(name); err != nil {
			r.logger.Warn("failed to load leaderboard", "board", name, "error", err)
			s.Error = err.Error()
		} else {
			s.Entries = board.Len()
		}
		summaries = append(summaries, s)
	}

	if cmd.Bool("json") {
		return r.writeJSON(summaries, true)
	}

	if len(summaries) == 0 {
		return r.writePlain("No leaderboards yet. Create one with 'rankr boards new <name>'.\n")
	}

	for i, s := range summaries {
		if s.Error != "" {
			if err := r.writePlain("%d. %s (unreadable: %s)\n", i+1, s.Name, s.Error); err != nil {
				return err
			}
			continue
		}
		if err := r.writePlain("%d. %s (%d entries)\n", i+1, s.Name, s.Entries); err != nil {
			return err
		}
	}
	return nil
}

// BoardsNew creates an empty leaderboard.
func (r *Runner) BoardsNew(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: board name", shared.ErrMissingArgument)
	}

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	// A failed manifest write still leaves the board created.
	err = lib.Create(name)
	if err != nil && !(errors.Is(err, shared.ErrPersistence) && slices.Contains(lib.Names(), name)) {
		return err
	}
	if werr := r.writePlain("Created leaderboard %s\n", name); werr != nil {
		return errors.Join(err, werr)
	}
	return err
}

// BoardsDelete deletes a leaderboard and its stored entries.
func (r *Runner) BoardsDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: board name", shared.ErrMissingArgument)
	}

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	if err := lib.RemoveByName(name); err != nil {
		return err
	}
	return r.writePlain("Deleted leaderboard %s\n", name)
}
