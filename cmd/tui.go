package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/rankr/internal/shared"
	"github.com/desertthunder/rankr/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
//
// Every edit is written through as it happens. Closing re-saves the open board and manifest.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file and the in-memory pane to avoid interfering with TUI rendering
	logs := shared.NewLogBuffer(200)
	fileLogger, err := shared.NewFileLogger(r.config.Log.Path, logs)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	lib, err := r.openLibrary()
	if err != nil {
		return err
	}

	model := ui.NewModel(lib, logs)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}
	if runErr != nil {
		runErr = fmt.Errorf("error running TUI: %w", runErr)
	}

	return errors.Join(runErr, lib.Close())
}
