// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"
)

// newApp builds the root command. With no subcommand it starts the TUI.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "rankr",
		Usage:   "Keep ranked lists of the things you love",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.Before,
		After:    r.After,
		Action:   r.TUI,
		Commands: r.register(),
		Writer:   r.output,
	}
}

// tuiCommand returns the top-level TUI command for interactive editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI",
		Action:  r.TUI,
	}
}

// boardsCommand handles leaderboard collection operations
func boardsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "boards",
		Aliases: []string{"b"},
		Usage:   "Manage leaderboards",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List leaderboards in manifest order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.BoardsList,
			},
			{
				Name:  "new",
				Usage: "Create an empty leaderboard",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.BoardsNew,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a leaderboard and its entries",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.BoardsDelete,
			},
		},
	}
}

// showCommand prints a leaderboard
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print a leaderboard",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "board"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the stored JSON document",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Print again whenever the board changes on disk (file backend)",
			},
		},
		Action: r.Show,
	}
}

// addCommand inserts an entry
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Insert an entry at a rank (default: the end)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "board"},
			&cli.StringArg{Name: "name"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "rank",
				Aliases: []string{"r"},
				Usage:   "Rank to insert at; past the end appends",
			},
		},
		Action: r.Add,
	}
}

// removeCommand deletes an entry
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove the entry at a rank",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "board"},
			&cli.StringArg{Name: "rank"},
		},
		Action: r.Remove,
	}
}

// moveCommand re-ranks an entry
func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "Move the entry at one rank to another",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "board"},
			&cli.StringArg{Name: "from"},
			&cli.StringArg{Name: "to"},
		},
		Action: r.Move,
	}
}

// exportCommand renders a leaderboard to a file or stdout
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a leaderboard, or all of them, as csv, md, txt or json",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "board"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, md, txt or json",
				Value:   "txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout), or directory with --all",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every leaderboard into one directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers for --all",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Leaderboards loaded per second for --all (0: unlimited)",
			},
		},
		Action: r.Export,
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration to the --config path",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the SQLite database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Undo the most recently applied migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
