package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/rankr/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", r.configPath)
	return r.writePlain("✓ Wrote %s\nSet storage.backend = \"sqlite\" and run 'rankr setup database' to use SQLite.\n", r.configPath)
}

// SetupDatabase initializes the database and runs migrations. With --rollback it undoes the
// most recent migration instead.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("rollback") {
		return r.rollbackDatabase()
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	if r.config.Storage.Backend != shared.BackendSQLite {
		r.logger.Warn("storage.backend is not sqlite, the database will not be used", "backend", r.config.Storage.Backend)
	}
	return r.writePlain("✓ Database ready at %s\n", r.config.Database.Path)
}

func (r *Runner) rollbackDatabase() error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	r.logger.Warn("rolled back latest migration", "path", r.config.Database.Path)
	return r.writePlain("✓ Rolled back the latest migration in %s\n", r.config.Database.Path)
}
