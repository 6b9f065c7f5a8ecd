package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrdc/salesdwh/internal/db"
	"github.com/mrdc/salesdwh/internal/logging"
	"github.com/mrdc/salesdwh/internal/schema"
)

var migrateDropExisting bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the sales_data schema and apply its foreign keys",
	Long: `Create the six warehouse tables and attach the five foreign-key
constraints binding orders_table to its dimensions. The migration is
idempotent: existing tables and constraints are left untouched.

Example:
  salesdwh migrate --connection "postgres://..."`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDropExisting, "drop-existing", false,
		"drop the existing schema before migrating")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if migrateDropExisting {
		logging.Warn().Msg("Dropping existing schema")
		if err := schema.Drop(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating tables")
	if err := schema.Create(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	logging.Info().Msg("Applying foreign keys")
	if err := schema.ApplyConstraints(ctx, pool); err != nil {
		if name := schema.ViolatedConstraint(err); name != "" {
			return fmt.Errorf("existing fact rows violate %s; fix upstream data and retry: %w", name, err)
		}
		return fmt.Errorf("failed to apply constraints: %w", err)
	}

	if err := db.SaveMetadata(ctx, pool, schema.SchemaVersion); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("schema_version", schema.SchemaVersion).
		Msg("Migration complete")

	return nil
}
