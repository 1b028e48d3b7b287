package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/db"
	"github.com/garrettladley/healthmesh/internal/migrations"
	"github.com/garrettladley/healthmesh/internal/paths"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = sqlDB.Close()
			}()

			names, err := migrations.Names()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%d migrations)\n", len(names))
			return nil
		},
	}
}

// openDB opens the local database, which applies any pending migrations.
func openDB(cmd *cobra.Command) (*sql.DB, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, err
	}

	dbPath, err := paths.DB()
	if err != nil {
		return nil, err
	}

	return db.Open(cmd.Context(), dbPath)
}
