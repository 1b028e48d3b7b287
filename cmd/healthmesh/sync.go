package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/dashboard"
)

func syncCmd() *cobra.Command {
	kinds := dashboard.SyncKinds()
	valid := make([]string, len(kinds))
	for i, k := range kinds {
		valid[i] = string(k)
	}

	return &cobra.Command{
		Use:       "sync [garmin|nutrition|all]",
		Short:     "Refresh upstream data, then reload the dashboard",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind := dashboard.SyncAll
			if len(args) == 1 {
				k, err := dashboard.ParseSyncKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}

			a, err := openApp(ctx, stderrLogger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			vm, err := a.loader().Sync(ctx, kind)
			var syncErr *dashboard.SyncError
			if errors.As(err, &syncErr) {
				return fmt.Errorf("sync failed: %w", syncErr)
			}
			if err != nil {
				return fmt.Errorf("failed to reload dashboard: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %s\n\n", kind)
			return writeSummary(cmd.OutOrStdout(), vm)
		},
	}
}
