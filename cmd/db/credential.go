package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/credential"
)

func credentialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credential",
		Short: "Show whether an access key is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = sqlDB.Close()
			}()

			token, err := credential.NewStore(sqlDB).Get(cmd.Context())
			if errors.Is(err, credential.ErrNoCredential) {
				fmt.Fprintln(cmd.OutOrStdout(), "Status: no access key stored")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Status: stored (%s)\n", mask(token))
			return nil
		},
	}
}

// mask keeps the last four characters.
func mask(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return "****"
	}
	return "****" + string(r[len(r)-4:])
}
