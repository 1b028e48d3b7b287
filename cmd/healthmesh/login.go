package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/garrettladley/healthmesh/internal/credential"
)

var errNoPassphrase = errors.New("HEALTH_PASS is not set; nothing to check the access key against")

func loginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the gateway access key locally",
		Long:  "Prompts for the access key, checks it against HEALTH_PASS and stores it in the local database.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, stderrLogger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if strings.TrimSpace(a.cfg.Passphrase) == "" {
				return errNoPassphrase
			}

			if token == "" {
				token, err = prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "Access key: ")
				if err != nil {
					return err
				}
			}

			if err := credential.CheckPassphrase(token, a.cfg.Passphrase); err != nil {
				return err
			}
			if err := a.store.Set(ctx, token); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "access key (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, stderrLogger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.store.Delete(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			if a.tokenFromEnv() {
				fmt.Fprintln(cmd.OutOrStdout(), "HP_TOKEN is still set and will be used for requests.")
			}
			return nil
		},
	}
}

// prompt reads one line, without echo when in is a terminal.
func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
