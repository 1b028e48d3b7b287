package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/assistant"
)

func assistantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Draft LinkedIn posts with the gateway assistant",
	}
	cmd.AddCommand(assistantSendCmd())
	return cmd
}

func assistantSendCmd() *cobra.Command {
	var approve bool

	cmd := &cobra.Command{
		Use:   "send <text>",
		Short: "Send a prompt and print the drafted reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx, stderrLogger())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			conv := assistant.New(a.client.LinkedIn, assistant.WithLogger(a.logger))

			reply, err := conv.Send(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if reply.Error != "" {
				return fmt.Errorf("%s (%s)", reply.Content, reply.Error)
			}

			out := cmd.OutOrStdout()
			if reply.Draft != "" {
				fmt.Fprintln(out, reply.Draft)
			} else {
				fmt.Fprintln(out, reply.Content)
			}

			if !approve {
				return nil
			}

			posted, err := conv.Approve(ctx, reply.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nPosted:\n%s\n", posted.PostResponse)
			return nil
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "post the drafted reply immediately")
	return cmd
}
