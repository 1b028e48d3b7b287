package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garrettladley/healthmesh/internal/blog"
	"github.com/garrettladley/healthmesh/internal/config"
)

const renderWidth = 80

func blogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Read posts from the posts directory",
	}
	cmd.AddCommand(blogListCmd(), blogShowCmd())
	return cmd
}

func blogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			idx, dir, err := openPosts(cfg)
			if err != nil {
				return err
			}

			posts := idx.All()
			if len(posts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No posts in %s\n", dir)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", displayDate(p), p.Slug, p.Title)
			}
			return tw.Flush()
		},
	}
}

func blogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Render a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			idx, _, err := openPosts(cfg)
			if err != nil {
				return err
			}

			p, ok := idx.Find(args[0])
			if !ok {
				return fmt.Errorf("post not found: %s", args[0])
			}

			out, err := blog.Render(p, renderWidth)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func displayDate(p blog.Post) string {
	if p.PublishedAt.IsZero() {
		return "----------"
	}
	return p.PublishedAt.Format("2006-01-02")
}
