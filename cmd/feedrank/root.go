package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/rushteam/feedrank/config/builders"
)

// newRootCmd 构建命令树。
func newRootCmd(v, c, d string) *cobra.Command {
	root := &cobra.Command{
		Use:   "feedrank",
		Short: "Engagement-weighted feed ranking with author diversity",
		Long: `feedrank scores candidate posts from predicted engagement probabilities,
adds a video-duration bonus, and attenuates repeated authors so that no single
author dominates the feed.

Run 'feedrank rank' to rank the built-in sample posts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "settings file (YAML); FEEDRANK_* env vars override it")
	root.PersistentFlags().String("log-level", "", "override log level (debug, info, warn, error, disabled)")

	root.AddCommand(
		newRankCmd(),
		newWeightsCmd(),
		newVersionCmd(v, c, d),
	)
	return root
}

// Execute runs the root command.
func Execute(v, c, d string) {
	if err := newRootCmd(v, c, d).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd(v, c, d string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "feedrank %s (commit %s, built %s)\n", v, c, d)
		},
	}
}
