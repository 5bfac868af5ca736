package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rushteam/feedrank/model"
)

func newWeightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the effective action weight table",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			table, err := s.WeightTable()
			if err != nil {
				return err
			}
			printWeights(cmd, table)
			return nil
		},
	}
}

func printWeights(cmd *cobra.Command, table *model.WeightTable) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tWEIGHT")
	for _, a := range table.ByMagnitude() {
		weight, _ := table.Weight(a)
		fmt.Fprintf(w, "%s\t%+.2f\n", a, weight)
	}
	fmt.Fprintf(w, "max score\t%.2f\n", table.MaxScore())
	_ = w.Flush()
}
