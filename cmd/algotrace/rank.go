package main

import (
	"github.com/aretw0/algotrace/internal/cli"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <run-id>",
	Short: "Rank the algorithms of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, _ := cmd.Flags().GetString("metric")
		_, err := cli.Rank(cmd.Context(), options(cmd), args[0], metric, cmd.OutOrStdout())
		return err
	},
}

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"ls-algorithms"},
	Short:   "List the available algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		family, _ := cmd.Flags().GetString("family")
		return cli.Catalog(options(cmd), family, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.Flags().StringP("metric", "m", "", "Ranking metric (default: the run's metric)")

	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().String("family", "", "Only list one family: sorting, searching, mst, sssp or apsp")
}
