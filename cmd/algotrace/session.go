package main

import (
	"github.com/aretw0/algotrace/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"runs"},
	Short:   "Manage stored runs",
	Long:    `List, inspect, remove and resume the run descriptors kept by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.ListSessions(cmd.Context(), options(cmd), cmd.OutOrStdout())
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <run-id>",
	Short: "Print the descriptor of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.InspectSession(cmd.Context(), options(cmd), args[0], cmd.OutOrStdout())
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <run-id>...",
	Short: "Remove one or more runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RemoveSessions(cmd.Context(), options(cmd), args, cmd.OutOrStdout())
	},
}

var sessionResumeCmd = &cobra.Command{
	Use:   "resume <run-id>",
	Short: "Re-execute a stored run and print its report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cli.Resume(cmd.Context(), options(cmd), args[0], cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd, sessionInspectCmd, sessionRmCmd, sessionResumeCmd)
}
