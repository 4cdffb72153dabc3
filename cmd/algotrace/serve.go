package main

import (
	"fmt"

	"github.com/aretw0/algotrace/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves runs, rankings, frames, streamed playback and Prometheus metrics over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		ready := make(chan string, 1)
		go func() {
			if bound, ok := <-ready; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Serving algotrace on %s\n", bound)
			}
		}()
		err := cli.Serve(sigCtx, options(cmd), addr, ready)
		if sig := sigCtx.Signal(); sig != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped on %v\n", sig)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default: server.addr from the configuration)")
}
