package main

import (
	"time"

	"github.com/aretw0/algotrace/internal/cli"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [run-id]",
	Short: "Play the traces of a run frame by frame",
	Long: `Animates every trace of a run in the terminal. With a run id the stored run is
re-executed; otherwise a new run is made from the configuration and flags.
--headless steps the clock without waiting and prints every snapshot, which
is how playback is scripted or piped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		opts := options(cmd, inputOverrides(cmd.Flags())...)

		po := cli.PlayOptions{Headless: headless || !opts.Interactive}
		if len(args) == 1 {
			po.RunID = args[0]
		}
		if cmd.Flags().Changed("mode") {
			mode, _ := cmd.Flags().GetString("mode")
			po.Mode = domain.PlaybackMode(mode)
		}
		if cmd.Flags().Changed("speed-ms") {
			ms, _ := cmd.Flags().GetInt("speed-ms")
			po.Speed = time.Duration(ms) * time.Millisecond
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		return cli.Play(sigCtx, opts, po, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	addInputFlags(playCmd.Flags())
	playCmd.Flags().Bool("headless", false, "Advance a manual clock and print every snapshot (implied when stdout is not a terminal)")
}
