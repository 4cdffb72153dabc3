package main

import (
	"fmt"
	"os"

	"github.com/aretw0/algotrace/internal/cli"
	"github.com/aretw0/algotrace/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "algotrace",
	Short: "algotrace compares algorithms step by step",
	Long: `algotrace runs sorting, searching and graph algorithms on the same seeded input,
records every step as a frame, ranks the results and plays the traces back side by side.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a configuration value (key.path=value), repeatable")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Write JSON instead of rendered markdown")
}

// options collects the persistent flags plus any command-specific overrides.
func options(cmd *cobra.Command, overrides ...string) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	sets, _ := cmd.Flags().GetStringArray("set")
	debug, _ := cmd.Flags().GetBool("debug")
	jsonMode, _ := cmd.Flags().GetBool("json")

	opts := cli.Options{
		ConfigPath: configPath,
		Overrides:  append(sets, overrides...),
		Debug:      debug,
		JSON:       jsonMode,
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		opts.Interactive = true
		if width, _, err := term.GetSize(fd); err == nil {
			opts.Width = width
		}
	}
	return opts
}
