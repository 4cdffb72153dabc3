package cli

import (
	"github.com/aretw0/algotrace/internal/config"
)

// Options are the flags shared by every command.
type Options struct {
	ConfigPath string   // YAML or JSON file; missing means defaults
	Overrides  []string // key.path=value pairs applied over the file
	Debug      bool     // Debug logging on stderr
	JSON       bool     // Machine-readable output

	Interactive bool // Stdout is a terminal
	Width       int  // Wrap width for rendered markdown; 0 disables wrapping
}

// LoadConfig reads the configuration file and applies the overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	return cfg.Apply(opts.Overrides)
}
