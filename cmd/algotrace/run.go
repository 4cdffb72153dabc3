package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/algotrace/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute algorithms on a seeded input and print the report",
	Long: `Derives one input from the seed, runs every selected algorithm on it, stores the
run descriptor and prints the results and ranking. Without --algorithms every
algorithm accepting the input kind is run.`,
	Example: `  algotrace run --kind array --size 20 --seed 7 -a bubble-sort,quick-sort
  algotrace run --kind graph --vertices 8 --density 0.4 --metric steps`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cli.Run(cmd.Context(), options(cmd, inputOverrides(cmd.Flags())...), cmd.OutOrStdout())
		return err
	},
}

// inputFlags maps run/play flags to configuration keys.
var inputFlags = []struct {
	flag string
	key  string
}{
	{"kind", "input.kind"},
	{"size", "input.size"},
	{"vertices", "input.vertex_count"},
	{"density", "input.density"},
	{"seed", "input.seed"},
	{"target", "input.target"},
	{"metric", "settings.metric"},
	{"mode", "settings.mode"},
	{"speed-ms", "settings.speed_ms"},
}

func addInputFlags(fs *pflag.FlagSet) {
	fs.String("kind", "", "Input kind: array or graph")
	fs.Int("size", 0, "Array length")
	fs.Int("vertices", 0, "Graph vertex count")
	fs.Float64("density", 0, "Extra-edge probability of the graph, in [0,1]")
	fs.Int64("seed", 0, "Seed of the input generator")
	fs.Int("target", 0, "Value searched for (default: the middle element)")
	fs.String("metric", "", "Ranking metric: generationTimeMs, comparisons, swaps or steps")
	fs.String("mode", "", "Playback mode: synced or independent")
	fs.Int("speed-ms", 0, "Playback delay between frames in milliseconds")
	fs.StringSliceP("algorithms", "a", nil, "Algorithm ids to run (see 'algotrace catalog')")
}

// inputOverrides turns the flags the user set into key=value overrides.
func inputOverrides(fs *pflag.FlagSet) []string {
	var out []string
	for _, f := range inputFlags {
		if fs.Changed(f.flag) {
			out = append(out, fmt.Sprintf("%s=%s", f.key, fs.Lookup(f.flag).Value.String()))
		}
	}
	if fs.Changed("algorithms") {
		ids, _ := fs.GetStringSlice("algorithms")
		out = append(out, "algorithms="+strings.Join(ids, ","))
	}
	return out
}

func init() {
	rootCmd.AddCommand(runCmd)
	addInputFlags(runCmd.Flags())
}
