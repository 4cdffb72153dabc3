/*
Package algotrace generates step-by-step execution traces of classic algorithms
so they can be compared, ranked and replayed side by side.

# Concept

A run derives one shared input from a seed (an integer array or a connected
weighted graph), executes every selected algorithm against its own copy of
that input and records each algorithm's full sequence of frames. Every frame
is a complete snapshot of the data plus highlights, so a renderer can show any
step without replaying earlier ones. Results are ranked by a metric
(generation time, comparisons, swaps or steps) and the traces can be played
back on a shared clock or on independent ones.

Runs are deterministic: the same seed and algorithm selection always produce
the same traces, which is what lets a persisted run be resumed.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/algotrace"
		"github.com/aretw0/algotrace/pkg/domain"
	)

	func main() {
		eng, err := algotrace.New()
		if err != nil {
			log.Fatal(err)
		}

		run, err := eng.Run(context.Background(), algotrace.RunRequest{
			Input:      domain.InputConfig{Kind: domain.InputArray, Size: 10, Seed: 42},
			Algorithms: []string{"bubble-sort", "quick-sort", "merge-sort"},
			Settings:   domain.Settings{Metric: domain.MetricSteps},
		})
		if err != nil {
			log.Fatal(err)
		}

		for _, entry := range run.Ranking {
			fmt.Println(entry.Place, entry.AlgorithmID, entry.MetricValue)
		}
	}

Persistence is pluggable through ports.DescriptorStore (memory, file and
redis adapters are provided) and playback through pkg/playback.
*/
package algotrace
