package domain

import (
	"slices"
	"time"
)

// RunStatus is the persisted outcome of a run.
type RunStatus string

const (
	RunCreated   RunStatus = "created"   // Descriptor written, execution pending
	RunCompleted RunStatus = "completed" // Every algorithm finished
	RunPartial   RunStatus = "partial"   // At least one algorithm failed
	RunFailed    RunStatus = "failed"    // Every algorithm failed
)

// RunDescriptor is the session-scoped record of one run.
// Only Input and Algorithms are needed to reproduce it.
type RunDescriptor struct {
	ID          string      `json:"id"`
	Seed        int64       `json:"seed"`
	CreatedAt   time.Time   `json:"created_at"`
	Input       Input       `json:"input"`
	InputConfig InputConfig `json:"input_config"`
	Algorithms  []string    `json:"algorithms"`
	Settings    Settings    `json:"settings"`
	Status      RunStatus   `json:"status"`
}

// RunStatusOf summarizes a set of results.
func RunStatusOf(results []Result) RunStatus {
	if len(results) == 0 {
		return RunCreated
	}
	failed := 0
	for _, r := range results {
		if r.Status == StatusError {
			failed++
		}
	}
	switch {
	case failed == 0:
		return RunCompleted
	case failed == len(results):
		return RunFailed
	default:
		return RunPartial
	}
}

// Clone returns a deep copy of the descriptor.
func (d RunDescriptor) Clone() RunDescriptor {
	out := d
	out.Input = d.Input.Clone()
	out.Algorithms = slices.Clone(d.Algorithms)
	if d.InputConfig.Target != nil {
		t := *d.InputConfig.Target
		out.InputConfig.Target = &t
	}
	return out
}
