package domain

import (
	"fmt"
	"slices"
	"time"
)

// ResultStatus is the lifecycle position of a Result.
type ResultStatus string

const (
	StatusRunning  ResultStatus = "running"  // Generator invoked, not returned yet
	StatusFinished ResultStatus = "finished" // Trace produced
	StatusError    ResultStatus = "error"    // Generator or configuration failed
)

// Stats summarizes a trace. Comparisons and Swaps are only defined for
// comparison and search families.
type Stats struct {
	Comparisons *int `json:"comparisons,omitempty"`
	Swaps       *int `json:"swaps,omitempty"`
	Steps       int  `json:"steps"`
}

// FinalState is read from a fixed canonical field of the last frame.
type FinalState struct {
	Values    []int   `json:"values,omitempty"`
	Edges     []Edge  `json:"edges,omitempty"`
	Distances []int   `json:"distances,omitempty"`
	Matrix    [][]int `json:"matrix,omitempty"`
}

// FinalStateOf projects the canonical field of a frame.
func FinalStateOf(f Frame) FinalState {
	switch f.Kind {
	case FrameArray:
		if f.Array != nil {
			return FinalState{Values: slices.Clone(f.Array.Values)}
		}
	case FrameGraph:
		if f.Graph != nil {
			return FinalState{
				Edges:     slices.Clone(f.Graph.SelectedEdges),
				Distances: slices.Clone(f.Graph.Distances),
			}
		}
	case FrameMatrix:
		if f.Matrix != nil {
			return FinalState{Matrix: CloneMatrix(f.Matrix.Cells)}
		}
	}
	return FinalState{}
}

// Result is the outcome of one algorithm execution.
// It is created running and transitions exactly once to finished or error.
type Result struct {
	AlgorithmID      string       `json:"algorithm_id"`
	Status           ResultStatus `json:"status"`
	Trace            Trace        `json:"trace"`
	FinalState       FinalState   `json:"final_state"`
	GenerationTimeMs float64      `json:"generation_time_ms"`
	Stats            Stats        `json:"stats"`
	Error            string       `json:"error,omitempty"`
}

// NewResult creates a running Result.
func NewResult(algorithmID string) *Result {
	return &Result{
		AlgorithmID: algorithmID,
		Status:      StatusRunning,
	}
}

// Finish records a successful generation.
func (r *Result) Finish(trace Trace, elapsed time.Duration, stats Stats) error {
	if r.Status != StatusRunning {
		return fmt.Errorf("%w: %s is %s", ErrResultFrozen, r.AlgorithmID, r.Status)
	}
	r.Trace = trace
	r.FinalState = FinalStateOf(trace.Last())
	r.GenerationTimeMs = Milliseconds(elapsed)
	r.Stats = stats
	r.Status = StatusFinished
	return nil
}

// Fail records a failed generation. The trace is replaced by a single frame echoing the input.
func (r *Result) Fail(cause error, in Input, elapsed time.Duration) error {
	if r.Status != StatusRunning {
		return fmt.Errorf("%w: %s is %s", ErrResultFrozen, r.AlgorithmID, r.Status)
	}
	r.Trace = Trace{InputFrame(in, "error")}
	r.FinalState = FinalStateOf(r.Trace.Last())
	r.GenerationTimeMs = Milliseconds(elapsed)
	r.Stats = Stats{Steps: len(r.Trace)}
	r.Error = cause.Error()
	r.Status = StatusError
	return nil
}

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
