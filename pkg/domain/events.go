package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart       EventType = "run_start"
	EventGenerateStart  EventType = "generate_start"
	EventGenerateFinish EventType = "generate_finish"
	EventRunFinish      EventType = "run_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// RunEvent marks the beginning or end of an Execute call.
type RunEvent struct {
	EventBase
	Algorithms []string  `json:"algorithms"`
	InputKind  InputKind `json:"input_kind"`
	Status     RunStatus `json:"status,omitempty"` // Set on run_finish
}

// GenerateEvent represents one trace generation.
type GenerateEvent struct {
	EventBase
	AlgorithmID string        `json:"algorithm_id"`
	Status      ResultStatus  `json:"status,omitempty"`
	Elapsed     time.Duration `json:"elapsed,omitempty"`
	Steps       int           `json:"steps,omitempty"`
	Err         string        `json:"err,omitempty"`
}

// LifecycleHooks defines callbacks for executor observability.
type LifecycleHooks struct {
	OnRunStart       func(context.Context, *RunEvent)
	OnGenerateStart  func(context.Context, *GenerateEvent)
	OnGenerateFinish func(context.Context, *GenerateEvent)
	OnRunFinish      func(context.Context, *RunEvent)
}
