package domain

import "errors"

// ErrGeneration wraps any failure raised by a trace generator.
var ErrGeneration = errors.New("trace generation failed")

// ErrConfig is returned when an algorithm id is unknown or has no generator bound to it.
var ErrConfig = errors.New("invalid algorithm configuration")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrResultFrozen is returned when a Result that already left the running state is transitioned again.
var ErrResultFrozen = errors.New("result already finalized")

// ErrInvalidInput is returned when an Input does not match its declared kind.
var ErrInvalidInput = errors.New("invalid input")
