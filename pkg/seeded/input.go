package seeded

import (
	"errors"
	"fmt"

	"github.com/aretw0/algotrace/pkg/domain"
)

// Input bounds. Traces keep a full snapshot per step, so trace memory grows
// with the cube of these sizes for the quadratic sorts and the graph families.
const (
	MaxArraySize   = 128
	MaxVertexCount = 24
)

// ErrTooLarge is returned for inputs beyond MaxArraySize or MaxVertexCount.
var ErrTooLarge = errors.New("seeded: input exceeds size limit")

// CheckLimits rejects configs whose input would exceed the size limits.
// The error wraps domain.ErrInvalidInput.
func CheckLimits(cfg domain.InputConfig) error {
	switch cfg.Kind {
	case domain.InputArray:
		if cfg.Size > MaxArraySize {
			return fmt.Errorf("%w: %w: array size %d > %d", domain.ErrInvalidInput, ErrTooLarge, cfg.Size, MaxArraySize)
		}
	case domain.InputGraph:
		if cfg.VertexCount > MaxVertexCount {
			return fmt.Errorf("%w: %w: vertex count %d > %d", domain.ErrInvalidInput, ErrTooLarge, cfg.VertexCount, MaxVertexCount)
		}
	}
	return nil
}

// BuildInput derives the shared input described by cfg.
// Generator argument errors are wrapped with domain.ErrInvalidInput.
// Array inputs carry their sorted view; without an explicit target the
// middle element of the sorted view is searched for, so searches succeed.
func BuildInput(cfg domain.InputConfig) (domain.Input, error) {
	if err := CheckLimits(cfg); err != nil {
		return domain.Input{}, err
	}
	switch cfg.Kind {
	case domain.InputArray:
		values, err := GenerateArray(cfg.Size, cfg.Seed)
		if err != nil {
			return domain.Input{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		sorted, err := GenerateSortedArray(cfg.Size, cfg.Seed)
		if err != nil {
			return domain.Input{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		target := cfg.Target
		if target == nil && len(sorted) > 0 {
			mid := sorted[len(sorted)/2]
			target = &mid
		}
		return domain.NewArrayInput(values, sorted, target), nil

	case domain.InputGraph:
		edges, err := GenerateGraph(cfg.VertexCount, cfg.Density, cfg.Seed)
		if err != nil {
			return domain.Input{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return domain.NewGraphInput(cfg.VertexCount, edges), nil
	}
	return domain.Input{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, cfg.Kind)
}
