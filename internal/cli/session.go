package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/algotrace/pkg/domain"
)

// ListSessions prints the ids of stored runs.
func ListSessions(ctx context.Context, opts Options, w io.Writer) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	ids, err := env.Engine.Sessions().List(ctx)
	if err != nil {
		return fmt.Errorf("error listing runs: %w", err)
	}
	p := NewPrinter(w, opts)
	if p.JSON {
		if ids == nil {
			ids = []string{}
		}
		return p.Value(ids)
	}
	if len(ids) == 0 {
		p.Line("No stored runs found.")
		return nil
	}
	p.Line("Stored Runs:")
	for _, id := range ids {
		p.Line("- %s", id)
	}
	return nil
}

// InspectSession prints a stored run descriptor as JSON.
func InspectSession(ctx context.Context, opts Options, runID string, w io.Writer) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	d, err := env.Engine.Sessions().Load(ctx, runID)
	if err != nil {
		return fmt.Errorf("error loading run '%s': %w", runID, err)
	}
	return NewPrinter(w, opts).Value(d)
}

// RemoveSessions deletes stored runs. Every id is attempted; the errors are joined.
func RemoveSessions(ctx context.Context, opts Options, runIDs []string, w io.Writer) error {
	env, err := Setup(opts, nil)
	if err != nil {
		return err
	}
	defer env.Close()

	p := NewPrinter(w, opts)
	var errs []error
	for _, id := range runIDs {
		exists, err := env.Engine.Sessions().Exists(ctx, id)
		if err == nil && !exists {
			err = domain.ErrRunNotFound
		}
		if err == nil {
			err = env.Engine.Sessions().Delete(ctx, id)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
			continue
		}
		p.Line("Removed run '%s'", id)
	}
	return errors.Join(errs...)
}
