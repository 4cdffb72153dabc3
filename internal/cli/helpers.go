package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/algotrace/internal/presentation/tui"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// Unlike signal.NotifyContext it remembers which signal arrived.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sc.sigCh)
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// Printer writes command output as rendered markdown or JSON.
type Printer struct {
	W           io.Writer
	JSON        bool
	Interactive bool // Styled markdown for terminals
	Width       int
}

// NewPrinter creates a Printer for the command options.
func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{W: w, JSON: opts.JSON, Interactive: opts.Interactive, Width: opts.Width}
}

// Markdown renders md, or writes v as indented JSON in JSON mode.
func (p *Printer) Markdown(md string, v any) error {
	if p.JSON {
		return p.Value(v)
	}
	render, err := tui.NewRenderer(p.Interactive, p.Width)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = io.WriteString(p.W, out)
	return err
}

// Value writes v as indented JSON.
func (p *Printer) Value(v any) error {
	enc := json.NewEncoder(p.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Line writes one formatted line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.W, format+"\n", args...)
}
