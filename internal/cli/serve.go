package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/algotrace/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds how long in-flight requests may take after a stop signal.
const ShutdownTimeout = 5 * time.Second

// Serve exposes the engine over HTTP until ctx is cancelled.
// An empty addr uses the configured server address. ready, when non-nil,
// receives the bound address once the listener is open.
func Serve(ctx context.Context, opts Options, addr string, ready chan<- string) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	env, err := Setup(opts, reg)
	if err != nil {
		return err
	}
	defer env.Close()

	if addr == "" {
		addr = env.Config.Server.Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler: httpadapter.NewHandler(env.Engine,
			httpadapter.WithGatherer(reg),
			httpadapter.WithLogger(env.Logger),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("server listening", "addr", ln.Addr().String(), "backend", env.Config.Store.Backend)
		serverErrors <- srv.Serve(ln)
	}()
	if ready != nil {
		ready <- ln.Addr().String()
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		env.Logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			env.Logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			return srv.Close()
		}
		return nil
	}
}
