package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/algotrace"
	"github.com/aretw0/algotrace/internal/config"
	"github.com/aretw0/algotrace/internal/presentation/graph"
	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/playback"
	"github.com/aretw0/algotrace/pkg/ranking"
	"github.com/aretw0/algotrace/pkg/registry"
	"github.com/aretw0/algotrace/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is the part of algotrace.Engine the HTTP adapter drives.
type Engine interface {
	Catalog() []registry.Algorithm
	Run(ctx context.Context, req algotrace.RunRequest) (*algotrace.Run, error)
	Resume(ctx context.Context, runID string) (*algotrace.Run, error)
	Rank(results []domain.Result, metric domain.Metric) []domain.RankEntry
	NewPlayer(results []domain.Result, opts ...playback.Option) *playback.Scheduler
	Sessions() *session.Manager
}

// Server serves runs, rankings and frames over JSON.
type Server struct {
	Engine Engine

	runs     *runCache
	gatherer prometheus.Gatherer
	clock    playback.Clock
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the registry exposed on /metrics (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithPlaybackClock sets the clock driving streamed playback.
func WithPlaybackClock(c playback.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithCacheSize bounds how many executed runs are kept in memory.
// Evicted runs are re-executed from their descriptor on demand.
func WithCacheSize(n int) Option {
	return func(s *Server) {
		s.runs = newRunCache(n)
	}
}

// NewServer creates a Server for engine.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:   engine,
		runs:     newRunCache(DefaultCacheSize),
		gatherer: prometheus.DefaultGatherer,
		clock:    playback.RealClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/algorithms", s.ListAlgorithms)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", s.ListRuns)
		r.Post("/", s.CreateRun)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRun)
			r.Delete("/", s.DeleteRun)
			r.Get("/ranking", s.GetRanking)
			r.Get("/frames/{algorithm}/{index}", s.GetFrame)
			r.Get("/playback", s.StreamPlayback)
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateRunRequest is the POST /runs body.
// Settings is decoded loosely, so "speed_ms": "250" is accepted.
type CreateRunRequest struct {
	Input      domain.InputConfig `json:"input"`
	Algorithms []string           `json:"algorithms"`
	Settings   map[string]any     `json:"settings,omitempty"`
}

// ResultSummary is a result without its trace.
type ResultSummary struct {
	AlgorithmID      string              `json:"algorithm_id"`
	Status           domain.ResultStatus `json:"status"`
	Steps            int                 `json:"steps"`
	Stats            domain.Stats        `json:"stats"`
	GenerationTimeMs float64             `json:"generation_time_ms"`
	FinalState       domain.FinalState   `json:"final_state"`
	Error            string              `json:"error,omitempty"`
}

// RunResponse is returned by POST /runs and GET /runs/{id}.
type RunResponse struct {
	Descriptor domain.RunDescriptor `json:"descriptor"`
	Results    []ResultSummary      `json:"results"`
	Ranking    []domain.RankEntry   `json:"ranking"`
}

func summarize(run *algotrace.Run) RunResponse {
	resp := RunResponse{
		Descriptor: run.Descriptor,
		Results:    make([]ResultSummary, 0, len(run.Results)),
		Ranking:    run.Ranking,
	}
	for _, r := range run.Results {
		resp.Results = append(resp.Results, ResultSummary{
			AlgorithmID:      r.AlgorithmID,
			Status:           r.Status,
			Steps:            len(r.Trace),
			Stats:            r.Stats,
			GenerationTimeMs: r.GenerationTimeMs,
			FinalState:       r.FinalState,
			Error:            r.Error,
		})
	}
	return resp
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListAlgorithms handles the GET /algorithms request.
func (s *Server) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Catalog())
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Sessions().List(r.Context())
	if err != nil {
		s.writeError(w, "list runs", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateRun handles the POST /runs request.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateRun: invalid request body", "err", err)
		return
	}

	settings := domain.DefaultSettings()
	if len(body.Settings) > 0 {
		if err := config.Decode(body.Settings, &settings); err != nil {
			s.writeError(w, "decode settings", err)
			return
		}
	}

	run, err := s.Engine.Run(r.Context(), algotrace.RunRequest{
		Input:      body.Input,
		Algorithms: body.Algorithms,
		Settings:   settings,
	})
	if err != nil {
		s.writeError(w, "run", err)
		return
	}
	s.runs.put(run)
	s.logger.Info("run created", "run_id", run.Descriptor.ID, "status", run.Descriptor.Status)
	s.writeJSON(w, http.StatusCreated, summarize(run))
}

// GetRun handles the GET /runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "get run", err)
		return
	}
	s.writeJSON(w, http.StatusOK, summarize(run))
}

// DeleteRun handles the DELETE /runs/{id} request.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Engine.Sessions().Delete(r.Context(), id); err != nil {
		s.writeError(w, "delete run", err)
		return
	}
	s.runs.remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// GetRanking handles GET /runs/{id}/ranking?metric=.
// Without a metric the run's own setting is used.
func (s *Server) GetRanking(w http.ResponseWriter, r *http.Request) {
	run, err := s.run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "get ranking", err)
		return
	}
	metric := run.Descriptor.Settings.Metric
	if q := r.URL.Query().Get("metric"); q != "" {
		metric, err = ranking.ParseMetric(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"metric":  metric,
		"ranking": s.Engine.Rank(run.Results, metric),
	})
}

// GetFrame handles GET /runs/{id}/frames/{algorithm}/{index}.
// With ?format=mermaid a graph frame is returned as a Mermaid flowchart.
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "frame index must be an integer", http.StatusBadRequest)
		return
	}
	run, err := s.run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "get frame", err)
		return
	}
	algorithm := chi.URLParam(r, "algorithm")
	res, ok := run.Result(algorithm)
	if !ok {
		http.Error(w, fmt.Sprintf("algorithm %q is not part of this run", algorithm), http.StatusNotFound)
		return
	}
	if index < 0 || index >= len(res.Trace) {
		http.Error(w, fmt.Sprintf("frame %d out of range [0,%d)", index, len(res.Trace)), http.StatusNotFound)
		return
	}
	frame := res.Trace[index]
	switch r.URL.Query().Get("format") {
	case "", "json":
		s.writeJSON(w, http.StatusOK, frame)
	case "mermaid":
		if frame.Graph == nil {
			http.Error(w, "mermaid output is only available for graph frames", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, graph.GenerateMermaid(frame.Graph))
	default:
		http.Error(w, "unknown frame format", http.StatusBadRequest)
	}
}

// StreamPlayback handles GET /runs/{id}/playback (SSE).
// The run's traces are played from the start and each snapshot is sent as
// a "snapshot" event until every track is finished or the client leaves.
func (s *Server) StreamPlayback(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	run, err := s.run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "stream playback", err)
		return
	}

	settings := run.Descriptor.Settings
	speed := settings.Speed()
	if q := r.URL.Query().Get("speed_ms"); q != "" {
		ms, err := strconv.Atoi(q)
		if err != nil || ms <= 0 {
			http.Error(w, "speed_ms must be a positive integer", http.StatusBadRequest)
			return
		}
		speed = time.Duration(ms) * time.Millisecond
	}
	mode := settings.Mode
	if q := r.URL.Query().Get("mode"); q != "" {
		mode = domain.PlaybackMode(q)
	}

	// Coalesced: the loop always reads the latest snapshot.
	changed := make(chan struct{}, 1)
	player := s.Engine.NewPlayer(run.Results,
		playback.WithClock(s.clock),
		playback.WithMode(mode),
		playback.WithSpeed(speed),
		playback.WithOnChange(func(playback.Snapshot) {
			select {
			case changed <- struct{}{}:
			default:
			}
		}),
	)
	defer player.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	send := func(event string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("playback snapshot encode failed", "err", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	send("snapshot", player.Snapshot())
	player.Play("")
	for !player.Finished() {
		select {
		case <-r.Context().Done():
			s.logger.Debug("playback client disconnected", "run_id", run.Descriptor.ID)
			return
		case <-changed:
			send("snapshot", player.Snapshot())
		}
	}
	send("done", player.Snapshot())
}

// run returns a cached run or re-executes it from its descriptor.
func (s *Server) run(ctx context.Context, id string) (*algotrace.Run, error) {
	if run, ok := s.runs.get(id); ok {
		return run, nil
	}
	run, err := s.Engine.Resume(ctx, id)
	if err != nil {
		return nil, err
	}
	s.runs.put(run)
	return run, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
