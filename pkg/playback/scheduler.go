package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/algotrace/internal/logging"
	"github.com/aretw0/algotrace/pkg/domain"
)

// Snapshot is the state handed to change listeners.
type Snapshot = domain.PlaybackSnapshot

// MinSpeed is the shortest accepted tick delay.
const MinSpeed = time.Millisecond

// Track identifies one trace and its frame count.
type Track struct {
	ID     string
	Length int
}

// TracksFrom builds one track per result, keyed by algorithm id.
func TracksFrom(results []domain.Result) []Track {
	tracks := make([]Track, 0, len(results))
	for _, r := range results {
		tracks = append(tracks, Track{ID: r.AlgorithmID, Length: len(r.Trace)})
	}
	return tracks
}

type track struct {
	id     string
	length int
	index  int
	status domain.TrackStatus
	speed  time.Duration
}

func (t *track) last() int { return t.length - 1 }

// handle is the scheduler's record of an armed timer. Callbacks compare
// their handle with the current one and drop themselves when it changed.
type handle struct {
	timer Timer
}

// Scheduler drives the frame index of every track.
// All methods are safe for concurrent use and never fail; unknown track ids are ignored.
type Scheduler struct {
	mu sync.Mutex

	clock    Clock
	mode     domain.PlaybackMode
	speed    time.Duration
	tracks   []*track
	byID     map[string]*track
	timers   map[string]*handle // Independent mode, one per playing track
	shared   *handle            // Synced mode
	syncPlay bool
	closed   bool

	onChange func(Snapshot)
	logger   *slog.Logger
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithClock sets the timer source. Defaults to RealClock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithMode sets the initial mode. Defaults to synced.
func WithMode(m domain.PlaybackMode) Option {
	return func(s *Scheduler) {
		s.mode = m
	}
}

// WithSpeed sets the initial tick delay of every track and of the shared clock.
func WithSpeed(d time.Duration) Option {
	return func(s *Scheduler) {
		s.speed = d
	}
}

// WithOnChange registers a listener called after every state change.
// It runs outside the scheduler lock and may call back into the scheduler.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Scheduler) {
		s.onChange = fn
	}
}

// WithLogger configures a logger for the Scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// New creates a Scheduler with every track stopped at frame 0.
// Tracks shorter than one frame are treated as one frame long; duplicate ids keep the first.
func New(tracks []Track, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  RealClock{},
		mode:   domain.ModeSynced,
		speed:  domain.DefaultSpeed,
		byID:   make(map[string]*track, len(tracks)),
		timers: make(map[string]*handle),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mode != domain.ModeIndependent {
		s.mode = domain.ModeSynced
	}
	s.speed = clampSpeed(s.speed)

	for _, tr := range tracks {
		if _, dup := s.byID[tr.ID]; dup {
			continue
		}
		t := &track{
			id:     tr.ID,
			length: max(tr.Length, 1),
			status: domain.TrackStopped,
			speed:  s.speed,
		}
		s.tracks = append(s.tracks, t)
		s.byID[t.id] = t
	}
	return s
}

func clampSpeed(d time.Duration) time.Duration {
	if d <= 0 {
		return domain.DefaultSpeed
	}
	return max(d, MinSpeed)
}

// targets resolves a track id. The empty id selects every track.
func (s *Scheduler) targets(trackID string) []*track {
	if trackID == "" {
		return s.tracks
	}
	if t, ok := s.byID[trackID]; ok {
		return []*track{t}
	}
	return nil
}

// update runs fn under the lock and notifies listeners when it reports a change.
func (s *Scheduler) update(fn func() bool) {
	s.mu.Lock()
	if s.closed || !fn() {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	listener := s.onChange
	s.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
}

// Play starts playback. A finished track restarts from frame 0.
// In synced mode Play always targets every track and starts the shared clock.
func (s *Scheduler) Play(trackID string) {
	s.update(func() bool {
		if s.mode == domain.ModeSynced {
			return s.playSyncedLocked()
		}
		changed := false
		for _, t := range s.targets(trackID) {
			if t.status == domain.TrackPlaying {
				continue
			}
			if t.status == domain.TrackFinished {
				t.index = 0
			}
			t.status = domain.TrackPlaying
			s.armTrackLocked(t)
			changed = true
		}
		return changed
	})
}

func (s *Scheduler) playSyncedLocked() bool {
	if len(s.tracks) == 0 {
		return false
	}
	allFinished := true
	for _, t := range s.tracks {
		if t.status != domain.TrackFinished {
			allFinished = false
		}
	}
	changed := false
	for _, t := range s.tracks {
		switch {
		case allFinished:
			t.index = 0
			t.status = domain.TrackPlaying
			changed = true
		case t.status != domain.TrackFinished && t.status != domain.TrackPlaying:
			t.status = domain.TrackPlaying
			changed = true
		}
	}
	if !s.syncPlay {
		s.syncPlay = true
		s.armSharedLocked()
		changed = true
	}
	return changed
}

// Pause stops playback. In synced mode it pauses the shared clock and every playing track.
func (s *Scheduler) Pause(trackID string) {
	s.update(func() bool {
		if s.mode == domain.ModeSynced {
			trackID = ""
		}
		changed := false
		for _, t := range s.targets(trackID) {
			if t.status != domain.TrackPlaying {
				continue
			}
			t.status = domain.TrackPaused
			s.disarmTrackLocked(t.id)
			changed = true
		}
		return s.settleSyncedLocked() || changed
	})
}

// Step moves a track by delta frames and pauses it.
func (s *Scheduler) Step(trackID string, delta int) {
	s.update(func() bool {
		changed := false
		for _, t := range s.targets(trackID) {
			s.disarmTrackLocked(t.id)
			t.index = clamp(t.index+delta, 0, t.last())
			t.status = domain.TrackPaused
			changed = true
		}
		return s.settleSyncedLocked() || changed
	})
}

// Seek moves a track to index, clamped to its frame range, keeping its state.
// A finished track moved before its last frame becomes paused. A playing
// track keeps playing and, in independent mode, restarts its tick delay.
func (s *Scheduler) Seek(trackID string, index int) {
	s.update(func() bool {
		changed := false
		for _, t := range s.targets(trackID) {
			t.index = clamp(index, 0, t.last())
			switch t.status {
			case domain.TrackFinished:
				if t.index < t.last() {
					t.status = domain.TrackPaused
				}
			case domain.TrackPlaying:
				if s.mode == domain.ModeIndependent {
					s.disarmTrackLocked(t.id)
					s.armTrackLocked(t)
				}
			}
			changed = true
		}
		return changed
	})
}

// SetSpeed changes the tick delay, effective from the next tick.
// In synced mode it sets the shared speed and every track's speed.
func (s *Scheduler) SetSpeed(trackID string, d time.Duration) {
	d = clampSpeed(d)
	s.update(func() bool {
		if s.mode == domain.ModeSynced {
			s.speed = d
			trackID = ""
		}
		targets := s.targets(trackID)
		for _, t := range targets {
			t.speed = d
		}
		return len(targets) > 0 || s.mode == domain.ModeSynced
	})
}

// Reset stops a track and rewinds it to frame 0.
func (s *Scheduler) Reset(trackID string) {
	s.update(func() bool {
		targets := s.targets(trackID)
		for _, t := range targets {
			s.disarmTrackLocked(t.id)
			t.index = 0
			t.status = domain.TrackStopped
		}
		return s.settleSyncedLocked() || len(targets) > 0
	})
}

// SetMode switches between independent and synced playback.
// Every timer is released and playing tracks become paused.
func (s *Scheduler) SetMode(mode domain.PlaybackMode) {
	if mode != domain.ModeIndependent && mode != domain.ModeSynced {
		s.logger.Warn("ignoring unknown playback mode", "mode", mode)
		return
	}
	s.update(func() bool {
		if mode == s.mode {
			return false
		}
		s.stopAllLocked()
		for _, t := range s.tracks {
			if t.status == domain.TrackPlaying {
				t.status = domain.TrackPaused
			}
		}
		s.mode = mode
		return true
	})
}

// Close releases every timer. The scheduler ignores all calls afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopAllLocked()
	for _, t := range s.tracks {
		if t.status == domain.TrackPlaying {
			t.status = domain.TrackPaused
		}
	}
	s.closed = true
}

// Snapshot returns the current state of every track.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns the state of one track.
func (s *Scheduler) State(trackID string) (domain.TrackState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[trackID]
	if !ok {
		return domain.TrackState{}, false
	}
	return stateOf(t), true
}

// Finished reports whether every track sits on its last frame, finished.
func (s *Scheduler) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tracks {
		if t.status != domain.TrackFinished {
			return false
		}
	}
	return true
}

// Mode returns the active mode.
func (s *Scheduler) Mode() domain.PlaybackMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Scheduler) snapshotLocked() Snapshot {
	snap := Snapshot{
		Mode:   s.mode,
		Tracks: make([]domain.TrackState, 0, len(s.tracks)),
	}
	if s.mode == domain.ModeSynced {
		snap.Sync = &domain.SyncState{IsPlaying: s.syncPlay, Speed: s.speed}
	}
	for _, t := range s.tracks {
		snap.Tracks = append(snap.Tracks, stateOf(t))
	}
	return snap
}

func stateOf(t *track) domain.TrackState {
	return domain.TrackState{
		TrackID:           t.id,
		CurrentFrameIndex: t.index,
		Length:            t.length,
		IsPlaying:         t.status == domain.TrackPlaying,
		Speed:             t.speed,
		Status:            t.status,
	}
}

// advance applies one tick: a track on its last frame finishes, any other moves forward.
func advance(t *track) {
	if t.index >= t.last() {
		t.index = t.last()
		t.status = domain.TrackFinished
		return
	}
	t.index++
}

func (s *Scheduler) armTrackLocked(t *track) {
	if s.mode != domain.ModeIndependent {
		return
	}
	h := &handle{}
	s.timers[t.id] = h
	id := t.id
	h.timer = s.clock.AfterFunc(t.speed, func() { s.tickTrack(id, h) })
}

func (s *Scheduler) disarmTrackLocked(id string) {
	if h, ok := s.timers[id]; ok {
		h.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) armSharedLocked() {
	h := &handle{}
	s.shared = h
	h.timer = s.clock.AfterFunc(s.speed, func() { s.tickShared(h) })
}

func (s *Scheduler) disarmSharedLocked() {
	if s.shared != nil {
		s.shared.timer.Stop()
		s.shared = nil
	}
	s.syncPlay = false
}

func (s *Scheduler) stopAllLocked() {
	for id := range s.timers {
		s.disarmTrackLocked(id)
	}
	s.disarmSharedLocked()
}

// settleSyncedLocked stops the shared clock once no track is playing.
func (s *Scheduler) settleSyncedLocked() bool {
	if s.mode != domain.ModeSynced || !s.syncPlay {
		return false
	}
	for _, t := range s.tracks {
		if t.status == domain.TrackPlaying {
			return false
		}
	}
	s.disarmSharedLocked()
	return true
}

func (s *Scheduler) tickTrack(id string, h *handle) {
	s.update(func() bool {
		if s.timers[id] != h {
			return false
		}
		delete(s.timers, id)
		t := s.byID[id]
		if t.status != domain.TrackPlaying {
			return false
		}
		advance(t)
		if t.status == domain.TrackPlaying {
			s.armTrackLocked(t)
		} else {
			s.logger.Debug("track finished", "track", id)
		}
		return true
	})
}

func (s *Scheduler) tickShared(h *handle) {
	s.update(func() bool {
		if s.shared != h {
			return false
		}
		s.shared = nil
		for _, t := range s.tracks {
			if t.status == domain.TrackPlaying {
				advance(t)
			}
		}
		if !s.settleSyncedLocked() {
			s.armSharedLocked()
		} else {
			s.logger.Debug("synced playback finished")
		}
		return true
	})
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
