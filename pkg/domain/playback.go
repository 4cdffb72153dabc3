package domain

import "time"

// TrackStatus is the per-track playback state.
type TrackStatus string

const (
	TrackStopped  TrackStatus = "stopped"
	TrackPlaying  TrackStatus = "playing"
	TrackPaused   TrackStatus = "paused"
	TrackFinished TrackStatus = "finished"
)

// TrackState is the observable playback position of one trace.
type TrackState struct {
	TrackID           string        `json:"track_id"`
	CurrentFrameIndex int           `json:"current_frame_index"`
	Length            int           `json:"length"`
	IsPlaying         bool          `json:"is_playing"`
	Speed             time.Duration `json:"speed"`
	Status            TrackStatus   `json:"status"`
}

// SyncState governs every track while synced mode is active.
type SyncState struct {
	IsPlaying bool          `json:"is_playing"`
	Speed     time.Duration `json:"speed"`
}

// PlaybackSnapshot is a consistent view of the whole scheduler.
type PlaybackSnapshot struct {
	Mode   PlaybackMode `json:"mode"`
	Sync   *SyncState   `json:"sync,omitempty"`
	Tracks []TrackState `json:"tracks"`
}
