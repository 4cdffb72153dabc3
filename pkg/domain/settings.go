package domain

import "time"

// PlaybackMode selects how several tracks share time.
type PlaybackMode string

const (
	ModeIndependent PlaybackMode = "independent" // One timer per track
	ModeSynced      PlaybackMode = "synced"      // One shared timer for all tracks
)

// DefaultSpeed is the delay between two playback ticks.
const DefaultSpeed = 500 * time.Millisecond

// InputConfig describes how the shared input is derived from a seed.
type InputConfig struct {
	Kind        InputKind `json:"kind" yaml:"kind" mapstructure:"kind"`
	Size        int       `json:"size,omitempty" yaml:"size,omitempty" mapstructure:"size"`
	VertexCount int       `json:"vertex_count,omitempty" yaml:"vertex_count,omitempty" mapstructure:"vertex_count"`
	Density     float64   `json:"density,omitempty" yaml:"density,omitempty" mapstructure:"density"`
	Seed        int64     `json:"seed" yaml:"seed" mapstructure:"seed"`

	// Target overrides the searched value. When nil, the builder picks one from the data.
	Target *int `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
}

// Settings are the run-level knobs that do not influence trace content.
type Settings struct {
	Metric  Metric       `json:"metric" yaml:"metric" mapstructure:"metric"`
	Mode    PlaybackMode `json:"mode" yaml:"mode" mapstructure:"mode"`
	SpeedMs int          `json:"speed_ms" yaml:"speed_ms" mapstructure:"speed_ms"`
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		Metric:  MetricTime,
		Mode:    ModeSynced,
		SpeedMs: int(DefaultSpeed / time.Millisecond),
	}
}

// Speed returns the tick delay, falling back to DefaultSpeed.
func (s Settings) Speed() time.Duration {
	if s.SpeedMs <= 0 {
		return DefaultSpeed
	}
	return time.Duration(s.SpeedMs) * time.Millisecond
}
