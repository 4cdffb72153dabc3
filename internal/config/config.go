// Package config loads the algotrace configuration file and applies
// loosely typed overrides (CLI --set flags, HTTP payloads) on top of it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/algotrace/pkg/domain"
	"github.com/aretw0/algotrace/pkg/seeded"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a configuration file.
const DefaultPath = ".algotrace/config.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var ErrInvalidOverride = fmt.Errorf("%w: invalid override", domain.ErrConfig)

// RedisConfig holds the redis store connection.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr" mapstructure:"addr"`
	Password string        `yaml:"password,omitempty" json:"password,omitempty" mapstructure:"password"`
	DB       int           `yaml:"db" json:"db" mapstructure:"db"`
	Prefix   string        `yaml:"prefix,omitempty" json:"prefix,omitempty" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl,omitempty" json:"ttl,omitempty" mapstructure:"ttl"`
}

// StoreConfig selects where run descriptors are persisted.
type StoreConfig struct {
	Backend string      `yaml:"backend" json:"backend" mapstructure:"backend"`
	Dir     string      `yaml:"dir,omitempty" json:"dir,omitempty" mapstructure:"dir"`
	Redis   RedisConfig `yaml:"redis" json:"redis" mapstructure:"redis"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" mapstructure:"addr"`
}

// Config is the full configuration file.
type Config struct {
	Input      domain.InputConfig `yaml:"input" json:"input" mapstructure:"input"`
	Settings   domain.Settings    `yaml:"settings" json:"settings" mapstructure:"settings"`
	Algorithms []string           `yaml:"algorithms,omitempty" json:"algorithms,omitempty" mapstructure:"algorithms"`
	Store      StoreConfig        `yaml:"store" json:"store" mapstructure:"store"`
	Server     ServerConfig       `yaml:"server" json:"server" mapstructure:"server"`
	LogLevel   string             `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Input: domain.InputConfig{
			Kind:        domain.InputArray,
			Size:        12,
			VertexCount: 6,
			Density:     0.3,
			Seed:        42,
		},
		Settings: domain.DefaultSettings(),
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".algotrace/runs",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Server:   ServerConfig{Addr: ":8080"},
		LogLevel: "warn",
	}
}

// Load reads a YAML or JSON file (by extension) over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrConfig, path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrConfig, path, err)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown store backend %q", domain.ErrConfig, c.Store.Backend)
	}
	switch c.Settings.Mode {
	case domain.ModeSynced, domain.ModeIndependent:
	default:
		return fmt.Errorf("%w: unknown playback mode %q", domain.ErrConfig, c.Settings.Mode)
	}
	switch c.Input.Kind {
	case domain.InputArray, domain.InputGraph:
	default:
		return fmt.Errorf("%w: unknown input kind %q", domain.ErrConfig, c.Input.Kind)
	}
	if err := seeded.CheckLimits(c.Input); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	return nil
}

// Decode converts a loose map into out, accepting strings for numbers
// and durations such as "30s".
func Decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	return nil
}

// ParseOverrides turns "a.b=v" pairs into a nested map.
func ParseOverrides(pairs []string) (map[string]any, error) {
	root := map[string]any{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q (want key=value)", ErrInvalidOverride, p)
		}
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := map[string]any{}
				node[part] = next
				node = next
				continue
			}
			next, isMap := child.(map[string]any)
			if !isMap {
				return nil, fmt.Errorf("%w: %q conflicts with a scalar", ErrInvalidOverride, key)
			}
			node = next
		}
		leaf := parts[len(parts)-1]
		if _, isMap := node[leaf].(map[string]any); isMap {
			return nil, fmt.Errorf("%w: %q conflicts with a section", ErrInvalidOverride, key)
		}
		node[leaf] = value
	}
	return root, nil
}

// Apply layers overrides onto a copy of c.
func (c Config) Apply(pairs []string) (Config, error) {
	if len(pairs) == 0 {
		return c, nil
	}
	raw, err := ParseOverrides(pairs)
	if err != nil {
		return c, err
	}
	out := c
	// Slices decode in place; a listed override replaces the whole list.
	if _, ok := raw["algorithms"]; ok {
		out.Algorithms = nil
	} else {
		out.Algorithms = append([]string(nil), c.Algorithms...)
	}
	if c.Input.Target != nil {
		t := *c.Input.Target
		out.Input.Target = &t
	}
	if err := Decode(raw, &out); err != nil {
		return c, err
	}
	return out, out.Validate()
}
