package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppName names the binary, its config directory and its log file.
const AppName = "ghostpanel"

const (
	DefaultBadgeOutMs    = 510
	DefaultBadgeInMs     = 510
	DefaultBadgeBounceMs = 1010
	DefaultHighlightMs   = 2000
	DefaultDebounceMs    = 100
	DefaultWatchPattern  = "*.jsonl"
	DefaultLast          = 20
	DefaultSubject       = AppName
)

// Config is the on-disk configuration.
type Config struct {
	Badge      BadgeConfig      `yaml:"badge"`
	Navigation NavigationConfig `yaml:"navigation"`
	Watch      WatchConfig      `yaml:"watch"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Bus        BusConfig        `yaml:"bus"`
	Notify     NotifyConfig     `yaml:"notify"`
	Log        LogConfig        `yaml:"log"`
}

// BadgeConfig holds animation durations in milliseconds.
type BadgeConfig struct {
	OutMs    int `yaml:"out_ms"`
	InMs     int `yaml:"in_ms"`
	BounceMs int `yaml:"bounce_ms"`
}

type NavigationConfig struct {
	HighlightMs int `yaml:"highlight_ms"`
}

// WatchConfig configures the transcript change watcher.
type WatchConfig struct {
	DebounceMs int    `yaml:"debounce_ms"`
	Pattern    string `yaml:"pattern"`
}

type TranscriptConfig struct {
	Last int `yaml:"last"`
}

// BusConfig points at an optional NATS server publishing host events.
type BusConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

type NotifyConfig struct {
	Desktop bool `yaml:"desktop"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Timings are the resolved durations used at runtime.
type Timings struct {
	BadgeOut    time.Duration
	BadgeIn     time.Duration
	BadgeBounce time.Duration
	Highlight   time.Duration
	Debounce    time.Duration
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Badge: BadgeConfig{
			OutMs:    DefaultBadgeOutMs,
			InMs:     DefaultBadgeInMs,
			BounceMs: DefaultBadgeBounceMs,
		},
		Navigation: NavigationConfig{HighlightMs: DefaultHighlightMs},
		Watch:      WatchConfig{DebounceMs: DefaultDebounceMs, Pattern: DefaultWatchPattern},
		Transcript: TranscriptConfig{Last: DefaultLast},
		Bus:        BusConfig{Subject: DefaultSubject},
		Log:        LogConfig{Path: defaultLogPath(), Level: "info"},
	}
}

// DefaultConfigPath returns ~/.config/ghostpanel/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.yaml"), nil
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName, AppName+".log")
}

// LoadConfig reads path over the defaults. An empty path means the default
// location; a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	defaults := DefaultConfig()
	if c.Watch.Pattern == "" {
		c.Watch.Pattern = defaults.Watch.Pattern
	}
	if c.Transcript.Last <= 0 {
		c.Transcript.Last = defaults.Transcript.Last
	}
	if c.Bus.Subject == "" {
		c.Bus.Subject = defaults.Bus.Subject
	}
	if c.Log.Path == "" {
		c.Log.Path = defaults.Log.Path
	} else {
		c.Log.Path = expandHome(c.Log.Path)
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Timings resolves millisecond settings, falling back to defaults for
// non-positive values.
func (c Config) Timings() Timings {
	return Timings{
		BadgeOut:    millis(c.Badge.OutMs, DefaultBadgeOutMs),
		BadgeIn:     millis(c.Badge.InMs, DefaultBadgeInMs),
		BadgeBounce: millis(c.Badge.BounceMs, DefaultBadgeBounceMs),
		Highlight:   millis(c.Navigation.HighlightMs, DefaultHighlightMs),
		Debounce:    millis(c.Watch.DebounceMs, DefaultDebounceMs),
	}
}

func millis(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Millisecond
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
