package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	timings := cfg.Timings()
	if timings.BadgeOut != 510*time.Millisecond || timings.BadgeIn != 510*time.Millisecond {
		t.Fatalf("unexpected badge timings: %+v", timings)
	}
	if timings.BadgeBounce != 1010*time.Millisecond {
		t.Fatalf("bounce: got %v", timings.BadgeBounce)
	}
	if timings.Highlight != 2*time.Second || timings.Debounce != 100*time.Millisecond {
		t.Fatalf("unexpected timings: %+v", timings)
	}
	if cfg.Watch.Pattern != "*.jsonl" || cfg.Transcript.Last != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`badge:
  bounce_ms: 300
  out_ms: -1
watch:
  pattern: "chat-*.jsonl"
transcript:
  last: 50
bus:
  nats_url: nats://localhost:4222
notify:
  desktop: true
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	timings := cfg.Timings()
	if timings.BadgeBounce != 300*time.Millisecond {
		t.Fatalf("bounce: got %v", timings.BadgeBounce)
	}
	if timings.BadgeOut != 510*time.Millisecond {
		t.Fatalf("negative out_ms should fall back, got %v", timings.BadgeOut)
	}
	if cfg.Watch.Pattern != "chat-*.jsonl" {
		t.Fatalf("pattern: got %q", cfg.Watch.Pattern)
	}
	if cfg.Transcript.Last != 50 || !cfg.Notify.Desktop {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Bus.NATSURL != "nats://localhost:4222" || cfg.Bus.Subject != DefaultSubject {
		t.Fatalf("bus: got %+v", cfg.Bus)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("badge: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
