package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	def := NewDefault()
	if !slices.Equal(cfg.Sprites, def.Sprites) || !slices.Equal(cfg.Lines, def.Lines) {
		t.Errorf("cfg = %+v; want defaults", cfg)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "lines:\n  - meow\nshow_monitor: true\nwindow_x: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ok   bool
	}{
		{"lines", slices.Equal(cfg.Lines, []string{"meow"})},
		{"show_monitor", cfg.ShowMonitor},
		{"window_x", cfg.WindowX == 10},
		{"window_y zero", cfg.WindowY == 0},
		{"sprites default", len(cfg.Sprites) == 2},
		{"icon default", cfg.IconPath == "assets/icon.png"},
		{"ascii width default", cfg.ASCIIWidth == 50},
		{"idle tps default", cfg.IdleTPS == 10},
	}
	for _, tt := range tests {
		if !tt.ok {
			t.Errorf("%s: unexpected value in %+v", tt.name, cfg)
		}
	}
}

func TestLoadBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("lines: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("broken yaml loaded without error")
	}
}

func TestSaveLoadPreservesPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := NewDefault()
	cfg.WindowX, cfg.WindowY = 640, 480
	cfg.RememberPosition = true

	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.WindowX != 640 || got.WindowY != 480 || !got.RememberPosition {
		t.Errorf("got %+v", got)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(NewDefault(), path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan *Config, 4)
	if err := Watch(ctx, path, out); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("lines: [purr]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-out:
			// 一次写入可能触发多个事件，等到读到新内容为止
			if slices.Equal(cfg.Lines, []string{"purr"}) {
				return
			}
		case <-deadline:
			t.Fatal("no reload delivered")
		}
	}
}
