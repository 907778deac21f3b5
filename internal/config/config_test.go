package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.ClearColor[3] != 0 {
		t.Errorf("expected transparent clear color, got alpha %f", cfg.Graphics.ClearColor[3])
	}

	// Carousel defaults
	if len(cfg.Carousel.Models) != 3 {
		t.Errorf("expected 3 default models, got %d", len(cfg.Carousel.Models))
	}
	if cfg.Carousel.DurationFrames != 90 {
		t.Errorf("expected duration 90, got %d", cfg.Carousel.DurationFrames)
	}
	if cfg.Carousel.Style != StyleOrbit {
		t.Errorf("expected style orbit, got %s", cfg.Carousel.Style)
	}
	if cfg.Carousel.ModelScale != 0.5 {
		t.Errorf("expected model scale 0.5, got %f", cfg.Carousel.ModelScale)
	}
	if cfg.Carousel.LoadTimeout != 30*time.Second {
		t.Errorf("expected load timeout 30s, got %v", cfg.Carousel.LoadTimeout)
	}

	// Camera defaults
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.EnableZoom || cfg.Camera.EnablePan {
		t.Error("expected zoom and pan disabled by default")
	}
	if !cfg.Camera.Damping {
		t.Error("expected damping enabled by default")
	}

	// Lighting defaults
	if cfg.Lighting.AmbientIntensity != 0.8 {
		t.Errorf("expected ambient intensity 0.8, got %f", cfg.Lighting.AmbientIntensity)
	}
	if cfg.Lighting.DirectionalPosition != [3]float32{5, 10, 7.5} {
		t.Errorf("unexpected directional position %v", cfg.Lighting.DirectionalPosition)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "carousel.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

carousel:
  models:
    - helmet/scene.gltf
    - /abs/duck.glb
  duration_frames: 60
  style: spin
  spin_angle: 3.14
  load_timeout: 5s

camera:
  fov: 60
  enable_zoom: true

logging:
  level: "debug"
  log_file: "carousel.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if len(cfg.Carousel.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(cfg.Carousel.Models))
	}
	if want := filepath.Join(tmpDir, "helmet/scene.gltf"); cfg.Carousel.Models[0] != want {
		t.Errorf("expected relative model resolved to %s, got %s", want, cfg.Carousel.Models[0])
	}
	if cfg.Carousel.Models[1] != "/abs/duck.glb" {
		t.Errorf("expected absolute model untouched, got %s", cfg.Carousel.Models[1])
	}
	if cfg.Carousel.DurationFrames != 60 {
		t.Errorf("expected duration 60, got %d", cfg.Carousel.DurationFrames)
	}
	if cfg.Carousel.Style != StyleSpin {
		t.Errorf("expected style spin, got %s", cfg.Carousel.Style)
	}
	if cfg.Carousel.LoadTimeout != 5*time.Second {
		t.Errorf("expected load timeout 5s, got %v", cfg.Carousel.LoadTimeout)
	}
	// Untouched keys keep their defaults
	if cfg.Carousel.ModelScale != 0.5 {
		t.Errorf("expected default model scale, got %f", cfg.Carousel.ModelScale)
	}

	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
	}
	if !cfg.Camera.EnableZoom {
		t.Error("expected zoom enabled")
	}

	if cfg.Logging.LogFile != "carousel.log" {
		t.Errorf("expected log file 'carousel.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileKeepsDefaultModels(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "carousel.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Carousel.Models[0] != "models/model_3/scene.gltf" {
		t.Errorf("default model path should not be rebased, got %s", cfg.Carousel.Models[0])
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/carousel.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero duration",
			mutate:  func(c *Config) { c.Carousel.DurationFrames = 0 },
			wantErr: "duration_frames",
		},
		{
			name:    "unknown style",
			mutate:  func(c *Config) { c.Carousel.Style = "wobble" },
			wantErr: "wobble",
		},
		{
			name:    "no models",
			mutate:  func(c *Config) { c.Carousel.Models = nil },
			wantErr: "models is empty",
		},
		{
			name:    "bad scale",
			mutate:  func(c *Config) { c.Carousel.ModelScale = 0 },
			wantErr: "model_scale",
		},
		{
			name:    "bad size",
			mutate:  func(c *Config) { c.Graphics.Width = -1 },
			wantErr: "graphics size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("carousel.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find carousel.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "carousel.yaml")

	cfg := Default()
	cfg.Carousel.Style = StyleSlide
	cfg.Carousel.DurationFrames = 45
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Carousel.Style != StyleSlide || loaded.Carousel.DurationFrames != 45 {
		t.Errorf("round trip lost carousel settings: %+v", loaded.Carousel)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "style and duration flags",
			setup: func() {
				*flagStyle = StyleSlide
				*flagDuration = 30
			},
			verify: func(cfg *Config) {
				if cfg.Carousel.Style != StyleSlide {
					t.Errorf("expected style slide, got %s", cfg.Carousel.Style)
				}
				if cfg.Carousel.DurationFrames != 30 {
					t.Errorf("expected duration 30, got %d", cfg.Carousel.DurationFrames)
				}
			},
			teardown: func() {
				*flagStyle = ""
				*flagDuration = 0
			},
		},
		{
			name:  "models flag",
			setup: func() { *flagModels = "a.gltf, b.glb,,c.gltf" },
			verify: func(cfg *Config) {
				want := []string{"a.gltf", "b.glb", "c.gltf"}
				if strings.Join(cfg.Carousel.Models, "|") != strings.Join(want, "|") {
					t.Errorf("expected models %v, got %v", want, cfg.Carousel.Models)
				}
			},
			teardown: func() { *flagModels = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "carousel.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "carousel.yaml")
	if err := os.WriteFile(configPath, []byte("carousel:\n  style: wobble\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected invalid style to fail Load")
	}
}
