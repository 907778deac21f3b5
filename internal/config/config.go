// Package config handles carousel configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
	"time"
)

// Transition styles understood by the carousel.
const (
	StyleOrbit = "orbit"
	StyleSlide = "slide"
	StyleSpin  = "spin"
)

// Config holds all carousel settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Carousel CarouselConfig `yaml:"carousel"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [4]float32 `yaml:"clear_color"` // RGBA, alpha 0 keeps the background transparent
}

// CarouselConfig holds the model list and transition tuning.
type CarouselConfig struct {
	Models         []string      `yaml:"models"`
	ModelScale     float32       `yaml:"model_scale"`
	DurationFrames int           `yaml:"duration_frames"`
	Style          string        `yaml:"style"`
	Radius         float32       `yaml:"radius"`     // orbit
	Distance       float32       `yaml:"distance"`   // slide, spin
	SpinAngle      float32       `yaml:"spin_angle"` // spin, radians
	Workers        int           `yaml:"workers"`
	LoadTimeout    time.Duration `yaml:"load_timeout"`
}

// CameraConfig holds perspective and orbit control settings.
type CameraConfig struct {
	FOV           float32 `yaml:"fov"` // degrees
	Near          float32 `yaml:"near"`
	Far           float32 `yaml:"far"`
	Distance      float32 `yaml:"distance"`
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	EnableZoom    bool    `yaml:"enable_zoom"`
	EnablePan     bool    `yaml:"enable_pan"`
}

// LightingConfig holds the ambient and directional light.
type LightingConfig struct {
	AmbientColor         [3]float32 `yaml:"ambient_color"`
	AmbientIntensity     float32    `yaml:"ambient_intensity"`
	DirectionalColor     [3]float32 `yaml:"directional_color"`
	DirectionalIntensity float32    `yaml:"directional_intensity"`
	DirectionalPosition  [3]float32 `yaml:"directional_position"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			ClearColor: [4]float32{0, 0, 0, 0},
		},
		Carousel: CarouselConfig{
			Models: []string{
				"models/model_3/scene.gltf",
				"models/model_2/scene.gltf",
				"models/model_1/scene.gltf",
			},
			ModelScale:     0.5,
			DurationFrames: 90,
			Style:          StyleOrbit,
			Radius:         5,
			Distance:       5,
			SpinAngle:      2 * gomath.Pi,
			Workers:        4,
			LoadTimeout:    30 * time.Second,
		},
		Camera: CameraConfig{
			FOV:           75,
			Near:          0.1,
			Far:           1000,
			Distance:      5,
			Damping:       true,
			DampingFactor: 0.05,
			EnableZoom:    false,
			EnablePan:     false,
		},
		Lighting: LightingConfig{
			AmbientColor:         [3]float32{1, 1, 1},
			AmbientIntensity:     0.8,
			DirectionalColor:     [3]float32{1, 1, 1},
			DirectionalIntensity: 1,
			DirectionalPosition:  [3]float32{5, 10, 7.5},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings the carousel cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.Carousel.DurationFrames <= 0 {
		errs = append(errs, fmt.Errorf("carousel.duration_frames must be positive, got %d", c.Carousel.DurationFrames))
	}
	switch c.Carousel.Style {
	case StyleOrbit, StyleSlide, StyleSpin:
	default:
		errs = append(errs, fmt.Errorf("carousel.style %q is not one of orbit, slide, spin", c.Carousel.Style))
	}
	if len(c.Carousel.Models) == 0 {
		errs = append(errs, errors.New("carousel.models is empty"))
	}
	if c.Carousel.ModelScale <= 0 {
		errs = append(errs, fmt.Errorf("carousel.model_scale must be positive, got %g", c.Carousel.ModelScale))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics size %dx%d is invalid", c.Graphics.Width, c.Graphics.Height))
	}
	return errors.Join(errs...)
}
