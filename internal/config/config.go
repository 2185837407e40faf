// Package config handles greenkeeper configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/greenkeeper/internal/engine/lighting"
	"github.com/Faultbox/greenkeeper/internal/hole"
	"github.com/Faultbox/greenkeeper/internal/placement"
	"github.com/Faultbox/greenkeeper/internal/terrain"
)

// Config holds all settings shared by the binaries.
type Config struct {
	Course    CourseConfig     `yaml:"course"`
	Placement placement.Params `yaml:"placement"`
	Terrain   terrain.Params   `yaml:"terrain"`
	Textures  TexturesConfig   `yaml:"textures"`
	Graphics  GraphicsConfig   `yaml:"graphics"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// CourseConfig selects the hole to build when no payload is given.
type CourseConfig struct {
	TargetDistance float64 `yaml:"target_distance"` // meters
	ShapeSeed      int64   `yaml:"shape_seed"`
	Payload        string  `yaml:"payload"`     // authoritative hole payload; overrides generation
	RoughTiers     int     `yaml:"rough_tiers"` // 0 builds every tier

	Layout hole.Layout `yaml:",inline"`
}

// TexturesConfig locates surface textures.
type TexturesConfig struct {
	Dir       string            `yaml:"dir"`
	Overrides map[string]string `yaml:"overrides"` // surface texture path -> replacement path
	Disabled  bool              `yaml:"disabled"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`

	Sun           lighting.Sun `yaml:"sun"`
	ScreenshotDir string       `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Course: CourseConfig{
			TargetDistance: 320,
			ShapeSeed:      1,
			Layout:         hole.DefaultLayout(),
		},
		Placement: placement.DefaultParams(),
		Terrain:   terrain.DefaultParams(),
		Textures: TexturesConfig{
			Dir: "assets/textures",
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			Sun:           lighting.DefaultSun(),
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate rejects settings the binaries cannot run with.
func (c *Config) Validate() error {
	if !(c.Course.TargetDistance > 0) {
		return fmt.Errorf("course.target_distance must be positive, got %v", c.Course.TargetDistance)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Placement.MinCount < 0 || c.Placement.MaxCount < c.Placement.MinCount {
		return fmt.Errorf("placement count range %d..%d is invalid", c.Placement.MinCount, c.Placement.MaxCount)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// HoleConfig returns the hole to build: the payload when one is configured,
// otherwise a hole generated from the course seed.
func (c *Config) HoleConfig() (hole.Config, error) {
	if c.Course.Payload != "" {
		return hole.LoadPayload(c.Course.Payload)
	}
	cfg := hole.GenerateWith(c.Course.TargetDistance, c.Course.ShapeSeed, c.Course.Layout)
	cfg.RoughTiers = c.Course.RoughTiers
	return cfg, nil
}
