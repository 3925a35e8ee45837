// Package config loads asciiplay settings from defaults, a TOML file, ASCIIPLAY_* environment variables and flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lixenwraith/asciiplay/convert"
	"github.com/lixenwraith/asciiplay/pipeline"
	"github.com/lixenwraith/asciiplay/player"
	"github.com/lixenwraith/asciiplay/terminal"
)

// Mirror modes
const (
	MirrorAuto = "auto" // Mirror webcams only
	MirrorOn   = "on"
	MirrorOff  = "off"
)

// Display backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Config is the full runtime configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Display  DisplayConfig  `mapstructure:"display"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Capture  CaptureConfig  `mapstructure:"capture"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
	File   string `mapstructure:"file"`   // Empty logs to stderr
}

// DisplayConfig sizes and styles the rendered output
// Zero widths and heights follow the terminal size
type DisplayConfig struct {
	MaxWidth   int    `mapstructure:"max_width"`
	MaxHeight  int    `mapstructure:"max_height"`
	ForceWidth int    `mapstructure:"force_width"`
	Converter  string `mapstructure:"converter"`
	Mirror     string `mapstructure:"mirror"`
	Color      string `mapstructure:"color"` // auto, truecolor or 256
	Backend    string `mapstructure:"backend"`
	ShowFPS    bool   `mapstructure:"show_fps"`
}

type PlaybackConfig struct {
	FPS        float64       `mapstructure:"fps"` // 0 uses the source rate
	DropFrames bool          `mapstructure:"drop_frames"`
	Slack      time.Duration `mapstructure:"slack"`
	QueueSize  int           `mapstructure:"queue_size"`
}

type CaptureConfig struct {
	FFmpeg  string `mapstructure:"ffmpeg"`
	FFprobe string `mapstructure:"ffprobe"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log: LogConfig{Level: "warn", Format: "text"},
		Display: DisplayConfig{
			Converter: "grayscale",
			Mirror:    MirrorAuto,
			Color:     "auto",
			Backend:   BackendANSI,
		},
		Playback: PlaybackConfig{
			Slack:     player.DefaultSlack,
			QueueSize: pipeline.DefaultCapacity,
		},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "asciiplay", "config.toml"), nil
}

// Validate rejects out-of-range or unknown settings
func (c Config) Validate() error {
	if hclog.LevelFromString(c.Log.Level) == hclog.NoLevel {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format: expected text or json, got %q", c.Log.Format)
	}

	d := c.Display
	if d.MaxWidth < 0 || d.MaxHeight < 0 || d.ForceWidth < 0 {
		return fmt.Errorf("display: max_width, max_height and force_width must not be negative")
	}
	if _, err := convert.Resolve(d.Converter, 3); err != nil {
		return fmt.Errorf("display.converter: %w (accepted: %s)", err, strings.Join(convert.Names(), ", "))
	}
	switch d.Mirror {
	case MirrorAuto, MirrorOn, MirrorOff:
	default:
		return fmt.Errorf("display.mirror: expected auto, on or off, got %q", d.Mirror)
	}
	if _, err := terminal.ParseColorMode(d.Color); err != nil {
		return fmt.Errorf("display.color: %w (accepted: %s)", err, strings.Join(terminal.ColorModeNames(), ", "))
	}
	switch d.Backend {
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("display.backend: expected ansi or tcell, got %q", d.Backend)
	}

	p := c.Playback
	if p.FPS < 0 {
		return fmt.Errorf("playback.fps must not be negative")
	}
	if p.QueueSize < 1 {
		return fmt.Errorf("playback.queue_size must be at least 1")
	}
	return nil
}

// MirrorFor resolves the mirror mode for a target
func (d DisplayConfig) MirrorFor(device bool) bool {
	switch d.Mirror {
	case MirrorOn:
		return true
	case MirrorOff:
		return false
	default:
		return device
	}
}
