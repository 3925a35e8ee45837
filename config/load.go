package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. ASCIIPLAY_DISPLAY_CONVERTER
const EnvPrefix = "ASCIIPLAY"

// flagKeys maps command-line flags onto config keys
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"log-file":    "log.file",
	"max-width":   "display.max_width",
	"max-height":  "display.max_height",
	"force-width": "display.force_width",
	"converter":   "display.converter",
	"mirror":      "display.mirror",
	"color":       "display.color",
	"backend":     "display.backend",
	"show-fps":    "display.show_fps",
	"fps":         "playback.fps",
	"drop-frames": "playback.drop_frames",
	"slack":       "playback.slack",
	"queue-size":  "playback.queue_size",
	"ffmpeg":      "capture.ffmpeg",
	"ffprobe":     "capture.ffprobe",
}

// Load merges defaults, the TOML file at path, environment and flags, in increasing precedence
// An empty path reads DefaultPath when present; an explicit path must exist
// Only flags the user changed override lower layers
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(strings.TrimSuffix(filepath.Base(defaultPath), filepath.Ext(defaultPath)))
		v.AddConfigPath(filepath.Dir(defaultPath))
	}
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("display.max_width", cfg.Display.MaxWidth)
	v.SetDefault("display.max_height", cfg.Display.MaxHeight)
	v.SetDefault("display.force_width", cfg.Display.ForceWidth)
	v.SetDefault("display.converter", cfg.Display.Converter)
	v.SetDefault("display.mirror", cfg.Display.Mirror)
	v.SetDefault("display.color", cfg.Display.Color)
	v.SetDefault("display.backend", cfg.Display.Backend)
	v.SetDefault("display.show_fps", cfg.Display.ShowFPS)
	v.SetDefault("playback.fps", cfg.Playback.FPS)
	v.SetDefault("playback.drop_frames", cfg.Playback.DropFrames)
	v.SetDefault("playback.slack", cfg.Playback.Slack)
	v.SetDefault("playback.queue_size", cfg.Playback.QueueSize)
	v.SetDefault("capture.ffmpeg", cfg.Capture.FFmpeg)
	v.SetDefault("capture.ffprobe", cfg.Capture.FFprobe)
}
