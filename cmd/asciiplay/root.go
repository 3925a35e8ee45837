package main

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/asciiplay/config"
	"github.com/lixenwraith/asciiplay/pipeline"
	"github.com/lixenwraith/asciiplay/player"
)

// app carries state resolved before any subcommand runs
type app struct {
	cfgPath string
	cfg     config.Config
	logger  hclog.Logger
	logFile io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	def := config.Default()

	root := &cobra.Command{
		Use:           "asciiplay",
		Short:         "Play video, webcam, GIF and images as terminal text",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/asciiplay/config.toml)")
	pf.String("log-level", def.Log.Level, "log level: trace, debug, info, warn, error, off")
	pf.String("log-format", def.Log.Format, "log format: text or json")
	pf.String("log-file", def.Log.File, "write logs to file instead of stderr")
	pf.Int("max-width", def.Display.MaxWidth, "maximum output columns (0 = terminal width)")
	pf.Int("max-height", def.Display.MaxHeight, "maximum output rows (0 = terminal height)")
	pf.Int("force-width", def.Display.ForceWidth, "exact output columns, overrides max-width")
	pf.StringP("converter", "c", def.Display.Converter, "converter: grayscale, 4blackwhite (quadrant) or rgba (truecolor)")
	pf.String("mirror", def.Display.Mirror, "mirror horizontally: auto (webcams only), on or off")
	pf.Lookup("mirror").NoOptDefVal = config.MirrorOn
	pf.String("color", def.Display.Color, "color depth: auto, truecolor or 256")
	pf.String("backend", def.Display.Backend, "display backend: ansi or tcell")
	pf.String("ffmpeg", def.Capture.FFmpeg, "ffmpeg executable (default from PATH)")
	pf.String("ffprobe", def.Capture.FFprobe, "ffprobe executable (default from PATH)")

	root.AddCommand(newPlayCmd(a))
	root.AddCommand(newImageCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// addPlaybackFlags registers flags that only apply to streaming
func addPlaybackFlags(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.Flags()
	f.Float64("fps", def.Playback.FPS, "playback rate (0 = source rate, 30 when unknown)")
	f.Bool("drop-frames", def.Playback.DropFrames, "skip source frames when playback falls behind")
	f.Duration("slack", player.DefaultSlack, "lag tolerated before dropping frames")
	f.Int("queue-size", pipeline.DefaultCapacity, "frames the decoder may run ahead of playback")
	f.Bool("show-fps", def.Display.ShowFPS, "show the frame rate overlay")
}

// setup loads configuration and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closer, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	a.logFile = closer
	logger.Debug("configuration loaded", "path", a.cfgPath, "converter", cfg.Display.Converter,
		"backend", cfg.Display.Backend)
	return nil
}

func (a *app) teardown() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
