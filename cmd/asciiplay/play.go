package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/asciiplay/capture"
	"github.com/lixenwraith/asciiplay/config"
	"github.com/lixenwraith/asciiplay/core"
	"github.com/lixenwraith/asciiplay/display"
	"github.com/lixenwraith/asciiplay/pipeline"
	"github.com/lixenwraith/asciiplay/player"
	"github.com/lixenwraith/asciiplay/status"
	"github.com/lixenwraith/asciiplay/terminal"
)

// frameDisplay is a FrameWriter that owns the terminal between Begin and End
type frameDisplay interface {
	player.FrameWriter
	Begin() error
	End() error
}

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [video|device]",
		Short: "Play a video file, URL, GIF or webcam (default device 0)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "0"
			if len(args) == 1 {
				target = args[0]
			}
			return a.play(cmd.Context(), target)
		},
	}
	addPlaybackFlags(cmd)
	return cmd
}

func (a *app) play(ctx context.Context, target string) error {
	cfg := a.cfg
	logger := a.logger

	if err := terminal.RequireTerminal(os.Stdout); err != nil {
		return err
	}

	src, err := capture.Open(ctx, target, capture.Options{
		FFmpegPath:  cfg.Capture.FFmpeg,
		FFprobePath: cfg.Capture.FFprobe,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	reserved := 1
	if cfg.Display.ShowFPS {
		reserved++
	}
	maxCols, maxRows := gridLimits(cfg.Display, os.Stdout, reserved)
	mirror := cfg.Display.MirrorFor(capture.IsDevice(target))

	st, err := planStream(cfg.Display, src, mirror, maxCols, maxRows)
	if err != nil {
		return err
	}

	fps := cfg.Playback.FPS
	if fps == 0 {
		fps = src.FrameRate()
	}
	logger.Info("stream opened", "target", target, "layout", st.spec.String(), "converter", st.kind,
		"fps", fps, "frames", src.FrameCount(), "mirror", mirror)

	colorMode, err := terminal.ParseColorMode(cfg.Display.Color)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out, err := newFrameDisplay(cfg.Display, colorMode, cancel)
	if err != nil {
		return err
	}
	if err := out.Begin(); err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer out.End()

	metrics := status.NewRegistry()
	queue := pipeline.NewQueue(cfg.Playback.QueueSize)
	producer := pipeline.NewProducer(pipeline.ProducerConfig{
		Source:    src,
		Transform: st.transform,
		Converter: st.converter,
		Spec:      st.spec,
		Queue:     queue,
		Logger:    logger,
		Metrics:   metrics,
	})
	core.Go(producer.Run)

	sched := player.New(queue, out, src, player.Config{
		SourceFPS:  fps,
		FrameCount: src.FrameCount(),
		DropFrames: cfg.Playback.DropFrames,
		ShowFPS:    cfg.Display.ShowFPS,
		Slack:      cfg.Playback.Slack,
		Logger:     logger,
		Metrics:    metrics,
	})
	err = sched.Run(ctx)

	out.End()
	logger.Info("playback finished", metrics.Snapshot()...)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newFrameDisplay builds the configured backend
// quit is called when the tcell backend sees a quit key
func newFrameDisplay(cfg config.DisplayConfig, mode terminal.ColorMode, quit func()) (frameDisplay, error) {
	if cfg.Backend == config.BackendTcell {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", terminal.ErrNotTerminal, err)
		}
		d := display.NewScreen(s)
		return &tcellDisplay{Screen: d, quit: quit}, nil
	}

	o := terminal.NewOutput(os.Stdout, mode)
	core.RegisterCleanup(func() { o.End() })
	return display.NewANSI(o), nil
}

// tcellDisplay starts the quit-key watcher once the screen is up
type tcellDisplay struct {
	*display.Screen
	quit func()
}

func (t *tcellDisplay) Begin() error {
	if err := t.Screen.Begin(); err != nil {
		return err
	}
	t.WatchQuit(t.quit)
	return nil
}
