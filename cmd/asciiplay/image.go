package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/asciiplay/capture"
	"github.com/lixenwraith/asciiplay/terminal"
)

func newImageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "image <path>",
		Short: "Print a still image (or the first frame of any source) as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.image(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func (a *app) image(ctx context.Context, path string, w io.Writer) error {
	cfg := a.cfg

	src, err := capture.Open(ctx, path, capture.Options{
		FFmpegPath:  cfg.Capture.FFmpeg,
		FFprobePath: cfg.Capture.FFprobe,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	maxCols, maxRows := gridLimits(cfg.Display, w, 1)
	st, err := planStream(cfg.Display, src, cfg.Display.MirrorFor(capture.IsDevice(path)), maxCols, maxRows)
	if err != nil {
		return err
	}
	a.logger.Debug("image layout", "path", path, "layout", st.spec.String(), "converter", st.kind)

	raw, err := src.ReadFrame()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", capture.ErrOpen, path, err)
	}
	frame := st.converter.Convert(st.transform.Apply(raw), st.spec)

	mode, err := terminal.ParseColorMode(cfg.Display.Color)
	if err != nil {
		return err
	}
	out := terminal.NewOutput(w, mode)
	frame.WriteANSI(out.Buffer(), mode)
	return out.Flush()
}
