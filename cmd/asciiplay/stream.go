package main

import (
	"io"
	"os"

	"github.com/lixenwraith/asciiplay/capture"
	"github.com/lixenwraith/asciiplay/config"
	"github.com/lixenwraith/asciiplay/convert"
	"github.com/lixenwraith/asciiplay/layout"
	"github.com/lixenwraith/asciiplay/raster"
	"github.com/lixenwraith/asciiplay/terminal"
)

// stream is everything fixed for the lifetime of one source
type stream struct {
	spec      layout.Spec
	kind      convert.Kind
	converter convert.Converter
	transform *raster.Transform
}

// gridLimits returns the column and row caps for the output
// reserved rows are kept free below the frame (trailing newline, overlay)
func gridLimits(cfg config.DisplayConfig, out io.Writer, reserved int) (cols, rows int) {
	termW, termH := terminal.FallbackWidth, terminal.FallbackHeight
	if f, ok := out.(*os.File); ok {
		termW, termH = terminal.Size(f)
	}
	cols, rows = cfg.MaxWidth, cfg.MaxHeight
	if cols == 0 {
		cols = termW
	}
	if rows == 0 {
		rows = termH - reserved
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// planStream resolves the converter and layout for src
func planStream(cfg config.DisplayConfig, src capture.Source, mirror bool, maxCols, maxRows int) (*stream, error) {
	kind, err := convert.Resolve(cfg.Converter, src.Channels())
	if err != nil {
		return nil, err
	}

	w, h := src.Size()
	spec, err := layout.Plan(w, h, maxCols, maxRows, cfg.ForceWidth, kind.Variant())
	if err != nil {
		return nil, err
	}

	return &stream{
		spec:      spec,
		kind:      kind,
		converter: convert.New(kind, src.Order()),
		transform: raster.NewTransform(spec.PixelWidth, spec.PixelHeight, raster.TransformOptions{
			Grayscale: kind.Channels() == 1,
			Mirror:    mirror,
		}),
	}, nil
}
