package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/asciiplay/terminal"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writePNG(t *testing.T, w, h int, fill color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	isolateConfig(t)
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "asciiplay ") {
		t.Errorf("Unexpected version output %q", out.String())
	}
}

func TestImageCommandGrayscale(t *testing.T) {
	isolateConfig(t)
	path := writePNG(t, 40, 20, color.White)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"image", path, "--force-width", "10"})

	if err := root.Execute(); err != nil {
		t.Fatalf("image failed: %v", err)
	}

	// 40x20 source at 10 columns: round(0.5*10*0.42) = 2 rows
	want := "@@@@@@@@@@\n@@@@@@@@@@\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
}

func TestImageCommandTrueColor(t *testing.T) {
	isolateConfig(t)
	path := writePNG(t, 4, 4, color.NRGBA{R: 255, A: 255})

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"image", path, "--converter", "rgba", "--color", "truecolor", "--force-width", "4"})

	if err := root.Execute(); err != nil {
		t.Fatalf("image failed: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "\x1b[38;2;255;0;0m████\n") || !strings.HasSuffix(s, "\x1b[0m") {
		t.Errorf("Unexpected truecolor output %q", s)
	}
}

func TestRunExitCodes(t *testing.T) {
	isolateConfig(t)

	var stderr bytes.Buffer
	if code := run([]string{"image", filepath.Join(t.TempDir(), "missing.png")}, &stderr); code != 1 {
		t.Errorf("Expected exit 1 for missing image, got %d", code)
	}
	if !strings.Contains(stderr.String(), "cannot open capture") {
		t.Errorf("Expected open error, got %q", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"image", "x.png", "--converter", "sixel"}, &stderr); code != 1 {
		t.Errorf("Expected exit 1 for bad converter, got %d", code)
	}
	if !strings.Contains(stderr.String(), "display.converter") {
		t.Errorf("Expected converter error, got %q", stderr.String())
	}
}

func TestPlayRequiresTerminal(t *testing.T) {
	if terminal.IsTerminal(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	isolateConfig(t)

	var stderr bytes.Buffer
	if code := run([]string{"play", "clip.mp4"}, &stderr); code != 1 {
		t.Errorf("Expected exit 1 without a TTY, got %d", code)
	}
	if !strings.Contains(stderr.String(), "not a TTY") {
		t.Errorf("Expected TTY error, got %q", stderr.String())
	}
}
