package capture

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Tools are the resolved decoder executables
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// DetectTools resolves ffmpeg and ffprobe, preferring explicit paths over PATH lookup
func DetectTools(opts Options) (*Tools, error) {
	ffmpeg, err := lookTool(opts.FFmpegPath, "ffmpeg")
	if err != nil {
		return nil, err
	}
	ffprobe, err := lookTool(opts.FFprobePath, "ffprobe")
	if err != nil {
		return nil, err
	}
	return &Tools{FFmpeg: ffmpeg, FFprobe: ffprobe}, nil
}

func lookTool(explicit, name string) (string, error) {
	if explicit == "" {
		explicit = name
	}
	path, err := exec.LookPath(explicit)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found: %v", ErrOpen, name, err)
	}
	return path, nil
}

// deviceInput returns the ffmpeg demuxer and input name for a webcam index
func deviceInput(index int) (format, input string, err error) {
	switch runtime.GOOS {
	case "linux":
		return "v4l2", fmt.Sprintf("/dev/video%d", index), nil
	case "darwin":
		return "avfoundation", fmt.Sprintf("%d:none", index), nil
	case "windows":
		// dshow addresses devices by name only
		return "", "", fmt.Errorf("%w: device %d: webcams are not supported on windows", ErrOpen, index)
	default:
		// BSDs ship v4l2 compatibility through webcamd
		return "v4l2", fmt.Sprintf("/dev/video%d", index), nil
	}
}
