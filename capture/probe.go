package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// streamInfo is the first video stream as reported by ffprobe
type streamInfo struct {
	Width  int
	Height int
	Rate   float64
	Frames int // -1 when unknown
}

type probeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`

		Tags struct {
			Rotate string `json:"rotate"`
		} `json:"tags"`

		SideData []struct {
			Rotation float64 `json:"rotation"`
		} `json:"side_data_list"`
	} `json:"streams"`
}

// probe runs ffprobe on input; inputArgs precede -i
func probe(ctx context.Context, ffprobe string, inputArgs []string, input string) (streamInfo, error) {
	args := []string{"-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate,r_frame_rate,nb_frames:stream_tags=rotate:stream_side_data=rotation",
		"-of", "json"}
	args = append(args, inputArgs...)
	args = append(args, "-i", input)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffprobe, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return streamInfo{}, fmt.Errorf("ffprobe: %v: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseProbe(out)
}

// parseProbe decodes ffprobe's JSON report
func parseProbe(data []byte) (streamInfo, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return streamInfo{}, fmt.Errorf("ffprobe: invalid output: %w", err)
	}
	if len(po.Streams) == 0 {
		return streamInfo{}, fmt.Errorf("ffprobe: no video stream")
	}

	s := po.Streams[0]
	if s.Width <= 0 || s.Height <= 0 {
		return streamInfo{}, fmt.Errorf("ffprobe: invalid frame size %dx%d", s.Width, s.Height)
	}

	info := streamInfo{Width: s.Width, Height: s.Height, Frames: -1}

	// ffmpeg autorotates, so quarter turns arrive with the axes swapped
	rotation, _ := strconv.ParseFloat(s.Tags.Rotate, 64)
	for _, sd := range s.SideData {
		if sd.Rotation != 0 {
			rotation = sd.Rotation
		}
	}
	if quarterTurn(rotation) {
		info.Width, info.Height = info.Height, info.Width
	}

	info.Rate = parseRate(s.AvgFrameRate)
	if info.Rate <= 0 {
		info.Rate = parseRate(s.RFrameRate)
	}
	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.Frames = n
	}
	return info, nil
}

// quarterTurn reports whether degrees is an odd multiple of 90
func quarterTurn(degrees float64) bool {
	d := int(math.Round(degrees))
	return d%90 == 0 && (d/90)%2 != 0
}

// parseRate parses "num/den" or a plain number; invalid or undefined rates yield 0
func parseRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 0
	}
	return n / d
}
