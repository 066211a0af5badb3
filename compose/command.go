package compose

import (
	"fmt"
	"strings"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// encodeParams describes one composition encode.
type encodeParams struct {
	Clip      string
	ClipDur   float64
	AudioFile string
	Duration  float64
	Header    string
	ASSFile   string
	Preset    string
	CRF       int
	Output    string
}

// buildEncodeArgs assembles the single-pass ffmpeg invocation: loop or trim
// the background to the narration length, normalize to the fixed 720x1280
// 24fps profile, overlay the header card, burn the caption track, and mux
// the narration as the only audio stream with faststart metadata.
func buildEncodeArgs(p encodeParams) []string {
	args := []string{"-y", "-nostats", "-hide_banner", "-loglevel", "warning"}

	if p.ClipDur > 0 && p.ClipDur < p.Duration {
		loops := int(p.Duration/p.ClipDur) + 1
		args = append(args, "-stream_loop", fmt.Sprintf("%d", loops))
	}
	args = append(args,
		"-i", p.Clip,
		"-i", p.Header,
		"-i", p.AudioFile,
	)

	filter := fmt.Sprintf(
		"[0:v]scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d,setsar=1,fps=%d[bg];"+
			"[bg][1:v]overlay=(W-w)/2:0[hdr];"+
			"[hdr]ass='%s'[v]",
		types.VideoWidth, types.VideoHeight,
		types.VideoWidth, types.VideoHeight,
		types.FPS,
		escapeFilterPath(p.ASSFile),
	)

	args = append(args,
		"-filter_complex", filter,
		"-map", "[v]",
		"-map", "2:a",
		"-t", fmt.Sprintf("%.3f", p.Duration),
		"-r", fmt.Sprintf("%d", types.FPS),
		"-c:v", "libx264",
		"-preset", p.Preset,
		"-crf", fmt.Sprintf("%d", p.CRF),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		p.Output,
	)
	return args
}

// escapeFilterPath escapes a path for use inside an ffmpeg filter graph.
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	return path
}
