package captions

import (
	"fmt"
	"strings"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// TrackStyle controls how burned captions look. Zero values fall back to
// the fixed profile defaults.
type TrackStyle struct {
	Font        string
	FontSize    int
	StrokeWidth float64
	MarginV     int
}

func (s TrackStyle) withDefaults() TrackStyle {
	if s.Font == "" {
		s.Font = "Montserrat Black"
	}
	if s.FontSize == 0 {
		s.FontSize = 64
	}
	if s.StrokeWidth == 0 {
		s.StrokeWidth = 6
	}
	if s.MarginV == 0 {
		s.MarginV = 380
	}
	return s
}

// WriteASS renders the caption track as an ASS subtitle document, one
// Dialogue event per word. Event times are derived from the frame indices
// (start = first/fps, end = (last+1)/fps) so the burned text flips exactly
// on the scheduled frame and words never overlap on screen.
func WriteASS(frames []types.CaptionFrame, fps int, style TrackStyle) string {
	style = style.withDefaults()

	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", types.VideoWidth)
	fmt.Fprintf(&b, "PlayResY: %d\n", types.VideoHeight)
	b.WriteString("WrapStyle: 2\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, Outline, Shadow, Alignment, MarginL, MarginR, MarginV\n")
	fmt.Fprintf(&b, "Style: Word,%s,%d,&H00FFFFFF,&H00000000,&H00000000,-1,%.1f,0,2,40,40,%d\n\n",
		style.Font, style.FontSize, style.StrokeWidth, style.MarginV)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, f := range frames {
		if f.LastFrame < f.FirstFrame {
			continue // word borrowed all its frames away, nothing to show
		}
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Word,,0,0,0,,%s\n",
			assTime(f.FirstFrame, fps), assTime(f.LastFrame+1, fps), escapeASS(f.Word))
	}
	return b.String()
}

// assTime formats a frame index as an ASS timestamp (H:MM:SS.cc).
func assTime(frame, fps int) string {
	cs := (frame*100 + fps/2) / fps // centiseconds, rounded
	h := cs / 360000
	cs %= 360000
	m := cs / 6000
	cs %= 6000
	s := cs / 100
	cs %= 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func escapeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return s
}
