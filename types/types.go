package types

// Fixed output profile for every rendered artifact.
const (
	VideoWidth  = 720
	VideoHeight = 1280
	FPS         = 24
)

// Post is one discovered Reddit post, as handed over by the scraper.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Author    string `json:"author"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
	Verified  bool   `json:"verified"`
}

// TextUnit is the narration script for one post: the normalized text and
// its word split. Immutable once handed to synthesis.
type TextUnit struct {
	Text  string   `json:"text"`
	Words []string `json:"words"`
}

// WordBoundaryEvent marks when the synthesized voice speaks one word.
// Start and Duration are audio-time seconds.
type WordBoundaryEvent struct {
	Word     string  `json:"word"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Timing is the synthesis timing signal: either the engine emitted word
// boundaries, or we only have audio. The two cases are distinct types so
// downstream code handles both explicitly.
type Timing interface {
	timing()
}

// WithBoundaries carries the ordered word boundary events from the engine.
type WithBoundaries struct {
	Events []WordBoundaryEvent
}

// AudioOnly means the engine produced audio without timing events and word
// display intervals must be estimated.
type AudioOnly struct{}

func (WithBoundaries) timing() {}
func (AudioOnly) timing()      {}

// Narration is the synthesizer output for one text unit.
type Narration struct {
	AudioFile string  `json:"audio_file"`
	Duration  float64 `json:"duration"` // seconds
	Timing    Timing  `json:"-"`
}

// CaptionFrame maps one displayed word onto an inclusive range of output
// video frame indices. Consecutive frames are contiguous and together cover
// the whole narration.
type CaptionFrame struct {
	Word       string `json:"word"`
	FirstFrame int    `json:"first_frame"`
	LastFrame  int    `json:"last_frame"`
}

// HeaderCard is the metadata rendered into the static post header overlay.
type HeaderCard struct {
	Subreddit string `json:"subreddit"`
	Author    string `json:"author"`
	Verified  bool   `json:"verified"`
	Score     int    `json:"score"`
	Title     string `json:"title"`
}

// RenderSpec is everything the compositor needs to produce one video.
// With Seeded set, rendering decisions are deterministic.
type RenderSpec struct {
	UnitID     string         `json:"unit_id"`
	AudioFile  string         `json:"audio_file"`
	Duration   float64        `json:"duration"`
	Captions   []CaptionFrame `json:"captions"`
	HeaderFile string         `json:"header_file"`
	Seed       int64          `json:"seed"`
	Seeded     bool           `json:"seeded"`
}

// UnitState is the per-unit pipeline state machine.
type UnitState string

const (
	StatePending        UnitState = "pending"
	StateSynthesized    UnitState = "synthesized"
	StateScheduled      UnitState = "scheduled"
	StateHeaderRendered UnitState = "header_rendered"
	StateComposited     UnitState = "composited"
	StateDone           UnitState = "done"
	StateFailed         UnitState = "failed"
)

// UnitResult records how one content unit went through the pipeline.
type UnitResult struct {
	PostID    string    `json:"post_id"`
	Title     string    `json:"title"`
	State     UnitState `json:"state"`
	VideoFile string    `json:"video_file,omitempty"`
	Stage     string    `json:"stage,omitempty"`
	Error     string    `json:"error,omitempty"`
}
