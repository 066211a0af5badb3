package header

import (
	"fmt"
	"image"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

const (
	cardMargin  = 30
	cardPadding = 24
	cardRadius  = 40
	avatarSize  = 64
	glyphSize   = 40
	titleSize   = 34
	nameSize    = 30
)

// scoreGlyphs is the monotonic score → reaction glyph mapping. Higher post
// scores surface more reactions; the thresholds are inclusive lower bounds.
var scoreGlyphs = []struct {
	minScore int
	count    int
}{
	{10000, 5},
	{2000, 4},
	{500, 3},
	{100, 2},
	{0, 1},
}

// glyphPalette colors the reaction row, strongest reactions first.
var glyphPalette = [][3]int{
	{255, 69, 0},   // upvote orange
	{255, 102, 51}, // fire
	{255, 193, 7},  // gold
	{233, 30, 99},  // heart
	{156, 39, 176}, // wholesome
}

// GlyphCount returns how many reaction glyphs a post of the given score
// shows. Negative scores clamp to the lowest tier.
func GlyphCount(score int) int {
	for _, tier := range scoreGlyphs {
		if score >= tier.minScore {
			return tier.count
		}
	}
	return 1
}

var (
	fontOnce sync.Once
	boldFont *opentype.Font
	regFont  *opentype.Font
	fontErr  error
)

func loadFonts() (*opentype.Font, *opentype.Font, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
		if fontErr != nil {
			return
		}
		regFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return boldFont, regFont, fontErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// Render draws the post header card: a white rounded panel in the top band
// of the output frame carrying the platform avatar, subreddit and author
// labels, an optional verification glyph, the score-driven reaction row and
// the wrapped post title. The drawing is fully vector based, so identical
// input always produces an identical image.
func Render(card types.HeaderCard) (image.Image, error) {
	bold, regular, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("load embedded fonts: %w", err)
	}

	titleFace, err := newFace(bold, titleSize)
	if err != nil {
		return nil, err
	}
	nameFace, err := newFace(bold, nameSize)
	if err != nil {
		return nil, err
	}
	labelFace, err := newFace(regular, 24)
	if err != nil {
		return nil, err
	}

	title := truncateTitle(card.Title, 100)
	cardWidth := float64(types.VideoWidth - 2*cardMargin)
	textWidth := cardWidth - 2*cardPadding

	// Measure the wrapped title first so the card height fits the content.
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(titleFace)
	lines := measure.WordWrap(title, textWidth)
	titleHeight := float64(len(lines)) * titleSize * 1.3

	topBand := float64(cardPadding) + avatarSize + 12 + glyphSize + 16
	cardHeight := topBand + titleHeight + cardPadding

	dc := gg.NewContext(types.VideoWidth, int(cardHeight)+2*cardMargin)

	// Card panel.
	dc.SetRGBA255(255, 255, 255, 255)
	dc.DrawRoundedRectangle(cardMargin, cardMargin, cardWidth, cardHeight, cardRadius)
	dc.Fill()

	// Platform avatar.
	ax := float64(cardMargin + cardPadding + avatarSize/2)
	ay := float64(cardMargin + cardPadding + avatarSize/2)
	dc.SetRGBA255(255, 69, 0, 255)
	dc.DrawCircle(ax, ay, avatarSize/2)
	dc.Fill()
	dc.SetRGBA255(255, 255, 255, 255)
	dc.SetFontFace(nameFace)
	dc.DrawStringAnchored("r/", ax, ay-2, 0.5, 0.5)

	// Subreddit and author labels.
	nameX := ax + avatarSize/2 + 14
	dc.SetRGBA255(0, 0, 0, 255)
	dc.SetFontFace(nameFace)
	dc.DrawStringAnchored(card.Subreddit, nameX, ay-14, 0, 0.5)
	nameWidth, _ := dc.MeasureString(card.Subreddit)

	dc.SetRGBA255(120, 124, 126, 255)
	dc.SetFontFace(labelFace)
	dc.DrawStringAnchored(card.Author, nameX, ay+16, 0, 0.5)

	if card.Verified {
		drawVerifiedGlyph(dc, nameX+nameWidth+22, ay-14)
	}

	// Reaction glyph row.
	glyphY := float64(cardMargin+cardPadding+avatarSize) + 12 + glyphSize/2
	for i := 0; i < GlyphCount(card.Score); i++ {
		c := glyphPalette[i]
		gx := float64(cardMargin+cardPadding) + glyphSize/2 + float64(i)*(glyphSize-8)
		dc.SetRGBA255(c[0], c[1], c[2], 255)
		dc.DrawCircle(gx, glyphY, glyphSize/2)
		dc.FillPreserve()
		dc.SetRGBA255(255, 255, 255, 255)
		dc.SetLineWidth(3)
		dc.Stroke()
	}

	// Wrapped title.
	dc.SetRGBA255(0, 0, 0, 255)
	dc.SetFontFace(titleFace)
	dc.DrawStringWrapped(title, cardMargin+cardPadding, cardMargin+topBand, 0, 0, textWidth, 1.3, gg.AlignLeft)

	return dc.Image(), nil
}

// RenderToFile writes the header card as a PNG for ffmpeg to overlay.
func RenderToFile(card types.HeaderCard, path string) error {
	img, err := Render(card)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

// drawVerifiedGlyph draws the blue verification badge: filled circle with a
// white check mark.
func drawVerifiedGlyph(dc *gg.Context, x, y float64) {
	dc.SetRGBA255(0, 149, 246, 255)
	dc.DrawCircle(x, y, 14)
	dc.Fill()
	dc.SetRGBA255(255, 255, 255, 255)
	dc.SetLineWidth(3.5)
	dc.MoveTo(x-6, y)
	dc.LineTo(x-1.5, y+5)
	dc.LineTo(x+6, y-5)
	dc.Stroke()
}

func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}
