package script

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Jacktheone617/reddit-story-video-generator/errs"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

var (
	reURL         = regexp.MustCompile(`https?://\S+`)
	reBold        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic      = regexp.MustCompile(`\*(.*?)\*`)
	reStrike      = regexp.MustCompile(`~~(.*?)~~`)
	reSuperscript = regexp.MustCompile(`\^(\S+)`)
	reSpoken      = regexp.MustCompile(`[#~^/\\|@<>{}\[\]()_=+*]`)
	reLoneDash    = regexp.MustCompile(`(^|\s)-+(\s|$)`)
	reNewlines    = regexp.MustCompile(`\n+`)
	reDots        = regexp.MustCompile(`\.{2,}`)
	rePunctRun    = regexp.MustCompile(`([.!?,;:])(\s*[.!?,;:])+`)
	reWhitespace  = regexp.MustCompile(`\s+`)
)

// CleanForSpeech strips everything a TTS voice would read aloud as noise:
// URLs, markdown markers, HTML entities, and symbol characters. Hyphens
// inside words survive; standalone dashes do not.
func CleanForSpeech(text string) string {
	text = reURL.ReplaceAllString(text, "")
	text = reBold.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reStrike.ReplaceAllString(text, "$1")
	text = reSuperscript.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "&gt;", "")
	text = strings.ReplaceAll(text, "&amp;", "and")
	text = strings.ReplaceAll(text, "&lt;", "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = reSpoken.ReplaceAllString(text, "")
	text = reLoneDash.ReplaceAllString(text, "$1$2")
	// Newlines become spaces, not periods, or the voice says "period".
	text = reNewlines.ReplaceAllString(text, " ")
	text = reDots.ReplaceAllString(text, ".")
	text = rePunctRun.ReplaceAllString(text, "$1")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// BuildTextUnit turns a post into the narration script: title followed by
// body, cleaned for speech and capped at maxWords words.
func BuildTextUnit(post types.Post, maxWords int) (types.TextUnit, error) {
	full := fmt.Sprintf("%s. %s", post.Title, post.Body)
	clean := CleanForSpeech(full)

	words := strings.Fields(clean)
	if len(words) == 0 || !strings.ContainsFunc(clean, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return types.TextUnit{}, fmt.Errorf("%w: post %s has no speakable text", errs.ErrInput, post.ID)
	}
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
		words[len(words)-1] += "..."
		clean = strings.Join(words, " ")
	}

	return types.TextUnit{Text: clean, Words: words}, nil
}
