package tts

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// ParseVTTBoundaries reads the WebVTT file edge-tts writes alongside the
// audio (one word per cue) and converts the cues into ordered
// WordBoundaryEvents. Cues whose text carries no letters or digits are
// punctuation artifacts and are dropped from the event stream.
func ParseVTTBoundaries(path string) ([]types.WordBoundaryEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []types.WordBoundaryEvent
	var start, end float64
	haveTiming := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.Contains(line, "-->") {
			parts := strings.SplitN(line, "-->", 2)
			s, err1 := parseVTTTimestamp(strings.TrimSpace(parts[0]))
			e, err2 := parseVTTTimestamp(strings.Fields(strings.TrimSpace(parts[1]))[0])
			if err1 != nil || err2 != nil {
				haveTiming = false
				continue
			}
			start, end = s, e
			haveTiming = true
			continue
		}

		if line == "" || line == "WEBVTT" || !haveTiming {
			continue
		}

		word := strings.TrimSpace(line)
		haveTiming = false
		if !hasSpeakableRune(word) {
			continue
		}
		events = append(events, types.WordBoundaryEvent{
			Word:     word,
			Start:    start,
			Duration: end - start,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// parseVTTTimestamp parses "HH:MM:SS.mmm" or "MM:SS.mmm" into seconds.
func parseVTTTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed timestamp %q: %w", ts, err)
		}
		total = total*60 + v
	}
	return total, nil
}

func hasSpeakableRune(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
