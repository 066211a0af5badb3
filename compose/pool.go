package compose

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jacktheone617/reddit-story-video-generator/errs"
)

var clipExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
}

// Pool is the read-only background clip pool. Many renders may share one
// pool; selection order is driven by the caller's seeded source.
type Pool struct {
	dir   string
	clips []string
}

// OpenPool scans dir for background clips.
func OpenPool(dir string) (*Pool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: background pool %s: %v", errs.ErrResource, dir, err)
	}

	var clips []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if clipExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			clips = append(clips, filepath.Join(dir, e.Name()))
		}
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: no background clips in %s", errs.ErrResource, dir)
	}

	return &Pool{dir: dir, clips: clips}, nil
}

// Size returns the number of clips in the pool.
func (p *Pool) Size() int { return len(p.clips) }

// Candidates returns every clip in a random order. The first entry is the
// uniform random pick; the rest are the retry order when a clip turns out
// to be corrupt.
func (p *Pool) Candidates(rng *rand.Rand) []string {
	out := make([]string, len(p.clips))
	copy(out, p.clips)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
