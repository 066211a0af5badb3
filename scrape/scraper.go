package scrape

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

// Dedup answers whether a post was already turned into a video.
type Dedup interface {
	IsProcessed(id string) (bool, error)
}

// Scraper discovers candidate story posts from the configured subreddits.
type Scraper struct {
	cfg    *config.Config
	client *reddit.Client
	dedup  Dedup
}

// New creates a new Scraper. With Reddit credentials in the environment it
// authenticates; otherwise it falls back to the read-only API client.
func New(cfg *config.Config, dedup Dedup) (*Scraper, error) {
	ua := os.Getenv("REDDIT_USER_AGENT")
	if ua == "" {
		ua = "reddit-story-video-generator/1.0"
	}

	var client *reddit.Client
	var err error

	clientID := os.Getenv("REDDIT_CLIENT_ID")
	clientSecret := os.Getenv("REDDIT_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		credentials := reddit.Credentials{
			ID:       clientID,
			Secret:   clientSecret,
			Username: os.Getenv("REDDIT_USERNAME"),
			Password: os.Getenv("REDDIT_PASSWORD"),
		}
		client, err = reddit.NewClient(credentials, reddit.WithUserAgent(ua))
	} else {
		client, err = reddit.NewReadonlyClient(reddit.WithUserAgent(ua))
	}
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}

	return &Scraper{cfg: cfg, client: client, dedup: dedup}, nil
}

// Run fetches hot posts from every configured subreddit concurrently,
// filters them down to narratable stories, and returns the best candidates
// ordered by score.
func (s *Scraper) Run(ctx context.Context) ([]types.Post, error) {
	pool, err := ants.NewPool(s.cfg.Scrape.FetchWorkers)
	if err != nil {
		return nil, fmt.Errorf("scrape worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		candidates []types.Post
	)

	for _, name := range s.cfg.Scrape.Subreddits {
		name := name
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			posts, err := s.fetchSubreddit(ctx, name)
			if err != nil {
				log.Warn().Err(err).Str("stage", "scrape").Str("subreddit", name).Msg("subreddit fetch failed")
				return
			}
			mu.Lock()
			candidates = append(candidates, posts...)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			log.Warn().Err(err).Str("stage", "scrape").Str("subreddit", name).Msg("could not submit fetch task")
		}
	}
	wg.Wait()

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no suitable stories found in %v", s.cfg.Scrape.Subreddits)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > s.cfg.Scrape.PostsPerRun {
		candidates = candidates[:s.cfg.Scrape.PostsPerRun]
	}

	log.Info().Str("stage", "scrape").Int("candidates", len(candidates)).Msg("discovery complete")
	return candidates, nil
}

func (s *Scraper) fetchSubreddit(ctx context.Context, name string) ([]types.Post, error) {
	posts, _, err := s.client.Subreddit.HotPosts(ctx, name, &reddit.ListOptions{
		Limit: s.cfg.Scrape.ListingLimit,
	})
	if err != nil {
		return nil, err
	}

	var out []types.Post
	for _, post := range posts {
		if !s.suitable(post) {
			continue
		}
		if seen, err := s.dedup.IsProcessed(post.ID); err == nil && seen {
			continue
		}
		out = append(out, types.Post{
			ID:        post.ID,
			Title:     post.Title,
			Body:      post.Body,
			Author:    "u/" + post.Author,
			Subreddit: "r/" + post.SubredditName,
			Score:     post.Score,
			Verified:  true,
		})
	}
	log.Info().Str("stage", "scrape").Str("subreddit", name).Int("found", len(out)).Msg("subreddit scraped")
	return out, nil
}

// suitable keeps self posts long enough to narrate but short enough for one
// vertical video.
func (s *Scraper) suitable(post *reddit.Post) bool {
	if post.Stickied || post.NSFW || !post.IsSelfPost {
		return false
	}
	if len(post.Body) < s.cfg.Scrape.MinBodyChars || len(post.Body) > s.cfg.Scrape.MaxBodyChars {
		return false
	}
	return post.Score >= s.cfg.Scrape.MinScore
}
