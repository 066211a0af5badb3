package script

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"

	"github.com/Jacktheone617/reddit-story-video-generator/config"
	"github.com/Jacktheone617/reddit-story-video-generator/types"
)

const paraphrasePrompt = `You are editing a Reddit AITA story for a short vertical video.
Lightly rewrite the story so the wording is original while keeping:
- The same events, facts, and timeline
- The same first-person voice and casual conversational tone
- The same approximate length (do NOT make it longer)
- The AITA question at the start
- All names, ages, and relationships

Do NOT:
- Add new events or change what happened
- Change the ending or moral
- Add dramatic commentary or your own opinions
- Include phrases like "Here is the rewritten story:" -- return only the story text`

// Paraphraser lightly rewrites story text for platform originality through
// any OpenAI-compatible chat endpoint (a local Ollama instance works). It
// never breaks the pipeline: on any failure the original text is kept.
type Paraphraser struct {
	cfg    *config.Config
	client openai.Client
}

// NewParaphraser creates a new Paraphraser
func NewParaphraser(cfg *config.Config) *Paraphraser {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = "local" // Ollama ignores the key but the client requires one
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.Paraphrase.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Paraphrase.BaseURL))
	}

	return &Paraphraser{cfg: cfg, client: openai.NewClient(opts...)}
}

// Rewrite returns a paraphrased text unit, or the original unit unchanged
// when the model is unavailable or returns something unusable.
func (p *Paraphraser) Rewrite(ctx context.Context, unit types.TextUnit) types.TextUnit {
	if !p.cfg.Paraphrase.Enabled {
		return unit
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(paraphrasePrompt),
			openai.UserMessage(fmt.Sprintf("Story:\n%s", unit.Text)),
		},
		Model:       openai.ChatModel(p.cfg.Paraphrase.Model),
		Temperature: openai.Float(p.cfg.Paraphrase.Temperature),
	})
	if err != nil {
		log.Warn().Err(err).Str("stage", "script").Msg("paraphrase unavailable, keeping original text")
		return unit
	}
	if len(completion.Choices) == 0 {
		log.Warn().Str("stage", "script").Msg("paraphrase returned no choices, keeping original text")
		return unit
	}

	result := CleanForSpeech(completion.Choices[0].Message.Content)
	resultWords := strings.Fields(result)

	// Sanity checks: reject garbage, rein in a runaway model.
	switch {
	case len(resultWords) == 0:
		log.Warn().Str("stage", "script").Msg("paraphrase returned empty text, keeping original")
		return unit
	case len(result) < len(unit.Text)*2/5:
		log.Warn().Str("stage", "script").Int("chars", len(result)).Msg("paraphrase too short, keeping original")
		return unit
	case len(result) > len(unit.Text)*2:
		// A reply twice the size of the original with fewer words than it
		// is not prose (one giant token, base64, markup). Nothing to trim
		// down to, keep the original.
		if len(resultWords) < len(unit.Words) {
			log.Warn().Str("stage", "script").Int("words", len(resultWords)).Msg("paraphrase is not usable prose, keeping original")
			return unit
		}
		resultWords = resultWords[:len(unit.Words)]
		result = strings.Join(resultWords, " ")
	}

	log.Info().Str("stage", "script").Int("from_chars", len(unit.Text)).Int("to_chars", len(result)).Msg("story paraphrased")
	return types.TextUnit{Text: result, Words: resultWords}
}
