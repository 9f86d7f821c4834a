package aury

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// generationTimeout bounds the external call so overall request latency
// stays predictable.
const generationTimeout = 5 * time.Second

// maxOutputTokens keeps responses short and the bill low.
const maxOutputTokens = 100

// Generator produces text from a system instruction and user prompt.
// Substitutable for testing.
type Generator interface {
	Generate(ctx context.Context, system, prompt string, temperature float32) (string, error)
}

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	APIKey string
	Model  string
}

// Generate sends the prompt to Gemini with the tone-specific settings.
func (g *GeminiGenerator) Generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.APIKey})
	if err != nil {
		return "", fmt.Errorf("init genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxOutputTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Request carries the context Aury builds a remark from.
type Request struct {
	RawText       string
	Amount        *decimal.Decimal
	Category      string
	CurrentStreak int
	UserGoal      string
	Tone          Tone
}

// Service produces commentary, preferring the external generator and
// falling back to the canned pools. Respond never fails.
type Service struct {
	gen       Generator
	fallbacks Fallbacks
	log       zerolog.Logger
}

// NewService creates a commentary service. gen may be nil, in which case
// every request is answered from the fallback pools.
func NewService(gen Generator, fallbacks Fallbacks, log zerolog.Logger) *Service {
	return &Service{gen: gen, fallbacks: fallbacks, log: log}
}

// emoji and other symbols are stripped from category labels before they
// reach the prompt.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Respond generates a remark about the parsed expense. On any failure of
// the external path (unconfigured, timeout, transport error, empty result)
// it picks from the canned pool instead; the result is always non-empty.
func (s *Service) Respond(ctx context.Context, req Request) string {
	if s.gen == nil {
		s.log.Warn().Msg("aury generator not configured, using canned responses")
		return s.fallbacks.Pick(req.Category)
	}

	tone := req.Tone
	p, ok := profiles[tone]
	if !ok {
		p = profiles[ToneSarcastic]
		tone = ToneSarcastic
	}

	amount := "N/A"
	if req.Amount != nil {
		amount = req.Amount.String()
	}
	category := strings.TrimSpace(nonWordRe.ReplaceAllString(req.Category, ""))
	goal := req.UserGoal
	if goal == "" {
		goal = "No especificado"
	}

	prompt := p.buildPrompt(amount, category, req.CurrentStreak, goal)

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	text, err := s.gen.Generate(genCtx, p.system, prompt, p.temperature)
	if err != nil {
		s.log.Error().Err(err).Str("tone", string(tone)).Msg("aury generation failed, using fallback")
		return s.fallbacks.Pick(req.Category)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.log.Warn().Str("tone", string(tone)).Msg("empty aury response, using fallback")
		return s.fallbacks.Pick(req.Category)
	}

	s.log.Info().Str("tone", string(tone)).Int("chars", len(text)).Msg("aury response generated")
	return text
}
