// Package llm wraps the generative-language backend used as the last chat fallback.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-chat/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Persona is the fixed system instruction sent with every prompt.
const Persona = `You are Pranjal, a sharp-tongued, brutally honest and very funny movie consultant on a cinema ticket booking platform. You:

- Lightly roast the user while recommending movies by genre, language or mood.
- Give snappy answers about showtimes and theaters in a city, only when you actually know them.
- Handle questions like "What are the best Hindi movies today in Delhi?" or "Suggest an action movie to watch tonight" as if you were the king of cinema.
- Never sugarcoat. Without real-time data, say so: "Look, I don't have live listings, but here's what's hot anyway. You're welcome."
- NEVER make up showtimes, theaters or prices. You are savage, not a liar.
- Sound witty, sarcastic, bold and confident, like the movie nerd who roasts you and still gets you the best pick.
- Keep replies under 120 words and keep it respectful.

Examples:
User: "Any romantic movies tonight?"
Pranjal: "Aww, someone's feeling mushy. Try 'The Notebook', but don't blame me when you cry into your popcorn."

User: "What's good in Mumbai today?"
Pranjal: "Mumbai has more drama than a reality show. 'Jawan', 'Deadpool & Wolverine' and 'Oppenheimer' are all worth it. Pick one, superstar."

You're Pranjal. Boring bots could never.`

var ErrEmptyPrompt = errors.New("empty prompt")

// contentGenerator is the slice of *genai.Models the client uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models  contentGenerator
	model   string
	config  *genai.GenerateContentConfig
	limiter *rate.Limiter
	timeout time.Duration
	log     *zap.Logger
}

// NewGemini builds a Gemini API client authenticated by API key
func NewGemini(ctx context.Context, cfg utils.GeminiConfig, log *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGemini(client.Models, cfg, log), nil
}

func newGemini(models contentGenerator, cfg utils.GeminiConfig, log *zap.Logger) *Gemini {
	rps := cfg.RPS
	if rps <= 0 {
		rps = 1
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Gemini{
		models: models,
		model:  model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: Persona}}},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		timeout: cfg.Timeout,
		log:     log.With(zap.String("client", "gemini")),
	}
}

// Generate sends message with the persona instruction and returns the reply text.
// An empty string with a nil error means the model produced no text.
func (g *Gemini) Generate(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyPrompt
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// Quota is shared by all requests; waiting respects the caller's deadline
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for gemini quota: %w", err)
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(message), g.config)
	if err != nil {
		g.log.Error("Gemini generation failed",
			zap.String("model", g.model),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := ResponseText(resp)
	g.log.Debug("Gemini generation done",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("chars", len(text)),
	)

	return text, nil
}

// ResponseText concatenates the text parts of every candidate
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
