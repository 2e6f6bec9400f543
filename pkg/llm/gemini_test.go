package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-chat/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGenerate_SendsPersonaAndMessage(t *testing.T) {
	fake := &fakeModels{resp: textResponse("Try ", "'The Notebook'.")}
	g := newGemini(fake, utils.GeminiConfig{Model: "gemini-test", RPS: 5, Timeout: time.Second}, zap.NewNop())

	reply, err := g.Generate(context.Background(), "Any romantic movies tonight?")
	require.NoError(t, err)
	assert.Equal(t, "Try 'The Notebook'.", reply)

	assert.Equal(t, "gemini-test", fake.model)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "Any romantic movies tonight?", fake.contents[0].Parts[0].Text)
	require.NotNil(t, fake.config.SystemInstruction)
	assert.Equal(t, Persona, fake.config.SystemInstruction.Parts[0].Text)
}

func TestPersona_KeepsVoiceAndGuardrails(t *testing.T) {
	assert.Contains(t, Persona, "You are Pranjal")
	assert.Contains(t, Persona, "NEVER make up showtimes")
	assert.Contains(t, Persona, `User: "Any romantic movies tonight?"`)
	assert.Contains(t, Persona, `User: "What's good in Mumbai today?"`)
}

func TestGenerate_PropagatesBackendError(t *testing.T) {
	fake := &fakeModels{err: errors.New("quota exceeded")}
	g := newGemini(fake, utils.GeminiConfig{}, zap.NewNop())

	_, err := g.Generate(context.Background(), "hello")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestGenerate_RejectsEmptyPrompt(t *testing.T) {
	g := newGemini(&fakeModels{}, utils.GeminiConfig{}, zap.NewNop())

	_, err := g.Generate(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGenerate_CancelledContext(t *testing.T) {
	g := newGemini(&fakeModels{resp: textResponse("x")}, utils.GeminiConfig{RPS: 1}, zap.NewNop())
	// drain the single burst token
	require.True(t, g.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Generate(ctx, "hello")
	assert.Error(t, err)
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", ResponseText(nil))
	assert.Equal(t, "", ResponseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
	assert.Equal(t, "ab", ResponseText(textResponse(" a", "b ")))
}
