package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"pet-diet-planner/internal/domain/diet"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: s}}},
		}},
	}
}

func TestGenerate_RequestsJSONAtLowTemperature(t *testing.T) {
	fm := &fakeModels{resp: textResponse(`{"name":"Plan"}`)}
	b := &Backend{models: fm}

	text, err := b.Generate(context.Background(), diet.GenerateRequest{
		Model:       "gemini-2.5-flash",
		Prompt:      "prompt",
		Temperature: 0.2,
		JSON:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"name":"Plan"}`, text)
	assert.Equal(t, "gemini-2.5-flash", fm.model)
	assert.Equal(t, "prompt", fm.prompt)
	require.NotNil(t, fm.config.Temperature)
	assert.InDelta(t, 0.2, *fm.config.Temperature, 1e-6)
	assert.Equal(t, "application/json", fm.config.ResponseMIMEType)
}

func TestGenerate_Errors(t *testing.T) {
	b := &Backend{models: &fakeModels{err: errors.New("429 quota")}}
	_, err := b.Generate(context.Background(), diet.GenerateRequest{Model: "m"})
	assert.ErrorContains(t, err, "429 quota")

	b = &Backend{models: &fakeModels{resp: &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
	}}}
	_, err = b.Generate(context.Background(), diet.GenerateRequest{Model: "m"})
	assert.ErrorContains(t, err, "blocked")
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
