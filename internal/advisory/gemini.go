package advisory

import (
	"context"
	"errors"

	"github.com/Cyclone1070/bashgate/internal/decision"
	"google.golang.org/genai"
)

// ContentGenerator is the slice of the Gemini SDK the advisor needs.
// This abstraction allows tests to substitute a fake client.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// RealContentGenerator wraps the official SDK client to satisfy
// ContentGenerator.
type RealContentGenerator struct {
	client *genai.Client
}

// NewRealContentGenerator creates a RealContentGenerator from an SDK client.
func NewRealContentGenerator(client *genai.Client) *RealContentGenerator {
	return &RealContentGenerator{client: client}
}

// GenerateContent calls the SDK's GenerateContent method.
func (g *RealContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, contents, config)
}

// GeminiAdvisor asks a Gemini model for advice.
type GeminiAdvisor struct {
	client ContentGenerator
	model  string
}

// NewGeminiAdvisor creates a GeminiAdvisor for the given model.
func NewGeminiAdvisor(client ContentGenerator, model string) *GeminiAdvisor {
	return &GeminiAdvisor{client: client, model: model}
}

// Advise implements Advisor.
func (a *GeminiAdvisor) Advise(ctx context.Context, command, reason string, perm decision.Permission) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(buildPrompt(command, reason, perm))},
		},
	}

	resp, err := a.client.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no candidates in response")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}
