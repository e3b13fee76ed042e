// Package gemini is a decision oracle backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/adapters/oracle/jsoncritique"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash-lite"

var ErrMissingAPIKey = errors.New("gemini: GOOGLE_API_KEY is required")

// generator is the part of *genai.Models the oracle uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Oracle struct {
	models generator
	model  string
}

var _ ports.DecisionOracle = (*Oracle)(nil)

func New(ctx context.Context, apiKey, model string) (*Oracle, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newWithGenerator(client.Models, model), nil
}

func newWithGenerator(models generator, model string) *Oracle {
	if model == "" {
		model = DefaultModel
	}
	return &Oracle{models: models, model: model}
}

func (o *Oracle) Critique(ctx context.Context, snapshot domain.PlanSnapshot) (domain.Critique, error) {
	text, err := o.generate(ctx, snapshot, jsoncritique.CriticInstruction, "application/json", 0)
	if err != nil {
		return domain.Critique{}, err
	}

	critique, err := jsoncritique.Decode(text)
	if err != nil {
		return domain.Critique{}, fmt.Errorf("gemini critique: %w", err)
	}
	return critique, nil
}

func (o *Oracle) Summarize(ctx context.Context, snapshot domain.PlanSnapshot) (string, error) {
	text, err := o.generate(ctx, snapshot, jsoncritique.SummaryInstruction, "", 0.4)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (o *Oracle) generate(ctx context.Context, snapshot domain.PlanSnapshot, instruction, mimeType string, temperature float32) (string, error) {
	prompt, err := jsoncritique.Prompt(snapshot)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr(temperature),
		ResponseMIMEType:  mimeType,
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := o.models.GenerateContent(ctx, o.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
