// Package openai is a decision oracle backed by the OpenAI chat API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/schedule-manager-cli/internal/adapters/oracle/jsoncritique"
	"github.com/bnema/schedule-manager-cli/internal/domain"
	"github.com/bnema/schedule-manager-cli/internal/ports"
	goopenai "github.com/sashabaranov/go-openai"
)

const DefaultModel = goopenai.GPT4oMini

var ErrMissingAPIKey = errors.New("openai: OPENAI_API_KEY is required")

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

type Oracle struct {
	client chatCompleter
	model  string
}

var _ ports.DecisionOracle = (*Oracle)(nil)

func New(apiKey, model string) (*Oracle, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return newWithClient(goopenai.NewClient(apiKey), model), nil
}

func newWithClient(client chatCompleter, model string) *Oracle {
	if model == "" {
		model = DefaultModel
	}
	return &Oracle{client: client, model: model}
}

func (o *Oracle) Critique(ctx context.Context, snapshot domain.PlanSnapshot) (domain.Critique, error) {
	text, err := o.complete(ctx, snapshot, jsoncritique.CriticInstruction, true, 0)
	if err != nil {
		return domain.Critique{}, err
	}

	critique, err := jsoncritique.Decode(text)
	if err != nil {
		return domain.Critique{}, fmt.Errorf("openai critique: %w", err)
	}
	return critique, nil
}

func (o *Oracle) Summarize(ctx context.Context, snapshot domain.PlanSnapshot) (string, error) {
	text, err := o.complete(ctx, snapshot, jsoncritique.SummaryInstruction, false, 0.4)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (o *Oracle) complete(ctx context.Context, snapshot domain.PlanSnapshot, instruction string, jsonMode bool, temperature float32) (string, error) {
	prompt, err := jsoncritique.Prompt(snapshot)
	if err != nil {
		return "", err
	}

	req := goopenai.ChatCompletionRequest{
		Model: o.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: instruction},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	}
	if jsonMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
