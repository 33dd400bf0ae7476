package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/forgeline/partmatch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ComplexityClassifier implements ai.ComplexityClassifier using
// OpenAI-compatible chat APIs.
type ComplexityClassifier struct {
	client llms.Model
	logger *slog.Logger
}

type classification struct {
	Complexity string `json:"complexity"`
}

func newComplexityClassifier(config *ai.Config) (*ComplexityClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &ComplexityClassifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewComplexityClassifier creates a new classifier using the provided
// configuration.
//
// Returns ai.ComplexityClassifier interface to enforce abstraction.
func NewComplexityClassifier(config *ai.Config) (ai.ComplexityClassifier, error) {
	return newComplexityClassifier(config)
}

// ClassifyComplexity grades the order context with an LLM.
// Unknown responses fall back to moderate rather than erroring; the level
// only steers downstream fulfillment, it never blocks matching.
func (c *ComplexityClassifier) ClassifyComplexity(ctx context.Context, orderContext string) (ai.ComplexityLevel, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassificationPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(orderContext),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return ai.ComplexityModerate, nil
	}

	responseText := repairJSON(stripCodeFences(response.Choices[0].Content))

	var result classification
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		c.logger.Warn("error parsing classifier response", "response", responseText, "err", err)
		return ai.ComplexityModerate, nil
	}

	level := ai.ComplexityLevel(result.Complexity)
	if !ai.ValidComplexityLevel(level) {
		c.logger.Warn("classifier returned unknown level", "level", result.Complexity)
		return ai.ComplexityModerate, nil
	}
	return level, nil
}
