// Copyright 2026 Forgeline Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/forgeline/partmatch/ai"
	"github.com/forgeline/partmatch/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// RequirementExtractor implements ai.RequirementExtractor using
// OpenAI-compatible chat APIs.
type RequirementExtractor struct {
	client       llms.Model
	maxLineItems int
	logger       *slog.Logger
}

// lineItem is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type lineItem struct {
	RawText    string `json:"raw_text"`
	Material   string `json:"material"`
	Form       string `json:"form"`
	Dimensions string `json:"dimensions"`
	Quantity   int    `json:"quantity"`
	Urgency    string `json:"urgency"`
}

// extraction is the wrapper structure for the LLM's JSON response.
type extraction struct {
	LineItems []lineItem `json:"line_items"`
}

// newRequirementExtractor is an internal constructor that returns the
// concrete type. Used by Provider to manage the instance.
func newRequirementExtractor(config *ai.Config) (*RequirementExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &RequirementExtractor{
		client:       client,
		maxLineItems: config.MaxLineItems,
		logger:       slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewRequirementExtractor creates a new extractor using the provided
// configuration.
//
// Returns ai.RequirementExtractor interface to enforce abstraction.
func NewRequirementExtractor(config *ai.Config) (ai.RequirementExtractor, error) {
	return newRequirementExtractor(config)
}

// ExtractRequirements extracts line-item requirements from purchase-order
// text using an LLM. Results are returned in document order, capped at the
// configured maximum.
func (e *RequirementExtractor) ExtractRequirements(ctx context.Context, text string) ([]core.Requirement, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildExtractionPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []core.Requirement{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, lastErr
	}

	items := result.LineItems
	if len(items) > e.maxLineItems {
		e.logger.Warn("extraction truncated", "total", len(items), "cap", e.maxLineItems)
		items = items[:e.maxLineItems]
	}

	requirements := make([]core.Requirement, 0, len(items))
	for _, item := range items {
		raw := strings.TrimSpace(item.RawText)
		if raw == "" {
			continue
		}
		requirements = append(requirements, core.Requirement{
			Id:         core.IDFromContent(raw),
			RawText:    raw,
			Material:   strings.TrimSpace(item.Material),
			Form:       strings.ToLower(strings.TrimSpace(item.Form)),
			Dimensions: strings.TrimSpace(item.Dimensions),
			Quantity:   item.Quantity,
			Urgency:    strings.ToLower(strings.TrimSpace(item.Urgency)),
		})
	}

	e.logger.Debug("extracted requirements", "count", len(requirements))
	return requirements, nil
}
