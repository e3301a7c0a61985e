// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package suggest generates draft copy for page sections using the OpenAI API.
// Suggestions are offered in the section editor; editors always review and
// edit the text before saving.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/homehni/homehni-web/internal/model"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("suggestions are not configured")

// Request describes the section an editor wants copy for.
type Request struct {
	SectionType string   // e.g. "hero", "faq", "cta_banner"
	PageTitle   string   // page context, e.g. "Home Loans in Bangalore"
	Service     string   // optional service context, e.g. "loans"
	Tone        string   // optional, defaults to "professional and warm"
	Fields      []string // field names the section layout expects
}

// Service generates section copy suggestions.
type Service struct {
	client  openai.Client
	model   string
	enabled bool
}

// New creates the suggestion service. An empty API key disables it; Suggest
// then returns ErrDisabled and the editor hides the suggest button.
func New(apiKey, chatModel string) *Service {
	if apiKey == "" {
		return &Service{}
	}
	return &Service{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   chatModel,
		enabled: true,
	}
}

// Enabled reports whether suggestions are available.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Suggest asks the model for copy covering the requested fields and returns
// it as section content ready to load into a draft.
func (s *Service) Suggest(ctx context.Context, req Request) (model.SectionContent, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if req.SectionType == "" {
		return nil, errors.New("section type is required")
	}
	if len(req.Fields) == 0 {
		return nil, errors.New("at least one field is required")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemPrompt(req.Fields)),
			openai.UserMessage(buildUserPrompt(&req)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: no choices returned")
	}

	return parseSuggestion(resp.Choices[0].Message.Content, req.Fields)
}

// buildSystemPrompt creates the system prompt demanding strict JSON output.
func buildSystemPrompt(fields []string) string {
	var sb strings.Builder
	sb.WriteString(`You are a copywriter for HomeHNI, an Indian real estate platform that connects owners, buyers, and tenants directly with no brokerage.

You must respond with a valid JSON object (no markdown code fences, no extra text) with exactly these string fields:

{
`)
	for i, field := range fields {
		sb.WriteString(fmt.Sprintf("  %q: \"...\"", field))
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(`}

Important rules:
- Write in clear Indian English
- Keep titles under 60 characters and descriptions under 160 characters
- Mention concrete benefits, never invent prices or statistics
- Respond ONLY with the JSON object, no other text`)
	return sb.String()
}

// buildUserPrompt creates the user prompt from the request context.
func buildUserPrompt(req *Request) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Write copy for a %q section.\n", model.HumanizeSectionType(req.SectionType)))

	if req.PageTitle != "" {
		sb.WriteString(fmt.Sprintf("Page: %s\n", req.PageTitle))
	}
	if req.Service != "" {
		sb.WriteString(fmt.Sprintf("Service being promoted: %s\n", req.Service))
	}

	tone := req.Tone
	if tone == "" {
		tone = "professional and warm"
	}
	sb.WriteString(fmt.Sprintf("Tone: %s\n", tone))

	return sb.String()
}

// parseSuggestion decodes the model's JSON reply, tolerating code fences the
// model sometimes adds despite instructions.
func parseSuggestion(raw string, fields []string) (model.SectionContent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var decoded map[string]string
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("decoding suggestion: %w", err)
	}

	content := model.SectionContent{}
	for _, field := range fields {
		value, ok := decoded[field]
		if !ok || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("suggestion missing field %q", field)
		}
		content[field] = value
	}
	return content, nil
}
