// Package translate implements the intent translator: a client for an
// OpenAI-compatible chat API that turns a patient's natural-language query
// into a structured filter draft. The draft is best-effort; every failure
// mode maps to ErrTranslatorUnavailable and the caller falls back to the
// empty criteria.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/config"
	internalErrors "github.com/Yi-lne/Hospital-Selection-System-sub001/internal/errors"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// Client calls an OpenAI-compatible endpoint (GLM by default) to extract
// filter criteria from free text.
type Client struct {
	llm llms.Model
}

// draft mirrors the JSON shape the model is instructed to return.
type draft struct {
	ProvinceCode   *string `json:"province_code"`
	CityCode       *string `json:"city_code"`
	AreaCode       *string `json:"area_code"`
	TierLevel      *string `json:"tier_level"`
	DepartmentName *string `json:"department_name"`
	Insurance      *bool   `json:"insurance_required"`
	KeywordText    *string `json:"keyword_text"`
	Reasoning      *string `json:"reasoning"`
}

// NewClient creates a translator client from the translator settings.
func NewClient(cfg config.Translator) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating translator client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// Translate sends the query to the model and parses the structured draft out
// of its response. The returned draft carries no pagination or entity kind;
// the normalizer fills those in and re-validates everything.
func (c *Client) Translate(ctx context.Context, query string) (*services.FilterRequest, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(query)},
		},
	}

	resp, err := c.llm.GenerateContent(ctx, content,
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, internalErrors.NewTranslatorUnavailableError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, internalErrors.NewTranslatorUnavailableError(fmt.Errorf("empty response"))
	}

	return parseDraft(resp.Choices[0].Content)
}

// parseDraft extracts the outermost JSON object from the model output.
// Models occasionally wrap the JSON in prose or code fences, so everything
// outside the braces is discarded.
func parseDraft(raw string) (*services.FilterRequest, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, internalErrors.NewTranslatorUnavailableError(fmt.Errorf("no JSON object in response"))
	}

	var d draft
	if err := json.Unmarshal([]byte(raw[start:end+1]), &d); err != nil {
		return nil, internalErrors.NewTranslatorUnavailableError(fmt.Errorf("unparsable response: %w", err))
	}

	req := &services.FilterRequest{
		ProvinceCode:      deref(d.ProvinceCode),
		CityCode:          deref(d.CityCode),
		AreaCode:          deref(d.AreaCode),
		TierLevel:         deref(d.TierLevel),
		DepartmentName:    deref(d.DepartmentName),
		KeywordText:       deref(d.KeywordText),
		InsuranceRequired: d.Insurance,
	}
	return req, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Disabled is an IntentTranslator that always reports unavailability. It is
// wired in when no API key is configured so free-text queries still work
// through the fallback path.
type Disabled struct{}

// Translate always returns ErrTranslatorUnavailable.
func (Disabled) Translate(context.Context, string) (*services.FilterRequest, error) {
	return nil, internalErrors.NewTranslatorUnavailableError(fmt.Errorf("translator not configured"))
}
