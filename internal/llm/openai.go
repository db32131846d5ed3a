package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/claimtrace/internal/model"
)

const structurePrompt = `Convert the following fact-check analysis text into JSON with this exact shape:
{
  "origin_tracing": {
    "hypothesized_origin": "",
    "first_seen_dates": [{"source": "", "date": "YYYY-MM-DD", "url": ""}],
    "evolution_steps": [{"platform": "", "transformation": "", "impact": "", "date": "YYYY-MM-DD"}]
  },
  "belief_drivers": [{"name": "", "description": "", "references": [{"title": "", "url": ""}]}],
  "sources": [{"url": "", "title": "", "credibility": 0}],
  "verdict": ""
}
Only use information present in the text. Omit fields you cannot fill.
Verdict must be one of: verified, misleading, false, unverified, satire,
partially_true, outdated, exaggerated, opinion, rumor, conspiracy, debunked,
or empty. Respond with JSON only.`

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client  *openai.Client
	config  model.LLMConfig
	limiter *limiter
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		limiter: newLimiter(cfg.RequestsPerMinute),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Structure asks the model for the typed entities. The response must be
// strict JSON; anything unparseable is an error so the caller can fall
// back to the heuristic result.
func (p *OpenAIProvider) Structure(ctx context.Context, rawText string) (*model.Extraction, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	maxTokens := p.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1200
	}
	timeout := time.Duration(p.config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:     modelName,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: structurePrompt},
			{Role: openai.ChatMessageRoleUser, Content: rawText},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("structure request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("structure request: empty response")
	}

	return parseExtraction(resp.Choices[0].Message.Content)
}

// parseExtraction decodes the model response, tolerating code fences,
// and clamps credibility at ingestion
func parseExtraction(content string) (*model.Extraction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var ex model.Extraction
	if err := json.Unmarshal([]byte(content), &ex); err != nil {
		return nil, fmt.Errorf("parse structure response: %w", err)
	}

	for i := range ex.Sources {
		ex.Sources[i].Credibility = model.ClampCredibility(ex.Sources[i].Credibility)
	}
	if ex.Verdict != "" && !ex.Verdict.Known() {
		ex.Verdict = ""
	}

	return &ex, nil
}
