package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/model"
)

const (
	anthropicVersion = "2023-06-01"
	maxOutputTokens  = 8000

	// USD per million tokens, used for the cost estimate surfaced to staff.
	priceInput      = 3.00
	priceCacheWrite = 3.75
	priceCacheRead  = 0.30
	priceOutput     = 15.00
)

// AnthropicExtractor calls the Anthropic messages API with the PDF attached
// as a base64 document block.
type AnthropicExtractor struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	log     zerolog.Logger
}

func NewAnthropicExtractor(cfg *config.Config, log zerolog.Logger) *AnthropicExtractor {
	return &AnthropicExtractor{
		apiKey:  cfg.AnthropicAPIKey,
		baseURL: cfg.AnthropicBaseURL,
		model:   cfg.AnthropicModel,
		client:  &http.Client{Timeout: cfg.ExtractTimeout},
		log:     log.With().Str("component", "extractor").Logger(),
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Source *documentSource `json:"source,omitempty"`
}

type documentSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens              int `json:"input_tokens"`
		OutputTokens             int `json:"output_tokens"`
		CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
		CacheReadInputTokens     int `json:"cache_read_input_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Extract sends the PDF for analysis and parses the fenced JSON reply.
func (e *AnthropicExtractor) Extract(ctx context.Context, pdf []byte) ([]model.TranscriptTerm, *model.TokenUsage, error) {
	if e.apiKey == "" {
		return nil, nil, fmt.Errorf("extraction unavailable: ANTHROPIC_API_KEY not configured")
	}

	reqBody := messagesRequest{
		Model:     e.model,
		MaxTokens: maxOutputTokens,
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				{
					Type: "document",
					Source: &documentSource{
						Type:      "base64",
						MediaType: "application/pdf",
						Data:      base64.StdEncoding.EncodeToString(pdf),
					},
				},
				{Type: "text", Text: extractionPrompt},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("call messages API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unknown error"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, nil, fmt.Errorf("messages API status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Content) == 0 {
		return nil, nil, fmt.Errorf("messages API returned no content")
	}

	usage := &model.TokenUsage{
		InputTokens:      parsed.Usage.InputTokens,
		OutputTokens:     parsed.Usage.OutputTokens,
		CacheWriteTokens: parsed.Usage.CacheCreationInputTokens,
		CacheReadTokens:  parsed.Usage.CacheReadInputTokens,
	}
	usage.EstimatedCostDollar = (float64(usage.InputTokens)*priceInput +
		float64(usage.CacheWriteTokens)*priceCacheWrite +
		float64(usage.CacheReadTokens)*priceCacheRead +
		float64(usage.OutputTokens)*priceOutput) / 1e6

	e.log.Debug().
		Int("input_tokens", usage.InputTokens).
		Int("output_tokens", usage.OutputTokens).
		Msg("Extraction call complete")

	terms, err := ParseFencedTerms(parsed.Content[0].Text)
	if err != nil {
		return nil, usage, err
	}
	return terms, usage, nil
}
