package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/config"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	providerName = "claude"

	maxTokens = 4096
)

// Client implements port.LLMClient using the Anthropic Messages API.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	maxRetries int
	client     *http.Client
}

// NewClient creates a Claude-backed extraction client from a provider config.
func NewClient(cfg *config.ProviderConfig) *Client {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint
// (for testing).
func NewClientWithEndpoint(cfg *config.ProviderConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ProviderConfig, endpoint string) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		endpoint:   endpoint,
		maxRetries: cfg.MaxRetries,
		client:     &http.Client{Timeout: timeout},
	}
}

// Extract implements port.LLMClient.
func (c *Client) Extract(ctx context.Context, req port.LLMRequest) (*port.LLMResponse, error) {
	if c.apiKey == "" {
		return nil, &provider.AuthError{Provider: providerName}
	}
	return provider.DoWithRetry(ctx, providerName, c.maxRetries, func(ctx context.Context) (*port.LLMResponse, error) {
		return c.extractOnce(ctx, req)
	})
}

func (c *Client) extractOnce(ctx context.Context, req port.LLMRequest) (*port.LLMResponse, error) {
	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": maxTokens,
		"system":     req.System,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": req.Document + "\n\n" + req.Schema,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &provider.ResponseError{Provider: providerName, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, &provider.ResponseError{Provider: providerName, Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &provider.RequestError{Provider: providerName, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.RequestError{Provider: providerName, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, provider.ClassifyStatus(providerName, resp.StatusCode, string(respBody), resp.Header.Get("Retry-After"))
	}

	return parseResponse(respBody, c.model)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func parseResponse(body []byte, model string) (*port.LLMResponse, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &provider.ResponseError{Provider: providerName, Err: fmt.Errorf("unmarshaling response: %w", err)}
	}

	if len(resp.Content) == 0 {
		return nil, &provider.ResponseError{Provider: providerName, Err: fmt.Errorf("empty response from API")}
	}
	if resp.StopReason == "max_tokens" {
		return nil, &provider.ResponseError{Provider: providerName, Err: fmt.Errorf("output truncated (stop_reason: max_tokens)")}
	}

	text := strings.TrimSpace(resp.Content[0].Text)
	if !json.Valid([]byte(text)) {
		return nil, &provider.ResponseError{Provider: providerName, Err: fmt.Errorf("payload is not valid JSON (raw: %s)", provider.Truncate(text, 500))}
	}

	return &port.LLMResponse{
		Payload: json.RawMessage(text),
		Usage: &port.TokenUsage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
		Model: model,
	}, nil
}
