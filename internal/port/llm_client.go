package port

import (
	"context"
	"encoding/json"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// LLMRequest carries the provider-agnostic extraction request.
type LLMRequest struct {
	System   string
	Document string
	Schema   string
}

// TokenUsage reports provider token consumption, when available.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// LLMResponse is the provider-normalized extraction response: the raw
// structured payload plus optional usage metadata.
type LLMResponse struct {
	Payload json.RawMessage
	Usage   *TokenUsage
	Model   string
}

// LLMClient abstracts a single AI extraction backend.
type LLMClient interface {
	Extract(ctx context.Context, req LLMRequest) (*LLMResponse, error)
}

// ClientFactory yields the client for a selected provider. A missing
// credential surfaces as a provider auth error, never as a silent fallback.
type ClientFactory interface {
	Client(provider domain.ProviderType) (LLMClient, error)
}
