package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultOllamaHost is where a locally running Ollama listens.
const DefaultOllamaHost = "http://localhost:11434"

// OllamaProvider implements Provider against Ollama's native chat API.
type OllamaProvider struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.Host.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	host := cfg.Host
	if host == "" {
		host = DefaultOllamaHost
	}
	return &OllamaProvider{
		host:  strings.TrimRight(host, "/"),
		model: cfg.Model,
		client: &http.Client{
			// Local generation on large models can run for minutes.
			Timeout: 10 * time.Minute,
		},
	}, nil
}

// chatRequest is the wire format of POST /api/chat.
type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the non-streaming reply of POST /api/chat.
type chatResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	DoneReason      string      `json:"done_reason"`
	PromptEvalCount int         `json:"prompt_eval_count"`
	EvalCount       int         `json:"eval_count"`
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	wire := chatRequest{
		Model:    p.model,
		Messages: buildOllamaMessages(req),
		Stream:   false,
		Options:  buildOllamaOptions(req.Options),
	}
	// "format": "json" makes Ollama constrain decoding to valid JSON;
	// the schema itself still rides in the prompt and is validated below.
	if req.Schema != nil {
		wire.Format = "json"
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		return nil, mapOllamaStatus(httpResp)
	}

	var reply chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&reply); err != nil {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("decode chat response: %w", err)}
	}

	content := json.RawMessage(strings.TrimSpace(reply.Message.Content))

	if reply.DoneReason == "length" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}

	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  reply.PromptEvalCount,
			OutputTokens: reply.EvalCount,
			TotalTokens:  reply.PromptEvalCount + reply.EvalCount,
		},
		Model:      reply.Model,
		StopReason: mapOllamaStopReason(reply.DoneReason),
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func buildOllamaMessages(req Request) []chatMessage {
	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: m.Content})
	}
	return messages
}

// buildOllamaOptions maps GenOptions onto Ollama's options object.
// Sampling parameters go through as-is, zero included: temperature 0 is
// greedy decoding, not "use the server default". Only the structural
// parameters (context size, seed, token cap) treat 0 as unset.
func buildOllamaOptions(o GenOptions) map[string]any {
	opts := map[string]any{
		"temperature":    o.Temperature,
		"top_p":          o.TopP,
		"repeat_penalty": o.RepeatPenalty,
	}
	if o.NumCtx > 0 {
		opts["num_ctx"] = o.NumCtx
	}
	if o.Seed > 0 {
		opts["seed"] = o.Seed
	}
	if o.MaxTokens > 0 {
		opts["num_predict"] = o.MaxTokens
	}
	return opts
}

func mapOllamaStopReason(reason string) string {
	switch reason {
	case "", "stop":
		return "end"
	case "length":
		return "max_tokens"
	default:
		return "end"
	}
}

func mapOllamaStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err := fmt.Errorf("ollama: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")), Err: err}
	default:
		// 404 (model not pulled), 4xx and 5xx all surface as the server
		// being unable to serve the request.
		return &ErrProviderUnavailable{Err: err}
	}
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
