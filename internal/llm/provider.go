package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for talking to an inference server.
// Consumers call Generate with a Request and receive the model's reply.
type Provider interface {
	// Generate sends a prompt to the model and returns its response.
	// The request's Schema field, when set, instructs the provider to
	// return JSON conforming to that schema; the response Content is then
	// the validated JSON object. When Schema is nil, Content is the raw
	// text of the reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation. For single-turn generation (the only
	// case in lawgen) this contains one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, Content is passed through as raw text.
	Schema *Schema

	// Options are the generation parameters, forwarded to the server
	// without client-side range validation.
	Options GenOptions
}

// GenOptions carries the sampling parameters the inference server accepts.
// The sampling values (Temperature, TopP, RepeatPenalty) are forwarded
// exactly as given, zero included; NumCtx, Seed, and MaxTokens treat 0 as
// "unset" and fall back to the server's defaults.
type GenOptions struct {
	// NumCtx is the context window size in tokens. 0 means server default.
	NumCtx int

	// Temperature controls randomness. Range: 0.0 - 1.0; 0 is greedy.
	Temperature float64

	// TopP is the nucleus sampling threshold.
	TopP float64

	// RepeatPenalty discourages token repetition. Native Ollama only;
	// OpenAI-compatible endpoints have no equivalent and drop it.
	RepeatPenalty float64

	// Seed makes sampling reproducible. 0 means random.
	Seed int

	// MaxTokens caps the response length. 0 means server default.
	MaxTokens int
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "law-answer".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. Otherwise it is the raw
	// reply text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as a plain string.
func (r *Response) Text() string {
	return string(r.Content)
}
