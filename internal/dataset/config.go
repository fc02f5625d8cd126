package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/datphan/lawgen/internal/llm"
)

// Domain selects the legal scope the model is restricted to.
type Domain string

const (
	// DomainTraffic limits answers to Vietnamese traffic law.
	DomainTraffic Domain = "traffic"
	// DomainGeneral allows any area of Vietnamese law.
	DomainGeneral Domain = "general"
)

// ParseDomain validates a domain flag value.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainTraffic, DomainGeneral:
		return Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain %q (want traffic or general)", s)
}

// Style is the textual rendering applied to a structured answer.
type Style string

const (
	StylePlain    Style = "plain"
	StyleMarkdown Style = "markdown"
	StyleStrict   Style = "strict"
)

// ParseStyle validates a style flag value.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StylePlain, StyleMarkdown, StyleStrict:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown style %q (want plain, markdown, or strict)", s)
}

// BadJSONPolicy decides what happens to a row whose structured reply never
// parsed: keep the raw text, or drop the row.
type BadJSONPolicy string

const (
	PolicyFallback BadJSONPolicy = "fallback"
	PolicySkip     BadJSONPolicy = "skip"
)

// ParseBadJSONPolicy validates an --on-bad-json flag value.
func ParseBadJSONPolicy(s string) (BadJSONPolicy, error) {
	switch BadJSONPolicy(s) {
	case PolicyFallback, PolicySkip:
		return BadJSONPolicy(s), nil
	}
	return "", fmt.Errorf("unknown bad-json policy %q (want fallback or skip)", s)
}

// Config controls one generation run.
type Config struct {
	Domain     Domain
	Style      Style
	Structured bool

	// SystemPrompt overrides the domain's default system prompt when set.
	SystemPrompt string

	// OnBadJSON is the policy applied when a structured reply cannot be
	// parsed after retries.
	OnBadJSON BadJSONPolicy

	// Workers bounds concurrent in-flight requests. 1 means sequential.
	Workers int

	// Sleep is the pause between question dispatches. Mostly useful in
	// infinite mode to throttle the server.
	Sleep time.Duration

	// DrainGrace bounds how long in-flight requests may keep running
	// after an interrupt before they are abandoned.
	DrainGrace time.Duration

	// Options are the generation parameters forwarded to the server.
	Options llm.GenOptions

	// Out receives progress lines; ErrOut receives per-question failures.
	// Nil defaults to stdout/stderr.
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultConfig returns a Config with the recommended defaults.
func DefaultConfig() Config {
	return Config{
		Domain:     DomainTraffic,
		Style:      StylePlain,
		OnBadJSON:  PolicyFallback,
		Workers:    1,
		DrainGrace: time.Minute,
		Options: llm.GenOptions{
			NumCtx:        4096,
			Temperature:   0.2,
			TopP:          0.9,
			RepeatPenalty: 1.1,
		},
	}
}
