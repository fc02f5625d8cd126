package llm

import (
	"context"
	"testing"
)

func TestPurposeRoundTrip(t *testing.T) {
	ctx := WithPurpose(context.Background(), "answer-structured")
	if got := PurposeFrom(ctx); got != "answer-structured" {
		t.Fatalf("got %q, want %q", got, "answer-structured")
	}
}

func TestPurposeFrom_Unset(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("got %q, want %q", got, "unknown")
	}
}

func TestPurposeOverride(t *testing.T) {
	ctx := WithPurpose(context.Background(), "answer")
	ctx = WithPurpose(ctx, "question-synth")
	if got := PurposeFrom(ctx); got != "question-synth" {
		t.Fatalf("got %q, want %q", got, "question-synth")
	}
}
