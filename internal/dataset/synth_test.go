package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/datphan/lawgen/internal/llm"
)

func TestSynthSource_CountExhaustion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Câu hỏi thứ nhất?")},
		llm.MockResponse{Content: json.RawMessage("Câu hỏi thứ hai?")},
	)
	src := NewSynthSource(mock, DomainTraffic, llm.GenOptions{}, 2)

	ctx := context.Background()
	q1, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q1 != "Câu hỏi thứ nhất?" {
		t.Fatalf("unexpected question: %q", q1)
	}
	if src.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", src.Len())
	}

	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := src.Next(ctx); !errors.Is(err, ErrDone) {
		t.Fatalf("expected ErrDone, got: %v", err)
	}
}

func TestSynthSource_RecentQuestionsInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Câu hỏi A?")},
		llm.MockResponse{Content: json.RawMessage("Câu hỏi B?")},
	)
	src := NewSynthSource(mock, DomainTraffic, llm.GenOptions{}, 2)

	ctx := context.Background()
	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := mock.Calls[0].Messages[0].Content
	if strings.Contains(first, "tránh lặp lại") {
		t.Fatalf("first request should not list prior questions: %q", first)
	}

	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mock.Calls[1].Messages[0].Content
	if !strings.Contains(second, "Các câu hỏi đã tạo trước đó (tránh lặp lại):") {
		t.Fatalf("second request missing dedup preamble: %q", second)
	}
	if !strings.Contains(second, "1. Câu hỏi A?") {
		t.Fatalf("second request missing numbered prior question: %q", second)
	}
}

func TestSynthSource_WindowBounded(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 1; i <= 10; i++ {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(fmt.Sprintf("Câu hỏi %d?", i))})
	}
	src := NewSynthSource(mock, DomainTraffic, llm.GenOptions{}, 10)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := src.Next(ctx); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}

	// The tenth request lists only the eight most recent questions.
	last := mock.Calls[9].Messages[0].Content
	if strings.Contains(last, "Câu hỏi 1?") {
		t.Fatalf("oldest question should have aged out of the window: %q", last)
	}
	if !strings.Contains(last, "1. Câu hỏi 2?") || !strings.Contains(last, "8. Câu hỏi 9?") {
		t.Fatalf("window should hold questions 2-9: %q", last)
	}
}

func TestSynthSource_Infinite(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Câu hỏi lặp?")},
	)
	src := NewSynthSource(mock, DomainTraffic, llm.GenOptions{}, 0)

	if src.Len() != 0 {
		t.Fatalf("unbounded source should report Len 0, got %d", src.Len())
	}

	// Far past any finite count: the source never reports ErrDone.
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		if _, err := src.Next(ctx); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}
	if src.Len() != 0 {
		t.Fatalf("unbounded source should still report Len 0, got %d", src.Len())
	}
}

func TestSynthSource_EmptyReplyIsError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("   \n")},
	)
	src := NewSynthSource(mock, DomainTraffic, llm.GenOptions{}, 1)

	if _, err := src.Next(context.Background()); err == nil {
		t.Fatal("expected error for empty synthesized question")
	}
}

func TestSynthSource_ProviderErrorNotDone(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	src := NewSynthSource(mock, DomainTraffic, llm.GenOptions{}, 1)

	_, err := src.Next(context.Background())
	if err == nil || errors.Is(err, ErrDone) {
		t.Fatalf("expected a non-terminal error, got: %v", err)
	}
}
