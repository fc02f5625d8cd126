package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadQuestionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	content := "Câu hỏi một\n\n   \nCâu hỏi hai   \n\nCâu hỏi ba\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	questions, err := ReadQuestionFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Câu hỏi một", "Câu hỏi hai", "Câu hỏi ba"}
	if len(questions) != len(want) {
		t.Fatalf("expected %d questions, got %d: %v", len(want), len(questions), questions)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("question %d: got %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestReadQuestionFile_Missing(t *testing.T) {
	if _, err := ReadQuestionFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestListSource(t *testing.T) {
	src := NewListSource([]string{"a", "b"})
	if src.Len() != 2 {
		t.Fatalf("expected Len 2, got %d", src.Len())
	}

	ctx := context.Background()
	for _, want := range []string{"a", "b"} {
		q, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q != want {
			t.Fatalf("got %q, want %q", q, want)
		}
	}

	if _, err := src.Next(ctx); !errors.Is(err, ErrDone) {
		t.Fatalf("expected ErrDone, got: %v", err)
	}
	// Exhaustion is sticky.
	if _, err := src.Next(ctx); !errors.Is(err, ErrDone) {
		t.Fatalf("expected ErrDone again, got: %v", err)
	}
}
