package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDone signals that a Source has no more questions.
var ErrDone = errors.New("question source exhausted")

// Source supplies the sequence of questions for a run.
// Next is called from a single dispatcher goroutine; implementations do
// not need to be safe for concurrent use.
type Source interface {
	// Next returns the next question, ErrDone when exhausted, or any
	// other error for a failed synthesis attempt.
	Next(ctx context.Context) (string, error)
}

// ListSource serves a fixed slice of questions.
type ListSource struct {
	questions []string
	i         int
}

// NewListSource creates a Source over the given questions.
func NewListSource(questions []string) *ListSource {
	return &ListSource{questions: questions}
}

func (s *ListSource) Next(_ context.Context) (string, error) {
	if s.i >= len(s.questions) {
		return "", ErrDone
	}
	q := s.questions[s.i]
	s.i++
	return q, nil
}

// Len returns the total number of questions.
func (s *ListSource) Len() int {
	return len(s.questions)
}

// ReadQuestionFile reads one question per line from a UTF-8 text file,
// dropping empty lines and surrounding whitespace.
func ReadQuestionFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}

	var questions []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			questions = append(questions, line)
		}
	}
	return questions, nil
}
