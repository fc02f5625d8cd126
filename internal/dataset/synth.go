package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/datphan/lawgen/internal/llm"
)

// synthWindow is how many recently generated questions ride in the
// meta-prompt to steer the model away from repeats.
const synthWindow = 8

// SynthSource asks the model itself to invent situational questions.
// It backs both --auto N (finite) and --infinite (unbounded) modes.
type SynthSource struct {
	provider  llm.Provider
	domain    Domain
	opts      llm.GenOptions
	remaining int
	infinite  bool
	recent    []string
}

// NewSynthSource creates a SynthSource producing count questions;
// count <= 0 means unbounded.
func NewSynthSource(provider llm.Provider, domain Domain, opts llm.GenOptions, count int) *SynthSource {
	return &SynthSource{
		provider:  provider,
		domain:    domain,
		opts:      opts,
		remaining: count,
		infinite:  count <= 0,
	}
}

func (s *SynthSource) Next(ctx context.Context) (string, error) {
	if !s.infinite && s.remaining <= 0 {
		return "", ErrDone
	}

	ctx = llm.WithPurpose(ctx, "question-synth")
	req := llm.Request{
		System: synthSystemPrompt(s.domain),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSynthUserMessage(s.recent)},
		},
		Options: s.opts,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("synthesize question: %w", err)
	}

	q := strings.TrimSpace(resp.Text())
	if q == "" {
		return "", fmt.Errorf("synthesize question: model returned empty text")
	}

	s.recent = append(s.recent, q)
	if len(s.recent) > synthWindow {
		s.recent = s.recent[len(s.recent)-synthWindow:]
	}
	if !s.infinite {
		s.remaining--
	}
	return q, nil
}

// Len returns the number of questions left to synthesize, or 0 when
// unbounded.
func (s *SynthSource) Len() int {
	if s.infinite {
		return 0
	}
	return s.remaining
}

func synthSystemPrompt(domain Domain) string {
	scaffold := "trong phạm vi pháp luật Việt Nam"
	if domain == DomainTraffic {
		scaffold = "trong PHẠM VI LUẬT GIAO THÔNG VIỆT NAM (đường bộ là chính)"
	}
	return "Bạn là chuyên gia xây dựng dữ liệu hỏi đáp pháp lý. " +
		fmt.Sprintf("Hãy tạo duy nhất 1 câu hỏi tình huống phức tạp %s. ", scaffold) +
		"Câu hỏi phải chứa ÍT NHẤT 2 hành vi vi phạm giao thông trong cùng tình huống, " +
		"mô tả rõ bối cảnh (thời gian/địa điểm/loại đường/phương tiện). " +
		"Chỉ TRẢ VỀ CÂU HỎI, không thêm chú thích hay đánh số."
}

// buildSynthUserMessage lists recent questions as a numbered block so the
// model avoids repeating them.
func buildSynthUserMessage(recent []string) string {
	var b strings.Builder
	b.WriteString("Tạo câu hỏi.")

	if len(recent) > 0 {
		b.WriteString("\n\nCác câu hỏi đã tạo trước đó (tránh lặp lại):\n")
		for i, q := range recent {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
