package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/datphan/lawgen/internal/llm"
)

// Stats summarizes a finished run.
type Stats struct {
	Written int
	Skipped int
}

// Runner drives one generation run: it pulls questions from a Source,
// fans them out to a bounded pool of workers that call the model, and
// funnels finished rows into the Writer through a single collector.
type Runner struct {
	provider llm.Provider
	source   Source
	writer   *Writer
	cfg      Config
}

// NewRunner assembles a Runner.
func NewRunner(provider llm.Provider, source Source, writer *Writer, cfg Config) *Runner {
	return &Runner{provider: provider, source: source, writer: writer, cfg: cfg}
}

// outcome is what one question turned into.
type outcome struct {
	row      Row
	question string
	err      error
}

// Run processes questions until the source is exhausted or ctx is
// cancelled. Cancelling ctx stops dispatch; requests already in flight get
// DrainGrace to finish before being abandoned, and every completed row is
// written before Run returns. A per-question failure is counted and
// reported, never fatal.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	out := r.cfg.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := r.cfg.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	// Dispatch stops on ctx or on an unrecoverable write error; requests
	// in flight keep a detached context so they can drain past the
	// interrupt, bounded by DrainGrace.
	dispatchCtx, dispatchCancel := context.WithCancel(ctx)
	defer dispatchCancel()
	reqCtx, reqCancel := context.WithCancel(context.WithoutCancel(ctx))
	defer reqCancel()

	runDone := make(chan struct{})
	defer close(runDone)
	go func() {
		select {
		case <-ctx.Done():
			grace := r.cfg.DrainGrace
			if grace <= 0 {
				grace = time.Minute
			}
			select {
			case <-time.After(grace):
				reqCancel()
			case <-runDone:
			}
		case <-runDone:
		}
	}()

	jobs := make(chan string)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := range jobs {
				row, err := r.answer(reqCtx, q)
				results <- outcome{row: row, question: q, err: err}
			}
		}()
	}

	go func() {
		r.dispatch(dispatchCtx, jobs, results)
		close(jobs)
		wg.Wait()
		close(results)
	}()

	total := 0
	if sized, ok := r.source.(interface{ Len() int }); ok {
		total = sized.Len()
	}

	var stats Stats
	var writeErr error
	for res := range results {
		if res.err != nil {
			stats.Skipped++
			fmt.Fprintf(errOut, "skip %s: %v\n", summarize(res.question), res.err)
			continue
		}
		if writeErr != nil {
			// Already failing; drain remaining outcomes without writing.
			continue
		}
		if err := r.writer.Append(res.row); err != nil {
			writeErr = err
			dispatchCancel()
			reqCancel()
			continue
		}
		stats.Written++
		if total > 0 {
			fmt.Fprintf(out, "%d/%d ok\n", stats.Written, total)
		} else {
			fmt.Fprintf(out, "%d ok\n", stats.Written)
		}
	}

	return stats, writeErr
}

// dispatch pulls questions and hands them to the workers until the source
// runs dry or ctx is cancelled. A failed synthesis attempt is reported as
// a skipped outcome and dispatch continues.
func (r *Runner) dispatch(ctx context.Context, jobs chan<- string, results chan<- outcome) {
	for {
		if ctx.Err() != nil {
			return
		}

		q, err := r.source.Next(ctx)
		if errors.Is(err, ErrDone) {
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			results <- outcome{question: q, err: err}
		} else {
			select {
			case jobs <- q:
			case <-ctx.Done():
				return
			}
		}

		if r.cfg.Sleep > 0 {
			select {
			case <-time.After(r.cfg.Sleep):
			case <-ctx.Done():
				return
			}
		}
	}
}

// answer runs build → generate → format for one question.
func (r *Runner) answer(ctx context.Context, question string) (Row, error) {
	system, user := BuildPrompts(question, r.cfg)

	req := llm.Request{
		System:   system,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: user}},
		Options:  r.cfg.Options,
	}

	purpose := "answer"
	if r.cfg.Structured {
		req.Schema = AnswerSchema
		purpose = "answer-structured"
	}
	ctx = llm.WithPurpose(ctx, purpose)

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		// Retries are exhausted by the provider middleware. If the last
		// failure was a schema violation we may still keep the raw text.
		var inv *llm.ErrInvalidResponse
		if r.cfg.Structured && errors.As(err, &inv) &&
			r.cfg.OnBadJSON == PolicyFallback && len(inv.Content) > 0 {
			return Row{Question: question, Answer: string(inv.Content)}, nil
		}
		return Row{}, err
	}

	if !r.cfg.Structured {
		return Row{Question: question, Answer: strings.TrimSpace(resp.Text())}, nil
	}

	ans, err := ParseAnswer(resp.Content)
	if err != nil {
		if r.cfg.OnBadJSON == PolicyFallback {
			return Row{Question: question, Answer: resp.Text()}, nil
		}
		return Row{}, err
	}
	if ans.Question == "" {
		ans.Question = question
	}
	return Row{Question: question, Answer: Render(ans, r.cfg.Style)}, nil
}

// summarize shortens a question for a log line.
func summarize(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if q == "" {
		return "(question synthesis)"
	}
	if runes := []rune(q); len(runes) > 60 {
		return string(runes[:60]) + "..."
	}
	return q
}
