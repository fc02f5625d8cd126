package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RequestEventData is the input for appending one request event.
type RequestEventData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	LatencyMs    int64
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// RequestEvent is one persisted request event.
type RequestEvent struct {
	ID        int
	Timestamp time.Time
	RequestEventData
}

// QueryOpts bounds and filters read queries.
type QueryOpts struct {
	Limit int

	// Purpose restricts the query to events with this purpose when non-empty.
	Purpose string
}

// UsageStat aggregates token usage for one purpose or model.
type UsageStat struct {
	Key          string // purpose or model, depending on the query
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// RequestAppender is the write side of the request log, consumed by the
// llm logging decorator.
type RequestAppender interface {
	AppendRequest(ctx context.Context, data RequestEventData) error
}

// RequestLog persists and queries model request events.
type RequestLog struct {
	db *sql.DB
}

// AppendRequest inserts one request event.
func (l *RequestLog) AppendRequest(ctx context.Context, data RequestEventData) error {
	_, err := l.db.ExecContext(ctx, `
INSERT INTO llm_request_events
	(run_id, provider, model, purpose, latency_ms, input_tokens, output_tokens,
	 success, error_message, request_body, response_body)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.RunID, data.Provider, data.Model, data.Purpose, data.LatencyMs,
		data.InputTokens, data.OutputTokens, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("append request event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first.
func (l *RequestLog) List(ctx context.Context, opts QueryOpts) ([]RequestEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	q := `
SELECT id, timestamp, run_id, provider, model, purpose, latency_ms,
	input_tokens, output_tokens, success, error_message
FROM llm_request_events`
	var args []any
	if opts.Purpose != "" {
		q += "\nWHERE purpose = ?"
		args = append(args, opts.Purpose)
	}
	q += "\nORDER BY id DESC\nLIMIT ?"
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list request events: %w", err)
	}
	defer rows.Close()

	var events []RequestEvent
	for rows.Next() {
		var e RequestEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.RunID, &e.Provider, &e.Model,
			&e.Purpose, &e.LatencyMs, &e.InputTokens, &e.OutputTokens,
			&e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan request event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Get returns one event by ID with its full request/response bodies,
// or nil if not found.
func (l *RequestLog) Get(ctx context.Context, id int) (*RequestEvent, error) {
	var e RequestEvent
	err := l.db.QueryRowContext(ctx, `
SELECT id, timestamp, run_id, provider, model, purpose, latency_ms,
	input_tokens, output_tokens, success, error_message, request_body, response_body
FROM llm_request_events
WHERE id = ?`, id).Scan(&e.ID, &e.Timestamp, &e.RunID, &e.Provider, &e.Model,
		&e.Purpose, &e.LatencyMs, &e.InputTokens, &e.OutputTokens,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get request event: %w", err)
	}
	return &e, nil
}

// UsageByPurpose aggregates calls, tokens, and latency per purpose.
func (l *RequestLog) UsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return l.usageBy(ctx, "purpose")
}

// UsageByModel aggregates calls, tokens, and latency per model.
func (l *RequestLog) UsageByModel(ctx context.Context) ([]UsageStat, error) {
	return l.usageBy(ctx, "model")
}

func (l *RequestLog) usageBy(ctx context.Context, column string) ([]UsageStat, error) {
	// column is one of two fixed identifiers, never user input.
	q := fmt.Sprintf(`
SELECT %s, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
	COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
FROM llm_request_events
GROUP BY %s
ORDER BY COUNT(*) DESC`, column, column)

	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("usage by %s: %w", column, err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		if err := rows.Scan(&s.Key, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
