package dataset

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAnswer_Valid(t *testing.T) {
	raw := json.RawMessage(`{
		"question": "q",
		"violations": [{"name": "Vượt đèn đỏ", "details": "d"}],
		"citations": [{"law": "NĐ 100/2019", "article": "Điều 6", "clause": "Khoản 4"}],
		"penalties": [{"violation": "Vượt đèn đỏ", "fine_min_vnd": 800000, "fine_max_vnd": 1000000, "license_suspension_months": 2}],
		"summary": "s"
	}`)

	a, err := ParseAnswer(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Question != "q" || a.Summary != "s" {
		t.Fatalf("unexpected answer: %+v", a)
	}
	if len(a.Violations) != 1 || a.Violations[0].Name != "Vượt đèn đỏ" {
		t.Fatalf("unexpected violations: %+v", a.Violations)
	}
	if a.Penalties[0].FineMaxVND != 1000000 || a.Penalties[0].SuspensionMonths != 2 {
		t.Fatalf("unexpected penalty: %+v", a.Penalties[0])
	}
}

func TestParseAnswer_DecimalAmounts(t *testing.T) {
	// Models regularly emit "4.5" for suspension months and decimal fines.
	raw := json.RawMessage(`{"penalties": [{"violation": "v", "fine_min_vnd": 800000.0, "license_suspension_months": 4.5}], "summary": "s"}`)

	a, err := ParseAnswer(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Penalties[0].SuspensionMonths != 4.5 {
		t.Fatalf("unexpected suspension: %v", a.Penalties[0].SuspensionMonths)
	}
}

func TestParseAnswer_NotJSON(t *testing.T) {
	_, err := ParseAnswer(json.RawMessage("Xin lỗi, tôi không thể trả lời."))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got: %v", err)
	}
	if fe.Raw != "Xin lỗi, tôi không thể trả lời." {
		t.Fatalf("expected raw text preserved, got: %q", fe.Raw)
	}
}

func TestParseAnswer_WrongShape(t *testing.T) {
	_, err := ParseAnswer(json.RawMessage(`{"violations": "not an array"}`))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got: %v", err)
	}
}

func TestFormatError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	fe := &FormatError{Raw: "x", Err: inner}
	if !errors.Is(fe, inner) {
		t.Fatal("FormatError should unwrap to its cause")
	}
}
