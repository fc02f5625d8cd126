package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return records
}

func TestWriter_RoundTripsSpecialCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := OpenWriter(path)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}

	row := Row{
		Question: `Vượt đèn đỏ, rồi "quay đầu" ở đâu?`,
		Answer:   "1) Hành vi vi phạm:\n* Vượt đèn đỏ, không chấp hành\n\n4) Tổng hợp:",
	}
	if err := w.Append(row); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	records := readAll(t, path)
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "question" || records[0][1] != "answer" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != row.Question || records[1][1] != row.Answer {
		t.Fatalf("row did not round-trip: %v", records[1])
	}
}

func TestWriter_HeaderOnlyWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := OpenWriter(path)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	if err := w.Append(Row{Question: "q1", Answer: "a1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening an existing file must not repeat the header.
	w, err = OpenWriter(path)
	if err != nil {
		t.Fatalf("reopen writer: %v", err)
	}
	if err := w.Append(Row{Question: "q2", Answer: "a2"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	records := readAll(t, path)
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[1][0] != "q1" || records[2][0] != "q2" {
		t.Fatalf("unexpected rows: %v", records[1:])
	}
}

func TestWriter_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	w, err := OpenWriter(path)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file not created: %v", err)
	}
}

func TestWriter_CountsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := OpenWriter(path)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	defer w.Close()

	if w.Rows() != 0 {
		t.Fatalf("expected 0 rows, got %d", w.Rows())
	}
	for i := 0; i < 3; i++ {
		if err := w.Append(Row{Question: "q", Answer: "a"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if w.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", w.Rows())
	}
}
