package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Row is one persisted (question, answer) pair.
type Row struct {
	Question string
	Answer   string
}

// Writer appends dataset rows to a CSV file. Every row is flushed and
// synced immediately so a long or interrupted run keeps everything written
// so far. Not safe for concurrent use: the runner serializes all writes
// through a single collector goroutine that owns the Writer.
type Writer struct {
	f    *os.File
	csv  *csv.Writer
	rows int
}

// OpenWriter opens (or creates) the CSV file at path in append mode and
// writes the question,answer header when the file is empty. Appending to a
// non-empty file never repeats the header, so infinite runs can resume
// into the same file.
func OpenWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}

	w := &Writer{f: f, csv: csv.NewWriter(f)}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat output file: %w", err)
	}
	if info.Size() == 0 {
		if err := w.writeRecord([]string{"question", "answer"}); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	return w, nil
}

// Append writes one row and forces it to disk.
func (w *Writer) Append(row Row) error {
	if err := w.writeRecord([]string{row.Question, row.Answer}); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.rows++
	return nil
}

func (w *Writer) writeRecord(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return err
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.f.Sync()
}

// Rows returns the number of rows appended by this Writer (header excluded).
func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
