package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filstack/VED-jurchecker/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New("TELEMETRY_TEST", "error")
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %q: %v", path, err)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func TestAppend_WritesJSONLine(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	w.Append(Record{
		Alias:      "иван петров",
		EntityID:   "1",
		EntityName: "Иван Петров",
		EntityType: "foreign_agent",
		Context:    "контекст совпадения",
	})

	today := time.Now().UTC().Format("2006-01-02")
	path := filepath.Join(dir, "matches-"+today+".jsonl")
	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var rec Record
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.EntityID != "1" || rec.Alias != "иван петров" {
		t.Errorf("got %+v", rec)
	}
	if rec.Timestamp == "" {
		t.Error("expected timestamp to be stamped")
	}
}

func TestAppend_TruncatesLongContext(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	longContext := strings.Repeat("а", 1000)
	w.Append(Record{EntityID: "1", Context: longContext})

	today := time.Now().UTC().Format("2006-01-02")
	lines := readLines(t, filepath.Join(dir, "matches-"+today+".jsonl"))
	var rec Record
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len([]rune(rec.Context)) != maxContextChars {
		t.Errorf("got context length %d, want %d", len([]rune(rec.Context)), maxContextChars)
	}
}

func TestAppend_MultipleAppendsAccumulate(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	w.Append(Record{EntityID: "1"})
	w.Append(Record{EntityID: "2"})

	today := time.Now().UTC().Format("2006-01-02")
	lines := readLines(t, filepath.Join(dir, "matches-"+today+".jsonl"))
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestAppend_NilWriterIsNoOp(t *testing.T) {
	var w *Writer
	w.Append(Record{EntityID: "1"}) // must not panic
}

func TestCleanupOldLogs_RemovesOldFile(t *testing.T) {
	dir := t.TempDir()
	oldName := "matches-2020-01-01.jsonl"
	if err := os.WriteFile(filepath.Join(dir, oldName), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write old log: %v", err)
	}

	CleanupOldLogs(dir, 30, testLogger())

	if _, err := os.Stat(filepath.Join(dir, oldName)); !os.IsNotExist(err) {
		t.Error("expected old log file to be removed")
	}
}

func TestCleanupOldLogs_KeepsRecentFile(t *testing.T) {
	dir := t.TempDir()
	recentName := "matches-" + time.Now().UTC().Format("2006-01-02") + ".jsonl"
	path := filepath.Join(dir, recentName)
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write recent log: %v", err)
	}

	CleanupOldLogs(dir, 30, testLogger())

	if _, err := os.Stat(path); err != nil {
		t.Error("expected recent log file to be kept")
	}
}

func TestCleanupOldLogs_SkipsMalformedFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matches-notadate.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write malformed log: %v", err)
	}

	CleanupOldLogs(dir, 30, testLogger())

	if _, err := os.Stat(path); err != nil {
		t.Error("expected malformed-named file to be left alone, not deleted")
	}
}

func TestCleanupOldLogs_MissingDirIsNoOp(t *testing.T) {
	CleanupOldLogs(filepath.Join(t.TempDir(), "does-not-exist"), 30, testLogger())
}
