package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info("hidden", "a", 1)
	log.Warn("shown", "id", "7")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record written at warn level:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "msg=shown") || !strings.Contains(out, "id=7") {
		t.Fatalf("expected warn record in output:\n%s", out)
	}
}

func TestOpenFile_CreatesDirAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "repolist.log")

	log, closer, err := OpenFile(path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	log.Debug("first", "op", "load_all")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	log, closer, err = OpenFile(path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("OpenFile (reopen): %v", err)
	}
	log.Info("second")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "msg=first") || !strings.Contains(out, "msg=second") {
		t.Fatalf("expected both records in log file:\n%s", out)
	}
}

func TestOpenFile_EmptyPath(t *testing.T) {
	if _, _, err := OpenFile("", slog.LevelInfo); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("discard logger reports enabled")
	}
}
