package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "coinwatch.log")

	l, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.WithField("coin", "bitcoin").Info("detail fetched")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	if entry["coin"] != "bitcoin" || entry["msg"] != "detail fetched" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", l.GetLevel())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	l, closer, err := New("", "loud")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", l.GetLevel())
	}
}
