package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "key=value") {
			t.Errorf("unexpected log output %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters entries", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		WithLogger(NewLogger(&buf), "op", "add").Info("done")

		if !strings.Contains(buf.String(), "op=add") {
			t.Errorf("expected op=add in %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "qqm.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("to file")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "to file") {
			t.Errorf("expected log line in file, got %q", data)
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid uuid, got %q: %v", a, err)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"a": 1}

	compact, err := MarshalJSON(data, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("unexpected compact output %q, %v", compact, err)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil || string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected pretty output %q, %v", pretty, err)
	}
}
