package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if buf.Len() == 0 {
			t.Error("expected log output to be written")
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}

		logger.Info("hello")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("log file should exist: %v", err)
		}
	})

	t.Run("GenerateState", func(t *testing.T) {
		a := GenerateState()
		b := GenerateState()

		if a == "" || b == "" {
			t.Error("expected non-empty state tokens")
		}
		if a == b {
			t.Error("expected state tokens to be unique")
		}
	})
}
