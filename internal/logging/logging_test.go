package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitDirWritesToFile(t *testing.T) {
	dir := t.TempDir()
	prevDefault := slog.Default()
	prevOut := log.Writer()
	t.Cleanup(func() {
		slog.SetDefault(prevDefault)
		log.SetOutput(prevOut)
	})

	closer, err := InitDir(dir, slog.LevelInfo)
	if err != nil {
		t.Fatalf("InitDir failed: %v", err)
	}

	slog.Debug("hidden")
	slog.Info("board loaded", "columns", 3)
	log.Printf("daemon line")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "leadboard.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "board loaded") || !strings.Contains(out, "columns=3") {
		t.Errorf("missing slog line in %q", out)
	}
	if !strings.Contains(out, "daemon line") {
		t.Errorf("missing std log line in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
}
