package logs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/generals/internal/config"
)

func TestInitWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generals.log")
	err := Init("test", config.LogConfig{Level: "debug", File: path, MaxSize: 1})
	if err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(func() { _ = SetLevel("info") })

	Debug("board generated", zap.Int("size", 8))
	if err := Sync(); err != nil {
		t.Fatalf("Sync() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line %q is not JSON: %v", line, err)
	}
	if entry["msg"] != "board generated" || entry["level"] != "DEBUG" || entry["logger"] != "test" {
		t.Errorf("entry = %v", entry)
	}
	if entry["size"] != float64(8) {
		t.Errorf("size field = %v, want 8", entry["size"])
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel(WARN) = %v", err)
	}
	if Level() != zapcore.WarnLevel {
		t.Errorf("Level() = %v, want warn", Level())
	}
	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel(loud) should fail")
	}
	if err := SetLevel(""); err != nil || Level() != zapcore.InfoLevel {
		t.Errorf("SetLevel(\"\") = %v, level %v", err, Level())
	}
}
