package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
		"loud":  log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("GBDIS_LOG_LEVEL", "warn")
	t.Setenv("GBDIS_LOG_PREFIX", "")
	t.Setenv("GBDIS_LOG_FORMAT", "logfmt")
	t.Setenv("GBDIS_LOG_TO_FILE", "")

	s := SettingsFromEnv()
	if s.Level != log.WarnLevel {
		t.Errorf("Level = %v, want warn", s.Level)
	}
	if s.Prefix != "gbdis " {
		t.Errorf("Prefix = %q, want default", s.Prefix)
	}
	if s.Format != log.LogfmtFormatter {
		t.Errorf("Format = %v, want logfmt", s.Format)
	}
	if s.File != "" {
		t.Errorf("File = %q, want stderr", s.File)
	}

	t.Setenv("GBDIS_LOG_TO_FILE", "1")
	if s := SettingsFromEnv(); !strings.HasPrefix(s.File, "gbdis-") || !strings.HasSuffix(s.File, "-debug.log") {
		t.Errorf("File = %q, want timestamped log file", s.File)
	}
}

func TestNewFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, Settings{Level: log.WarnLevel, Prefix: "test", Format: log.TextFormatter})
	defer lg.Close()

	lg.Info("hidden")
	lg.Warn("symbol outside image", "addr", "8000")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "test") || !strings.Contains(out, "symbol outside image") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, Settings{Level: log.InfoLevel, Format: log.JSONFormatter})

	lg.Info("run finished", "start", "000150")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if rec["msg"] != "run finished" || rec["start"] != "000150" {
		t.Errorf("unexpected record: %v", rec)
	}
}
