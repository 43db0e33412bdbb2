package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LevelWarn)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below level should be suppressed, got: %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("warn/error should be logged, got: %q", out)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelNone, "NONE"},
		{Level(42), "UNKNOWN(42)"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestPackageLevelLogger(t *testing.T) {
	var buf bytes.Buffer
	old := GetDefaultLogger()
	defer SetDefaultLogger(old)

	SetDefaultLogger(NewCustomLogger(&buf, LevelDebug))
	Debug("from package level")

	if !strings.Contains(buf.String(), "from package level") {
		t.Errorf("package-level Debug did not reach custom logger: %q", buf.String())
	}
}

func TestNoOpLogger(t *testing.T) {
	var l NoOpLogger
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}
