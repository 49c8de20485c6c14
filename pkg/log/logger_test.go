package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	logger := New("test")

	logger.Info("hidden at default level")
	logger.Notice("visible notice")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Info message emitted at Notice level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible notice") {
		t.Errorf("Expected notice in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[test]") {
		t.Errorf("Expected module name in output, got %q", buf.String())
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("value=%d", 42)
	if !strings.Contains(buf.String(), "value=42") {
		t.Errorf("Expected debug message after SetLevel(Debug), got %q", buf.String())
	}

	SetLevel(Error)
	if Enabled(Warning) {
		t.Error("Warning should be disabled at Error level")
	}
	if !Enabled(Error) {
		t.Error("Error should be enabled at Error level")
	}
}
