package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestColoredHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewColoredHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	l.Debug("hidden")
	l.With("request_id", "abc").Info("pdf rendered", "template", "template1", "took", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered")
	}
	for _, want := range []string{"[abc]", "pdf rendered", `"template1"`, "took", "INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("want one line, got %q", out)
	}
}

func TestSetupProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	SetupWriter(&buf, "production").Info("hello", "k", "v")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("output = %q", buf.String())
	}
}
