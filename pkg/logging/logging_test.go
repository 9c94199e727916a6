package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{" error ", ErrorLevel},
		{"fatal", FatalLevel},
		{"bogus", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if ValidLevel("bogus") || !ValidLevel("Debug") {
		t.Error("ValidLevel mismatch")
	}
}

func TestComponentSharesOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "debug", Output: &buf})

	c := l.Component("wallet")
	if c.GetLevel() != DebugLevel {
		t.Errorf("component level = %v, want debug", c.GetLevel())
	}

	c.Debug("derived key", "path", "m/44'/0'/0'/0/0")
	out := buf.String()
	if !strings.Contains(out, "wallet") || !strings.Contains(out, "derived key") {
		t.Errorf("component output = %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "warn", Output: &buf})

	l.Info("hidden")
	l.With("chain", "BTC").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "BTC") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestSetDefault(t *testing.T) {
	prev := GetDefault()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New(&Config{Level: "info", Output: &buf}))
	Info("hello", "k", "v")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("default logger output = %q", buf.String())
	}

	SetDefault(Nop())
	Error("dropped")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "info", JSON: true, Output: &buf})

	l.Component("config").Info("loaded", "network", "testnet")

	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"network":"testnet"`) {
		t.Errorf("JSON output = %q", out)
	}
}
