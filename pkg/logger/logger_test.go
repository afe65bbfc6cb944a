package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{" INFO ", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q): expected %v, got %v", tc.in, got, tc.want)
		}
	}
}

func TestInit_OnlyFirstCallConfigures(t *testing.T) {
	var buf bytes.Buffer

	first := Init(Options{Level: "debug", Output: &buf})
	second := Init(Options{Level: "error", Output: &bytes.Buffer{}})

	first.Info().Msg("first message")
	second.Info().Msg("second message")

	out := buf.String()
	if !strings.Contains(out, "first message") {
		t.Fatalf("expected first message in output, got %q", out)
	}
	// The second Init must be a no-op: its logger still writes to the
	// original output at the original level.
	if !strings.Contains(out, "second message") {
		t.Fatalf("expected second Init to reuse the first configuration, got %q", out)
	}
}
