package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestResolveUIMode(t *testing.T) {
	original := isTerminal
	t.Cleanup(func() { isTerminal = original })

	cases := []struct {
		name        string
		mode        string
		verbose     bool
		tty         bool
		wantLive    bool
		wantWarning bool
		wantErr     bool
	}{
		{name: "auto on tty", mode: "auto", tty: true, wantLive: true},
		{name: "auto off tty", mode: "auto", tty: false, wantLive: false},
		{name: "empty defaults to auto", mode: "", tty: true, wantLive: true},
		{name: "plain ignores tty", mode: "plain", tty: true, wantLive: false},
		{name: "live on tty", mode: "live", tty: true, wantLive: true},
		{name: "live off tty warns", mode: "live", tty: false, wantLive: false, wantWarning: true},
		{name: "verbose forces plain", mode: "live", verbose: true, tty: true, wantLive: false},
		{name: "mixed case accepted", mode: " Plain ", tty: true, wantLive: false},
		{name: "invalid mode", mode: "fancy", tty: true, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(io.Writer) bool { return tc.tty }
			decision, err := resolveUIMode(tc.mode, tc.verbose, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("resolveUIMode(%q) expected error", tc.mode)
				}
				if !strings.Contains(err.Error(), "invalid ui mode") {
					t.Fatalf("error = %v, want invalid ui mode", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveUIMode(%q): %v", tc.mode, err)
			}
			if decision.useLive != tc.wantLive {
				t.Fatalf("useLive = %v, want %v", decision.useLive, tc.wantLive)
			}
			if tc.wantWarning && decision.warning == "" {
				t.Fatalf("expected fallback warning")
			}
			if !tc.wantWarning && decision.warning != "" {
				t.Fatalf("unexpected warning %q", decision.warning)
			}
		})
	}
}

func TestDefaultIsTerminalRejectsPlainWriters(t *testing.T) {
	if defaultIsTerminal(nil) {
		t.Fatalf("nil writer reported as terminal")
	}
	if defaultIsTerminal(&bytes.Buffer{}) {
		t.Fatalf("buffer reported as terminal")
	}
}
