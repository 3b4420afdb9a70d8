//go:build darwin

package notify

import (
	"strings"
	"testing"
)

func TestEscapeAppleScript(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello", "Hello"},
		{`Hello "World"`, `Hello \"World\"`},
		{`Path\to\file`, `Path\\to\\file`},
		{`Mix "quote" and \slash`, `Mix \"quote\" and \\slash`},
	}

	for _, tc := range tests {
		result := escapeAppleScript(tc.input)
		if result != tc.expected {
			t.Errorf("escapeAppleScript(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestOsascriptArgs(t *testing.T) {
	args := osascriptArgs(Notice{Title: "aura", Body: `say "hi"`, Sound: true})
	if len(args) != 2 || args[0] != "-e" {
		t.Fatalf("unexpected args %v", args)
	}
	if !strings.Contains(args[1], `display notification "say \"hi\"" with title "aura"`) {
		t.Errorf("unexpected script %q", args[1])
	}
	if !strings.HasSuffix(args[1], `sound name "default"`) {
		t.Errorf("expected sound clause in %q", args[1])
	}
}
