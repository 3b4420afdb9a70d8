//go:build darwin

package notify

import (
	"fmt"
	"strings"
)

// newPlatformNotifier creates the macOS notifier.
func newPlatformNotifier() Notifier {
	return &commandNotifier{tool: "osascript", args: osascriptArgs, run: runCommand}
}

func osascriptArgs(n Notice) []string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		escapeAppleScript(n.Body), escapeAppleScript(n.Title))
	if n.Sound {
		script += ` sound name "default"`
	}
	return []string{"-e", script}
}

// escapeAppleScript escapes special characters for AppleScript strings.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
