// Package notify sends desktop notifications for dashboard events.
// It uses native notification mechanisms on macOS (osascript) and Linux (notify-send).
package notify

import (
	"fmt"
	"log/slog"
	"os/exec"

	"aura/internal/logging"
	"aura/internal/tracker"
)

// AppName is the application name shown by the notification daemon.
const AppName = "aura"

// Notice is one desktop notification.
type Notice struct {
	Title string
	Body  string
	Sound bool
}

// Notifier delivers notices to the desktop.
type Notifier interface {
	// Notify shows n.
	Notify(n Notice) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

// commandNotifier shells out to a platform tool.
type commandNotifier struct {
	tool string
	args func(Notice) []string
	run  func(name string, args ...string) error
}

func (c *commandNotifier) Notify(n Notice) error {
	if err := c.run(c.tool, c.args(n)...); err != nil {
		return fmt.Errorf("%s failed: %w", c.tool, err)
	}
	return nil
}

func (c *commandNotifier) IsSupported() bool {
	_, err := exec.LookPath(c.tool)
	return err == nil
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notice) error { return nil }

func (noopNotifier) IsSupported() bool { return false }

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// Disabled returns a notifier that drops every notice.
func Disabled() Notifier {
	return noopNotifier{}
}

// Messages shown for dashboard events.
const (
	NewDayMessage      = "New day started!"
	ArchivedMessage    = "Yesterday's data was saved to your history."
	SaveFailedTemplate = "Your changes could not be saved: %v"
)

// NoticeFor maps a dashboard event to a notice. Only rollovers and
// persistence failures are worth interrupting the user for.
func NoticeFor(ev tracker.Event, sound bool) (Notice, bool) {
	switch ev.Kind {
	case tracker.EventRolledOver:
		body := NewDayMessage
		if ev.Archived {
			body += " " + ArchivedMessage
		}
		return Notice{Title: AppName, Body: body, Sound: sound}, true
	case tracker.EventPersistenceFailed:
		return Notice{Title: AppName, Body: fmt.Sprintf(SaveFailedTemplate, ev.Err), Sound: sound}, true
	}
	return Notice{}, false
}

// EventHandler returns a dashboard subscriber that forwards events to n.
// Delivery failures are logged and otherwise ignored.
func EventHandler(n Notifier, sound bool, logger *slog.Logger) func(tracker.Event) {
	if logger == nil {
		logger = logging.Discard()
	}
	return func(ev tracker.Event) {
		notice, ok := NoticeFor(ev, sound)
		if !ok {
			return
		}
		if err := n.Notify(notice); err != nil {
			logger.Warn("notification failed", "event", ev.Kind.String(), "error", err)
		}
	}
}
