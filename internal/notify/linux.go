//go:build linux

package notify

// newPlatformNotifier creates the Linux notifier.
func newPlatformNotifier() Notifier {
	return &commandNotifier{tool: "notify-send", args: notifySendArgs, run: runCommand}
}

// notifySendArgs builds the notify-send command line. Sound support depends
// on the notification daemon; a normal urgency hint is the closest request.
func notifySendArgs(n Notice) []string {
	args := []string{"--app-name=" + AppName}
	if n.Sound {
		args = append(args, "--urgency=normal")
	}
	return append(args, n.Title, n.Body)
}
