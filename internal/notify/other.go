//go:build !darwin && !linux

package notify

// newPlatformNotifier has nothing to offer on other platforms.
func newPlatformNotifier() Notifier {
	return noopNotifier{}
}
