//go:build !darwin && !linux

package notify

func system() Notifier {
	return Nop{}
}
