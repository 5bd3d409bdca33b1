//go:build !linux

package buttons

import "context"

// Start is a no-op outside Linux; there is no evdev to read.
func (e *Evdev) Start(ctx context.Context) error {
	if e.ch == nil {
		e.ch = make(chan Event, 4)
	}
	e.infof("evdev input is only available on linux")
	return nil
}
