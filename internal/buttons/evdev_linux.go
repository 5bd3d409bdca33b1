//go:build linux

package buttons

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Start watches every device matching Glob. It is best-effort: with no input
// devices it logs and returns nil.
func (e *Evdev) Start(ctx context.Context) error {
	if e.ch == nil {
		e.ch = make(chan Event, 4)
	}
	pattern := e.Glob
	if pattern == "" {
		pattern = "/dev/input/event*"
	}

	paths, err := filepath.Glob(pattern)
	if err != nil || len(paths) == 0 {
		e.infof("no evdev devices found under %s", pattern)
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	for _, path := range paths {
		go e.watch(watchCtx, path, tvSize)
	}
	return nil
}

func (e *Evdev) watch(ctx context.Context, path string, tvSize int) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		e.handle(decodeKeyEvents(buf[:n], tvSize))
	}
}
