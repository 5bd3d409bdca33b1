package buttons

import (
	"context"
	"encoding/binary"
	"sync"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Evdev turns key presses on Linux input devices into button events.
// Keys maps evdev key codes to events; nil means the default map, where F4
// exits and F5 resets.
type Evdev struct {
	Glob   string
	Keys   map[uint16]Event
	Logger logger

	ch       chan Event
	cancel   context.CancelFunc
	stopOnce sync.Once
	emitMu   sync.Mutex
	closed   bool
}

const (
	KeyF4 uint16 = 62
	KeyF5 uint16 = 63
)

// DefaultKeys returns the stock key map: F4 exits, F5 re-seeds the field.
func DefaultKeys() map[uint16]Event {
	return map[uint16]Event{KeyF4: Exit, KeyF5: Reset}
}

func NewEvdev() *Evdev {
	return &Evdev{
		Glob: "/dev/input/event*",
		Keys: DefaultKeys(),
		ch:   make(chan Event, 4),
	}
}

func (e *Evdev) Events() <-chan Event { return e.ch }

func (e *Evdev) Stop() error {
	e.stopOnce.Do(func() {
		if e.cancel != nil {
			e.cancel()
		}
		e.emitMu.Lock()
		e.closed = true
		close(e.ch)
		e.emitMu.Unlock()
	})
	return nil
}

// emit delivers ev without blocking the reader goroutines.
func (e *Evdev) emit(ev Event) {
	e.emitMu.Lock()
	defer e.emitMu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.ch <- ev:
	default:
	}
}

func (e *Evdev) lookup(code uint16) (Event, bool) {
	keys := e.Keys
	if keys == nil {
		keys = DefaultKeys()
	}
	ev, ok := keys[code]
	return ev, ok
}

func (e *Evdev) infof(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Infof("input", format, args...)
	}
}

const evKey = 0x01

type keyEvent struct {
	code  uint16
	value int32
}

// decodeKeyEvents parses a buffer of input_event records (timeval, u16 type,
// u16 code, s32 value) and returns the EV_KEY entries. tvSize is the size of
// the platform timeval.
func decodeKeyEvents(buf []byte, tvSize int) []keyEvent {
	eventSize := tvSize + 2 + 2 + 4
	var out []keyEvent
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		if typ != evKey {
			continue
		}
		out = append(out, keyEvent{
			code:  binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4]),
			value: int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8])),
		})
	}
	return out
}

// handle emits the mapped event for every key press (value 1) in evs.
func (e *Evdev) handle(evs []keyEvent) {
	for _, ev := range evs {
		if ev.value != 1 {
			continue
		}
		if mapped, ok := e.lookup(ev.code); ok {
			e.infof("key %d pressed: %s", ev.code, mapped)
			e.emit(mapped)
		}
	}
}
