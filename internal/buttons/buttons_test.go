package buttons

import (
	"encoding/binary"
	"testing"
)

const testTimevalSize = 16

func record(typ, code uint16, value int32) []byte {
	rec := make([]byte, testTimevalSize+8)
	binary.LittleEndian.PutUint16(rec[testTimevalSize:], typ)
	binary.LittleEndian.PutUint16(rec[testTimevalSize+2:], code)
	binary.LittleEndian.PutUint32(rec[testTimevalSize+4:], uint32(value))
	return rec
}

func TestDecodeKeyEvents(t *testing.T) {
	var buf []byte
	buf = append(buf, record(0x04, 4, 30)...) // EV_MSC scan code
	buf = append(buf, record(evKey, KeyF4, 1)...)
	buf = append(buf, record(0x00, 0, 0)...) // EV_SYN
	buf = append(buf, record(evKey, KeyF4, 0)...)
	buf = append(buf, 0xff, 0xff) // trailing partial record

	evs := decodeKeyEvents(buf, testTimevalSize)
	if len(evs) != 2 {
		t.Fatalf("expected 2 key events, got %d", len(evs))
	}
	if evs[0].code != KeyF4 || evs[0].value != 1 || evs[1].value != 0 {
		t.Fatalf("unexpected events %+v", evs)
	}
}

func TestEvdevEmitsMappedPresses(t *testing.T) {
	e := NewEvdev()
	e.Keys = map[uint16]Event{KeyF4: Exit, KeyF5: Reset}

	e.handle([]keyEvent{{code: KeyF5, value: 1}, {code: KeyF4, value: 0}, {code: 30, value: 1}})

	select {
	case ev := <-e.Events():
		if ev != Reset {
			t.Fatalf("expected reset, got %s", ev)
		}
	default:
		t.Fatal("expected an event")
	}
	select {
	case ev := <-e.Events():
		t.Fatalf("expected no further events, got %s", ev)
	default:
	}
}

func TestEvdevDefaultKeys(t *testing.T) {
	for name, e := range map[string]*Evdev{"constructor": NewEvdev(), "zero value": {ch: make(chan Event, 4)}} {
		e.handle([]keyEvent{{code: KeyF5, value: 1}, {code: KeyF4, value: 1}})
		want := []Event{Reset, Exit}
		for _, w := range want {
			select {
			case ev := <-e.Events():
				if ev != w {
					t.Fatalf("%s: expected %s, got %s", name, w, ev)
				}
			default:
				t.Fatalf("%s: expected %s", name, w)
			}
		}
	}
}

func TestEvdevStopClosesEvents(t *testing.T) {
	e := NewEvdev()
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	_ = e.Stop()
	e.emit(Exit)
	if _, ok := <-e.Events(); ok {
		t.Fatal("expected closed channel")
	}
}

func TestNoopButtonsStopTwice(t *testing.T) {
	n := NewNoopButtons()
	_ = n.Stop()
	_ = n.Stop()
	if _, ok := <-n.Events(); ok {
		t.Fatal("expected closed channel")
	}
}
