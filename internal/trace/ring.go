package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so that a failing
// command can show what led up to the failure.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int // slot of the next write
	filled bool
	level  Level
}

// NewRingTracer keeps up to capacity events; a non-positive capacity means DefaultRingSize.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when the ring is full.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}

	t.mu.Lock()
	t.buf[t.next] = stored
	t.next++
	if t.next == len(t.buf) {
		t.next, t.filled = 0, true
	}
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.filled {
		return append([]Event(nil), t.buf[:t.next]...)
	}
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.next:]...)
	return append(out, t.buf[:t.next]...)
}

// PairEvents returns the stored events stamped with pair id, oldest first.
func (t *RingTracer) PairEvents(id string) []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.Pair == id {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes every stored event in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return writeEvents(w, t.Snapshot(), format)
}

// DumpPair writes only the events of pair id. It reports whether the ring
// still held any of them.
func (t *RingTracer) DumpPair(w io.Writer, format Format, id string) (bool, error) {
	events := t.PairEvents(id)
	return len(events) > 0, writeEvents(w, events, format)
}

func writeEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
