package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a process-wide increasing event number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span identifier; zero is never returned.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID parses the id out of the "goroutine N [" stack header.
// Pairs run on errgroup workers, so the id tells interleaved pair spans apart.
func getGoroutineID() uint64 {
	var buf [64]byte
	header := buf[:runtime.Stack(buf[:], false)]
	header, ok := bytes.CutPrefix(header, []byte("goroutine "))
	if !ok {
		return 0
	}
	if sp := bytes.IndexByte(header, ' '); sp >= 0 {
		header = header[:sp]
	}
	gid, err := strconv.ParseUint(string(header), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open interval between a SpanBegin and a SpanEnd event.
// A span created while tracing is off is inert: End and WithExtra do nothing.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	pair     string
	started  time.Time
	extra    map[string]string
}

// Begin opens a span below parent (0 for a root span) and emits its SpanBegin.
// Start is the context-aware form.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, parent, "")
}

func begin(t Tracer, scope Scope, name string, parent uint64, pair string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent,
		gid:      getGoroutineID(),
		scope:    scope,
		name:     name,
		pair:     pair,
		started:  time.Now(),
	}
	ev := s.event(KindSpanBegin, "")
	ev.Time = s.started
	t.Emit(ev)
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil && s.tracer.Enabled() }

func (s *Span) event(kind Kind, detail string) *Event {
	return &Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Pair:     s.pair,
		Detail:   detail,
	}
}

// End emits the SpanEnd event with detail and any extras, and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.event(KindSpanEnd, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.started)
}

// WithExtra attaches key=value to the SpanEnd event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span id, or 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	point(t, scope, name, detail, parent, "")
}

// Note emits an instant event under the current span and pair of ctx.
func Note(ctx context.Context, scope Scope, name, detail string) {
	sc := CurrentSpan(ctx)
	point(FromContext(ctx), scope, name, detail, sc.SpanID, sc.Pair)
}

func point(t Tracer, scope Scope, name, detail string, parent uint64, pair string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Pair:     pair,
		Detail:   detail,
	})
}
