package trace

import "context"

type (
	tracerKey struct{}
	scopeKey  struct{}
)

// SpanContext is what a context carries about the span it runs under:
// the span id new spans hang from and the pair being aligned, if any.
type SpanContext struct {
	SpanID uint64
	Pair   string
}

// WithTracer attaches t to ctx; a nil t is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// CurrentSpan returns the span context of ctx; the zero value means a root.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(scopeKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}

// WithSpanContext replaces the span context carried by ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, scopeKey{}, sc)
}

// WithPair marks ctx as working on pair id. Spans opened with Start below it
// carry the id, so a ring dump can be narrowed to one pair.
func WithPair(ctx context.Context, id string) context.Context {
	sc := CurrentSpan(ctx)
	sc.Pair = id
	return WithSpanContext(ctx, sc)
}

// PairFromContext returns the pair id set by WithPair, or "".
func PairFromContext(ctx context.Context) string {
	return CurrentSpan(ctx).Pair
}

// Start opens a span with the tracer of ctx under the current span, stamps it
// with the current pair and returns a context in which it is the parent.
// End the span as usual.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	sc := CurrentSpan(ctx)
	span := begin(FromContext(ctx), scope, name, sc.SpanID, sc.Pair)
	if span.ID() == 0 {
		// выключенный спан не меняет родителя
		return span, ctx
	}
	return span, WithSpanContext(ctx, SpanContext{SpanID: span.ID(), Pair: sc.Pair})
}
