// Package trace records what a tokalign run is doing: batch boundaries,
// passes such as tokenize/score/reconstruct, and individual pairs.
//
// # Usage
//
//	tokalign batch --trace=- --trace-level=detail pairs.jsonl
//
// # Tracers
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only the ring dump on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: plus one span per aligned pair
//   - LevelDebug: everything
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "score", parentID)
//	defer span.End("")
package trace
