package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopePair, false},
		{LevelDetail, ScopePair, true},
		{LevelDebug, ScopePair, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if m, err := ParseMode("Both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(Both) = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "batch", 0)
	pair := Begin(tr, ScopePair, "pair:1", root.ID())
	pair.WithExtra("tokens", "7").WithExtra("score", "3").End("ok")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ batch") || !strings.Contains(lines[3], "← batch") {
		t.Fatalf("unexpected root events:\n%s", out)
	}
	if !strings.Contains(lines[2], "  ← pair:1 (ok) {score=3, tokens=7}") {
		t.Fatalf("unexpected pair end: %q", lines[2])
	}
}

func TestStreamFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopePair, "pair:1", 0).End("")
	Point(tr, ScopePair, "skipped", "", 0)
	if buf.Len() != 0 {
		t.Fatalf("pair events must be filtered at phase level:\n%s", buf.String())
	}
	Point(tr, ScopePass, "tokenize", "2 inputs", 0)
	if !strings.Contains(buf.String(), "• tokenize (2 inputs)") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopePass, "score", 0).WithExtra("cells", "42").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid NDJSON line %q: %v", lines[1], err)
	}
	if ev["kind"] != "end" || ev["scope"] != "pass" || ev["name"] != "score" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		Point(ring, ScopePair, "p", string(rune('a'+i)), 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	var details []string
	for _, ev := range snap {
		details = append(details, ev.Detail)
	}
	if got := strings.Join(details, ""); got != "cde" {
		t.Fatalf("ring kept %q, want cde", got)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump has wrong line count:\n%s", buf.String())
	}
}

func TestMultiAndContext(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)

	ctx := WithTracer(context.Background(), multi)
	Begin(FromContext(ctx), ScopeDriver, "align", 0).End("")

	if got, ok := multi.Ring(); !ok || got != ring {
		t.Fatal("Ring must find the ring tracer")
	}
	if len(ring.Snapshot()) != 2 || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("events not fanned out: ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must resolve to Nop")
	}
}

func TestNewFromConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer: %v", err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Point(tr, ScopeDriver, "start", "", 0)
	if !strings.Contains(buf.String(), "start") {
		t.Fatalf("stream tracer wrote %q", buf.String())
	}
	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	if len(ring.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("disabled tracer must not start a heartbeat")
	}
}

func TestStartCarriesPair(t *testing.T) {
	ring := NewRingTracer(32, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	root, ctx := Start(ctx, ScopeDriver, "batch")
	pctx := WithPair(ctx, "7")
	if PairFromContext(pctx) != "7" || PairFromContext(ctx) != "" {
		t.Fatal("WithPair must only affect the derived context")
	}
	pair, pctx := Start(pctx, ScopePair, "pair:7")
	Note(pctx, ScopePass, "matrix", "grid")
	pair.End("ok")
	root.End("")

	evs := ring.PairEvents("7")
	if len(evs) != 3 {
		t.Fatalf("expected 3 events of pair 7, got %d", len(evs))
	}
	if evs[0].ParentID != root.ID() || evs[1].ParentID != pair.ID() {
		t.Fatalf("wrong parents: %d, %d", evs[0].ParentID, evs[1].ParentID)
	}

	var buf bytes.Buffer
	found, err := ring.DumpPair(&buf, FormatText, "7")
	if err != nil || !found {
		t.Fatalf("DumpPair = %v, %v", found, err)
	}
	if strings.Contains(buf.String(), "batch") || !strings.Contains(buf.String(), "• matrix [7] (grid)") {
		t.Fatalf("unexpected pair dump:\n%s", buf.String())
	}
	if found, _ := ring.DumpPair(&buf, FormatText, "8"); found {
		t.Fatal("unknown pair must not be found")
	}
}

func TestStartWithTracingOff(t *testing.T) {
	ctx := WithPair(context.Background(), "p")
	span, next := Start(ctx, ScopePair, "pair:p")
	if span.ID() != 0 || next != ctx {
		t.Fatal("an inert span must not change the context")
	}
	if span.End("") != 0 {
		t.Fatal("inert span must report zero duration")
	}
}
