package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestLevelScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeModule) {
		t.Error("phase level must stop at pass scope")
	}
	if !LevelDetail.ShouldEmit(ScopeModule) || LevelDetail.ShouldEmit(ScopeItem) {
		t.Error("detail level must stop at module scope")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	outer := Begin(tr, ScopePass, "resolve", 0)
	inner := Begin(tr, ScopeModule, "module:main.lm", outer.ID())
	inner.WithExtra("items", "2").End("ok")
	Begin(tr, ScopeItem, "hidden", inner.ID()).End("")
	outer.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ resolve") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "  ← module:main.lm (ok) {items=2}") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "start", "lumen build", 0)
	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("ndjson: %v (%q)", err, buf.String())
	}
	if ev["name"] != "start" || ev["scope"] != "driver" || ev["detail"] != "lumen build" {
		t.Fatalf("event = %v", ev)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeItem, name, "", 0)
	}
	snap := ring.Snapshot()
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s", got)
	}
}

func TestRingThroughMulti(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "load", 0).End("")
	ring, ok := Ring(tr)
	if !ok {
		t.Fatal("ring not found behind multi tracer")
	}
	var dump bytes.Buffer
	if err := ring.Dump(&dump, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(dump.String(), "load") != 2 || buf.Len() == 0 {
		t.Fatalf("dump = %q, stream = %q", dump.String(), buf.String())
	}
	if _, ok := Ring(Nop); ok {
		t.Error("nop tracer has no ring")
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx = WithTracer(ctx, ring)
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if FromContext(ctx) != Tracer(ring) || CurrentSpan(ctx).SpanID != 7 {
		t.Fatal("context lost tracer or span")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	span := Begin(Nop, ScopePass, "x", 0)
	if span.WithExtra("k", "v").End("") != 0 || span.ID() != 0 {
		t.Fatal("nop span should be inert")
	}
}

func TestStartNestsUnderContextSpan(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	ctx, outer := Start(ctx, ScopePass, "resolve")
	inner, span := Start(ctx, ScopeModule, "module:main.lm")
	PointCtx(inner, ScopeItem, "mod util", "util.lm")
	span.End("")
	outer.End("")

	snap := ring.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("events = %d", len(snap))
	}
	if snap[1].ParentID != outer.ID() || snap[2].ParentID != span.ID() {
		t.Fatalf("parents = %d, %d", snap[1].ParentID, snap[2].ParentID)
	}
	if snap[2].Kind != KindPoint || snap[2].Scope != ScopeItem {
		t.Fatalf("point = %+v", snap[2])
	}
}

func TestStartDisabledKeepsContext(t *testing.T) {
	ctx := WithTracer(context.Background(), NewRingTracer(4, LevelPhase))
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 3})
	got, span := Start(ctx, ScopeModule, "module:x")
	if span.ID() != 0 || CurrentSpan(got).SpanID != 3 {
		t.Fatal("filtered span must not replace the current span")
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on a disabled tracer")
	}
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := ring.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Fatalf("heartbeat events = %+v", snap)
	}
}
