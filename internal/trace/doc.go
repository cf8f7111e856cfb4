// Package trace provides a tracing subsystem for the lumen front end.
//
// Tracing records driver passes and per-module resolution so that slow or
// stuck builds can be diagnosed.
//
// # Usage
//
//	lumen build --trace=- --trace-level=detail app/main.lm
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr (text or NDJSON)
//   - RingTracer: last N events in memory, dumped when a build fails
//   - MultiTracer: fan-out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events (load, resolve, collect,
// backend, library:<name>). LevelDetail adds one ScopeModule span per
// resolved file, named "module:<path>". LevelDebug adds a ScopeItem point
// for every `mod` declaration the resolver follows.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "resolve")
//	defer span.End("")
package trace
