package driver

import (
	"context"
	"errors"
	"fmt"

	"lumen/internal/backend"
	"lumen/internal/checker"
	"lumen/internal/diag"
	"lumen/internal/module"
	"lumen/internal/observ"
	"lumen/internal/project"
	"lumen/internal/source"
	"lumen/internal/trace"
)

// BuildResult is what a build leaves behind, successful or not.
// FileSet and Bag are always set so the caller can render diagnostics.
type BuildResult struct {
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Settings *Settings
	Tree     *module.Tree
	Types    *checker.TypeDB
	Timings  *observ.Timer
}

// Build runs load, resolve, collect and backend for one entry file.
// The returned error is the first fatal *diag.Error, or a plain error for
// configuration problems; diagnostics reported so far are in the result's Bag.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return build(ctx, opts, true)
}

// Check is Build without the backend.
func Check(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return build(ctx, opts, false)
}

func build(ctx context.Context, opts BuildOptions, runBackend bool) (res *BuildResult, err error) {
	res = &BuildResult{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	if opts.EnableTimings {
		res.Timings = observ.NewTimer()
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "build")
	span.WithExtra("entry", opts.Entry)
	defer func() {
		detail := "ok"
		if err != nil {
			detail = "failed"
		}
		span.End(detail)
	}()

	if runBackend {
		if err := backend.Validate(opts.Backend, backend.Options{Out: opts.Out}); err != nil {
			return res, err
		}
	}

	var settings *Settings
	if err := pass(ctx, res.Timings, "load", func(context.Context) error {
		var err error
		settings, err = resolveSettings(opts)
		return err
	}); err != nil {
		return res, err
	}
	res.Settings = settings
	res.FileSet.SetBaseDir(settings.Root)

	reporter := diag.MultiReporter{&diag.BagReporter{Bag: res.Bag}, traceReporter(ctx), opts.Reporter}
	resolver := module.NewResolver(project.NewFiles(res.FileSet), reporter)
	if err := pass(ctx, res.Timings, "resolve", func(ctx context.Context) error {
		var err error
		res.Tree, err = resolver.LoadTree(ctx, source.PathRef(settings.Entry), settings.Modules)
		return err
	}); err != nil {
		return res, err
	}

	_ = pass(ctx, res.Timings, "collect", func(ctx context.Context) error {
		res.Types = checker.Collect(res.Tree)
		for _, c := range res.Types.Collisions {
			trace.PointCtx(ctx, trace.ScopeItem, "collision "+c.Path.String(),
				fmt.Sprintf("%s dropped, name taken by %s", c.Kind, c.Existing))
		}
		return nil
	})

	if !runBackend {
		return res, nil
	}
	err = pass(ctx, res.Timings, "backend", func(ctx context.Context) error {
		return backend.Run(ctx, opts.Backend, res.Tree, res.FileSet, reporter, backend.Options{
			Lib:      settings.Lib,
			Out:      opts.Out,
			Stdout:   opts.Stdout,
			PathMode: opts.PathMode,
		})
	})
	return res, err
}

// pass runs fn as a traced, timed driver pass.
func pass(ctx context.Context, timer *observ.Timer, name string, fn func(context.Context) error) error {
	idx := -1
	if timer != nil {
		idx = timer.Begin(name)
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, name)
	err := fn(ctx)
	note := ""
	if err != nil {
		note = errorNote(err)
	}
	span.End(note)
	if timer != nil {
		timer.End(idx, note)
	}
	return err
}

// traceReporter mirrors every diagnostic into the trace as a point under ctx's span.
func traceReporter(ctx context.Context) diag.Reporter {
	return diag.FuncReporter(func(d diag.Diagnostic) {
		trace.PointCtx(ctx, trace.ScopePass, "diag "+d.Code.ID(), d.Message)
	})
}

func errorNote(err error) string {
	var de *diag.Error
	if errors.As(err, &de) {
		return de.Code.ID()
	}
	return fmt.Sprintf("error: %v", err)
}
