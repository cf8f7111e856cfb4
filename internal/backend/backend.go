package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"lumen/internal/diag"
	"lumen/internal/diagfmt"
	"lumen/internal/module"
	"lumen/internal/source"
	"lumen/internal/trace"
)

// EntryPoint is the function an executable root module must define.
const EntryPoint = "main"

// ErrOutRequired is returned by Validate when the backend writes a file
// and no output path was given.
var ErrOutRequired = errors.New("--out is required for this backend")

// Options is what the CLI passes down for one build.
type Options struct {
	// Lib builds the tree as a library: there is no entry point.
	Lib bool
	Out string
	// Stdout receives console output of the ast backend when Out is empty.
	Stdout   io.Writer
	PathMode diagfmt.PathMode
}

// Validate checks the options against k before any file is read.
func Validate(k Kind, opts Options) error {
	if k.OutRequired() && opts.Out == "" {
		return fmt.Errorf("backend %s: %w", k, ErrOutRequired)
	}
	return nil
}

// Run hands the completed tree to the backend k. Fatal problems are
// reported through r and returned as *diag.Error.
func Run(ctx context.Context, k Kind, tree *module.Tree, fs *source.FileSet, r diag.Reporter, opts Options) error {
	if err := Validate(k, opts); err != nil {
		return err
	}
	_, span := trace.Start(ctx, trace.ScopePass, "backend:"+k.String())
	defer span.End("")

	switch k {
	case Interpret:
		return interpret(tree, r, opts)
	case AST:
		return dumpAST(tree, fs, opts)
	case Msgpack:
		return emitMsgpack(tree, fs, opts.Out)
	default:
		return fmt.Errorf("backend %s is not runnable", k)
	}
}

func interpret(tree *module.Tree, r diag.Reporter, opts Options) error {
	if opts.Lib {
		return diag.Raise(r, diag.NewNonLocated(diag.NoMainError,
			"can't interpret a library: it has no entry point"))
	}
	if tree.Root.AST == nil {
		return diag.Raise(r, diag.NewNonLocated(diag.NoMainError, "root module has no items"))
	}
	if _, ok := tree.Root.AST.Func(EntryPoint); !ok {
		return diag.Raise(r, diag.NewNonLocated(diag.NoMainError,
			fmt.Sprintf("no `%s` function in root module %s", EntryPoint, tree.Root.File)))
	}
	// исполнение программ пока не поддерживается: проверяем только точку входа
	return nil
}

func dumpAST(tree *module.Tree, fs *source.FileSet, opts Options) (err error) {
	w := opts.Stdout
	if opts.Out != "" {
		f, createErr := os.Create(opts.Out)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", opts.Out, createErr)
		}
		defer func() {
			if closeErr := f.Close(); err == nil && closeErr != nil {
				err = closeErr
			}
		}()
		w = f
	}
	if w == nil {
		w = os.Stdout
	}
	return diagfmt.ModuleTree(w, tree, fs, opts.PathMode)
}
