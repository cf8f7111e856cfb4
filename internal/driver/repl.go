package driver

import (
	"context"
	"io"
	"strings"

	"lumen/internal/diag"
	"lumen/internal/diagfmt"
	"lumen/internal/lexer"
	"lumen/internal/module"
	"lumen/internal/parser"
	"lumen/internal/project"
	"lumen/internal/source"
	"lumen/internal/token"
)

// Session evaluates REPL entries. Every entry becomes a new buffer in the
// same FileSet, so diagnostics of earlier entries stay renderable.
type Session struct {
	fs       *source.FileSet
	bag      *diag.Bag
	max      int
	reporter diag.Reporter
	resolver *module.Resolver
	cfg      module.Config
	w        io.Writer
}

// NewSession creates a session that writes results to w. Child modules
// declared in the REPL are looked up relative to dir.
func NewSession(w io.Writer, dir string, cfg module.Config, maxDiagnostics int) *Session {
	fs := source.NewFileSetWithBase(dir)
	files := project.NewFiles(fs)
	files.ReplDir = dir
	s := &Session{
		fs:  fs,
		bag: diag.NewBag(maxDiagnostics),
		max: maxDiagnostics,
		cfg: cfg,
		w:   w,
	}
	s.reporter = diag.FuncReporter(func(d diag.Diagnostic) { s.bag.Add(d) })
	s.resolver = module.NewResolver(files, s.reporter)
	return s
}

func (s *Session) FileSet() *source.FileSet { return s.fs }

// TakeDiagnostics returns what was reported since the previous call.
func (s *Session) TakeDiagnostics() *diag.Bag {
	out := s.bag
	s.bag = diag.NewBag(s.max)
	return out
}

// Eval stores line as a new REPL buffer and prints its tree: items (when
// the entry starts with an item keyword) as a module tree, anything else
// as an expression.
func (s *Session) Eval(ctx context.Context, line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	ref := s.fs.InsertRepl(line)
	file, err := s.fs.Load(ref)
	if err != nil {
		return err
	}
	if !startsWithItem(line) {
		e, err := parser.ParseExpr(file, s.reporter)
		if err != nil {
			return err
		}
		return diagfmt.ExprTree(s.w, e)
	}
	parsed, err := parser.ParseFile(file, s.reporter)
	if err != nil {
		return err
	}
	tree, err := s.resolver.BuildTree(ctx, ref, parsed, s.cfg)
	if err != nil {
		return err
	}
	return diagfmt.ModuleTree(s.w, tree, s.fs, diagfmt.PathModeRelative)
}

// Complete reports whether line can be evaluated as is. Unbalanced braces
// or parens ask the REPL for a continuation line, as does a string or block
// comment that runs to the end of input. Comments are skipped by the lexer.
func Complete(line string) bool {
	fs := source.NewFileSet()
	file, err := fs.Load(fs.InsertRepl(line))
	if err != nil {
		return true
	}
	open := &cutOff{end: len(file.Content)}
	lx := lexer.New(file, lexer.Options{Reporter: open})
	depth := 0
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		switch tok.Kind {
		case token.LBrace, token.LParen:
			depth++
		case token.RBrace, token.RParen:
			depth--
		}
	}
	return depth <= 0 && !open.hit
}

// cutOff notes lexer problems that reach the end of input.
type cutOff struct {
	end int
	hit bool
}

func (c *cutOff) Report(rng source.Range, _ string) {
	if int(rng.End) >= c.end {
		c.hit = true
	}
}

func startsWithItem(line string) bool {
	word := strings.Fields(line)
	if len(word) == 0 {
		return false
	}
	first := word[0]
	if i := strings.IndexAny(first, "<({;"); i >= 0 {
		first = first[:i]
	}
	kind, ok := token.LookupKeyword(first)
	if !ok {
		return false
	}
	switch kind {
	case token.KwFn, token.KwPub, token.KwMod, token.KwTrait, token.KwImpl:
		return true
	}
	return false
}
