package module

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/parser"
	"lumen/internal/project"
	"lumen/internal/source"
	"lumen/internal/trace"
)

// ReplModuleName is the module name of REPL input.
const ReplModuleName = "repl"

// Resolver builds module trees. Resolution is serial and depth-first, so
// diagnostics come out in declaration order. The first error aborts the
// whole build and no partial tree is returned.
type Resolver struct {
	files    *project.Files
	reporter diag.Reporter
}

func NewResolver(files *project.Files, r diag.Reporter) *Resolver {
	if r == nil {
		r = diag.NopReporter
	}
	return &Resolver{files: files, reporter: r}
}

// RootName returns the module name for an entry file.
func RootName(ref source.FileRef) string {
	if ref.IsRepl() {
		return ReplModuleName
	}
	return project.ModuleNameFromPath(ref.Path)
}

// LoadTree parses entry and builds the full tree with its libraries.
func (r *Resolver) LoadTree(ctx context.Context, entry source.FileRef, cfg Config) (*Tree, error) {
	root, err := r.Load(ctx, entry, RootName(entry), false)
	if err != nil {
		return nil, err
	}
	return r.Compose(ctx, root, cfg)
}

// BuildTree resolves children of an already parsed entry and composes libraries.
func (r *Resolver) BuildTree(ctx context.Context, entry source.FileRef, file *ast.File, cfg Config) (*Tree, error) {
	root, err := r.Build(ctx, entry, file, RootName(entry), false)
	if err != nil {
		return nil, err
	}
	return r.Compose(ctx, root, cfg)
}

// Compose loads core, std (unless NoStd) and user externs, and attaches them to root.
// std sees core; user libraries see core and std.
func (r *Resolver) Compose(ctx context.Context, root *Node, cfg Config) (*Tree, error) {
	tree := &Tree{Externs: make(map[string]*Tree), Root: root}
	sys := make(map[string]*Tree)
	var sysOrder []string

	bind := func(name string, lib *Tree) {
		if _, ok := tree.Externs[name]; !ok {
			tree.ExternOrder = append(tree.ExternOrder, name)
		}
		tree.Externs[name] = lib
	}

	if cfg.Core != "" {
		lib, err := r.loadLibrary(ctx, CoreLib, cfg.Core, true, nil, nil)
		if err != nil {
			return nil, err
		}
		sys[CoreLib] = lib
		sysOrder = append(sysOrder, CoreLib)
		bind(CoreLib, lib)
	}
	if cfg.Std != "" && !cfg.NoStd {
		lib, err := r.loadLibrary(ctx, StdLib, cfg.Std, true, sys, sysOrder)
		if err != nil {
			return nil, err
		}
		sys[StdLib] = lib
		sysOrder = append(sysOrder, StdLib)
		bind(StdLib, lib)
	}

	for _, ext := range cfg.Externs {
		if _, ok := sys[ext.Name]; ok {
			d := diag.NewNonLocated(diag.ShadowedExtern,
				fmt.Sprintf("extern `%s` shadows the sysroot library of the same name", ext.Name))
			if err := diag.Raise(r.reporter, d); err != nil {
				return nil, err
			}
		}
		lib, err := r.loadLibrary(ctx, ext.Name, ext.Path, false, sys, sysOrder)
		if err != nil {
			return nil, err
		}
		bind(ext.Name, lib)
	}
	return tree, nil
}

func (r *Resolver) loadLibrary(ctx context.Context, name, path string, allowBuiltins bool, deps map[string]*Tree, order []string) (*Tree, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "library:"+name)
	span.WithExtra("path", path)

	ref := source.PathRef(path)
	if !r.files.FileSet().Exists(ref) {
		span.End("missing")
		d := diag.NewNonLocated(diag.ModuleNotFoundError,
			fmt.Sprintf("library `%s`: root file %s not found", name, ref))
		return nil, diag.Raise(r.reporter, d)
	}
	root, err := r.Load(ctx, ref, RootName(ref), allowBuiltins)
	if err != nil {
		span.End("broken")
		return nil, err
	}
	lib := &Tree{Externs: make(map[string]*Tree, len(deps)), Root: root}
	for _, dep := range order {
		lib.Externs[dep] = deps[dep]
		lib.ExternOrder = append(lib.ExternOrder, dep)
	}
	span.End("ok")
	return lib, nil
}

// Load reads and parses ref, then resolves its children.
func (r *Resolver) Load(ctx context.Context, ref source.FileRef, name string, allowBuiltins bool) (*Node, error) {
	file, err := r.files.LoadSource(ref)
	if err != nil {
		d := diag.NewNonLocated(diag.IOLoadFileError, err.Error())
		return nil, diag.Raise(r.reporter, d)
	}
	parsed, err := parser.ParseFile(file, r.reporter)
	if err != nil {
		return nil, err
	}
	return r.Build(ctx, ref, parsed, name, allowBuiltins)
}

// Build resolves every `mod` declaration of file in order and returns the
// module node. allowBuiltins is propagated unchanged to all descendants.
func (r *Resolver) Build(ctx context.Context, ref source.FileRef, file *ast.File, name string, allowBuiltins bool) (*Node, error) {
	return r.build(ctx, ref, file, name, allowBuiltins, nil)
}

// frame is one file on the path from the tree root to the module being built.
type frame struct {
	ref  source.FileRef
	decl *ast.ModDecl // nil for the root
}

func (r *Resolver) build(ctx context.Context, ref source.FileRef, file *ast.File, name string, allowBuiltins bool, chain []frame) (node *Node, err error) {
	ctx, span := trace.Start(ctx, trace.ScopeModule, "module:"+ref.String())
	span.WithExtra("name", name)
	defer func() {
		if err != nil {
			span.End("broken")
		} else {
			span.End(fmt.Sprintf("%d children", len(node.Order)))
		}
	}()

	node = newNode(name, ref, file, allowBuiltins)
	if len(file.Items) == 0 {
		d := diag.New(diag.EmptyModule, file.Span, fmt.Sprintf("module `%s` has no items", name))
		if err := diag.Raise(r.reporter, d); err != nil {
			return nil, err
		}
	}
	if len(chain) == 0 {
		chain = []frame{{ref: ref}}
	}

	for _, decl := range file.Mods() {
		childName := decl.Name.Text
		if prev, dup := node.Children[childName]; dup {
			return nil, diag.NewReportBuilder(r.reporter, diag.DuplicateModule, decl.Name.Span,
				fmt.Sprintf("module `%s` is declared more than once", childName)).
				WithNote(prev.Decl.Name.Span, "first declared here").
				Emit()
		}

		childRef, err := r.files.ResolveChild(ref, name, childName)
		if err != nil {
			return nil, r.notFound(decl, err)
		}
		if i := onChain(chain, childRef); i >= 0 {
			return nil, r.cycle(decl, childRef, chain[i+1:])
		}
		trace.PointCtx(ctx, trace.ScopeItem, "mod "+childName, childRef.String())
		child, err := r.loadChild(ctx, decl, childRef, allowBuiltins, chain)
		if err != nil {
			return nil, err
		}
		node.Children[childName] = &Child{Public: decl.Public, Decl: decl, Node: child}
		node.Order = append(node.Order, childName)
	}
	return node, nil
}

func (r *Resolver) loadChild(ctx context.Context, decl *ast.ModDecl, ref source.FileRef, allowBuiltins bool, chain []frame) (*Node, error) {
	file, err := r.files.LoadSource(ref)
	if err != nil {
		d := diag.New(diag.IOLoadFileError, decl.Name.Span, err.Error())
		return nil, diag.Raise(r.reporter, d)
	}
	parsed, err := parser.ParseFile(file, r.reporter)
	if err != nil {
		return nil, err
	}
	chain = append(chain[:len(chain):len(chain)], frame{ref: ref, decl: decl})
	return r.build(ctx, ref, parsed, decl.Name.Text, allowBuiltins, chain)
}

func onChain(chain []frame, ref source.FileRef) int {
	for i, f := range chain {
		if f.ref == ref {
			return i
		}
	}
	return -1
}

// cycle reports decl as leading back to target. loop holds the frames
// entered after target; its first declaration is where the cycle starts.
func (r *Resolver) cycle(decl *ast.ModDecl, target source.FileRef, loop []frame) error {
	b := diag.NewReportBuilder(r.reporter, diag.ModuleCycle, decl.Name.Span,
		fmt.Sprintf("module `%s` resolves to %s, which is already being resolved", decl.Name.Text, target))
	if len(loop) > 0 {
		b.WithNote(loop[0].decl.Name.Span, fmt.Sprintf("cycle enters through `%s` here", loop[0].decl.Name.Text))
	}
	return b.Emit()
}

func (r *Resolver) notFound(decl *ast.ModDecl, err error) error {
	msg := fmt.Sprintf("cannot find module `%s`", decl.Name.Text)
	var nf *project.NotFoundError
	if errors.As(err, &nf) {
		msg = fmt.Sprintf("%s (tried %s)", msg, strings.Join(nf.Tried, ", "))
	}
	return diag.Raise(r.reporter, diag.New(diag.ModuleNotFoundError, decl.Name.Span, msg))
}
