package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"lumen/internal/ast"
	"lumen/internal/module"
	"lumen/internal/project"
	"lumen/internal/source"
	"lumen/internal/version"
)

// Current schema version - increment when Payload format changes
const PayloadSchema uint16 = 1

// Payload is the serialized form of a module tree.
type Payload struct {
	Schema uint16
	Tool   string
	// Fingerprint covers the root tree and every library, in binding order.
	Fingerprint project.Digest
	Root        ModulePayload
	Externs     []ExternPayload
}

// ExternPayload is one bound library.
type ExternPayload struct {
	Name string
	Root ModulePayload
}

// ModulePayload mirrors module.Node. Children keep declaration order.
type ModulePayload struct {
	Name          string
	File          string
	AllowBuiltins bool
	ContentHash   project.Digest
	// ModuleHash is H(content || child hashes...).
	ModuleHash project.Digest
	Items      []ItemPayload
	Children   []ChildPayload
}

type ChildPayload struct {
	Name   string
	Public bool
	Module ModulePayload
}

// ItemPayload is a shallow description of one declaration; function
// bodies are kept as rendered expressions.
type ItemPayload struct {
	Kind   string
	Name   string
	Public bool
	Line   uint32
	Col    uint32
	Body   []string `msgpack:",omitempty"`
}

// BuildPayload converts tree. fs must hold every file of the tree.
func BuildPayload(tree *module.Tree, fs *source.FileSet) (*Payload, error) {
	root, err := modulePayload(tree.Root, fs)
	if err != nil {
		return nil, err
	}
	p := &Payload{Schema: PayloadSchema, Tool: version.Tool(), Root: root}
	hashes := []project.Digest{root.ModuleHash}
	for _, name := range tree.ExternOrder {
		lib, err := modulePayload(tree.Externs[name].Root, fs)
		if err != nil {
			return nil, err
		}
		p.Externs = append(p.Externs, ExternPayload{Name: name, Root: lib})
		hashes = append(hashes, project.Combine(project.HashContent([]byte(name)), lib.ModuleHash))
	}
	p.Fingerprint = project.Combine(project.HashContent([]byte(p.Tool)), hashes...)
	return p, nil
}

func modulePayload(n *module.Node, fs *source.FileSet) (ModulePayload, error) {
	file, ok := fs.Get(n.File)
	if !ok {
		return ModulePayload{}, fmt.Errorf("module %s: file %s was never loaded", n.Name, n.File)
	}
	mp := ModulePayload{
		Name:          n.Name,
		File:          n.File.String(),
		AllowBuiltins: n.AllowBuiltins,
		ContentHash:   project.HashContent(file.Content),
	}
	if n.AST != nil {
		for _, it := range n.AST.Items {
			mp.Items = append(mp.Items, itemPayload(it))
		}
	}
	deps := make([]project.Digest, 0, len(n.Order))
	for _, name := range n.Order {
		child := n.Children[name]
		cp, err := modulePayload(child.Node, fs)
		if err != nil {
			return ModulePayload{}, err
		}
		mp.Children = append(mp.Children, ChildPayload{Name: name, Public: child.Public, Module: cp})
		deps = append(deps, cp.ModuleHash)
	}
	mp.ModuleHash = project.Combine(mp.ContentHash, deps...)
	return mp, nil
}

func itemPayload(it ast.Item) ItemPayload {
	sp := it.ItemSpan()
	ip := ItemPayload{Line: sp.Start.Line, Col: sp.Start.Col}
	switch item := it.(type) {
	case *ast.ModDecl:
		ip.Kind, ip.Name, ip.Public = "mod", item.Name.Text, item.Public
	case *ast.FnDef:
		ip.Kind, ip.Name, ip.Public = "fn", item.Name.Text, item.Public
		for _, st := range item.Body.Stmts {
			ip.Body = append(ip.Body, ast.Sexpr(&st.Node.Expr))
		}
	case *ast.TraitDef:
		ip.Kind, ip.Name, ip.Public = "trait", item.Name.Text, item.Public
	case *ast.TraitImpl:
		ip.Kind, ip.Name = "impl", item.Trait.String()+" for "+item.Target.String()
	case *ast.InherentImpl:
		ip.Kind, ip.Name = "impl", item.Target.String()
	}
	return ip
}

func emitMsgpack(tree *module.Tree, fs *source.FileSet, out string) error {
	p, err := BuildPayload(tree, fs)
	if err != nil {
		return err
	}
	return WritePayload(out, p)
}

// WritePayload encodes p into path, replacing the file atomically.
func WritePayload(path string, p *Payload) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ErrSchemaMismatch is returned for payloads written by another schema version.
var ErrSchemaMismatch = errors.New("payload schema mismatch")

// ReadPayload decodes a file written by WritePayload.
func ReadPayload(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if p.Schema != PayloadSchema {
		return nil, fmt.Errorf("%s: schema %d, want %d: %w", path, p.Schema, PayloadSchema, ErrSchemaMismatch)
	}
	return &p, nil
}
