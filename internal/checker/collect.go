package checker

import (
	"lumen/internal/ast"
	"lumen/internal/module"
)

// Collect files every trait, inherent impl and trait impl of tree by module
// path. Libraries are stored under their bound names; a library seen again
// through another library becomes a reference to the first copy.
func Collect(tree *module.Tree) *TypeDB {
	c := &collector{
		root:     NewTypeDB(),
		seen:     make(map[*module.Tree]ModulePath),
		reported: make(map[string]bool),
	}
	c.tree(c.root, tree, nil)
	return c.root
}

type collector struct {
	root     *TypeDB
	seen     map[*module.Tree]ModulePath
	reported map[string]bool
}

func (c *collector) tree(db *TypeDB, tree *module.Tree, prefix ModulePath) {
	c.seen[tree] = prefix
	for _, name := range tree.ExternOrder {
		lib := tree.Externs[name]
		if at, ok := c.seen[lib]; ok {
			db.Externs[name] = &Entry{Kind: EntryReference, Ref: at}
			continue
		}
		sub := NewTypeDB()
		db.Externs[name] = &Entry{Kind: EntryDB, DB: sub}
		c.tree(sub, lib, join(prefix, name))
	}
	_ = tree.Root.Walk(func(path []string, n *module.Node) error {
		target := db
		for i, seg := range path {
			next, existing, ok := target.sub(seg)
			if !ok {
				c.collide(join(prefix, path[:i+1]...), EntryDB, existing)
				return nil
			}
			target = next
		}
		c.items(target, n.AST, join(prefix, path...))
		return nil
	})
}

func (c *collector) items(db *TypeDB, file *ast.File, path ModulePath) {
	if file == nil {
		return
	}
	for _, it := range file.Items {
		switch item := it.(type) {
		case *ast.TraitDef:
			if existing, ok := db.trait(item); !ok {
				c.collide(join(path, item.Name.Text), EntryTrait, existing)
			}
		case *ast.InherentImpl:
			if t := c.typ(db, path, item.Target.Name); t != nil {
				noteGenerics(t, item.Generics)
				t.Impls = append(t.Impls, item)
			}
		case *ast.TraitImpl:
			if t := c.typ(db, path, item.Target.Name); t != nil {
				noteGenerics(t, item.Generics)
				t.TraitImpls = append(t.TraitImpls, TraitImpl{Module: path, Impl: item})
			}
		}
	}
}

func (c *collector) typ(db *TypeDB, path ModulePath, name string) *Type {
	t, existing, ok := db.typ(name)
	if !ok {
		c.collide(join(path, name), EntryType, existing)
	}
	return t
}

// collide records a dropped declaration once per path and kind.
func (c *collector) collide(path ModulePath, kind, existing EntryKind) {
	key := kind.String() + " " + path.String()
	if c.reported[key] {
		return
	}
	c.reported[key] = true
	c.root.Collisions = append(c.root.Collisions, Collision{Path: path, Kind: kind, Existing: existing})
}

func join(prefix ModulePath, names ...string) ModulePath {
	return append(prefix[:len(prefix):len(prefix)], names...)
}

func noteGenerics(t *Type, g *ast.Generics) {
	if len(t.Generics) == 0 && g != nil {
		t.Generics = g.Params
	}
}
