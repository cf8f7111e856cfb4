// Package checker holds the storage that semantic analysis will run on.
// Nothing here checks anything yet: Collect only files declarations by
// module path so later passes have a place to look them up.
package checker

import (
	"sort"
	"strings"

	"lumen/internal/ast"
)

// ModulePath is a `::`-free list of module names from a tree root.
type ModulePath []string

func (p ModulePath) String() string { return strings.Join(p, "::") }

// EntryKind tags what a TypeDB entry holds.
type EntryKind uint8

const (
	EntryDB EntryKind = iota
	EntryReference
	EntryType
	EntryTrait
)

func (k EntryKind) String() string {
	switch k {
	case EntryDB:
		return "db"
	case EntryReference:
		return "ref"
	case EntryType:
		return "type"
	case EntryTrait:
		return "trait"
	default:
		return "?"
	}
}

// Entry is one named slot. Only the field matching Kind is set.
type Entry struct {
	Kind  EntryKind
	DB    *TypeDB
	Ref   ModulePath
	Type  *Type
	Trait *ast.TraitDef
}

// Type collects the impl blocks targeting one named type.
type Type struct {
	Generics   []ast.Name
	Impls      []*ast.InherentImpl
	TraitImpls []TraitImpl
}

// TraitImpl remembers the module an implementation was written in.
type TraitImpl struct {
	Module ModulePath
	Impl   *ast.TraitImpl
}

// TypeDB is a namespace: submodules, types and traits by name. Libraries
// bound at a tree root live in Externs, apart from the root's own modules,
// and win lookups of the first segment the way module.Tree.Lookup does.
type TypeDB struct {
	Children map[string]*Entry
	Externs  map[string]*Entry
	// Collisions is filled on the root db only.
	Collisions []Collision
}

// Collision is a declaration dropped because its name was already taken
// by an entry of another kind (or by another trait) in the same module.
type Collision struct {
	Path     ModulePath
	Kind     EntryKind
	Existing EntryKind
}

func NewTypeDB() *TypeDB {
	return &TypeDB{
		Children: make(map[string]*Entry),
		Externs:  make(map[string]*Entry),
	}
}

// Names returns entry and library names sorted, each once.
func (db *TypeDB) Names() []string {
	out := make([]string, 0, len(db.Children)+len(db.Externs))
	for name := range db.Children {
		out = append(out, name)
	}
	for name := range db.Externs {
		if _, dup := db.Children[name]; !dup {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// sub returns the module namespace name, creating it when free. The
// existing entry's kind is returned when the name is taken by something else.
func (db *TypeDB) sub(name string) (*TypeDB, EntryKind, bool) {
	if e, ok := db.Children[name]; ok {
		if e.Kind != EntryDB {
			return nil, e.Kind, false
		}
		return e.DB, EntryDB, true
	}
	child := NewTypeDB()
	db.Children[name] = &Entry{Kind: EntryDB, DB: child}
	return child, EntryDB, true
}

func (db *TypeDB) typ(name string) (*Type, EntryKind, bool) {
	if e, ok := db.Children[name]; ok {
		if e.Kind != EntryType {
			return nil, e.Kind, false
		}
		return e.Type, EntryType, true
	}
	t := &Type{}
	db.Children[name] = &Entry{Kind: EntryType, Type: t}
	return t, EntryType, true
}

func (db *TypeDB) trait(def *ast.TraitDef) (EntryKind, bool) {
	if e, ok := db.Children[def.Name.Text]; ok {
		return e.Kind, false
	}
	db.Children[def.Name.Text] = &Entry{Kind: EntryTrait, Trait: def}
	return EntryTrait, true
}

// Lookup walks path from db, following references from the root db.
func (db *TypeDB) Lookup(path ModulePath) (*Entry, bool) {
	return db.lookup(db, path, 0)
}

func (db *TypeDB) lookup(root *TypeDB, path ModulePath, hops int) (*Entry, bool) {
	cur := &Entry{Kind: EntryDB, DB: db}
	for i, seg := range path {
		if cur.Kind == EntryReference {
			if hops > len(root.Children) {
				return nil, false
			}
			target, ok := root.lookup(root, cur.Ref, hops+1)
			if !ok {
				return nil, false
			}
			cur = target
		}
		if cur.Kind != EntryDB {
			return nil, false
		}
		next, ok := cur.DB.Externs[seg]
		if !ok {
			next, ok = cur.DB.Children[seg]
		}
		if !ok {
			return nil, false
		}
		cur = next
		if i == len(path)-1 && cur.Kind == EntryReference {
			return root.lookup(root, cur.Ref, hops+1)
		}
	}
	return cur, true
}
