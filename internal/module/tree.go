package module

import (
	"lumen/internal/ast"
	"lumen/internal/source"
)

// Node is one resolved module file. It is built once by the Resolver
// and never mutated afterwards.
type Node struct {
	// Name is the module's own name: the declared name for children, the
	// file stem for a tree root ("repl" for REPL input).
	Name string
	File source.FileRef
	AST  *ast.File
	// Children maps declared names to child modules; Order keeps declaration order.
	Children map[string]*Child
	Order    []string
	// AllowBuiltins is fixed once per tree: true for sysroot libraries.
	AllowBuiltins bool
}

// Child is a declared submodule with its visibility marker.
type Child struct {
	Public bool
	Decl   *ast.ModDecl
	Node   *Node
}

// Tree is a root module plus the external libraries bound by name.
// Each library is an independently rooted Tree.
type Tree struct {
	Externs map[string]*Tree
	// ExternOrder keeps binding order for deterministic output.
	ExternOrder []string
	Root        *Node
}

func newNode(name string, ref source.FileRef, file *ast.File, allowBuiltins bool) *Node {
	return &Node{
		Name:          name,
		File:          ref,
		AST:           file,
		Children:      make(map[string]*Child),
		AllowBuiltins: allowBuiltins,
	}
}

// Child returns the named direct child regardless of visibility.
func (n *Node) Child(name string) (*Child, bool) {
	c, ok := n.Children[name]
	return c, ok
}

// Walk visits n and its descendants depth-first in declaration order.
// path is the module path relative to n. Returning an error stops the walk.
func (n *Node) Walk(fn func(path []string, node *Node) error) error {
	return n.walk(nil, fn)
}

func (n *Node) walk(path []string, fn func([]string, *Node) error) error {
	if err := fn(path, n); err != nil {
		return err
	}
	for _, name := range n.Order {
		child := n.Children[name]
		next := append(path[:len(path):len(path)], name)
		if err := child.Node.walk(next, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of module files in the subtree.
func (n *Node) Count() int {
	total := 0
	_ = n.Walk(func([]string, *Node) error {
		total++
		return nil
	})
	return total
}

// Extern returns the library bound to name.
func (t *Tree) Extern(name string) (*Tree, bool) {
	lib, ok := t.Externs[name]
	return lib, ok
}
