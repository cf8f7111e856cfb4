package ast

import (
	"lumen/internal/source"
)

// File is the parsed top level of one source file.
type File struct {
	Span  source.Span
	Ref   source.FileRef
	Items []Item
}

// Mods returns the module declarations in declaration order.
func (f *File) Mods() []*ModDecl {
	var out []*ModDecl
	for _, it := range f.Items {
		if m, ok := it.(*ModDecl); ok {
			out = append(out, m)
		}
	}
	return out
}

// Func finds a top-level function by name.
func (f *File) Func(name string) (*FnDef, bool) {
	for _, it := range f.Items {
		if fn, ok := it.(*FnDef); ok && fn.Name.Text == name {
			return fn, true
		}
	}
	return nil, false
}

// Traits returns the trait definitions in declaration order.
func (f *File) Traits() []*TraitDef {
	var out []*TraitDef
	for _, it := range f.Items {
		if t, ok := it.(*TraitDef); ok {
			out = append(out, t)
		}
	}
	return out
}
