package ast

import (
	"lumen/internal/source"
)

// Item is a top-level declaration.
type Item interface {
	ItemSpan() source.Span
}

// ModDecl is `pub? mod name;`.
type ModDecl struct {
	Span   source.Span
	Public bool
	Name   Name
}

// FnSig is a function header. Ret is TypeEmpty when no `->` was written.
type FnSig struct {
	Span     source.Span
	Public   bool
	Name     Name
	Generics *Generics
	Where    *WhereClause
	Args     []Arg
	Ret      Type
}

// FnDef is a function with a body.
type FnDef struct {
	FnSig
	Body Block
}

// AssocType declares an associated type inside a trait.
type AssocType struct {
	Span     source.Span
	Name     Name
	Generics *Generics
	Bounds   []Type
}

// AssocBinding binds an associated type inside an impl.
type AssocBinding struct {
	Span     source.Span
	Name     Name
	Generics *Generics
	Value    Type
}

// TraitDef keeps default methods and abstract signatures apart, each in source order.
type TraitDef struct {
	Span       source.Span
	Public     bool
	Name       Name
	Generics   *Generics
	Where      *WhereClause
	Methods    []*FnDef
	Signatures []*FnSig
	AssocTypes []*AssocType
}

// TraitImpl is `impl<G> Trait<Args> for Target where ... { ... }`.
type TraitImpl struct {
	Span     source.Span
	Generics *Generics
	Trait    Type
	Target   Type
	Where    *WhereClause
	Methods  []*FnDef
	Bindings []*AssocBinding
}

// InherentImpl is an impl block without a trait reference.
type InherentImpl struct {
	Span     source.Span
	Generics *Generics
	Target   Type
	Where    *WhereClause
	Methods  []*FnDef
	Bindings []*AssocBinding
}

// WithTrait desugars the impl into a trait implementation of ref.
func (i *InherentImpl) WithTrait(ref Type) *TraitImpl {
	return &TraitImpl{
		Span:     i.Span,
		Generics: i.Generics,
		Trait:    ref,
		Target:   i.Target,
		Where:    i.Where,
		Methods:  i.Methods,
		Bindings: i.Bindings,
	}
}

func (d *ModDecl) ItemSpan() source.Span      { return d.Span }
func (d *FnDef) ItemSpan() source.Span        { return d.Span }
func (d *TraitDef) ItemSpan() source.Span     { return d.Span }
func (d *TraitImpl) ItemSpan() source.Span    { return d.Span }
func (d *InherentImpl) ItemSpan() source.Span { return d.Span }
