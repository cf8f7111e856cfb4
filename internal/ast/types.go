package ast

import (
	"strings"

	"lumen/internal/source"
)

type TypeKind uint8

const (
	// TypeEmpty is the unit type `()`, also the default return type.
	TypeEmpty TypeKind = iota
	TypeNamed
)

// Type is Empty or a named type with generic arguments.
type Type struct {
	Span source.Span
	Kind TypeKind
	Name string
	Args []Type
}

func (t Type) String() string {
	if t.Kind == TypeEmpty {
		return "()"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// Generics lists the type parameters of a declaration.
type Generics struct {
	Span   source.Span
	Params []Name
}

// Constraint is `Subject: Bound + Bound`.
type Constraint struct {
	Span    source.Span
	Subject Type
	Bounds  []Type
}

type WhereClause struct {
	Span        source.Span
	Constraints []Constraint
}

// Arg is one `name: Type` parameter.
type Arg struct {
	Span source.Span
	Name Name
	Type Type
}
