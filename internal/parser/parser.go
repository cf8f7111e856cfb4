package parser

import (
	"errors"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/grammar"
	"lumen/internal/source"
)

// BuildFile converts a module parse tree of file into an AST.
// A tree that does not match the grammar panics with *ShapeError.
func BuildFile(file *source.File, n *grammar.Node) *ast.File {
	b := builder{file: file}
	return b.buildFile(n)
}

// BuildExpr converts an expr parse tree of file into an AST.
func BuildExpr(file *source.File, n *grammar.Node) *ast.Expr {
	b := builder{file: file}
	return b.buildExpr(n)
}

// ParseFile — входная точка для разбора одного файла.
// Синтаксическая ошибка репортится в r и возвращается как *diag.Error.
func ParseFile(file *source.File, r diag.Reporter) (*ast.File, error) {
	tree, err := grammar.Parse(file, grammar.RuleModule)
	if err != nil {
		return nil, syntaxError(file, r, err)
	}
	return BuildFile(file, tree), nil
}

// ParseExpr parses the whole file as a single expression.
func ParseExpr(file *source.File, r diag.Reporter) (*ast.Expr, error) {
	tree, err := grammar.Parse(file, grammar.RuleExpr)
	if err != nil {
		return nil, syntaxError(file, r, err)
	}
	return BuildExpr(file, tree), nil
}

func syntaxError(file *source.File, r diag.Reporter, err error) error {
	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		return diag.Raise(r, diag.New(diag.SyntaxError, file.Point(source.Range{}), err.Error()))
	}
	return diag.Raise(r, diag.New(diag.SyntaxError, se.Span, se.Message()))
}
