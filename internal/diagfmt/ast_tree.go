package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"lumen/internal/ast"
	"lumen/internal/module"
	"lumen/internal/source"
)

// ModuleTree prints tree: the root module with its items and submodules,
// then every bound library under an `extern` node.
func ModuleTree(w io.Writer, tree *module.Tree, fs *source.FileSet, mode PathMode) error {
	root := moduleNode(tree.Root, "", fs, mode)
	for _, name := range tree.ExternOrder {
		lib := tree.Externs[name]
		root.add(leaf("extern " + name).add(moduleNode(lib.Root, "", fs, mode)))
	}
	return renderTree(w, root)
}

// FileTree prints the items of one parsed file.
func FileTree(w io.Writer, file *ast.File, fs *source.FileSet, mode PathMode) error {
	root := leaf(displayPath(file.Ref, fs, mode))
	for _, it := range file.Items {
		root.add(itemNode(it))
	}
	return renderTree(w, root)
}

// ExprTree prints one expression as a tree, one node per sub-expression.
func ExprTree(w io.Writer, e *ast.Expr) error {
	return renderTree(w, exprNode(e))
}

func moduleNode(n *module.Node, vis string, fs *source.FileSet, mode PathMode) *treeNode {
	label := fmt.Sprintf("%smod %s (%s)", vis, n.Name, displayPath(n.File, fs, mode))
	node := leaf(label)
	if n.AST == nil {
		return node
	}
	for _, it := range n.AST.Items {
		if decl, ok := it.(*ast.ModDecl); ok {
			child, ok := n.Children[decl.Name.Text]
			if !ok || child.Decl != decl {
				continue
			}
			v := ""
			if child.Public {
				v = "pub "
			}
			node.add(moduleNode(child.Node, v, fs, mode))
			continue
		}
		node.add(itemNode(it))
	}
	return node
}

func itemNode(it ast.Item) *treeNode {
	switch item := it.(type) {
	case *ast.ModDecl:
		return leaf(pubPrefix(item.Public) + "mod " + item.Name.Text)
	case *ast.FnDef:
		return fnNode(item)
	case *ast.TraitDef:
		node := leaf(pubPrefix(item.Public) + "trait " + item.Name.Text + formatGenerics(item.Generics) + formatWhere(item.Where))
		for _, at := range item.AssocTypes {
			label := "type " + at.Name.Text + formatGenerics(at.Generics)
			if len(at.Bounds) > 0 {
				label += ": " + joinTypes(at.Bounds, " + ")
			}
			node.add(leaf(label))
		}
		for _, sig := range item.Signatures {
			node.add(leaf(formatSig(sig) + ";"))
		}
		for _, m := range item.Methods {
			node.add(fnNode(m))
		}
		return node
	case *ast.TraitImpl:
		node := leaf("impl" + formatGenerics(item.Generics) + " " + item.Trait.String() + " for " + item.Target.String() + formatWhere(item.Where))
		return implBody(node, item.Bindings, item.Methods)
	case *ast.InherentImpl:
		node := leaf("impl" + formatGenerics(item.Generics) + " " + item.Target.String() + formatWhere(item.Where))
		return implBody(node, item.Bindings, item.Methods)
	default:
		return leaf(fmt.Sprintf("<%T>", it))
	}
}

func implBody(node *treeNode, bindings []*ast.AssocBinding, methods []*ast.FnDef) *treeNode {
	for _, b := range bindings {
		node.add(leaf("type " + b.Name.Text + formatGenerics(b.Generics) + " = " + b.Value.String()))
	}
	for _, m := range methods {
		node.add(fnNode(m))
	}
	return node
}

func fnNode(fn *ast.FnDef) *treeNode {
	return blockNode(leaf(formatSig(&fn.FnSig)), fn.Body)
}

func blockNode(node *treeNode, b ast.Block) *treeNode {
	for _, st := range b.Stmts {
		label := "stmt"
		if st.Node.Kind == ast.StmtReturning {
			label = "ret"
		}
		node.add(leaf(label).add(exprNode(&st.Node.Expr)))
	}
	return node
}

func exprNode(e *ast.Expr) *treeNode {
	if e == nil {
		return leaf("<nil>")
	}
	switch n := e.Node.(type) {
	case *ast.Literal:
		return leaf(n.Kind.String() + " " + ast.FormatLiteral(n))
	case *ast.Ident:
		return leaf("Ident " + strings.Join(n.Path, "::"))
	case *ast.Binary:
		return leaf(n.Op.String() + " " + n.Op.Symbol()).add(exprNode(n.Left), exprNode(n.Right))
	case *ast.Not:
		return leaf("Not").add(exprNode(n.Operand))
	case *ast.Call:
		node := leaf("Call").add(exprNode(n.Callee))
		for _, a := range n.Args {
			node.add(leaf("arg").add(exprNode(a)))
		}
		return node
	case *ast.If:
		node := leaf("If").add(leaf("cond").add(exprNode(n.Cond)), blockNode(leaf("then"), n.Then))
		for _, c := range n.ElseIfs {
			node.add(blockNode(leaf("elseif").add(leaf("cond").add(exprNode(c.Cond))), c.Body))
		}
		if n.Else != nil {
			node.add(blockNode(leaf("else"), *n.Else))
		}
		return node
	default:
		return leaf(fmt.Sprintf("<%T>", e.Node))
	}
}

func pubPrefix(public bool) string {
	if public {
		return "pub "
	}
	return ""
}

func formatSig(sig *ast.FnSig) string {
	var sb strings.Builder
	sb.WriteString(pubPrefix(sig.Public))
	sb.WriteString("fn ")
	sb.WriteString(sig.Name.Text)
	sb.WriteString(formatGenerics(sig.Generics))
	sb.WriteByte('(')
	for i, a := range sig.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Name.Text)
		sb.WriteString(": ")
		sb.WriteString(a.Type.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(sig.Ret.String())
	sb.WriteString(formatWhere(sig.Where))
	return sb.String()
}

func formatGenerics(g *ast.Generics) string {
	if g == nil || len(g.Params) == 0 {
		return ""
	}
	names := make([]string, len(g.Params))
	for i, p := range g.Params {
		names[i] = p.Text
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func formatWhere(w *ast.WhereClause) string {
	if w == nil || len(w.Constraints) == 0 {
		return ""
	}
	parts := make([]string, len(w.Constraints))
	for i, c := range w.Constraints {
		parts[i] = c.Subject.String() + ": " + joinTypes(c.Bounds, " + ")
	}
	return " where " + strings.Join(parts, ", ")
}

func joinTypes(ts []ast.Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
