package grammar

import (
	"fmt"
	"strings"

	"lumen/internal/source"
)

// Node is one tagged parse-tree node. Range covers the raw source bytes
// matched by the rule; Children are in source order.
type Node struct {
	Rule     Rule
	Range    source.Range
	Children []*Node
}

// Text returns the raw source text matched by the node.
func (n *Node) Text(f *source.File) string {
	return f.Text(n.Range)
}

// Dump renders the subtree one node per line, children indented by two spaces.
func Dump(f *source.File, n *Node) string {
	var sb strings.Builder
	dump(&sb, f, n, "")
	return sb.String()
}

func dump(sb *strings.Builder, f *source.File, n *Node, indent string) {
	fmt.Fprintf(sb, "%s%s [%s]\n", indent, n.Rule, f.Text(n.Range))
	for _, c := range n.Children {
		dump(sb, f, c, indent+"  ")
	}
}
