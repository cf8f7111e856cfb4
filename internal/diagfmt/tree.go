package diagfmt

import (
	"io"
	"strings"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	n.children = append(n.children, children...)
	return n
}

func leaf(label string) *treeNode { return &treeNode{label: label} }

// renderTree пишет дерево с отступами и соединителями:
//
//	root
//	├─ a
//	│  └─ b
//	└─ c
func renderTree(w io.Writer, root *treeNode) error {
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	renderChildren(&sb, root, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderChildren(sb *strings.Builder, n *treeNode, prefix string) {
	for i, child := range n.children {
		last := i == len(n.children)-1
		sb.WriteString(prefix)
		if last {
			sb.WriteString("└─ ")
		} else {
			sb.WriteString("├─ ")
		}
		sb.WriteString(child.label)
		sb.WriteByte('\n')
		next := prefix + "│  "
		if last {
			next = prefix + "   "
		}
		renderChildren(sb, child, next)
	}
}
