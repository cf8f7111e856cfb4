package module

import (
	"errors"
	"fmt"
	"strings"
)

// LookupReason tells why a path did not resolve.
type LookupReason uint8

const (
	LookupNotFound LookupReason = iota
	LookupPrivate
)

// LookupError reports the first segment of Path that could not be reached.
type LookupError struct {
	Path    []string
	Segment int
	Reason  LookupReason
}

func (e *LookupError) Error() string {
	seg := ""
	if e.Segment < len(e.Path) {
		seg = e.Path[e.Segment]
	}
	full := strings.Join(e.Path, "::")
	if e.Reason == LookupPrivate {
		return fmt.Sprintf("module `%s` is private (in `%s`)", seg, full)
	}
	return fmt.Sprintf("module `%s` not found (in `%s`)", seg, full)
}

// Lookup resolves a qualified module path from outside the tree: every
// module on the path must be public. When the first segment names a bound
// external library, lookup continues inside that library under the same rule.
func (t *Tree) Lookup(path []string) (*Node, error) {
	if len(path) > 0 {
		if lib, ok := t.Externs[path[0]]; ok {
			n, err := lib.Root.descend(path[1:], true)
			if err != nil {
				var le *LookupError
				if errors.As(err, &le) {
					le.Path = path
					le.Segment++
				}
				return nil, err
			}
			return n, nil
		}
	}
	return t.Root.descend(path, true)
}

// LookupInternal resolves a path inside the own tree ignoring visibility.
// External libraries are not consulted.
func (t *Tree) LookupInternal(path []string) (*Node, error) {
	return t.Root.descend(path, false)
}

func (n *Node) descend(path []string, needPublic bool) (*Node, error) {
	cur := n
	for i, seg := range path {
		child, ok := cur.Child(seg)
		if !ok {
			return nil, &LookupError{Path: path, Segment: i, Reason: LookupNotFound}
		}
		if needPublic && !child.Public {
			return nil, &LookupError{Path: path, Segment: i, Reason: LookupPrivate}
		}
		cur = child.Node
	}
	return cur, nil
}
