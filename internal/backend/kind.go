// Package backend runs the consumer selected for a build once the module
// tree is complete. The set of backends is closed.
package backend

import (
	"fmt"
	"strings"
)

// Kind selects a backend.
type Kind uint8

const (
	// Interpret would execute the program; execution is not implemented,
	// only the entry-point requirements are enforced.
	Interpret Kind = iota
	// AST prints the module tree.
	AST
	// Msgpack writes the serialized module tree to the output file.
	Msgpack
)

var kindNames = [...]string{
	Interpret: "interpret",
	AST:       "ast",
	Msgpack:   "msgpack",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds lists every backend name in declaration order.
func Kinds() []string {
	return append([]string(nil), kindNames[:]...)
}

// ParseKind resolves a backend by name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown backend %q (want one of %s)", s, strings.Join(kindNames[:], ", "))
}

// OutRequired reports whether the backend needs an output path.
func (k Kind) OutRequired() bool {
	switch k {
	case Interpret, AST:
		return false
	default:
		return true
	}
}
