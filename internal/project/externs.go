package project

import (
	"errors"
	"fmt"
	"strings"
)

// ExternBinding binds an external library name to its root file.
type ExternBinding struct {
	Name string
	Path string
}

func (b ExternBinding) String() string { return b.Name + "=" + b.Path }

var ErrInvalidBinding = errors.New("invalid extern binding")

// ParseExternBinding parses `name=path`. Only the first `=` separates;
// the path may itself contain `=`.
func ParseExternBinding(s string) (ExternBinding, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok {
		return ExternBinding{}, fmt.Errorf("%w %q: want name=path", ErrInvalidBinding, s)
	}
	name = strings.TrimSpace(name)
	if !IsValidModuleIdent(name) {
		return ExternBinding{}, fmt.Errorf("%w %q: bad library name %q", ErrInvalidBinding, s, name)
	}
	if path == "" {
		return ExternBinding{}, fmt.Errorf("%w %q: empty path", ErrInvalidBinding, s)
	}
	return ExternBinding{Name: name, Path: path}, nil
}

// MergeExterns overlays override on base by name. The result keeps base
// order, with new names from override appended in their order.
func MergeExterns(base, override []ExternBinding) []ExternBinding {
	idx := make(map[string]int, len(base)+len(override))
	out := make([]ExternBinding, 0, len(base)+len(override))
	for _, b := range append(append([]ExternBinding{}, base...), override...) {
		if i, ok := idx[b.Name]; ok {
			out[i] = b
			continue
		}
		idx[b.Name] = len(out)
		out = append(out, b)
	}
	return out
}
