package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded lumen.toml.
type Manifest struct {
	// Path is the manifest location; relative paths inside it resolve against its directory.
	Path    string            `toml:"-"`
	Package PackageSection    `toml:"package"`
	Extern  map[string]string `toml:"extern,omitempty"`
	Sysroot SysrootSection    `toml:"sysroot"`
}

type PackageSection struct {
	Name string `toml:"name"`
	Lib  bool   `toml:"lib"`
}

type SysrootSection struct {
	Core  string `toml:"core,omitempty"`
	Std   string `toml:"std,omitempty"`
	NoStd bool   `toml:"no_std,omitempty"`
}

// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
var ErrPackageSectionMissing = errors.New("missing [package]")

// LoadManifest parses lumen.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if m.Package.Name != "" && !IsValidModuleIdent(m.Package.Name) {
		return nil, fmt.Errorf("%s: invalid package name %q", path, m.Package.Name)
	}
	for name := range m.Extern {
		if !IsValidModuleIdent(name) {
			return nil, fmt.Errorf("%s: invalid extern name %q", path, name)
		}
	}
	return &m, nil
}

// WriteManifest encodes m into path, creating or truncating the file.
func WriteManifest(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := toml.NewEncoder(f)
	enc.Indent = ""
	if err := enc.Encode(m); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Dir returns the manifest's directory.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// resolve makes p absolute relative to the manifest directory.
func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(p))
}

// Externs returns the [extern] bindings sorted by name with resolved paths.
func (m *Manifest) Externs() []ExternBinding {
	out := make([]ExternBinding, 0, len(m.Extern))
	for name, p := range m.Extern {
		out = append(out, ExternBinding{Name: name, Path: m.resolve(p)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CorePath and StdPath return the resolved sysroot overrides, or "".
func (m *Manifest) CorePath() string { return m.resolve(m.Sysroot.Core) }
func (m *Manifest) StdPath() string  { return m.resolve(m.Sysroot.Std) }
