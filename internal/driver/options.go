package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lumen/internal/backend"
	"lumen/internal/diag"
	"lumen/internal/diagfmt"
	"lumen/internal/module"
	"lumen/internal/project"
)

// BuildOptions is everything a build needs besides the context.
// Zero values mean "take it from the manifest, then the environment".
type BuildOptions struct {
	Entry   string
	Lib     bool
	Backend backend.Kind
	Out     string
	// Externs from the command line; they override manifest bindings.
	Externs []project.ExternBinding
	NoStd   bool
	Sysroot string

	MaxDiagnostics int
	EnableTimings  bool
	Stdout         io.Writer
	PathMode       diagfmt.PathMode
	// Reporter, when set, sees each diagnostic as it is reported, before
	// the build returns.
	Reporter diag.Reporter
}

// Settings is the effective configuration after merging the manifest.
type Settings struct {
	Entry    string
	Root     string // база для относительных путей
	Manifest *project.Manifest
	Lib      bool
	Modules  module.Config
}

// resolveSettings finds lumen.toml above the entry and merges it with opts.
// Command-line values win over the manifest, the manifest over $LUMEN_SYSROOT.
func resolveSettings(opts BuildOptions) (*Settings, error) {
	entry, err := filepath.Abs(opts.Entry)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", opts.Entry, err)
	}
	s := &Settings{Entry: entry, Root: filepath.Dir(entry), Lib: opts.Lib}

	path, ok, err := project.FindManifest(filepath.Dir(entry))
	if err != nil {
		return nil, err
	}
	var manifestExterns []project.ExternBinding
	if ok {
		m, err := project.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		s.Manifest = m
		s.Root = m.Dir()
		s.Lib = s.Lib || m.Package.Lib
		s.Modules.NoStd = m.Sysroot.NoStd
		s.Modules.Core, s.Modules.Std = m.CorePath(), m.StdPath()
		manifestExterns = m.Externs()
	}
	s.Modules.NoStd = s.Modules.NoStd || opts.NoStd
	s.Modules.Externs = project.MergeExterns(manifestExterns, opts.Externs)

	switch {
	case opts.Sysroot != "":
		s.Modules.Core, s.Modules.Std = module.DefaultSysroot(opts.Sysroot)
	case s.Modules.Core == "" && s.Modules.Std == "":
		// sysroot из окружения необязателен: отсутствующие файлы просто не грузим
		core, std := module.SysrootFromEnv()
		if fileExists(core) {
			s.Modules.Core = core
		}
		if fileExists(std) {
			s.Modules.Std = std
		}
	}
	return s, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
