package module

import (
	"os"
	"path/filepath"

	"lumen/internal/project"
)

const (
	CoreLib = "core"
	StdLib  = "std"
)

// Config carries the fixed library roots for one build. Empty Core/Std
// means the library is not loaded.
type Config struct {
	Core    string
	Std     string
	NoStd   bool
	Externs []project.ExternBinding
}

// SysrootEnv names the environment variable pointing at the sysroot directory.
const SysrootEnv = "LUMEN_SYSROOT"

// DefaultSysroot returns core/std root files under dir.
func DefaultSysroot(dir string) (core, std string) {
	if dir == "" {
		return "", ""
	}
	return filepath.Join(dir, CoreLib, "lib"+project.Ext), filepath.Join(dir, StdLib, "lib"+project.Ext)
}

// SysrootFromEnv reads $LUMEN_SYSROOT.
func SysrootFromEnv() (core, std string) {
	return DefaultSysroot(os.Getenv(SysrootEnv))
}
