package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new lumen project",
	Long: `Initialize a new lumen project by writing lumen.toml and a main.lm entry
point. Without an argument the current directory is used; a missing directory
is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("lib", false, "create a library package (lib.lm, no main)")
}

const defaultProjectName = "lumen_project"

func runInit(cmd *cobra.Command, args []string) error {
	lib, err := cmd.Flags().GetBool("lib")
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	m := &project.Manifest{Package: project.PackageSection{Name: projectName(target), Lib: lib}}
	if err := project.WriteManifest(manifestPath, m); err != nil {
		return err
	}

	entry, body := "main"+project.Ext, defaultMain
	if lib {
		entry, body = "lib"+project.Ext, defaultLib
	}
	entryPath := filepath.Join(target, entry)
	created := false
	if _, err := os.Stat(entryPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(entryPath, []byte(body), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry, err)
		}
		created = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized lumen project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if created {
		fmt.Fprintf(out, "  - %s\n", entry)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", entry)
	}
	return nil
}

// projectName derives a package name from the directory basename, replacing
// characters that are not valid in a module name.
func projectName(dir string) string {
	base := strings.TrimSpace(filepath.Base(dir))
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r == ' ' {
			return '_'
		}
		return r
	}, base)
	if !project.IsValidModuleIdent(name) {
		return defaultProjectName
	}
	return name
}

const defaultMain = `// Entry point of the package.
fn main() {
    0
}
`

const defaultLib = `// Library root. Declare submodules with ` + "`pub mod name;`" + `.
pub fn id<T>(x: T) -> T {
    x
}
`
