package main

import (
	"github.com/spf13/cobra"

	"lumen/internal/backend"
	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <entry.lm>",
	Short: "Resolve a program and run a backend on it",
	Long: `Build parses the entry file, resolves every declared module and the bound
libraries, and hands the module tree to the selected backend.

Backends: interpret (checks the entry point), ast (prints the tree),
msgpack (writes the serialized tree, needs --out).`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("lib", false, "build a library (no entry point)")
	buildCmd.Flags().String("backend", backend.Interpret.String(), "backend to use (interpret|ast|msgpack)")
	buildCmd.Flags().StringP("out", "o", "", "output file")
	buildCmd.Flags().StringArray("extern", nil, "bind an external library as name=path (repeatable)")
	buildCmd.Flags().Bool("no-std", false, "do not load the std library")
	buildCmd.Flags().String("sysroot", "", "directory holding core/lib.lm and std/lib.lm")
}

// readBuildOptions collects the flags shared by build and check.
func readBuildOptions(cmd *cobra.Command, out outputOptions) (driver.BuildOptions, error) {
	opts := driver.BuildOptions{
		MaxDiagnostics: out.maxDiagnostics,
		EnableTimings:  out.timings,
		Stdout:         cmd.OutOrStdout(),
	}
	var err error
	flags := cmd.Flags()
	if opts.Lib, err = flags.GetBool("lib"); err != nil {
		return opts, err
	}
	if opts.NoStd, err = flags.GetBool("no-std"); err != nil {
		return opts, err
	}
	if opts.Sysroot, err = flags.GetString("sysroot"); err != nil {
		return opts, err
	}
	raw, err := flags.GetStringArray("extern")
	if err != nil {
		return opts, err
	}
	for _, s := range raw {
		b, err := project.ParseExternBinding(s)
		if err != nil {
			return opts, diag.Raise(nil, diag.NewNonLocated(diag.InvalidExternBinding, err.Error()))
		}
		opts.Externs = append(opts.Externs, b)
	}
	return opts, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := readBuildOptions(cmd, out)
	if err != nil {
		return reportEarly(cmd, err, out)
	}
	opts.Entry = args[0]
	name, err := cmd.Flags().GetString("backend")
	if err != nil {
		return err
	}
	if opts.Backend, err = backend.ParseKind(name); err != nil {
		return err
	}
	if opts.Out, err = cmd.Flags().GetString("out"); err != nil {
		return err
	}

	res, buildErr := driver.Build(cmd.Context(), opts)
	if err := renderDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, out); err != nil {
		return err
	}
	renderTimings(cmd.ErrOrStderr(), res.Timings, out)
	if buildErr != nil {
		dumpRing(cmd)
	}
	return buildErr
}

// reportEarly renders a diagnostic error raised before any file was read.
func reportEarly(cmd *cobra.Command, err error, out outputOptions) error {
	de, ok := err.(*diag.Error)
	if !ok {
		return err
	}
	bag := diag.NewBag(0)
	bag.Add(de.Diagnostic)
	if rerr := renderDiagnostics(cmd.ErrOrStderr(), bag, nil, out); rerr != nil {
		return rerr
	}
	return err
}
