package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <entry.lm>...",
	Short: "Resolve one or more programs without running a backend",
	Long: `Check resolves every entry file independently and reports its diagnostics.
Entries are checked concurrently; output keeps the order of the arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("lib", false, "treat entries as libraries")
	checkCmd.Flags().StringArray("extern", nil, "bind an external library as name=path (repeatable)")
	checkCmd.Flags().Bool("no-std", false, "do not load the std library")
	checkCmd.Flags().String("sysroot", "", "directory holding core/lib.lm and std/lib.lm")
	checkCmd.Flags().IntP("jobs", "j", 0, "entries checked at once (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := readBuildOptions(cmd, out)
	if err != nil {
		return reportEarly(cmd, err, out)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	results, err := driver.CheckAll(cmd.Context(), args, opts, jobs)
	if err != nil {
		return err
	}
	if out.format == "json" {
		if err := renderMerged(cmd, results, out); err != nil {
			return err
		}
	}
	var firstErr error
	for _, r := range results {
		if r.Result != nil && out.format != "json" {
			if err := renderDiagnostics(cmd.ErrOrStderr(), r.Result.Bag, r.Result.FileSet, out); err != nil {
				return err
			}
			renderTimings(cmd.ErrOrStderr(), r.Result.Timings, out)
		}
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
		if !out.quiet {
			status := "ok"
			if r.Err != nil {
				status = "failed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Entry, status)
		}
	}
	if firstErr != nil {
		dumpRing(cmd)
	}
	return firstErr
}

// renderMerged prints one JSON document for all entries. Diagnostics from
// shared libraries appear once.
func renderMerged(cmd *cobra.Command, results []driver.CheckResult, out outputOptions) error {
	merged := diag.NewBag(0)
	var fs *source.FileSet
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if fs == nil {
			fs = r.Result.FileSet
		}
		merged.Merge(r.Result.Bag)
	}
	merged.Sort()
	merged.Dedup()
	return renderDiagnostics(cmd.ErrOrStderr(), merged, fs, out)
}
