package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/diagfmt"
	"lumen/internal/observ"
	"lumen/internal/source"
)

type outputOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	format         string
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts outputOptions
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, err
	}
	switch strings.ToLower(colorFlag) {
	case "on", "always":
		opts.color = true
	case "off", "never":
		opts.color = false
	case "auto":
		opts.color = isTerminal(os.Stderr)
	default:
		return opts, fmt.Errorf("invalid --color %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !opts.color
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, err
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	if opts.format, err = flags.GetString("diag-format"); err != nil {
		return opts, err
	}
	switch opts.format {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("invalid --diag-format %q (expected pretty|short|json)", opts.format)
	}
	return opts, nil
}

// renderDiagnostics prints bag to w in the chosen format. With --quiet only
// errors are shown.
func renderDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts outputOptions) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	shown := bag
	if opts.quiet {
		shown = diag.NewBag(0)
		for _, d := range bag.Items() {
			if d.Severity.Aborts() {
				shown.Add(d)
			}
		}
		if shown.Len() == 0 {
			return nil
		}
	}
	switch opts.format {
	case "json":
		return diagfmt.JSON(w, shown, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: diagfmt.PathModeAuto})
	case "short":
		base := ""
		if fs != nil {
			base = fs.BaseDir()
		}
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(shown.Items(), base, true))
		return err
	default:
		diagfmt.Pretty(w, shown, fs, diagfmt.PrettyOpts{Color: opts.color, ShowNotes: true, PathMode: diagfmt.PathModeAuto})
		return nil
	}
}

func renderTimings(w io.Writer, timer *observ.Timer, opts outputOptions) {
	if timer == nil || !opts.timings {
		return
	}
	fmt.Fprint(w, timer.Summary())
}
