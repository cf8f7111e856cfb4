package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/diagfmt"
	"lumen/internal/grammar"
	"lumen/internal/parser"
	"lumen/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.lm>",
	Short: "Parse a single file and print it",
	Long: `Parse runs the grammar and the AST builders on one file without resolving
its modules. --format tree prints the raw parse tree, ast the built items.
With --expr the file is parsed as a single expression.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "ast", "output format (tree|ast)")
	parseCmd.Flags().Bool("expr", false, "parse the file as one expression")
}

func runParse(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "tree" && format != "ast" {
		return fmt.Errorf("unsupported format %q (must be tree or ast)", format)
	}
	exprMode, err := cmd.Flags().GetBool("expr")
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	file, err := fs.Load(source.PathRef(args[0]))
	if err != nil {
		return diag.Raise(nil, diag.NewNonLocated(diag.IOLoadFileError, err.Error()))
	}
	bag := diag.NewBag(out.maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	w := cmd.OutOrStdout()

	start := grammar.RuleModule
	if exprMode {
		start = grammar.RuleExpr
	}
	if format == "tree" {
		node, err := grammar.Parse(file, start)
		if err != nil {
			var se *grammar.SyntaxError
			if errors.As(err, &se) {
				err = diag.Raise(reporter, diag.New(diag.SyntaxError, se.Span, se.Message()))
			}
			_ = renderDiagnostics(cmd.ErrOrStderr(), bag, fs, out)
			return err
		}
		_, err = fmt.Fprint(w, grammar.Dump(file, node))
		return err
	}

	if exprMode {
		e, err := parser.ParseExpr(file, reporter)
		if err != nil {
			_ = renderDiagnostics(cmd.ErrOrStderr(), bag, fs, out)
			return err
		}
		return diagfmt.ExprTree(w, e)
	}
	parsed, err := parser.ParseFile(file, reporter)
	if err != nil {
		_ = renderDiagnostics(cmd.ErrOrStderr(), bag, fs, out)
		return err
	}
	return diagfmt.FileTree(w, parsed, fs, diagfmt.PathModeAuto)
}
