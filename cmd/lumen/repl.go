package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/module"
	"lumen/internal/project"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read lines and print their syntax trees",
	Long: `Each entry is parsed as an expression, or as items when it starts with
fn, pub, mod, trait or impl. Declared modules are looked up in the project
root when the current directory is inside a project, otherwise in the current
directory. Unbalanced braces continue on the next line.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("sysroot", "", "directory holding core/lib.lm and std/lib.lm")
	replCmd.Flags().Bool("no-std", false, "do not load the std library")
	replCmd.Flags().String("history", "", "history file (default ~/.lumen_history)")
}

const (
	promptFirst    = "lumen> "
	promptContinue = "  ...> "
)

func runRepl(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg := module.Config{}
	sysroot, err := cmd.Flags().GetString("sysroot")
	if err != nil {
		return err
	}
	if sysroot != "" {
		cfg.Core, cfg.Std = module.DefaultSysroot(sysroot)
	}
	if cfg.NoStd, err = cmd.Flags().GetBool("no-std"); err != nil {
		return err
	}
	session := driver.NewSession(cmd.OutOrStdout(), replDir(wd), cfg, out.maxDiagnostics)

	if !isTerminal(os.Stdin) {
		return replPlain(cmd, session, out)
	}

	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()
	line.SetCtrlCAborts(true)
	historyPath, err := historyFile(cmd)
	if err != nil {
		return err
	}
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var entry strings.Builder
	for {
		prompt := promptFirst
		if entry.Len() > 0 {
			prompt = promptContinue
		}
		text, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			entry.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		if err != nil {
			return err
		}
		if entry.Len() > 0 {
			entry.WriteByte('\n')
		}
		entry.WriteString(text)
		if !driver.Complete(entry.String()) {
			continue
		}
		src := entry.String()
		entry.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}
		line.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		evalEntry(cmd, session, src, out)
	}
}

// replPlain reads stdin line by line when it is not a terminal.
func replPlain(cmd *cobra.Command, session *driver.Session, out outputOptions) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}
	var entry strings.Builder
	for _, text := range strings.Split(string(data), "\n") {
		if entry.Len() > 0 {
			entry.WriteByte('\n')
		}
		entry.WriteString(text)
		if !driver.Complete(entry.String()) {
			continue
		}
		evalEntry(cmd, session, entry.String(), out)
		entry.Reset()
	}
	if strings.TrimSpace(entry.String()) != "" {
		evalEntry(cmd, session, entry.String(), out)
	}
	return nil
}

// evalEntry runs one entry; errors are printed and the session goes on.
func evalEntry(cmd *cobra.Command, session *driver.Session, src string, out outputOptions) {
	err := session.Eval(cmd.Context(), src)
	bag := session.TakeDiagnostics()
	_ = renderDiagnostics(cmd.ErrOrStderr(), bag, session.FileSet(), out)
	var de *diag.Error
	if err != nil && !errors.As(err, &de) {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}
}

func historyFile(cmd *cobra.Command) (string, error) {
	p, err := cmd.Flags().GetString("history")
	if err != nil || p != "" {
		return p, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lumen_history"), nil
}

// replDir is the directory REPL modules resolve against.
func replDir(wd string) string {
	if root, ok, err := project.FindProjectRoot(wd); err == nil && ok {
		return root
	}
	return wd
}
