package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"lumen/internal/diag"
	"lumen/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	gutter *color.Color
	note   *color.Color
	bold   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		gutter: color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgGreen),
		bold:   color.New(color.Bold),
	}
	all := []*color.Color{p.gutter, p.note, p.bold}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	error[3]: expected `)`, found `{`
//	  --> src/main.lm:1:12
//	   |
//	 1 | fn broken( { }
//	   |            ^
//	   = note: ...
//
// Диагностики печатаются в порядке bag.Items().
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := p.sev[d.Severity]
	if sev == nil {
		sev = p.sev[diag.SevError]
	}
	fmt.Fprintf(w, "%s%s\n", sev.Sprint(d.Code.ID()), p.bold.Sprint(": "+d.Message))
	if !d.Located() {
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s\n", p.gutter.Sprint("="), p.note.Sprint("note: "+n.Msg))
			}
		}
		return
	}

	gutterWidth := len(strconv.FormatUint(uint64(d.Primary.End.Line), 10))
	pad := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"),
		displayPath(d.Primary.File, fs, opts.PathMode), d.Primary.Start.Line, d.Primary.Start.Col)

	var file *source.File
	if fs != nil {
		file, _ = fs.Get(d.Primary.File)
	}
	if file != nil {
		bar := p.gutter.Sprint("|")
		fmt.Fprintf(w, "%s %s\n", pad, bar)
		first := d.Primary.Start.Line
		if ctx := uint32(opts.Context); first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		for line := first; line <= d.Primary.Start.Line; line++ {
			num := fmt.Sprintf("%*d", gutterWidth, line)
			fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), bar, file.GetLine(line))
		}
		text := file.GetLine(d.Primary.Start.Line)
		fmt.Fprintf(w, "%s %s %s\n", pad, bar, sev.Sprint(underline(text, d.Primary)))
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			msg := "note: " + n.Msg
			if !n.Span.IsZero() {
				msg += fmt.Sprintf(" (%s:%d:%d)", displayPath(n.Span.File, fs, opts.PathMode), n.Span.Start.Line, n.Span.Start.Col)
			}
			fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("="), p.note.Sprint(msg))
		}
	}
}

// underline builds the caret line under text for sp. Tabs before the span
// are kept so the carets line up in a terminal.
func underline(text string, sp source.Span) string {
	var b strings.Builder
	col := uint32(1)
	for _, r := range text {
		if col >= sp.Start.Col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		col++
	}
	width := 1
	lineRunes := uint32(utf8.RuneCountInString(text))
	switch {
	case sp.End.Line == sp.Start.Line && sp.End.Col > sp.Start.Col:
		width = int(sp.End.Col - sp.Start.Col)
	case sp.End.Line > sp.Start.Line && lineRunes+1 > sp.Start.Col:
		width = int(lineRunes + 1 - sp.Start.Col)
	}
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
