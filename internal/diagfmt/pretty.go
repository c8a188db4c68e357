package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tern/internal/diag"
	"tern/internal/source"
)

// Pretty renders the bag human-readably, one block per problem:
//
//	path:line:col: ERROR[TRN3001]: nothing is named `foo` in this scope
//	  12 | plot = foo 1
//	     |        ^^^
//	  note: first bound here (path:3:5)
//
// Callers are expected to bag.Sort() first. Spans whose file is not in the
// file set degrade to byte offsets.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, &d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	head := sevPaint(d.Severity, opts.Color)
	fmt.Fprintf(w, "%s: %s: %s\n",
		formatLoc(d.Primary, fs, opts.PathMode),
		head.Sprintf("%s[%s]", d.Severity.String(), d.Code.ID()),
		d.Message)

	writeContext(w, d.Primary, fs, head)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note: %s (%s)\n", note.Msg, formatLoc(note.Span, fs, opts.PathMode))
		}
	}
}

// writeContext prints the offending source line with a caret underline.
// Nothing is printed when the file content is unavailable.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet, paint *color.Color) {
	if fs == nil {
		return
	}
	file := fs.Get(span.File)
	if file == nil || len(file.Content) == 0 {
		return
	}
	start, _ := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}

	gutter := fmt.Sprintf("%4d", start.Line)
	fmt.Fprintf(w, "%s | %s\n", gutter, line)

	// Caret columns account for wide runes in the prefix.
	prefixEnd := int(start.Col) - 1
	if prefixEnd > len(line) {
		prefixEnd = len(line)
	}
	pad := runewidth.StringWidth(line[:prefixEnd])

	covered := int(span.Len())
	if prefixEnd+covered > len(line) {
		covered = len(line) - prefixEnd
	}
	width := 1
	if covered > 0 {
		width = runewidth.StringWidth(line[prefixEnd : prefixEnd+covered])
		if width < 1 {
			width = 1
		}
	}
	fmt.Fprintf(w, "%s | %s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", pad),
		paint.Sprint(strings.Repeat("^", width)))
}

func formatLoc(span source.Span, fs *source.FileSet, mode PathMode) string {
	if fs == nil {
		return fmt.Sprintf("<input>:+%d", span.Start)
	}
	file := fs.Get(span.File)
	if file == nil {
		return fmt.Sprintf("<input>:+%d", span.Start)
	}

	var path string
	switch mode {
	case PathModeAbsolute:
		path = file.Path
	case PathModeBasename:
		path = filepath.Base(file.Path)
	default:
		path = file.DisplayPath(fs.BaseDir())
	}

	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func sevPaint(sev diag.Severity, enabled bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
