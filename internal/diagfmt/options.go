// Package diagfmt renders collected problems for humans (pretty, with
// source context and carets) and machines (JSON).
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prefers paths relative to the file set's base dir.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeBasename
)

// PrettyOpts configures pretty-printing.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	// IncludePositions adds line/col next to byte offsets.
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the output, not the bag. 0 means everything.
	Max          int
	IncludeNotes bool
}
