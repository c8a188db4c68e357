// Package diag defines the problem model shared by every canonicalization
// phase.
//
// Canonicalization is best-effort: a problem is a value appended to a Bag,
// never a Go error and never control flow. Producers emit through a Reporter
// so they stay decoupled from storage; the driver owns one Bag per module and
// hands it to rendering (internal/diagfmt) once the pass completes.
//
// Diagnostic is the central record: Severity, a stable numeric Code, a short
// message, the primary source.Span, and optional Notes pointing at related
// spans (previous binding, cycle members, and so on). Notes are the
// structured payload for problems that involve several sites; keep each note
// adding context rather than repeating the message.
//
// The package performs no formatting and no IO.
package diag
