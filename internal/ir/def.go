package ir

import (
	"tern/internal/source"
	"tern/internal/symbols"
)

// TypeAnnotKind enumerates annotation syntax shapes carried through to
// inference. Annotations are structural only; canonicalization never checks
// them.
type TypeAnnotKind uint8

const (
	AnnotName TypeAnnotKind = iota
	AnnotVar
	AnnotFn
	AnnotRecord
)

// TypeAnnotField is one field of a record annotation.
type TypeAnnotField struct {
	Name string
	Type *TypeAnnot
}

// TypeAnnot is one node of a carried type annotation.
type TypeAnnot struct {
	Kind   TypeAnnotKind
	Span   source.Span
	Module string // qualified type names only
	Name   string // AnnotName and AnnotVar
	Args   []*TypeAnnot
	Params []*TypeAnnot // AnnotFn
	Result *TypeAnnot   // AnnotFn
	Fields []TypeAnnotField
}

// Annotation is a def's optional type annotation.
type Annotation struct {
	Span source.Span
	Type *TypeAnnot
}

// Def is one canonical definition: pattern, body, optional annotation.
type Def struct {
	Pattern    *Pattern
	Body       *Expr
	Annotation *Annotation
	Span       source.Span
}

// GroupKind classifies a definition group.
type GroupKind uint8

const (
	// GroupNonRecursive is a single def that does not reference itself.
	GroupNonRecursive GroupKind = iota
	// GroupSelfRecursive is a single def referencing its own symbol.
	GroupSelfRecursive
	// GroupMutual is a strongly connected set of two or more defs.
	GroupMutual
)

// String returns a human-readable name for the group kind.
func (k GroupKind) String() string {
	switch k {
	case GroupNonRecursive:
		return "NonRecursive"
	case GroupSelfRecursive:
		return "SelfRecursive"
	case GroupMutual:
		return "Mutual"
	default:
		return "Unknown"
	}
}

// DefGroup is the unit of type inference: one strongly connected component
// of the definition graph. Illegal marks value-level cycles; the group is
// still emitted so later stages can proceed best-effort.
type DefGroup struct {
	Kind    GroupKind
	Defs    []*Def
	Illegal bool
}

// Symbols collects every symbol the group's patterns introduce.
func (g *DefGroup) Symbols() []symbols.Symbol {
	var out []symbols.Symbol
	for _, def := range g.Defs {
		out = append(out, def.Pattern.Bindings()...)
	}
	return out
}
