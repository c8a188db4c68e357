package ast

import (
	"tern/internal/source"
)

// Def is one surface value/function definition: `pattern = expr`. Top-level
// defs almost always bind a single name; let-level defs may destructure.
type Def struct {
	Pattern PatID
	Body    ExprID
	Span    source.Span
}

// Defs manages allocation of definitions.
type Defs struct {
	Arena *Arena[Def]
}

// NewDefs creates the def arena preallocated to capHint.
func NewDefs(capHint uint) *Defs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Defs{Arena: NewArena[Def](capHint)}
}

// New allocates a definition.
func (d *Defs) New(pattern PatID, body ExprID, span source.Span) DefID {
	return DefID(d.Arena.Allocate(Def{Pattern: pattern, Body: body, Span: span}))
}

// Get returns the definition with the given ID.
func (d *Defs) Get(id DefID) *Def {
	return d.Arena.Get(uint32(id))
}

// ExposedItem is one entry of a module's exposing list. ExposeTags is set
// for `Type(..)` entries, which also expose every constructor of the type.
type ExposedItem struct {
	Name       source.StringID
	Span       source.Span
	ExposeTags bool
}

// Import declares a dependency on another module.
type Import struct {
	Module   source.StringID
	Alias    source.StringID // NoStringID when unaliased
	Exposing []ExposedItem   // names pulled into the unqualified scope
	Span     source.Span
}

// Ctor is one constructor of a custom type declaration.
type Ctor struct {
	Name source.StringID
	Span source.Span
	Args []TypeID
}

// TypeDecl is a custom type declaration: `type Name a b = Ctor T | ...`.
type TypeDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Vars     []source.StringID
	Ctors    []Ctor
	Span     source.Span
}

// Annotation is a top-level `name : Type` line, paired by name with the def
// it annotates during canonicalization.
type Annotation struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Span     source.Span
}

// Module is the parsed syntax tree of one module: the input contract of
// canonicalization. The tree is immutable once the parser (or the codec)
// hands it over.
type Module struct {
	Name        string
	Span        source.Span
	Exposing    []ExposedItem
	Imports     []Import
	Types       []TypeDecl
	Annotations []Annotation
	Defs        []DefID // source order
}
