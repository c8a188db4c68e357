package ast

import (
	"tern/internal/source"
)

// Hints provide optional capacity suggestions for the syntax arenas.
type Hints struct{ Exprs, Pats, Defs, Types uint }

// Builder owns every arena of one module's syntax tree plus the string
// interner its nodes reference.
type Builder struct {
	Module  Module
	Exprs   *Exprs
	Pats    *Pats
	Defs    *Defs
	Types   *Types
	Strings *source.Interner
}

// NewBuilder creates an empty builder. If strings is nil a fresh interner is
// allocated.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Exprs:   NewExprs(hints.Exprs),
		Pats:    NewPats(hints.Pats),
		Defs:    NewDefs(hints.Defs),
		Types:   NewTypes(hints.Types),
		Strings: strings,
	}
}

// Intern is shorthand for interning a surface name.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// Name resolves an interned surface name back to its text.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}

// PushDef appends a top-level definition to the module in source order.
func (b *Builder) PushDef(id DefID) {
	b.Module.Defs = append(b.Module.Defs, id)
}
