// Package decl collects a module's custom type declarations into the
// type/tag namespace that canonicalization resolves constructors against.
// It runs before the expression walk so that every constructor of the
// module is visible regardless of declaration order.
package decl

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/symbols"
)

// Collect registers every type and constructor of the module in a fresh
// tag table. Duplicate names are reported and the first declaration wins.
func Collect(b *ast.Builder, store *symbols.Store, reporter diag.Reporter) *symbols.TagTable {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	home := store.Module(b.Module.Name)
	tags := symbols.NewTagTable()

	typeSpans := make(map[string]source.Span)
	tagSpans := make(map[string]source.Span)

	for _, decl := range b.Module.Types {
		typeName := b.Name(decl.Name)
		if prev, dup := typeSpans[typeName]; dup {
			diag.ReportError(reporter, diag.CanDuplicateTopLevel, decl.NameSpan,
				fmt.Sprintf("the type `%s` is declared more than once", typeName)).
				WithNote(prev, "first declared here").
				Emit()
			continue
		}
		typeSpans[typeName] = decl.NameSpan

		typeSym := store.Fresh(home, typeName)
		tags.AddType(typeName, typeSym)

		for _, ctor := range decl.Ctors {
			ctorName := b.Name(ctor.Name)
			if prev, dup := tagSpans[ctorName]; dup {
				diag.ReportError(reporter, diag.CanDuplicateTopLevel, ctor.Span,
					fmt.Sprintf("the constructor `%s` is declared more than once", ctorName)).
					WithNote(prev, "first declared here").
					Emit()
				continue
			}
			tagSpans[ctorName] = ctor.Span

			tags.AddTag(symbols.TagInfo{
				Name:     ctorName,
				Symbol:   store.Fresh(home, ctorName),
				Type:     typeSym,
				TypeName: typeName,
				Arity:    len(ctor.Args),
			})
		}
	}
	return tags
}
