package decl

import (
	"testing"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/symbols"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestCollectRegistersTypesAndConstructors(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	b.Module.Name = "Main"

	argType := b.Types.NewVar(sp(20, 21), b.Intern("a"))
	b.Module.Types = []ast.TypeDecl{{
		Name:     b.Intern("Maybe"),
		NameSpan: sp(6, 11),
		Vars:     []source.StringID{b.Intern("a")},
		Ctors: []ast.Ctor{
			{Name: b.Intern("Just"), Span: sp(14, 20), Args: []ast.TypeID{argType}},
			{Name: b.Intern("Nothing"), Span: sp(23, 30)},
		},
		Span: sp(1, 30),
	}}

	store := symbols.NewStore()
	bag := diag.NewBag(10)
	tags := Collect(b, store, diag.BagReporter{Bag: bag})

	if bag.Len() != 0 {
		t.Fatalf("unexpected problems: %v", bag.Items())
	}
	if _, ok := tags.LookupType("Maybe"); !ok {
		t.Fatalf("Maybe type not registered")
	}
	just, ok := tags.Lookup("Just")
	if !ok || just.Arity != 1 || just.TypeName != "Maybe" {
		t.Fatalf("Just = %+v ok=%v", just, ok)
	}
	nothing, ok := tags.Lookup("Nothing")
	if !ok || nothing.Arity != 0 {
		t.Fatalf("Nothing = %+v ok=%v", nothing, ok)
	}
	if sibs := tags.Siblings("Just"); len(sibs) != 2 {
		t.Fatalf("Siblings(Just) = %v", sibs)
	}
	if just.Symbol == nothing.Symbol {
		t.Fatalf("constructors must get distinct symbols")
	}
}

func TestCollectReportsDuplicates(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	b.Module.Name = "Main"

	b.Module.Types = []ast.TypeDecl{
		{
			Name:     b.Intern("Color"),
			NameSpan: sp(6, 11),
			Ctors:    []ast.Ctor{{Name: b.Intern("Red"), Span: sp(14, 17)}},
			Span:     sp(1, 17),
		},
		{
			Name:     b.Intern("Color"),
			NameSpan: sp(26, 31),
			Ctors:    []ast.Ctor{{Name: b.Intern("Blue"), Span: sp(34, 38)}},
			Span:     sp(21, 38),
		},
		{
			Name:     b.Intern("Paint"),
			NameSpan: sp(46, 51),
			Ctors:    []ast.Ctor{{Name: b.Intern("Red"), Span: sp(54, 57)}},
			Span:     sp(41, 57),
		},
	}

	store := symbols.NewStore()
	bag := diag.NewBag(10)
	tags := Collect(b, store, diag.BagReporter{Bag: bag})

	if got := bag.CountCode(diag.CanDuplicateTopLevel); got != 2 {
		t.Fatalf("CanDuplicateTopLevel count = %d, want 2: %v", got, bag.Items())
	}
	// First declarations win.
	red, ok := tags.Lookup("Red")
	if !ok || red.TypeName != "Color" {
		t.Fatalf("Red = %+v ok=%v; want the Color constructor", red, ok)
	}
	if _, ok := tags.Lookup("Blue"); ok {
		t.Fatalf("constructors of a duplicate type declaration must be skipped")
	}
}
