package can

import (
	"bytes"
	"strings"
	"testing"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/exhaust"
	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func newModule(name string) *ast.Builder {
	b := ast.NewBuilder(ast.Hints{}, nil)
	b.Module.Name = name
	return b
}

func intLit(b *ast.Builder, v int64, at uint32) ast.ExprID {
	return b.Exprs.NewLit(sp(at, at+1), ast.Lit{Kind: ast.LitInt, Text: b.Intern("0"), Int: v})
}

func varRef(b *ast.Builder, name string, at uint32) ast.ExprID {
	return b.Exprs.NewVar(sp(at, at+uint32(len(name))), source.NoStringID, b.Intern(name))
}

func topDef(b *ast.Builder, name string, body ast.ExprID, at uint32) {
	pat := b.Pats.NewIdent(sp(at, at+uint32(len(name))), b.Intern(name))
	b.PushDef(b.Defs.New(pat, body, sp(at, at+20)))
}

func bindName(t *testing.T, pat *ir.Pattern) string {
	t.Helper()
	bd, ok := pat.Data.(ir.BindData)
	if !ok {
		t.Fatalf("pattern %v is not a plain binding", pat.Kind)
	}
	return bd.Name
}

// maybeTags registers a local `type Maybe a = Just a | Nothing` in the
// store and returns its tag table.
func maybeTags(store *symbols.Store) *symbols.TagTable {
	mod := store.Module("Main")
	tags := symbols.NewTagTable()
	maybe := store.Fresh(mod, "Maybe")
	tags.AddType("Maybe", maybe)
	tags.AddTag(symbols.TagInfo{Name: "Just", Symbol: store.Fresh(mod, "Just"), Type: maybe, TypeName: "Maybe", Arity: 1})
	tags.AddTag(symbols.TagInfo{Name: "Nothing", Symbol: store.Fresh(mod, "Nothing"), Type: maybe, TypeName: "Maybe", Arity: 0})
	return tags
}

func TestMutualLambdasFormLegalGroup(t *testing.T) {
	b := newModule("Main")

	// f = \x -> g x
	fx := b.Pats.NewIdent(sp(12, 13), b.Intern("x"))
	fBody := b.Exprs.NewLambda(sp(10, 20), []ast.PatID{fx},
		b.Exprs.NewCall(sp(15, 18), varRef(b, "g", 15), []ast.ExprID{varRef(b, "x", 17)}))
	topDef(b, "f", fBody, 10)

	// g = \y -> f y
	gy := b.Pats.NewIdent(sp(32, 33), b.Intern("y"))
	gBody := b.Exprs.NewLambda(sp(30, 40), []ast.PatID{gy},
		b.Exprs.NewCall(sp(35, 38), varRef(b, "f", 35), []ast.ExprID{varRef(b, "y", 37)}))
	topDef(b, "g", gBody, 30)

	res := Canonicalize(b, Options{})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	if len(res.Module.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(res.Module.Groups))
	}
	g := res.Module.Groups[0]
	if g.Kind != ir.GroupMutual || g.Illegal {
		t.Fatalf("group = %v illegal=%v; want legal Mutual", g.Kind, g.Illegal)
	}
	if len(g.Defs) != 2 {
		t.Fatalf("group has %d defs, want 2", len(g.Defs))
	}
	if bindName(t, g.Defs[0].Pattern) != "f" || bindName(t, g.Defs[1].Pattern) != "g" {
		t.Fatalf("group members out of source order")
	}
}

func TestValueCycleIsIllegalButStillEmitted(t *testing.T) {
	b := newModule("Main")
	topDef(b, "a", varRef(b, "b", 14), 10)
	topDef(b, "b", varRef(b, "a", 34), 30)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanIllegalCycle); got != 1 {
		t.Fatalf("CanIllegalCycle count = %d, want 1", got)
	}
	if len(res.Module.Groups) != 1 {
		t.Fatalf("illegal group must still be emitted; got %d groups", len(res.Module.Groups))
	}
	g := res.Module.Groups[0]
	if g.Kind != ir.GroupMutual || !g.Illegal {
		t.Fatalf("group = %v illegal=%v; want illegal Mutual", g.Kind, g.Illegal)
	}
	cycle := res.Problems.Items()[0]
	if len(cycle.Notes) != 2 {
		t.Fatalf("cycle problem should name both members, got %d notes", len(cycle.Notes))
	}
}

func TestGroupsOrderedByDependency(t *testing.T) {
	b := newModule("Main")
	// `use` comes first in the source but depends on `one`.
	topDef(b, "use", varRef(b, "one", 16), 10)
	topDef(b, "one", intLit(b, 1, 36), 30)

	res := Canonicalize(b, Options{})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	if len(res.Module.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(res.Module.Groups))
	}
	if bindName(t, res.Module.Groups[0].Defs[0].Pattern) != "one" {
		t.Fatalf("dependency must come first")
	}
	if bindName(t, res.Module.Groups[1].Defs[0].Pattern) != "use" {
		t.Fatalf("dependent must come second")
	}
}

func TestIndependentDefsKeepSourceOrder(t *testing.T) {
	b := newModule("Main")
	topDef(b, "p", intLit(b, 1, 12), 10)
	topDef(b, "q", intLit(b, 2, 32), 30)

	res := Canonicalize(b, Options{})
	if bindName(t, res.Module.Groups[0].Defs[0].Pattern) != "p" ||
		bindName(t, res.Module.Groups[1].Defs[0].Pattern) != "q" {
		t.Fatalf("independent definitions must keep source order")
	}
}

func TestSelfRecursiveLambdaIsLegal(t *testing.T) {
	b := newModule("Main")
	n := b.Pats.NewIdent(sp(14, 15), b.Intern("n"))
	body := b.Exprs.NewLambda(sp(10, 30), []ast.PatID{n},
		b.Exprs.NewCall(sp(18, 25), varRef(b, "loop", 18), []ast.ExprID{varRef(b, "n", 24)}))
	topDef(b, "loop", body, 10)

	res := Canonicalize(b, Options{})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	g := res.Module.Groups[0]
	if g.Kind != ir.GroupSelfRecursive || g.Illegal {
		t.Fatalf("group = %v illegal=%v; want legal SelfRecursive", g.Kind, g.Illegal)
	}
}

func TestSelfReferenceOutsideLambdaIsIllegal(t *testing.T) {
	b := newModule("Main")
	topDef(b, "x", varRef(b, "x", 14), 10)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanIllegalCycle); got != 1 {
		t.Fatalf("CanIllegalCycle count = %d, want 1", got)
	}
	g := res.Module.Groups[0]
	if g.Kind != ir.GroupSelfRecursive || !g.Illegal {
		t.Fatalf("group = %v illegal=%v; want illegal SelfRecursive", g.Kind, g.Illegal)
	}
}

func TestUnresolvedIdentLeavesPlaceholder(t *testing.T) {
	b := newModule("Main")
	topDef(b, "main", varRef(b, "nope", 17), 10)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanUnresolvedIdent); got != 1 {
		t.Fatalf("CanUnresolvedIdent count = %d, want 1", got)
	}
	body := res.Module.Groups[0].Defs[0].Body
	if body.Kind != ir.ExprRuntimeError {
		t.Fatalf("body kind = %v, want RuntimeError placeholder", body.Kind)
	}
	data := body.Data.(ir.RuntimeErrorData)
	if data.Code != diag.CanUnresolvedIdent || data.Name != "nope" {
		t.Fatalf("placeholder data = %+v", data)
	}
}

func TestDuplicateBindingInPattern(t *testing.T) {
	b := newModule("Main")
	first := b.Pats.NewIdent(sp(11, 12), b.Intern("a"))
	second := b.Pats.NewIdent(sp(14, 15), b.Intern("a"))
	pat := b.Pats.NewList(sp(10, 16), []ast.PatID{first, second}, ast.NoPatID)
	b.PushDef(b.Defs.New(pat, intLit(b, 1, 20), sp(10, 21)))

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanDuplicateBindingInPattern); got != 1 {
		t.Fatalf("CanDuplicateBindingInPattern count = %d, want 1", got)
	}
	listData := res.Module.Groups[0].Defs[0].Pattern.Data.(ir.PatListData)
	if listData.Elems[0].Kind != ir.PatternBind {
		t.Fatalf("first occurrence must keep its binding")
	}
	if listData.Elems[1].Kind != ir.PatternWildcard {
		t.Fatalf("duplicate occurrence must degrade to a wildcard, got %v", listData.Elems[1].Kind)
	}
}

func TestTopLevelRedefinitionWarnsAndKeepsBoth(t *testing.T) {
	b := newModule("Main")
	topDef(b, "x", intLit(b, 1, 14), 10)
	topDef(b, "x", intLit(b, 2, 34), 30)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanShadowedDefinition); got != 1 {
		t.Fatalf("CanShadowedDefinition count = %d, want 1", got)
	}
	if res.Problems.HasErrors() {
		t.Fatalf("redefinition is a warning, not an error")
	}
	if len(res.Module.Groups) != 2 {
		t.Fatalf("both definitions must be retained; got %d groups", len(res.Module.Groups))
	}
	a := res.Module.Groups[0].Defs[0].Pattern.Data.(ir.BindData).Symbol
	c := res.Module.Groups[1].Defs[0].Pattern.Data.(ir.BindData).Symbol
	if a == c {
		t.Fatalf("each binding site must get its own symbol")
	}
}

func TestLambdaParamShadowsSilently(t *testing.T) {
	b := newModule("Main")
	topDef(b, "x", intLit(b, 1, 4), 1)

	px := b.Pats.NewIdent(sp(14, 15), b.Intern("x"))
	body := b.Exprs.NewLambda(sp(10, 25), []ast.PatID{px}, varRef(b, "x", 20))
	topDef(b, "f", body, 10)

	res := Canonicalize(b, Options{})
	if res.Problems.Len() != 0 {
		t.Fatalf("shadowing an outer frame must be silent: %v", res.Problems.Items())
	}

	topSym := res.Module.Groups[0].Defs[0].Pattern.Data.(ir.BindData).Symbol
	lam := res.Module.Groups[1].Defs[0].Body.Data.(ir.LambdaData)
	paramSym := lam.Params[0].Data.(ir.BindData).Symbol
	refSym := lam.Body.Data.(ir.VarRefData).Symbol
	if refSym != paramSym {
		t.Fatalf("inner reference must resolve to the parameter")
	}
	if refSym == topSym {
		t.Fatalf("parameter must not reuse the outer symbol")
	}
}

func TestLetGroupsInDependencyOrder(t *testing.T) {
	b := newModule("Main")
	// main = let second = first; first = 1 in second
	firstRef := varRef(b, "first", 20)
	secondPat := b.Pats.NewIdent(sp(14, 20), b.Intern("second"))
	secondDef := b.Defs.New(secondPat, firstRef, sp(14, 28))
	firstPat := b.Pats.NewIdent(sp(30, 35), b.Intern("first"))
	firstDef := b.Defs.New(firstPat, intLit(b, 1, 38), sp(30, 39))
	letExpr := b.Exprs.NewLet(sp(10, 60), []ast.DefID{secondDef, firstDef}, nil, varRef(b, "second", 50))
	topDef(b, "main", letExpr, 10)

	res := Canonicalize(b, Options{})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	letData := res.Module.Groups[0].Defs[0].Body.Data.(ir.LetData)
	if len(letData.Groups) != 2 {
		t.Fatalf("let has %d groups, want 2", len(letData.Groups))
	}
	if bindName(t, letData.Groups[0].Defs[0].Pattern) != "first" {
		t.Fatalf("let groups must come out in dependency order")
	}
}

func TestNestedLetReferenceCreatesOuterEdge(t *testing.T) {
	b := newModule("Main")
	// helper = let inner = base in inner   (helper depends on base)
	innerPat := b.Pats.NewIdent(sp(20, 25), b.Intern("inner"))
	innerDef := b.Defs.New(innerPat, varRef(b, "base", 28), sp(20, 32))
	letExpr := b.Exprs.NewLet(sp(14, 45), []ast.DefID{innerDef}, nil, varRef(b, "inner", 40))
	topDef(b, "helper", letExpr, 10)
	topDef(b, "base", intLit(b, 1, 56), 50)

	res := Canonicalize(b, Options{})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	if bindName(t, res.Module.Groups[0].Defs[0].Pattern) != "base" {
		t.Fatalf("a reference inside a nested let must still order the outer level")
	}
}

func TestQualifiedReferenceResolvesThroughExports(t *testing.T) {
	store := symbols.NewStore()
	util := store.Module("Util")
	utilExports := symbols.NewExports(util)
	helper := store.Fresh(util, "helper")
	utilExports.Add(symbols.Export{Name: "helper", Symbol: helper, Kind: symbols.ExportValue, Arity: -1})

	b := newModule("Main")
	b.Module.Imports = []ast.Import{{Module: b.Intern("Util"), Span: sp(1, 12)}}
	qualified := b.Exprs.NewVar(sp(20, 31), b.Intern("Util"), b.Intern("helper"))
	topDef(b, "main", qualified, 15)

	res := Canonicalize(b, Options{
		Store: store,
		Deps:  symbols.ExportTable{"Util": utilExports},
	})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	ref := res.Module.Groups[0].Defs[0].Body.Data.(ir.VarRefData)
	if ref.Symbol != helper {
		t.Fatalf("qualified reference resolved to %v, want %v", ref.Symbol, helper)
	}
}

func TestQualifiedReferenceToUnknownModule(t *testing.T) {
	b := newModule("Main")
	qualified := b.Exprs.NewVar(sp(20, 30), b.Intern("Ghost"), b.Intern("thing"))
	topDef(b, "main", qualified, 15)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanModuleNotImported); got != 1 {
		t.Fatalf("CanModuleNotImported count = %d, want 1", got)
	}
	if res.Module.Groups[0].Defs[0].Body.Kind != ir.ExprRuntimeError {
		t.Fatalf("unresolved qualified reference must leave a placeholder")
	}
}

func TestQualifiedReferenceNotExposed(t *testing.T) {
	store := symbols.NewStore()
	util := store.Module("Util")
	utilExports := symbols.NewExports(util)

	b := newModule("Main")
	b.Module.Imports = []ast.Import{{Module: b.Intern("Util"), Span: sp(1, 12)}}
	qualified := b.Exprs.NewVar(sp(20, 32), b.Intern("Util"), b.Intern("private"))
	topDef(b, "main", qualified, 15)

	res := Canonicalize(b, Options{
		Store: store,
		Deps:  symbols.ExportTable{"Util": utilExports},
	})
	if got := res.Problems.CountCode(diag.CanValueNotExposed); got != 1 {
		t.Fatalf("CanValueNotExposed count = %d, want 1", got)
	}
}

func TestImportAliasRenamesQualifier(t *testing.T) {
	store := symbols.NewStore()
	util := store.Module("Data.Util")
	utilExports := symbols.NewExports(util)
	helper := store.Fresh(util, "helper")
	utilExports.Add(symbols.Export{Name: "helper", Symbol: helper, Kind: symbols.ExportValue, Arity: -1})

	b := newModule("Main")
	b.Module.Imports = []ast.Import{{
		Module: b.Intern("Data.Util"),
		Alias:  b.Intern("U"),
		Span:   sp(1, 20),
	}}
	topDef(b, "main", b.Exprs.NewVar(sp(30, 38), b.Intern("U"), b.Intern("helper")), 25)

	res := Canonicalize(b, Options{
		Store: store,
		Deps:  symbols.ExportTable{"Data.Util": utilExports},
	})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
}

func TestImportExposingBringsNameIntoScope(t *testing.T) {
	store := symbols.NewStore()
	util := store.Module("Util")
	utilExports := symbols.NewExports(util)
	helper := store.Fresh(util, "helper")
	utilExports.Add(symbols.Export{Name: "helper", Symbol: helper, Kind: symbols.ExportValue, Arity: -1})

	b := newModule("Main")
	b.Module.Imports = []ast.Import{{
		Module:   b.Intern("Util"),
		Exposing: []ast.ExposedItem{{Name: b.Intern("helper"), Span: sp(5, 11)}},
		Span:     sp(1, 12),
	}}
	topDef(b, "main", varRef(b, "helper", 20), 15)

	res := Canonicalize(b, Options{
		Store: store,
		Deps:  symbols.ExportTable{"Util": utilExports},
	})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	ref := res.Module.Groups[0].Defs[0].Body.Data.(ir.VarRefData)
	if ref.Symbol != helper {
		t.Fatalf("exposed name resolved to %v, want %v", ref.Symbol, helper)
	}
}

func TestImportExposingMissingName(t *testing.T) {
	store := symbols.NewStore()
	util := store.Module("Util")

	b := newModule("Main")
	b.Module.Imports = []ast.Import{{
		Module:   b.Intern("Util"),
		Exposing: []ast.ExposedItem{{Name: b.Intern("nope"), Span: sp(5, 9)}},
		Span:     sp(1, 12),
	}}
	topDef(b, "main", intLit(b, 1, 20), 15)

	res := Canonicalize(b, Options{
		Store: store,
		Deps:  symbols.ExportTable{"Util": symbols.NewExports(util)},
	})
	if got := res.Problems.CountCode(diag.CanValueNotExposed); got != 1 {
		t.Fatalf("CanValueNotExposed count = %d, want 1", got)
	}
}

func TestExportsRestatedFromDefinitions(t *testing.T) {
	b := newModule("Main")
	b.Module.Exposing = []ast.ExposedItem{
		{Name: b.Intern("main"), Span: sp(1, 5)},
		{Name: b.Intern("ghost"), Span: sp(7, 12)},
	}
	topDef(b, "main", intLit(b, 1, 20), 15)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanExportNotDefined); got != 1 {
		t.Fatalf("CanExportNotDefined count = %d, want 1", got)
	}
	exp, ok := res.Exports.Lookup("main")
	if !ok || exp.Kind != symbols.ExportValue {
		t.Fatalf("main must be exported as a value, got %+v ok=%v", exp, ok)
	}
	mainSym := res.Module.Groups[0].Defs[0].Pattern.Data.(ir.BindData).Symbol
	if exp.Symbol != mainSym {
		t.Fatalf("export must restate the definition's symbol")
	}
	if _, ok := res.Exports.Lookup("ghost"); ok {
		t.Fatalf("undefined names must not be exported")
	}
}

func TestTypeExportIncludesConstructors(t *testing.T) {
	store := symbols.NewStore()
	tags := maybeTags(store)

	b := newModule("Main")
	b.Module.Exposing = []ast.ExposedItem{{Name: b.Intern("Maybe"), Span: sp(1, 6), ExposeTags: true}}

	res := Canonicalize(b, Options{Store: store, Tags: tags})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	if exp, ok := res.Exports.Lookup("Maybe"); !ok || exp.Kind != symbols.ExportType {
		t.Fatalf("Maybe must be exported as a type")
	}
	just, ok := res.Exports.Lookup("Just")
	if !ok || just.Kind != symbols.ExportTag || just.Of != "Maybe" || just.Arity != 1 {
		t.Fatalf("Just export = %+v ok=%v", just, ok)
	}
	if _, ok := res.Exports.Lookup("Nothing"); !ok {
		t.Fatalf("Nothing must be exported alongside the type")
	}
}

func TestConstructorApplication(t *testing.T) {
	store := symbols.NewStore()
	tags := maybeTags(store)

	b := newModule("Main")
	call := b.Exprs.NewCall(sp(15, 22), b.Exprs.NewTag(sp(15, 19), b.Intern("Just")),
		[]ast.ExprID{intLit(b, 1, 20)})
	topDef(b, "main", call, 10)

	res := Canonicalize(b, Options{Store: store, Tags: tags})
	if res.Problems.Len() != 0 {
		t.Fatalf("unexpected problems: %v", res.Problems.Items())
	}
	body := res.Module.Groups[0].Defs[0].Body
	if body.Kind != ir.ExprTagApply {
		t.Fatalf("saturated constructor must become TagApply, got %v", body.Kind)
	}
	data := body.Data.(ir.TagApplyData)
	if data.Name != "Just" || data.Symbol == symbols.NoSymbol || len(data.Args) != 1 {
		t.Fatalf("TagApply data = %+v", data)
	}
}

func TestUnknownConstructorKeepsNode(t *testing.T) {
	b := newModule("Main")
	topDef(b, "main", b.Exprs.NewTag(sp(15, 19), b.Intern("Nope")), 10)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanUnresolvedTag); got != 1 {
		t.Fatalf("CanUnresolvedTag count = %d, want 1", got)
	}
	data := res.Module.Groups[0].Defs[0].Body.Data.(ir.TagApplyData)
	if data.Symbol != symbols.NoSymbol || data.Name != "Nope" {
		t.Fatalf("unknown constructor node = %+v", data)
	}
}

func TestUnknownConstructorInPattern(t *testing.T) {
	b := newModule("Main")
	armPat := b.Pats.NewTag(sp(25, 28), b.Intern("Foo"), sp(25, 28), nil)
	when := b.Exprs.NewWhen(sp(18, 40), intLit(b, 1, 23), []ast.WhenArm{
		{Pattern: armPat, Body: intLit(b, 2, 33), Span: sp(25, 34)},
	})
	topDef(b, "main", when, 10)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanUnresolvedTag); got != 1 {
		t.Fatalf("CanUnresolvedTag count = %d, want 1", got)
	}
	whenData := res.Module.Groups[0].Defs[0].Body.Data.(ir.WhenData)
	tagData := whenData.Arms[0].Pattern.Data.(ir.PatTagData)
	if tagData.Symbol != symbols.NoSymbol {
		t.Fatalf("unresolved tag pattern must keep NoSymbol")
	}
}

func TestWhenNonExhaustiveReportsMissing(t *testing.T) {
	store := symbols.NewStore()
	tags := maybeTags(store)

	b := newModule("Main")
	px := b.Pats.NewIdent(sp(12, 13), b.Intern("x"))
	armPat := b.Pats.NewTag(sp(30, 36), b.Intern("Just"), sp(30, 34),
		[]ast.PatID{b.Pats.NewIdent(sp(35, 36), b.Intern("y"))})
	when := b.Exprs.NewWhen(sp(18, 50), varRef(b, "x", 23), []ast.WhenArm{
		{Pattern: armPat, Body: varRef(b, "y", 41), Span: sp(30, 42)},
	})
	topDef(b, "main", b.Exprs.NewLambda(sp(10, 50), []ast.PatID{px}, when), 10)

	res := Canonicalize(b, Options{
		Store:   store,
		Tags:    tags,
		Exhaust: exhaust.NewTagChecker(tags),
	})
	if got := res.Problems.CountCode(diag.CanNonExhaustiveMatch); got != 1 {
		t.Fatalf("CanNonExhaustiveMatch count = %d, want 1: %v", got, res.Problems.Items())
	}
	if msg := res.Problems.Items()[0].Message; !strings.Contains(msg, "Nothing") {
		t.Fatalf("message should name the missing constructor, got %q", msg)
	}
}

func TestWhenUnreachableArmWarns(t *testing.T) {
	store := symbols.NewStore()
	tags := maybeTags(store)

	b := newModule("Main")
	px := b.Pats.NewIdent(sp(12, 13), b.Intern("x"))
	wild := b.Pats.NewWildcard(sp(30, 31))
	armPat := b.Pats.NewTag(sp(40, 47), b.Intern("Nothing"), sp(40, 47), nil)
	when := b.Exprs.NewWhen(sp(18, 60), varRef(b, "x", 23), []ast.WhenArm{
		{Pattern: wild, Body: intLit(b, 1, 35), Span: sp(30, 36)},
		{Pattern: armPat, Body: intLit(b, 2, 51), Span: sp(40, 52)},
	})
	topDef(b, "main", b.Exprs.NewLambda(sp(10, 60), []ast.PatID{px}, when), 10)

	res := Canonicalize(b, Options{
		Store:   store,
		Tags:    tags,
		Exhaust: exhaust.NewTagChecker(tags),
	})
	if got := res.Problems.CountCode(diag.CanUnreachableArm); got != 1 {
		t.Fatalf("CanUnreachableArm count = %d, want 1: %v", got, res.Problems.Items())
	}
	if res.Problems.HasErrors() {
		t.Fatalf("an unreachable arm is a warning, not an error")
	}
}

func TestAnnotationsPairedByName(t *testing.T) {
	b := newModule("Main")
	intType := b.Types.NewName(sp(8, 11), source.NoStringID, b.Intern("Int"), nil)
	b.Module.Annotations = []ast.Annotation{
		{Name: b.Intern("main"), NameSpan: sp(1, 5), Type: intType, Span: sp(1, 11)},
		{Name: b.Intern("ghost"), NameSpan: sp(12, 17), Type: intType, Span: sp(12, 23)},
	}
	topDef(b, "main", intLit(b, 1, 30), 25)

	res := Canonicalize(b, Options{})
	if got := res.Problems.CountCode(diag.CanAnnotationWithoutDef); got != 1 {
		t.Fatalf("CanAnnotationWithoutDef count = %d, want 1", got)
	}
	annot := res.Module.Groups[0].Defs[0].Annotation
	if annot == nil || annot.Type == nil {
		t.Fatalf("main's annotation must be attached")
	}
	if annot.Type.Kind != ir.AnnotName || annot.Type.Name != "Int" {
		t.Fatalf("annotation type = %+v", annot.Type)
	}
}

func buildSampleModule() *ast.Builder {
	b := newModule("Main")
	px := b.Pats.NewIdent(sp(12, 13), b.Intern("x"))
	body := b.Exprs.NewLambda(sp(10, 30), []ast.PatID{px},
		b.Exprs.NewCall(sp(15, 25), varRef(b, "twice", 15), []ast.ExprID{varRef(b, "x", 22)}))
	topDef(b, "twice", body, 10)
	topDef(b, "main", b.Exprs.NewCall(sp(45, 55), varRef(b, "twice", 45), []ast.ExprID{intLit(b, 3, 52)}), 40)
	return b
}

func TestCanonicalFormIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	ir.Dump(&first, Canonicalize(buildSampleModule(), Options{}).Module)
	ir.Dump(&second, Canonicalize(buildSampleModule(), Options{}).Module)
	if first.String() != second.String() {
		t.Fatalf("two runs over the same tree must print identically:\n%s\n---\n%s", first.String(), second.String())
	}
}
