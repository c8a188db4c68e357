package can

import (
	"fmt"

	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/symbols"
)

// Env carries the per-module canonicalization context: the home module,
// the symbol store shared across the whole build, the exports of every
// dependency, and the sink for problems. It never fails; every miss turns
// into a problem plus a placeholder in the output.
type Env struct {
	Home     symbols.ModuleID
	HomeName string
	Store    *symbols.Store
	Deps     symbols.ExportTable
	Tags     *symbols.TagTable
	Reporter diag.Reporter

	// imported maps the name a dependency is referred to by in this
	// module (its alias when one was given) to its real module name.
	imported map[string]string
	// exposed maps names pulled in unqualified through import lists to
	// the export they resolve to.
	exposed map[string]symbols.Export
}

// NewEnv builds the environment for one module. Imports and exposings are
// registered afterwards by the canonicalizer so their problems land in
// source order.
func NewEnv(homeName string, store *symbols.Store, deps symbols.ExportTable, tags *symbols.TagTable, reporter diag.Reporter) *Env {
	if tags == nil {
		tags = symbols.NewTagTable()
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Env{
		Home:     store.Module(homeName),
		HomeName: homeName,
		Store:    store,
		Deps:     deps,
		Tags:     tags,
		Reporter: reporter,
		imported: make(map[string]string),
		exposed:  make(map[string]symbols.Export),
	}
}

// RegisterImport records that module modName is in scope under refName
// (the alias, or the module's own name when no alias was given).
func (e *Env) RegisterImport(refName, modName string) {
	e.imported[refName] = modName
}

// Expose makes export available unqualified.
func (e *Env) Expose(name string, exp symbols.Export) {
	e.exposed[name] = exp
}

// LookupExposed resolves a name against the unqualified import surface.
func (e *Env) LookupExposed(name string) (symbols.Export, bool) {
	exp, ok := e.exposed[name]
	return exp, ok
}

// QualifiedLookup resolves moduleRef.name. The failure modes are distinct
// problems: the module is not imported at all, or it is imported but does
// not export the name. On failure the returned export is zero and the code
// names the problem; the caller reports it and leaves a placeholder.
func (e *Env) QualifiedLookup(moduleRef, name string, span source.Span) (symbols.Export, diag.Code) {
	modName, ok := e.imported[moduleRef]
	if !ok {
		e.Reporter.Report(diag.CanModuleNotImported, diag.SevError, span,
			fmt.Sprintf("module `%s` is not imported", moduleRef), nil)
		return symbols.Export{}, diag.CanModuleNotImported
	}
	exports, ok := e.Deps[modName]
	if !ok || exports == nil {
		e.Reporter.Report(diag.CanModuleNotImported, diag.SevError, span,
			fmt.Sprintf("module `%s` is not available", modName), nil)
		return symbols.Export{}, diag.CanModuleNotImported
	}
	exp, ok := exports.Lookup(name)
	if !ok {
		e.Reporter.Report(diag.CanValueNotExposed, diag.SevError, span,
			fmt.Sprintf("module `%s` does not expose `%s`", modName, name), nil)
		return symbols.Export{}, diag.CanValueNotExposed
	}
	return exp, 0
}

// Fresh mints a new home-module symbol for name. Every binding site gets
// its own symbol even when names repeat.
func (e *Env) Fresh(name string) symbols.Symbol {
	return e.Store.Fresh(e.Home, name)
}
