// Package can turns one parsed module into its canonical form: every name
// resolved to a unique symbol, definitions regrouped into dependency-ordered
// strongly connected components, and patterns validated. The pass never
// fails; everything wrong with the input comes back as problems next to a
// best-effort tree.
package can

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/exhaust"
	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

// DefaultMaxProblems caps the problem bag when the caller does not.
const DefaultMaxProblems = 100

// Options configures one canonicalization run. Store is shared across the
// whole build; Deps holds the already-canonicalized dependencies' exports.
type Options struct {
	Store *symbols.Store
	Deps  symbols.ExportTable
	// Tags is the module's constructor namespace, usually filled by
	// declaration collection. Nil means no constructors are in scope.
	Tags *symbols.TagTable
	// Exhaust is the match coverage collaborator. Nil disables checking.
	Exhaust exhaust.Checker
	// Reporter overrides the internal bag as the problem sink.
	Reporter    diag.Reporter
	MaxProblems int
}

// Result is the output of one run. Problems is always populated; when an
// external Reporter was supplied it stays empty and the reporter saw
// everything instead.
type Result struct {
	Module   *ir.Module
	Exports  *symbols.Exports
	Problems *diag.Bag
}

type canonicalizer struct {
	env     *Env
	b       *ast.Builder
	scope   *Scope
	exhaust exhaust.Checker
	deps    []*depFrame
}

// Canonicalize runs the full pass over one module's syntax tree.
func Canonicalize(b *ast.Builder, opts Options) *Result {
	if opts.Store == nil {
		opts.Store = symbols.NewStore()
	}
	max := opts.MaxProblems
	if max <= 0 {
		max = DefaultMaxProblems
	}
	bag := diag.NewBag(max)
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.BagReporter{Bag: bag}
	}

	env := NewEnv(b.Module.Name, opts.Store, opts.Deps, opts.Tags, reporter)
	checker := opts.Exhaust
	if checker == nil {
		checker = exhaust.Nop{}
	}

	c := &canonicalizer{
		env:     env,
		b:       b,
		scope:   NewScope(),
		exhaust: checker,
	}

	c.processImports()
	groups := c.canonDefs(b.Module.Defs, topAnnots(b, b.Module.Annotations))
	exports := c.buildExports()

	return &Result{
		Module: &ir.Module{
			Name:    b.Module.Name,
			ID:      env.Home,
			Groups:  groups,
			Exports: exports,
		},
		Exports:  exports,
		Problems: bag,
	}
}

// processImports registers every import and resolves its exposing list
// against the dependency's export surface.
func (c *canonicalizer) processImports() {
	for _, imp := range c.b.Module.Imports {
		modName := c.b.Name(imp.Module)
		exports, ok := c.env.Deps[modName]
		if !ok || exports == nil {
			c.env.Reporter.Report(diag.CanModuleNotImported, diag.SevError, imp.Span,
				fmt.Sprintf("module `%s` is not known to this build", modName), nil)
			continue
		}

		refName := modName
		if imp.Alias != source.NoStringID {
			refName = c.b.Name(imp.Alias)
		}
		c.env.RegisterImport(refName, modName)

		for _, item := range imp.Exposing {
			name := c.b.Name(item.Name)
			exp, ok := exports.Lookup(name)
			if !ok {
				c.env.Reporter.Report(diag.CanValueNotExposed, diag.SevError, item.Span,
					fmt.Sprintf("module `%s` does not expose `%s`", modName, name), nil)
				continue
			}
			c.env.Expose(name, exp)
			if item.ExposeTags && exp.Kind == symbols.ExportType {
				c.exposeTags(exports, exp)
			}
		}
	}
}

// exposeTags pulls every constructor of an imported `Type(..)` into the
// unqualified surface and into the tag namespace.
func (c *canonicalizer) exposeTags(exports *symbols.Exports, typeExp symbols.Export) {
	if _, ok := c.env.Tags.LookupType(typeExp.Name); !ok {
		c.env.Tags.AddType(typeExp.Name, typeExp.Symbol)
	}
	for _, tag := range exports.TagsOf(typeExp.Name) {
		c.env.Expose(tag.Name, tag)
		if _, ok := c.env.Tags.Lookup(tag.Name); !ok {
			c.env.Tags.AddTag(symbols.TagInfo{
				Name:     tag.Name,
				Symbol:   tag.Symbol,
				Type:     typeExp.Symbol,
				TypeName: typeExp.Name,
				Arity:    tag.Arity,
			})
		}
	}
}

// buildExports restates the module's exposing list against what the module
// actually defined. Every miss is a problem; the surviving entries are what
// dependent modules resolve against.
func (c *canonicalizer) buildExports() *symbols.Exports {
	out := symbols.NewExports(c.env.Home)
	for _, item := range c.b.Module.Exposing {
		name := c.b.Name(item.Name)

		if b, ok := c.scope.Lookup(name); ok {
			out.Add(symbols.Export{Name: name, Symbol: b.Symbol, Kind: symbols.ExportValue, Arity: -1})
			continue
		}

		if typeSym, ok := c.env.Tags.LookupType(name); ok {
			out.Add(symbols.Export{Name: name, Symbol: typeSym, Kind: symbols.ExportType, Arity: -1})
			if item.ExposeTags {
				for _, tagName := range c.env.Tags.TagsOfType(typeSym) {
					info, _ := c.env.Tags.Lookup(tagName)
					out.Add(symbols.Export{
						Name:   info.Name,
						Symbol: info.Symbol,
						Kind:   symbols.ExportTag,
						Arity:  info.Arity,
						Of:     name,
					})
				}
			}
			continue
		}

		if info, ok := c.env.Tags.Lookup(name); ok {
			out.Add(symbols.Export{
				Name: name, Symbol: info.Symbol, Kind: symbols.ExportTag,
				Arity: info.Arity, Of: info.TypeName,
			})
			continue
		}

		c.env.Reporter.Report(diag.CanExportNotDefined, diag.SevError, item.Span,
			fmt.Sprintf("`%s` is exposed but never defined", name), nil)
	}
	return out
}
