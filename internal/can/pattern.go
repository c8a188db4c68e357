package can

import (
	"fmt"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

// patBinder tracks the names one definition's pattern (or one lambda's
// parameter list, or one match arm) has bound so far, so a name repeated
// inside the same pattern is caught. The first occurrence wins; duplicates
// degrade to wildcards.
type patBinder struct {
	seen map[string]source.Span
}

func newPatBinder() *patBinder {
	return &patBinder{seen: make(map[string]source.Span)}
}

// bindName mints a symbol for one binding site and installs it in the
// innermost scope frame. Returns NoSymbol when the name duplicates an
// earlier binding of the same pattern.
func (c *canonicalizer) bindName(name string, span source.Span, binder *patBinder) symbols.Symbol {
	if prev, dup := binder.seen[name]; dup {
		diag.ReportError(c.env.Reporter, diag.CanDuplicateBindingInPattern, span,
			fmt.Sprintf("`%s` is bound more than once in this pattern", name)).
			WithNote(prev, "first bound here").
			Emit()
		return symbols.NoSymbol
	}
	binder.seen[name] = span

	sym := c.env.Fresh(name)
	if prev, sameFrame := c.scope.Bind(name, sym, span); sameFrame {
		diag.ReportWarning(c.env.Reporter, diag.CanShadowedDefinition, span,
			fmt.Sprintf("`%s` is already defined in this scope; the new definition wins", name)).
			WithNote(prev.Span, "previously defined here").
			Emit()
	}
	return sym
}

// canonPattern lowers one surface pattern, binding every introduced name
// into the innermost scope frame as it goes (left to right, depth first).
func (c *canonicalizer) canonPattern(id ast.PatID, binder *patBinder) *ir.Pattern {
	pat := c.b.Pats.Get(id)
	if pat == nil {
		return &ir.Pattern{Kind: ir.PatternWildcard, Data: ir.WildcardData{}}
	}

	switch pat.Kind {
	case ast.PatIdent:
		data, _ := c.b.Pats.Ident(id)
		name := c.b.Name(data.Name)
		sym := c.bindName(name, pat.Span, binder)
		if sym == symbols.NoSymbol {
			return &ir.Pattern{Kind: ir.PatternWildcard, Span: pat.Span, Data: ir.WildcardData{}}
		}
		return &ir.Pattern{Kind: ir.PatternBind, Span: pat.Span, Data: ir.BindData{Symbol: sym, Name: name}}

	case ast.PatWildcard:
		return &ir.Pattern{Kind: ir.PatternWildcard, Span: pat.Span, Data: ir.WildcardData{}}

	case ast.PatLit:
		data, _ := c.b.Pats.Lit(id)
		return &ir.Pattern{Kind: ir.PatternLiteral, Span: pat.Span, Data: ir.PatLiteralData{Lit: data.Lit}}

	case ast.PatTag:
		data, _ := c.b.Pats.Tag(id)
		name := c.b.Name(data.Name)
		sym := symbols.NoSymbol
		if info, ok := c.env.Tags.Lookup(name); ok {
			sym = info.Symbol
		} else {
			c.env.Reporter.Report(diag.CanUnresolvedTag, diag.SevError, data.NameSpan,
				fmt.Sprintf("unknown constructor `%s`", name), nil)
		}
		args := make([]*ir.Pattern, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, c.canonPattern(arg, binder))
		}
		return &ir.Pattern{Kind: ir.PatternTag, Span: pat.Span, Data: ir.PatTagData{
			Name: name, Symbol: sym, Args: args,
		}}

	case ast.PatRecord:
		data, _ := c.b.Pats.Record(id)
		fields := make([]ir.PatRecordFieldBind, 0, len(data.Fields))
		for _, f := range data.Fields {
			name := c.b.Name(f.Name)
			sym := c.bindName(name, f.Span, binder)
			if sym == symbols.NoSymbol {
				continue
			}
			fields = append(fields, ir.PatRecordFieldBind{Name: name, Symbol: sym, Span: f.Span})
		}
		return &ir.Pattern{Kind: ir.PatternRecord, Span: pat.Span, Data: ir.PatRecordData{Fields: fields}}

	case ast.PatList:
		data, _ := c.b.Pats.List(id)
		elems := make([]*ir.Pattern, 0, len(data.Elems))
		for _, el := range data.Elems {
			elems = append(elems, c.canonPattern(el, binder))
		}
		var rest *ir.Pattern
		if data.Rest != ast.NoPatID {
			rest = c.canonPattern(data.Rest, binder)
		}
		return &ir.Pattern{Kind: ir.PatternList, Span: pat.Span, Data: ir.PatListData{Elems: elems, Rest: rest}}

	case ast.PatAs:
		data, _ := c.b.Pats.As(id)
		inner := c.canonPattern(data.Inner, binder)
		name := c.b.Name(data.Name)
		sym := c.bindName(name, data.NameSpan, binder)
		if sym == symbols.NoSymbol {
			return inner
		}
		return &ir.Pattern{Kind: ir.PatternAs, Span: pat.Span, Data: ir.PatAsData{
			Inner: inner, Symbol: sym, Name: name,
		}}

	default:
		return &ir.Pattern{Kind: ir.PatternWildcard, Span: pat.Span, Data: ir.WildcardData{}}
	}
}
