package can

import (
	"fmt"
	"strings"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/exhaust"
	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

// canonExpr lowers one surface expression. Failures never abort the walk:
// an unresolved reference becomes a runtime-error placeholder and the
// problem lands in the reporter.
func (c *canonicalizer) canonExpr(id ast.ExprID) *ir.Expr {
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return ir.RuntimeError(source.Span{}, diag.CanInfo, "")
	}

	switch expr.Kind {
	case ast.ExprLit:
		data, _ := c.b.Exprs.Lit(id)
		return &ir.Expr{Kind: ir.ExprLiteral, Span: expr.Span, Data: ir.LiteralData{Lit: data.Lit}}

	case ast.ExprVar:
		data, _ := c.b.Exprs.Var(id)
		return c.canonVar(expr.Span, data)

	case ast.ExprTag:
		data, _ := c.b.Exprs.Tag(id)
		return c.canonTag(expr.Span, c.b.Name(data.Name), nil)

	case ast.ExprList:
		data, _ := c.b.Exprs.List(id)
		elems := make([]*ir.Expr, 0, len(data.Elems))
		for _, el := range data.Elems {
			elems = append(elems, c.canonExpr(el))
		}
		return &ir.Expr{Kind: ir.ExprList, Span: expr.Span, Data: ir.ListData{Elems: elems}}

	case ast.ExprRecord:
		data, _ := c.b.Exprs.Record(id)
		return &ir.Expr{Kind: ir.ExprRecord, Span: expr.Span, Data: ir.RecordData{
			Fields: c.canonFields(data.Fields),
		}}

	case ast.ExprRecordAccess:
		data, _ := c.b.Exprs.RecordAccess(id)
		return &ir.Expr{Kind: ir.ExprRecordAccess, Span: expr.Span, Data: ir.RecordAccessData{
			Record: c.canonExpr(data.Record),
			Field:  c.b.Name(data.Field),
		}}

	case ast.ExprRecordUpdate:
		data, _ := c.b.Exprs.RecordUpdate(id)
		return &ir.Expr{Kind: ir.ExprRecordUpdate, Span: expr.Span, Data: ir.RecordUpdateData{
			Base:   c.canonExpr(data.Base),
			Fields: c.canonFields(data.Fields),
		}}

	case ast.ExprCall:
		data, _ := c.b.Exprs.Call(id)
		args := make([]*ir.Expr, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, c.canonExpr(arg))
		}
		// A call whose head is a bare constructor is a saturated
		// constructor application, not a function call.
		if fn := c.b.Exprs.Get(data.Fn); fn != nil && fn.Kind == ast.ExprTag {
			tagData, _ := c.b.Exprs.Tag(data.Fn)
			return c.canonTag(expr.Span, c.b.Name(tagData.Name), args)
		}
		return &ir.Expr{Kind: ir.ExprCall, Span: expr.Span, Data: ir.CallData{
			Fn:   c.canonExpr(data.Fn),
			Args: args,
		}}

	case ast.ExprLambda:
		data, _ := c.b.Exprs.Lambda(id)
		depth := c.scope.Push()
		binder := newPatBinder()
		params := make([]*ir.Pattern, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, c.canonPattern(p, binder))
		}
		body := c.canonExpr(data.Body)
		c.scope.Pop(depth)
		return &ir.Expr{Kind: ir.ExprLambda, Span: expr.Span, Data: ir.LambdaData{
			Params: params, Body: body,
		}}

	case ast.ExprIf:
		data, _ := c.b.Exprs.If(id)
		return &ir.Expr{Kind: ir.ExprIf, Span: expr.Span, Data: ir.IfData{
			Cond: c.canonExpr(data.Cond),
			Then: c.canonExpr(data.Then),
			Else: c.canonExpr(data.Else),
		}}

	case ast.ExprWhen:
		return c.canonWhen(id, expr.Span)

	case ast.ExprLet:
		data, _ := c.b.Exprs.Let(id)
		depth := c.scope.Push()
		groups := c.canonDefs(data.Defs, letAnnots(c.b, data.Annots))
		body := c.canonExpr(data.Body)
		c.scope.Pop(depth)
		return &ir.Expr{Kind: ir.ExprLet, Span: expr.Span, Data: ir.LetData{
			Groups: groups, Body: body,
		}}

	case ast.ExprHole:
		return &ir.Expr{Kind: ir.ExprHole, Span: expr.Span, Data: ir.HoleData{}}

	default:
		return ir.RuntimeError(expr.Span, diag.CanInfo, "")
	}
}

// canonVar resolves a variable reference. Unqualified names go through the
// scope stack first, then the unqualified import surface; qualified names
// go straight to the named module's exports.
func (c *canonicalizer) canonVar(span source.Span, data *ast.ExprVarData) *ir.Expr {
	name := c.b.Name(data.Name)

	if data.Module != source.NoStringID {
		moduleRef := c.b.Name(data.Module)
		exp, code := c.env.QualifiedLookup(moduleRef, name, span)
		if code != 0 {
			return ir.RuntimeError(span, code, moduleRef+"."+name)
		}
		return c.varRef(span, exp.Symbol, name)
	}

	if b, ok := c.scope.Lookup(name); ok {
		return c.varRef(span, b.Symbol, name)
	}
	if exp, ok := c.env.LookupExposed(name); ok {
		return c.varRef(span, exp.Symbol, name)
	}

	c.env.Reporter.Report(diag.CanUnresolvedIdent, diag.SevError, span,
		fmt.Sprintf("nothing is named `%s` in this scope", name), nil)
	return ir.RuntimeError(span, diag.CanUnresolvedIdent, name)
}

// varRef builds the reference node and feeds the dependency tracker.
func (c *canonicalizer) varRef(span source.Span, sym symbols.Symbol, name string) *ir.Expr {
	c.noteRef(sym)
	return &ir.Expr{Kind: ir.ExprVarRef, Span: span, Data: ir.VarRefData{Symbol: sym, Name: name}}
}

// canonTag resolves a constructor reference or application. An unknown tag
// keeps its node with NoSymbol so the tree stays traversable.
func (c *canonicalizer) canonTag(span source.Span, name string, args []*ir.Expr) *ir.Expr {
	sym := symbols.NoSymbol
	if info, ok := c.env.Tags.Lookup(name); ok {
		sym = info.Symbol
	} else {
		c.env.Reporter.Report(diag.CanUnresolvedTag, diag.SevError, span,
			fmt.Sprintf("unknown constructor `%s`", name), nil)
	}
	return &ir.Expr{Kind: ir.ExprTagApply, Span: span, Data: ir.TagApplyData{
		Name: name, Symbol: sym, Args: args,
	}}
}

func (c *canonicalizer) canonFields(fields []ast.RecordField) []ir.RecordField {
	out := make([]ir.RecordField, 0, len(fields))
	for _, f := range fields {
		out = append(out, ir.RecordField{
			Name:  c.b.Name(f.Name),
			Span:  f.NameSpan,
			Value: c.canonExpr(f.Value),
		})
	}
	return out
}

// canonWhen lowers a match expression and consults the exhaustiveness
// collaborator over the canonical arm patterns.
func (c *canonicalizer) canonWhen(id ast.ExprID, span source.Span) *ir.Expr {
	data, _ := c.b.Exprs.When(id)
	subject := c.canonExpr(data.Subject)

	arms := make([]ir.WhenArm, 0, len(data.Arms))
	pats := make([]*ir.Pattern, 0, len(data.Arms))
	for _, arm := range data.Arms {
		depth := c.scope.Push()
		pat := c.canonPattern(arm.Pattern, newPatBinder())
		body := c.canonExpr(arm.Body)
		c.scope.Pop(depth)
		arms = append(arms, ir.WhenArm{Pattern: pat, Body: body, Span: arm.Span})
		pats = append(pats, pat)
	}

	for _, f := range c.exhaust.Check(pats, span) {
		c.reportFinding(f)
	}

	return &ir.Expr{Kind: ir.ExprWhen, Span: span, Data: ir.WhenData{Subject: subject, Arms: arms}}
}

func (c *canonicalizer) reportFinding(f exhaust.Finding) {
	switch f.Kind {
	case exhaust.NonExhaustive:
		msg := "this match does not cover every possible value"
		if list := missingList(f.Missing); list != "" {
			msg = fmt.Sprintf("this match does not cover %s", list)
		}
		c.env.Reporter.Report(diag.CanNonExhaustiveMatch, diag.SevError, f.Span, msg, nil)
	case exhaust.UnreachableArm:
		c.env.Reporter.Report(diag.CanUnreachableArm, diag.SevWarning, f.Span,
			"this arm can never match; an earlier pattern matches everything", nil)
	}
}

func missingList(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(missing))
	for _, m := range missing {
		quoted = append(quoted, "`"+m+"`")
	}
	return strings.Join(quoted, ", ")
}
