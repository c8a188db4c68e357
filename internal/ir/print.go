package ir

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps canonical IR to a deterministic text form, used by the CLI
// and by tests comparing structure across modules.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the canonical module to w.
func Dump(w io.Writer, m *Module) {
	NewPrinter(w).PrintModule(m)
}

// PrintModule prints a complete module.
func (p *Printer) PrintModule(m *Module) {
	p.printf("module %s\n", m.Name)
	if m.Exports != nil {
		for _, exp := range m.Exports.Sorted() {
			p.printf("  expose %s %s (sym=%d.%d)\n", exp.Kind, exp.Name, exp.Symbol.Module, exp.Symbol.Ident)
		}
	}
	for i := range m.Groups {
		p.printf("\n")
		p.printGroup(&m.Groups[i])
	}
}

func (p *Printer) printGroup(g *DefGroup) {
	marker := ""
	if g.Illegal {
		marker = " illegal"
	}
	p.printf("group %s%s\n", g.Kind, marker)
	p.indent++
	for _, def := range g.Defs {
		p.printDef(def)
	}
	p.indent--
}

func (p *Printer) printDef(d *Def) {
	p.pad()
	p.printPattern(d.Pattern)
	if d.Annotation != nil {
		p.printf(" : ")
		p.printAnnot(d.Annotation.Type)
	}
	p.printf(" =\n")
	p.indent++
	p.pad()
	p.printExpr(d.Body)
	p.printf("\n")
	p.indent--
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	switch data := e.Data.(type) {
	case LiteralData:
		p.printf("lit:%s", data.Lit.Kind)
	case VarRefData:
		p.printf("%s@%d.%d", data.Name, data.Symbol.Module, data.Symbol.Ident)
	case ListData:
		p.printf("[")
		for i, el := range data.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(el)
		}
		p.printf("]")
	case RecordData:
		p.printf("{")
		for i, f := range data.Fields {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s = ", f.Name)
			p.printExpr(f.Value)
		}
		p.printf("}")
	case RecordAccessData:
		p.printExpr(data.Record)
		p.printf(".%s", data.Field)
	case RecordUpdateData:
		p.printf("{ ")
		p.printExpr(data.Base)
		p.printf(" |")
		for i, f := range data.Fields {
			if i > 0 {
				p.printf(",")
			}
			p.printf(" %s = ", f.Name)
			p.printExpr(f.Value)
		}
		p.printf(" }")
	case TagApplyData:
		p.printf("%s@%d.%d", data.Name, data.Symbol.Module, data.Symbol.Ident)
		for _, arg := range data.Args {
			p.printf(" ")
			p.printExpr(arg)
		}
	case CallData:
		p.printf("(")
		p.printExpr(data.Fn)
		for _, arg := range data.Args {
			p.printf(" ")
			p.printExpr(arg)
		}
		p.printf(")")
	case LambdaData:
		p.printf("\\")
		for i, param := range data.Params {
			if i > 0 {
				p.printf(" ")
			}
			p.printPattern(param)
		}
		p.printf(" -> ")
		p.printExpr(data.Body)
	case IfData:
		p.printf("if ")
		p.printExpr(data.Cond)
		p.printf(" then ")
		p.printExpr(data.Then)
		p.printf(" else ")
		p.printExpr(data.Else)
	case WhenData:
		p.printf("when ")
		p.printExpr(data.Subject)
		p.printf(" is")
		p.indent++
		for _, arm := range data.Arms {
			p.printf("\n")
			p.pad()
			p.printPattern(arm.Pattern)
			p.printf(" -> ")
			p.printExpr(arm.Body)
		}
		p.indent--
	case LetData:
		p.printf("let\n")
		p.indent++
		for i := range data.Groups {
			p.pad()
			p.printGroup(&data.Groups[i])
		}
		p.pad()
		p.printf("in ")
		p.printExpr(data.Body)
		p.indent--
	case HoleData:
		p.printf("?")
	case RuntimeErrorData:
		p.printf("<runtime-error %s %q>", data.Code, data.Name)
	default:
		p.printf("<%s>", e.Kind)
	}
}

func (p *Printer) printPattern(pat *Pattern) {
	if pat == nil {
		p.printf("<nil>")
		return
	}
	switch data := pat.Data.(type) {
	case BindData:
		p.printf("%s@%d.%d", data.Name, data.Symbol.Module, data.Symbol.Ident)
	case WildcardData:
		p.printf("_")
	case PatLiteralData:
		p.printf("lit:%s", data.Lit.Kind)
	case PatTagData:
		p.printf("%s", data.Name)
		for _, arg := range data.Args {
			p.printf(" ")
			p.printPattern(arg)
		}
	case PatRecordData:
		p.printf("{")
		for i, f := range data.Fields {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s@%d.%d", f.Name, f.Symbol.Module, f.Symbol.Ident)
		}
		p.printf("}")
	case PatListData:
		p.printf("[")
		for i, el := range data.Elems {
			if i > 0 {
				p.printf(", ")
			}
			p.printPattern(el)
		}
		if data.Rest != nil {
			p.printf(" ...")
			p.printPattern(data.Rest)
		}
		p.printf("]")
	case PatAsData:
		p.printf("(")
		p.printPattern(data.Inner)
		p.printf(" as %s)", data.Name)
	default:
		p.printf("<%s>", pat.Kind)
	}
}

func (p *Printer) printAnnot(a *TypeAnnot) {
	if a == nil {
		p.printf("<nil>")
		return
	}
	switch a.Kind {
	case AnnotName:
		if a.Module != "" {
			p.printf("%s.", a.Module)
		}
		p.printf("%s", a.Name)
		for _, arg := range a.Args {
			p.printf(" ")
			p.printAnnot(arg)
		}
	case AnnotVar:
		p.printf("%s", a.Name)
	case AnnotFn:
		p.printf("(")
		for _, param := range a.Params {
			p.printAnnot(param)
			p.printf(" -> ")
		}
		p.printAnnot(a.Result)
		p.printf(")")
	case AnnotRecord:
		p.printf("{")
		for i, f := range a.Fields {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s : ", f.Name)
			p.printAnnot(f.Type)
		}
		p.printf("}")
	}
}

func (p *Printer) pad() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}
