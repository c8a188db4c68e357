package can

import (
	"tern/internal/ast"
	"tern/internal/ir"
	"tern/internal/source"
)

// convertType lowers a surface type annotation into the carrier tree.
// Annotations are structural only at this stage; nothing here resolves or
// checks type names.
func (c *canonicalizer) convertType(id ast.TypeID) *ir.TypeAnnot {
	syn := c.b.Types.Get(id)
	if syn == nil {
		return nil
	}

	switch syn.Kind {
	case ast.TypeName:
		data, _ := c.b.Types.Name(id)
		module := ""
		if data.Module != source.NoStringID {
			module = c.b.Name(data.Module)
		}
		args := make([]*ir.TypeAnnot, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, c.convertType(arg))
		}
		return &ir.TypeAnnot{
			Kind:   ir.AnnotName,
			Span:   syn.Span,
			Module: module,
			Name:   c.b.Name(data.Name),
			Args:   args,
		}

	case ast.TypeVar:
		data, _ := c.b.Types.Var(id)
		return &ir.TypeAnnot{Kind: ir.AnnotVar, Span: syn.Span, Name: c.b.Name(data.Name)}

	case ast.TypeFn:
		data, _ := c.b.Types.Fn(id)
		params := make([]*ir.TypeAnnot, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, c.convertType(p))
		}
		return &ir.TypeAnnot{
			Kind:   ir.AnnotFn,
			Span:   syn.Span,
			Params: params,
			Result: c.convertType(data.Result),
		}

	case ast.TypeRecord:
		data, _ := c.b.Types.Record(id)
		fields := make([]ir.TypeAnnotField, 0, len(data.Fields))
		for _, f := range data.Fields {
			fields = append(fields, ir.TypeAnnotField{
				Name: c.b.Name(f.Name),
				Type: c.convertType(f.Type),
			})
		}
		return &ir.TypeAnnot{Kind: ir.AnnotRecord, Span: syn.Span, Fields: fields}

	default:
		return nil
	}
}
