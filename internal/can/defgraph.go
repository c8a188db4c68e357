package can

import (
	"fmt"
	"sort"

	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

// annotPair is one `name : Type` line of a definition level, normalized so
// top-level and let-level annotations go through the same pairing code.
type annotPair struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Type     ast.TypeID
}

func topAnnots(b *ast.Builder, annots []ast.Annotation) []annotPair {
	out := make([]annotPair, 0, len(annots))
	for _, a := range annots {
		out = append(out, annotPair{
			Name: b.Name(a.Name), NameSpan: a.NameSpan, Span: a.Span, Type: a.Type,
		})
	}
	return out
}

func letAnnots(b *ast.Builder, annots []ast.LetAnnot) []annotPair {
	out := make([]annotPair, 0, len(annots))
	for _, a := range annots {
		out = append(out, annotPair{
			Name: b.Name(a.Name), NameSpan: a.NameSpan, Span: a.Span, Type: a.Type,
		})
	}
	return out
}

// depFrame records which same-level definition every symbol belongs to and
// the references collected while each definition's body is walked. A frame
// is live for exactly one definition level; nested lets stack their own
// frames so a reference deep inside an inner body still lands as an edge
// on every enclosing level that defined the referenced symbol.
type depFrame struct {
	bySym map[symbols.Symbol]int
	edges [][]int
	cur   int
}

// noteRef is called for every resolved variable reference.
func (c *canonicalizer) noteRef(sym symbols.Symbol) {
	for _, f := range c.deps {
		if f.cur < 0 {
			continue
		}
		if idx, ok := f.bySym[sym]; ok {
			f.edges[f.cur] = append(f.edges[f.cur], idx)
		}
	}
}

// canonDefs lowers one definition level (the module top level or one let
// block) into dependency-ordered groups. All patterns bind first so every
// sibling is visible from every body, then bodies are walked with reference
// tracking, then the graph is condensed into strongly connected components.
func (c *canonicalizer) canonDefs(defIDs []ast.DefID, annots []annotPair) []ir.DefGroup {
	n := len(defIDs)
	if n == 0 {
		return nil
	}

	pats := make([]*ir.Pattern, n)
	frame := &depFrame{
		bySym: make(map[symbols.Symbol]int, n),
		edges: make([][]int, n),
		cur:   -1,
	}
	for i, id := range defIDs {
		d := c.b.Defs.Get(id)
		pats[i] = c.canonPattern(d.Pattern, newPatBinder())
		for _, sym := range pats[i].Bindings() {
			frame.bySym[sym] = i
		}
	}

	defs := make([]*ir.Def, n)
	c.deps = append(c.deps, frame)
	for i, id := range defIDs {
		d := c.b.Defs.Get(id)
		frame.cur = i
		body := c.canonExpr(d.Body)
		frame.cur = -1
		defs[i] = &ir.Def{Pattern: pats[i], Body: body, Span: d.Span}
	}
	c.deps = c.deps[:len(c.deps)-1]

	c.attachAnnotations(defs, annots)

	hasSelf := make([]bool, n)
	for i := range frame.edges {
		frame.edges[i] = dedupEdges(frame.edges[i])
		for _, to := range frame.edges[i] {
			if to == i {
				hasSelf[i] = true
			}
		}
	}

	groups := make([]ir.DefGroup, 0, n)
	for _, comp := range tarjanSCC(n, frame.edges) {
		sort.Ints(comp)
		group := ir.DefGroup{Defs: make([]*ir.Def, 0, len(comp))}
		for _, i := range comp {
			group.Defs = append(group.Defs, defs[i])
		}
		switch {
		case len(comp) > 1:
			group.Kind = ir.GroupMutual
		case hasSelf[comp[0]]:
			group.Kind = ir.GroupSelfRecursive
		default:
			group.Kind = ir.GroupNonRecursive
		}
		if group.Kind != ir.GroupNonRecursive {
			c.checkCycleLegality(&group)
		}
		groups = append(groups, group)
	}
	return groups
}

// attachAnnotations pairs `name : Type` lines with the definition binding
// that exact name. Annotations only attach to plain single-name bindings.
func (c *canonicalizer) attachAnnotations(defs []*ir.Def, annots []annotPair) {
	byName := make(map[string]int, len(defs))
	for i, def := range defs {
		if bd, ok := def.Pattern.Data.(ir.BindData); ok {
			byName[bd.Name] = i
		}
	}
	for _, a := range annots {
		i, ok := byName[a.Name]
		if !ok {
			diag.ReportWarning(c.env.Reporter, diag.CanAnnotationWithoutDef, a.NameSpan,
				fmt.Sprintf("the annotation for `%s` has no matching definition", a.Name)).Emit()
			continue
		}
		defs[i].Annotation = &ir.Annotation{Span: a.Span, Type: c.convertType(a.Type)}
	}
}

// checkCycleLegality enforces that recursion only flows through function
// bodies. An illegal group is marked and reported but still emitted so the
// rest of the pipeline keeps going.
func (c *canonicalizer) checkCycleLegality(group *ir.DefGroup) {
	for _, def := range group.Defs {
		if def.Body.IsLambda() {
			continue
		}
		group.Illegal = true
		break
	}
	if !group.Illegal {
		return
	}

	first := group.Defs[0]
	rb := diag.ReportError(c.env.Reporter, diag.CanIllegalCycle, first.Span,
		"these definitions depend on each other without going through a function")
	for _, def := range group.Defs {
		rb.WithNote(def.Span, fmt.Sprintf("`%s` is part of the cycle", defDisplayName(def)))
	}
	rb.Emit()
}

func defDisplayName(def *ir.Def) string {
	switch data := def.Pattern.Data.(type) {
	case ir.BindData:
		return data.Name
	case ir.PatAsData:
		return data.Name
	default:
		return "this definition"
	}
}

func dedupEdges(edges []int) []int {
	if len(edges) < 2 {
		return edges
	}
	sort.Ints(edges)
	out := edges[:1]
	for _, e := range edges[1:] {
		if e != out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}

// tarjanSCC condenses the reference graph into strongly connected
// components. Components come out with dependencies before dependents, and
// visiting roots in source order keeps independent definitions in source
// order too.
func tarjanSCC(n int, edges [][]int) [][]int {
	const unvisited = -1
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		stack []int
		next  int
		comps [][]int
	)

	var connect func(v int)
	connect = func(v int) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if index[w] == unvisited {
				connect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] && index[w] < low[v] {
				low[v] = index[w]
			}
		}

		if low[v] == index[v] {
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			comps = append(comps, comp)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == unvisited {
			connect(v)
		}
	}
	return comps
}
