package ir

import (
	"tern/internal/ast"
	"tern/internal/source"
	"tern/internal/symbols"
)

// PatternKind enumerates canonical pattern kinds.
type PatternKind uint8

const (
	// PatternBind introduces one binding.
	PatternBind PatternKind = iota
	// PatternWildcard matches anything, binds nothing.
	PatternWildcard
	// PatternLiteral matches one literal value.
	PatternLiteral
	// PatternTag matches a constructor and destructures its payload.
	PatternTag
	// PatternRecord destructures record fields into bindings.
	PatternRecord
	// PatternList destructures list elements, optionally with a rest tail.
	PatternList
	// PatternAs binds the whole matched value alongside the inner pattern.
	PatternAs
)

// String returns a human-readable name for the pattern kind.
func (k PatternKind) String() string {
	switch k {
	case PatternBind:
		return "Bind"
	case PatternWildcard:
		return "Wildcard"
	case PatternLiteral:
		return "Literal"
	case PatternTag:
		return "Tag"
	case PatternRecord:
		return "Record"
	case PatternList:
		return "List"
	case PatternAs:
		return "As"
	default:
		return "Unknown"
	}
}

// Pattern is one canonical pattern node.
type Pattern struct {
	Kind PatternKind
	Span source.Span
	Data PatternData
}

// PatternData is the closed interface over kind-specific payloads.
type PatternData interface {
	patternData()
}

// BindData holds data for PatternBind.
type BindData struct {
	Symbol symbols.Symbol
	Name   string
}

// WildcardData holds data for PatternWildcard.
type WildcardData struct{}

// PatLiteralData holds data for PatternLiteral.
type PatLiteralData struct {
	Lit ast.Lit
}

// PatTagData holds data for PatternTag. Symbol is NoSymbol when the tag did
// not resolve; the node still carries its sub-patterns so the tree stays
// traversable.
type PatTagData struct {
	Name   string
	Symbol symbols.Symbol
	Args   []*Pattern
}

// PatRecordFieldBind is one destructured record field.
type PatRecordFieldBind struct {
	Name   string
	Symbol symbols.Symbol
	Span   source.Span
}

// PatRecordData holds data for PatternRecord.
type PatRecordData struct {
	Fields []PatRecordFieldBind
}

// PatListData holds data for PatternList. Rest is nil without a tail.
type PatListData struct {
	Elems []*Pattern
	Rest  *Pattern
}

// PatAsData holds data for PatternAs.
type PatAsData struct {
	Inner  *Pattern
	Symbol symbols.Symbol
	Name   string
}

func (BindData) patternData()       {}
func (WildcardData) patternData()   {}
func (PatLiteralData) patternData() {}
func (PatTagData) patternData()     {}
func (PatRecordData) patternData()  {}
func (PatListData) patternData()    {}
func (PatAsData) patternData()      {}

// Bindings collects every symbol the pattern introduces, in binding order.
func (p *Pattern) Bindings() []symbols.Symbol {
	var out []symbols.Symbol
	p.collectBindings(&out)
	return out
}

func (p *Pattern) collectBindings(out *[]symbols.Symbol) {
	if p == nil {
		return
	}
	switch data := p.Data.(type) {
	case BindData:
		*out = append(*out, data.Symbol)
	case PatTagData:
		for _, arg := range data.Args {
			arg.collectBindings(out)
		}
	case PatRecordData:
		for _, f := range data.Fields {
			*out = append(*out, f.Symbol)
		}
	case PatListData:
		for _, el := range data.Elems {
			el.collectBindings(out)
		}
		data.Rest.collectBindings(out)
	case PatAsData:
		data.Inner.collectBindings(out)
		*out = append(*out, data.Symbol)
	}
}
