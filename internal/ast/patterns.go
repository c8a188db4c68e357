package ast

import (
	"tern/internal/source"
)

// PatKind enumerates surface pattern shapes.
type PatKind uint8

const (
	PatInvalid PatKind = iota
	PatIdent
	PatWildcard
	PatLit
	PatTag
	PatRecord
	PatList
	PatAs
)

func (k PatKind) String() string {
	switch k {
	case PatIdent:
		return "ident"
	case PatWildcard:
		return "wildcard"
	case PatLit:
		return "lit"
	case PatTag:
		return "tag"
	case PatRecord:
		return "record"
	case PatList:
		return "list"
	case PatAs:
		return "as"
	default:
		return "invalid"
	}
}

// Pat is the arena header of one pattern node.
type Pat struct {
	Kind    PatKind
	Span    source.Span
	Payload PayloadID
}

// PatIdentData is the payload for PatIdent.
type PatIdentData struct {
	Name source.StringID
}

// PatLitData is the payload for PatLit.
type PatLitData struct {
	Lit Lit
}

// PatTagData is the payload for PatTag (constructor with sub-patterns).
type PatTagData struct {
	Name     source.StringID
	NameSpan source.Span
	Args     []PatID
}

// PatRecordField is one destructured field name.
type PatRecordField struct {
	Name source.StringID
	Span source.Span
}

// PatRecordData is the payload for PatRecord ({a, b}).
type PatRecordData struct {
	Fields []PatRecordField
}

// PatListData is the payload for PatList. Rest is NoPatID when the pattern
// has no `...rest` tail; when present it must be an ident or wildcard.
type PatListData struct {
	Elems []PatID
	Rest  PatID
}

// PatAsData is the payload for PatAs (inner as name).
type PatAsData struct {
	Inner    PatID
	Name     source.StringID
	NameSpan source.Span
}

// Pats manages allocation of patterns.
type Pats struct {
	Arena   *Arena[Pat]
	Idents  *Arena[PatIdentData]
	Lits    *Arena[PatLitData]
	Tags    *Arena[PatTagData]
	Records *Arena[PatRecordData]
	Lists   *Arena[PatListData]
	Ases    *Arena[PatAsData]
}

// NewPats creates pattern arenas preallocated to capHint.
func NewPats(capHint uint) *Pats {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Pats{
		Arena:   NewArena[Pat](capHint),
		Idents:  NewArena[PatIdentData](capHint),
		Lits:    NewArena[PatLitData](capHint / 4),
		Tags:    NewArena[PatTagData](capHint / 2),
		Records: NewArena[PatRecordData](capHint / 4),
		Lists:   NewArena[PatListData](capHint / 4),
		Ases:    NewArena[PatAsData](capHint / 4),
	}
}

func (p *Pats) new(kind PatKind, span source.Span, payload PayloadID) PatID {
	return PatID(p.Arena.Allocate(Pat{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the pattern header with the given ID.
func (p *Pats) Get(id PatID) *Pat {
	return p.Arena.Get(uint32(id))
}

// NewIdent creates an identifier binding pattern.
func (p *Pats) NewIdent(span source.Span, name source.StringID) PatID {
	payload := p.Idents.Allocate(PatIdentData{Name: name})
	return p.new(PatIdent, span, PayloadID(payload))
}

// Ident returns the ident data for the given pattern ID.
func (p *Pats) Ident(id PatID) (*PatIdentData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatIdent {
		return nil, false
	}
	return p.Idents.Get(uint32(pat.Payload)), true
}

// NewWildcard creates a wildcard pattern.
func (p *Pats) NewWildcard(span source.Span) PatID {
	return p.new(PatWildcard, span, NoPayloadID)
}

// NewLit creates a literal pattern.
func (p *Pats) NewLit(span source.Span, lit Lit) PatID {
	payload := p.Lits.Allocate(PatLitData{Lit: lit})
	return p.new(PatLit, span, PayloadID(payload))
}

// Lit returns the literal data for the given pattern ID.
func (p *Pats) Lit(id PatID) (*PatLitData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatLit {
		return nil, false
	}
	return p.Lits.Get(uint32(pat.Payload)), true
}

// NewTag creates a constructor pattern.
func (p *Pats) NewTag(span source.Span, name source.StringID, nameSpan source.Span, args []PatID) PatID {
	payload := p.Tags.Allocate(PatTagData{Name: name, NameSpan: nameSpan, Args: args})
	return p.new(PatTag, span, PayloadID(payload))
}

// Tag returns the tag data for the given pattern ID.
func (p *Pats) Tag(id PatID) (*PatTagData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatTag {
		return nil, false
	}
	return p.Tags.Get(uint32(pat.Payload)), true
}

// NewRecord creates a record destructure pattern.
func (p *Pats) NewRecord(span source.Span, fields []PatRecordField) PatID {
	payload := p.Records.Allocate(PatRecordData{Fields: fields})
	return p.new(PatRecord, span, PayloadID(payload))
}

// Record returns the record data for the given pattern ID.
func (p *Pats) Record(id PatID) (*PatRecordData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatRecord {
		return nil, false
	}
	return p.Records.Get(uint32(pat.Payload)), true
}

// NewList creates a list destructure pattern.
func (p *Pats) NewList(span source.Span, elems []PatID, rest PatID) PatID {
	payload := p.Lists.Allocate(PatListData{Elems: elems, Rest: rest})
	return p.new(PatList, span, PayloadID(payload))
}

// List returns the list data for the given pattern ID.
func (p *Pats) List(id PatID) (*PatListData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatList {
		return nil, false
	}
	return p.Lists.Get(uint32(pat.Payload)), true
}

// NewAs creates an as-binding pattern.
func (p *Pats) NewAs(span source.Span, inner PatID, name source.StringID, nameSpan source.Span) PatID {
	payload := p.Ases.Allocate(PatAsData{Inner: inner, Name: name, NameSpan: nameSpan})
	return p.new(PatAs, span, PayloadID(payload))
}

// As returns the as data for the given pattern ID.
func (p *Pats) As(id PatID) (*PatAsData, bool) {
	pat := p.Get(id)
	if pat == nil || pat.Kind != PatAs {
		return nil, false
	}
	return p.Ases.Get(uint32(pat.Payload)), true
}
