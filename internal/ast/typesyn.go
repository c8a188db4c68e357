package ast

import (
	"tern/internal/source"
)

// TypeKind enumerates surface type syntax shapes. Canonicalization carries
// annotations through structurally; it never checks them.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeName            // Maybe a, List Int, qualified names included
	TypeVar             // lowercase type variable
	TypeFn              // a -> b -> c
	TypeRecord          // { x : Int, y : Int }
)

func (k TypeKind) String() string {
	switch k {
	case TypeName:
		return "name"
	case TypeVar:
		return "var"
	case TypeFn:
		return "fn"
	case TypeRecord:
		return "record"
	default:
		return "invalid"
	}
}

// TypeSyn is the arena header of one type syntax node.
type TypeSyn struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

// TypeNameData is the payload for TypeName.
type TypeNameData struct {
	Module source.StringID // NoStringID when unqualified
	Name   source.StringID
	Args   []TypeID
}

// TypeVarData is the payload for TypeVar.
type TypeVarData struct {
	Name source.StringID
}

// TypeFnData is the payload for TypeFn.
type TypeFnData struct {
	Params []TypeID
	Result TypeID
}

// TypeFieldSyn is one field of a record type.
type TypeFieldSyn struct {
	Name source.StringID
	Type TypeID
}

// TypeRecordData is the payload for TypeRecord.
type TypeRecordData struct {
	Fields []TypeFieldSyn
}

// Types manages allocation of type syntax nodes.
type Types struct {
	Arena   *Arena[TypeSyn]
	Names   *Arena[TypeNameData]
	Vars    *Arena[TypeVarData]
	Fns     *Arena[TypeFnData]
	Records *Arena[TypeRecordData]
}

// NewTypes creates type arenas preallocated to capHint.
func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:   NewArena[TypeSyn](capHint),
		Names:   NewArena[TypeNameData](capHint),
		Vars:    NewArena[TypeVarData](capHint),
		Fns:     NewArena[TypeFnData](capHint / 2),
		Records: NewArena[TypeRecordData](capHint / 2),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(TypeSyn{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the type header with the given ID.
func (t *Types) Get(id TypeID) *TypeSyn {
	return t.Arena.Get(uint32(id))
}

// NewName creates a named type reference.
func (t *Types) NewName(span source.Span, module, name source.StringID, args []TypeID) TypeID {
	payload := t.Names.Allocate(TypeNameData{Module: module, Name: name, Args: args})
	return t.new(TypeName, span, PayloadID(payload))
}

// Name returns the name data for the given type ID.
func (t *Types) Name(id TypeID) (*TypeNameData, bool) {
	syn := t.Get(id)
	if syn == nil || syn.Kind != TypeName {
		return nil, false
	}
	return t.Names.Get(uint32(syn.Payload)), true
}

// NewVar creates a type variable reference.
func (t *Types) NewVar(span source.Span, name source.StringID) TypeID {
	payload := t.Vars.Allocate(TypeVarData{Name: name})
	return t.new(TypeVar, span, PayloadID(payload))
}

// Var returns the var data for the given type ID.
func (t *Types) Var(id TypeID) (*TypeVarData, bool) {
	syn := t.Get(id)
	if syn == nil || syn.Kind != TypeVar {
		return nil, false
	}
	return t.Vars.Get(uint32(syn.Payload)), true
}

// NewFn creates a function type.
func (t *Types) NewFn(span source.Span, params []TypeID, result TypeID) TypeID {
	payload := t.Fns.Allocate(TypeFnData{Params: params, Result: result})
	return t.new(TypeFn, span, PayloadID(payload))
}

// Fn returns the fn data for the given type ID.
func (t *Types) Fn(id TypeID) (*TypeFnData, bool) {
	syn := t.Get(id)
	if syn == nil || syn.Kind != TypeFn {
		return nil, false
	}
	return t.Fns.Get(uint32(syn.Payload)), true
}

// NewRecord creates a record type.
func (t *Types) NewRecord(span source.Span, fields []TypeFieldSyn) TypeID {
	payload := t.Records.Allocate(TypeRecordData{Fields: fields})
	return t.new(TypeRecord, span, PayloadID(payload))
}

// Record returns the record data for the given type ID.
func (t *Types) Record(id TypeID) (*TypeRecordData, bool) {
	syn := t.Get(id)
	if syn == nil || syn.Kind != TypeRecord {
		return nil, false
	}
	return t.Records.Get(uint32(syn.Payload)), true
}
