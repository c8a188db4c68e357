package ast

import (
	"tern/internal/source"
)

// ExprKind enumerates surface expression shapes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLit
	ExprVar
	ExprTag
	ExprList
	ExprRecord
	ExprRecordAccess
	ExprRecordUpdate
	ExprCall
	ExprLambda
	ExprIf
	ExprWhen
	ExprLet
	ExprHole
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "lit"
	case ExprVar:
		return "var"
	case ExprTag:
		return "tag"
	case ExprList:
		return "list"
	case ExprRecord:
		return "record"
	case ExprRecordAccess:
		return "access"
	case ExprRecordUpdate:
		return "update"
	case ExprCall:
		return "call"
	case ExprLambda:
		return "lambda"
	case ExprIf:
		return "if"
	case ExprWhen:
		return "when"
	case ExprLet:
		return "let"
	case ExprHole:
		return "hole"
	default:
		return "invalid"
	}
}

// Expr is the arena header of one expression node; the kind selects which
// payload arena holds its data.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LitKind enumerates literal shapes shared by expressions and patterns.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitUnit
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitChar:
		return "char"
	case LitUnit:
		return "unit"
	default:
		return "invalid"
	}
}

// Lit carries a literal's raw text plus the parsed numeric value where the
// kind has one.
type Lit struct {
	Kind  LitKind
	Text  source.StringID
	Int   int64
	Float float64
}

// ExprLitData is the payload for ExprLit.
type ExprLitData struct {
	Lit Lit
}

// ExprVarData is the payload for ExprVar. Module is NoStringID for an
// unqualified reference.
type ExprVarData struct {
	Module source.StringID
	Name   source.StringID
}

// ExprTagData is the payload for ExprTag. A saturated constructor shows up
// as ExprCall whose Fn is the tag.
type ExprTagData struct {
	Name source.StringID
}

// ExprListData is the payload for ExprList.
type ExprListData struct {
	Elems []ExprID
}

// RecordField is one name = value entry of a record construction or update.
type RecordField struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

// ExprRecordData is the payload for ExprRecord.
type ExprRecordData struct {
	Fields []RecordField
}

// ExprRecordAccessData is the payload for ExprRecordAccess (rec.field).
type ExprRecordAccessData struct {
	Record    ExprID
	Field     source.StringID
	FieldSpan source.Span
}

// ExprRecordUpdateData is the payload for ExprRecordUpdate
// ({ base | field = value, ... }).
type ExprRecordUpdateData struct {
	Base   ExprID
	Fields []RecordField
}

// ExprCallData is the payload for ExprCall.
type ExprCallData struct {
	Fn   ExprID
	Args []ExprID
}

// ExprLambdaData is the payload for ExprLambda.
type ExprLambdaData struct {
	Params []PatID
	Body   ExprID
}

// ExprIfData is the payload for ExprIf.
type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// WhenArm is one `pattern -> body` arm of a when expression.
type WhenArm struct {
	Pattern PatID
	Body    ExprID
	Span    source.Span
}

// ExprWhenData is the payload for ExprWhen.
type ExprWhenData struct {
	Subject ExprID
	Arms    []WhenArm
}

// LetAnnot is a `name : Type` line inside a let block.
type LetAnnot struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	Span     source.Span
}

// ExprLetData is the payload for ExprLet.
type ExprLetData struct {
	Defs   []DefID
	Annots []LetAnnot
	Body   ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Lits     *Arena[ExprLitData]
	Vars     *Arena[ExprVarData]
	Tags     *Arena[ExprTagData]
	Lists    *Arena[ExprListData]
	Records  *Arena[ExprRecordData]
	Accesses *Arena[ExprRecordAccessData]
	Updates  *Arena[ExprRecordUpdateData]
	Calls    *Arena[ExprCallData]
	Lambdas  *Arena[ExprLambdaData]
	Ifs      *Arena[ExprIfData]
	Whens    *Arena[ExprWhenData]
	Lets     *Arena[ExprLetData]
}

// NewExprs creates expression arenas preallocated to capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Lits:     NewArena[ExprLitData](capHint),
		Vars:     NewArena[ExprVarData](capHint),
		Tags:     NewArena[ExprTagData](capHint / 4),
		Lists:    NewArena[ExprListData](capHint / 4),
		Records:  NewArena[ExprRecordData](capHint / 4),
		Accesses: NewArena[ExprRecordAccessData](capHint / 4),
		Updates:  NewArena[ExprRecordUpdateData](capHint / 4),
		Calls:    NewArena[ExprCallData](capHint / 2),
		Lambdas:  NewArena[ExprLambdaData](capHint / 4),
		Ifs:      NewArena[ExprIfData](capHint / 4),
		Whens:    NewArena[ExprWhenData](capHint / 4),
		Lets:     NewArena[ExprLetData](capHint / 4),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression header with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewLit creates a literal expression.
func (e *Exprs) NewLit(span source.Span, lit Lit) ExprID {
	payload := e.Lits.Allocate(ExprLitData{Lit: lit})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Lit returns the literal data for the given expression ID.
func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Lits.Get(uint32(expr.Payload)), true
}

// NewVar creates a variable reference; module may be NoStringID.
func (e *Exprs) NewVar(span source.Span, module, name source.StringID) ExprID {
	payload := e.Vars.Allocate(ExprVarData{Module: module, Name: name})
	return e.new(ExprVar, span, PayloadID(payload))
}

// Var returns the variable data for the given expression ID.
func (e *Exprs) Var(id ExprID) (*ExprVarData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprVar {
		return nil, false
	}
	return e.Vars.Get(uint32(expr.Payload)), true
}

// NewTag creates a bare constructor reference.
func (e *Exprs) NewTag(span source.Span, name source.StringID) ExprID {
	payload := e.Tags.Allocate(ExprTagData{Name: name})
	return e.new(ExprTag, span, PayloadID(payload))
}

// Tag returns the tag data for the given expression ID.
func (e *Exprs) Tag(id ExprID) (*ExprTagData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTag {
		return nil, false
	}
	return e.Tags.Get(uint32(expr.Payload)), true
}

// NewList creates a list literal.
func (e *Exprs) NewList(span source.Span, elems []ExprID) ExprID {
	payload := e.Lists.Allocate(ExprListData{Elems: elems})
	return e.new(ExprList, span, PayloadID(payload))
}

// List returns the list data for the given expression ID.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprList {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

// NewRecord creates a record construction.
func (e *Exprs) NewRecord(span source.Span, fields []RecordField) ExprID {
	payload := e.Records.Allocate(ExprRecordData{Fields: fields})
	return e.new(ExprRecord, span, PayloadID(payload))
}

// Record returns the record data for the given expression ID.
func (e *Exprs) Record(id ExprID) (*ExprRecordData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprRecord {
		return nil, false
	}
	return e.Records.Get(uint32(expr.Payload)), true
}

// NewRecordAccess creates a field access expression.
func (e *Exprs) NewRecordAccess(span source.Span, record ExprID, field source.StringID, fieldSpan source.Span) ExprID {
	payload := e.Accesses.Allocate(ExprRecordAccessData{Record: record, Field: field, FieldSpan: fieldSpan})
	return e.new(ExprRecordAccess, span, PayloadID(payload))
}

// RecordAccess returns the access data for the given expression ID.
func (e *Exprs) RecordAccess(id ExprID) (*ExprRecordAccessData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprRecordAccess {
		return nil, false
	}
	return e.Accesses.Get(uint32(expr.Payload)), true
}

// NewRecordUpdate creates a record update expression.
func (e *Exprs) NewRecordUpdate(span source.Span, base ExprID, fields []RecordField) ExprID {
	payload := e.Updates.Allocate(ExprRecordUpdateData{Base: base, Fields: fields})
	return e.new(ExprRecordUpdate, span, PayloadID(payload))
}

// RecordUpdate returns the update data for the given expression ID.
func (e *Exprs) RecordUpdate(id ExprID) (*ExprRecordUpdateData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprRecordUpdate {
		return nil, false
	}
	return e.Updates.Get(uint32(expr.Payload)), true
}

// NewCall creates a function or constructor application.
func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Fn: fn, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewLambda creates a lambda expression.
func (e *Exprs) NewLambda(span source.Span, params []PatID, body ExprID) ExprID {
	payload := e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body})
	return e.new(ExprLambda, span, PayloadID(payload))
}

// Lambda returns the lambda data for the given expression ID.
func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLambda {
		return nil, false
	}
	return e.Lambdas.Get(uint32(expr.Payload)), true
}

// NewIf creates an if expression.
func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els})
	return e.new(ExprIf, span, PayloadID(payload))
}

// If returns the if data for the given expression ID.
func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(expr.Payload)), true
}

// NewWhen creates a when (pattern match) expression.
func (e *Exprs) NewWhen(span source.Span, subject ExprID, arms []WhenArm) ExprID {
	payload := e.Whens.Allocate(ExprWhenData{Subject: subject, Arms: arms})
	return e.new(ExprWhen, span, PayloadID(payload))
}

// When returns the when data for the given expression ID.
func (e *Exprs) When(id ExprID) (*ExprWhenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprWhen {
		return nil, false
	}
	return e.Whens.Get(uint32(expr.Payload)), true
}

// NewLet creates a let-in expression.
func (e *Exprs) NewLet(span source.Span, defs []DefID, annots []LetAnnot, body ExprID) ExprID {
	payload := e.Lets.Allocate(ExprLetData{Defs: defs, Annots: annots, Body: body})
	return e.new(ExprLet, span, PayloadID(payload))
}

// Let returns the let data for the given expression ID.
func (e *Exprs) Let(id ExprID) (*ExprLetData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLet {
		return nil, false
	}
	return e.Lets.Get(uint32(expr.Payload)), true
}

// NewHole creates a type hole expression.
func (e *Exprs) NewHole(span source.Span) ExprID {
	return e.new(ExprHole, span, NoPayloadID)
}
