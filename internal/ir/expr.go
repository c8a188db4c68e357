package ir

import (
	"tern/internal/ast"
	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/symbols"
)

// ExprKind enumerates canonical expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, string, char, unit).
	ExprLiteral ExprKind = iota
	// ExprVarRef is a variable reference carrying its resolved symbol.
	ExprVarRef
	// ExprList is a list construction.
	ExprList
	// ExprRecord is a record construction.
	ExprRecord
	// ExprRecordAccess is a field access.
	ExprRecordAccess
	// ExprRecordUpdate is a record update.
	ExprRecordUpdate
	// ExprTagApply is a constructor application (possibly with zero args).
	ExprTagApply
	// ExprCall is a function application.
	ExprCall
	// ExprLambda is a function literal.
	ExprLambda
	// ExprIf is a conditional.
	ExprIf
	// ExprWhen is a pattern match.
	ExprWhen
	// ExprLet is a let-in with ordered definition groups.
	ExprLet
	// ExprHole is a type hole.
	ExprHole
	// ExprRuntimeError is the placeholder left where canonicalization of a
	// subtree failed; it keeps the tree well-formed and traversable.
	ExprRuntimeError
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprList:
		return "List"
	case ExprRecord:
		return "Record"
	case ExprRecordAccess:
		return "RecordAccess"
	case ExprRecordUpdate:
		return "RecordUpdate"
	case ExprTagApply:
		return "TagApply"
	case ExprCall:
		return "Call"
	case ExprLambda:
		return "Lambda"
	case ExprIf:
		return "If"
	case ExprWhen:
		return "When"
	case ExprLet:
		return "Let"
	case ExprHole:
		return "Hole"
	case ExprRuntimeError:
		return "RuntimeError"
	default:
		return "Unknown"
	}
}

// Expr is one canonical expression node. Each node owns its children; spans
// are copied by value, so the tree has no back references.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the closed interface over kind-specific payloads.
type ExprData interface {
	exprData()
}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Lit ast.Lit
}

// VarRefData holds data for ExprVarRef. Name duplicates the symbol's
// surface name for printing and diagnostics.
type VarRefData struct {
	Symbol symbols.Symbol
	Name   string
}

// ListData holds data for ExprList.
type ListData struct {
	Elems []*Expr
}

// RecordField is one canonical record field.
type RecordField struct {
	Name  string
	Span  source.Span
	Value *Expr
}

// RecordData holds data for ExprRecord.
type RecordData struct {
	Fields []RecordField
}

// RecordAccessData holds data for ExprRecordAccess.
type RecordAccessData struct {
	Record *Expr
	Field  string
}

// RecordUpdateData holds data for ExprRecordUpdate.
type RecordUpdateData struct {
	Base   *Expr
	Fields []RecordField
}

// TagApplyData holds data for ExprTagApply. Symbol is NoSymbol when the tag
// did not resolve; the problem list carries the diagnostic.
type TagApplyData struct {
	Name   string
	Symbol symbols.Symbol
	Args   []*Expr
}

// CallData holds data for ExprCall.
type CallData struct {
	Fn   *Expr
	Args []*Expr
}

// LambdaData holds data for ExprLambda.
type LambdaData struct {
	Params []*Pattern
	Body   *Expr
}

// IfData holds data for ExprIf.
type IfData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

// WhenArm is one canonical match arm.
type WhenArm struct {
	Pattern *Pattern
	Body    *Expr
	Span    source.Span
}

// WhenData holds data for ExprWhen.
type WhenData struct {
	Subject *Expr
	Arms    []WhenArm
}

// LetData holds data for ExprLet. Groups are in dependency order.
type LetData struct {
	Groups []DefGroup
	Body   *Expr
}

// HoleData holds data for ExprHole.
type HoleData struct{}

// RuntimeErrorData holds data for ExprRuntimeError: which problem produced
// the placeholder and the offending surface name where one exists.
type RuntimeErrorData struct {
	Code diag.Code
	Name string
}

func (LiteralData) exprData()      {}
func (VarRefData) exprData()       {}
func (ListData) exprData()         {}
func (RecordData) exprData()       {}
func (RecordAccessData) exprData() {}
func (RecordUpdateData) exprData() {}
func (TagApplyData) exprData()     {}
func (CallData) exprData()         {}
func (LambdaData) exprData()       {}
func (IfData) exprData()           {}
func (WhenData) exprData()         {}
func (LetData) exprData()          {}
func (HoleData) exprData()         {}
func (RuntimeErrorData) exprData() {}

// IsLambda reports whether the expression is a function literal. The
// definition graph builder uses this to decide cycle legality.
func (e *Expr) IsLambda() bool {
	return e != nil && e.Kind == ExprLambda
}

// RuntimeError builds a placeholder node for a failed subtree.
func RuntimeError(span source.Span, code diag.Code, name string) *Expr {
	return &Expr{
		Kind: ExprRuntimeError,
		Span: span,
		Data: RuntimeErrorData{Code: code, Name: name},
	}
}
