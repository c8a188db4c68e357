package ast

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/source"
)

// codecVersion is bumped whenever the serialized layout changes; a mismatch
// is a hard decode error rather than a silent misread.
const codecVersion uint16 = 1

// snapshot is the flat serialized form of one module's syntax tree. The
// external parser emits it as a .tnast file; tests and the driver read it
// back with DecodeModule.
type snapshot struct {
	Version uint16
	Module  Module
	Strings []string

	Exprs        []Expr
	ExprLits     []ExprLitData
	ExprVars     []ExprVarData
	ExprTags     []ExprTagData
	ExprLists    []ExprListData
	ExprRecords  []ExprRecordData
	ExprAccesses []ExprRecordAccessData
	ExprUpdates  []ExprRecordUpdateData
	ExprCalls    []ExprCallData
	ExprLambdas  []ExprLambdaData
	ExprIfs      []ExprIfData
	ExprWhens    []ExprWhenData
	ExprLets     []ExprLetData

	Pats       []Pat
	PatIdents  []PatIdentData
	PatLits    []PatLitData
	PatTags    []PatTagData
	PatRecords []PatRecordData
	PatLists   []PatListData
	PatAses    []PatAsData

	Defs []Def

	Types       []TypeSyn
	TypeNames   []TypeNameData
	TypeVars    []TypeVarData
	TypeFns     []TypeFnData
	TypeRecords []TypeRecordData
}

// EncodeModule serializes the builder's tree to w in msgpack form.
func EncodeModule(w io.Writer, b *Builder) error {
	snap := snapshot{
		Version: codecVersion,
		Module:  b.Module,
		Strings: b.Strings.Snapshot(),

		Exprs:        b.Exprs.Arena.Slice(),
		ExprLits:     b.Exprs.Lits.Slice(),
		ExprVars:     b.Exprs.Vars.Slice(),
		ExprTags:     b.Exprs.Tags.Slice(),
		ExprLists:    b.Exprs.Lists.Slice(),
		ExprRecords:  b.Exprs.Records.Slice(),
		ExprAccesses: b.Exprs.Accesses.Slice(),
		ExprUpdates:  b.Exprs.Updates.Slice(),
		ExprCalls:    b.Exprs.Calls.Slice(),
		ExprLambdas:  b.Exprs.Lambdas.Slice(),
		ExprIfs:      b.Exprs.Ifs.Slice(),
		ExprWhens:    b.Exprs.Whens.Slice(),
		ExprLets:     b.Exprs.Lets.Slice(),

		Pats:       b.Pats.Arena.Slice(),
		PatIdents:  b.Pats.Idents.Slice(),
		PatLits:    b.Pats.Lits.Slice(),
		PatTags:    b.Pats.Tags.Slice(),
		PatRecords: b.Pats.Records.Slice(),
		PatLists:   b.Pats.Lists.Slice(),
		PatAses:    b.Pats.Ases.Slice(),

		Defs: b.Defs.Arena.Slice(),

		Types:       b.Types.Arena.Slice(),
		TypeNames:   b.Types.Names.Slice(),
		TypeVars:    b.Types.Vars.Slice(),
		TypeFns:     b.Types.Fns.Slice(),
		TypeRecords: b.Types.Records.Slice(),
	}
	return msgpack.NewEncoder(w).Encode(&snap)
}

// DecodeModule reads a serialized syntax tree back into a fresh builder.
func DecodeModule(r io.Reader) (*Builder, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode syntax tree: %w", err)
	}
	if snap.Version != codecVersion {
		return nil, fmt.Errorf("syntax tree version %d, want %d", snap.Version, codecVersion)
	}

	b := NewBuilder(Hints{}, source.Restore(snap.Strings))
	b.Module = snap.Module

	b.Exprs.Arena.restore(snap.Exprs)
	b.Exprs.Lits.restore(snap.ExprLits)
	b.Exprs.Vars.restore(snap.ExprVars)
	b.Exprs.Tags.restore(snap.ExprTags)
	b.Exprs.Lists.restore(snap.ExprLists)
	b.Exprs.Records.restore(snap.ExprRecords)
	b.Exprs.Accesses.restore(snap.ExprAccesses)
	b.Exprs.Updates.restore(snap.ExprUpdates)
	b.Exprs.Calls.restore(snap.ExprCalls)
	b.Exprs.Lambdas.restore(snap.ExprLambdas)
	b.Exprs.Ifs.restore(snap.ExprIfs)
	b.Exprs.Whens.restore(snap.ExprWhens)
	b.Exprs.Lets.restore(snap.ExprLets)

	b.Pats.Arena.restore(snap.Pats)
	b.Pats.Idents.restore(snap.PatIdents)
	b.Pats.Lits.restore(snap.PatLits)
	b.Pats.Tags.restore(snap.PatTags)
	b.Pats.Records.restore(snap.PatRecords)
	b.Pats.Lists.restore(snap.PatLists)
	b.Pats.Ases.restore(snap.PatAses)

	b.Defs.Arena.restore(snap.Defs)

	b.Types.Arena.restore(snap.Types)
	b.Types.Names.restore(snap.TypeNames)
	b.Types.Vars.restore(snap.TypeVars)
	b.Types.Fns.restore(snap.TypeFns)
	b.Types.Records.restore(snap.TypeRecords)

	return b, nil
}
