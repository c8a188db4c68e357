package ast

import (
	"bytes"
	"testing"

	"tern/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestExprPayloadAccessors(t *testing.T) {
	b := NewBuilder(Hints{}, nil)

	x := b.Intern("x")
	varID := b.Exprs.NewVar(sp(0, 1), source.NoStringID, x)
	call := b.Exprs.NewCall(sp(0, 5), varID, []ExprID{b.Exprs.NewHole(sp(2, 3))})

	data, ok := b.Exprs.Var(varID)
	if !ok || data.Name != x {
		t.Fatalf("var accessor broken: %+v ok=%v", data, ok)
	}
	if _, ok := b.Exprs.Var(call); ok {
		t.Fatalf("kind-mismatched accessor must fail")
	}
	callData, ok := b.Exprs.Call(call)
	if !ok || callData.Fn != varID || len(callData.Args) != 1 {
		t.Fatalf("call accessor broken: %+v", callData)
	}
}

func TestPatternAccessors(t *testing.T) {
	b := NewBuilder(Hints{}, nil)

	inner := b.Pats.NewIdent(sp(0, 1), b.Intern("y"))
	as := b.Pats.NewAs(sp(0, 8), inner, b.Intern("all"), sp(5, 8))

	data, ok := b.Pats.As(as)
	if !ok || data.Inner != inner {
		t.Fatalf("as accessor broken: %+v", data)
	}
	if b.Pats.Get(NoPatID) != nil {
		t.Fatalf("invalid ID must return nil")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	b.Module.Name = "Main"

	f := b.Intern("f")
	x := b.Intern("x")
	pat := b.Pats.NewIdent(sp(0, 1), f)
	param := b.Pats.NewIdent(sp(3, 4), x)
	body := b.Exprs.NewVar(sp(8, 9), source.NoStringID, x)
	lambda := b.Exprs.NewLambda(sp(2, 9), []PatID{param}, body)
	b.PushDef(b.Defs.New(pat, lambda, sp(0, 9)))

	var buf bytes.Buffer
	if err := EncodeModule(&buf, b); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := DecodeModule(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Module.Name != "Main" || len(got.Module.Defs) != 1 {
		t.Fatalf("module header lost: %+v", got.Module)
	}

	def := got.Defs.Get(got.Module.Defs[0])
	lam, ok := got.Exprs.Lambda(def.Body)
	if !ok || len(lam.Params) != 1 {
		t.Fatalf("lambda lost in round trip")
	}
	bodyVar, ok := got.Exprs.Var(lam.Body)
	if !ok || got.Name(bodyVar.Name) != "x" {
		t.Fatalf("names drifted in round trip")
	}
}

func TestCodecRejectsVersionMismatch(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	var buf bytes.Buffer
	if err := EncodeModule(&buf, b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Corrupt the version by re-encoding a snapshot built by hand is
	// overkill; decoding garbage must error cleanly too.
	if _, err := DecodeModule(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatalf("garbage input must fail to decode")
	}
}
