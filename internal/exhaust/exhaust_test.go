package exhaust

import (
	"testing"

	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

func maybeTable(t *testing.T) (*symbols.Store, *symbols.TagTable) {
	t.Helper()
	st := symbols.NewStore()
	mod := st.Module("Main")
	table := symbols.NewTagTable()
	maybe := st.Fresh(mod, "Maybe")
	table.AddType("Maybe", maybe)
	table.AddTag(symbols.TagInfo{Name: "Just", Symbol: st.Fresh(mod, "Just"), Type: maybe, TypeName: "Maybe", Arity: 1})
	table.AddTag(symbols.TagInfo{Name: "Nothing", Symbol: st.Fresh(mod, "Nothing"), Type: maybe, TypeName: "Maybe", Arity: 0})
	return st, table
}

func tagPat(name string) *ir.Pattern {
	return &ir.Pattern{Kind: ir.PatternTag, Data: ir.PatTagData{Name: name}}
}

func wildPat() *ir.Pattern {
	return &ir.Pattern{Kind: ir.PatternWildcard, Data: ir.WildcardData{}}
}

func TestFullTagCoverageIsClean(t *testing.T) {
	_, table := maybeTable(t)
	checker := NewTagChecker(table)
	findings := checker.Check([]*ir.Pattern{tagPat("Just"), tagPat("Nothing")}, source.Span{})
	if len(findings) != 0 {
		t.Fatalf("unexpected findings: %+v", findings)
	}
}

func TestMissingTagReported(t *testing.T) {
	_, table := maybeTable(t)
	checker := NewTagChecker(table)
	findings := checker.Check([]*ir.Pattern{tagPat("Just")}, source.Span{})
	if len(findings) != 1 || findings[0].Kind != NonExhaustive {
		t.Fatalf("expected one non-exhaustive finding, got %+v", findings)
	}
	if len(findings[0].Missing) != 1 || findings[0].Missing[0] != "Nothing" {
		t.Fatalf("missing set wrong: %v", findings[0].Missing)
	}
}

func TestArmsAfterWildcardUnreachable(t *testing.T) {
	_, table := maybeTable(t)
	checker := NewTagChecker(table)
	findings := checker.Check([]*ir.Pattern{wildPat(), tagPat("Just"), tagPat("Nothing")}, source.Span{})
	if len(findings) != 2 {
		t.Fatalf("expected two unreachable arms, got %+v", findings)
	}
	for i, f := range findings {
		if f.Kind != UnreachableArm || f.Arm != i+1 {
			t.Fatalf("finding %d wrong: %+v", i, f)
		}
	}
}

func TestLiteralArmsWithoutCatchAll(t *testing.T) {
	_, table := maybeTable(t)
	checker := NewTagChecker(table)
	lit := &ir.Pattern{Kind: ir.PatternLiteral, Data: ir.PatLiteralData{}}
	findings := checker.Check([]*ir.Pattern{lit}, source.Span{})
	if len(findings) != 1 || findings[0].Kind != NonExhaustive {
		t.Fatalf("expected non-exhaustive, got %+v", findings)
	}
}
