// Package exhaust is the exhaustiveness collaborator consulted by
// canonicalization. It inspects the canonical patterns of one match
// expression and returns findings; it never mutates the canonical tree.
package exhaust

import (
	"sort"

	"tern/internal/ir"
	"tern/internal/source"
	"tern/internal/symbols"
)

// FindingKind classifies one finding.
type FindingKind uint8

const (
	// NonExhaustive means the arms do not cover every shape.
	NonExhaustive FindingKind = iota
	// UnreachableArm means an arm can never match.
	UnreachableArm
)

func (k FindingKind) String() string {
	switch k {
	case NonExhaustive:
		return "non-exhaustive"
	case UnreachableArm:
		return "unreachable-arm"
	default:
		return "unknown"
	}
}

// Finding is one result of a check.
type Finding struct {
	Kind FindingKind
	Span source.Span
	// Missing lists uncovered constructor names for NonExhaustive.
	Missing []string
	// Arm is the index of the offending arm for UnreachableArm.
	Arm int
}

// Checker is the collaborator contract: canonicalization hands over the arm
// patterns of one when expression plus its span and attaches whatever comes
// back as problems.
type Checker interface {
	Check(arms []*ir.Pattern, span source.Span) []Finding
}

// Nop reports nothing; used when no tag table is available.
type Nop struct{}

func (Nop) Check([]*ir.Pattern, source.Span) []Finding { return nil }

// TagChecker decides coverage from the module's tag table.
type TagChecker struct {
	Tags *symbols.TagTable
}

// NewTagChecker builds a checker over the given tag table.
func NewTagChecker(tags *symbols.TagTable) *TagChecker {
	return &TagChecker{Tags: tags}
}

// Check reports non-exhaustive arm sets and arms shadowed by an earlier
// irrefutable pattern. It deliberately stays first-level: nested pattern
// coverage belongs to a future, smarter collaborator.
func (c *TagChecker) Check(arms []*ir.Pattern, span source.Span) []Finding {
	var findings []Finding

	irrefutableAt := -1
	for i, arm := range arms {
		if irrefutableAt >= 0 {
			findings = append(findings, Finding{
				Kind: UnreachableArm,
				Span: arm.Span,
				Arm:  i,
			})
			continue
		}
		if isIrrefutable(arm) {
			irrefutableAt = i
		}
	}
	if irrefutableAt >= 0 {
		return findings
	}

	covered := make(map[string]bool)
	var siblings []string
	sawTag := false
	for _, arm := range arms {
		tag, ok := tagHead(arm)
		if !ok {
			// Literal or list heads without a catch-all arm: coverage is
			// open-ended, report a bare non-exhaustive finding.
			return append(findings, Finding{Kind: NonExhaustive, Span: span})
		}
		sawTag = true
		covered[tag] = true
		if siblings == nil && c.Tags != nil {
			siblings = c.Tags.Siblings(tag)
		}
	}
	if !sawTag || siblings == nil {
		return append(findings, Finding{Kind: NonExhaustive, Span: span})
	}

	var missing []string
	for _, name := range siblings {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		findings = append(findings, Finding{
			Kind:    NonExhaustive,
			Span:    span,
			Missing: missing,
		})
	}
	return findings
}

// isIrrefutable reports whether the pattern matches every value of its type.
func isIrrefutable(p *ir.Pattern) bool {
	if p == nil {
		return false
	}
	switch data := p.Data.(type) {
	case ir.BindData, ir.WildcardData, ir.PatRecordData:
		return true
	case ir.PatAsData:
		return isIrrefutable(data.Inner)
	default:
		return false
	}
}

func tagHead(p *ir.Pattern) (string, bool) {
	if p == nil {
		return "", false
	}
	switch data := p.Data.(type) {
	case ir.PatTagData:
		return data.Name, true
	case ir.PatAsData:
		return tagHead(data.Inner)
	default:
		return "", false
	}
}
