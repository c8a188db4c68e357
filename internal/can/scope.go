package can

import (
	"tern/internal/source"
	"tern/internal/symbols"
)

// Binding is one name->symbol entry of a scope frame. The span points at
// the binding site for shadow diagnostics.
type Binding struct {
	Symbol symbols.Symbol
	Span   source.Span
}

type frame struct {
	names map[string]Binding
}

// Scope is the lexical environment of one module's canonicalization: a
// stack of frames pushed and popped around every lexical construct. It is
// strictly sequential; the pass owns exactly one.
type Scope struct {
	frames []frame
}

// NewScope creates a scope with the module-level frame already pushed.
func NewScope() *Scope {
	s := &Scope{}
	s.Push()
	return s
}

// Push enters a new innermost frame and returns its depth, which Pop
// validates so an unbalanced walk fails loudly in tests.
func (s *Scope) Push() int {
	s.frames = append(s.frames, frame{names: make(map[string]Binding)})
	return len(s.frames)
}

// Pop leaves the innermost frame, revealing outer bindings again.
func (s *Scope) Pop(depth int) {
	if len(s.frames) == 0 {
		return
	}
	if depth != len(s.frames) {
		// Unbalanced push/pop is a canonicalizer bug, not user error.
		panic("scope pop depth mismatch")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth reports how many frames are live.
func (s *Scope) Depth() int {
	return len(s.frames)
}

// Bind installs name in the innermost frame. When the name already exists
// in the same frame the previous binding is returned with sameFrame=true
// and the new binding wins for subsequent lookups; the caller reports the
// shadow problem. Rebinding a name from an outer frame is ordinary
// shadowing and stays silent.
func (s *Scope) Bind(name string, sym symbols.Symbol, span source.Span) (prev Binding, sameFrame bool) {
	top := &s.frames[len(s.frames)-1]
	prev, sameFrame = top.names[name]
	top.names[name] = Binding{Symbol: sym, Span: span}
	return prev, sameFrame
}

// Lookup searches frames innermost-first.
func (s *Scope) Lookup(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].names[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// InTopFrame reports whether name is bound in the innermost frame.
func (s *Scope) InTopFrame(name string) bool {
	if len(s.frames) == 0 {
		return false
	}
	_, ok := s.frames[len(s.frames)-1].names[name]
	return ok
}
