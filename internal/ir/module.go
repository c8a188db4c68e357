package ir

import (
	"tern/internal/symbols"
)

// Module is the canonical IR of one module: top-level definition groups in
// dependency order plus the export surface restated with resolved symbols.
// It is handed by value to type inference and never mutated afterwards.
type Module struct {
	Name    string
	ID      symbols.ModuleID
	Groups  []DefGroup
	Exports *symbols.Exports
}

// TopLevelSymbols collects every top-level binding in group order.
func (m *Module) TopLevelSymbols() []symbols.Symbol {
	var out []symbols.Symbol
	for i := range m.Groups {
		out = append(out, m.Groups[i].Symbols()...)
	}
	return out
}
