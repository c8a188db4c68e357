package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Store is the per-compilation symbol registry. It hands out module IDs and
// fresh symbols, and retains every binding's surface name for diagnostics.
//
// The store is an explicit value threaded into canonicalization, not a
// hidden global: tests build a fresh one and get deterministic IDs. It is
// not safe for concurrent mutation; the orchestrator registers all modules
// and interns all symbols it needs before fanning out.
type Store struct {
	moduleNames []string // index = ModuleID - 1
	moduleIndex map[string]ModuleID
	idents      [][]string // per module: index = IdentID - 1, dupes allowed
}

// NewStore creates an empty symbol store.
func NewStore() *Store {
	return &Store{
		moduleIndex: make(map[string]ModuleID),
	}
}

// Module registers (or returns) the module ID for name.
func (st *Store) Module(name string) ModuleID {
	if id, ok := st.moduleIndex[name]; ok {
		return id
	}
	next, err := safecast.Conv[uint32](len(st.moduleNames) + 1)
	if err != nil {
		panic(fmt.Errorf("module count overflow: %w", err))
	}
	id := ModuleID(next)
	st.moduleNames = append(st.moduleNames, name)
	st.moduleIndex[name] = id
	st.idents = append(st.idents, nil)
	return id
}

// LookupModule returns the ID registered for name, if any.
func (st *Store) LookupModule(name string) (ModuleID, bool) {
	id, ok := st.moduleIndex[name]
	return id, ok
}

// ModuleName returns the surface name of a registered module.
func (st *Store) ModuleName(id ModuleID) string {
	if !id.IsValid() || int(id) > len(st.moduleNames) {
		return ""
	}
	return st.moduleNames[id-1]
}

// Fresh allocates a new symbol in module for a binding named name. Every
// call returns a distinct symbol, even for a repeated name: shadowed and
// duplicate bindings all keep their own identity.
func (st *Store) Fresh(module ModuleID, name string) Symbol {
	if !module.IsValid() || int(module) > len(st.idents) {
		panic(fmt.Errorf("fresh symbol in unregistered module %d", module))
	}
	slot := module - 1
	next, err := safecast.Conv[uint32](len(st.idents[slot]) + 1)
	if err != nil {
		panic(fmt.Errorf("ident count overflow: %w", err))
	}
	st.idents[slot] = append(st.idents[slot], name)
	return Symbol{Module: module, Ident: IdentID(next)}
}

// Name returns the surface name retained for sym, or "" for an invalid
// symbol.
func (st *Store) Name(sym Symbol) string {
	if !sym.IsValid() || int(sym.Module) > len(st.idents) {
		return ""
	}
	names := st.idents[sym.Module-1]
	if int(sym.Ident) > len(names) {
		return ""
	}
	return names[sym.Ident-1]
}

// QualifiedName renders sym as Module.name for diagnostics.
func (st *Store) QualifiedName(sym Symbol) string {
	name := st.Name(sym)
	mod := st.ModuleName(sym.Module)
	if mod == "" {
		return name
	}
	return mod + "." + name
}

// IdentCount reports how many symbols module has allocated.
func (st *Store) IdentCount(module ModuleID) int {
	if !module.IsValid() || int(module) > len(st.idents) {
		return 0
	}
	return len(st.idents[module-1])
}
