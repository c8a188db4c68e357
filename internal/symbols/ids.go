package symbols

// ModuleID identifies one module within a compilation.
type ModuleID uint32

const (
	// NoModuleID marks the absence of a module reference.
	NoModuleID ModuleID = 0
)

// IsValid reports whether the module ID refers to a registered module.
func (id ModuleID) IsValid() bool { return id != NoModuleID }

// IdentID identifies one binding inside its defining module.
type IdentID uint32

const (
	// NoIdentID marks the absence of an ident reference.
	NoIdentID IdentID = 0
)

// IsValid reports whether the ident ID refers to an allocated binding.
func (id IdentID) IsValid() bool { return id != NoIdentID }

// Symbol is the unique, stable handle of one binding across the whole
// compilation: the defining module plus a per-module ident index. Symbols
// are comparable values; the human-readable name lives in the Store and is
// kept for diagnostics only.
type Symbol struct {
	Module ModuleID
	Ident  IdentID
}

// NoSymbol is the zero Symbol; it never names a real binding.
var NoSymbol = Symbol{}

// IsValid reports whether the symbol names an allocated binding.
func (s Symbol) IsValid() bool {
	return s.Module.IsValid() && s.Ident.IsValid()
}
