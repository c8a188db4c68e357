package symbols

import (
	"sort"
)

// ExportKind classifies what an exposed name refers to.
type ExportKind uint8

const (
	ExportInvalid ExportKind = iota
	ExportValue
	ExportType
	ExportTag
)

func (k ExportKind) String() string {
	switch k {
	case ExportValue:
		return "value"
	case ExportType:
		return "type"
	case ExportTag:
		return "tag"
	default:
		return "invalid"
	}
}

// Export is one exposed name of a module, restated with its resolved symbol.
type Export struct {
	Name   string
	Symbol Symbol
	Kind   ExportKind
	Arity  int    // constructor/function arity where known, -1 otherwise
	Of     string // defining type name for ExportTag entries
}

// Exports is the read-only export surface of one canonicalized module,
// consumed by dependent modules' reference resolvers.
type Exports struct {
	Module ModuleID
	byName map[string]Export
}

// NewExports creates an empty export table for module.
func NewExports(module ModuleID) *Exports {
	return &Exports{
		Module: module,
		byName: make(map[string]Export),
	}
}

// Add installs an export. The last entry for a name wins; canonicalization
// reports duplicates before calling Add.
func (e *Exports) Add(exp Export) {
	e.byName[exp.Name] = exp
}

// Lookup returns the export registered under name.
func (e *Exports) Lookup(name string) (Export, bool) {
	exp, ok := e.byName[name]
	return exp, ok
}

// Len reports how many names the module exposes.
func (e *Exports) Len() int {
	return len(e.byName)
}

// Sorted returns all exports ordered by name for deterministic output.
func (e *Exports) Sorted() []Export {
	out := make([]Export, 0, len(e.byName))
	for _, exp := range e.byName {
		out = append(out, exp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TagsOf returns all tag exports belonging to typeName, in name order.
func (e *Exports) TagsOf(typeName string) []Export {
	var out []Export
	for _, exp := range e.Sorted() {
		if exp.Kind == ExportTag && exp.Of == typeName {
			out = append(out, exp)
		}
	}
	return out
}

// ExportTable maps module names to their export surfaces. The orchestrator
// fills it in dependency order; canonicalization of a module only ever reads
// it.
type ExportTable map[string]*Exports
