package symbols

// TagInfo describes one constructor of a custom type.
type TagInfo struct {
	Name     string
	Symbol   Symbol
	Type     Symbol // symbol of the defining type
	TypeName string
	Arity    int
}

// TagTable is the type/tag namespace of one module: every constructor of
// every custom type in scope, including constructors pulled in by imports.
// It is populated by declaration collection before canonicalization starts
// and is read-only from the canonicalizer's perspective.
type TagTable struct {
	tags    map[string]TagInfo
	byType  map[Symbol][]string // defining type -> constructor names, decl order
	typeSym map[string]Symbol   // type name -> type symbol
}

// NewTagTable creates an empty tag table.
func NewTagTable() *TagTable {
	return &TagTable{
		tags:    make(map[string]TagInfo),
		byType:  make(map[Symbol][]string),
		typeSym: make(map[string]Symbol),
	}
}

// AddType registers a custom type. Constructors are added separately.
func (t *TagTable) AddType(name string, sym Symbol) {
	t.typeSym[name] = sym
}

// AddTag registers one constructor. The last declaration of a name wins;
// declaration collection reports duplicates itself.
func (t *TagTable) AddTag(info TagInfo) {
	t.tags[info.Name] = info
	t.byType[info.Type] = append(t.byType[info.Type], info.Name)
}

// Lookup resolves a constructor name.
func (t *TagTable) Lookup(name string) (TagInfo, bool) {
	info, ok := t.tags[name]
	return info, ok
}

// LookupType resolves a custom type name.
func (t *TagTable) LookupType(name string) (Symbol, bool) {
	sym, ok := t.typeSym[name]
	return sym, ok
}

// Siblings returns every constructor name of the type that declared tag, in
// declaration order. The exhaustiveness checker walks this to decide
// coverage.
func (t *TagTable) Siblings(tag string) []string {
	info, ok := t.tags[tag]
	if !ok {
		return nil
	}
	return t.byType[info.Type]
}

// TagsOfType returns every constructor name declared by the type with the
// given symbol, in declaration order.
func (t *TagTable) TagsOfType(typeSym Symbol) []string {
	return t.byType[typeSym]
}

// Len reports how many constructors the table holds.
func (t *TagTable) Len() int {
	return len(t.tags)
}
