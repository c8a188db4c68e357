package ast

// Arena is append-only storage with 1-based handles; index 0 is the invalid
// ID everywhere in this package.
type Arena[T any] struct {
	data []T
}

// NewArena allocates an arena whose backing slice starts with capacity
// capHint; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns the element for a 1-based index, nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. READONLY.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}

// restore replaces the arena contents; used by the codec.
func (a *Arena[T]) restore(items []T) {
	a.data = items
}
