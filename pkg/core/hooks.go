package core

// Managed is a value owned by a State. Writing it through Set or Update
// marks the owning element dirty so the next flush rebuilds it.
//
// A Managed value belongs to the build goroutine: touch it only from Build
// and from event handlers the engine dispatches.
//
//	type sortState struct {
//	    core.StateBase
//	    order *core.Managed[table.SortOrder]
//	}
//
//	func (s *sortState) InitState() {
//	    s.order = core.NewManaged(s, table.SortOrder{})
//	}
type Managed[T any] struct {
	owner   *StateBase
	current T
}

// NewManaged creates a value owned by s.
func NewManaged[T any](s stateBase, initial T) *Managed[T] {
	return &Managed[T]{owner: s.state(), current: initial}
}

// Value returns the current value.
func (m *Managed[T]) Value() T {
	return m.current
}

// Set replaces the value and schedules a rebuild of the owner.
func (m *Managed[T]) Set(value T) {
	m.current = value
	m.owner.SetState(nil)
}

// Update replaces the value with transform applied to it.
func (m *Managed[T]) Update(transform func(T) T) {
	m.Set(transform(m.current))
}
