package core

// stateBase lets NewManaged accept any state embedding StateBase.
type stateBase interface {
	state() *StateBase
}

func (s *StateBase) state() *StateBase { return s }

// StateBase implements the State lifecycle with no-op hooks. Embed it and
// override the hooks you need; the table's sort state overrides InitState,
// DidUpdateWidget and Build.
type StateBase struct {
	element  *StatefulElement
	disposed bool
}

// SetElement binds the state to its element. Called by the runtime on mount.
func (s *StateBase) SetElement(element *StatefulElement) {
	s.element = element
}

// Widget returns the owning element's current configuration, or nil before
// mount.
func (s *StateBase) Widget() StatefulWidget {
	if s.element == nil {
		return nil
	}
	widget, _ := s.element.Widget().(StatefulWidget)
	return widget
}

// SetState runs fn and marks the element dirty. It does nothing once the
// state is disposed.
//
// Only the build goroutine may call SetState; event handlers reach it
// through engine.Dispatch.
func (s *StateBase) SetState(fn func()) {
	if s.disposed {
		return
	}
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

// Dispose marks the state dead. Overrides must call s.StateBase.Dispose().
func (s *StateBase) Dispose() {
	s.disposed = true
}

// IsDisposed reports whether Dispose ran.
func (s *StateBase) IsDisposed() bool {
	return s.disposed
}

func (s *StateBase) InitState() {}

func (s *StateBase) Build(ctx BuildContext) Widget { return nil }

func (s *StateBase) DidChangeDependencies() {}

func (s *StateBase) DidUpdateWidget(oldWidget StatefulWidget) {}
