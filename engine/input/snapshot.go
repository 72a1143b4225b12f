package input

// Snapshot is one frame of input, frozen when the frame began.
// The zero Snapshot has nothing held, no pointer and no scroll.
type Snapshot struct {
	held     map[Binding]struct{}
	pressed  map[Binding]struct{}
	released map[Binding]struct{}

	// Pointer is the cursor position in window pixels, origin top-left.
	Pointer [2]float32
	// PointerDelta is the cursor movement since the previous snapshot.
	PointerDelta [2]float32
	// PointerInWindow is false while the cursor is outside the window.
	PointerInWindow bool
	// Scroll is the vertical wheel delta accumulated since the previous snapshot. Positive is scroll up.
	Scroll float32
	// Window is the window size in pixels.
	Window [2]float32
}

// SnapshotOption is a functional option for NewSnapshot.
type SnapshotOption func(s *Snapshot)

// NewSnapshot builds a snapshot directly, for hosts that do not drive a State or for tests.
//
// Parameters:
//   - options: functional options describing the frame
//
// Returns:
//   - Snapshot: the frame
func NewSnapshot(options ...SnapshotOption) Snapshot {
	s := Snapshot{}
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// WithHeld marks bindings as held for the whole frame.
func WithHeld(bindings ...Binding) SnapshotOption {
	return func(s *Snapshot) {
		s.held = addAll(s.held, bindings)
	}
}

// WithJustPressed marks bindings as pressed this frame. They are also held.
func WithJustPressed(bindings ...Binding) SnapshotOption {
	return func(s *Snapshot) {
		s.pressed = addAll(s.pressed, bindings)
		s.held = addAll(s.held, bindings)
	}
}

// WithJustReleased marks bindings as released this frame.
func WithJustReleased(bindings ...Binding) SnapshotOption {
	return func(s *Snapshot) {
		s.released = addAll(s.released, bindings)
	}
}

// WithPointer places the cursor inside the window at (x, y).
func WithPointer(x, y float32) SnapshotOption {
	return func(s *Snapshot) {
		s.Pointer = [2]float32{x, y}
		s.PointerInWindow = true
	}
}

// WithPointerOutside marks the cursor as outside the window.
func WithPointerOutside() SnapshotOption {
	return func(s *Snapshot) {
		s.PointerInWindow = false
	}
}

// WithPointerDelta sets the cursor movement for the frame.
func WithPointerDelta(dx, dy float32) SnapshotOption {
	return func(s *Snapshot) {
		s.PointerDelta = [2]float32{dx, dy}
	}
}

// WithScroll sets the wheel delta for the frame.
func WithScroll(delta float32) SnapshotOption {
	return func(s *Snapshot) {
		s.Scroll = delta
	}
}

// WithWindowSize sets the window size in pixels.
func WithWindowSize(width, height float32) SnapshotOption {
	return func(s *Snapshot) {
		s.Window = [2]float32{width, height}
	}
}

// Held reports whether the binding is down during this frame.
func (s Snapshot) Held(b Binding) bool {
	_, ok := s.held[b]
	return ok
}

// JustPressed reports whether the binding went down since the previous frame.
func (s Snapshot) JustPressed(b Binding) bool {
	_, ok := s.pressed[b]
	return ok
}

// JustReleased reports whether the binding went up since the previous frame.
func (s Snapshot) JustReleased(b Binding) bool {
	_, ok := s.released[b]
	return ok
}

func addAll(set map[Binding]struct{}, bindings []Binding) map[Binding]struct{} {
	if set == nil {
		set = make(map[Binding]struct{}, len(bindings))
	}
	for _, b := range bindings {
		set[b] = struct{}{}
	}
	return set
}

func cloneSet(set map[Binding]struct{}) map[Binding]struct{} {
	if len(set) == 0 {
		return nil
	}
	out := make(map[Binding]struct{}, len(set))
	for b := range set {
		out[b] = struct{}{}
	}
	return out
}
