package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-topdown/common"
)

// State accumulates raw window events between frames.
// Event methods may be called from the window thread while Snapshot is called from the tick loop.
type State interface {
	// KeyDown records a key press. Repeats of an already held key are ignored.
	//
	// Parameters:
	//   - k: the key code
	KeyDown(k common.Key)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - k: the key code
	KeyUp(k common.Key)

	// ButtonDown records a mouse button press.
	//
	// Parameters:
	//   - b: the mouse button
	ButtonDown(b common.MouseButton)

	// ButtonUp records a mouse button release.
	//
	// Parameters:
	//   - b: the mouse button
	ButtonUp(b common.MouseButton)

	// CursorMove records the cursor position in window pixels.
	//
	// Parameters:
	//   - x, y: the cursor position, origin top-left
	CursorMove(x, y float32)

	// CursorEnter records the cursor entering (true) or leaving (false) the window.
	//
	// Parameters:
	//   - entered: whether the cursor is now inside the window
	CursorEnter(entered bool)

	// Scroll accumulates a vertical wheel delta.
	//
	// Parameters:
	//   - delta: the wheel delta, positive is scroll up
	Scroll(delta float32)

	// Resize records the window size.
	//
	// Parameters:
	//   - width, height: the window size in pixels
	Resize(width, height int)

	// Snapshot freezes the current frame and resets the per-frame edges, pointer delta and scroll.
	//
	// Returns:
	//   - Snapshot: the frame
	Snapshot() Snapshot
}

// inputState is the implementation of the State interface.
type inputState struct {
	mu *sync.Mutex

	held     map[Binding]struct{}
	pressed  map[Binding]struct{}
	released map[Binding]struct{}

	pointer      [2]float32
	pointerDelta [2]float32
	pointerSeen  bool
	inWindow     bool
	scroll       float32
	window       [2]float32
}

var _ State = &inputState{}

// NewState creates an empty input state with the given window size.
//
// Parameters:
//   - width, height: the initial window size in pixels
//
// Returns:
//   - State: the input state
func NewState(width, height int) State {
	return &inputState{
		mu:       &sync.Mutex{},
		held:     make(map[Binding]struct{}),
		pressed:  make(map[Binding]struct{}),
		released: make(map[Binding]struct{}),
		window:   [2]float32{float32(width), float32(height)},
	}
}

func (s *inputState) KeyDown(k common.Key) {
	s.press(KeyBinding(k))
}

func (s *inputState) KeyUp(k common.Key) {
	s.release(KeyBinding(k))
}

func (s *inputState) ButtonDown(b common.MouseButton) {
	s.press(ButtonBinding(b))
}

func (s *inputState) ButtonUp(b common.MouseButton) {
	s.release(ButtonBinding(b))
}

func (s *inputState) CursorMove(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pointerSeen {
		s.pointerDelta[0] += x - s.pointer[0]
		s.pointerDelta[1] += y - s.pointer[1]
	}
	s.pointer = [2]float32{x, y}
	s.pointerSeen = true
}

func (s *inputState) CursorEnter(entered bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inWindow = entered
}

func (s *inputState) Scroll(delta float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll += delta
}

func (s *inputState) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = [2]float32{float32(width), float32(height)}
}

func (s *inputState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		held:            cloneSet(s.held),
		pressed:         cloneSet(s.pressed),
		released:        cloneSet(s.released),
		Pointer:         s.pointer,
		PointerDelta:    s.pointerDelta,
		PointerInWindow: s.inWindow,
		Scroll:          s.scroll,
		Window:          s.window,
	}

	clear(s.pressed)
	clear(s.released)
	s.pointerDelta = [2]float32{}
	s.scroll = 0
	return snap
}

func (s *inputState) press(b Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.held[b]; held {
		return
	}
	s.held[b] = struct{}{}
	s.pressed[b] = struct{}{}
}

func (s *inputState) release(b Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.held[b]; !held {
		return
	}
	delete(s.held, b)
	s.released[b] = struct{}{}
}
