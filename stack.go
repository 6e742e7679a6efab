package sprig

import "github.com/go-gl/mathgl/mgl32"

// A MatrixStack tracks the current 2D transform along with saved copies of
// previous transforms. Transformations post-multiply the current matrix: the
// last one applied is the first one to affect drawn geometry.
//
type MatrixStack struct {
	cur   mgl32.Mat3
	saved []mgl32.Mat3
}

// NewMatrixStack returns a stack whose current transform is the identity.
//
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{cur: mgl32.Ident3()}
}

// Save pushes a copy of the current transform.
//
func (s *MatrixStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved transform and makes it current. It returns
// false and leaves the current transform unchanged if the stack is empty.
//
func (s *MatrixStack) Restore() bool {
	n := len(s.saved)
	if n == 0 {
		return false
	}
	s.cur = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return true
}

func (s *MatrixStack) Translate(x, y float32) {
	s.cur = s.cur.Mul3(mgl32.Translate2D(x, y))
}

// Rotate rotates by angle radians, clockwise on a y-down screen.
//
func (s *MatrixStack) Rotate(angle float32) {
	s.cur = s.cur.Mul3(mgl32.HomogRotate2D(angle))
}

func (s *MatrixStack) Scale(x, y float32) {
	s.cur = s.cur.Mul3(mgl32.Scale2D(x, y))
}

// SetTransform replaces the current transform with m.
//
func (s *MatrixStack) SetTransform(m mgl32.Mat3) {
	s.cur = m
}

// Current returns the current transform.
//
func (s *MatrixStack) Current() mgl32.Mat3 {
	return s.cur
}

// Depth returns the number of saved transforms.
//
func (s *MatrixStack) Depth() int {
	return len(s.saved)
}

// State holds the scalar render state applied to draw calls.
//
type State struct {
	Opacity float32 // clamped to [0, 1] when drawn
	Z       float32 // depth
}

// A StateStack is the State counterpart of MatrixStack.
//
type StateStack struct {
	cur   State
	saved []State
}

// NewStateStack returns a stack whose current state is fully opaque at depth 0.
//
func NewStateStack() *StateStack {
	return &StateStack{cur: State{Opacity: 1}}
}

func (s *StateStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore pops the last saved state. See MatrixStack.Restore.
//
func (s *StateStack) Restore() bool {
	n := len(s.saved)
	if n == 0 {
		return false
	}
	s.cur = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return true
}

// Current returns a pointer to the current state. Changes made through it
// are discarded by the next Restore.
//
func (s *StateStack) Current() *State {
	return &s.cur
}

func (s *StateStack) Depth() int {
	return len(s.saved)
}
