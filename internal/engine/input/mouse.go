package input

// Mouse is the cursor and button state.
type Mouse struct {
	x, y   int
	dx, dy int
	wheel  float32

	left, middle, right bool
}

func (m *Mouse) beginFrame() {
	m.dx, m.dy = 0, 0
	m.wheel = 0
}

func (m *Mouse) move(x, y, relX, relY int) {
	m.x, m.y = x, y
	m.dx += relX
	m.dy += relY
}

func (m *Mouse) scroll(steps float32) {
	m.wheel += steps
}

func (m *Mouse) setButton(b Button, down bool) {
	switch b {
	case ButtonLeft:
		m.left = down
	case ButtonMiddle:
		m.middle = down
	case ButtonRight:
		m.right = down
	}
}

// Cursor returns the cursor position in window pixels, origin top left.
func (m *Mouse) Cursor() (x, y float32) {
	return float32(m.x), float32(m.y)
}

// Delta returns the cursor movement since the last frame.
func (m *Mouse) Delta() (dx, dy float32) {
	return float32(m.dx), float32(m.dy)
}

// Wheel returns the wheel steps since the last frame.
func (m *Mouse) Wheel() float32 {
	return m.wheel
}

// Down reports whether b is held.
func (m *Mouse) Down(b Button) bool {
	switch b {
	case ButtonLeft:
		return m.left
	case ButtonMiddle:
		return m.middle
	case ButtonRight:
		return m.right
	}
	return false
}
