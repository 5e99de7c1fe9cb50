package input

// Keyboard tracks which keys are held.
type Keyboard struct {
	held    map[Key]bool
	pressed map[Key]bool
}

func newKeyboard() Keyboard {
	return Keyboard{
		held:    make(map[Key]bool),
		pressed: make(map[Key]bool),
	}
}

func (k *Keyboard) beginFrame() {
	clear(k.pressed)
}

func (k *Keyboard) press(key Key) {
	if k.held == nil {
		*k = newKeyboard()
	}
	if !k.held[key] {
		k.pressed[key] = true
	}
	k.held[key] = true
}

func (k *Keyboard) release(key Key) {
	delete(k.held, key)
}

// Down reports whether key is held.
func (k *Keyboard) Down(key Key) bool {
	return k.held[key]
}

// Pressed reports whether key went down this frame. Key repeat does not
// count.
func (k *Keyboard) Pressed(key Key) bool {
	return k.pressed[key]
}
