// Package input tracks keyboard and mouse state from window events.
package input

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a physical key, numbered like SDL scancodes.
type Key uint32

// Keys the game reacts to.
const (
	KeyA      Key = 4
	KeyD      Key = 7
	KeyS      Key = 22
	KeyW      Key = 26
	KeyEscape Key = 41
	KeySpace  Key = 44
)

// Button is a mouse button, numbered like SDL buttons.
type Button uint8

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Wheel  float32
	Button Button
}

// Input collects one frame of events and keeps the resulting device state.
type Input struct {
	Mouse    Mouse
	Keyboard Keyboard

	events []Event
	quit   bool
	resize *Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		Keyboard: newKeyboard(),
	}
}

// BeginFrame clears per-frame state. Held keys and buttons persist.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	i.resize = nil
	i.Mouse.beginFrame()
	i.Keyboard.beginFrame()
}

// Handle applies one event.
func (i *Input) Handle(e Event) {
	i.events = append(i.events, e)

	switch e.Type {
	case EventQuit:
		i.quit = true
	case EventWindowResize:
		i.resize = &i.events[len(i.events)-1]
	case EventKeyDown:
		i.Keyboard.press(e.Key)
		if e.Key == KeyEscape {
			i.quit = true
		}
	case EventKeyUp:
		i.Keyboard.release(e.Key)
	case EventMouseMove:
		i.Mouse.move(e.MouseX, e.MouseY, e.RelX, e.RelY)
	case EventMouseDown:
		i.Mouse.move(e.MouseX, e.MouseY, 0, 0)
		i.Mouse.setButton(e.Button, true)
	case EventMouseUp:
		i.Mouse.move(e.MouseX, e.MouseY, 0, 0)
		i.Mouse.setButton(e.Button, false)
	case EventMouseWheel:
		i.Mouse.scroll(e.Wheel)
	}
}

// Events returns the events since the last BeginFrame.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether the window was closed or Escape pressed.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// Resized returns the newest window size reported this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	if i.resize == nil {
		return 0, 0, false
	}
	return i.resize.Width, i.resize.Height, true
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(k Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}
