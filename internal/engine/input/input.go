// Package input turns SDL2 events into the per-frame key, mouse and
// scroll state the frame loop reads.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/glint/internal/game"
)

// Bindings maps actions to scancodes.
type Bindings map[game.Action]sdl.Scancode

// DefaultBindings is WASD plus space/shift for vertical movement, escape
// to quit and F12 for a screenshot.
func DefaultBindings() Bindings {
	return Bindings{
		game.MoveForward:  sdl.SCANCODE_W,
		game.MoveBackward: sdl.SCANCODE_S,
		game.MoveLeft:     sdl.SCANCODE_A,
		game.MoveRight:    sdl.SCANCODE_D,
		game.MoveUp:       sdl.SCANCODE_SPACE,
		game.MoveDown:     sdl.SCANCODE_LSHIFT,
		game.Quit:         sdl.SCANCODE_ESCAPE,
		game.Screenshot:   sdl.SCANCODE_F12,
	}
}

// ParseBindings resolves SDL key names ("W", "Left Shift", "Escape").
// Actions missing from names keep their default key.
func ParseBindings(names map[game.Action]string) (Bindings, error) {
	b := DefaultBindings()
	for action, name := range names {
		code := sdl.GetScancodeFromName(name)
		if code == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("unknown key name %q", name)
		}
		b[action] = code
	}
	return b, nil
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	keys     map[sdl.Scancode]bool
	events   []game.Event

	dx, dy     float32
	scroll     float32
	firstMouse bool
}

var _ game.Input = (*Input)(nil)

// New creates a new input handler.
func New(bindings Bindings) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{
		bindings:   bindings,
		keys:       make(map[sdl.Scancode]bool),
		events:     make([]game.Event, 0, 4),
		firstMouse: true,
	}
}

// Poll drains the SDL queue, updating key state and the mouse and scroll
// deltas, and returns the platform events seen.
func (i *Input) Poll() []game.Event {
	i.events = i.events[:0] // Clear previous events
	i.dx, i.dy, i.scroll = 0, 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, game.Event{Type: game.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w, h := drawableSize(e)
				i.events = append(i.events, game.Event{
					Type:   game.EventResize,
					Width:  w,
					Height: h,
				})
			}

		case *sdl.KeyboardEvent:
			switch e.Type {
			case sdl.KEYDOWN:
				i.keys[e.Keysym.Scancode] = true
			case sdl.KEYUP:
				i.keys[e.Keysym.Scancode] = false
			}

		case *sdl.MouseMotionEvent:
			// the first motion after capture jumps from wherever the
			// cursor was
			if i.firstMouse {
				i.firstMouse = false
				continue
			}
			i.dx += float32(e.XRel)
			i.dy -= float32(e.YRel) // screen y grows downward

		case *sdl.MouseWheelEvent:
			y := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			i.scroll += y
		}
	}

	return i.events
}

// drawableSize reports the framebuffer size of the window the event
// belongs to, falling back to the event's window-space size.
func drawableSize(e *sdl.WindowEvent) (int, int) {
	if win, err := sdl.GetWindowFromID(e.WindowID); err == nil {
		w, h := win.GLGetDrawableSize()
		return int(w), int(h)
	}
	return int(e.Data1), int(e.Data2)
}

// Pressed reports whether the key bound to a is held.
func (i *Input) Pressed(a game.Action) bool {
	code, ok := i.bindings[a]
	return ok && i.keys[code]
}

// MouseDelta returns the motion gathered by the last Poll, y up.
func (i *Input) MouseDelta() (float32, float32) { return i.dx, i.dy }

// ScrollDelta returns the vertical wheel motion gathered by the last Poll.
func (i *Input) ScrollDelta() float32 { return i.scroll }
