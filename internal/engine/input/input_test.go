package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestButtonHeld(t *testing.T) {
	e := Event{Type: EventMouseMove, Held: 1 << (sdl.BUTTON_RIGHT - 1)}
	if !e.ButtonHeld(sdl.BUTTON_RIGHT) {
		t.Error("expected right button held")
	}
	if e.ButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("left button not held")
	}
	if e.ButtonHeld(0) {
		t.Error("button 0 is never held")
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventKeyUp, Key: sdl.SCANCODE_R},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_N},
	)
	if !in.IsKeyPressed(sdl.SCANCODE_N) {
		t.Error("expected N pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_R) {
		t.Error("key up must not count as pressed")
	}
}
