package renderer

import (
	"dungeonforge/pkg/game/layout"
)

//go:generate mockgen -destination=mock/mock.go -package=renderermock dungeonforge/pkg/game/renderer Renderer

// Renderer is the visual collaborator of the generator. The generator emits
// one AddObject per created floor, ceiling, wall, door frame or indicator and
// one RemoveObject when it discards one. It never reads anything back.
// Implementations can include TUI (terminal), Ebiten, etc.
type Renderer interface {
	// AddObject makes v part of the scene.
	AddObject(v layout.Visual)

	// RemoveObject drops the visual previously added with the same ID.
	RemoveObject(v layout.Visual)

	// TriggerRoomLighting plays the lighting effect for a room the player
	// has just entered for the first time.
	TriggerRoomLighting(room *layout.Room)
}

// Current holds the active renderer instance. Generator runs and visibility
// trackers that are not given a renderer of their own use it.
var Current Renderer = Nop{}

// SetRenderer sets the active renderer. A nil renderer resets to Nop.
func SetRenderer(r Renderer) {
	if r == nil {
		r = Nop{}
	}
	Current = r
}

// Nop discards everything.
type Nop struct{}

func (Nop) AddObject(layout.Visual)          {}
func (Nop) RemoveObject(layout.Visual)       {}
func (Nop) TriggerRoomLighting(*layout.Room) {}
