package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dungeonforge/pkg/engine/world"
)

// Update handles input and player movement (Ebiten interface)
func (v *Viewer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !v.windowOpenedLogged {
		v.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		v.log.Info("viewer window opened", "width", w, "height", h)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	v.layoutMutex.Lock()
	defer v.layoutMutex.Unlock()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.fog = !v.fog
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		v.minimap = !v.minimap
	}
	if v.layout == nil {
		return nil
	}

	dx, dz := movementInput()
	if dx == 0 && dz == 0 {
		return nil
	}
	v.player = v.layout.Move(v.player, v.player.Add(dx*moveSpeed, dz*moveSpeed))
	for _, r := range v.tracker.Update(v.player) {
		v.log.Info("room discovered", "room", r.ID, "type", r.Type)
	}
	return nil
}

// movementInput returns the held direction as unit steps on each axis.
func movementInput() (dx, dz float64) {
	for _, d := range world.AllDirections() {
		if directionHeld(d) {
			ddx, ddz := d.Delta()
			dx += ddx
			dz += ddz
		}
	}
	return dx, dz
}

func directionHeld(d world.Direction) bool {
	switch d {
	case world.North:
		return ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	case world.South:
		return ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	case world.West:
		return ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	case world.East:
		return ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	default:
		return false
	}
}
