package generator

import (
	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
)

const (
	doorFramePadding = 0.2
	indicatorSize    = 1.0
)

// scene hands out visual IDs and mirrors every geometry change to the
// renderer collaborator.
type scene struct {
	out  renderer.Renderer
	next layout.VisualID
}

func (s *scene) emit(v layout.Visual) layout.VisualID {
	s.next++
	v.ID = s.next
	s.out.AddObject(v)
	return v.ID
}

func (s *scene) drop(id layout.VisualID, kind layout.VisualKind) {
	if id == 0 {
		return
	}
	s.out.RemoveObject(layout.Visual{ID: id, Kind: kind})
}

func (s *scene) addWall(w *layout.WallSegment, owner int, height float64) {
	w.ID = s.emit(layout.Visual{
		Kind:   layout.VisualWall,
		Rect:   w.Rect,
		Height: height,
		Tint:   layout.TintWall,
		Owner:  owner,
	})
}

func (s *scene) removeWall(w *layout.WallSegment) {
	s.drop(w.ID, layout.VisualWall)
	w.ID = 0
}

// addRoom emits floor, ceiling and every wall of r.
func (s *scene) addRoom(r *layout.Room) {
	r.Floor = s.emit(layout.Visual{
		Kind:  layout.VisualFloor,
		Rect:  r.Bounds(),
		Tint:  layout.FloorTint(r.Type),
		Owner: r.ID,
	})
	r.Ceiling = s.emit(layout.Visual{
		Kind:      layout.VisualCeiling,
		Rect:      r.Bounds(),
		Elevation: r.Height,
		Tint:      layout.TintCeiling,
		Owner:     r.ID,
	})
	for _, w := range r.Walls {
		s.addWall(w, r.ID, r.Height)
	}
}

// removeRoom withdraws floor, ceiling and walls of r.
func (s *scene) removeRoom(r *layout.Room) {
	s.drop(r.Floor, layout.VisualFloor)
	s.drop(r.Ceiling, layout.VisualCeiling)
	r.Floor, r.Ceiling = 0, 0
	for _, w := range r.Walls {
		s.removeWall(w)
	}
}

func (s *scene) addSegment(seg *layout.CorridorSegment, height float64) {
	seg.Floor = s.emit(layout.Visual{
		Kind:  layout.VisualFloor,
		Rect:  seg.Rect,
		Tint:  layout.TintCorridor,
		Owner: layout.NoOwner,
	})
	for _, w := range seg.Walls {
		s.addWall(w, layout.NoOwner, height)
	}
}

// addDoor emits the frame and, for special rooms, the role indicator.
func (s *scene) addDoor(r *layout.Room, d *layout.Door) {
	frame := layout.DoorRect(d)
	if d.Dir.RunsAlongX() {
		frame.MinX -= doorFramePadding / 2
		frame.MaxX += doorFramePadding / 2
	} else {
		frame.MinZ -= doorFramePadding / 2
		frame.MaxZ += doorFramePadding / 2
	}
	d.Frame = s.emit(layout.Visual{
		Kind:   layout.VisualDoorFrame,
		Rect:   frame,
		Height: r.Height,
		Tint:   layout.TintDoorFrame,
		Owner:  r.ID,
	})
	if r.Type.HasIndicator() {
		d.Indicator = s.emit(layout.Visual{
			Kind:      layout.VisualIndicator,
			Rect:      world.RectAround(d.Pos, indicatorSize, indicatorSize),
			Elevation: r.Height - indicatorSize,
			Tint:      layout.FloorTint(r.Type),
			Owner:     r.ID,
		})
	}
}

func (s *scene) removeDoor(d *layout.Door) {
	s.drop(d.Frame, layout.VisualDoorFrame)
	s.drop(d.Indicator, layout.VisualIndicator)
	d.Frame, d.Indicator = 0, 0
}
