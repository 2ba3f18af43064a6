package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/visibility"
)

// view maps world coordinates to screen pixels.
type view struct {
	origin world.Point
	scale  float32
}

func (vw view) point(p world.Point) (float32, float32) {
	return float32(p.X-vw.origin.X)*vw.scale + mapMargin, float32(p.Z-vw.origin.Z)*vw.scale + mapMargin
}

func (vw view) rect(r world.Rect) (x, y, w, h float32) {
	x, y = vw.point(world.Pt(r.MinX, r.MinZ))
	return x, y, float32(r.Width()) * vw.scale, float32(r.Depth()) * vw.scale
}

// Draw renders the scene to the screen (Ebiten interface)
func (v *Viewer) Draw(screen *ebiten.Image) {
	// Fill background first
	screen.Fill(colorBackground)

	bounds, ok := v.Bounds()
	if !ok {
		ebitenutil.DebugPrintAt(screen, gotext.Get("Generating..."), mapMargin, mapMargin)
		return
	}
	vw := fitView(bounds, v.windowWidth, v.windowHeight)

	v.layoutMutex.RLock()
	shown := v.shownVisuals()
	player := v.player
	var mini *visibility.Minimap
	if v.minimap && v.tracker != nil {
		m := v.tracker.Minimap(player)
		mini = &m
	}
	seed, room := v.status()
	v.layoutMutex.RUnlock()

	for _, vis := range v.Visuals() {
		if shown != nil && !shown.Has(vis.ID) {
			continue
		}
		v.drawVisual(screen, vw, vis)
	}

	px, py := vw.point(player)
	vector.DrawFilledCircle(screen, px, py, max(3, vw.scale*0.8), colorPlayer, true)

	if mini != nil {
		drawMinimap(screen, *mini, v.windowWidth)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d  %s", gotext.Get("Seed:"), seed, room), 4, 4)
	ebitenutil.DebugPrintAt(screen, gotext.Get("WASD/arrows move  Tab fog  M minimap  Esc quit"), 4, v.windowHeight-18)
}

// fitView scales bounds to fill the window less the margin.
func fitView(bounds world.Rect, width, height int) view {
	sx := float64(width-2*mapMargin) / bounds.Width()
	sz := float64(height-2*mapMargin) / bounds.Depth()
	return view{origin: world.Pt(bounds.MinX, bounds.MinZ), scale: float32(max(min(sx, sz), 0.1))}
}

// shownVisuals returns the visuals that survive fog of war, or nil when
// everything is shown. Callers hold layoutMutex.
func (v *Viewer) shownVisuals() mapset.Set[layout.VisualID] {
	if !v.fog || v.layout == nil {
		return nil
	}
	shown := mapset.New[layout.VisualID]()
	for _, r := range v.layout.Rooms {
		if !r.Visited && !v.tracker.RoomShown(r.ID) {
			continue
		}
		shown.Put(r.Floor)
		for _, w := range r.Walls {
			if w.Visible {
				shown.Put(w.ID)
			}
		}
		for _, d := range r.Doors {
			shown.Put(d.Frame)
			shown.Put(d.Indicator)
		}
	}
	for _, c := range v.layout.Corridors {
		for _, s := range c.Segments {
			seen := false
			for _, w := range s.Walls {
				if w.Visible {
					shown.Put(w.ID)
					seen = true
				}
			}
			if seen {
				shown.Put(s.Floor)
			}
		}
	}
	return shown
}

// status returns the HUD fields. Callers hold layoutMutex.
func (v *Viewer) status() (int64, string) {
	if v.layout == nil {
		return 0, ""
	}
	if r := v.layout.RoomAt(v.player); r != nil {
		return v.layout.Seed, r.Type.DisplayName()
	}
	if v.layout.CorridorAt(v.player) != nil {
		return v.layout.Seed, gotext.Get("Corridor")
	}
	return v.layout.Seed, ""
}

func (v *Viewer) drawVisual(screen *ebiten.Image, vw view, vis layout.Visual) {
	switch vis.Kind {
	case layout.VisualFloor:
		x, y, w, h := vw.rect(vis.Rect)
		vector.DrawFilledRect(screen, x, y, w, h, v.floorColor(vis), false)
	case layout.VisualWall:
		strokeRect(screen, vw, vis.Rect, wallStroke, colorWall)
	case layout.VisualDoorFrame:
		strokeRect(screen, vw, vis.Rect, doorStroke, colorDoor)
	case layout.VisualIndicator:
		x, y, w, h := vw.rect(vis.Rect)
		vector.DrawFilledRect(screen, x, y, max(w, 3), max(h, 3), colorIndicator, false)
	}
}

// floorColor darkens unlit room floors and fades lit ones in.
func (v *Viewer) floorColor(vis layout.Visual) color.Color {
	if vis.Owner == layout.NoOwner {
		return vis.Tint
	}
	f := 0.4
	if since, ok := v.LitSince(vis.Owner); ok {
		f = min(1, 0.4+0.6*float64(since.Milliseconds())/lightFadeMillis)
	}
	return color.RGBA{
		R: uint8(float64(vis.Tint.R) * f),
		G: uint8(float64(vis.Tint.G) * f),
		B: uint8(float64(vis.Tint.B) * f),
		A: vis.Tint.A,
	}
}

// strokeRect draws a zero-thickness wall or door rect as a line.
func strokeRect(screen *ebiten.Image, vw view, r world.Rect, width float32, clr color.Color) {
	x0, y0 := vw.point(world.Pt(r.MinX, r.MinZ))
	x1, y1 := vw.point(world.Pt(r.MaxX, r.MaxZ))
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, false)
}

// drawMinimap draws the overview panel in the top right corner.
func drawMinimap(screen *ebiten.Image, m visibility.Minimap, screenWidth int) {
	left := float32(screenWidth - minimapSize - mapMargin)
	top := float32(mapMargin)
	vector.DrawFilledRect(screen, left, top, minimapSize, minimapSize, colorPanelBackground, false)

	c := m.Bounds.Center()
	scale := float32(min(minimapSize/m.Bounds.Width(), minimapSize/m.Bounds.Depth())) / minimapScale
	at := func(p world.Point) (float32, float32) {
		return left + minimapSize/2 + float32(p.X-c.X)*scale, top + minimapSize/2 + float32(p.Z-c.Z)*scale
	}

	for _, r := range m.Rooms {
		clr := color.Color(colorMinimapUnseen)
		if r.Visited {
			clr = colorMinimapRoom
			if r.Type == layout.RoomStart || r.Type == layout.RoomBoss {
				clr = layout.FloorTint(r.Type)
			}
		}
		x, y := at(world.Pt(r.Bounds.MinX, r.Bounds.MinZ))
		vector.DrawFilledRect(screen, x, y, float32(r.Bounds.Width())*scale, float32(r.Bounds.Depth())*scale, clr, false)
	}
	for _, s := range m.Corridors {
		x, y := at(world.Pt(s.MinX, s.MinZ))
		vector.DrawFilledRect(screen, x, y, float32(s.Width())*scale, float32(s.Depth())*scale, colorMinimapCorridor, false)
	}
	px, py := at(m.Player)
	vector.DrawFilledCircle(screen, px, py, 2, colorPlayer, true)
	ebitenutil.DebugPrintAt(screen, gotext.Get("Map"), int(left)+4, int(top)+2)
}
