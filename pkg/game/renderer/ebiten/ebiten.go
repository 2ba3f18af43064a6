// Package ebiten provides a top-down Ebiten window onto a generated dungeon.
// The viewer is a renderer collaborator during generation and a player body
// afterwards; walking around drives the visibility tracker.
package ebiten

import (
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leonelquinteros/gotext"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
	"dungeonforge/pkg/game/visibility"
)

// Viewer is the Ebiten-based renderer
type Viewer struct {
	*renderer.Scene

	log *slog.Logger

	// windowWidth and windowHeight for the game window
	windowWidth  int
	windowHeight int

	// layoutMutex guards everything below; ebiten calls Update and Draw
	// from its own loop.
	layoutMutex sync.RWMutex
	layout      *layout.Layout
	tracker     *visibility.Tracker
	player      world.Point
	fog         bool
	minimap     bool

	windowOpenedLogged bool
}

// New creates a new viewer. Pass it as the generator's Renderer and Player.
func New(logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{
		Scene:        renderer.NewScene(),
		log:          logger,
		windowWidth:  defaultWindowWidth,
		windowHeight: defaultWindowHeight,
		fog:          true,
		minimap:      true,
	}
}

// SetPosition places the player (generator.PlayerBody).
func (v *Viewer) SetPosition(p world.Point) {
	v.layoutMutex.Lock()
	defer v.layoutMutex.Unlock()
	v.player = p
}

// Attach hands the finished layout to the viewer and runs a first
// visibility pass from the spawn point. The spawn room is already visited, so
// it is lit here.
func (v *Viewer) Attach(l *layout.Layout, corridorWidth float64) {
	v.layoutMutex.Lock()
	defer v.layoutMutex.Unlock()
	v.layout = l
	v.tracker = visibility.New(l, v, corridorWidth)
	if l.SpawnRoom != nil {
		v.TriggerRoomLighting(l.SpawnRoom)
	}
	v.tracker.Update(v.player)
}

// Layout returns the game's logical screen size (Ebiten interface)
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.windowWidth = outsideWidth
	v.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func (v *Viewer) Run() error {
	ebiten.SetWindowSize(v.windowWidth, v.windowHeight)
	ebiten.SetWindowTitle(gotext.Get("Dungeon Forge"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
