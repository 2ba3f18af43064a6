package ebiten

import "image/color"

// Color palette for the viewer
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorPlayer          = color.RGBA{0, 255, 0, 255}     // Bright green
	colorWall            = color.RGBA{180, 180, 200, 255} // Light gray-blue
	colorDoor            = color.RGBA{255, 200, 100, 255} // Orange
	colorIndicator       = color.RGBA{255, 80, 80, 255}   // Bright red
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorMinimapRoom     = color.RGBA{85, 85, 85, 255}
	colorMinimapUnseen   = color.RGBA{51, 51, 51, 255}
	colorMinimapCorridor = color.RGBA{119, 119, 119, 255}
)

const (
	defaultWindowWidth  = 960
	defaultWindowHeight = 960

	// World units moved per tick while a movement key is held
	moveSpeed = 0.25

	// Screen margin around the map, in pixels
	mapMargin = 24

	wallStroke = 2
	doorStroke = 4

	minimapSize  = 160
	minimapScale = 1.5

	// Lit rooms fade in over this many milliseconds
	lightFadeMillis = 600
)
