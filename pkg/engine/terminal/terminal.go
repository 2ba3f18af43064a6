// Package terminal reports properties of the attached terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsInteractive reports whether stdout is a terminal. Output piped to a file
// should not carry colour escapes.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FitScale returns the largest cells-per-unit scale that lets an area of the
// given world width and depth fit in a cols x rows character window. Each cell
// is printed two characters wide to keep the aspect ratio roughly square.
func FitScale(worldWidth, worldDepth float64, cols, rows int) float64 {
	if worldWidth <= 0 || worldDepth <= 0 {
		return 1
	}
	sx := float64(cols/2-1) / worldWidth
	sz := float64(rows-1) / worldDepth
	s := min(sx, sz)
	if s <= 0 {
		return 0.1
	}
	return s
}
