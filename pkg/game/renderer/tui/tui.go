package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeonforge/pkg/engine/terminal"
	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
	"dungeonforge/pkg/game/renderer"
)

// Icon constants
const (
	PlayerIcon    = "@"
	IconWall      = "▒"
	IconFloor     = "·"
	IconLitFloor  = "•"
	IconCorridor  = "░"
	IconDoor      = "□"
	IconIndicator = "◆"
	IconVoid      = " "
)

// Lines kept free below the map for the legend.
const legendLines = 3

// TUIRenderer is the terminal renderer. It collects visuals like any other
// backend and prints them as a coloured character map.
type TUIRenderer struct {
	*renderer.Scene

	out io.Writer

	// Plain disables colour escapes.
	Plain bool
	// Cols and Rows override the detected terminal size when positive.
	Cols int
	Rows int

	colorWall     color.Style
	colorDoor     color.Style
	colorCorridor color.Style
	colorPlayer   color.Style
	colorSubtle   color.Style
	colorLit      color.Style
}

// New creates a new TUI renderer writing to out
func New(out io.Writer) *TUIRenderer {
	return &TUIRenderer{Scene: renderer.NewScene(), out: out}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorWall = color.Style{color.FgGray}
	t.colorDoor = color.Style{color.FgYellow, color.OpBold}
	t.colorCorridor = color.Style{color.FgBlue}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorLit = color.Style{color.OpBold}
	if !terminal.IsInteractive() {
		t.Plain = true
	}
}

// size returns the character window available for the map.
func (t *TUIRenderer) size() (cols, rows int) {
	cols, rows = terminal.GetSize()
	if t.Cols > 0 {
		cols = t.Cols
	}
	if t.Rows > 0 {
		rows = t.Rows
	}
	return cols, max(rows-legendLines, 1)
}

// Raster samples the current scene onto a grid fitted to the window. Floors
// owned by a room carry the room id as tag.
func (t *TUIRenderer) Raster() (*world.Grid, bool) {
	bounds, ok := t.Bounds()
	if !ok {
		return nil, false
	}
	cols, rows := t.size()
	g := world.NewGridOver(bounds, terminal.FitScale(bounds.Width(), bounds.Depth(), cols, rows))
	for _, v := range t.Visuals() {
		switch v.Kind {
		case layout.VisualFloor:
			if v.Owner == layout.NoOwner {
				g.Paint(v.Rect, world.CellCorridor, layout.NoOwner)
			} else {
				g.Paint(v.Rect, world.CellFloor, v.Owner)
			}
		case layout.VisualWall:
			g.Paint(v.Rect, world.CellWall, v.Owner)
		case layout.VisualDoorFrame:
			g.Paint(v.Rect, world.CellDoor, v.Owner)
		}
	}
	return g, true
}

// RenderFrame prints the map with the player marker, if any, and a legend.
func (t *TUIRenderer) RenderFrame(player *world.Point) error {
	g, ok := t.Raster()
	if !ok {
		_, err := fmt.Fprintln(t.out, t.style(t.colorSubtle, gotext.Get("(empty map)")))
		return err
	}

	floors := make(map[int]layout.Visual)
	for _, v := range t.Visuals() {
		if v.Kind == layout.VisualFloor && v.Owner != layout.NoOwner {
			floors[v.Owner] = v
		}
	}
	var playerCell *world.Cell
	if player != nil {
		playerCell = g.CellAt(*player)
	}

	var sb strings.Builder
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c := g.GetCell(row, col)
			if c == playerCell {
				sb.WriteString(t.style(t.colorPlayer, PlayerIcon+PlayerIcon))
				continue
			}
			sb.WriteString(t.renderCell(c, floors))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(t.legend())

	_, err := io.WriteString(t.out, sb.String())
	return err
}

// renderCell returns the two-character representation of a cell
func (t *TUIRenderer) renderCell(c *world.Cell, floors map[int]layout.Visual) string {
	switch c.Kind {
	case world.CellWall:
		return t.style(t.colorWall, IconWall+IconWall)
	case world.CellDoor:
		return t.style(t.colorDoor, IconDoor+" ")
	case world.CellCorridor:
		return t.style(t.colorCorridor, IconCorridor+IconCorridor)
	case world.CellFloor:
		icon := IconFloor
		_, lit := t.LitSince(c.Tag)
		if lit {
			icon = IconLitFloor
		}
		v, ok := floors[c.Tag]
		if !ok || t.Plain {
			return icon + " "
		}
		s := color.RGB(v.Tint.R, v.Tint.G, v.Tint.B).Sprint(icon + " ")
		if lit {
			s = t.colorLit.Sprint(s)
		}
		return s
	default:
		return IconVoid + IconVoid
	}
}

// legend lists the room roles with their floor colour.
func (t *TUIRenderer) legend() string {
	var parts []string
	for _, rt := range layout.AllRoomTypes() {
		tint := layout.FloorTint(rt)
		swatch := IconFloor
		if !t.Plain {
			swatch = color.RGB(tint.R, tint.G, tint.B).Sprint(IconFloor)
		}
		parts = append(parts, swatch+" "+rt.DisplayName())
	}
	parts = append(parts,
		t.style(t.colorCorridor, IconCorridor)+" "+gotext.Get("Corridor"),
		t.style(t.colorDoor, IconDoor)+" "+gotext.Get("Door"),
		t.style(t.colorPlayer, PlayerIcon)+" "+gotext.Get("Player"),
	)
	return "\n" + strings.Join(parts, t.style(t.colorSubtle, "  ")) + "\n"
}

func (t *TUIRenderer) style(s color.Style, text string) string {
	if t.Plain {
		return text
	}
	return s.Sprint(text)
}
