// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// DefaultDumpFilename is used when no path is given.
const DefaultDumpFilename = "map.txt"

// DumpScale is the raster resolution of the dump, in cells per world unit.
const DumpScale = 0.5

// cellSymbol returns the single-character symbol for a cell (no player overlay).
func cellSymbol(l *layout.Layout, cell *world.Cell) rune {
	if cell == nil {
		return ' '
	}
	switch cell.Kind {
	case world.CellWall:
		return '#'
	case world.CellDoor:
		return 'D'
	case world.CellCorridor:
		return ','
	case world.CellFloor:
		r := l.Room(cell.Tag)
		if r == nil {
			return '.'
		}
		switch r.Type {
		case layout.RoomStart:
			return 'S'
		case layout.RoomBoss:
			return 'B'
		case layout.RoomShop:
			return '$'
		case layout.RoomSecret:
			return '?'
		default:
			return '.'
		}
	default:
		return ' '
	}
}

// writeMapGrid writes the grid to w with the spawn overlay.
func writeMapGrid(w io.Writer, l *layout.Layout, g *world.Grid, spawn *world.Cell) {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.GetCell(row, col)
			if cell == spawn {
				fmt.Fprint(w, "@")
				continue
			}
			fmt.Fprintf(w, "%c", cellSymbol(l, cell))
		}
		fmt.Fprintln(w)
	}
}

// DumpLayoutToFile writes a full debug dump of l to path (map.txt when empty)
// and returns the absolute path written.
func DumpLayoutToFile(l *layout.Layout, path string) (string, error) {
	if path == "" {
		path = DefaultDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create dump file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := DumpLayout(bw, l); err != nil {
		return absPath, err
	}
	if err := bw.Flush(); err != nil {
		return absPath, err
	}
	return absPath, f.Sync()
}

// DumpLayout writes metadata, legend, raster map, rooms, doors, corridors,
// links and validation results. Format is human- and LLM-readable (sections,
// key: value, consistent structure).
func DumpLayout(w io.Writer, l *layout.Layout) error {
	if l == nil {
		return errors.New("no layout")
	}

	g := layout.Rasterize(l, DumpScale)
	spawn := g.CellAt(l.Spawn)
	spawnRoom := -1
	if l.SpawnRoom != nil {
		spawnRoom = l.SpawnRoom.ID
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAP DUMP DEBUG (dungeon layout, doors, corridors) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", l.Seed)
	fmt.Fprintf(w, "bounds: %s\n", l.Bounds)
	fmt.Fprintf(w, "grid_rows: %d\n", g.Rows())
	fmt.Fprintf(w, "grid_cols: %d\n", g.Cols())
	fmt.Fprintf(w, "grid_scale: %g\n", g.Scale())
	fmt.Fprintln(w, "coordinate_system: x grows east, z grows south; row follows z, col follows x")
	fmt.Fprintf(w, "rooms: %d\n", len(l.Rooms))
	fmt.Fprintf(w, "corridors: %d\n", len(l.Corridors))
	fmt.Fprintf(w, "doors: %d\n", l.Doors.Len())
	fmt.Fprintf(w, "links: %d\n", len(l.Links))
	fmt.Fprintf(w, "spawn: %s\n", l.Spawn)
	fmt.Fprintf(w, "spawn_room: %d\n", spawnRoom)
	if spawn != nil {
		fmt.Fprintf(w, "walkable_cells: %d\n", g.CountWalkable())
		fmt.Fprintf(w, "reachable_from_spawn: %d\n", g.CountReachable(spawn))
	}
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, ". = room floor  S = start  B = boss  $ = shop  ? = secret  , = corridor  # = wall  D = door  @ = spawn")
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	writeMapGrid(w, l, g, spawn)
	fmt.Fprintln(w, "")

	// Rooms
	fmt.Fprintln(w, "Rooms:")
	for _, r := range l.Rooms {
		fmt.Fprintf(w, "  id: %d type: %s name: %q center: %s width: %g depth: %g doors: %d cap: %d walls: %d visited: %v\n",
			r.ID, r.Type, r.Type.DisplayName(), r.Center, r.Width, r.Depth, r.DoorCount(), l.DoorCap(r), len(r.Walls), r.Visited)
	}
	fmt.Fprintln(w, "")

	// Doors
	fmt.Fprintln(w, "Doors:")
	for _, r := range l.Rooms {
		for _, d := range world.AllDirections() {
			door, ok := r.Doors[d]
			if !ok {
				continue
			}
			kind := "none"
			if link := l.LinkForDoor(r.ID, d); link != nil {
				kind = link.Kind.String()
			}
			fmt.Fprintf(w, "  room: %d side: %s pos: %s width: %g recorded: %v link: %s\n",
				r.ID, d, door.Pos, door.Width, l.Doors.Has(door.Pos), kind)
		}
	}
	fmt.Fprintln(w, "")

	// Corridors
	fmt.Fprintln(w, "Corridors:")
	for _, c := range l.Corridors {
		fmt.Fprintf(w, "  id: %d from: %d to: %d start: %s end: %s segments: %d branches: %d\n",
			c.ID, c.From, c.To, c.Start, c.End, len(c.Segments), len(c.Branches))
		for _, s := range c.Segments {
			fmt.Fprintf(w, "    segment: %s rect: %s walls: %d\n", s.Orientation, s.Rect, len(s.Walls))
		}
	}
	fmt.Fprintln(w, "")

	// Links
	fmt.Fprintln(w, "Links:")
	for _, link := range l.Links {
		fmt.Fprintf(w, "  kind: %s a: %d/%s b: %d/%s\n", link.Kind, link.A.Room, link.A.Dir, link.B.Room, link.B.Dir)
	}
	fmt.Fprintln(w, "")

	// Validation
	fmt.Fprintln(w, "Validation:")
	if err := l.Validate(); err != nil {
		fmt.Fprintf(w, "  errors: %q\n", err.Error())
	} else {
		fmt.Fprintln(w, "  ok")
	}
	fmt.Fprintln(w, "")

	_, err := fmt.Fprintln(w, "=== END MAP DUMP ===")
	return err
}
