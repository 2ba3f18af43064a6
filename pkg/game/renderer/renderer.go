// Package renderer defines the visual collaborator interface and a
// thread-safe scene store shared by the concrete backends.
package renderer

import (
	"sort"
	"sync"
	"time"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/layout"
)

// Scene keeps the visuals a renderer has been told about. Backends embed it
// and draw from Visuals.
type Scene struct {
	mu      sync.RWMutex
	visuals map[layout.VisualID]layout.Visual
	lit     map[int]time.Time
	now     func() time.Time
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		visuals: make(map[layout.VisualID]layout.Visual),
		lit:     make(map[int]time.Time),
		now:     time.Now,
	}
}

// AddObject stores v, replacing any visual with the same ID.
func (s *Scene) AddObject(v layout.Visual) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visuals[v.ID] = v
}

// RemoveObject forgets the visual with v.ID.
func (s *Scene) RemoveObject(v layout.Visual) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visuals, v.ID)
}

// TriggerRoomLighting records when the room was lit.
func (s *Scene) TriggerRoomLighting(room *layout.Room) {
	if room == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lit[room.ID] = s.now()
}

// LitSince reports whether room id was lit and how long ago.
func (s *Scene) LitSince(id int) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.lit[id]
	if !ok {
		return 0, false
	}
	return s.now().Sub(at), true
}

// Len returns the number of live visuals.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visuals)
}

// Visuals returns a snapshot ordered by kind (ceilings, then floors) then ID, which is
// the painter's order every backend draws in.
func (s *Scene) Visuals() []layout.Visual {
	s.mu.RLock()
	out := make([]layout.Visual, 0, len(s.visuals))
	for _, v := range s.visuals {
		out = append(out, v)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return drawRank(out[i].Kind) < drawRank(out[j].Kind)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Bounds returns the union of every floor visual, or ok=false when empty.
func (s *Scene) Bounds() (world.Rect, bool) {
	var out world.Rect
	found := false
	for _, v := range s.Visuals() {
		if v.Kind != layout.VisualFloor {
			continue
		}
		if !found {
			out, found = v.Rect, true
			continue
		}
		out = out.Union(v.Rect)
	}
	return out, found
}

func drawRank(k layout.VisualKind) int {
	switch k {
	case layout.VisualCeiling:
		return 0
	case layout.VisualFloor:
		return 1
	case layout.VisualWall:
		return 2
	case layout.VisualDoorFrame:
		return 3
	default:
		return 4
	}
}
