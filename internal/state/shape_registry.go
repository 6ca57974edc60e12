package state

import (
	"sync"

	"github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/wire"
)

// ShapeRegistry deduplicates shape uploads per scene. Identical geometry
// (same archetype key) maps to one engine-side shape that many actors attach,
// so a world with ten thousand identical crates uploads one box.
//
// The archetype key is caller-defined; any string that uniquely describes the
// geometry works (e.g. "box:0.5x0.5x0.5" or a mesh asset hash).
type ShapeRegistry struct {
	mu    sync.Mutex
	simID uint32
	byKey map[string]*shapeEntry

	// nextID is engine-facing and never reused within a scene, so a late
	// RemoveShape for a dead id can never hit a recycled one.
	nextID uint32
}

type shapeEntry struct {
	shape wire.ShapeID
	refs  int
}

func NewShapeRegistry(simID uint32) *ShapeRegistry {
	return &ShapeRegistry{
		simID:  simID,
		byKey:  map[string]*shapeEntry{},
		nextID: 1,
	}
}

// Acquire returns the shape id for the archetype, allocating one on first
// use. created tells the caller whether it must upload the geometry to the
// engine before attaching.
func (s *ShapeRegistry) Acquire(key string) (id wire.ShapeID, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.byKey[key]
	if e == nil {
		e = &shapeEntry{shape: wire.ShapeID{SimID: s.simID, ShapeID: s.nextID}}
		s.nextID++
		s.byKey[key] = e
		created = true
	}
	e.refs++
	return e.shape, created
}

// Release drops one reference. removed reports that this was the last user
// and the caller should send RemoveShape. Releasing an unknown key is a
// no-op; a detach racing a scene teardown must not panic.
func (s *ShapeRegistry) Release(key string) (id wire.ShapeID, removed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.byKey[key]
	if e == nil {
		return wire.ShapeID{}, false
	}
	e.refs--
	if e.refs > 0 {
		return e.shape, false
	}
	delete(s.byKey, key)
	return e.shape, true
}

// Lookup reports the live shape for an archetype without touching its
// refcount.
func (s *ShapeRegistry) Lookup(key string) (wire.ShapeID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.byKey[key]
	if e == nil {
		return wire.ShapeID{}, false
	}
	return e.shape, true
}

// Count is the number of live archetypes, for the status endpoint.
func (s *ShapeRegistry) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}
