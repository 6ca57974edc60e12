package state

import "testing"

func TestShapeRegistry_AcquireDeduplicates(t *testing.T) {
	s := NewShapeRegistry(7)

	first, created := s.Acquire("box:0.5x0.5x0.5")
	if !created {
		t.Fatalf("first acquire did not create")
	}
	if first.SimID != 7 || first.ShapeID == 0 {
		t.Fatalf("shape=%+v", first)
	}

	second, created := s.Acquire("box:0.5x0.5x0.5")
	if created {
		t.Fatalf("second acquire created a duplicate")
	}
	if second != first {
		t.Fatalf("second=%+v first=%+v", second, first)
	}

	other, created := s.Acquire("sphere:0.25")
	if !created || other == first {
		t.Fatalf("other=%+v created=%v", other, created)
	}
	if got := s.Count(); got != 2 {
		t.Fatalf("count=%d", got)
	}
}

func TestShapeRegistry_ReleaseRemovesOnLastRef(t *testing.T) {
	s := NewShapeRegistry(7)
	id, _ := s.Acquire("sphere:1")
	s.Acquire("sphere:1")

	if _, removed := s.Release("sphere:1"); removed {
		t.Fatalf("removed while a reference remained")
	}
	got, removed := s.Release("sphere:1")
	if !removed || got != id {
		t.Fatalf("removed=%v got=%+v want=%+v", removed, got, id)
	}
	if _, ok := s.Lookup("sphere:1"); ok {
		t.Fatalf("released archetype still live")
	}
}

func TestShapeRegistry_IdsNeverReused(t *testing.T) {
	s := NewShapeRegistry(7)
	first, _ := s.Acquire("plane:up")
	s.Release("plane:up")
	second, _ := s.Acquire("plane:up")
	if second.ShapeID <= first.ShapeID {
		t.Fatalf("first=%d second=%d", first.ShapeID, second.ShapeID)
	}
}

func TestShapeRegistry_ReleaseUnknownIsNoop(t *testing.T) {
	s := NewShapeRegistry(7)
	if _, removed := s.Release("never-acquired"); removed {
		t.Fatalf("unknown release reported removal")
	}
}
