package arena_test

import (
	"testing"

	"github.com/ferra-lang/ferra/internal/arena"
)

func TestAllocReturnsStablePointers(t *testing.T) {
	a := arena.New[int]()
	var ptrs []*int
	for i := 0; i < 1000; i++ {
		ptrs = append(ptrs, a.Alloc(i))
	}
	for i, p := range ptrs {
		if *p != i {
			t.Fatalf("pointer %d: expected %d, got %d (arena growth invalidated a prior pointer)", i, i, *p)
		}
	}
}

func TestLenTracksAllocations(t *testing.T) {
	a := arena.New[string]()
	for i := 0; i < 5; i++ {
		a.Alloc("x")
	}
	if a.Len() != 5 {
		t.Fatalf("expected Len() == 5, got %d", a.Len())
	}
}

func TestResetClearsArena(t *testing.T) {
	a := arena.New[int]()
	a.Alloc(1)
	a.Alloc(2)
	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("expected Len() == 0 after Reset, got %d", a.Len())
	}
}
