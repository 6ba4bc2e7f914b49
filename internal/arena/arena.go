// Package arena implements the bump-style allocator the parser uses to
// build AST nodes. Nodes are owned by the arena that created them,
// referenced through plain Go pointers into it, and freed in one shot
// (letting the arena become garbage) once the caller is done walking the
// result. Trees built this way are parent-free: a node holds its
// children, never a reference back to its parent, so there are no
// cycles for the allocator (or the garbage collector) to worry about.
package arena

// Arena is a typed bump allocator for a single AST node kind T. The
// parser keeps one Arena per record kind it allocates this way
// (parameters and data class fields); nothing is shared across parses.
type Arena[T any] struct {
	chunks [][]T
	chunk  int
}

const chunkSize = 256

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{chunks: [][]T{make([]T, 0, chunkSize)}}
}

// Alloc copies v into the arena and returns a stable pointer to the copy.
// The pointer remains valid for the lifetime of the Arena; it must never
// be retained past the arena being discarded.
func (a *Arena[T]) Alloc(v T) *T {
	cur := a.chunks[a.chunk]
	if len(cur) == cap(cur) {
		a.chunks = append(a.chunks, make([]T, 0, chunkSize))
		a.chunk++
		cur = a.chunks[a.chunk]
	}
	cur = append(cur, v)
	a.chunks[a.chunk] = cur
	return &cur[len(cur)-1]
}

// Len reports how many values have been allocated so far.
func (a *Arena[T]) Len() int {
	n := 0
	for i, c := range a.chunks {
		if i == len(a.chunks)-1 {
			n += len(c)
		} else {
			n += cap(c)
		}
	}
	return n
}

// Reset discards every allocation, letting the backing chunks be
// garbage-collected. The Arena is safe to reuse afterward for a fresh
// parse, though each parse ordinarily gets its own Arena instance.
func (a *Arena[T]) Reset() {
	a.chunks = [][]T{make([]T, 0, chunkSize)}
	a.chunk = 0
}
