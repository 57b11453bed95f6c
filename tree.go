package bplustree

import "unsafe"

// Tree is an in-memory B+ tree mapping keys of type K to values of
// type V. The zero value is not usable; construct one with New.
type Tree[K any, V any] struct {
	less Less[K]

	root     *node[K, V]
	headLeaf *node[K, V]
	tailLeaf *node[K, V]
	size     int

	leafSlots  int
	innerSlots int
	allowDup   bool
	selfVerify bool

	sizeofK uintptr
	sizeofV uintptr
}

// New constructs an empty Tree ordered by less. Node capacities default
// to a value derived from the in-memory size of K and V (see
// WithOrder to override).
func New[K any, V any](less Less[K], opts ...Option[K, V]) *Tree[K, V] {
	var zeroK K
	var zeroV V
	t := &Tree[K, V]{
		less:    less,
		sizeofK: unsafe.Sizeof(zeroK),
		sizeofV: unsafe.Sizeof(zeroV),
	}
	t.leafSlots, t.innerSlots = defaultOrder(t.sizeofK, t.sizeofV)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size returns the number of key/value entries stored in the tree.
func (t *Tree[K, V]) Size() int { return t.size }

// Empty reports whether the tree holds no entries.
func (t *Tree[K, V]) Empty() bool { return t.size == 0 }

// MaxSize returns an upper bound on the number of entries a Tree could
// hold, the same bound any Go slice-backed container is subject to.
func (t *Tree[K, V]) MaxSize() int { return int(^uint(0) >> 1) }

// Clear empties the tree. Existing iterators become invalid.
func (t *Tree[K, V]) Clear() {
	t.root = nil
	t.headLeaf = nil
	t.tailLeaf = nil
	t.size = 0
}

// Swap exchanges the contents of t and other. Both must have been
// constructed with compatible comparators; Swap does not check this,
// matching the reference container's unchecked swap.
func (t *Tree[K, V]) Swap(other *Tree[K, V]) {
	*t, *other = *other, *t
}

// Stats summarizes the current shape of a tree.
type Stats struct {
	Size       int
	Leaves     int
	InnerNodes int
	Depth      int
}

// Stats walks the tree once and reports its current shape.
func (t *Tree[K, V]) Stats() Stats {
	st := Stats{Size: t.size}
	if t.root == nil {
		return st
	}
	var walk func(n *node[K, V], depth int)
	walk = func(n *node[K, V], depth int) {
		if n.leaf {
			st.Leaves++
			if depth+1 > st.Depth {
				st.Depth = depth + 1
			}
			return
		}
		st.InnerNodes++
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(t.root, 0)
	return st
}
