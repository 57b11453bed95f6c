package bplustree

// BulkLoad replaces the tree's contents with keys/values, which the
// caller must already have sorted ascending by the tree's comparator;
// BulkLoad does not check this. It fills leaves left to right and
// builds inner levels bottom-up, which is both faster and produces a
// better-packed tree than inserting the same keys one at a time.
func (t *Tree[K, V]) BulkLoad(keys []K, values []V) {
	t.Clear()
	n := len(keys)
	if len(values) < n {
		n = len(values)
	}
	if n == 0 {
		return
	}

	leaves := t.packLeaves(keys[:n], values[:n])
	for i := 1; i < len(leaves); i++ {
		leaves[i].prev = leaves[i-1]
		leaves[i-1].next = leaves[i]
	}
	t.headLeaf = leaves[0]
	t.tailLeaf = leaves[len(leaves)-1]
	t.size = n

	level := make([]*node[K, V], len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		level = t.packInnerLevel(level)
	}
	t.root = level[0]
}

// packLeaves chunks keys/values into leaves of t.leafSlots entries
// each. If the final chunk would underflow, it borrows entries from
// the second-to-last leaf so both end up within bounds, the bulk-load
// analogue of the shift repair erase uses for the same situation.
func (t *Tree[K, V]) packLeaves(keys []K, values []V) []*node[K, V] {
	n := len(keys)
	var leaves []*node[K, V]
	for i := 0; i < n; i += t.leafSlots {
		end := i + t.leafSlots
		if end > n {
			end = n
		}
		leaf := newLeaf[K, V](t.leafSlots)
		leaf.keys = append(leaf.keys, keys[i:end]...)
		leaf.values = append(leaf.values, values[i:end]...)
		leaves = append(leaves, leaf)
	}

	min := t.minSlots(&node[K, V]{leaf: true})
	if len(leaves) >= 2 {
		last := leaves[len(leaves)-1]
		if len(last.keys) < min {
			prev := leaves[len(leaves)-2]
			combinedKeys := append(append([]K{}, prev.keys...), last.keys...)
			combinedValues := append(append([]V{}, prev.values...), last.values...)
			mid := len(combinedKeys) / 2
			prev.keys = append(prev.keys[:0], combinedKeys[:mid]...)
			prev.values = append(prev.values[:0], combinedValues[:mid]...)
			last.keys = append(last.keys[:0], combinedKeys[mid:]...)
			last.values = append(last.values[:0], combinedValues[mid:]...)
		}
	}
	return leaves
}

// packInnerLevel groups a level of nodes into parents of up to
// t.innerSlots+1 children each, deriving each parent's separators from
// its children's own greatest keys: the separator before child i is
// the largest key under child i-1. If the final parent would
// underflow, it shares children evenly with the one before it, as
// packLeaves does for the final leaf.
func (t *Tree[K, V]) packInnerLevel(level []*node[K, V]) []*node[K, V] {
	groupSize := t.innerSlots + 1
	var next []*node[K, V]
	for i := 0; i < len(level); i += groupSize {
		end := i + groupSize
		if end > len(level) {
			end = len(level)
		}
		group := level[i:end]
		inner := newInner[K, V](t.innerSlots)
		inner.children = append(inner.children, group...)
		for _, c := range group[:len(group)-1] {
			inner.keys = append(inner.keys, lastKey(c))
		}
		next = append(next, inner)
	}
	if n := len(next); n >= 2 && len(next[n-1].children) < t.minSlots(next[n-1])+1 {
		prev, last := next[n-2], next[n-1]
		combined := append(append([]*node[K, V]{}, prev.children...), last.children...)
		mid := len(combined) / 2
		prev.children = append(prev.children[:0], combined[:mid]...)
		last.children = append(last.children[:0], combined[mid:]...)
		for _, in := range []*node[K, V]{prev, last} {
			in.keys = in.keys[:0]
			for _, c := range in.children[:len(in.children)-1] {
				in.keys = append(in.keys, lastKey(c))
			}
		}
	}
	return next
}
