package bplustree

import "fmt"

// Verify walks the tree once, top-down, and returns a non-nil error
// describing the first broken invariant it finds: key ordering within
// a node, separator correctness between a node and its children,
// occupancy bounds, uniform leaf depth, leaf chain continuity, and the
// cached size counter. A freshly constructed or correctly mutated tree
// always verifies cleanly; a failure points at a bug in this package,
// not at caller misuse.
func (t *Tree[K, V]) Verify() error {
	if t.root == nil {
		if t.size != 0 || t.headLeaf != nil || t.tailLeaf != nil {
			return fmt.Errorf("%w: empty root but size=%d headLeaf=%v tailLeaf=%v",
				ErrCounterMismatch, t.size, t.headLeaf != nil, t.tailLeaf != nil)
		}
		return nil
	}

	leafDepth := -1
	count := 0
	var lastLeafSeen *node[K, V]
	var walk func(n *node[K, V], depth int, lower, upper *K) error
	walk = func(n *node[K, V], depth int, lower, upper *K) error {
		if len(n.keys) == 0 && n != t.root {
			return fmt.Errorf("%w: non-root node with zero keys", ErrOccupancyViolation)
		}
		for i := 1; i < len(n.keys); i++ {
			if t.less(n.keys[i], n.keys[i-1]) {
				return fmt.Errorf("%w: keys not non-decreasing at index %d", ErrOrderViolation, i)
			}
		}
		if lower != nil && len(n.keys) > 0 && t.less(n.keys[0], *lower) {
			return fmt.Errorf("%w: node's first key precedes its lower separator", ErrOrderViolation)
		}
		if upper != nil && len(n.keys) > 0 && t.less(*upper, n.keys[len(n.keys)-1]) {
			return fmt.Errorf("%w: node's last key exceeds its upper separator", ErrOrderViolation)
		}

		if n.leaf {
			if depth != leafDepth {
				if leafDepth == -1 {
					leafDepth = depth
				} else {
					return fmt.Errorf("%w: leaf at depth %d, expected %d", ErrDepthMismatch, depth, leafDepth)
				}
			}
			if n != t.root && (len(n.keys) < t.minSlots(n) || len(n.keys) > t.leafSlots) {
				return fmt.Errorf("%w: leaf holds %d keys, want [%d,%d]",
					ErrOccupancyViolation, len(n.keys), t.minSlots(n), t.leafSlots)
			}
			if len(n.keys) != len(n.values) {
				return fmt.Errorf("%w: leaf keys/values length mismatch", ErrOccupancyViolation)
			}
			if lastLeafSeen != nil && lastLeafSeen.next != n {
				return fmt.Errorf("%w: leaf chain does not reach this leaf", ErrChainBroken)
			}
			if n.prev != lastLeafSeen {
				return fmt.Errorf("%w: leaf's prev pointer disagrees with chain order", ErrChainBroken)
			}
			lastLeafSeen = n
			count += len(n.keys)
			return nil
		}

		if n != t.root && (len(n.children) < t.minSlots(n)+1 || len(n.children) > t.innerSlots+1) {
			return fmt.Errorf("%w: inner node holds %d children, want [%d,%d]",
				ErrOccupancyViolation, len(n.children), t.minSlots(n)+1, t.innerSlots+1)
		}
		if len(n.children) != len(n.keys)+1 {
			return fmt.Errorf("%w: inner node has %d children but %d keys", ErrOccupancyViolation, len(n.children), len(n.keys))
		}
		for i, c := range n.children {
			var lo, hi *K
			if i > 0 {
				lo = &n.keys[i-1]
			} else {
				lo = lower
			}
			if i < len(n.keys) {
				hi = &n.keys[i]
			} else {
				hi = upper
			}
			if err := walk(c, depth+1, lo, hi); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(t.root, 0, nil, nil); err != nil {
		return err
	}
	if lastLeafSeen != t.tailLeaf {
		return fmt.Errorf("%w: tailLeaf does not match the last leaf reached by traversal", ErrChainBroken)
	}
	if count != t.size {
		return fmt.Errorf("%w: traversal counted %d entries, tree reports %d", ErrCounterMismatch, count, t.size)
	}
	return nil
}

// MustVerify calls Verify and panics if it returns an error.
func (t *Tree[K, V]) MustVerify() {
	if err := t.Verify(); err != nil {
		panic(err)
	}
}
