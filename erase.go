package bplustree

import "slices"

// EraseOne removes a single entry matching key, if any, and reports
// whether one was removed. Under duplicates, it removes the entry
// nearest the front of the equal-key run (the oldest insertion still
// present).
func (t *Tree[K, V]) EraseOne(key K) bool {
	return t.erase(key, false) > 0
}

// EraseAll removes every entry matching key and reports how many were
// removed.
func (t *Tree[K, V]) EraseAll(key K) int {
	return t.erase(key, true)
}

func (t *Tree[K, V]) erase(key K, all bool) int {
	if t.root == nil {
		return 0
	}
	removed := 0
	for {
		ok, _, _ := t.eraseRec(t.root, key)
		if !ok {
			break
		}
		removed++
		t.size--
		if !all {
			break
		}
	}
	t.collapseRoot()
	if t.selfVerify && removed > 0 {
		t.MustVerify()
	}
	return removed
}

// collapseRoot implements the root-collapse underflow case: once the
// root is an inner node holding no separators at all, its sole
// remaining child becomes the new root; once it is a leaf holding no
// entries, the tree becomes empty.
func (t *Tree[K, V]) collapseRoot() {
	for t.root != nil && !t.root.leaf && len(t.root.keys) == 0 {
		t.root = t.root.children[0]
	}
	if t.root != nil && t.root.leaf && len(t.root.keys) == 0 {
		t.root = nil
		t.headLeaf = nil
		t.tailLeaf = nil
	}
}

func (t *Tree[K, V]) minSlots(n *node[K, V]) int {
	if n.leaf {
		return t.leafSlots / 2
	}
	return t.innerSlots / 2
}

// eraseRec removes one entry equal to key from the subtree rooted at
// n. It reports whether an entry was removed, whether n now has fewer
// than its minimum slot count (underflow, ignored for the tree root),
// and a boundary-key update to propagate to an ancestor: n's greatest
// key has changed, and changed reports whether an ancestor separator
// needs updating to match. An ancestor that holds n as anything but
// its rightmost child replaces the corresponding separator with n's
// new greatest key and stops propagating; one for which n (or the
// child carrying n) is the rightmost child has no separator of its own
// to fix, so it passes the update on unchanged — this is how a shift
// or merge several levels down reaches the actual anchor node holding
// its separator, which is not always the direct parent.
func (t *Tree[K, V]) eraseRec(n *node[K, V], key K) (ok, underflow, changed bool) {
	if n.leaf {
		idx := t.findLower(n.keys, key)
		if idx >= len(n.keys) || !t.eq(n.keys[idx], key) {
			return false, false, false
		}
		wasLast := idx == len(n.keys)-1
		n.keys = slices.Delete(n.keys, idx, idx+1)
		n.values = slices.Delete(n.values, idx, idx+1)
		underflow = len(n.keys) < t.minSlots(n)
		changed = wasLast && len(n.keys) > 0
		return true, underflow, changed
	}

	oldLast := lastKey(n)

	idx := t.findLower(n.keys, key)
	childOK, childUnderflow, childChanged := t.eraseRec(n.children[idx], key)
	if !childOK {
		return false, false, false
	}

	if childChanged && idx < len(n.children)-1 {
		n.keys[idx] = lastKey(n.children[idx])
	}

	if childUnderflow {
		t.repair(n, idx)
	}

	underflow = len(n.keys) < t.minSlots(n)
	if !t.eq(oldLast, lastKey(n)) {
		changed = true
	}
	return true, underflow, changed
}

// repair restores n.children[idx]'s occupancy after it underflowed,
// choosing among the classic four structural fixes in priority order:
// borrow a slot from the left sibling, borrow one from the right
// sibling, merge into the left sibling, or merge into the right
// sibling. The two remaining cases the tree's erase path handles —
// root collapse and multi-level anchor correction — are handled by
// collapseRoot and by the boundary-propagation in eraseRec above,
// respectively, rather than here.
func (t *Tree[K, V]) repair(parent *node[K, V], idx int) {
	child := parent.children[idx]
	var left, right *node[K, V]
	if idx > 0 {
		left = parent.children[idx-1]
	}
	if idx < len(parent.children)-1 {
		right = parent.children[idx+1]
	}

	switch {
	case left != nil && len(left.keys) > t.minSlots(left):
		t.shiftFromLeft(parent, idx, left, child)
	case right != nil && len(right.keys) > t.minSlots(right):
		t.shiftFromRight(parent, idx, child, right)
	case left != nil:
		t.mergeInto(parent, idx-1, left, child)
	case right != nil:
		t.mergeInto(parent, idx, child, right)
	}
}

// shiftFromLeft borrows the rightmost slot of left and prepends it to
// child, rotating the separator in parent through both.
func (t *Tree[K, V]) shiftFromLeft(parent *node[K, V], idx int, left, child *node[K, V]) {
	if child.leaf {
		k := left.keys[len(left.keys)-1]
		v := left.values[len(left.values)-1]
		left.keys = left.keys[:len(left.keys)-1]
		left.values = left.values[:len(left.values)-1]
		child.keys = slices.Insert(child.keys, 0, k)
		child.values = slices.Insert(child.values, 0, v)
		parent.keys[idx-1] = left.keys[len(left.keys)-1]
		return
	}
	k := left.keys[len(left.keys)-1]
	c := left.children[len(left.children)-1]
	left.keys = left.keys[:len(left.keys)-1]
	left.children = left.children[:len(left.children)-1]
	child.keys = slices.Insert(child.keys, 0, parent.keys[idx-1])
	child.children = slices.Insert(child.children, 0, c)
	parent.keys[idx-1] = k
}

// shiftFromRight borrows the leftmost slot of right and appends it to
// child, rotating the separator in parent through both.
func (t *Tree[K, V]) shiftFromRight(parent *node[K, V], idx int, child, right *node[K, V]) {
	if child.leaf {
		k := right.keys[0]
		v := right.values[0]
		right.keys = slices.Delete(right.keys, 0, 1)
		right.values = slices.Delete(right.values, 0, 1)
		child.keys = append(child.keys, k)
		child.values = append(child.values, v)
		parent.keys[idx] = k
		return
	}
	k := right.keys[0]
	c := right.children[0]
	right.keys = slices.Delete(right.keys, 0, 1)
	right.children = slices.Delete(right.children, 0, 1)
	child.keys = append(child.keys, parent.keys[idx])
	child.children = append(child.children, c)
	parent.keys[idx] = k
}

// mergeInto absorbs right into left (parent.keys[at] is the separator
// between them in parent) and removes the now-empty right child and
// its separator from parent.
func (t *Tree[K, V]) mergeInto(parent *node[K, V], at int, left, right *node[K, V]) {
	if left.leaf {
		left.keys = append(left.keys, right.keys...)
		left.values = append(left.values, right.values...)
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		} else {
			t.tailLeaf = left
		}
	} else {
		left.keys = append(left.keys, parent.keys[at])
		left.keys = append(left.keys, right.keys...)
		left.children = append(left.children, right.children...)
	}
	parent.keys = slices.Delete(parent.keys, at, at+1)
	parent.children = slices.Delete(parent.children, at+1, at+2)
}
