package bplustree

import "sort"

// findLower returns the index of the first element of keys not less
// than key (the classic lower_bound), or len(keys) if none qualifies.
func (t *Tree[K, V]) findLower(keys []K, key K) int {
	idx := sort.Search(len(keys), func(i int) bool {
		return !t.less(keys[i], key)
	})
	if t.selfVerify {
		t.crossCheck(keys, key, idx, false)
	}
	return idx
}

// findUpper returns the index of the first element of keys strictly
// greater than key (the classic upper_bound), or len(keys) if none
// qualifies.
func (t *Tree[K, V]) findUpper(keys []K, key K) int {
	idx := sort.Search(len(keys), func(i int) bool {
		return t.less(key, keys[i])
	})
	if t.selfVerify {
		t.crossCheck(keys, key, idx, true)
	}
	return idx
}

// crossCheck re-derives a bound by linear scan and panics if it
// disagrees with the binary-search result. Only runs when the tree was
// built with WithSelfVerify(true); it exists to catch an inconsistent
// comparator, the same role the reference implementation's debug-build
// self-verification plays.
func (t *Tree[K, V]) crossCheck(keys []K, key K, got int, upper bool) {
	want := 0
	for _, k := range keys {
		cond := t.less(k, key)
		if upper {
			cond = !t.less(key, k)
		}
		if cond {
			want++
		} else {
			break
		}
	}
	if want != got {
		panic("bplustree: self-verify: binary search disagrees with linear scan, comparator is likely inconsistent")
	}
}

func (t *Tree[K, V]) eq(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
}
