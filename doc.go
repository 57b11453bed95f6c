// Package bplustree implements an in-memory B+ tree: a sorted,
// associative container organized as a shallow multi-way search tree.
// Keys are replicated into every inner node a search must pass through;
// values live only in the leaves, which are chained into a doubly
// linked list so that range scans never revisit an inner node.
//
// The tree is parameterized over a key type K and a value type V, with
// ordering supplied by a caller-provided comparator rather than an
// interface constraint, so a single instantiation can be re-ordered
// (ascending, descending, or anything else total) without a new named
// type:
//
//	t := bplustree.New[int, string](func(a, b int) bool { return a < b })
//	t.Insert(3, "three")
//	t.Insert(1, "one")
//	it, ok := t.Find(1) // it.Value() == "one", ok == true
//
// A Tree is not safe for concurrent use; callers needing concurrent
// access must serialize it themselves, the same way they would a plain
// map. Mutating a tree invalidates every Iterator obtained before the
// mutation.
//
// Inner node fanout versus leaf fanout is configurable independently
// via WithOrder, matching the way the on-disk page layouts in this
// module's sibling package, diskstore, size their own cells — the
// in-memory tree's node width is chosen the same way a disk page's
// cell count would be, just without a page to fit into.
package bplustree
