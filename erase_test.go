package bplustree

import (
	"math/rand"
	"testing"
)

func TestEraseSixWayStress(t *testing.T) {
	tr := New[int, int](intLess, WithOrder[int, int](4, 4))
	const n = 500
	for i := 0; i < n; i++ {
		tr.Insert(i, i*i)
	}
	if err := tr.Verify(); err != nil {
		t.Fatalf("verify after insert: %v", err)
	}

	rng := rand.New(rand.NewSource(34234235))
	order := rng.Perm(n)
	for i, k := range order {
		if !tr.EraseOne(k) {
			t.Fatalf("erase of %d failed (step %d)", k, i)
		}
		if err := tr.Verify(); err != nil {
			t.Fatalf("verify after erasing %d (step %d): %v", k, i, err)
		}
	}
	if !tr.Empty() {
		t.Fatalf("tree should be empty after erasing every key, size=%d", tr.Size())
	}
}

func TestMultiMapRandomInsertEraseOne(t *testing.T) {
	tr := New[int, int](intLess, WithOrder[int, int](8, 8), WithDuplicates[int, int](true))
	rng := rand.New(rand.NewSource(34234235))

	const n = 320
	keys := make([]int, n)
	for i := range keys {
		keys[i] = rng.Intn(n / 4)
		tr.Insert(keys[i], i)
	}
	if tr.Size() != n {
		t.Fatalf("size = %d, want %d", tr.Size(), n)
	}
	if err := tr.Verify(); err != nil {
		t.Fatalf("verify after inserts: %v", err)
	}

	removed := 0
	for _, k := range keys {
		if tr.EraseOne(k) {
			removed++
		}
	}
	if removed != n {
		t.Fatalf("removed %d of %d inserted entries", removed, n)
	}
	if err := tr.Verify(); err != nil {
		t.Fatalf("verify after erase-one pass: %v", err)
	}
	if !tr.Empty() {
		t.Fatalf("expected empty tree, size=%d", tr.Size())
	}
}

func TestEraseNonexistentKey(t *testing.T) {
	tr := New[int, int](intLess)
	tr.Insert(1, 1)
	if tr.EraseOne(2) {
		t.Fatalf("erase of absent key should report false")
	}
	if tr.Size() != 1 {
		t.Fatalf("size should be unaffected by failed erase")
	}
}

func TestEraseAll(t *testing.T) {
	tr := New[int, int](intLess, WithDuplicates[int, int](true))
	for i := 0; i < 5; i++ {
		tr.Insert(7, i)
	}
	tr.Insert(8, 0)
	if n := tr.EraseAll(7); n != 5 {
		t.Fatalf("erase-all removed %d, want 5", n)
	}
	if tr.Exists(7) {
		t.Fatalf("key 7 should be gone")
	}
	if !tr.Exists(8) {
		t.Fatalf("key 8 should be untouched")
	}
}
