package bplustree

import "testing"

func TestVerifyEmptyTree(t *testing.T) {
	tr := New[int, int](intLess)
	if err := tr.Verify(); err != nil {
		t.Fatalf("empty tree should verify cleanly: %v", err)
	}
}

func TestVerifyDetectsOrderViolation(t *testing.T) {
	tr := New[int, int](intLess)
	tr.Insert(1, 1)
	tr.Insert(2, 2)
	tr.Insert(3, 3)
	// corrupt the root leaf directly, bypassing the public API.
	tr.root.keys[0], tr.root.keys[2] = tr.root.keys[2], tr.root.keys[0]
	if err := tr.Verify(); err == nil {
		t.Fatalf("expected Verify to detect the scrambled key order")
	}
}

func TestMustVerifyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustVerify to panic on a broken tree")
		}
	}()
	tr := New[int, int](intLess)
	tr.Insert(1, 1)
	tr.root.keys = append(tr.root.keys, 0) // keys/values length mismatch
	tr.MustVerify()
}
