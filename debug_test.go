package bplustree

import (
	"strings"
	"testing"
)

func TestSprintRendersStructure(t *testing.T) {
	tr := New[int, int](intLess, WithOrder[int, int](4, 4))
	for i := 0; i < 40; i++ {
		tr.Insert(i, i)
	}
	out := tr.Sprint()
	if !strings.Contains(out, "leaf") {
		t.Fatalf("Sprint output missing leaf nodes:\n%s", out)
	}
	if !strings.Contains(out, "inner") {
		t.Fatalf("Sprint output missing inner nodes for a tree this size:\n%s", out)
	}
}

func TestSprintEmptyTree(t *testing.T) {
	tr := New[int, int](intLess)
	if out := tr.Sprint(); !strings.Contains(out, "empty") {
		t.Fatalf("expected empty-tree marker, got:\n%s", out)
	}
}
