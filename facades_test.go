package bplustree

import "testing"

func TestSet(t *testing.T) {
	s := NewSet[int](intLess)
	if added := s.Insert(5); !added {
		t.Fatalf("first insert of 5 should report added")
	}
	if added := s.Insert(5); added {
		t.Fatalf("second insert of 5 should not report added")
	}
	if s.Size() != 1 {
		t.Fatalf("size = %d, want 1", s.Size())
	}
	if !s.Erase(5) {
		t.Fatalf("erase of present key should succeed")
	}
	if !s.Empty() {
		t.Fatalf("set should be empty after erasing its only key")
	}
}

func TestMultiSet(t *testing.T) {
	ms := NewMultiSet[int](intLess)
	ms.Insert(1)
	ms.Insert(1)
	ms.Insert(2)
	if ms.Count(1) != 2 {
		t.Fatalf("count(1) = %d, want 2", ms.Count(1))
	}
	if ms.Size() != 3 {
		t.Fatalf("size = %d, want 3", ms.Size())
	}
}

func TestMapAndMultiMap(t *testing.T) {
	m := NewMap[int, string](intLess)
	m.Insert(1, "a")
	m.Insert(1, "b")
	v, ok := m.Find(1)
	if !ok || v.Value() != "b" {
		t.Fatalf("map should hold the replaced value, got %q ok=%v", v.Value(), ok)
	}

	mm := NewMultiMap[int, string](intLess)
	mm.Insert(1, "a")
	mm.Insert(1, "b")
	if mm.Count(1) != 2 {
		t.Fatalf("multimap count(1) = %d, want 2", mm.Count(1))
	}
}
