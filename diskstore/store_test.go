package diskstore

import (
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tree"), 16)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	const n = 2000
	for i := int64(0); i < n; i++ {
		if err := s.Insert(i, []byte(fmt.Sprintf("value-%d", i))); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	for i := int64(0); i < n; i++ {
		v, ok, err := s.Get(i)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("key %d missing after insert", i)
		}
		want := fmt.Sprintf("value-%d", i)
		if string(v) != want {
			t.Fatalf("get %d = %q, want %q", i, v, want)
		}
	}
	if _, ok, _ := s.Get(n + 1); ok {
		t.Fatalf("absent key reported present")
	}
}

func TestInsertOverwrite(t *testing.T) {
	s := openTestStore(t)
	if err := s.Insert(1, []byte("first")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(1, []byte("second")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	v, ok, err := s.Get(1)
	if err != nil || !ok {
		t.Fatalf("get after overwrite: ok=%v err=%v", ok, err)
	}
	if string(v) != "second" {
		t.Fatalf("get = %q, want %q", v, "second")
	}
}

func TestRangeScan(t *testing.T) {
	s := openTestStore(t)
	const n = 500
	for i := int64(0); i < n; i++ {
		s.Insert(i, []byte{byte(i)})
	}
	var got []int64
	err := s.Range(100, 110, func(key int64, value []byte) bool {
		got = append(got, key)
		return true
	})
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("range[100,110) returned %d keys, want 10", len(got))
	}
	for i, k := range got {
		if k != int64(100+i) {
			t.Fatalf("got[%d] = %d, want %d", i, k, 100+i)
		}
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	for i := int64(0); i < 50; i++ {
		s.Insert(i, []byte{byte(i)})
	}
	ok, err := s.Delete(25)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := s.Get(25); ok {
		t.Fatalf("key 25 should be gone after delete")
	}
	ok, err = s.Delete(25)
	if err != nil || ok {
		t.Fatalf("deleting an absent key: ok=%v err=%v", ok, err)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree")

	s, err := Open(path, 16)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := int64(0); i < 300; i++ {
		s.Insert(i, []byte(fmt.Sprintf("v%d", i)))
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path, 16)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	v, ok, err := s2.Get(150)
	if err != nil || !ok || string(v) != "v150" {
		t.Fatalf("get after reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}
