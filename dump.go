package bplustree

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
)

// magic identifies a dumped tree stream. dumpVersion bumps whenever the
// header or node-image layout below changes incompatibly.
var magic = [12]byte{'B', 'P', 'L', 'U', 'S', 'T', 'R', 'E', 'E', 'D', 'M', 'P'}

const dumpVersion uint16 = 1

// header is the fixed 31-byte prefix of a dump stream: magic, version,
// the dumping instantiation's sizeof(K) and sizeof(V) (for compatibility
// checking, not as the wire width of each entry), the leaf and inner
// slot counts it was built with, whether it allows duplicates, and the
// total entry count that follows.
type header struct {
	Magic      [12]byte
	Version    uint16
	SizeofK    uint16
	SizeofV    uint16
	LeafSlots  uint16
	InnerSlots uint16
	AllowDup   uint8
	ItemCount  uint64
}

// Dump writes the tree's full contents to w: the header above followed
// by a pre-order walk of the tree's node structure. Each node is
// written as a gob-encoded nodeImage, since K and V may be arbitrary
// Go types rather than fixed-width ones; the header's sizeof fields
// are what Restore uses to reject a dump produced by an incompatible
// instantiation before gob ever gets a chance to fail more confusingly.
func (t *Tree[K, V]) Dump(w io.Writer) error {
	h := header{
		Magic:      magic,
		Version:    dumpVersion,
		SizeofK:    uint16(t.sizeofK),
		SizeofV:    uint16(t.sizeofV),
		LeafSlots:  uint16(t.leafSlots),
		InnerSlots: uint16(t.innerSlots),
		ItemCount:  uint64(t.size),
	}
	if t.allowDup {
		h.AllowDup = 1
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("bplustree: dump header: %w", err)
	}

	enc := gob.NewEncoder(w)
	if t.root == nil {
		return nil
	}
	var walk func(n *node[K, V]) error
	walk = func(n *node[K, V]) error {
		img := nodeImage[K, V]{Leaf: n.leaf, Keys: n.keys}
		if n.leaf {
			img.Values = n.values
		} else {
			img.NumChildren = len(n.children)
		}
		if err := enc.Encode(&img); err != nil {
			return fmt.Errorf("bplustree: dump node: %w", err)
		}
		if !n.leaf {
			for _, c := range n.children {
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(t.root)
}

// nodeImage is the on-the-wire shape of a single node, written and
// read via encoding/gob so that arbitrary K/V types round-trip without
// this package needing to know how to serialize them byte-for-byte.
type nodeImage[K any, V any] struct {
	Leaf        bool
	Keys        []K
	Values      []V
	NumChildren int
}

// Restore replaces the tree's contents with a dump previously written
// by Dump. If the stream's header does not match this instantiation
// (different K/V sizes, different slot counts, or an unrecognized
// magic/version), Restore leaves the tree empty and returns
// (false, nil): a foreign or incompatible dump is an expected, not
// exceptional, outcome. An actual I/O or decoding failure partway
// through a matching stream returns (false, err).
func (t *Tree[K, V]) Restore(r io.Reader) (bool, error) {
	t.Clear()

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		// A stream too short or too malformed to even hold a header is
		// not a dump this tree produced; treat it the same as a
		// recognized-but-incompatible header rather than as an I/O
		// failure.
		return false, nil
	}
	if h.Magic != magic || h.Version != dumpVersion ||
		h.SizeofK != uint16(t.sizeofK) || h.SizeofV != uint16(t.sizeofV) ||
		h.LeafSlots != uint16(t.leafSlots) || h.InnerSlots != uint16(t.innerSlots) {
		return false, nil
	}

	t.allowDup = h.AllowDup != 0

	if h.ItemCount == 0 {
		return true, nil
	}

	dec := gob.NewDecoder(r)
	var lastLeaf *node[K, V]
	var buildErr error
	var build func() *node[K, V]
	build = func() *node[K, V] {
		var img nodeImage[K, V]
		if err := dec.Decode(&img); err != nil {
			buildErr = fmt.Errorf("bplustree: restore node: %w", err)
			return nil
		}
		if img.Leaf {
			n := newLeaf[K, V](t.leafSlots)
			n.keys = append(n.keys, img.Keys...)
			n.values = append(n.values, img.Values...)
			if lastLeaf != nil {
				lastLeaf.next = n
				n.prev = lastLeaf
			} else {
				t.headLeaf = n
			}
			lastLeaf = n
			return n
		}
		n := newInner[K, V](t.innerSlots)
		n.keys = append(n.keys, img.Keys...)
		for i := 0; i < img.NumChildren && buildErr == nil; i++ {
			c := build()
			if c != nil {
				n.children = append(n.children, c)
			}
		}
		return n
	}

	t.root = build()
	if buildErr != nil {
		t.Clear()
		return false, buildErr
	}
	t.tailLeaf = lastLeaf
	t.size = int(h.ItemCount)
	return true, nil
}

// DumpBytes is a convenience wrapper around Dump for callers who want
// an in-memory snapshot rather than a stream.
func (t *Tree[K, V]) DumpBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Dump(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RestoreBytes is the counterpart to DumpBytes.
func (t *Tree[K, V]) RestoreBytes(data []byte) (bool, error) {
	return t.Restore(bytes.NewReader(data))
}
