package diskstore

import "encoding/binary"

// Page layout, shared between leaf and internal pages:
//
//	[0]      1 byte   node kind (kindLeaf / kindInternal)
//	[1:3]    2 bytes  number of keys
//	[3:11]   8 bytes  leaf: next-leaf page ID · internal: first-child page ID
//	[11:19]  8 bytes  leaf: prev-leaf page ID · internal: unused
//	[19:]    slots, slotSize bytes each: key int64, then either a value
//	         locator (offset+length into the value heap, leaf pages) or
//	         a right-child page ID (internal pages)
const (
	kindInternal = byte(0)
	kindLeaf     = byte(1)

	offKind     = 0
	offNumKeys  = 1
	offNextLeaf = 3
	offPrevLeaf = 11
	offFirstPtr = 3
	offSlots    = 19

	slotSize = 20 // int64 key + uint64 locator/child + uint32 length/padding
)

func pageKind(p *Page) byte { return p[offKind] }

func setPageKind(p *Page, k byte) { p[offKind] = k }

func numKeys(p *Page) int {
	return int(binary.LittleEndian.Uint16(p[offNumKeys : offNumKeys+2]))
}

func setNumKeys(p *Page, n int) {
	binary.LittleEndian.PutUint16(p[offNumKeys:offNumKeys+2], uint16(n))
}

func nextLeaf(p *Page) uint64 {
	return binary.LittleEndian.Uint64(p[offNextLeaf : offNextLeaf+8])
}

func setNextLeaf(p *Page, id uint64) {
	binary.LittleEndian.PutUint64(p[offNextLeaf:offNextLeaf+8], id)
}

func prevLeaf(p *Page) uint64 {
	return binary.LittleEndian.Uint64(p[offPrevLeaf : offPrevLeaf+8])
}

func setPrevLeaf(p *Page, id uint64) {
	binary.LittleEndian.PutUint64(p[offPrevLeaf:offPrevLeaf+8], id)
}

func firstChild(p *Page) uint64 {
	return binary.LittleEndian.Uint64(p[offFirstPtr : offFirstPtr+8])
}

func setFirstChild(p *Page, id uint64) {
	binary.LittleEndian.PutUint64(p[offFirstPtr:offFirstPtr+8], id)
}

func slotOffset(i int) int { return offSlots + i*slotSize }

func slotKey(p *Page, i int) int64 {
	o := slotOffset(i)
	return int64(binary.LittleEndian.Uint64(p[o : o+8]))
}

func setSlotKey(p *Page, i int, key int64) {
	o := slotOffset(i)
	binary.LittleEndian.PutUint64(p[o:o+8], uint64(key))
}

// leaf slot: key, value offset (into the value heap), value length.
func slotValueLocator(p *Page, i int) (offset int64, length uint32) {
	o := slotOffset(i) + 8
	return int64(binary.LittleEndian.Uint64(p[o : o+8])), binary.LittleEndian.Uint32(p[o+8 : o+12])
}

func setSlotValueLocator(p *Page, i int, offset int64, length uint32) {
	o := slotOffset(i) + 8
	binary.LittleEndian.PutUint64(p[o:o+8], uint64(offset))
	binary.LittleEndian.PutUint32(p[o+8:o+12], length)
}

// internal slot: key, right-child page ID.
func slotRightChild(p *Page, i int) uint64 {
	o := slotOffset(i) + 8
	return binary.LittleEndian.Uint64(p[o : o+8])
}

func setSlotRightChild(p *Page, i int, id uint64) {
	o := slotOffset(i) + 8
	binary.LittleEndian.PutUint64(p[o:o+8], id)
}

// maxSlotsPerPage is how many fixed-size slots fit after the header.
func maxSlotsPerPage() int {
	return (PageSize - offSlots) / slotSize
}

func initLeafPage(p *Page, next, prev uint64) {
	*p = Page{}
	setPageKind(p, kindLeaf)
	setNumKeys(p, 0)
	setNextLeaf(p, next)
	setPrevLeaf(p, prev)
}

func initInternalPage(p *Page, left uint64) {
	*p = Page{}
	setPageKind(p, kindInternal)
	setNumKeys(p, 0)
	setFirstChild(p, left)
}
