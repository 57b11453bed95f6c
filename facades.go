package bplustree

// Set is an ordered collection of distinct keys, built as a Tree whose
// value type carries no information.
type Set[K any] struct {
	t *Tree[K, struct{}]
}

// NewSet constructs an empty Set ordered by less.
func NewSet[K any](less Less[K], opts ...Option[K, struct{}]) *Set[K] {
	return &Set[K]{t: New[K, struct{}](less, opts...)}
}

func (s *Set[K]) Insert(key K) (added bool) { return !s.t.Insert(key, struct{}{}) }
func (s *Set[K]) Erase(key K) bool          { return s.t.EraseOne(key) }
func (s *Set[K]) Exists(key K) bool         { return s.t.Exists(key) }
func (s *Set[K]) Size() int                 { return s.t.Size() }
func (s *Set[K]) Empty() bool               { return s.t.Empty() }
func (s *Set[K]) Clear()                    { s.t.Clear() }
func (s *Set[K]) Verify() error             { return s.t.Verify() }
func (s *Set[K]) Begin() Iterator[K, struct{}] { return s.t.Begin() }
func (s *Set[K]) End() Iterator[K, struct{}]   { return s.t.End() }

// MultiSet is an ordered collection that allows repeated keys.
type MultiSet[K any] struct {
	t *Tree[K, struct{}]
}

// NewMultiSet constructs an empty MultiSet ordered by less.
func NewMultiSet[K any](less Less[K], opts ...Option[K, struct{}]) *MultiSet[K] {
	opts = append([]Option[K, struct{}]{WithDuplicates[K, struct{}](true)}, opts...)
	return &MultiSet[K]{t: New[K, struct{}](less, opts...)}
}

func (s *MultiSet[K]) Insert(key K)          { s.t.Insert(key, struct{}{}) }
func (s *MultiSet[K]) EraseOne(key K) bool   { return s.t.EraseOne(key) }
func (s *MultiSet[K]) EraseAll(key K) int    { return s.t.EraseAll(key) }
func (s *MultiSet[K]) Count(key K) int       { return s.t.Count(key) }
func (s *MultiSet[K]) Size() int             { return s.t.Size() }
func (s *MultiSet[K]) Empty() bool           { return s.t.Empty() }
func (s *MultiSet[K]) Clear()                { s.t.Clear() }
func (s *MultiSet[K]) Verify() error         { return s.t.Verify() }

// Map is an ordered key/value association with at most one value per
// key, built directly on Tree.
type Map[K any, V any] struct {
	*Tree[K, V]
}

// NewMap constructs an empty Map ordered by less.
func NewMap[K any, V any](less Less[K], opts ...Option[K, V]) *Map[K, V] {
	return &Map[K, V]{Tree: New[K, V](less, opts...)}
}

// MultiMap is an ordered key/value association allowing repeated keys,
// built directly on Tree with duplicates forced on.
type MultiMap[K any, V any] struct {
	*Tree[K, V]
}

// NewMultiMap constructs an empty MultiMap ordered by less.
func NewMultiMap[K any, V any](less Less[K], opts ...Option[K, V]) *MultiMap[K, V] {
	opts = append([]Option[K, V]{WithDuplicates[K, V](true)}, opts...)
	return &MultiMap[K, V]{Tree: New[K, V](less, opts...)}
}
