// Package set provides an insertion-ordered set keyed by structural identity.
package set

// Keyed is implemented by values that can be stored in a Set. Two values with
// the same key are the same element.
type Keyed interface {
	Key() string
}

// Set is an insertion-ordered collection of unique elements.
type Set[T Keyed] struct {
	index map[string]int
	items []T
}

// New creates a set holding the given items (duplicates are dropped).
func New[T Keyed](items ...T) *Set[T] {
	s := &Set[T]{index: make(map[string]int, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts item and returns 1 if it was not already present, 0 otherwise.
func (s *Set[T]) Add(item T) int {
	k := item.Key()
	if _, ok := s.index[k]; ok {
		return 0
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, item)
	return 1
}

// Remove deletes item and returns 1 if it was present, 0 otherwise.
func (s *Set[T]) Remove(item T) int {
	k := item.Key()
	i, ok := s.index[k]
	if !ok {
		return 0
	}
	delete(s.index, k)
	s.items = append(s.items[:i], s.items[i+1:]...)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Key()] = j
	}
	return 1
}

// Union adds every element of other and returns how many were new.
func (s *Set[T]) Union(other *Set[T]) int {
	added := 0
	for _, item := range other.items {
		added += s.Add(item)
	}
	return added
}

// Subtract removes every element of other and returns how many were removed.
func (s *Set[T]) Subtract(other *Set[T]) int {
	removed := 0
	for _, item := range other.ToList() {
		removed += s.Remove(item)
	}
	return removed
}

// Intersect returns the elements of a that are also in b, in a's order.
func Intersect[T Keyed](a, b *Set[T]) *Set[T] {
	out := New[T]()
	for _, item := range a.items {
		if b.Contains(item) {
			out.Add(item)
		}
	}
	return out
}

// Contains reports whether item is in the set.
func (s *Set[T]) Contains(item T) bool {
	_, ok := s.index[item.Key()]
	return ok
}

// SubsetOf reports whether every element of s is in other.
func (s *Set[T]) SubsetOf(other *Set[T]) bool {
	if s.Size() > other.Size() {
		return false
	}
	for _, item := range s.items {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

// StrictSubsetOf reports whether s is a subset of other and smaller than it.
func (s *Set[T]) StrictSubsetOf(other *Set[T]) bool {
	return s.Size() < other.Size() && s.SubsetOf(other)
}

// Equal reports set equality, ignoring order.
func (s *Set[T]) Equal(other *Set[T]) bool {
	return s.Size() == other.Size() && s.SubsetOf(other)
}

// IsEmpty reports whether the set has no elements.
func (s *Set[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Size returns the number of elements.
func (s *Set[T]) Size() int {
	return len(s.items)
}

// Clone returns a shallow copy; the elements themselves are shared.
func (s *Set[T]) Clone() *Set[T] {
	return New(s.items...)
}

// ToList returns the elements in insertion order. The slice is a copy.
func (s *Set[T]) ToList() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Arbitrary returns some element of the set, or false if it is empty.
// The choice is deterministic: the oldest surviving element.
func (s *Set[T]) Arbitrary() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}
