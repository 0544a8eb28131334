package iteratable

// Set is an order-preserving set over comparable items. The zero value is not
// usable; create sets with NewSet.
type Set struct {
	items []interface{}
	inx   int // iteration cursor
}

// NewSet creates a new set with a capacity hint.
func NewSet(size int) *Set {
	if size <= 0 {
		size = 4
	}
	return &Set{
		items: make([]interface{}, 0, size),
		inx:   -1,
	}
}

// Add adds an item to the set, if it is not already present.
func (s *Set) Add(item interface{}) {
	if s.Contains(item) {
		return
	}
	s.items = append(s.items, item)
}

// Remove removes an item from the set, if present.
func (s *Set) Remove(item interface{}) {
	for i, m := range s.items {
		if m == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.inx >= i {
				s.inx--
			}
			return
		}
	}
}

// Contains returns true if item is contained in the set.
func (s *Set) Contains(item interface{}) bool {
	for _, m := range s.items {
		if m == item {
			return true
		}
	}
	return false
}

// Size returns the number of items in the set.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty is true if the set contains no items.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns the items of the set, in insertion order. The returned slice
// is a copy.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	v := make([]interface{}, len(s.items))
	copy(v, s.items)
	return v
}

// Copy returns a shallow copy of the set.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	c.items = append(c.items, s.items...)
	return c
}

// Union adds all items of other to the set (destructive). Items appended
// during an ongoing iteration of s will be visited by that iteration.
func (s *Set) Union(other *Set) {
	if other == nil {
		return
	}
	for _, m := range other.items {
		s.Add(m)
	}
}

// Difference returns a new set containing the items of s which are not
// contained in other.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(s.Size())
	for _, m := range s.items {
		if other == nil || !other.Contains(m) {
			d.Add(m)
		}
	}
	return d
}

// Equals compares two sets for content equality, ignoring insertion order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, m := range s.items {
		if !other.Contains(m) {
			return false
		}
	}
	return true
}

// IterateOnce positions the iteration cursor before the first item. A set has
// a single cursor; nested iterations need a Copy.
func (s *Set) IterateOnce() {
	s.inx = -1
}

// Next advances the iteration cursor and returns true as long as an item is
// available.
func (s *Set) Next() bool {
	s.inx++
	return s.inx < len(s.items)
}

// Item returns the item at the iteration cursor.
func (s *Set) Item() interface{} {
	return s.items[s.inx]
}
