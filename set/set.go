package set

// Set represents a generic set data structure
type Set[T comparable] map[T]struct{}

// New creates a new empty set
func New[T comparable]() Set[T] {
	return make(Set[T])
}

// NewFromSlice creates a new set from the given slice, and returns the values
// found more than once in it, in order of their second occurrence.
func NewFromSlice[T comparable](slice []T) (Set[T], []T) {
	var (
		s          Set[T] = make(map[T]struct{}, len(slice))
		duplicates []T
	)
	for _, elem := range slice {
		if !s.Add(elem) {
			duplicates = append(duplicates, elem)
		}
	}
	return s, duplicates
}

// Add adds a value to the set, returning false if it was already present
func (s Set[T]) Add(value T) bool {
	if s.Contains(value) {
		return false
	}
	s[value] = struct{}{}
	return true
}

// Contains checks if a value exists in the set
func (s Set[T]) Contains(value T) bool {
	_, exists := s[value]
	return exists
}

// Size returns the number of elements in the set
func (s Set[T]) Size() int {
	return len(s)
}

// Difference returns a new set containing elements in s but not in other
func (s Set[T]) Difference(other Set[T]) Set[T] {
	result := New[T]()
	for value := range s {
		if !other.Contains(value) {
			result.Add(value)
		}
	}
	return result
}
