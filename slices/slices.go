package slices

import (
	"sort"

	"github.com/a-peyrard/syncseq/fn"
)

// Filter returns a new slice containing only the elements for which the predicate function returns true.
// The result is never nil, so an empty match renders as "[]".
func Filter[T any](slice []T, predicate fn.Predicate[T]) []T {
	result := make([]T, 0)
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// FilterMap maps values of a slice using a partial mapper, dropping the values for which the mapper returns false.
func FilterMap[F any, T any](original []F, mapper func(F) (T, bool)) []T {
	destination := make([]T, 0, len(original))
	for _, item := range original {
		if mapped, ok := mapper(item); ok {
			destination = append(destination, mapped)
		}
	}
	return destination
}

// Find returns the first element matching the predicate.
func Find[T any](slice []T, predicate fn.Predicate[T]) (T, bool) {
	if idx, found := IndexFunc(slice, predicate); found {
		return slice[idx], true
	}
	var zero T
	return zero, false
}

// IndexFunc returns the index of the first element matching the predicate.
func IndexFunc[T any](slice []T, predicate fn.Predicate[T]) (int, bool) {
	for i, item := range slice {
		if predicate(item) {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy of the given slice, never nil.
func Clone[T any](slice []T) []T {
	result := make([]T, len(slice))
	copy(result, slice)
	return result
}

// SortedCopy returns a sorted copy of the given slice, leaving the original untouched.
// The sort is stable, elements comparing as equal keep their relative order.
func SortedCopy[T any](slice []T, comparator fn.Comparator[T]) []T {
	result := Clone(slice)
	sort.SliceStable(result, func(i, j int) bool {
		return comparator(result[i], result[j]) == fn.Less
	})
	return result
}
