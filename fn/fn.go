package fn

// ComparisonResult represents the result of comparing two values.
type ComparisonResult int

const (
	Equal   ComparisonResult = 0
	Less    ComparisonResult = -1
	Greater ComparisonResult = 1
)

// Comparator represents a function that compares two values of type T.
type Comparator[T any] func(i1 T, i2 T) ComparisonResult

// ReverseComparator returns a comparator that reverses the order of the given comparator.
func ReverseComparator[T any](comparator Comparator[T]) Comparator[T] {
	return func(i1 T, i2 T) ComparisonResult {
		return comparator(i2, i1)
	}
}

// NaturalOrder compares two integers by their natural order.
func NaturalOrder(i1 int, i2 int) ComparisonResult {
	switch {
	case i1 < i2:
		return Less
	case i1 > i2:
		return Greater
	default:
		return Equal
	}
}

// Predicate represents a pure function testing a value.
type Predicate[T any] func(t T) bool

// EqualTo creates a predicate matching values equal to the given one.
func EqualTo[T comparable](value T) Predicate[T] {
	return func(t T) bool {
		return t == value
	}
}

// Consumer represents a function that accepts one argument and returns no result.
type Consumer[T any] func(t T)

// TriConsumer represents a function that accepts three input arguments and returns no result.
type TriConsumer[T1 any, T2 any, T3 any] func(t1 T1, t2 T2, t3 T3)
