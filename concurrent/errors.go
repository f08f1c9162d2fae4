package concurrent

import "fmt"

// IndexError describes an index based mutation whose index was out of range
// when the mutation executed.
type IndexError struct {
	Op     string
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for length %d", e.Op, e.Index, e.Length)
}
