package outcome

import "fmt"

// Weighted pairs an outcome with its relative weight.
type Weighted[T any] struct {
	Weight float64
	Value  T
}

// Table selects among outcomes in proportion to their weights.
type Table[T any] struct {
	entries []Weighted[T]
	total   float64
}

// NewTable builds a table from entries in order. Weights must be
// non-negative and sum to a positive total.
func NewTable[T any](entries ...Weighted[T]) (*Table[T], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("weighted table needs at least one entry")
	}
	var total float64
	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("entry %d: negative weight %v", i, e.Weight)
		}
		total += e.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("weighted table total weight must be positive")
	}
	return &Table[T]{entries: append([]Weighted[T](nil), entries...), total: total}, nil
}

// mustTable is NewTable for package-level literals.
func mustTable[T any](entries ...Weighted[T]) *Table[T] {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pick consumes one Float64 draw. The draw is scaled to the total weight and
// the first entry whose cumulative weight exceeds it is returned, so with
// weights {0.9, 0.1} the first entry wins exactly when the draw is < 0.9.
func (t *Table[T]) Pick(r Rand) T {
	x := r.Float64() * t.total
	var cum float64
	for _, e := range t.entries {
		cum += e.Weight
		if x < cum {
			return e.Value
		}
	}
	// Float rounding can leave x == total; fall back to the last weighted entry.
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Weight > 0 {
			return t.entries[i].Value
		}
	}
	return t.entries[len(t.entries)-1].Value
}

// Probability returns the share of the total weight held by entry i.
func (t *Table[T]) Probability(i int) float64 {
	return t.entries[i].Weight / t.total
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	return len(t.entries)
}
