package encoding

import "iter"

// Integer constrains the accumulable numeric types a DeltaReader can
// reconstruct.
type Integer interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

// DeltaReader reconstructs absolute values from a delta sequence by running
// summation: output[i] is the sum of deltas[0..i]. It decodes fields stored
// as successive differences, such as way node references and relation member
// ids.
//
// The reader is a forward-only, single-pass cursor over the input slice; it
// does not copy or modify it.
type DeltaReader[T Integer] struct {
	remaining []T
	acc       T
}

// NewDeltaReader creates a DeltaReader over a slice of deltas, with the
// accumulator seeded at zero.
func NewDeltaReader[T Integer](deltas []T) *DeltaReader[T] {
	return &DeltaReader[T]{remaining: deltas}
}

// Next adds the next delta to the accumulator and returns the new total.
// ok is false once the input is exhausted.
func (r *DeltaReader[T]) Next() (value T, ok bool) {
	if len(r.remaining) == 0 {
		return value, false
	}

	r.acc += r.remaining[0]
	r.remaining = r.remaining[1:]

	return r.acc, true
}

// All returns an iterator over the remaining reconstructed values.
func (r *DeltaReader[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := r.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
