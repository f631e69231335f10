package deque

import "iter"

// All returns an iterator over index-value pairs from front to back. Elements added or removed
// during iteration are observed by index.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.Len(); i++ {
			if !yield(i, d.AtUnsafe(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements from front to back
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < d.Len(); i++ {
			if !yield(d.AtUnsafe(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := d.Len() - 1; i >= 0; i-- {
			if i >= d.Len() {
				continue
			}
			if !yield(i, d.AtUnsafe(i)) {
				return
			}
		}
	}
}
