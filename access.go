package deque

// AtUnsafe returns the element at index without checking that index is in range. Passing an
// index outside of [0, Len()) either panics or returns a slot that holds no element.
func (d *Deque[T]) AtUnsafe(index int) T {
	slot, offset := d.locate(index)
	return d.blocks.Block(slot)[offset]
}

// PointerUnsafe returns a pointer to the element at index without checking that index is in
// range. The pointer stays valid until the element is removed from the deque.
func (d *Deque[T]) PointerUnsafe(index int) *T {
	slot, offset := d.locate(index)
	return &d.blocks.Block(slot)[offset]
}

// At returns the element at index, or ErrIndexOutOfRange if there is no such element
func (d *Deque[T]) At(index int) (T, error) {
	err := d.checkIndex(index)
	if err != nil {
		var zero T
		return zero, err
	}

	return d.AtUnsafe(index), nil
}

// AtPointer returns a pointer to the element at index, or ErrIndexOutOfRange if there is no
// such element
func (d *Deque[T]) AtPointer(index int) (*T, error) {
	err := d.checkIndex(index)
	if err != nil {
		return nil, err
	}

	return d.PointerUnsafe(index), nil
}

// Set overwrites the element at index with value. The old element is not destroyed: it is
// simply replaced, as with any assignment.
func (d *Deque[T]) Set(index int, value T) error {
	err := d.checkIndex(index)
	if err != nil {
		return err
	}

	*d.PointerUnsafe(index) = value
	return nil
}

// Front returns the first element, or false if the deque is empty
func (d *Deque[T]) Front() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}

	return d.blocks.Block(d.firstBlock)[d.firstOffset], true
}

// Back returns the last element, or false if the deque is empty
func (d *Deque[T]) Back() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}

	return d.AtUnsafe(d.Len() - 1), true
}
