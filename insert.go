package deque

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/memutils"
)

// Insert places a copy of value at index, shifting the elements on the nearer side of index
// outward by one. index may range from 0 to Len(), inclusive. Every element between index and
// the nearer end moves, so this takes time proportional to that distance. If the copy cannot
// be made, the deque is unchanged and the error is returned.
func (d *Deque[T]) Insert(index int, value T) error {
	return d.EmplaceAt(index, allocator.CopyOf(value))
}

// EmplaceAt constructs a new element at index by running init against a slot at the nearer end
// of the deque and then rotating it into place. index may range from 0 to Len(), inclusive.
func (d *Deque[T]) EmplaceAt(index int, init allocator.Initializer[T]) error {
	err := d.checkAlive()
	if err != nil {
		return err
	}

	size := d.Len()
	if index < 0 || index > size {
		return errors.Wrapf(ErrIndexOutOfRange, "insert index %d, length %d", index, size)
	}

	if index < size/2 {
		err = d.emplaceFront(init)
		if err != nil {
			return err
		}

		for i := 0; i < index; i++ {
			d.swapUnsafe(i, i+1)
		}
	} else {
		err = d.emplaceBack(init)
		if err != nil {
			return err
		}

		for i := size; i > index; i-- {
			d.swapUnsafe(i, i-1)
		}
	}

	memutils.DebugValidate(d)
	return nil
}

// Erase destroys the element at index and closes the gap by shifting the elements on the
// nearer side of index inward by one
func (d *Deque[T]) Erase(index int) error {
	err := d.checkIndex(index)
	if err != nil {
		return err
	}

	size := d.Len()
	if index < size/2 {
		for i := index; i > 0; i-- {
			d.swapUnsafe(i, i-1)
		}
		d.PopFrontUnsafe()
	} else {
		for i := index; i < size-1; i++ {
			d.swapUnsafe(i, i+1)
		}
		d.PopBackUnsafe()
	}

	return nil
}

func (d *Deque[T]) swapUnsafe(left, right int) {
	leftPtr, rightPtr := d.PointerUnsafe(left), d.PointerUnsafe(right)
	*leftPtr, *rightPtr = *rightPtr, *leftPtr
}
