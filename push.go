package deque

import (
	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/memutils"
)

// PushBack appends a copy of value to the back of the deque. If T implements allocator.Cloner,
// the copy is made with Clone. If the copy or a new block cannot be made, the deque is
// unchanged and the error is returned.
func (d *Deque[T]) PushBack(value T) error {
	return d.EmplaceBack(allocator.CopyOf(value))
}

// PushFront prepends a copy of value to the front of the deque. If T implements
// allocator.Cloner, the copy is made with Clone. If the copy or a new block cannot be made,
// the deque is unchanged and the error is returned.
func (d *Deque[T]) PushFront(value T) error {
	return d.EmplaceFront(allocator.CopyOf(value))
}

// EmplaceBack constructs a new element at the back of the deque by running init against its
// slot. If init fails or a new block cannot be allocated, the deque is unchanged and the error
// is returned.
func (d *Deque[T]) EmplaceBack(init allocator.Initializer[T]) error {
	err := d.checkAlive()
	if err != nil {
		return err
	}

	err = d.emplaceBack(init)
	if err != nil {
		return err
	}

	memutils.DebugValidate(d)
	return nil
}

func (d *Deque[T]) emplaceBack(init allocator.Initializer[T]) error {
	slot := &d.blocks.Block(d.lastBlock)[d.lastOffset]

	if d.lastOffset < d.mask {
		err := d.allocator.Construct(slot, init)
		if err != nil {
			return err
		}

		d.lastOffset++
		return nil
	}

	// The new element fills the last block, so the end of the window needs a new one
	reservation, err := d.blocks.ReserveTail(d.firstBlock, d.lastBlock)
	if err != nil {
		return err
	}

	err = d.allocator.Construct(slot, init)
	if err != nil {
		reservation.Cancel()
		return err
	}

	d.firstBlock += reservation.Commit()
	d.lastBlock = reservation.Slot()
	d.lastOffset = 0
	return nil
}

// EmplaceFront constructs a new element at the front of the deque by running init against its
// slot. If init fails or a new block cannot be allocated, the deque is unchanged and the error
// is returned.
func (d *Deque[T]) EmplaceFront(init allocator.Initializer[T]) error {
	err := d.checkAlive()
	if err != nil {
		return err
	}

	err = d.emplaceFront(init)
	if err != nil {
		return err
	}

	memutils.DebugValidate(d)
	return nil
}

func (d *Deque[T]) emplaceFront(init allocator.Initializer[T]) error {
	if d.firstOffset > 0 {
		err := d.allocator.Construct(&d.blocks.Block(d.firstBlock)[d.firstOffset-1], init)
		if err != nil {
			return err
		}

		d.firstOffset--
		return nil
	}

	reservation, err := d.blocks.ReserveHead(d.firstBlock, d.lastBlock)
	if err != nil {
		return err
	}

	err = d.allocator.Construct(&reservation.Block()[d.mask], init)
	if err != nil {
		reservation.Cancel()
		return err
	}

	d.lastBlock += reservation.Commit()
	d.firstBlock = reservation.Slot()
	d.firstOffset = d.mask
	return nil
}

// PopBackUnsafe removes the last element of the deque and returns it. The deque must not be
// empty. Emptied blocks are returned to the allocator.
func (d *Deque[T]) PopBackUnsafe() T {
	if d.lastOffset == 0 {
		d.blocks.FreeBlock(d.lastBlock)
		d.lastBlock--
		d.lastOffset = d.mask
	} else {
		d.lastOffset--
	}

	slot := &d.blocks.Block(d.lastBlock)[d.lastOffset]
	value := *slot
	d.allocator.Destroy(slot)

	memutils.DebugValidate(d)
	return value
}

// PopFrontUnsafe removes the first element of the deque and returns it. The deque must not be
// empty. Emptied blocks are returned to the allocator.
func (d *Deque[T]) PopFrontUnsafe() T {
	slot := &d.blocks.Block(d.firstBlock)[d.firstOffset]
	value := *slot
	d.allocator.Destroy(slot)

	d.firstOffset++
	if d.firstOffset > d.mask {
		d.blocks.FreeBlock(d.firstBlock)
		d.firstBlock++
		d.firstOffset = 0
	}

	memutils.DebugValidate(d)
	return value
}

// PopBack removes the last element of the deque and returns it, or returns false if the
// deque is empty
func (d *Deque[T]) PopBack() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}

	return d.PopBackUnsafe(), true
}

// PopFront removes the first element of the deque and returns it, or returns false if the
// deque is empty
func (d *Deque[T]) PopFront() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}

	return d.PopFrontUnsafe(), true
}
