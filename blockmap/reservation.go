package blockmap

// Reservation is a block, and possibly a replacement slot table, set aside for one growth step
// of a Map. The Map is not modified until Commit is called. Cancel returns the block to the
// allocator instead. Exactly one of the two must be called.
type Reservation[T any] struct {
	owner     *Map[T]
	direction Direction

	table [][]T
	shift int
	slot  int
	block []T
}

// Block returns the reserved block. Elements may be constructed in it before the reservation
// is committed, but they must be destroyed again before calling Cancel.
func (r *Reservation[T]) Block() []T {
	return r.block
}

// Slot returns the index the reserved block will occupy once the reservation is committed
func (r *Reservation[T]) Slot() int {
	return r.slot
}

// Shift returns the amount every existing slot index moves by when the reservation is committed
func (r *Reservation[T]) Shift() int {
	return r.shift
}

// Relocates reports whether committing the reservation will replace the slot table
func (r *Reservation[T]) Relocates() bool {
	return r.table != nil
}

// Commit places the reserved block in the map, replacing the slot table first if the
// reservation requires it. It returns Shift.
func (r *Reservation[T]) Commit() int {
	if r.owner == nil {
		panic("attempting to commit a reservation that was already released")
	}

	m := r.owner
	if r.table != nil {
		m.logRelocation(r.direction, len(m.blocks), len(r.table), r.shift)
		m.blocks = r.table
		m.relocations++
	}

	m.blocks[r.slot] = r.block
	r.release()
	return r.shift
}

// Cancel returns the reserved block to the allocator and leaves the map untouched
func (r *Reservation[T]) Cancel() {
	if r.owner == nil {
		panic("attempting to cancel a reservation that was already released")
	}

	r.owner.allocator.Deallocate(r.block, r.owner.blockSize)
	r.release()
}

func (r *Reservation[T]) release() {
	r.owner = nil
	r.table = nil
	r.block = nil
}
