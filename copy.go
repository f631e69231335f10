package deque

import (
	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/memutils"
)

// Clone creates a new Deque with the same options and allocator holding a copy of every
// element, in order. If T implements allocator.Cloner, the copies are made with Clone. If any
// copy fails, everything constructed for the new deque is released and the error is returned.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	err := d.checkAlive()
	if err != nil {
		return nil, err
	}

	return d.cloneInto(d.allocator, d.options)
}

func (d *Deque[T]) cloneInto(alloc allocator.Allocator[T], options CreateOptions) (*Deque[T], error) {
	return build[T](d.logger, alloc, options, d.Len(), func(index int) allocator.Initializer[T] {
		return allocator.CopyOf(d.AtUnsafe(index))
	})
}

// Move transfers the contents of the deque into a new Deque without copying any element. The
// source is left empty, with a new block map of the initial size, and may continue to be used.
// If the source's new block cannot be allocated, nothing is moved and the error is returned.
func (d *Deque[T]) Move() (*Deque[T], error) {
	err := d.checkAlive()
	if err != nil {
		return nil, err
	}

	moved := *d
	err = d.resetMap(d.options.InitialMapSize)
	if err != nil {
		return nil, err
	}

	return &moved, nil
}

// MoveFrom destroys the contents of the deque and takes over the contents, allocator, and
// options of other. other is left empty, with a new block map of the initial size. If other's
// new block cannot be allocated, neither deque is changed and the error is returned.
func (d *Deque[T]) MoveFrom(other *Deque[T]) error {
	if d == other {
		return nil
	}

	err := d.checkAlive()
	if err != nil {
		return err
	}

	taken, err := other.Move()
	if err != nil {
		return err
	}

	d.release()
	*d = *taken

	memutils.DebugValidate(d)
	return nil
}

// Assign replaces the contents of the deque with copies of other's elements. The copies are
// made with the deque's own allocator. If any copy fails, the deque is unchanged and the error
// is returned.
func (d *Deque[T]) Assign(other *Deque[T]) error {
	if d == other {
		return nil
	}

	err := d.checkAlive()
	if err != nil {
		return err
	}

	err = other.checkAlive()
	if err != nil {
		return err
	}

	replacement, err := other.cloneInto(d.allocator, d.options)
	if err != nil {
		return err
	}

	d.Swap(replacement)
	return replacement.Destroy()
}

// Swap exchanges the contents, allocators, and options of two deques
func (d *Deque[T]) Swap(other *Deque[T]) {
	*d, *other = *other, *d
}
