package allocator

import "github.com/cockroachdb/errors"

//go:generate mockgen -source allocator.go -destination ./mocks/mock_allocator.go -package mocks

// Allocator is the memory strategy used by block containers. Raw storage for a block
// of elements is obtained with Allocate and returned with Deallocate, while the lifetime
// of each individual element within a block is managed with Construct and Destroy.
//
// A container must Destroy every element it Constructs before Deallocating the block
// holding it, and must Deallocate every block it Allocates.
type Allocator[T any] interface {
	// Allocate returns storage for n elements. None of the returned slots hold a constructed
	// element. The slice returned must have a length of exactly n.
	Allocate(n int) ([]T, error)
	// Deallocate returns a block previously obtained from Allocate. n must be the size
	// the block was allocated with.
	Deallocate(block []T, n int)
	// Construct creates an element in slot by running init against it. If init fails, the
	// implementation must destroy whatever init left in the slot and return the error, leaving
	// the slot unconstructed.
	Construct(slot *T, init Initializer[T]) error
	// Destroy ends the lifetime of the element in slot. The slot may be constructed again
	// afterward.
	Destroy(slot *T)
}

// Initializer writes a new element into an unconstructed slot
type Initializer[T any] func(slot *T) error

// Cloner may be implemented by element types whose copies need more than an assignment.
// CopyOf will call Clone rather than copying such values directly.
type Cloner[T any] interface {
	Clone() (T, error)
}

// CopyOf returns an Initializer that copies value into the slot, using Clone if value
// implements Cloner
func CopyOf[T any](value T) Initializer[T] {
	return func(slot *T) error {
		if cloner, ok := any(value).(Cloner[T]); ok {
			clone, err := cloner.Clone()
			if err != nil {
				return err
			}
			*slot = clone
			return nil
		}

		*slot = value
		return nil
	}
}

// ValueOf returns an Initializer that assigns value to the slot without cloning it. This is
// the equivalent of transferring ownership of value into the container.
func ValueOf[T any](value T) Initializer[T] {
	return func(slot *T) error {
		*slot = value
		return nil
	}
}

// ErrOutOfBlockBudget is returned from Allocate when the allocator's MaxBlockCount would be exceeded
var ErrOutOfBlockBudget = errors.New("allocator block budget exhausted")

// ErrInvalidBlockSize is returned from Allocate when asked for a block of fewer than one element
var ErrInvalidBlockSize = errors.New("block size must be greater than zero")
