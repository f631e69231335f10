// Package deque provides Deque, a double-ended random-access sequence that stores its elements
// in fixed-size blocks indexed through a block map. Elements are added and removed at either
// end in amortized constant time and never move while they live in the deque, except for the
// middle insert and erase operations, which shift their neighbors.
//
// Blocks and element lifetimes are managed through an allocator.Allocator, and every operation
// that can fail, whether because a block cannot be allocated or because an element cannot be
// constructed, leaves the deque exactly as it was before the call.
//
// A Deque is not safe for concurrent use.
package deque

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/blockmap"
	"github.com/vkngwrapper/arsenal/deque/memutils"
	"golang.org/x/exp/slog"
)

// Deque is a double-ended queue with constant-time indexed access
//
// The constructed elements occupy a window that begins at offset firstOffset of the block in
// slot firstBlock and ends just before offset lastOffset of the block in slot lastBlock. The
// end of the window is always inside an allocated block, so an empty deque still holds one.
type Deque[T any] struct {
	logger    *slog.Logger
	allocator allocator.Allocator[T]
	options   CreateOptions

	shift int
	mask  int

	blocks      *blockmap.Map[T]
	firstBlock  int
	firstOffset int
	lastBlock   int
	lastOffset  int
}

var _ memutils.Validatable = &Deque[int]{}

// resetMap replaces the deque's state with a new map of mapSize slots holding a single empty
// block in its center. The deque is unchanged if the block cannot be allocated.
func (d *Deque[T]) resetMap(mapSize int) error {
	blocks, err := blockmap.New[T](d.logger, d.allocator, d.options.BlockSize, mapSize, d.options.growthPolicy())
	if err != nil {
		return err
	}

	slot := mapSize / 2
	_, err = blocks.AllocateBlock(slot)
	if err != nil {
		return err
	}

	d.blocks = blocks
	d.firstBlock, d.firstOffset = slot, 0
	d.lastBlock, d.lastOffset = slot, 0
	return nil
}

// destroyElements destroys every element from front to back and frees every block but the one
// holding the end of the window
func (d *Deque[T]) destroyElements() {
	for d.firstBlock != d.lastBlock || d.firstOffset != d.lastOffset {
		block := d.blocks.Block(d.firstBlock)

		end := d.options.BlockSize
		if d.firstBlock == d.lastBlock {
			end = d.lastOffset
		}

		for ; d.firstOffset < end; d.firstOffset++ {
			d.allocator.Destroy(&block[d.firstOffset])
		}

		if d.firstBlock != d.lastBlock {
			d.blocks.FreeBlock(d.firstBlock)
			d.firstBlock++
			d.firstOffset = 0
		}
	}
}

// release destroys every element and frees every block
func (d *Deque[T]) release() {
	d.destroyElements()
	d.blocks.Destroy()
	d.blocks = nil
	d.firstOffset, d.lastOffset = 0, 0
}

func (d *Deque[T]) locate(index int) (slot, offset int) {
	pos := d.firstOffset + index
	return d.firstBlock + pos>>d.shift, pos & d.mask
}

func (d *Deque[T]) checkAlive() error {
	if d.blocks == nil {
		return ErrDestroyed
	}
	return nil
}

func (d *Deque[T]) checkIndex(index int) error {
	if d.blocks == nil {
		return ErrDestroyed
	}

	size := d.Len()
	if index < 0 || index >= size {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, size)
	}
	return nil
}

// Len returns the number of elements in the deque
func (d *Deque[T]) Len() int {
	return (d.lastBlock-d.firstBlock)<<d.shift + d.lastOffset - d.firstOffset
}

// Empty reports whether the deque holds no elements
func (d *Deque[T]) Empty() bool {
	return d.firstBlock == d.lastBlock && d.firstOffset == d.lastOffset
}

// Allocator returns the allocator used by the deque
func (d *Deque[T]) Allocator() allocator.Allocator[T] {
	return d.allocator
}

// Options returns the options the deque was created with, with defaults filled in
func (d *Deque[T]) Options() CreateOptions {
	return d.options
}

// Clear destroys every element in the deque, front to back, and frees every block but one
func (d *Deque[T]) Clear() {
	if d.blocks == nil {
		return
	}

	d.destroyElements()
	d.firstOffset, d.lastOffset = 0, 0

	memutils.DebugValidate(d)
}

// Destroy destroys every element in the deque and returns every block to the allocator. The
// deque cannot be used afterward: checked operations return ErrDestroyed.
func (d *Deque[T]) Destroy() error {
	if d.blocks == nil {
		return ErrDestroyed
	}

	d.logger.Debug("Deque::Destroy", slog.Int("Len", d.Len()))
	d.release()
	return nil
}

// Validate performs internal consistency checks on the deque and its block map
func (d *Deque[T]) Validate() error {
	err := d.checkAlive()
	if err != nil {
		return err
	}

	blockSize := d.options.BlockSize
	if d.firstOffset < 0 || d.firstOffset >= blockSize {
		return errors.Newf("first offset %d is outside of a block of size %d", d.firstOffset, blockSize)
	}

	if d.lastOffset < 0 || d.lastOffset >= blockSize {
		return errors.Newf("last offset %d is outside of a block of size %d", d.lastOffset, blockSize)
	}

	if d.firstBlock == d.lastBlock && d.firstOffset > d.lastOffset {
		return errors.Newf("window begins at offset %d but ends at offset %d of the same block", d.firstOffset, d.lastOffset)
	}

	err = d.blocks.Validate(d.firstBlock, d.lastBlock)
	if err != nil {
		return errors.Wrap(err, "block map is invalid")
	}

	return nil
}
