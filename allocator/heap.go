package allocator

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/deque/internal/utils"
)

// HeapAllocator is the default Allocator. Blocks come from the Go heap, elements are
// constructed by running their Initializer in place, and destroyed elements are zeroed so that
// anything they reference can be collected.
//
// A HeapAllocator may be shared by several containers. Unless it was created with
// CreateExternallySynchronized, it is safe to use from multiple goroutines.
type HeapAllocator[T any] struct {
	createFlags     CreateFlags
	maxBlockCount   int
	maxCachedBlocks int
	callbacks       memoryCallbacks

	budget blockBudget

	mutex  utils.OptionalMutex
	cached [][]T
}

var _ Allocator[int] = &HeapAllocator[int]{}

// BlockCount returns the number of blocks currently handed out by this allocator
func (a *HeapAllocator[T]) BlockCount() int { return a.budget.BlockCount() }

// SlotCount returns the total number of element slots in blocks currently handed out
func (a *HeapAllocator[T]) SlotCount() int { return a.budget.SlotCount() }

// CachedBlockCount returns the number of freed blocks waiting to be reused
func (a *HeapAllocator[T]) CachedBlockCount() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return len(a.cached)
}

func (a *HeapAllocator[T]) Flags() CreateFlags { return a.createFlags }

func (a *HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidBlockSize, "requested %d elements", n)
	}

	err := a.budget.AddBlockWithBudget(n, a.maxBlockCount)
	if err != nil {
		return nil, err
	}

	block := a.takeCached(n)
	if block != nil {
		return block, nil
	}

	block = make([]T, n)
	a.callbacks.Allocate(n)
	return block, nil
}

func (a *HeapAllocator[T]) takeCached(n int) []T {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for i := len(a.cached) - 1; i >= 0; i-- {
		block := a.cached[i]
		if len(block) != n {
			continue
		}

		last := len(a.cached) - 1
		a.cached[i] = a.cached[last]
		a.cached[last] = nil
		a.cached = a.cached[:last]
		return block
	}

	return nil
}

func (a *HeapAllocator[T]) Deallocate(block []T, n int) {
	if len(block) != n {
		panic(fmt.Sprintf("attempting to deallocate a block of %d elements as a block of %d elements", len(block), n))
	}

	a.budget.RemoveBlock(n)

	// Destroyed slots are already zero, but slots that were never constructed by a
	// misbehaving container might not be
	clear(block)

	if a.cacheBlock(block) {
		return
	}

	a.callbacks.Free(n)
}

func (a *HeapAllocator[T]) cacheBlock(block []T) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if len(a.cached) >= a.maxCachedBlocks {
		return false
	}

	a.cached = append(a.cached, block)
	return true
}

// Trim releases every cached block back to the heap
func (a *HeapAllocator[T]) Trim() {
	a.mutex.Lock()
	cached := a.cached
	a.cached = nil
	a.mutex.Unlock()

	for _, block := range cached {
		a.callbacks.Free(len(block))
	}
}

func (a *HeapAllocator[T]) Construct(slot *T, init Initializer[T]) error {
	err := init(slot)
	if err != nil {
		a.Destroy(slot)
		return err
	}

	return nil
}

func (a *HeapAllocator[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}
