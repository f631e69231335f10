package allocator

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/arsenal/deque/internal/utils"
	"github.com/vkngwrapper/arsenal/deque/memutils"
	"golang.org/x/exp/slog"
)

type trackedBlock struct {
	id   uint64
	size int
}

// TrackingAllocator wraps another Allocator and keeps a registry of every live block and a
// count of every live element passing through it. It is meant for diagnosing leaks and
// lifetime mistakes in containers: Close reports every block that was never deallocated.
//
// Element types with a size of zero cannot be tracked, since all of their blocks share an address.
type TrackingAllocator[T any] struct {
	logger *slog.Logger
	inner  Allocator[T]

	mutex        utils.OptionalRWMutex
	nextBlockId  uint64
	blocks       *swiss.Map[*T, trackedBlock]
	liveElements int
	constructed  int
	destroyed    int
}

var _ Allocator[int] = &TrackingAllocator[int]{}

// NewTrackingAllocator creates a TrackingAllocator forwarding to inner. If useMutex is false,
// the consumer must guarantee the allocator is only used from one goroutine at a time.
func NewTrackingAllocator[T any](logger *slog.Logger, inner Allocator[T], useMutex bool) *TrackingAllocator[T] {
	if logger == nil {
		logger = slog.Default()
	}

	return &TrackingAllocator[T]{
		logger: logger,
		inner:  inner,
		mutex:  utils.OptionalRWMutex{UseMutex: useMutex},
		blocks: swiss.NewMap[*T, trackedBlock](42),
	}
}

func (a *TrackingAllocator[T]) Allocate(n int) ([]T, error) {
	block, err := a.inner.Allocate(n)
	if err != nil {
		return nil, err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.nextBlockId++
	a.blocks.Put(&block[0], trackedBlock{id: a.nextBlockId, size: n})
	return block, nil
}

func (a *TrackingAllocator[T]) Deallocate(block []T, n int) {
	a.mutex.Lock()
	tracked, ok := a.blocks.Get(&block[0])
	if !ok {
		a.mutex.Unlock()
		panic("attempting to deallocate a block that was not allocated by this allocator")
	}
	if tracked.size != n {
		a.mutex.Unlock()
		panic(fmt.Sprintf("attempting to deallocate block %d with size %d, but it was allocated with size %d", tracked.id, n, tracked.size))
	}
	a.blocks.Delete(&block[0])
	a.mutex.Unlock()

	a.inner.Deallocate(block, n)
}

func (a *TrackingAllocator[T]) Construct(slot *T, init Initializer[T]) error {
	err := a.inner.Construct(slot, init)
	if err != nil {
		return err
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.liveElements++
	a.constructed++
	return nil
}

func (a *TrackingAllocator[T]) Destroy(slot *T) {
	a.inner.Destroy(slot)

	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.liveElements--
	a.destroyed++
}

// LiveBlocks returns the number of blocks allocated and not yet deallocated
func (a *TrackingAllocator[T]) LiveBlocks() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.blocks.Count()
}

// LiveElements returns the number of elements constructed and not yet destroyed
func (a *TrackingAllocator[T]) LiveElements() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.liveElements
}

// Constructed returns the total number of successful constructions
func (a *TrackingAllocator[T]) Constructed() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.constructed
}

// Destroyed returns the total number of destructions
func (a *TrackingAllocator[T]) Destroyed() int {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.destroyed
}

// Owns returns true if block is a live block allocated through this allocator
func (a *TrackingAllocator[T]) Owns(block []T) bool {
	if len(block) == 0 {
		return false
	}

	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.blocks.Has(&block[0])
}

func (a *TrackingAllocator[T]) AddStatistics(stats *memutils.Statistics) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	a.blocks.Iter(func(_ *T, block trackedBlock) bool {
		stats.BlockCount++
		stats.SlotCount += block.size
		return false
	})
	stats.ElementCount += a.liveElements
}

// Validate performs internal consistency checks on the registry
func (a *TrackingAllocator[T]) Validate() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if a.liveElements < 0 {
		return errors.Newf("%d more elements were destroyed than were constructed", -a.liveElements)
	}

	if a.constructed-a.destroyed != a.liveElements {
		return errors.Newf("the live element count (%d) does not match the constructed (%d) and destroyed (%d) counts", a.liveElements, a.constructed, a.destroyed)
	}

	slots := 0
	a.blocks.Iter(func(_ *T, block trackedBlock) bool {
		slots += block.size
		return false
	})
	if a.liveElements > slots {
		return errors.Newf("%d elements are live, but the live blocks only have room for %d", a.liveElements, slots)
	}

	return nil
}

// Close logs every block and element that was never released and returns an error if there
// were any. The wrapped allocator is not affected.
func (a *TrackingAllocator[T]) Close() error {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	if a.blocks.Count() == 0 && a.liveElements == 0 {
		return nil
	}

	a.blocks.Iter(func(_ *T, block trackedBlock) bool {
		a.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] unfreed block",
			slog.Int("id", int(block.id)),
			slog.Int("size", block.size),
		)
		return false
	})

	if a.liveElements != 0 {
		a.logger.LogAttrs(context.Background(), slog.LevelError, "[UNRELEASED MEMORY] undestroyed elements",
			slog.Int("count", a.liveElements),
		)
	}

	return errors.Newf("%d blocks and %d elements were not released before the allocator was closed", a.blocks.Count(), a.liveElements)
}
