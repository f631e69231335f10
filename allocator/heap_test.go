package allocator_test

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/deque/allocator"
)

type cloneCounter struct {
	value  int
	clones *int
	failAt int
}

func (c cloneCounter) Clone() (cloneCounter, error) {
	*c.clones++
	if *c.clones == c.failAt {
		return cloneCounter{}, errors.New("clone failed")
	}
	return cloneCounter{value: c.value * 10, clones: c.clones, failAt: c.failAt}, nil
}

func TestHeapAllocatorAllocate(t *testing.T) {
	alloc := allocator.NewHeapAllocator[int](allocator.CreateOptions{})

	block, err := alloc.Allocate(8)
	require.NoError(t, err)
	require.Len(t, block, 8)
	require.Equal(t, 1, alloc.BlockCount())
	require.Equal(t, 8, alloc.SlotCount())

	_, err = alloc.Allocate(0)
	require.True(t, errors.Is(err, allocator.ErrInvalidBlockSize))
	require.Equal(t, 1, alloc.BlockCount())

	alloc.Deallocate(block, 8)
	require.Equal(t, 0, alloc.BlockCount())
	require.Equal(t, 0, alloc.SlotCount())
	require.Equal(t, 1, alloc.CachedBlockCount())
}

func TestHeapAllocatorDeallocateWrongSize(t *testing.T) {
	alloc := allocator.NewHeapAllocator[int](allocator.CreateOptions{})

	block, err := alloc.Allocate(8)
	require.NoError(t, err)

	require.Panics(t, func() {
		alloc.Deallocate(block, 4)
	})
}

func TestHeapAllocatorBudget(t *testing.T) {
	alloc := allocator.NewHeapAllocator[string](allocator.CreateOptions{
		MaxBlockCount: 2,
	})

	first, err := alloc.Allocate(4)
	require.NoError(t, err)
	_, err = alloc.Allocate(4)
	require.NoError(t, err)

	_, err = alloc.Allocate(4)
	require.Error(t, err)
	require.True(t, errors.Is(err, allocator.ErrOutOfBlockBudget))
	require.Equal(t, 2, alloc.BlockCount())

	alloc.Deallocate(first, 4)
	_, err = alloc.Allocate(4)
	require.NoError(t, err)
}

func TestHeapAllocatorReusesCachedBlocks(t *testing.T) {
	var allocated, freed int
	alloc := allocator.NewHeapAllocator[*int](allocator.CreateOptions{
		MaxCachedBlocks: 1,
		MemoryCallbackOptions: &allocator.MemoryCallbackOptions{
			Allocate: func(size int, userData interface{}) {
				allocated += size
				require.Equal(t, "user", userData)
			},
			Free: func(size int, userData interface{}) {
				freed += size
			},
			UserData: "user",
		},
	})

	first, err := alloc.Allocate(4)
	require.NoError(t, err)
	second, err := alloc.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 8, allocated)

	value := 5
	first[2] = &value

	alloc.Deallocate(first, 4)
	alloc.Deallocate(second, 4)
	// Only one block fits in the cache
	require.Equal(t, 4, freed)
	require.Equal(t, 1, alloc.CachedBlockCount())

	reused, err := alloc.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 8, allocated)
	require.Equal(t, []*int{nil, nil, nil, nil}, reused)

	// Different sizes are never served from the cache
	alloc.Deallocate(reused, 4)
	_, err = alloc.Allocate(2)
	require.NoError(t, err)
	require.Equal(t, 10, allocated)

	alloc.Trim()
	require.Equal(t, 0, alloc.CachedBlockCount())
	require.Equal(t, 8, freed)
}

func TestHeapAllocatorCacheDisabled(t *testing.T) {
	alloc := allocator.NewHeapAllocator[int](allocator.CreateOptions{
		MaxCachedBlocks: -1,
	})

	block, err := alloc.Allocate(4)
	require.NoError(t, err)
	alloc.Deallocate(block, 4)
	require.Equal(t, 0, alloc.CachedBlockCount())
}

func TestHeapAllocatorConstruct(t *testing.T) {
	alloc := allocator.NewHeapAllocator[string](allocator.CreateOptions{})

	var slot string
	err := alloc.Construct(&slot, allocator.CopyOf("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", slot)

	alloc.Destroy(&slot)
	require.Equal(t, "", slot)

	err = alloc.Construct(&slot, func(slot *string) error {
		*slot = "partial"
		return errors.New("failed halfway")
	})
	require.EqualError(t, err, "failed halfway")
	require.Equal(t, "", slot)
}

func TestCopyOfUsesCloner(t *testing.T) {
	alloc := allocator.NewHeapAllocator[cloneCounter](allocator.CreateOptions{})
	clones := 0
	source := cloneCounter{value: 3, clones: &clones, failAt: 2}

	var slot cloneCounter
	require.NoError(t, alloc.Construct(&slot, allocator.CopyOf(source)))
	require.Equal(t, 30, slot.value)
	require.Equal(t, 1, clones)

	var second cloneCounter
	err := alloc.Construct(&second, allocator.CopyOf(source))
	require.EqualError(t, err, "clone failed")
	require.Equal(t, cloneCounter{}, second)

	var moved cloneCounter
	require.NoError(t, alloc.Construct(&moved, allocator.ValueOf(source)))
	require.Equal(t, 3, moved.value)
	require.Equal(t, 2, clones)
}

func TestHeapAllocatorConcurrentUse(t *testing.T) {
	alloc := allocator.NewHeapAllocator[int](allocator.CreateOptions{
		MaxCachedBlocks: 2,
	})

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				block, err := alloc.Allocate(16)
				if err != nil {
					panic(err)
				}
				alloc.Deallocate(block, 16)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 0, alloc.BlockCount())
	require.LessOrEqual(t, alloc.CachedBlockCount(), 2)
}

func TestCreateFlagsString(t *testing.T) {
	require.Equal(t, "None", allocator.CreateFlags(0).String())
	require.Equal(t, "CreateExternallySynchronized", allocator.CreateExternallySynchronized.String())
}
