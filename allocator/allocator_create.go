package allocator

import (
	"strings"

	"github.com/vkngwrapper/arsenal/deque/internal/utils"
)

// CreateFlags indicate specific allocator behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateExternallySynchronized ensures that this allocator will not be synchronized internally.
	// The consumer must guarantee it is used from only one goroutine at a time, including through
	// every container that shares it, but performance may improve because internal mutexes are
	// not used.
	CreateExternallySynchronized CreateFlags = 1 << iota
)

var createFlagsMapping = map[CreateFlags]string{
	CreateExternallySynchronized: "CreateExternallySynchronized",
}

func (f CreateFlags) String() string {
	if f == 0 {
		return "None"
	}

	var names []string
	for flag := CreateFlags(1); flag != 0 && flag <= f; flag <<= 1 {
		if f&flag == 0 {
			continue
		}
		name, ok := createFlagsMapping[flag]
		if !ok {
			continue
		}
		names = append(names, name)
	}

	return strings.Join(names, "|")
}

const (
	// defaultMaxCachedBlocks is the number of freed blocks a HeapAllocator keeps for reuse when
	// CreateOptions.MaxCachedBlocks is 0
	defaultMaxCachedBlocks int = 4
)

// CreateOptions contains optional settings when creating a HeapAllocator
type CreateOptions struct {
	// Flags indicates specific allocator behaviors to activate or deactivate
	Flags CreateFlags

	// MaxBlockCount is the largest number of blocks that may be live at once. Allocate returns
	// ErrOutOfBlockBudget once it is reached. 0 means there is no limit.
	MaxBlockCount int

	// MaxCachedBlocks is the number of deallocated blocks kept around to serve later allocations
	// of the same size. 0 selects a small default, and a negative value disables the cache.
	MaxCachedBlocks int

	// MemoryCallbackOptions is an optional set of callbacks that will be executed when blocks
	// are obtained from or returned to the heap by this allocator. Blocks served from the cache
	// do not trigger them.
	MemoryCallbackOptions *MemoryCallbackOptions
}

// NewHeapAllocator creates a new HeapAllocator
//
// options - Optional parameters: it is valid to leave all the fields blank
func NewHeapAllocator[T any](options CreateOptions) *HeapAllocator[T] {
	useMutex := options.Flags&CreateExternallySynchronized == 0

	allocator := &HeapAllocator[T]{
		createFlags:   options.Flags,
		maxBlockCount: options.MaxBlockCount,
		mutex:         utils.OptionalMutex{UseMutex: useMutex},
		callbacks:     memoryCallbacks{Callbacks: options.MemoryCallbackOptions},
	}

	switch {
	case options.MaxCachedBlocks == 0:
		allocator.maxCachedBlocks = defaultMaxCachedBlocks
	case options.MaxCachedBlocks > 0:
		allocator.maxCachedBlocks = options.MaxCachedBlocks
	}

	return allocator
}
