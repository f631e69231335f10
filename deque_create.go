package deque

import (
	"strings"

	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/blockmap"
	"github.com/vkngwrapper/arsenal/deque/memutils"
	"golang.org/x/exp/slog"
)

// CreateFlags indicate specific deque behaviors to activate or deactivate
type CreateFlags int32

const (
	// CreateSymmetricGrowth causes the block map to double and recenter when it runs out of
	// room at either end. By default, the map triples when growing toward the back and doubles
	// when growing toward the front.
	CreateSymmetricGrowth CreateFlags = 1 << iota
)

var createFlagsMapping = map[CreateFlags]string{
	CreateSymmetricGrowth: "CreateSymmetricGrowth",
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
	// DefaultBlockSize is the number of elements per block used when CreateOptions.BlockSize is 0
	DefaultBlockSize int = 512
	// DefaultInitialMapSize is the number of block map slots used when CreateOptions.InitialMapSize is 0
	DefaultInitialMapSize int = 8
)

// CreateOptions contains optional settings when creating a Deque
type CreateOptions struct {
	// Flags indicates specific deque behaviors to activate or deactivate
	Flags CreateFlags

	// BlockSize is the number of elements held by each block. It must be a power of two. 0
	// selects DefaultBlockSize.
	BlockSize int

	// InitialMapSize is the number of slots in the block map of a newly-created, empty deque.
	// Sized constructors may use a larger map. 0 selects DefaultInitialMapSize.
	InitialMapSize int
}

func (o CreateOptions) normalize() (CreateOptions, error) {
	if o.BlockSize == 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.InitialMapSize == 0 {
		o.InitialMapSize = DefaultInitialMapSize
	}

	err := memutils.CheckPow2(o.BlockSize, "BlockSize")
	if err != nil {
		return o, err
	}

	err = memutils.CheckPositive(o.InitialMapSize, "InitialMapSize")
	if err != nil {
		return o, err
	}

	return o, nil
}

func (o CreateOptions) growthPolicy() blockmap.GrowthPolicy {
	if o.Flags&CreateSymmetricGrowth != 0 {
		return blockmap.GrowthSymmetric
	}
	return blockmap.GrowthAsymmetric
}

// New creates an empty Deque
//
// logger - The logger to use for debug and error output. If nil, slog.Default() is used.
//
// alloc - The allocator that blocks and elements will be obtained from. If nil, a new
// allocator.HeapAllocator with default options is used.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New[T any](logger *slog.Logger, alloc allocator.Allocator[T], options CreateOptions) (*Deque[T], error) {
	return build[T](logger, alloc, options, 0, nil)
}

// NewWithSize creates a Deque holding count zero-valued elements
func NewWithSize[T any](logger *slog.Logger, alloc allocator.Allocator[T], count int, options CreateOptions) (*Deque[T], error) {
	var zero T
	return build[T](logger, alloc, options, count, func(int) allocator.Initializer[T] {
		return allocator.ValueOf(zero)
	})
}

// NewFilled creates a Deque holding count copies of value. If T implements allocator.Cloner,
// each element is a separate clone.
func NewFilled[T any](logger *slog.Logger, alloc allocator.Allocator[T], count int, value T, options CreateOptions) (*Deque[T], error) {
	return build[T](logger, alloc, options, count, func(int) allocator.Initializer[T] {
		return allocator.CopyOf(value)
	})
}

// NewFromSlice creates a Deque holding copies of values, in order
func NewFromSlice[T any](logger *slog.Logger, alloc allocator.Allocator[T], values []T, options CreateOptions) (*Deque[T], error) {
	return build[T](logger, alloc, options, len(values), func(index int) allocator.Initializer[T] {
		return allocator.CopyOf(values[index])
	})
}

func build[T any](logger *slog.Logger, alloc allocator.Allocator[T], options CreateOptions, count int, init func(index int) allocator.Initializer[T]) (*Deque[T], error) {
	if logger == nil {
		logger = slog.Default()
	}

	if alloc == nil {
		alloc = allocator.NewHeapAllocator[T](allocator.CreateOptions{})
	}

	if count < 0 {
		return nil, ErrNegativeCount
	}

	options, err := options.normalize()
	if err != nil {
		return nil, err
	}

	d := &Deque[T]{
		logger:    logger,
		allocator: alloc,
		options:   options,
		shift:     memutils.Log2(options.BlockSize),
		mask:      options.BlockSize - 1,
	}

	// The end of the window always needs a block, so count elements occupy count/B+1 blocks
	mapSize := max(options.InitialMapSize, 4*(count/options.BlockSize+1))
	if count == 0 {
		mapSize = options.InitialMapSize
	}

	logger.Debug("Deque::New",
		slog.Int("BlockSize", options.BlockSize),
		slog.Int("MapSize", mapSize),
		slog.Int("Count", count),
		slog.String("Flags", options.Flags.String()),
	)

	err = d.resetMap(mapSize)
	if err != nil {
		return nil, err
	}

	err = d.fill(count, init)
	if err != nil {
		return nil, err
	}

	memutils.DebugValidate(d)
	return d, nil
}

// fill appends count elements to an empty deque. If any of them cannot be constructed, every
// element and block is released again.
func (d *Deque[T]) fill(count int, init func(index int) allocator.Initializer[T]) error {
	for index := 0; index < count; index++ {
		err := d.emplaceBack(init(index))
		if err != nil {
			d.release()
			return err
		}
	}

	return nil
}
