package blockmap

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/memutils"
	"golang.org/x/exp/slog"
)

// Map is a table of slots, each of which either owns one block of elements or is nil. The
// blocks themselves are obtained from and returned to an allocator.Allocator. Map does not know
// which elements of its blocks are constructed: that is the business of the container using it.
//
// A Map never frees a block on its own. Growing the table moves the blocks to new slot indices,
// which is communicated to the caller through Reservation.Shift.
type Map[T any] struct {
	logger    *slog.Logger
	allocator allocator.Allocator[T]
	policy    GrowthPolicy

	blockSize   int
	blocks      [][]T
	relocations int
}

// New creates a Map with mapSize empty slots. blockSize is the number of elements requested
// for every block and must be a power of two.
func New[T any](logger *slog.Logger, alloc allocator.Allocator[T], blockSize, mapSize int, policy GrowthPolicy) (*Map[T], error) {
	if logger == nil {
		logger = slog.Default()
	}

	err := memutils.CheckPow2(blockSize, "blockSize")
	if err != nil {
		return nil, err
	}

	err = memutils.CheckPositive(mapSize, "mapSize")
	if err != nil {
		return nil, err
	}

	return &Map[T]{
		logger:    logger,
		allocator: alloc,
		policy:    policy,
		blockSize: blockSize,
		blocks:    make([][]T, mapSize),
	}, nil
}

func (m *Map[T]) Len() int {
	return len(m.blocks)
}

func (m *Map[T]) BlockSize() int {
	return m.blockSize
}

func (m *Map[T]) Policy() GrowthPolicy {
	return m.policy
}

// Relocations returns the number of times the slot table has been replaced
func (m *Map[T]) Relocations() int {
	return m.relocations
}

// Blocks returns the current slot table. The table is replaced whenever a Reservation that
// grows the map is committed, so callers holding onto it will stop seeing new blocks.
func (m *Map[T]) Blocks() [][]T {
	return m.blocks
}

// Block returns the block held by a slot, or nil if the slot is empty
func (m *Map[T]) Block(slot int) []T {
	return m.blocks[slot]
}

// AllocateBlock obtains a block from the allocator and places it in an empty slot
func (m *Map[T]) AllocateBlock(slot int) ([]T, error) {
	if m.blocks[slot] != nil {
		panic("attempting to allocate a block into an occupied map slot")
	}

	block, err := m.allocate(slot)
	if err != nil {
		return nil, err
	}

	m.blocks[slot] = block
	return block, nil
}

func (m *Map[T]) allocate(slot int) ([]T, error) {
	memutils.DebugCheckPow2(m.blockSize, "blockSize")

	block, err := m.allocator.Allocate(m.blockSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate a block for map slot %d", slot)
	}

	return block, nil
}

// FreeBlock returns the block in a slot to the allocator and empties the slot. Every element
// constructed in the block must already have been destroyed.
func (m *Map[T]) FreeBlock(slot int) {
	block := m.blocks[slot]
	if block == nil {
		panic("attempting to free an empty map slot")
	}

	m.blocks[slot] = nil
	m.allocator.Deallocate(block, m.blockSize)
}

// Destroy frees every block still held by the map. Every element constructed in those blocks
// must already have been destroyed. The map cannot be used afterward.
func (m *Map[T]) Destroy() {
	for slot, block := range m.blocks {
		if block != nil {
			m.blocks[slot] = nil
			m.allocator.Deallocate(block, m.blockSize)
		}
	}

	m.blocks = nil
}

// ReserveTail prepares a block for the slot after last. If that slot lies beyond the end of the
// table, a larger (or recentered) table is prepared as well. Nothing is visible to the map until
// the Reservation is committed.
func (m *Map[T]) ReserveTail(first, last int) (Reservation[T], error) {
	if last+1 < len(m.blocks) {
		return m.reserveSlot(DirectionTail, nil, 0, last+1)
	}

	table, shift := m.relocate(DirectionTail, first, last)
	return m.reserveSlot(DirectionTail, table, shift, last+1+shift)
}

// ReserveHead prepares a block for the slot before first. If that slot lies before the start of
// the table, a larger (or recentered) table is prepared as well. Nothing is visible to the map
// until the Reservation is committed.
func (m *Map[T]) ReserveHead(first, last int) (Reservation[T], error) {
	if first > 0 {
		return m.reserveSlot(DirectionHead, nil, 0, first-1)
	}

	table, shift := m.relocate(DirectionHead, first, last)
	return m.reserveSlot(DirectionHead, table, shift, first-1+shift)
}

func (m *Map[T]) relocate(direction Direction, first, last int) ([][]T, int) {
	newSize, newFirst := m.policy.plan(direction, len(m.blocks), first, last)

	table := make([][]T, newSize)
	copy(table[newFirst:], m.blocks[first:last+1])

	return table, newFirst - first
}

func (m *Map[T]) reserveSlot(direction Direction, table [][]T, shift int, slot int) (Reservation[T], error) {
	block, err := m.allocate(slot)
	if err != nil {
		return Reservation[T]{}, err
	}

	return Reservation[T]{
		owner:     m,
		direction: direction,
		table:     table,
		shift:     shift,
		slot:      slot,
		block:     block,
	}, nil
}

// Validate verifies that the slots first through last all hold blocks of the correct size and
// that every other slot is empty
func (m *Map[T]) Validate(first, last int) error {
	if m.blocks == nil {
		return errors.New("block map has been destroyed")
	}

	if first < 0 || last >= len(m.blocks) || first > last {
		return errors.Newf("block window %d..%d does not fit in a map of %d slots", first, last, len(m.blocks))
	}

	for slot, block := range m.blocks {
		occupied := slot >= first && slot <= last

		if occupied && block == nil {
			return errors.Newf("map slot %d is inside the block window %d..%d but holds no block", slot, first, last)
		} else if !occupied && block != nil {
			return errors.Newf("map slot %d is outside the block window %d..%d but holds a block", slot, first, last)
		} else if occupied && len(block) != m.blockSize {
			return errors.Newf("map slot %d holds a block of %d elements, but the block size is %d", slot, len(block), m.blockSize)
		}
	}

	return nil
}

// AddStatistics adds the map's blocks and slots to stats. It does not count elements.
func (m *Map[T]) AddStatistics(stats *memutils.Statistics) {
	stats.MapSlotCount += len(m.blocks)

	for _, block := range m.blocks {
		if block != nil {
			stats.BlockCount++
			stats.SlotCount += m.blockSize
		}
	}
}

// AddDetailedStatistics adds the map's blocks to stats. occupancy reports the number of
// constructed elements in the block at a given slot.
func (m *Map[T]) AddDetailedStatistics(stats *memutils.DetailedStatistics, occupancy func(slot int) int) {
	stats.MapSlotCount += len(m.blocks)
	stats.Relocations += m.relocations

	first, last := -1, -1
	for slot, block := range m.blocks {
		if block == nil {
			continue
		}

		if first < 0 {
			first = slot
		}
		last = slot

		stats.AddBlock(m.blockSize, occupancy(slot))
	}

	if first < 0 {
		stats.HeadroomFront += len(m.blocks)
		return
	}

	stats.HeadroomFront += first
	stats.HeadroomBack += len(m.blocks) - last - 1
}

// PrintDetailedMap writes a JSON description of every allocated block to writer. occupancy
// reports the range of constructed elements in the block at a given slot.
func (m *Map[T]) PrintDetailedMap(writer *jwriter.Writer, occupancy func(slot int) (start, end int)) {
	objState := writer.Object()
	defer objState.End()

	objState.Name("MapSize").Int(len(m.blocks))
	objState.Name("BlockSize").Int(m.blockSize)
	objState.Name("Relocations").Int(m.relocations)

	blocksObj := objState.Name("Blocks").Object()
	defer blocksObj.End()

	for slot, block := range m.blocks {
		if block == nil {
			continue
		}

		start, end := occupancy(slot)

		blockObj := blocksObj.Name(strconv.Itoa(slot)).Object()
		blockObj.Name("Start").Int(start)
		blockObj.Name("End").Int(end)
		blockObj.Name("Occupied").Int(end - start)
		blockObj.End()
	}
}

func (m *Map[T]) logRelocation(direction Direction, oldSize, newSize, shift int) {
	m.logger.LogAttrs(context.Background(), slog.LevelDebug, "BlockMap::Relocate",
		slog.String("Direction", direction.String()),
		slog.Int("OldSize", oldSize),
		slog.Int("NewSize", newSize),
		slog.Int("Shift", shift),
	)
}
