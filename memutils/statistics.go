package memutils

import "math"

// Statistics summarizes the memory held by one or more block containers
type Statistics struct {
	// BlockCount is the number of blocks currently allocated
	BlockCount int
	// ElementCount is the number of constructed elements living in those blocks
	ElementCount int
	// SlotCount is the number of element slots across all allocated blocks
	SlotCount int
	// MapSlotCount is the number of entries in the block maps, allocated or not
	MapSlotCount int
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.ElementCount = 0
	s.SlotCount = 0
	s.MapSlotCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.ElementCount += other.ElementCount
	s.SlotCount += other.SlotCount
	s.MapSlotCount += other.MapSlotCount
}

// UnusedSlots returns the number of allocated slots that do not hold an element
func (s *Statistics) UnusedSlots() int {
	return s.SlotCount - s.ElementCount
}

type DetailedStatistics struct {
	Statistics
	// HeadroomFront is the number of unallocated map entries before the first block
	HeadroomFront int
	// HeadroomBack is the number of unallocated map entries after the last block
	HeadroomBack int
	// Relocations is the number of times a block map was reallocated and recentered
	Relocations int
	// BlockOccupancyMin is the smallest number of elements held by a single allocated block
	BlockOccupancyMin int
	// BlockOccupancyMax is the largest number of elements held by a single allocated block
	BlockOccupancyMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.HeadroomFront = 0
	s.HeadroomBack = 0
	s.Relocations = 0
	s.BlockOccupancyMin = math.MaxInt
	s.BlockOccupancyMax = 0
}

// AddBlock records an allocated block of the provided capacity holding occupied elements
func (s *DetailedStatistics) AddBlock(capacity, occupied int) {
	s.BlockCount++
	s.SlotCount += capacity
	s.ElementCount += occupied

	if occupied < s.BlockOccupancyMin {
		s.BlockOccupancyMin = occupied
	}

	if occupied > s.BlockOccupancyMax {
		s.BlockOccupancyMax = occupied
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.HeadroomFront += other.HeadroomFront
	s.HeadroomBack += other.HeadroomBack
	s.Relocations += other.Relocations

	if other.BlockOccupancyMin < s.BlockOccupancyMin {
		s.BlockOccupancyMin = other.BlockOccupancyMin
	}

	if other.BlockOccupancyMax > s.BlockOccupancyMax {
		s.BlockOccupancyMax = other.BlockOccupancyMax
	}
}
