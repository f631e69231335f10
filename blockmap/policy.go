package blockmap

// GrowthPolicy selects how a Map grows once it runs out of slots at one of its ends
type GrowthPolicy uint32

const (
	// GrowthAsymmetric triples the slot table when growing toward the tail and doubles it when
	// growing toward the head. The old slots are copied into the middle third and the middle
	// half of the new table, respectively.
	GrowthAsymmetric GrowthPolicy = iota
	// GrowthSymmetric doubles the slot table in both directions and centers the live blocks
	// within it.
	GrowthSymmetric
)

var growthPolicyMapping = map[GrowthPolicy]string{
	GrowthAsymmetric: "GrowthAsymmetric",
	GrowthSymmetric:  "GrowthSymmetric",
}

func (p GrowthPolicy) String() string {
	return growthPolicyMapping[p]
}

// Direction identifies the end of a Map that a Reservation was made for
type Direction uint32

const (
	DirectionTail Direction = iota
	DirectionHead
)

var directionMapping = map[Direction]string{
	DirectionTail: "Tail",
	DirectionHead: "Head",
}

func (d Direction) String() string {
	return directionMapping[d]
}

// sparseFactor is the ratio of slot table size to live blocks at or above which a Map recenters
// its live blocks in a table of the same size rather than growing
const sparseFactor int = 3

// plan returns the size of the new slot table and the slot that the first live block moves to
// when growing in the given direction with first..last being the live blocks.
func (p GrowthPolicy) plan(direction Direction, tableSize, first, last int) (newSize, newFirst int) {
	live := last - first + 1

	if live*sparseFactor <= tableSize {
		// Plenty of room, it's just on the wrong side
		if direction == DirectionHead {
			return tableSize, (tableSize - live + 1) / 2
		}
		return tableSize, (tableSize - live) / 2
	}

	switch {
	case p == GrowthSymmetric && direction == DirectionHead:
		newSize = 2 * tableSize
		return newSize, (newSize - live + 1) / 2
	case p == GrowthSymmetric:
		newSize = 2 * tableSize
		return newSize, (newSize - live) / 2
	case direction == DirectionHead:
		return 2 * tableSize, first + (tableSize+1)/2
	default:
		return 3 * tableSize, first + tableSize
	}
}
