package memutils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/deque/memutils"
)

func TestDetailedStatisticsAddBlock(t *testing.T) {
	var stats memutils.DetailedStatistics
	stats.Clear()

	require.Equal(t, memutils.DetailedStatistics{
		BlockOccupancyMin: math.MaxInt,
	}, stats)

	stats.AddBlock(8, 3)
	stats.AddBlock(8, 8)
	stats.MapSlotCount = 16

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:   2,
			ElementCount: 11,
			SlotCount:    16,
			MapSlotCount: 16,
		},
		BlockOccupancyMin: 3,
		BlockOccupancyMax: 8,
	}, stats)
	require.Equal(t, 5, stats.UnusedSlots())
}

func TestDetailedStatisticsMerge(t *testing.T) {
	var first, second memutils.DetailedStatistics
	first.Clear()
	second.Clear()

	first.AddBlock(4, 4)
	first.HeadroomFront = 2
	first.Relocations = 1

	second.AddBlock(4, 1)
	second.HeadroomBack = 5

	first.AddDetailedStatistics(&second)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:   2,
			ElementCount: 5,
			SlotCount:    8,
		},
		HeadroomFront:     2,
		HeadroomBack:      5,
		Relocations:       1,
		BlockOccupancyMin: 1,
		BlockOccupancyMax: 4,
	}, first)

	first.Clear()
	require.Equal(t, 0, first.BlockCount)
	require.Equal(t, math.MaxInt, first.BlockOccupancyMin)
}
