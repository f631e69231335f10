package deque_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/deque"
	"github.com/vkngwrapper/arsenal/deque/memutils"
)

type statsDocument struct {
	Options struct {
		Flags          string
		BlockSize      int
		InitialMapSize int
	}
	Total struct {
		Destroyed         bool
		Length            int
		BlockCount        int
		ElementCount      int
		SlotCount         int
		UnusedSlots       int
		MapSlotCount      int
		HeadroomFront     int
		HeadroomBack      int
		Relocations       int
		BlockOccupancyMin int
		BlockOccupancyMax int
	}
	DetailedMap *struct {
		MapSize     int
		BlockSize   int
		Relocations int
		Blocks      map[string]struct {
			Start    int
			End      int
			Occupied int
		}
	}
}

func TestBuildStatsString(t *testing.T) {
	d, tracking := newDeque(t, deque.CreateOptions{Flags: deque.CreateSymmetricGrowth, BlockSize: 4})

	for i := 0; i < 6; i++ {
		require.NoError(t, d.PushBack(i))
	}
	require.NoError(t, d.PushFront(-1))

	var doc statsDocument
	require.NoError(t, json.Unmarshal([]byte(d.BuildStatsString(false)), &doc))
	require.Equal(t, "CreateSymmetricGrowth", doc.Options.Flags)
	require.Equal(t, 4, doc.Options.BlockSize)
	require.Equal(t, 8, doc.Options.InitialMapSize)
	require.Equal(t, 7, doc.Total.Length)
	require.Equal(t, 7, doc.Total.ElementCount)
	require.Equal(t, 3, doc.Total.BlockCount)
	require.Equal(t, 12, doc.Total.SlotCount)
	require.Equal(t, 5, doc.Total.UnusedSlots)
	require.Equal(t, 8, doc.Total.MapSlotCount)
	require.Equal(t, 3, doc.Total.HeadroomFront)
	require.Equal(t, 2, doc.Total.HeadroomBack)
	require.Equal(t, 1, doc.Total.BlockOccupancyMin)
	require.Equal(t, 4, doc.Total.BlockOccupancyMax)
	require.Nil(t, doc.DetailedMap)

	doc = statsDocument{}
	require.NoError(t, json.Unmarshal([]byte(d.BuildStatsString(true)), &doc))
	require.NotNil(t, doc.DetailedMap)
	require.Equal(t, 8, doc.DetailedMap.MapSize)
	require.Len(t, doc.DetailedMap.Blocks, 3)
	require.Equal(t, 3, doc.DetailedMap.Blocks["3"].Start)
	require.Equal(t, 4, doc.DetailedMap.Blocks["3"].End)
	require.Equal(t, 4, doc.DetailedMap.Blocks["4"].Occupied)
	require.Equal(t, 2, doc.DetailedMap.Blocks["5"].Occupied)

	var stats memutils.Statistics
	d.AddStatistics(&stats)
	tracking.AddStatistics(&stats)
	require.Equal(t, 14, stats.ElementCount)
	require.Equal(t, 6, stats.BlockCount)

	destroyAndCheck(t, d, tracking)

	doc = statsDocument{}
	require.NoError(t, json.Unmarshal([]byte(d.BuildStatsString(true)), &doc))
	require.True(t, doc.Total.Destroyed)
	require.Nil(t, doc.DetailedMap)
}
