package deque

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arsenal/deque/memutils"
)

// AddStatistics adds the deque's blocks, slots, and elements to stats
func (d *Deque[T]) AddStatistics(stats *memutils.Statistics) {
	if d.blocks == nil {
		return
	}

	d.blocks.AddStatistics(stats)
	stats.ElementCount += d.Len()
}

// AddDetailedStatistics adds the deque's blocks, slots, elements, and block map layout to stats.
// stats should have been cleared with DetailedStatistics.Clear before the first call.
func (d *Deque[T]) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	if d.blocks == nil {
		return
	}

	d.blocks.AddDetailedStatistics(stats, func(slot int) int {
		start, end := d.blockRange(slot)
		return end - start
	})
}

// blockRange returns the offsets of the constructed elements in the block at slot
func (d *Deque[T]) blockRange(slot int) (start, end int) {
	end = d.options.BlockSize
	if slot == d.firstBlock {
		start = d.firstOffset
	}
	if slot == d.lastBlock {
		end = d.lastOffset
	}
	return start, end
}

// BuildStatsString returns a JSON document describing the deque's options and memory use. If
// detailedMap is true, the document includes every block in the block map.
func (d *Deque[T]) BuildStatsString(detailedMap bool) string {
	var stats memutils.DetailedStatistics
	stats.Clear()
	d.AddDetailedStatistics(&stats)

	writer := jwriter.NewWriter()
	objState := writer.Object()

	options := objState.Name("Options").Object()
	options.Name("Flags").String(d.options.Flags.String())
	options.Name("BlockSize").Int(d.options.BlockSize)
	options.Name("InitialMapSize").Int(d.options.InitialMapSize)
	options.End()

	total := objState.Name("Total").Object()
	total.Name("Destroyed").Bool(d.blocks == nil)
	total.Name("Length").Int(d.Len())
	total.Name("BlockCount").Int(stats.BlockCount)
	total.Name("ElementCount").Int(stats.ElementCount)
	total.Name("SlotCount").Int(stats.SlotCount)
	total.Name("UnusedSlots").Int(stats.UnusedSlots())
	total.Name("MapSlotCount").Int(stats.MapSlotCount)
	total.Name("HeadroomFront").Int(stats.HeadroomFront)
	total.Name("HeadroomBack").Int(stats.HeadroomBack)
	total.Name("Relocations").Int(stats.Relocations)
	if stats.BlockCount > 0 {
		total.Name("BlockOccupancyMin").Int(stats.BlockOccupancyMin)
		total.Name("BlockOccupancyMax").Int(stats.BlockOccupancyMax)
	}
	total.End()

	if detailedMap && d.blocks != nil {
		d.blocks.PrintDetailedMap(objState.Name("DetailedMap"), d.blockRange)
	}

	objState.End()
	return string(writer.Bytes())
}
