package allocator

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

type blockBudget struct {
	blockCount int64
	slotCount  int64
}

func (b *blockBudget) BlockCount() int {
	return int(atomic.LoadInt64(&b.blockCount))
}

func (b *blockBudget) SlotCount() int {
	return int(atomic.LoadInt64(&b.slotCount))
}

// AddBlockWithBudget reserves room for one more block of size slots, failing if maxBlocks blocks
// are already live. A maxBlocks of 0 or less means there is no limit.
func (b *blockBudget) AddBlockWithBudget(size, maxBlocks int) error {
	for {
		currentVal := atomic.LoadInt64(&b.blockCount)
		targetVal := currentVal + 1

		if maxBlocks > 0 && targetVal > int64(maxBlocks) {
			return errors.Wrapf(ErrOutOfBlockBudget, "%d of %d blocks are in use", currentVal, maxBlocks)
		}

		if atomic.CompareAndSwapInt64(&b.blockCount, currentVal, targetVal) {
			break
		}
	}

	atomic.AddInt64(&b.slotCount, int64(size))
	return nil
}

func (b *blockBudget) RemoveBlock(size int) {
	if atomic.LoadInt64(&b.slotCount) < int64(size) {
		panic(fmt.Sprintf("slot count budget went negative removing a block of size %d", size))
	}
	atomic.AddInt64(&b.slotCount, int64(-size))

	if atomic.AddInt64(&b.blockCount, -1) < 0 {
		panic("block count budget went negative")
	}
}
