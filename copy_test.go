package deque_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/deque"
)

func filledDeque(t *testing.T, count int) (*deque.Deque[int], []int) {
	d, err := deque.New[int](nil, newTracking[int](), deque.CreateOptions{BlockSize: 4})
	require.NoError(t, err)

	var values []int
	for i := 0; i < count; i++ {
		require.NoError(t, d.PushBack(i))
		values = append(values, i)
	}
	return d, values
}

func TestCloneIsIndependent(t *testing.T) {
	d, values := filledDeque(t, 13)

	clone, err := d.Clone()
	require.NoError(t, err)
	requireContents(t, values, clone)
	require.Same(t, d.Allocator(), clone.Allocator())

	require.NoError(t, clone.Set(0, 100))
	require.NoError(t, clone.PushBack(13))
	requireContents(t, values, d)

	require.NoError(t, clone.Destroy())
	require.NoError(t, d.Destroy())
}

func TestMoveLeavesSourceUsable(t *testing.T) {
	d, values := filledDeque(t, 13)
	first := d.PointerUnsafe(0)

	moved, err := d.Move()
	require.NoError(t, err)
	requireContents(t, values, moved)
	require.Same(t, first, moved.PointerUnsafe(0))

	requireContents(t, []int{}, d)
	require.NoError(t, d.PushBack(1))
	requireContents(t, []int{1}, d)

	require.NoError(t, moved.Destroy())
	require.NoError(t, d.Destroy())
}

func TestMoveFrom(t *testing.T) {
	d, _ := filledDeque(t, 5)
	other, values := filledDeque(t, 9)

	require.NoError(t, d.MoveFrom(other))
	requireContents(t, values, d)
	requireContents(t, []int{}, other)

	require.NoError(t, d.MoveFrom(d))
	requireContents(t, values, d)

	require.NoError(t, d.Destroy())
	require.NoError(t, other.Destroy())
}

func TestAssign(t *testing.T) {
	tracking := newTracking[int]()
	d, err := deque.NewFromSlice[int](nil, tracking, []int{1, 2, 3}, deque.CreateOptions{BlockSize: 2})
	require.NoError(t, err)

	other, values := filledDeque(t, 11)

	require.NoError(t, d.Assign(other))
	requireContents(t, values, d)
	require.Same(t, tracking, d.Allocator())
	require.Equal(t, 2, d.Options().BlockSize)
	require.Equal(t, 11, tracking.LiveElements())

	require.NoError(t, d.Assign(d))
	requireContents(t, values, d)

	require.NoError(t, other.Set(0, 50))
	requireContents(t, values, d)

	require.NoError(t, d.Destroy())
	require.NoError(t, other.Destroy())
	require.NoError(t, tracking.Close())
}

func TestSwap(t *testing.T) {
	left, leftValues := filledDeque(t, 3)
	right, rightValues := filledDeque(t, 10)

	left.Swap(right)
	requireContents(t, rightValues, left)
	requireContents(t, leftValues, right)

	require.NoError(t, left.Destroy())
	require.NoError(t, right.Destroy())
}
