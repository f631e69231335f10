package deque_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/deque"
)

func TestInsertAtEveryIndex(t *testing.T) {
	for size := 0; size < 12; size++ {
		for index := 0; index <= size; index++ {
			d, tracking := newDeque(t, deque.CreateOptions{BlockSize: 4, InitialMapSize: 1})
			var expected []int
			for i := 0; i < size; i++ {
				require.NoError(t, d.PushBack(i))
				expected = append(expected, i)
			}

			require.NoError(t, d.Insert(index, 100))
			expected = slices.Insert(expected, index, 100)
			requireContents(t, expected, d)

			destroyAndCheck(t, d, tracking)
		}
	}
}

func TestInsertOutOfRange(t *testing.T) {
	d, tracking := newDeque(t, deque.CreateOptions{BlockSize: 4})
	require.NoError(t, d.PushBack(1))

	require.ErrorIs(t, d.Insert(2, 0), deque.ErrIndexOutOfRange)
	require.ErrorIs(t, d.Insert(-1, 0), deque.ErrIndexOutOfRange)
	requireContents(t, []int{1}, d)

	destroyAndCheck(t, d, tracking)
}

func TestEraseAtEveryIndex(t *testing.T) {
	for size := 1; size < 12; size++ {
		for index := 0; index < size; index++ {
			d, tracking := newDeque(t, deque.CreateOptions{BlockSize: 4})
			var expected []int
			for i := 0; i < size; i++ {
				require.NoError(t, d.PushFront(i))
				expected = append([]int{i}, expected...)
			}

			require.NoError(t, d.Erase(index))
			expected = slices.Delete(expected, index, index+1)
			requireContents(t, expected, d)
			require.Equal(t, len(expected), tracking.LiveElements())

			destroyAndCheck(t, d, tracking)
		}
	}
}

func TestEraseOutOfRange(t *testing.T) {
	d, tracking := newDeque(t, deque.CreateOptions{BlockSize: 4})

	require.ErrorIs(t, d.Erase(0), deque.ErrIndexOutOfRange)

	require.NoError(t, d.PushBack(1))
	require.ErrorIs(t, d.Erase(1), deque.ErrIndexOutOfRange)
	require.ErrorIs(t, d.Erase(-1), deque.ErrIndexOutOfRange)
	requireContents(t, []int{1}, d)

	destroyAndCheck(t, d, tracking)
}
