package deque_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/deque"
)

func BenchmarkPushBackPopFront(b *testing.B) {
	d, err := deque.New[int](nil, nil, deque.CreateOptions{})
	require.NoError(b, err)
	defer func() { require.NoError(b, d.Destroy()) }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.PushBack(i)
		if d.Len() > 1024 {
			d.PopFrontUnsafe()
		}
	}
}

func BenchmarkPushFront(b *testing.B) {
	d, err := deque.New[int](nil, nil, deque.CreateOptions{})
	require.NoError(b, err)
	defer func() { require.NoError(b, d.Destroy()) }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.PushFront(i)
	}
}

func BenchmarkRandomAccess(b *testing.B) {
	d, err := deque.NewWithSize[int](nil, nil, 1<<16, deque.CreateOptions{})
	require.NoError(b, err)
	defer func() { require.NoError(b, d.Destroy()) }()

	b.ResetTimer()
	sum := 0
	for i := 0; i < b.N; i++ {
		sum += d.AtUnsafe((i * 7919) & (1<<16 - 1))
	}
	_ = sum
}

func BenchmarkIterate(b *testing.B) {
	d, err := deque.NewWithSize[int](nil, nil, 1<<16, deque.CreateOptions{})
	require.NoError(b, err)
	defer func() { require.NoError(b, d.Destroy()) }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		end := d.End()
		for it := d.Begin(); !it.Equal(end); it.Inc() {
			*it.Pointer()++
		}
	}
}
