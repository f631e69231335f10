package deque

// RandomAccessIterator is the set of operations shared by Iterator and ReverseIterator. I is
// the iterator type itself.
type RandomAccessIterator[T any, I any] interface {
	Get() T
	Pointer() *T
	Set(value T)
	At(n int) T

	Inc()
	Dec()
	Advance(n int)
	Add(n int) I
	Sub(n int) I

	Distance(from I) int
	Compare(other I) int
	Less(other I) bool
	Equal(other I) bool
}

var _ RandomAccessIterator[int, Iterator[int]] = &Iterator[int]{}
var _ RandomAccessIterator[int, ReverseIterator[int]] = &ReverseIterator[int]{}

// Iterator is a position within a Deque. It can be moved in either direction by any distance
// in constant time, crossing block boundaries as needed.
//
// An Iterator holds the deque's block map as it was when the iterator was created. Any operation
// that adds or removes elements may invalidate it. Iterators from different deques may not be
// compared.
type Iterator[T any] struct {
	blocks [][]T
	slot   int
	offset int
	shift  int
}

func (it Iterator[T]) mask() int {
	return 1<<it.shift - 1
}

// Get returns the element at the iterator's position
func (it Iterator[T]) Get() T {
	return it.blocks[it.slot][it.offset]
}

// Pointer returns a pointer to the element at the iterator's position
func (it Iterator[T]) Pointer() *T {
	return &it.blocks[it.slot][it.offset]
}

// Set overwrites the element at the iterator's position
func (it Iterator[T]) Set(value T) {
	it.blocks[it.slot][it.offset] = value
}

// At returns the element n positions after the iterator's position
func (it Iterator[T]) At(n int) T {
	return it.Add(n).Get()
}

func (it *Iterator[T]) Inc() {
	it.offset++
	if it.offset > it.mask() {
		it.slot++
		it.offset = 0
	}
}

func (it *Iterator[T]) Dec() {
	it.offset--
	if it.offset < 0 {
		it.slot--
		it.offset = it.mask()
	}
}

// Advance moves the iterator n positions toward the back. n may be negative.
func (it *Iterator[T]) Advance(n int) {
	pos := it.offset + n
	// Arithmetic shift rounds toward negative infinity, so this works for negative positions too
	it.slot += pos >> it.shift
	it.offset = pos & it.mask()
}

// Add returns an iterator n positions after this one
func (it Iterator[T]) Add(n int) Iterator[T] {
	it.Advance(n)
	return it
}

// Sub returns an iterator n positions before this one
func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.Advance(-n)
	return it
}

// Distance returns the number of positions between from and this iterator. It is negative if
// from is after this iterator.
func (it Iterator[T]) Distance(from Iterator[T]) int {
	return (it.slot-from.slot)<<it.shift + it.offset - from.offset
}

// Compare returns -1 if this iterator is before other, 1 if it is after, and 0 if both are at
// the same position
func (it Iterator[T]) Compare(other Iterator[T]) int {
	switch {
	case it.slot < other.slot:
		return -1
	case it.slot > other.slot:
		return 1
	case it.offset < other.offset:
		return -1
	case it.offset > other.offset:
		return 1
	default:
		return 0
	}
}

func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.Compare(other) < 0
}

func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.slot == other.slot && it.offset == other.offset
}

// ReverseIterator walks a Deque from back to front. It wraps an Iterator positioned one past
// the element it refers to, so RBegin wraps End and REnd wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Base returns the wrapped forward iterator, which is one position after this one's element
func (it ReverseIterator[T]) Base() Iterator[T] {
	return it.base
}

func (it ReverseIterator[T]) Get() T {
	return it.base.Sub(1).Get()
}

func (it ReverseIterator[T]) Pointer() *T {
	return it.base.Sub(1).Pointer()
}

func (it ReverseIterator[T]) Set(value T) {
	it.base.Sub(1).Set(value)
}

// At returns the element n positions after this iterator's position, in reverse order
func (it ReverseIterator[T]) At(n int) T {
	return it.Add(n).Get()
}

func (it *ReverseIterator[T]) Inc() {
	it.base.Dec()
}

func (it *ReverseIterator[T]) Dec() {
	it.base.Inc()
}

func (it *ReverseIterator[T]) Advance(n int) {
	it.base.Advance(-n)
}

func (it ReverseIterator[T]) Add(n int) ReverseIterator[T] {
	it.Advance(n)
	return it
}

func (it ReverseIterator[T]) Sub(n int) ReverseIterator[T] {
	it.Advance(-n)
	return it
}

func (it ReverseIterator[T]) Distance(from ReverseIterator[T]) int {
	return from.base.Distance(it.base)
}

func (it ReverseIterator[T]) Compare(other ReverseIterator[T]) int {
	return other.base.Compare(it.base)
}

func (it ReverseIterator[T]) Less(other ReverseIterator[T]) bool {
	return it.Compare(other) < 0
}

func (it ReverseIterator[T]) Equal(other ReverseIterator[T]) bool {
	return it.base.Equal(other.base)
}

// Begin returns an iterator positioned at the first element
func (d *Deque[T]) Begin() Iterator[T] {
	return Iterator[T]{
		blocks: d.blocks.Blocks(),
		slot:   d.firstBlock,
		offset: d.firstOffset,
		shift:  d.shift,
	}
}

// End returns an iterator positioned one past the last element
func (d *Deque[T]) End() Iterator[T] {
	return Iterator[T]{
		blocks: d.blocks.Blocks(),
		slot:   d.lastBlock,
		offset: d.lastOffset,
		shift:  d.shift,
	}
}

// RBegin returns a reverse iterator positioned at the last element
func (d *Deque[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: d.End()}
}

// REnd returns a reverse iterator positioned one before the first element
func (d *Deque[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: d.Begin()}
}
