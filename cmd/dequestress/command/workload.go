package dequestress

import (
	"bytes"
	"math/rand"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/arsenal/deque"
	"github.com/vkngwrapper/arsenal/deque/allocator"
	"github.com/vkngwrapper/arsenal/deque/memutils"
	"golang.org/x/exp/slog"
)

// Config describes one randomized workload
type Config struct {
	Ops        int
	BlockSize  int
	MapSize    int
	Seed       int64
	Symmetric  bool
	MaxBlocks  int
	CheckEvery int
}

type opKind int

const (
	opPushBack opKind = iota
	opPushFront
	opPopBack
	opPopFront
	opInsert
	opErase
	opAt
	opSet
	opClone
	opClear
	opCount
)

var opNames = [opCount]string{
	opPushBack:  "PushBack",
	opPushFront: "PushFront",
	opPopBack:   "PopBack",
	opPopFront:  "PopFront",
	opInsert:    "Insert",
	opErase:     "Erase",
	opAt:        "At",
	opSet:       "Set",
	opClone:     "Clone",
	opClear:     "Clear",
}

// Weights out of 100. Pushes outnumber pops so the deque keeps growing
var opWeights = [opCount]int{
	opPushBack:  25,
	opPushFront: 20,
	opPopBack:   15,
	opPopFront:  15,
	opInsert:    5,
	opErase:     5,
	opAt:        8,
	opSet:       5,
	opClone:     1,
	opClear:     1,
}

// OpStats counts how often an operation ran and how often the allocator's block budget
// turned it away
type OpStats struct {
	Name     string
	Count    int
	Rejected int
}

type Report struct {
	Ops        []OpStats
	Operations int
	Length     int
	Stats      memutils.DetailedStatistics
	Elapsed    time.Duration
	StatsJSON  string
}

// entry carries a heap payload so that copies made by the deque must be deep
type entry struct {
	id      int64
	payload []byte
}

func (e entry) Clone() (entry, error) {
	return entry{id: e.id, payload: slices.Clone(e.payload)}, nil
}

func (e entry) equal(other entry) bool {
	return e.id == other.id && bytes.Equal(e.payload, other.payload)
}

type runner struct {
	rng       *rand.Rand
	deque     *deque.Deque[entry]
	tracking  *allocator.TrackingAllocator[entry]
	reference []entry
	nextID    int64
	ops       [opCount]OpStats
}

// Run drives a deque through config.Ops random operations, mirroring each one on a plain
// slice and comparing the two every config.CheckEvery operations and at the end
func Run(logger *slog.Logger, config Config) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	heap := allocator.NewHeapAllocator[entry](allocator.CreateOptions{
		Flags:         allocator.CreateExternallySynchronized,
		MaxBlockCount: config.MaxBlocks,
	})
	tracking := allocator.NewTrackingAllocator[entry](logger, heap, false)

	var flags deque.CreateFlags
	if config.Symmetric {
		flags |= deque.CreateSymmetricGrowth
	}

	d, err := deque.New[entry](logger, tracking, deque.CreateOptions{
		Flags:          flags,
		BlockSize:      config.BlockSize,
		InitialMapSize: config.MapSize,
	})
	if err != nil {
		return nil, err
	}

	r := &runner{
		rng:      rand.New(rand.NewSource(config.Seed)),
		deque:    d,
		tracking: tracking,
	}
	for op := opKind(0); op < opCount; op++ {
		r.ops[op].Name = opNames[op]
	}

	start := time.Now()
	for i := 0; i < config.Ops; i++ {
		err = r.step()
		if err == nil && config.CheckEvery > 0 && (i+1)%config.CheckEvery == 0 {
			err = r.check()
		}
		if err != nil {
			_ = d.Destroy()
			return nil, errors.Wrapf(err, "operation %d", i)
		}
	}

	err = r.check()
	if err != nil {
		_ = d.Destroy()
		return nil, err
	}

	report := &Report{
		Ops:        r.ops[:],
		Operations: config.Ops,
		Length:     d.Len(),
		Elapsed:    time.Since(start),
		StatsJSON:  d.BuildStatsString(true),
	}
	report.Stats.Clear()
	d.AddDetailedStatistics(&report.Stats)

	err = d.Destroy()
	if err != nil {
		return nil, err
	}

	return report, tracking.Close()
}

func (r *runner) pick() opKind {
	roll := r.rng.Intn(100)
	for op, weight := range opWeights {
		if roll < weight {
			return opKind(op)
		}
		roll -= weight
	}
	return opPushBack
}

func (r *runner) newEntry() entry {
	r.nextID++
	return entry{id: r.nextID, payload: []byte(strconv.FormatInt(r.nextID, 16))}
}

// rejected reports whether err is the allocator running out of blocks, in which case the
// deque must not have changed
func (r *runner) rejected(op opKind, err error) (bool, error) {
	if !errors.Is(err, allocator.ErrOutOfBlockBudget) {
		return false, err
	}

	r.ops[op].Rejected++
	if r.deque.Len() != len(r.reference) {
		return true, errors.Newf("%s was rejected but changed the length from %d to %d", opNames[op], len(r.reference), r.deque.Len())
	}
	return true, nil
}

func (r *runner) step() error {
	op := r.pick()
	r.ops[op].Count++
	size := len(r.reference)

	switch op {
	case opPushBack:
		value := r.newEntry()
		if rejected, err := r.rejected(op, r.deque.PushBack(value)); rejected || err != nil {
			return err
		}
		r.reference = append(r.reference, value)

	case opPushFront:
		value := r.newEntry()
		if rejected, err := r.rejected(op, r.deque.PushFront(value)); rejected || err != nil {
			return err
		}
		r.reference = slices.Insert(r.reference, 0, value)

	case opPopBack:
		value, ok := r.deque.PopBack()
		if ok != (size > 0) {
			return errors.Newf("PopBack reported %t on a deque of %d elements", ok, size)
		}
		if ok {
			if !value.equal(r.reference[size-1]) {
				return errors.Newf("PopBack returned %d, expected %d", value.id, r.reference[size-1].id)
			}
			r.reference = r.reference[:size-1]
		}

	case opPopFront:
		value, ok := r.deque.PopFront()
		if ok != (size > 0) {
			return errors.Newf("PopFront reported %t on a deque of %d elements", ok, size)
		}
		if ok {
			if !value.equal(r.reference[0]) {
				return errors.Newf("PopFront returned %d, expected %d", value.id, r.reference[0].id)
			}
			r.reference = slices.Delete(r.reference, 0, 1)
		}

	case opInsert:
		index := r.rng.Intn(size + 1)
		value := r.newEntry()
		if rejected, err := r.rejected(op, r.deque.Insert(index, value)); rejected || err != nil {
			return err
		}
		r.reference = slices.Insert(r.reference, index, value)

	case opErase:
		if size == 0 {
			if err := r.deque.Erase(0); !errors.Is(err, deque.ErrIndexOutOfRange) {
				return errors.Newf("Erase on an empty deque returned %v", err)
			}
			return nil
		}

		index := r.rng.Intn(size)
		if err := r.deque.Erase(index); err != nil {
			return err
		}
		r.reference = slices.Delete(r.reference, index, index+1)

	case opAt:
		index := r.rng.Intn(size+2) - 1
		value, err := r.deque.At(index)
		if index < 0 || index >= size {
			if !errors.Is(err, deque.ErrIndexOutOfRange) {
				return errors.Newf("At(%d) on a deque of %d elements returned %v", index, size, err)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if !value.equal(r.reference[index]) {
			return errors.Newf("At(%d) returned %d, expected %d", index, value.id, r.reference[index].id)
		}

	case opSet:
		if size == 0 {
			return nil
		}
		index := r.rng.Intn(size)
		value := r.newEntry()
		if err := r.deque.Set(index, value); err != nil {
			return err
		}
		r.reference[index] = value

	case opClone:
		clone, err := r.deque.Clone()
		if rejected, err := r.rejected(op, err); rejected || err != nil {
			return err
		}
		err = r.compare(clone)
		if destroyErr := clone.Destroy(); err == nil {
			err = destroyErr
		}
		return err

	case opClear:
		r.deque.Clear()
		r.reference = r.reference[:0]
	}

	return nil
}

func (r *runner) compare(d *deque.Deque[entry]) error {
	if d.Len() != len(r.reference) {
		return errors.Newf("deque holds %d elements, expected %d", d.Len(), len(r.reference))
	}

	for index, value := range d.All() {
		if !value.equal(r.reference[index]) {
			return errors.Newf("element %d is %d, expected %d", index, value.id, r.reference[index].id)
		}
	}

	return nil
}

func (r *runner) check() error {
	err := r.deque.Validate()
	if err != nil {
		return err
	}

	err = r.tracking.Validate()
	if err != nil {
		return err
	}

	if r.tracking.LiveElements() != len(r.reference) {
		return errors.Newf("allocator holds %d live elements, expected %d", r.tracking.LiveElements(), len(r.reference))
	}

	return r.compare(r.deque)
}
