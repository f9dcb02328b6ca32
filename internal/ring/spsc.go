// Package ring implements a bounded, lock-free, single-producer/
// single-consumer FIFO queue using the Vyukov per-slot sequence-number
// protocol: no CAS on the hot path, only atomic loads and stores with
// acquire/release pairing.
package ring

import (
	"runtime"
	"sync/atomic"
)

// cacheLineSize is the padding unit used to keep head, tail, and the slot
// array from sharing a cache line across producer and consumer.
const cacheLineSize = 64

// slot holds one element plus its availability sequence number. seq is
// initialized to the slot's index; a slot is writable by the producer when
// seq == position, and readable by the consumer when seq == position+1.
type slot[T any] struct {
	seq   atomic.Uint64
	value T
}

// SPSCQueue is a bounded lock-free ring of capacity N, a power of two fixed
// when New is called, shared by exactly one producer goroutine and one
// consumer goroutine.
type SPSCQueue[T any] struct {
	slots []slot[T]
	mask  uint64

	_pad0 [cacheLineSize]byte
	head  atomic.Uint64 // producer position

	_pad1 [cacheLineSize]byte
	tail  atomic.Uint64 // consumer position

	_pad2 [cacheLineSize]byte
}

// DefaultCapacity is the ring size used when a run doesn't need to tune it.
const DefaultCapacity = 4096

// New allocates a ring of the given capacity, which must be a power of two.
func New[T any](capacity int) *SPSCQueue[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a positive power of two")
	}
	q := &SPSCQueue[T]{
		slots: make([]slot[T], capacity),
		mask:  uint64(capacity - 1),
	}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// TryPush attempts to enqueue v without blocking. It returns false if the
// ring is full. Safe for exactly one producer goroutine.
func (q *SPSCQueue[T]) TryPush(v T) bool {
	pos := q.head.Load()
	s := &q.slots[pos&q.mask]
	if s.seq.Load() != pos {
		return false
	}
	q.head.Store(pos + 1)
	s.value = v
	s.seq.Store(pos + 1)
	return true
}

// Push enqueues v, spinning with a CPU-yield hint while the ring is full.
// Safe for exactly one producer goroutine.
func (q *SPSCQueue[T]) Push(v T) {
	pos := q.head.Load()
	s := &q.slots[pos&q.mask]
	for s.seq.Load() != pos {
		spinWait()
	}
	q.head.Store(pos + 1)
	s.value = v
	s.seq.Store(pos + 1)
}

// TryPop attempts to dequeue without blocking. It returns the zero value
// and false if the ring is empty. Safe for exactly one consumer goroutine.
func (q *SPSCQueue[T]) TryPop() (T, bool) {
	pos := q.tail.Load()
	s := &q.slots[pos&q.mask]
	if s.seq.Load() != pos+1 {
		var zero T
		return zero, false
	}
	q.tail.Store(pos + 1)
	v := s.value
	var zero T
	s.value = zero
	s.seq.Store(pos + uint64(len(q.slots)))
	return v, true
}

// PopBlocking dequeues the next element, spinning while the ring is empty.
// closed is an externally owned flag the producer sets (with release
// ordering) after its last push. PopBlocking returns ok == false only once
// the ring is observed empty *after* closed was seen true — a final re-check
// closes the race where the producer writes a slot between the two loads.
func (q *SPSCQueue[T]) PopBlocking(closed *atomic.Bool) (T, bool) {
	pos := q.tail.Load()
	s := &q.slots[pos&q.mask]
	for {
		if s.seq.Load() == pos+1 {
			break
		}
		if closed.Load() {
			if s.seq.Load() != pos+1 {
				var zero T
				return zero, false
			}
			break
		}
		spinWait()
	}
	q.tail.Store(pos + 1)
	v := s.value
	var zero T
	s.value = zero
	s.seq.Store(pos + uint64(len(q.slots)))
	return v, true
}

// spinWait yields briefly to the scheduler. Go exposes no portable PAUSE
// intrinsic without cgo or per-arch assembly, so runtime.Gosched stands in
// here — for an SPSC ring with a fast consumer the loop body runs only a
// handful of iterations in practice.
func spinWait() {
	runtime.Gosched()
}
