// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spscq

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// Queue is a bounded wait-free single-producer single-consumer queue.
//
// Based on Lamport's ring buffer with cached index optimization.
// The producer caches the consumer's head, and the consumer caches the
// producer's tail. Each side reads the peer's cursor only when its cached
// copy says the queue is full (producer) or empty (consumer), which keeps
// cross-core cache line traffic off the common path.
//
// Cursors are slot indices in [0, capacity). One slot always stays vacant
// so that head == tail means empty and tail+1 == head means full; usable
// capacity is therefore capacity-1.
//
// Exactly one goroutine may call the producer methods (Emplace, Push,
// Enqueue) and exactly one other goroutine the consumer methods (Pop,
// Dequeue) for the lifetime of the queue. Size, Empty and Cap may be
// called from any goroutine.
//
// Memory: O(capacity) with no per-slot overhead
type Queue[T any] struct {
	_          cpu.CacheLinePad
	head       atomix.Uint64 // Consumer reads from here
	_          cpu.CacheLinePad
	tailCached uint64 // Consumer's cached view of tail
	_          cpu.CacheLinePad
	tail       atomix.Uint64 // Producer writes here
	_          cpu.CacheLinePad
	headCached uint64 // Producer's cached view of head
	_          cpu.CacheLinePad
	slots      arena[T]
	mask       uint64
}

// New creates a queue with capacity slots, capacity-1 of them usable.
//
// Capacity must be a power of 2 (1, 2, 4, ...). Any other value returns
// an error matching [ErrInvalidCapacity] and no queue.
func New[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &Queue[T]{
		slots: newArena[T](capacity),
		mask:  uint64(capacity - 1),
	}, nil
}

// MustNew is like [New] but panics if capacity is not a power of 2.
func MustNew[T any](capacity int) *Queue[T] {
	q, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return q
}

// Emplace constructs an element directly in the next free slot (producer only).
//
// construct receives the address of a vacant slot holding the zero value
// of T and fills it in. A nil construct enqueues the zero value. The
// element becomes visible to the consumer only after construct returns.
//
// Returns false with no side effect if the queue is full.
//
// If construct panics, the slot is reset to the zero value, the element is
// never published, and the panic propagates to the caller.
func (q *Queue[T]) Emplace(construct func(*T)) bool {
	tail := q.tail.LoadRelaxed()
	next := (tail + 1) & q.mask
	if next == q.headCached {
		q.headCached = q.head.LoadAcquire()
		if next == q.headCached {
			return false
		}
	}

	q.slots.constructInPlace(tail, construct)
	q.tail.StoreRelease(next)
	return true
}

// Push copies v into the queue (producer only).
// Returns false if the queue is full.
func (q *Queue[T]) Push(v T) bool {
	return q.Emplace(func(p *T) { *p = v })
}

// Pop moves the oldest element into *out (consumer only).
//
// The element's slot is vacated before the producer can reuse it. A nil
// out discards the element; a discarded element that implements
// [Destroyer] is destroyed.
//
// Returns false and leaves *out untouched if the queue is empty.
func (q *Queue[T]) Pop(out *T) bool {
	head := q.head.LoadRelaxed()
	if head == q.tailCached {
		q.tailCached = q.tail.LoadAcquire()
		if head == q.tailCached {
			return false
		}
	}

	q.slots.moveOut(head, out)
	q.head.StoreRelease((head + 1) & q.mask)
	return true
}

// Enqueue adds a copy of *elem to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *Queue[T]) Enqueue(elem *T) error {
	if !q.Emplace(func(p *T) { *p = *elem }) {
		return ErrWouldBlock
	}
	return nil
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	var elem T
	if !q.Pop(&elem) {
		return elem, ErrWouldBlock
	}
	return elem, nil
}

// Size returns the number of queued elements.
//
// The value is a snapshot of two independent loads. Under concurrent
// Emplace or Pop it may be stale by the time it returns; it is eventually
// consistent, not exact.
func (q *Queue[T]) Size() int {
	tail := q.tail.LoadAcquire()
	head := q.head.LoadAcquire()
	return int((tail - head) & q.mask)
}

// Empty reports whether the queue holds no elements.
// Same staleness caveat as Size.
func (q *Queue[T]) Empty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// Cap returns the usable capacity, one less than the slot count.
func (q *Queue[T]) Cap() int {
	return int(q.mask)
}

// Close drains the queue and releases its storage.
//
// Every element still queued is destroyed exactly once. After Close the
// queue has no storage: Emplace and Push report full, Pop reports empty
// and Cap returns 0. Close is idempotent.
//
// Close must only be called once the producer and the consumer have both
// stopped using the queue.
func (q *Queue[T]) Close() {
	for q.Pop(nil) {
	}
	q.slots.release()
	q.mask = 0
	q.head.StoreRelease(0)
	q.tail.StoreRelease(0)
	q.headCached = 0
	q.tailCached = 0
}
