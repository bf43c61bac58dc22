// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spscq provides a bounded wait-free single-producer
// single-consumer queue for fixed-size payloads.
//
// The queue is built for latency-critical hand-off between exactly two
// goroutines, typically each locked to its own OS thread and pinned to its
// own core. Every operation returns immediately: there are no locks, no
// parking and no timeouts inside the queue.
//
// # Quick Start
//
//	q, err := spscq.New[Telemetry](65536) // power of 2; 65535 usable
//	if err != nil {
//	    return err // errors.Is(err, spscq.ErrInvalidCapacity)
//	}
//
//	// Producer goroutine: construct in place
//	for !q.Emplace(func(t *Telemetry) { t.ID = id; t.Pitch = p }) {
//	    // full - retry, spin or back off
//	}
//
//	// Consumer goroutine
//	var t Telemetry
//	for !q.Pop(&t) {
//	    // empty - retry, spin or back off
//	}
//
// # Capacity
//
// Capacity must be a power of 2. One slot always stays vacant so that
// the full and empty cursor states differ, so a queue of capacity n holds
// at most n-1 elements ([Queue.Cap]). A capacity that is not a power of 2
// is the only hard error, returned by [New] as [ErrInvalidCapacity].
//
// # Full and Empty
//
// Full and empty are steady-state conditions, reported as false from
// Emplace, Push and Pop, or as [ErrWouldBlock] from Enqueue and Dequeue.
// The queue never retries on the caller's behalf. Callers that want to
// wait layer their own loop on top:
//
//	backoff := iox.Backoff{}
//	for !q.Push(v) {
//	    if ctx.Err() != nil {
//	        return ctx.Err()
//	    }
//	    backoff.Wait()
//	}
//	backoff.Reset()
//
// # Memory Ordering
//
// The producer publishes tail with a release store after the element is
// fully constructed; the consumer loads tail with acquire before reading
// the slot. Symmetrically the consumer publishes head with release after
// the slot is vacated and the producer loads head with acquire before
// reusing it. Neither side ever observes a partially written slot.
//
// Each side keeps a plain cached copy of the peer cursor and reloads the
// real cursor only when the cached copy says full (producer) or empty
// (consumer).
//
// # Element Lifetime
//
// Elements are constructed in place by Emplace (or copied by Push) and
// vacated by Pop. A popped element belongs to the caller. Elements the
// queue discards, through Pop(nil) or the drain in [Queue.Close], are
// destroyed: if *T implements [Destroyer] its Destroy method runs exactly
// once per element, and the slot is zeroed so referenced memory can be
// collected.
//
// These guarantees assume constructors passed to Emplace and Destroy
// methods return normally. A panic in either propagates to the caller.
//
// # Thread Safety
//
//   - Emplace, Push, Enqueue: producer goroutine only
//   - Pop, Dequeue: consumer goroutine only
//   - Size, Empty, Cap: any goroutine; advisory snapshots
//   - Close: only after both producer and consumer have stopped
//
// Using more than one producer or consumer is undefined behavior.
//
// # Race Detection
//
// Go's race detector does not model the acquire/release pairing on
// separate variables used here, so it reports false positives on
// concurrent use. Concurrent tests are skipped when [RaceEnabled] is true.
// Freedom from data races on element slots follows from the ordering
// argument in Memory Ordering: each slot is written before the release
// store that publishes it and read only after the acquire load that
// observes it. The race detector does not check it.
package spscq
