// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spscq

// Producer is the error-returning interface for the enqueue side.
//
// The element is passed by pointer to avoid copying large structs on the
// call. The queue stores a copy of the pointed-to value, so the original
// can be modified after Enqueue returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	Enqueue(elem *T) error
}

// Consumer is the error-returning interface for the dequeue side.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the queue (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// Destroyer is implemented by payload types that own resources which must
// be released when an element is discarded by the queue.
//
// The queue calls Destroy on a resident element that no caller received:
// elements discarded by Pop(nil) and elements still queued at Close. An
// element moved out through Pop or Dequeue belongs to the caller and is
// not destroyed by the queue.
//
// Destroy must not panic. The queue's no-corruption guarantee holds only
// for payloads whose Destroy returns normally.
type Destroyer interface {
	Destroy()
}

var (
	_ Producer[int] = (*Queue[int])(nil)
	_ Consumer[int] = (*Queue[int])(nil)
)
