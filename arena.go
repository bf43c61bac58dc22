// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spscq

import "unsafe"

// arena is a fixed block of element slots addressed by index.
//
// A slot is vacant (zero value) or holds one live element. The arena does
// not track which; the queue cursors do. Index arithmetic is unchecked:
// callers guarantee i < len(buf).
type arena[T any] struct {
	buf     []T
	size    uintptr // unsafe.Sizeof(T)
	destroy bool    // *T implements Destroyer
}

func newArena[T any](n int) arena[T] {
	var zero T
	_, destroy := any((*T)(nil)).(Destroyer)
	return arena[T]{
		buf:     make([]T, n),
		size:    unsafe.Sizeof(zero),
		destroy: destroy,
	}
}

// at returns the address of slot i.
// Pointer arithmetic avoids slice bounds checking in hot path.
// Equivalent to &a.buf[i]
func (a *arena[T]) at(i uint64) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(a.buf)), uintptr(i)*a.size))
}

// constructInPlace builds the element of slot i by handing its address to fn.
// The slot is vacant, so fn observes the zero value. If fn panics, the slot
// is zeroed again before the panic continues.
func (a *arena[T]) constructInPlace(i uint64, fn func(*T)) {
	if fn == nil {
		return
	}
	p := a.at(i)
	done := false
	defer func() {
		if !done {
			var zero T
			*p = zero
		}
	}()
	fn(p)
	done = true
}

// moveOut transfers the element of slot i to out and vacates the slot.
// A nil out discards the element, which then goes through Destroy.
func (a *arena[T]) moveOut(i uint64, out *T) {
	p := a.at(i)
	if out == nil {
		a.destroyInPlace(i)
		return
	}
	*out = *p
	var zero T
	*p = zero
}

// destroyInPlace ends the lifetime of the element of slot i.
// Zeroing the slot drops every reference it held.
func (a *arena[T]) destroyInPlace(i uint64) {
	p := a.at(i)
	if a.destroy {
		any(p).(Destroyer).Destroy()
	}
	var zero T
	*p = zero
}

// release drops the backing storage.
func (a *arena[T]) release() {
	a.buf = nil
}
