// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spscq

// Cursors exposes the cursor state for white-box tests.
func (q *Queue[T]) Cursors() (head, tail, headCached, tailCached uint64) {
	return q.head.LoadRelaxed(), q.tail.LoadRelaxed(), q.headCached, q.tailCached
}
