// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spscq_test

import (
	"reflect"
	"testing"
	"unsafe"

	"code.hybscloud.com/spscq"
	"golang.org/x/sys/cpu"
)

// =============================================================================
// Cached Cursors
// =============================================================================

// TestProducerCacheRefreshedOnlyWhenFull checks that the producer trusts
// its stale view of head until that view reports the queue full.
func TestProducerCacheRefreshedOnlyWhenFull(t *testing.T) {
	q := spscq.MustNew[int](8)

	for i := range 7 {
		q.Push(i)
	}
	head, tail, headCached, _ := q.Cursors()
	if head != 0 || tail != 7 {
		t.Fatalf("cursors: got head=%d tail=%d, want 0, 7", head, tail)
	}
	if headCached != 0 {
		t.Fatalf("headCached: got %d, want 0", headCached)
	}

	for range 3 {
		q.Pop(nil)
	}
	// Consumer progress is not seen until the cached view says full.
	if _, _, headCached, _ = q.Cursors(); headCached != 0 {
		t.Fatalf("headCached after pops: got %d, want 0 (no refresh)", headCached)
	}

	if !q.Push(7) {
		t.Fatal("Push after pops: got false")
	}
	if _, _, headCached, _ = q.Cursors(); headCached != 3 {
		t.Fatalf("headCached after refresh: got %d, want 3", headCached)
	}

	// Two more pushes fit without touching head again.
	q.Push(8)
	q.Push(9)
	if _, _, headCached, _ = q.Cursors(); headCached != 3 {
		t.Fatalf("headCached: got %d, want 3", headCached)
	}
	if q.Push(10) {
		t.Fatal("Push on full: got true")
	}
}

// TestConsumerCacheRefreshedOnlyWhenEmpty is the mirror of the producer case.
func TestConsumerCacheRefreshedOnlyWhenEmpty(t *testing.T) {
	q := spscq.MustNew[int](8)

	q.Push(1)
	q.Push(2)
	if _, _, _, tailCached := q.Cursors(); tailCached != 0 {
		t.Fatalf("tailCached before pop: got %d, want 0", tailCached)
	}

	var v int
	q.Pop(&v)
	if _, _, _, tailCached := q.Cursors(); tailCached != 2 {
		t.Fatalf("tailCached after first pop: got %d, want 2", tailCached)
	}

	q.Push(3)
	q.Pop(&v)
	// head=2 has not caught up with the cached tail, so no refresh yet.
	if _, _, _, tailCached := q.Cursors(); tailCached != 2 {
		t.Fatalf("tailCached: got %d, want 2", tailCached)
	}

	q.Pop(&v)
	if v != 3 {
		t.Fatalf("Pop: got %d, want 3", v)
	}
	if _, _, _, tailCached := q.Cursors(); tailCached != 3 {
		t.Fatalf("tailCached after refresh: got %d, want 3", tailCached)
	}
}

// =============================================================================
// Layout
// =============================================================================

// TestHotFieldsOnSeparateCacheLines verifies that fields written by
// different goroutines never share a cache line.
func TestHotFieldsOnSeparateCacheLines(t *testing.T) {
	line := unsafe.Sizeof(cpu.CacheLinePad{})
	typ := reflect.TypeFor[spscq.Queue[int]]()

	offset := func(name string) uintptr {
		field, ok := typ.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %q", name)
		}
		return field.Offset
	}

	fields := []string{"head", "tailCached", "tail", "headCached", "slots"}
	for i := 1; i < len(fields); i++ {
		prev, cur := offset(fields[i-1]), offset(fields[i])
		if cur-prev < line {
			t.Fatalf("%s at %d and %s at %d share a %d-byte line",
				fields[i-1], prev, fields[i], cur, line)
		}
	}
	if offset("head") < line {
		t.Fatalf("head offset %d: want leading pad of %d bytes", offset("head"), line)
	}
}
