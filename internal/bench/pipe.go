// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"
	"maps"
	"slices"

	"code.hybscloud.com/spscq"
	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Registered queue names.
const (
	QueueSPSC     = "spscq"      // spscq.Queue, elements constructed in place
	QueueSPSCPush = "spscq-push" // spscq.Queue, elements copied in
	QueueLFRing   = "lfring"     // go-lock-free-ring ShardedRing, one shard
	QueueChan     = "chan"       // buffered channel
)

// Pipe adapts a bounded queue of Telemetry to the benchmark loops.
// Send and Forward are producer-side, Recv is consumer-side; none blocks.
type Pipe interface {
	// Send enqueues Sample(id).
	Send(id uint64) bool
	// Forward enqueues a copy of *t.
	Forward(t *Telemetry) bool
	// Recv dequeues into *out.
	Recv(out *Telemetry) bool
	// Close releases the queue once both sides have stopped.
	Close()
}

// Factory builds a Pipe with size slots.
type Factory func(size int) (Pipe, error)

var registry = map[string]Factory{
	QueueSPSC:     newSPSCPipe,
	QueueSPSCPush: newSPSCPushPipe,
	QueueLFRing:   newLFRingPipe,
	QueueChan:     newChanPipe,
}

// Lookup returns the Factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownQueue, name, Names())
	}
	return f, nil
}

// Names returns the registered queue names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// spscPipe constructs each element directly in its slot.
type spscPipe struct {
	q *spscq.Queue[Telemetry]
}

func newSPSCPipe(size int) (Pipe, error) {
	q, err := spscq.New[Telemetry](size)
	if err != nil {
		return nil, err
	}
	return spscPipe{q: q}, nil
}

func (p spscPipe) Send(id uint64) bool {
	return p.q.Emplace(func(t *Telemetry) {
		t.ID = id
		t.Pitch, t.Roll, t.Yaw = 0.1, 0.2, 0.3
		t.Thrust = 0.5
		t.Status = 1
	})
}

func (p spscPipe) Forward(t *Telemetry) bool { return p.q.Enqueue(t) == nil }
func (p spscPipe) Recv(out *Telemetry) bool  { return p.q.Pop(out) }
func (p spscPipe) Close()                    { p.q.Close() }

// spscPushPipe builds the element on the producer's stack and copies it in.
type spscPushPipe struct {
	spscPipe
}

func newSPSCPushPipe(size int) (Pipe, error) {
	q, err := spscq.New[Telemetry](size)
	if err != nil {
		return nil, err
	}
	return spscPushPipe{spscPipe{q: q}}, nil
}

func (p spscPushPipe) Send(id uint64) bool { return p.q.Push(Sample(id)) }

// lfringPipe is the third-party comparison: an MPSC sharded ring used
// with a single producer.
type lfringPipe struct {
	r *ring.ShardedRing
}

func newLFRingPipe(size int) (Pipe, error) {
	r, err := ring.NewShardedRing(uint64(size), 1)
	if err != nil {
		return nil, fmt.Errorf("bench: lfring: %w", err)
	}
	return lfringPipe{r: r}, nil
}

func (p lfringPipe) Send(id uint64) bool       { return p.r.Write(0, Sample(id)) }
func (p lfringPipe) Forward(t *Telemetry) bool { return p.r.Write(0, *t) }

func (p lfringPipe) Recv(out *Telemetry) bool {
	v, ok := p.r.TryRead()
	if !ok {
		return false
	}
	*out = v.(Telemetry)
	return true
}

func (p lfringPipe) Close() {}

// chanPipe is the runtime baseline. It holds size-1 elements to match the
// usable capacity of the ring.
type chanPipe struct {
	ch chan Telemetry
}

func newChanPipe(size int) (Pipe, error) {
	return chanPipe{ch: make(chan Telemetry, size-1)}, nil
}

func (p chanPipe) Send(id uint64) bool {
	select {
	case p.ch <- Sample(id):
		return true
	default:
		return false
	}
}

func (p chanPipe) Forward(t *Telemetry) bool {
	select {
	case p.ch <- *t:
		return true
	default:
		return false
	}
}

func (p chanPipe) Recv(out *Telemetry) bool {
	select {
	case *out = <-p.ch:
		return true
	default:
		return false
	}
}

func (p chanPipe) Close() {}
