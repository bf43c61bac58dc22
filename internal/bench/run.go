// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spscq/internal/affinity"
	"golang.org/x/sync/errgroup"
)

// Run executes the throughput run, and the round-trip run when cfg.RTT is
// set, for every queue in cfg.Queues. It stops at the first failure and
// returns the results gathered so far.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	results := make([]Result, 0, 2*len(cfg.Queues))
	for _, name := range cfg.Queues {
		log.Info("throughput run", "queue", name, "ops", cfg.Ops,
			"producer_cpu", cfg.ProducerCPU, "consumer_cpu", cfg.ConsumerCPU)
		r, err := Throughput(ctx, cfg, name)
		if err != nil {
			return results, fmt.Errorf("bench: %s throughput: %w", name, err)
		}
		log.Info("throughput done", "queue", name,
			"ops_per_ms", r.OpsPerMs(), "ns_per_op", r.NsPerOp())
		results = append(results, r)

		if !cfg.RTT {
			continue
		}
		log.Info("round-trip run", "queue", name, "ops", cfg.Ops)
		r, err = RoundTrip(ctx, cfg, name)
		if err != nil {
			return results, fmt.Errorf("bench: %s round trip: %w", name, err)
		}
		log.Info("round-trip done", "queue", name, "rtt_ns", r.NsPerOp())
		results = append(results, r)
	}
	return results, nil
}

// Throughput moves cfg.Ops elements through one queue, from a producer on
// cfg.ProducerCPU to a consumer on cfg.ConsumerCPU. The clock starts when
// the producer releases the waiting consumer after the warmup and stops
// when the consumer has received the last element. Every element is
// checked against Sample in order.
func Throughput(ctx context.Context, cfg Config, name string) (Result, error) {
	newPipe, err := Lookup(name)
	if err != nil {
		return Result{}, err
	}
	p, err := newPipe(cfg.QueueSize)
	if err != nil {
		return Result{}, err
	}
	defer p.Close()

	g, gctx := errgroup.WithContext(ctx)
	var stop, start atomix.Bool
	defer context.AfterFunc(gctx, func() { stop.Store(true) })()

	var begin, end time.Time

	// Consumer
	g.Go(func() error {
		if err := pin(&cfg, cfg.ConsumerCPU, "consumer"); err != nil {
			return err
		}
		w, err := NewWaiter(cfg.Wait)
		if err != nil {
			return err
		}
		for !start.Load() {
			if stop.Load() {
				return context.Cause(gctx)
			}
		}

		var got Telemetry
		for i := range cfg.Ops {
			for !p.Recv(&got) {
				if stop.Load() {
					return context.Cause(gctx)
				}
				w.Wait()
			}
			w.Reset()
			if got != Sample(i) {
				return fmt.Errorf("%w: element %d: got %+v", ErrCorrupted, i, got)
			}
		}
		end = time.Now()
		return nil
	})

	// Producer
	g.Go(func() error {
		if err := pin(&cfg, cfg.ProducerCPU, "producer"); err != nil {
			return err
		}
		w, err := NewWaiter(cfg.Wait)
		if err != nil {
			return err
		}
		if err := sleep(gctx, cfg.Warmup); err != nil {
			return err
		}

		begin = time.Now()
		start.Store(true)
		for i := range cfg.Ops {
			for !p.Send(i) {
				if stop.Load() {
					return context.Cause(gctx)
				}
				w.Wait()
			}
			w.Reset()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Queue: name, Kind: KindThroughput, Ops: cfg.Ops, Elapsed: end.Sub(begin)}, nil
}

// RoundTrip measures request/response latency over a pair of queues. The
// producer sends a request and waits for the echo before sending the next;
// an echo goroutine on cfg.ConsumerCPU forwards each request unchanged.
func RoundTrip(ctx context.Context, cfg Config, name string) (Result, error) {
	newPipe, err := Lookup(name)
	if err != nil {
		return Result{}, err
	}
	req, err := newPipe(cfg.QueueSize)
	if err != nil {
		return Result{}, err
	}
	defer req.Close()
	resp, err := newPipe(cfg.QueueSize)
	if err != nil {
		return Result{}, err
	}
	defer resp.Close()

	g, gctx := errgroup.WithContext(ctx)
	var stop atomix.Bool
	defer context.AfterFunc(gctx, func() { stop.Store(true) })()

	var elapsed time.Duration

	// Echo
	g.Go(func() error {
		if err := pin(&cfg, cfg.ConsumerCPU, "echo"); err != nil {
			return err
		}
		w, err := NewWaiter(cfg.Wait)
		if err != nil {
			return err
		}
		var t Telemetry
		for range cfg.Ops {
			for !req.Recv(&t) {
				if stop.Load() {
					return context.Cause(gctx)
				}
				w.Wait()
			}
			w.Reset()
			for !resp.Forward(&t) {
				if stop.Load() {
					return context.Cause(gctx)
				}
				w.Wait()
			}
			w.Reset()
		}
		return nil
	})

	// Requester
	g.Go(func() error {
		if err := pin(&cfg, cfg.ProducerCPU, "requester"); err != nil {
			return err
		}
		w, err := NewWaiter(cfg.Wait)
		if err != nil {
			return err
		}

		var got Telemetry
		begin := time.Now()
		for i := range cfg.Ops {
			for !req.Send(i) {
				if stop.Load() {
					return context.Cause(gctx)
				}
				w.Wait()
			}
			w.Reset()
			for !resp.Recv(&got) {
				if stop.Load() {
					return context.Cause(gctx)
				}
				w.Wait()
			}
			w.Reset()
			if got != Sample(i) {
				return fmt.Errorf("%w: echo %d: got %+v", ErrCorrupted, i, got)
			}
		}
		elapsed = time.Since(begin)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Queue: name, Kind: KindRoundTrip, Ops: cfg.Ops, Elapsed: elapsed}, nil
}

// pin binds the calling goroutine for role. Platforms without affinity
// support run unpinned with a warning.
func pin(cfg *Config, cpu int, role string) error {
	err := cfg.binder().Bind(cpu)
	switch {
	case err == nil:
		cfg.logger().Debug("pinned", "role", role, "cpu", cpu)
		return nil
	case errors.Is(err, affinity.ErrUnsupported):
		cfg.logger().Warn("affinity unsupported, running unpinned", "role", role, "cpu", cpu)
		return nil
	}
	return fmt.Errorf("bench: pin %s to cpu %d: %w", role, cpu, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-t.C:
		return nil
	}
}
