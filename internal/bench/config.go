// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"code.hybscloud.com/spscq/internal/affinity"
)

var (
	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("bench: invalid config")
	// ErrUnknownQueue is returned for a queue name with no registered Factory.
	ErrUnknownQueue = errors.New("bench: unknown queue")
	// ErrCorrupted is returned when a consumer receives an element that
	// differs from what the producer sent, or receives it out of order.
	ErrCorrupted = errors.New("bench: corrupted element")
)

// Defaults match the reference runs: ten million operations over a
// 64Ki-slot queue, consumer on CPU 0 and producer on CPU 1.
const (
	DefaultOps         = 10_000_000
	DefaultQueueSize   = 65536
	DefaultConsumerCPU = 0
	DefaultProducerCPU = 1
	DefaultWarmup      = time.Second
)

// Config describes a benchmark session.
type Config struct {
	// Ops is the number of elements moved per run.
	Ops uint64
	// QueueSize is the slot count of every queue under test; a power of 2.
	QueueSize int
	// ConsumerCPU and ProducerCPU select the execution units. -1 disables pinning.
	ConsumerCPU int
	ProducerCPU int
	// Warmup is slept by the pinned producer before the clock starts.
	Warmup time.Duration
	// Wait names the retry strategy used on full/empty: busy, spin or backoff.
	Wait string
	// Queues lists the registered queue names to compare, in order.
	Queues []string
	// RTT adds a round-trip run per queue.
	RTT bool

	// Binder pins goroutines. Nil uses affinity.OS().
	Binder affinity.Binder
	// Logger receives progress events. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration of the reference runs.
func DefaultConfig() Config {
	return Config{
		Ops:         DefaultOps,
		QueueSize:   DefaultQueueSize,
		ConsumerCPU: DefaultConsumerCPU,
		ProducerCPU: DefaultProducerCPU,
		Warmup:      DefaultWarmup,
		Wait:        WaitBusy,
		Queues:      []string{QueueSPSC},
		RTT:         true,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Ops == 0:
		return fmt.Errorf("%w: ops must be > 0", ErrInvalidConfig)
	case c.QueueSize < 2 || c.QueueSize&(c.QueueSize-1) != 0:
		return fmt.Errorf("%w: queue size %d is not a power of 2 >= 2", ErrInvalidConfig, c.QueueSize)
	case c.ConsumerCPU < -1 || c.ProducerCPU < -1:
		return fmt.Errorf("%w: cpu must be >= -1 (consumer %d, producer %d)",
			ErrInvalidConfig, c.ConsumerCPU, c.ProducerCPU)
	case c.Warmup < 0:
		return fmt.Errorf("%w: negative warmup %v", ErrInvalidConfig, c.Warmup)
	case len(c.Queues) == 0:
		return fmt.Errorf("%w: no queues selected", ErrInvalidConfig)
	}
	if _, err := NewWaiter(c.Wait); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, name := range c.Queues {
		if _, err := Lookup(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c *Config) binder() affinity.Binder {
	if c.Binder == nil {
		return affinity.OS()
	}
	return c.Binder
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
