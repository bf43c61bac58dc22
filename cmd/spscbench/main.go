// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command spscbench measures spscq throughput and round-trip latency
// between two pinned CPUs and compares it with other bounded queues.
//
// Usage:
//
//	spscbench [flags] [consumer-cpu producer-cpu]
//	spscbench -n 10000000 -size 65536 -queues spscq,lfring,chan 0 2
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"unsafe"

	"code.hybscloud.com/spscq/internal/bench"
	"github.com/pbnjay/memory"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, "spscbench:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := bench.DefaultConfig()

	fs := flag.NewFlagSet("spscbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Uint64Var(&cfg.Ops, "n", cfg.Ops, "operations per run")
	fs.IntVar(&cfg.QueueSize, "size", cfg.QueueSize, "queue slots (power of 2)")
	fs.IntVar(&cfg.ConsumerCPU, "consumer-cpu", cfg.ConsumerCPU, "CPU for the consumer, -1 to leave unpinned")
	fs.IntVar(&cfg.ProducerCPU, "producer-cpu", cfg.ProducerCPU, "CPU for the producer, -1 to leave unpinned")
	fs.DurationVar(&cfg.Warmup, "warmup", cfg.Warmup, "producer warmup before the clock starts")
	fs.StringVar(&cfg.Wait, "wait", cfg.Wait, "retry strategy on full/empty: busy, spin or backoff")
	fs.BoolVar(&cfg.RTT, "rtt", cfg.RTT, "also measure round-trip latency")
	queues := fs.String("queues", strings.Join(cfg.Queues, ","),
		"comma-separated queues to compare: "+strings.Join(bench.Names(), ", "))
	jsonLogs := fs.Bool("json", false, "write JSON logs even on a terminal")
	verbose := fs.Bool("v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := positionalCPUs(fs.Args(), &cfg); err != nil {
		return err
	}
	cfg.Queues = splitList(*queues)
	cfg.Logger = newLogger(stderr, *jsonLogs, *verbose)

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.Logger.Info("host",
		"goos", runtime.GOOS,
		"goarch", runtime.GOARCH,
		"num_cpu", runtime.NumCPU(),
		"gomaxprocs", runtime.GOMAXPROCS(0),
		"total_memory", memory.TotalMemory(),
		"free_memory", memory.FreeMemory(),
		"payload_bytes", unsafe.Sizeof(bench.Telemetry{}),
	)

	results, err := bench.Run(ctx, cfg)
	if len(results) > 0 {
		if rerr := bench.Report(stdout, results); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

// positionalCPUs accepts "consumer-cpu producer-cpu" after the flags.
func positionalCPUs(args []string, cfg *bench.Config) error {
	switch len(args) {
	case 0:
		return nil
	case 2:
	default:
		return fmt.Errorf("expected 0 or 2 positional cpus, got %d", len(args))
	}
	consumer, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("consumer cpu %q: %w", args[0], err)
	}
	producer, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("producer cpu %q: %w", args[1], err)
	}
	cfg.ConsumerCPU, cfg.ProducerCPU = consumer, producer
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(w io.Writer, forceJSON, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if !forceJSON && isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
