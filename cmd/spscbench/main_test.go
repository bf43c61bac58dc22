// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"slices"
	"strings"
	"testing"

	"code.hybscloud.com/spscq"
	"code.hybscloud.com/spscq/internal/bench"
)

func TestPositionalCPUs(t *testing.T) {
	cfg := bench.DefaultConfig()
	if err := positionalCPUs([]string{"2", "3"}, &cfg); err != nil {
		t.Fatalf("positionalCPUs: %v", err)
	}
	if cfg.ConsumerCPU != 2 || cfg.ProducerCPU != 3 {
		t.Fatalf("cpus: got consumer=%d producer=%d", cfg.ConsumerCPU, cfg.ProducerCPU)
	}

	if err := positionalCPUs([]string{"1"}, &cfg); err == nil {
		t.Fatal("one positional arg: expected error")
	}
	if err := positionalCPUs([]string{"a", "1"}, &cfg); err == nil {
		t.Fatal("non-numeric cpu: expected error")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" spscq, ,chan,lfring ")
	want := []string{"spscq", "chan", "lfring"}
	if !slices.Equal(got, want) {
		t.Fatalf("splitList: got %v, want %v", got, want)
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-size", "1000"}, &stdout, &stderr)
	if !errors.Is(err, bench.ErrInvalidConfig) {
		t.Fatalf("run: got %v, want ErrInvalidConfig", err)
	}

	err = run(context.Background(), []string{"-queues", "boost"}, &stdout, &stderr)
	if !errors.Is(err, bench.ErrUnknownQueue) {
		t.Fatalf("run: got %v, want ErrUnknownQueue", err)
	}
}

func TestRunSmall(t *testing.T) {
	if spscq.RaceEnabled {
		t.Skip("skip: SPSC uses cross-variable memory ordering")
	}

	ops := "20000"
	switch {
	case runtime.GOMAXPROCS(0) < 2:
		ops = "200"
	case testing.Short():
		ops = "2000"
	}

	var stdout, stderr bytes.Buffer
	args := []string{
		"-n", ops, "-size", "1024", "-warmup", "0",
		"-wait", "backoff", "-queues", "spscq,chan", "-json",
		"--", "-1", "-1",
	}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\n%s", err, stderr.String())
	}

	table := stdout.String()
	for _, want := range []string{"QUEUE", "spscq", "chan", "throughput", "rtt"} {
		if !strings.Contains(table, want) {
			t.Fatalf("report missing %q:\n%s", want, table)
		}
	}

	first, _, _ := strings.Cut(stderr.String(), "\n")
	var rec map[string]any
	if err := json.Unmarshal([]byte(first), &rec); err != nil {
		t.Fatalf("first log line is not JSON: %q: %v", first, err)
	}
	if rec["msg"] != "host" {
		t.Fatalf("first log line: got msg %v, want host", rec["msg"])
	}
}
