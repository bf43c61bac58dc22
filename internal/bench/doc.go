// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bench drives spscq and comparison queues through pinned
// producer/consumer runs.
//
// Two runs are available per queue:
//
//   - Throughput: one producer streams Config.Ops elements to one
//     consumer. Reports operations per millisecond and ns per operation.
//   - RoundTrip: a requester and an echo goroutine exchange Config.Ops
//     requests over a pair of queues. Reports mean round-trip latency.
//
// Retry policy on full or empty belongs to the harness, never to the
// queues: see [Waiter]. Context cancellation is observed between polls.
package bench
