// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"fmt"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Wait strategy names.
const (
	WaitBusy    = "busy"    // retry immediately
	WaitSpin    = "spin"    // CPU pause hint between retries
	WaitBackoff = "backoff" // adaptive backoff, may yield and sleep
)

// Waiter paces a retry loop around a non-blocking queue operation.
// A Waiter belongs to one goroutine.
type Waiter interface {
	// Wait is called after an attempt failed.
	Wait()
	// Reset is called after an attempt succeeded.
	Reset()
}

// NewWaiter returns a fresh Waiter for the named strategy.
func NewWaiter(name string) (Waiter, error) {
	switch name {
	case WaitBusy:
		return busyWaiter{}, nil
	case WaitSpin:
		return &spinWaiter{}, nil
	case WaitBackoff:
		return &backoffWaiter{}, nil
	}
	return nil, fmt.Errorf("unknown wait strategy %q", name)
}

type busyWaiter struct{}

func (busyWaiter) Wait()  {}
func (busyWaiter) Reset() {}

type spinWaiter struct {
	sw spin.Wait
}

func (w *spinWaiter) Wait()  { w.sw.Once() }
func (w *spinWaiter) Reset() { w.sw = spin.Wait{} }

type backoffWaiter struct {
	b iox.Backoff
}

func (w *backoffWaiter) Wait()  { w.b.Wait() }
func (w *backoffWaiter) Reset() { w.b.Reset() }
