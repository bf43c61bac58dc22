// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package affinity binds the calling goroutine to a CPU.
//
// Platform-specific implementations live in files guarded by build tags.
package affinity

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned where the platform cannot pin threads.
var ErrUnsupported = errors.New("affinity: not supported on this platform")

// ErrInvalidCPU is returned for a CPU index the platform cannot address.
var ErrInvalidCPU = errors.New("affinity: invalid cpu")

// Binder binds the calling goroutine's OS thread to one CPU.
type Binder interface {
	// Bind locks the calling goroutine to its OS thread and restricts that
	// thread to cpu. A negative cpu leaves scheduling untouched.
	Bind(cpu int) error
}

// OS returns the binder for the running platform.
func OS() Binder {
	return osBinder{}
}

// Nop is a Binder that never pins. Useful in tests and on shared hosts.
type Nop struct{}

// Bind does nothing.
func (Nop) Bind(int) error { return nil }

// NumCPU returns the number of logical CPUs usable by the process.
// CPU indices are not bounded by it: the usable set may be sparse.
func NumCPU() int {
	return runtime.NumCPU()
}

type osBinder struct{}

func (osBinder) Bind(cpu int) error {
	if cpu < 0 {
		return nil
	}
	runtime.LockOSThread()
	return bind(cpu)
}
