// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package affinity

// bind is a stub: the thread stays locked but unpinned.
func bind(int) error {
	return ErrUnsupported
}

// Current is not available on this platform.
func Current() ([]int, error) {
	return nil, ErrUnsupported
}
