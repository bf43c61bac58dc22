// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package spscq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent producer/consumer runs, which trigger
// false positives because the detector does not model atomix orderings
// as synchronization between the slot write and the cursor publish.
const RaceEnabled = true
