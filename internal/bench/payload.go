// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

// Telemetry is the benchmark payload: one attitude/thrust sample from a
// flight controller. It is cheap to construct and copy.
type Telemetry struct {
	ID               uint64
	Pitch, Roll, Yaw float64
	Thrust           float32
	Status           uint32
}

// Sample returns the reference record for sequence number id.
// Consumers compare what they receive against it.
func Sample(id uint64) Telemetry {
	return Telemetry{ID: id, Pitch: 0.1, Roll: 0.2, Yaw: 0.3, Thrust: 0.5, Status: 1}
}
