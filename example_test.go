// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package spscq_test

import (
	"errors"
	"fmt"

	"code.hybscloud.com/spscq"
)

// ExampleNew demonstrates capacity validation and usable capacity.
func ExampleNew() {
	q, err := spscq.New[int](8)
	if err != nil {
		panic(err)
	}
	fmt.Println(q.Cap())

	_, err = spscq.New[int](6)
	fmt.Println(errors.Is(err, spscq.ErrInvalidCapacity))

	// Output:
	// 7
	// true
}

// ExampleQueue_Emplace demonstrates constructing an element directly in
// its slot instead of copying a finished value in.
func ExampleQueue_Emplace() {
	type reading struct {
		sensor string
		value  float64
	}

	q := spscq.MustNew[reading](4)
	q.Emplace(func(r *reading) {
		r.sensor = "imu0"
		r.value = 9.81
	})

	var r reading
	q.Pop(&r)
	fmt.Println(r.sensor, r.value)

	// Output:
	// imu0 9.81
}

// ExampleQueue_Push demonstrates full and empty signalling.
func ExampleQueue_Push() {
	q := spscq.MustNew[string](4)

	for _, v := range []string{"A", "B", "C", "D"} {
		fmt.Println(v, q.Push(v))
	}

	var v string
	for q.Pop(&v) {
		fmt.Println(v)
	}

	// Output:
	// A true
	// B true
	// C true
	// D false
	// A
	// B
	// C
}

// ExampleQueue_Dequeue demonstrates the error-returning API.
func ExampleQueue_Dequeue() {
	q := spscq.MustNew[int](2)

	v := 42
	fmt.Println(q.Enqueue(&v))
	fmt.Println(spscq.IsWouldBlock(q.Enqueue(&v)))

	got, err := q.Dequeue()
	fmt.Println(got, err)

	_, err = q.Dequeue()
	fmt.Println(spscq.IsWouldBlock(err))

	// Output:
	// <nil>
	// true
	// 42 <nil>
	// true
}
