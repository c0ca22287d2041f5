// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ring implements a simple bounded FIFO ring buffer.
package ring

// Buffer is a fixed capacity FIFO. Writes to a full Buffer overwrite
// the oldest elements.
type Buffer[T any] struct {
	data    []T
	head, n int
}

func NewBuffer[T any](n int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, n)}
}

// Len returns the number of elements held.
func (r *Buffer[T]) Len() int {
	return r.n
}

// Size returns the capacity of the buffer.
func (r *Buffer[T]) Size() int {
	return len(r.data)
}

// Write appends src to the buffer and returns the number of elements
// that were overwritten to make room.
func (r *Buffer[T]) Write(src []T) (dropped int) {
	if len(r.data) == 0 {
		return len(src)
	}
	if len(src) >= len(r.data) {
		dropped = r.n + len(src) - len(r.data)
		r.head = 0
		r.n = len(r.data)
		copy(r.data, src[len(src)-len(r.data):])
		return dropped
	}
	for _, v := range src {
		r.data[(r.head+r.n)%len(r.data)] = v
		if r.n < len(r.data) {
			r.n++
			continue
		}
		r.head = (r.head + 1) % len(r.data)
		dropped++
	}
	return dropped
}

// Read copies the oldest elements into dst and removes them from the
// buffer. It returns the number of elements read.
func (r *Buffer[T]) Read(dst []T) int {
	n := r.CopyTo(dst)
	r.Advance(n)
	return n
}

// CopyTo copies the oldest elements into dst without removing them.
func (r *Buffer[T]) CopyTo(dst []T) int {
	if r.n == 0 {
		return 0
	}
	end := r.head + r.n
	if end <= len(r.data) {
		return copy(dst, r.data[r.head:end])
	}
	n := copy(dst, r.data[r.head:])
	n += copy(dst[n:], r.data[:end-len(r.data)])
	return n
}

// Advance discards up to n of the oldest elements.
func (r *Buffer[T]) Advance(n int) {
	n = min(n, r.n)
	var zero T
	for i := range n {
		r.data[(r.head+i)%len(r.data)] = zero
	}
	if n != 0 {
		r.head = (r.head + n) % len(r.data)
	}
	r.n -= n
}
