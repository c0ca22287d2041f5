// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package closer provides a stack of resources closed together.
package closer

import (
	"errors"
	"io"
	"sync"
)

// Stack holds io.Closers to be closed in reverse order of addition.
// The zero value is ready to use.
type Stack struct {
	mu      sync.Mutex
	closed  bool
	closers []io.Closer
}

// Add pushes c onto the stack. If the stack has already been closed,
// c is closed immediately and its error returned.
func (s *Stack) Add(c io.Closer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return c.Close()
	}
	s.closers = append(s.closers, c)
	return nil
}

// Close closes all held closers, most recently added first. Subsequent
// calls to Close do nothing.
func (s *Stack) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
