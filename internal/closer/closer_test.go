// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package closer

import (
	"errors"
	"reflect"
	"testing"
)

type recorder struct {
	name string
	log  *[]string
	err  error
}

func (r recorder) Close() error {
	*r.log = append(*r.log, r.name)
	return r.err
}

func TestStack(t *testing.T) {
	var (
		s   Stack
		got []string
	)
	errB := errors.New("b failed")
	for _, c := range []recorder{
		{name: "a", log: &got},
		{name: "b", log: &got, err: errB},
		{name: "c", log: &got},
	} {
		if err := s.Add(c); err != nil {
			t.Fatalf("unexpected error adding %s: %v", c.name, err)
		}
	}
	err := s.Close()
	if !errors.Is(err, errB) {
		t.Errorf("unexpected close error: %v", err)
	}
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected close order:\ngot: %q\nwant:%q", got, want)
	}

	err = s.Close()
	if err != nil {
		t.Errorf("unexpected error on second close: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("closers closed again:\ngot: %q\nwant:%q", got, want)
	}
}

func TestStackAddAfterClose(t *testing.T) {
	var (
		s   Stack
		got []string
	)
	err := s.Close()
	if err != nil {
		t.Fatalf("unexpected error closing empty stack: %v", err)
	}
	errLate := errors.New("late failed")
	err = s.Add(recorder{name: "late", log: &got, err: errLate})
	if !errors.Is(err, errLate) {
		t.Errorf("unexpected add error: %v", err)
	}
	want := []string{"late"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("late closer not closed:\ngot: %q\nwant:%q", got, want)
	}
	if err := s.Close(); err != nil {
		t.Errorf("unexpected error on second close: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("late closer closed again:\ngot: %q\nwant:%q", got, want)
	}
}
