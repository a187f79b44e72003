// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// String converts m to a string representation using K's and V's
// String functions.
func String[K fmt.Stringer, V fmt.Stringer](m *Map[K, V]) string {
	return StringFunc(m,
		func(key K) string { return key.String() },
		func(value V) string { return value.String() },
	)
}

// String converts m to a string representation, formatting keys and
// values with %v. Pairs are listed as StringFunc lists them.
func (m *Map[K, V]) String() string {
	return StringFunc(m,
		func(key K) string { return fmt.Sprint(key) },
		func(value V) string { return fmt.Sprint(value) },
	)
}

type strKV struct {
	k string
	v string
}

// StringFunc converts m to a string representation with the help of
// strK and strV functions to stringify m's keys and values. Pairs of a
// map tracking insertion order are listed oldest first; otherwise they
// are sorted by their formatted key.
func StringFunc[K any, V any](m *Map[K, V],
	strK func(key K) string,
	strV func(value V) string) string {
	if m == nil || m.Len() == 0 {
		return "xhash.Map[]"
	}
	strs := make([]strKV, 0, m.Len())
	s := 0
	for it := m.defaultIter(); it.Next(); {
		kv := strKV{k: strK(it.Key()), v: strV(it.Value())}
		s += len(kv.k) + len(kv.v)
		strs = append(strs, kv)
	}
	if !m.ordered {
		slices.SortFunc(strs, func(a, b strKV) bool { return a.k < b.k })
	}

	var b strings.Builder
	b.Grow(len("xhash.Map[]") + // space for header and footer
		len(strs)*2 - 1 + // space for delimiters
		s) // space for keys and values
	b.WriteString("xhash.Map[")
	for i, kv := range strs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(kv.k)
		b.WriteByte(':')
		b.WriteString(kv.v)
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if the same set of keys and values are in m1 and
// m2. Values are compared using ==.
func Equal[K any, V comparable](m1, m2 *Map[K, V]) bool {
	return EqualFunc(m1, m2, func(a, b V) bool { return a == b })
}

// EqualFunc returns true if the same set of keys and values are in m1
// and m2. Values are compared using eq, visiting m1 in insertion order
// when it tracks it.
func EqualFunc[K, V any](m1, m2 *Map[K, V], eq func(V, V) bool) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	for it := m1.defaultIter(); it.Next(); {
		v2, ok := m2.Get(it.Key())
		if !ok || !eq(it.Value(), v2) {
			return false
		}
	}
	return true
}

// Copy puts every pair of src into dst, overwriting the values of keys
// dst already holds. Pairs are added in src's insertion order when src
// tracks it, so an ordered dst that starts out empty iterates like src.
// Keys are hashed with dst's Strategy.
func Copy[K, V any](dst, src *Map[K, V]) {
	if src.Len() == 0 {
		return
	}
	for it := src.defaultIter(); it.Next(); {
		dst.Put(it.Key(), it.Value())
	}
}
