// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type upper string

func (u upper) String() string { return strings.ToUpper(string(u)) }

func TestString(t *testing.T) {
	m := New[[]byte, struct{}](BytesKey{})
	m.Put([]byte("abc"), struct{}{})
	m.Put([]byte("def"), struct{}{})
	m.Put([]byte("ghi"), struct{}{})
	s := m.String()
	expected := "xhash.Map[[100 101 102]:{} [103 104 105]:{} [97 98 99]:{}]"
	if expected != s {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	s = StringFunc(m,
		func(b []byte) string { return string(b) },
		func(struct{}) string { return "✅" })
	expected = "xhash.Map[abc:✅ def:✅ ghi:✅]"
	if s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	u := NewFunc[upper, upper](
		func(a, b upper) bool { return a == b },
		func(k upper) uint64 { return StringKey{}.Hash(string(k)) })
	u.Put("b", "y")
	u.Put("a", "x")
	expected = "xhash.Map[A:X B:Y]"
	if s := String(u); s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	o := NewString[int](WithInsertionOrder())
	o.Put("b", 1)
	o.Put("a", 2)
	o.Put("c", 3)
	expected = "xhash.Map[b:1 a:2 c:3]"
	if s := o.String(); s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	var empty *Map[int, int]
	if s := empty.String(); s != "xhash.Map[]" {
		t.Errorf("Got: %q Expected: %q", s, "xhash.Map[]")
	}
}

func TestEqual(t *testing.T) {
	m1 := NewString[int]()
	m2 := NewString[int](WithInsertionOrder())
	for i, k := range []string{"a", "b", "c"} {
		m1.Put(k, i)
	}
	for i, k := range []string{"c", "b", "a"} {
		m2.Put(k, 2-i)
	}
	require.True(t, Equal(m1, m2))
	require.True(t, Equal(m2, m1))

	m2.Put("c", 3)
	require.False(t, Equal(m1, m2))
	m2.Put("c", 2)
	m2.Put("d", 3)
	require.False(t, Equal(m1, m2))
	m2.Delete("d")
	require.True(t, Equal(m1, m2))

	var nilMap *Map[string, int]
	require.True(t, Equal(nilMap, NewString[int]()))
	require.False(t, Equal(nilMap, m1))

	b1 := New[[]byte, []byte](BytesKey{})
	b2 := New[[]byte, []byte](XXHash{})
	b1.Put([]byte("k"), []byte("v"))
	b2.Put([]byte("k"), []byte("v"))
	require.True(t, EqualFunc(b1, b2, bytes.Equal))
}

func TestEqualFuncOrder(t *testing.T) {
	// Bucket order over 11 buckets is c, a, b.
	m1 := NewString[int](WithInsertionOrder())
	m2 := NewString[int]()
	for i, k := range []string{"a", "b", "c"} {
		m1.Put(k, i)
		m2.Put(k, i)
	}
	var visited []int
	require.True(t, EqualFunc(m1, m2, func(a, b int) bool {
		visited = append(visited, a)
		return a == b
	}))
	require.Equal(t, []int{0, 1, 2}, visited)
}

func TestCopy(t *testing.T) {
	src := NewString[int](WithInsertionOrder())
	for i, k := range []string{"delta", "alpha", "charlie", "bravo", "echo",
		"foxtrot", "golf", "hotel", "india", "juliet"} {
		src.Put(k, i)
	}
	src.Delete("charlie")

	dst := NewString[int](WithInsertionOrder())
	Copy(dst, src)
	require.True(t, Equal(src, dst))
	var want, got []string
	for k := range src.Keys() {
		want = append(want, k)
	}
	for k := range dst.Keys() {
		got = append(got, k)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("copy order (-src +dst):\n%s", diff)
	}
	checkInvariants(t, dst)

	// Existing keys are overwritten, others kept.
	other := NewString[int]()
	other.Put("alpha", 100)
	other.Put("zulu", 26)
	Copy(other, src)
	require.Equal(t, src.Len()+1, other.Len())
	v, _ := other.Get("alpha")
	require.Equal(t, 1, v)

	Copy(other, NewString[int]())
	require.Equal(t, src.Len()+1, other.Len())
}
