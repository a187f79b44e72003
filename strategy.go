// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

import (
	"bytes"
	"hash/maphash"
	"strings"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Strategy defines the key semantics of a Map. Implementations must keep
// Equal(a, b) => Hash(a) == Hash(b), and Equal(a, a) must hold for every
// key. Any state a Strategy needs (seeds, lookup tables, ...) lives in
// the Strategy value itself; a Map never consults global state.
type Strategy[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// KeyCloner is implemented by strategies whose keys may alias memory the
// caller goes on to modify. Maps that own their keys (the default) store
// CloneKey(key) instead of key. Maps created WithBorrowedKeys never call
// it.
type KeyCloner[K any] interface {
	CloneKey(key K) K
}

// Funcs adapts a pair of plain functions to a Strategy. CloneFunc is
// optional.
type Funcs[K any] struct {
	HashFunc  func(key K) uint64
	EqualFunc func(a, b K) bool
	CloneFunc func(key K) K
}

func (f Funcs[K]) Hash(key K) uint64 { return f.HashFunc(key) }
func (f Funcs[K]) Equal(a, b K) bool { return f.EqualFunc(a, b) }

// CloneKey returns CloneFunc(key), or key if CloneFunc is nil.
func (f Funcs[K]) CloneKey(key K) K {
	if f.CloneFunc == nil {
		return key
	}
	return f.CloneFunc(key)
}

// StringKey hashes strings by content with a polynomial rolling hash
// (multiplier 31) over every byte.
type StringKey struct{}

func (StringKey) Hash(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}

func (StringKey) Equal(a, b string) bool { return a == b }

// CloneKey detaches s from whatever larger buffer it may be a substring
// of.
func (StringKey) CloneKey(s string) string { return strings.Clone(s) }

// BytesKey is the []byte counterpart of StringKey. Owning maps copy keys.
type BytesKey struct{}

func (BytesKey) Hash(b []byte) uint64 {
	var h uint64
	for _, c := range b {
		h = h*31 + uint64(c)
	}
	return h
}

func (BytesKey) Equal(a, b []byte) bool { return bytes.Equal(a, b) }
func (BytesKey) CloneKey(b []byte) []byte { return bytes.Clone(b) }

// PointerKey compares keys by identity. The hash is the address itself.
// Pointed-to values are never read, which makes a Map[*T, V] with this
// strategy usable as an identity map over objects the caller keeps alive.
type PointerKey[T any] struct{}

func (PointerKey[T]) Hash(p *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(p)))
}

func (PointerKey[T]) Equal(a, b *T) bool { return a == b }

// IntegerKey hashes an integer to its own value.
type IntegerKey[T constraints.Integer] struct{}

func (IntegerKey[T]) Hash(v T) uint64 { return uint64(v) }
func (IntegerKey[T]) Equal(a, b T) bool { return a == b }

// ComparableKey hashes any comparable key with hash/maphash. The zero value
// is not usable; create one with NewComparableKey.
type ComparableKey[K comparable] struct {
	seed maphash.Seed
}

// NewComparableKey returns a ComparableKey strategy with a random seed.
func NewComparableKey[K comparable]() ComparableKey[K] {
	return ComparableKey[K]{seed: maphash.MakeSeed()}
}

func (c ComparableKey[K]) Hash(key K) uint64 { return maphash.Comparable(c.seed, key) }
func (ComparableKey[K]) Equal(a, b K) bool { return a == b }

// XXH3 hashes string keys with XXH3. A zero Seed selects the unseeded
// variant.
type XXH3 struct {
	Seed uint64
}

func (x XXH3) Hash(s string) uint64 {
	if x.Seed == 0 {
		return xxh3.HashString(s)
	}
	return xxh3.HashSeed([]byte(s), x.Seed)
}

func (XXH3) Equal(a, b string) bool { return a == b }
func (XXH3) CloneKey(s string) string { return strings.Clone(s) }

// XXHash hashes []byte keys with XXH64. Owning maps copy keys.
type XXHash struct{}

func (XXHash) Hash(b []byte) uint64 { return xxhash.Sum64(b) }
func (XXHash) Equal(a, b []byte) bool { return bytes.Equal(a, b) }
func (XXHash) CloneKey(b []byte) []byte { return bytes.Clone(b) }
