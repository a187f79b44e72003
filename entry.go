// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

// Entry is a key/value pair stored in a Map. Entries are never moved
// once allocated, so an *Entry returned by Put or Lookup keeps pointing
// at the same pair until that key is deleted or the Map is cleared or
// closed. Using an *Entry after that point observes whatever occupies
// the slot next.
type Entry[K, V any] struct {
	key   K
	value V
	// hash is computed once on insertion and reused for the cheap
	// pre-comparison in lookups and for rehoming during growth.
	hash uint64
	// next links the collision chain of the entry's bucket.
	next uint32
	// fw and bw link the order chain: fw points at the next newer
	// entry and bw at the next older one. Both are 0 unless the Map
	// tracks insertion order.
	fw, bw uint32
	// gen is bumped every time the slot is released.
	gen uint32
}

// Key returns the entry's key.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Value returns the entry's value.
func (e *Entry[K, V]) Value() V {
	return e.value
}

// SetValue replaces the entry's value in place. The entry keeps its
// position in both the bucket and the order chain.
func (e *Entry[K, V]) SetValue(v V) {
	e.value = v
}

// Hash returns the hash cached when the entry was inserted.
func (e *Entry[K, V]) Hash() uint64 {
	return e.hash
}
