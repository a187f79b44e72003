// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

import "iter"

type iterKind uint8

const (
	bucketOrder iterKind = iota
	forwardOrder
	reverseOrder
)

// Iterator is a single-pass cursor over the entries of a Map. Create one
// with Iter, OrderedIter or ReverseIter and call Next before reading the
// first entry:
//
//	for it := m.Iter(); it.Next(); {
//		fmt.Println(it.Key(), it.Value())
//	}
//
// The successor of the current entry is looked up before the current
// entry is handed out, so the current entry may be deleted without
// disturbing the iteration. If that successor is deleted as well, Next
// continues from the current entry if it is still live and panics
// otherwise. Entries added during iteration may or may not be visited.
//
// Clear and Close end the iteration. Growth of the map ends a bucket
// order iteration with a panic; order-chain iterations are unaffected.
type Iterator[K, V any] struct {
	m    *Map[K, V]
	kind iterKind

	// cur is the entry returned by the last successful Next and next the
	// prefetched successor. The gens detect slots released since.
	cur, curGen   uint32
	next, nextGen uint32

	epoch   uint32
	resizes int
	started bool
	done    bool
}

// Iter instantiates an Iterator that walks the buckets in index order and
// each collision chain from its head. The order is unspecified and
// changes when the Map grows.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return m.newIter(bucketOrder)
}

// OrderedIter instantiates an Iterator that visits entries from the
// oldest to the newest. It panics if m was not created with
// WithInsertionOrder.
func (m *Map[K, V]) OrderedIter() *Iterator[K, V] {
	m.checkOrdered("OrderedIter")
	return m.newIter(forwardOrder)
}

// ReverseIter instantiates an Iterator that visits entries from the
// newest to the oldest. It panics if m was not created with
// WithInsertionOrder.
func (m *Map[K, V]) ReverseIter() *Iterator[K, V] {
	m.checkOrdered("ReverseIter")
	return m.newIter(reverseOrder)
}

func (m *Map[K, V]) checkOrdered(op string) {
	if m != nil && !m.ordered {
		panic("xhash: " + op + " called on map without insertion order")
	}
}

func (m *Map[K, V]) newIter(kind iterKind) *Iterator[K, V] {
	if m == nil || m.count == 0 {
		return &Iterator[K, V]{done: true}
	}
	return &Iterator[K, V]{
		m:       m,
		kind:    kind,
		epoch:   m.epoch,
		resizes: m.resizes,
	}
}

// Next moves the iterator to the next entry. Next returns false when the
// iterator is complete.
func (it *Iterator[K, V]) Next() bool {
	m := it.m
	if m == nil || it.done {
		return it.finish()
	}
	if m.epoch != it.epoch {
		return it.finish()
	}
	if it.kind == bucketOrder && m.resizes != it.resizes {
		panic("xhash: map grew during iteration")
	}

	if !it.started {
		it.started = true
		it.prefetch(it.first())
	} else if it.next != 0 && m.entries.at(it.next).gen != it.nextGen {
		// The prefetched successor has been deleted.
		if m.entries.at(it.cur).gen != it.curGen {
			panic("xhash: entries deleted ahead of iterator")
		}
		it.prefetch(it.successor(it.cur))
	}
	if it.next == 0 {
		return it.finish()
	}

	it.cur, it.curGen = it.next, it.nextGen
	it.prefetch(it.successor(it.cur))
	return true
}

func (it *Iterator[K, V]) finish() bool {
	it.m = nil
	it.cur, it.next = 0, 0
	it.done = true
	return false
}

func (it *Iterator[K, V]) prefetch(i uint32) {
	it.next = i
	if i != 0 {
		it.nextGen = it.m.entries.at(i).gen
	}
}

func (it *Iterator[K, V]) first() uint32 {
	m := it.m
	switch it.kind {
	case forwardOrder:
		return m.head
	case reverseOrder:
		return m.tail
	}
	return it.scan(0)
}

// successor returns the entry that follows the live entry i.
func (it *Iterator[K, V]) successor(i uint32) uint32 {
	e := it.m.entries.at(i)
	switch it.kind {
	case forwardOrder:
		return e.fw
	case reverseOrder:
		return e.bw
	}
	if e.next != 0 {
		return e.next
	}
	return it.scan(it.m.bucketOf(e.hash) + 1)
}

// scan returns the head of the first non-empty bucket at or after b.
func (it *Iterator[K, V]) scan(b uint64) uint32 {
	buckets := it.m.buckets
	for ; b < uint64(len(buckets)); b++ {
		if i := buckets[b]; i != 0 {
			return i
		}
	}
	return 0
}

// AtEnd reports whether the iterator has no entries left to visit. It is
// true from the start for an empty map, and otherwise once Next has
// returned false.
func (it *Iterator[K, V]) AtEnd() bool {
	return it.done
}

// Entry returns the current entry. It is nil before the first call to
// Next and after Next returns false.
func (it *Iterator[K, V]) Entry() *Entry[K, V] {
	if it.m == nil || it.cur == 0 {
		return nil
	}
	return it.m.entries.at(it.cur)
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K {
	if e := it.Entry(); e != nil {
		return e.key
	}
	var zeroK K
	return zeroK
}

// Value returns the value of the current entry.
func (it *Iterator[K, V]) Value() V {
	if e := it.Entry(); e != nil {
		return e.value
	}
	var zeroV V
	return zeroV
}

// defaultIter iterates in insertion order when m tracks it.
func (m *Map[K, V]) defaultIter() *Iterator[K, V] {
	if m.Ordered() {
		return m.OrderedIter()
	}
	return m.Iter()
}

// All returns an iterator over key-value pairs from m. Pairs come in
// insertion order if m was created WithInsertionOrder.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.defaultIter(); it.Next(); {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over key-value pairs from m, newest
// first. It panics if m was not created WithInsertionOrder.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	m.checkOrdered("Backward")
	return func(yield func(K, V) bool) {
		for it := m.ReverseIter(); it.Next(); {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in m.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := m.defaultIter(); it.Next(); {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over values in m.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for it := m.defaultIter(); it.Next(); {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
