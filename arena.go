// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

import "math"

const (
	blockShift = 7
	blockSize  = 1 << blockShift
	blockMask  = blockSize - 1

	// maxEntries bounds the arena so that every slot is addressable
	// by a uint32 and index 0 stays reserved as the end marker.
	maxEntries = math.MaxUint32 - 1
)

// arena stores entries in fixed size blocks addressed by index. Blocks
// are allocated once and never reallocated, so growing the arena does not
// move existing entries. Index 0 is never handed out: a 0 link means
// "none" in both the collision and the order chain.
type arena[K, V any] struct {
	blocks [][]Entry[K, V]
	// used is the high-water mark of handed out indexes.
	used uint32
	// free is the head of the list of released slots, linked through
	// Entry.next.
	free uint32
}

func (a *arena[K, V]) at(i uint32) *Entry[K, V] {
	return &a.blocks[i>>blockShift][i&blockMask]
}

// alloc returns the index and address of an unused, zeroed slot. Released
// slots are reused before the arena grows.
func (a *arena[K, V]) alloc() (uint32, *Entry[K, V]) {
	if i := a.free; i != 0 {
		e := a.at(i)
		a.free = e.next
		e.next = 0
		return i, e
	}
	if a.used == 0 {
		a.used = 1
	}
	if a.used > maxEntries {
		panic("xhash: too many entries")
	}
	i := a.used
	if int(i>>blockShift) == len(a.blocks) {
		a.blocks = append(a.blocks, make([]Entry[K, V], blockSize))
	}
	a.used++
	return i, a.at(i)
}

// release zeroes the slot at i so the GC can reclaim whatever its key and
// value referenced, and puts it on the free list.
func (a *arena[K, V]) release(i uint32) {
	e := a.at(i)
	gen := e.gen + 1
	*e = Entry[K, V]{}
	e.gen = gen
	e.next = a.free
	a.free = i
}

// reset releases every slot while keeping the blocks for reuse.
func (a *arena[K, V]) reset() {
	for i := uint32(1); i < a.used; i++ {
		e := a.at(i)
		gen := e.gen + 1
		*e = Entry[K, V]{}
		e.gen = gen
	}
	a.used = 0
	a.free = 0
}

// clone returns a deep copy of a. Indexes, and therefore every chain
// link, stay valid in the copy.
func (a *arena[K, V]) clone() arena[K, V] {
	c := arena[K, V]{used: a.used, free: a.free}
	if len(a.blocks) > 0 {
		c.blocks = make([][]Entry[K, V], len(a.blocks))
		for i, b := range a.blocks {
			c.blocks[i] = append([]Entry[K, V](nil), b...)
		}
	}
	return c
}
