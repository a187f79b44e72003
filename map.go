// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xhash provides the Map type, a chained hash table with
// pluggable key semantics, optional insertion-order tracking and a
// choice between owning and borrowing its keys.
//
// The following requirements are the user's responsibility to follow:
//   - The Strategy must satisfy equal(a, b) => hash(a) == hash(b), and
//     equal(a, a) must be true for all values of a. Be careful around NaN
//     float values.
//   - If a key in a Map contains references -- such as pointers or
//     slices -- modifying the referenced data in a way that affects the
//     result of the hash or equal functions results in undefined
//     behavior. Owning maps protect against this for strategies that
//     implement KeyCloner.
//   - A Map is not safe for concurrent use. Writes detected to overlap
//     panic, but detection is best effort.
package xhash

// A map is an array of buckets, each holding the head of a singly
// linked collision chain. Entries live in an arena and are linked by
// index, never by address, so the chains and the optional order chain
// survive growth without copying an entry.
//
// The bucket count starts at 11 and grows to size*2+1 (23, 47, 95, ...)
// which keeps it odd and spreads weak hashes such as the identity hash of
// small integers. A key routes to bucket hash % size.
//
// Growth is pre-emptive: before a new entry is added, the table grows if
// the entry would push count/size past 0.75. Growth is done in one step;
// every entry is relinked into the new bucket array using its cached hash
// and the new array replaces the old one at once.

import "github.com/phuslu/log"

const (
	initialSize = 11

	// Maximum average load of a bucket that triggers growth is 0.75.
	// Represent as loadFactorNum/loadFactorDen, to allow integer math.
	loadFactorNum = 3
	loadFactorDen = 4

	// flags
	hashWriting = 1 // a goroutine is writing to the map
	mapClosed   = 2 // Close has been called
)

// Map implements a hashmap from K to V.
type Map[K, V any] struct {
	count int // # live entries == size of map
	flags uint8

	ordered  bool
	borrowed bool

	// buckets holds the arena index of each chain head, 0 if empty.
	buckets []uint32
	entries arena[K, V]

	// head and tail are the oldest and newest entries of the order
	// chain. Only maintained when ordered is set.
	head, tail uint32

	// resizes counts growths. epoch is bumped by Clear and Close.
	// Iterators compare both against the values they started with.
	resizes int
	epoch   uint32

	strategy Strategy[K]
	cloner   KeyCloner[K] // nil unless the map owns its keys
	log      *log.Logger
}

// New instantiates a new Map whose keys are hashed and compared by s.
// The map starts with 11 buckets unless WithSizeHint asks for more.
func New[K, V any](s Strategy[K], opts ...Option) *Map[K, V] {
	if s == nil {
		panic("xhash: nil Strategy")
	}
	var c config
	for _, opt := range opts {
		opt.apply(&c)
	}
	m := &Map[K, V]{
		ordered:  c.ordered,
		borrowed: c.borrowed,
		buckets:  make([]uint32, sizeFor(c.hint)),
		strategy: s,
		log:      c.logger,
	}
	if !c.borrowed {
		if kc, ok := s.(KeyCloner[K]); ok {
			m.cloner = kc
		}
	}
	return m
}

// NewFunc instantiates a new Map from a plain equal and hash function
// pair. See [New].
func NewFunc[K, V any](
	equal func(a, b K) bool,
	hash func(key K) uint64,
	opts ...Option) *Map[K, V] {

	return New[K, V](Funcs[K]{HashFunc: hash, EqualFunc: equal}, opts...)
}

// NewString instantiates a Map keyed by string content.
func NewString[V any](opts ...Option) *Map[string, V] {
	return New[string, V](StringKey{}, opts...)
}

// NewPointer instantiates a Map keyed by pointer identity.
func NewPointer[T, V any](opts ...Option) *Map[*T, V] {
	return New[*T, V](PointerKey[T]{}, opts...)
}

// NewInt instantiates a Map keyed by int value.
func NewInt[V any](opts ...Option) *Map[int, V] {
	return New[int, V](IntegerKey[int]{}, opts...)
}

// sizeFor returns the first bucket count of the growth sequence that
// holds hint entries.
func sizeFor(hint int) int {
	size := initialSize
	if hint <= 0 {
		return size
	}
	for overLoadFactor(hint, size) {
		size = nextSize(size)
	}
	return size
}

func nextSize(size int) int {
	return size*2 + 1
}

// overLoadFactor reports whether count items placed in size buckets is
// over the load factor.
func overLoadFactor(count, size int) bool {
	return uint64(count)*loadFactorDen > uint64(size)*loadFactorNum
}

// Len returns the count of occupied elements in m.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// NumBuckets returns the current size of the bucket array.
func (m *Map[K, V]) NumBuckets() int {
	if m == nil {
		return 0
	}
	return len(m.buckets)
}

// Ordered reports whether m tracks insertion order.
func (m *Map[K, V]) Ordered() bool {
	return m != nil && m.ordered
}

func (m *Map[K, V]) bucketOf(hash uint64) uint64 {
	return hash % uint64(len(m.buckets))
}

// find returns the index of the entry holding key and the index of its
// predecessor in the collision chain. Both are 0 if key is absent; prev
// is 0 as well when the entry heads its chain.
func (m *Map[K, V]) find(key K, hash uint64) (i, prev uint32) {
	for i = m.buckets[m.bucketOf(hash)]; i != 0; {
		e := m.entries.at(i)
		if e.hash == hash && m.strategy.Equal(key, e.key) {
			return i, prev
		}
		prev, i = i, e.next
	}
	return 0, 0
}

// Lookup returns the entry stored under key, or nil if there is none.
func (m *Map[K, V]) Lookup(key K) *Entry[K, V] {
	if m == nil || m.count == 0 {
		return nil
	}
	i, _ := m.find(key, m.strategy.Hash(key))
	if i == 0 {
		return nil
	}
	return m.entries.at(i)
}

// Get returns the element associated with key and true if that key is
// in the Map, otherwise it returns the zero value of V and false.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e := m.Lookup(key)
	if e == nil {
		var zeroV V
		return zeroV, false
	}
	return e.value, true
}

// Has reports whether key is in the Map.
func (m *Map[K, V]) Has(key K) bool {
	return m.Lookup(key) != nil
}

// checkWrite panics if op may not write to m right now.
func (m *Map[K, V]) checkWrite(op string) {
	if m == nil {
		// We have to panic here rather than initialize an empty map
		// because we need the user to pass in a Strategy.
		panic("xhash: " + op + " called on nil map")
	}
	if m.flags&mapClosed != 0 {
		panic("xhash: " + op + " called on closed map")
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
}

func (m *Map[K, V]) doneWriting() {
	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
}

// Put associates key with value in m and returns the live entry. If key
// is already present its value is overwritten in place: the entry keeps
// its identity and its position in insertion order.
func (m *Map[K, V]) Put(key K, value V) *Entry[K, V] {
	m.checkWrite("Put")
	hash := m.strategy.Hash(key)
	// Set hashWriting after calling the strategy, since it may panic,
	// in which case we have not actually done a write.
	m.flags ^= hashWriting

	e := m.upsert(key, hash, "Put")
	e.value = value

	m.doneWriting()
	return e
}

// Update sets the value associated with key to fn(old, ok), where old is
// the current value and ok reports whether key was present. fn must not
// modify m.
func (m *Map[K, V]) Update(key K, fn func(old V, ok bool) V) *Entry[K, V] {
	m.checkWrite("Update")
	hash := m.strategy.Hash(key)

	var old V
	var ok bool
	if m.count > 0 {
		if i, _ := m.find(key, hash); i != 0 {
			old, ok = m.entries.at(i).value, true
		}
	}
	v := fn(old, ok)

	m.checkWrite("Update")
	m.flags ^= hashWriting
	e := m.upsert(key, hash, "Update")
	e.value = v
	m.doneWriting()
	return e
}

// upsert returns the entry for key, inserting one with a zero value if
// needed. The caller holds the write flag.
func (m *Map[K, V]) upsert(key K, hash uint64, op string) *Entry[K, V] {
	if m.count > 0 {
		if i, _ := m.find(key, hash); i != 0 {
			return m.entries.at(i)
		}
	}

	if m.cloner != nil {
		// Drop hashWriting while calling the strategy, since it may
		// panic, in which case we have not actually done a write.
		m.flags &^= hashWriting
		key = m.cloner.CloneKey(key)
		m.checkWrite(op)
		m.flags ^= hashWriting
		// CloneKey may have added key itself.
		if m.count > 0 {
			if i, _ := m.find(key, hash); i != 0 {
				return m.entries.at(i)
			}
		}
	}

	// Did not find mapping for key. Grow first if the new entry would
	// push us over the load factor; indexes below use the new size.
	if overLoadFactor(m.count+1, len(m.buckets)) {
		m.grow()
	}

	i, e := m.entries.alloc()
	e.key = key
	e.hash = hash

	b := m.bucketOf(hash)
	e.next = m.buckets[b]
	m.buckets[b] = i

	if m.ordered {
		// New entries are the most recent ones.
		e.bw = m.tail
		if m.tail != 0 {
			m.entries.at(m.tail).fw = i
		} else {
			m.head = i
		}
		m.tail = i
	}
	m.count++
	return e
}

// Delete removes key and its associated value from the map. It reports
// whether key was present; deleting an absent key leaves m unmodified.
func (m *Map[K, V]) Delete(key K) bool {
	_, ok := m.Remove(key)
	return ok
}

// Remove deletes key from the map and returns the value it was
// associated with.
func (m *Map[K, V]) Remove(key K) (value V, ok bool) {
	if m == nil || m.count == 0 {
		return value, false
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	hash := m.strategy.Hash(key)

	// Set hashWriting after calling the strategy, since it may panic,
	// in which case we have not actually done a write (delete).
	m.flags ^= hashWriting

	i, prev := m.find(key, hash)
	if i != 0 {
		e := m.entries.at(i)
		if prev == 0 {
			m.buckets[m.bucketOf(hash)] = e.next
		} else {
			m.entries.at(prev).next = e.next
		}
		if m.ordered {
			m.unlinkOrder(e)
		}
		value, ok = e.value, true
		m.entries.release(i)
		m.count--
	}

	m.doneWriting()
	return value, ok
}

// unlinkOrder splices e out of the order chain.
func (m *Map[K, V]) unlinkOrder(e *Entry[K, V]) {
	if e.fw != 0 {
		m.entries.at(e.fw).bw = e.bw
	} else {
		m.tail = e.bw
	}
	if e.bw != 0 {
		m.entries.at(e.bw).fw = e.fw
	} else {
		m.head = e.fw
	}
}

// Clear deletes all keys from m. The bucket array keeps its size and the
// entry storage is kept for reuse.
func (m *Map[K, V]) Clear() {
	if m == nil || m.count == 0 {
		return
	}
	m.checkWrite("Clear")
	m.flags ^= hashWriting

	clear(m.buckets)
	m.entries.reset()
	m.head, m.tail = 0, 0
	m.count = 0
	m.epoch++

	if m.log != nil {
		m.log.Debug().Int("buckets", len(m.buckets)).Msg("xhash: clear")
	}
	m.doneWriting()
}

// Close releases all memory held by m. Reads on a closed map report
// every key as absent and iterators end immediately; writes panic.
// Close is idempotent.
func (m *Map[K, V]) Close() {
	if m == nil || m.flags&mapClosed != 0 {
		return
	}
	m.checkWrite("Close")
	m.flags ^= hashWriting

	if m.log != nil {
		m.log.Debug().Int("count", m.count).Int("buckets", len(m.buckets)).Msg("xhash: close")
	}
	m.buckets = nil
	m.entries = arena[K, V]{}
	m.head, m.tail = 0, 0
	m.count = 0
	m.epoch++

	m.doneWriting()
	m.flags |= mapClosed
}

// Clone returns an independent copy of m with the same Strategy, options
// and bucket count. Both iteration orders of the copy match m's. Owned
// keys are cloned; values are copied by assignment.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}
	if m.flags&hashWriting != 0 {
		panic("concurrent map read and map write")
	}
	c := &Map[K, V]{
		count:    m.count,
		flags:    m.flags,
		ordered:  m.ordered,
		borrowed: m.borrowed,
		buckets:  append([]uint32(nil), m.buckets...),
		entries:  m.entries.clone(),
		head:     m.head,
		tail:     m.tail,
		resizes:  m.resizes,
		strategy: m.strategy,
		cloner:   m.cloner,
		log:      m.log,
	}
	if c.cloner != nil {
		for _, i := range c.buckets {
			for ; i != 0; i = c.entries.at(i).next {
				e := c.entries.at(i)
				e.key = c.cloner.CloneKey(e.key)
			}
		}
	}
	return c
}

// grow replaces the bucket array with one of the next size in the
// sequence and rehomes every entry into it.
func (m *Map[K, V]) grow() {
	oldsize := len(m.buckets)
	newbuckets := make([]uint32, nextSize(oldsize))
	n := uint64(len(newbuckets))

	rehome := func(i uint32) {
		e := m.entries.at(i)
		b := e.hash % n
		e.next = newbuckets[b]
		newbuckets[b] = i
	}
	if m.ordered {
		// Oldest first, so within a bucket newer entries end up in
		// front just as they do on insertion.
		for i := m.head; i != 0; i = m.entries.at(i).fw {
			rehome(i)
		}
	} else {
		for _, i := range m.buckets {
			for i != 0 {
				next := m.entries.at(i).next
				rehome(i)
				i = next
			}
		}
	}

	// commit the grow
	m.buckets = newbuckets
	m.resizes++

	if m.log != nil {
		m.log.Debug().Int("from", oldsize).Int("to", len(newbuckets)).
			Int("count", m.count).Msg("xhash: grow")
	}
}
