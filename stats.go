// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

// Stats is a snapshot of the shape of a Map.
type Stats struct {
	Count   int
	Buckets int
	// LoadFactor is Count/Buckets. It never exceeds 0.75.
	LoadFactor float64
	// UsedBuckets is the number of non-empty collision chains and
	// LongestChain the length of the longest one.
	UsedBuckets  int
	LongestChain int
	// Resizes counts how many times the bucket array has grown.
	Resizes      int
	Ordered      bool
	BorrowedKeys bool
}

// Stats walks every collision chain of m and returns a snapshot.
func (m *Map[K, V]) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	s := Stats{
		Count:        m.count,
		Buckets:      len(m.buckets),
		Resizes:      m.resizes,
		Ordered:      m.ordered,
		BorrowedKeys: m.borrowed,
	}
	if s.Buckets > 0 {
		s.LoadFactor = float64(s.Count) / float64(s.Buckets)
	}
	for _, i := range m.buckets {
		n := 0
		for ; i != 0; i = m.entries.at(i).next {
			n++
		}
		if n > 0 {
			s.UsedBuckets++
		}
		if n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}
