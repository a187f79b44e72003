// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selftest

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/aristanetworks/xhash"
	plog "github.com/phuslu/log"
	"golang.org/x/exp/slices"
)

// ErrCheckFailed is wrapped by every error reporting a broken
// expectation about a Map.
var ErrCheckFailed = errors.New("check failed")

func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...))
}

// Run executes the scenarios listed in cfg followed by the workload. It
// stops at the first failed check. log receives a line per finished step
// and, at debug level, the growth events of every map under test.
func Run(cfg *Config, log *plog.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rep := &Report{}
	for _, s := range cfg.Scenarios {
		var (
			res Result
			err error
		)
		measure(&res, func() {
			switch s {
			case ScenarioStrings:
				res, err = scenarioStrings(log)
			case ScenarioGrowth:
				res, err = scenarioGrowth(log)
			case ScenarioReverse:
				res, err = scenarioReverse(log)
			}
		})
		if err != nil {
			return rep, fmt.Errorf("scenario %s: %w", s, err)
		}
		rep.add(log, res)
	}

	var (
		res Result
		err error
	)
	measure(&res, func() { res, err = runWorkload(cfg, log) })
	if err != nil {
		return rep, fmt.Errorf("workload %s: %w", cfg.Strategy, err)
	}
	rep.add(log, res)
	return rep, nil
}

// measure runs fn and records its duration and allocations in res after
// fn has filled it in.
func measure(res *Result, fn func()) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	fn()
	res.Elapsed = time.Since(start)
	runtime.ReadMemStats(&after)
	res.Allocated = after.TotalAlloc - before.TotalAlloc
}

func mapOptions(log *plog.Logger, ordered, borrowed bool) []xhash.Option {
	opts := []xhash.Option{xhash.WithLogger(log)}
	if ordered {
		opts = append(opts, xhash.WithInsertionOrder())
	}
	if borrowed {
		opts = append(opts, xhash.WithBorrowedKeys())
	}
	return opts
}

func scenarioStrings(log *plog.Logger) (Result, error) {
	m := xhash.NewString[int](mapOptions(log, false, false)...)
	defer m.Close()
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)
	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		e := m.Lookup(k)
		if err := check(e != nil && e.Value() == want, "get(%q) = %v, want %d", k, e, want); err != nil {
			return Result{}, err
		}
	}
	return result("strings", m), nil
}

func scenarioGrowth(log *plog.Logger) (Result, error) {
	m := xhash.NewInt[int](mapOptions(log, false, false)...)
	defer m.Close()
	sizes := []int{m.NumBuckets()}
	for i := 0; i < 300; i++ {
		m.Put(i, i)
		if n := m.NumBuckets(); n != sizes[len(sizes)-1] {
			sizes = append(sizes, n)
		}
		if err := check(4*m.Len() <= 3*m.NumBuckets(),
			"load factor exceeded: %d entries in %d buckets", m.Len(), m.NumBuckets()); err != nil {
			return Result{}, err
		}
	}
	if err := check(m.Len() == 300, "count = %d, want 300", m.Len()); err != nil {
		return Result{}, err
	}
	want := []int{11, 23, 47, 95, 191, 383, 767}
	if err := check(slices.Equal(sizes, want), "sizes = %v, want %v", sizes, want); err != nil {
		return Result{}, err
	}
	for i := 0; i < 300; i++ {
		v, ok := m.Get(i)
		if err := check(ok && v == i, "get(%d) = %d, %t after growth", i, v, ok); err != nil {
			return Result{}, err
		}
	}
	return result("growth", m), nil
}

func scenarioReverse(log *plog.Logger) (Result, error) {
	m := xhash.NewInt[int](mapOptions(log, true, false)...)
	defer m.Close()
	want := make([]int, 30)
	for i := range want {
		k := (i*37 + 11) % 101
		m.Put(k, i)
		want[len(want)-1-i] = k
	}
	var got []int
	for it := m.ReverseIter(); it.Next(); {
		got = append(got, it.Key())
	}
	if err := check(slices.Equal(got, want), "reverse order = %v, want %v", got, want); err != nil {
		return Result{}, err
	}
	return result("reverse", m), nil
}

func runWorkload(cfg *Config, log *plog.Logger) (Result, error) {
	opts := mapOptions(log, cfg.Ordered, cfg.Borrowed)
	name := "workload/" + cfg.Strategy
	switch cfg.Strategy {
	case StrategyString:
		return workload(name, xhash.New[string, int](xhash.StringKey{}, opts...), strconv.Itoa, cfg)
	case StrategyXXH3:
		return workload(name, xhash.New[string, int](xhash.XXH3{}, opts...), strconv.Itoa, cfg)
	case StrategyInt:
		return workload(name, xhash.NewInt[int](opts...), func(i int) int { return i * 7919 }, cfg)
	case StrategyBytes:
		return workload(name, xhash.New[[]byte, int](xhash.BytesKey{}, opts...), byteKey, cfg)
	case StrategyXXHash:
		return workload(name, xhash.New[[]byte, int](xhash.XXHash{}, opts...), byteKey, cfg)
	}
	return Result{}, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, cfg.Strategy)
}

func byteKey(i int) []byte {
	return strconv.AppendInt(nil, int64(i), 10)
}

// workload inserts cfg.Keys keys mapped to their insertion index,
// deletes every cfg.DeleteEvery-th one and checks lookups, iteration and
// cloning after each phase.
func workload[K any](name string, m *xhash.Map[K, int], key func(int) K, cfg *Config) (Result, error) {
	defer m.Close()
	n := cfg.Keys
	for i := 0; i < n; i++ {
		m.Put(key(i), i)
		if err := check(4*m.Len() <= 3*m.NumBuckets(),
			"load factor exceeded: %d entries in %d buckets", m.Len(), m.NumBuckets()); err != nil {
			return Result{}, err
		}
	}
	if err := check(m.Len() == n, "count = %d after %d inserts", m.Len(), n); err != nil {
		return Result{}, err
	}
	m.Put(key(0), 0)
	if err := check(m.Len() == n, "repeated put changed count to %d", m.Len()); err != nil {
		return Result{}, err
	}

	deleted := func(i int) bool {
		return cfg.DeleteEvery > 0 && i%cfg.DeleteEvery == 0
	}
	live := n
	for i := 0; i < n; i++ {
		if !deleted(i) {
			continue
		}
		if err := check(m.Delete(key(i)), "delete of present key %d reported absent", i); err != nil {
			return Result{}, err
		}
		if err := check(!m.Delete(key(i)), "second delete of key %d reported present", i); err != nil {
			return Result{}, err
		}
		live--
	}
	if err := check(m.Len() == live, "count = %d after deletes, want %d", m.Len(), live); err != nil {
		return Result{}, err
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(key(i))
		if deleted(i) {
			if err := check(!ok, "deleted key %d still present", i); err != nil {
				return Result{}, err
			}
			continue
		}
		if err := check(ok && v == i, "get(%d) = %d, %t", i, v, ok); err != nil {
			return Result{}, err
		}
	}

	var values []int
	for _, v := range m.All() {
		values = append(values, v)
	}
	if err := check(len(values) == live, "iteration visited %d entries, want %d", len(values), live); err != nil {
		return Result{}, err
	}
	if cfg.Ordered {
		if err := check(slices.IsSorted(values), "iteration out of insertion order"); err != nil {
			return Result{}, err
		}
	}

	c := m.Clone()
	defer c.Close()
	if err := check(xhash.Equal(m, c), "clone differs from source"); err != nil {
		return Result{}, err
	}
	if cfg.Ordered {
		var cv []int
		for v := range c.Values() {
			cv = append(cv, v)
		}
		if err := check(slices.Equal(values, cv), "clone iterates in a different order"); err != nil {
			return Result{}, err
		}
	}
	c.Put(key(n), n)
	if err := check(!m.Has(key(n)) && m.Len() == live, "mutating the clone changed the source"); err != nil {
		return Result{}, err
	}

	return result(name, m), nil
}

func result[K, V any](name string, m *xhash.Map[K, V]) Result {
	return Result{Name: name, Stats: m.Stats()}
}
