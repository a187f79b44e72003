// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash_test

import (
	"fmt"

	"github.com/aristanetworks/xhash"
)

func ExampleMap_Iter() {
	m := xhash.NewString[string]()
	m.Put("Avenue", "AVE")
	m.Put("Street", "ST")
	m.Put("Court", "CT")

	for i := m.Iter(); i.Next(); {
		fmt.Printf("The abbreviation for %q is %q", i.Key(), i.Value())
	}
}

func ExampleMap_ReverseIter() {
	m := xhash.NewInt[string](xhash.WithInsertionOrder())
	m.Put(3, "three")
	m.Put(1, "one")
	m.Put(2, "two")

	for i := m.ReverseIter(); i.Next(); {
		fmt.Println(i.Key(), i.Value())
	}
	// Output:
	// 2 two
	// 1 one
	// 3 three
}

func ExampleMap_Delete() {
	m := xhash.NewString[int]()
	m.Put("a", 1)

	fmt.Println(m.Delete("a"))
	fmt.Println(m.Delete("a"))
	// Output:
	// true
	// false
}

func ExampleNewFunc() {
	type point struct{ x, y int }
	m := xhash.NewFunc[point, string](
		func(a, b point) bool { return a == b },
		func(p point) uint64 { return uint64(p.x)*31 + uint64(p.y) },
	)
	m.Put(point{1, 2}, "here")

	v, ok := m.Get(point{1, 2})
	fmt.Println(v, ok)
	// Output: here true
}

func ExampleMap_Update() {
	m := xhash.NewString[int]()
	for _, w := range []string{"a", "b", "a", "c", "a"} {
		m.Update(w, func(n int, _ bool) int { return n + 1 })
	}
	fmt.Println(m)
	// Output: xhash.Map[a:3 b:1 c:1]
}
