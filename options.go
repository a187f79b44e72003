// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xhash

import "github.com/phuslu/log"

type config struct {
	ordered  bool
	borrowed bool
	hint     int
	logger   *log.Logger
}

// Option configures a Map while it is being created.
type Option interface {
	apply(c *config)
}

type optionFunc func(c *config)

func (f optionFunc) apply(c *config) { f(c) }

// WithInsertionOrder makes the Map thread every entry onto an order chain
// so that it can be iterated oldest-to-newest (OrderedIter) or
// newest-to-oldest (ReverseIter). The order survives growth.
func WithInsertionOrder() Option {
	return optionFunc(func(c *config) { c.ordered = true })
}

// WithBorrowedKeys makes the Map store keys exactly as passed in, without
// cloning them. The caller must keep any memory a key refers to alive and
// unmodified for as long as the key is in the Map.
func WithBorrowedKeys() Option {
	return optionFunc(func(c *config) { c.borrowed = true })
}

// WithSizeHint starts the Map with the smallest bucket count in the
// growth sequence that holds n entries without growing.
func WithSizeHint(n int) Option {
	return optionFunc(func(c *config) { c.hint = n })
}

// WithLogger makes the Map log growth, Clear and Close at debug level.
func WithLogger(l *log.Logger) Option {
	return optionFunc(func(c *config) { c.logger = l })
}
