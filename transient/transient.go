// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a fresh attempt at the same exchange is very unlikely to
// succeed. Canceled means the caller gave up. Every other category
// means a fresh attempt has some prospect of success.
type Category int

const (
	// Not indicates a nil error, or any error which is not transient.
	Not Category = iota
	// Timeout indicates a client-side timeout.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method that reports true. This includes
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED), typically because the service is starting
	// or restarting.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// connection (syscall.ECONNRESET).
	ConnReset
	// Canceled indicates the exchange's context was canceled. It is
	// not transient: the caller asked for the exchange to stop.
	Canceled
)

var categoryNames = [...]string{
	"not",
	"timeout",
	"conn-refused",
	"conn-reset",
	"canceled",
}

// String returns a short lowercase name for the category, suitable for
// use as a log field or metric label.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err.
//
// Categorize looks at the wrapped causes of err, not just err itself.
// It never consults a Temporary method, as the semantics of Temporary
// aren't well defined.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Not
}

// IsTransient reports whether err falls into a category where trying
// the exchange again may succeed.
func IsTransient(err error) bool {
	switch Categorize(err) {
	case Timeout, ConnRefused, ConnReset:
		return true
	default:
		return false
	}
}

type hasTimeout interface {
	Timeout() bool
}
