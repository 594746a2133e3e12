// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/digestx/challenge"
	"github.com/gogama/digestx/transient"
)

// An Execution represents the state of a single digest exchange for a
// Plan.
//
// An Execution is created when the exchange starts, updated as it
// moves through its states, and ultimately returned to the caller.
// Event handlers may store data in an Execution with SetValue, but
// should otherwise treat its fields as read-only. The one exception
// is the Request field during a BeforeAttempt event, which handlers
// may change before it is sent.
//
// An Execution belongs to exactly one exchange. Nothing in it is shared
// with other exchanges, even those running on the same client.
type Execution struct {
	// Plan is the request snapshot being executed. It is never nil.
	Plan *Plan

	// Start is the time the exchange started. It is the zero value
	// until the exchange starts.
	Start time.Time

	// End is the time the exchange ended. It is the zero value until
	// the exchange ends.
	End time.Time

	// State is the current position within the exchange.
	State State

	// Attempt is the zero-based number of the current send. It is
	// zero for the first send and one for the authenticated resend.
	// It never exceeds one.
	Attempt int

	// Request is the HTTP request for the current send, or the one
	// already made by the most recent send.
	Request *http.Request

	// Response is the HTTP response received by the most recent send.
	// It is nil if the most recent send ended in a transport error, or
	// before the first send completes.
	Response *http.Response

	// Challenge is the Digest challenge parsed from the first
	// response. It is nil unless the exchange reached Challenged.
	Challenge *challenge.Challenge

	// Err is the error which ended the exchange, if any. It is either
	// a transport error from the underlying sender, a context error if
	// the plan was cancelled between sends, or an
	// *answer.ComputationError. A 401 response, with or without a
	// challenge, is never an error.
	Err error

	// Body is the fully buffered body of the final response. It is
	// only filled in by clients which buffer response bodies.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the most recent HTTP response,
// or 0 if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the headers of the most recent HTTP response, or the
// nil header if there is none. The nil header is safe for read-only
// operations.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the exchange.
//
// If the exchange has not yet started, the duration is zero. If it has
// ended, the duration is End minus Start. Otherwise it is the current
// time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the exchange has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the exchange has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Challenged indicates whether the server answered the first request
// with a usable Digest challenge.
func (e *Execution) Challenged() bool {
	return e.Challenge != nil
}

// Timeout indicates whether Err is a timeout, as reported by
// transient.Categorize.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
