// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"net/url"

	"github.com/gogama/digestx/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do runs a digest exchange for a request plan and returns the final
// execution state (and error, if any). Client implements the Doer
// interface, and any other Doer implementation must behave
// substantially the same as Client.Do.
type Doer interface {
	Do(p *request.Plan, username, password string) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which are sitting idle in a "keep-alive"
// state. It does not interrupt any connections currently in use.
type IdleCloser interface {
	CloseIdleConnections()
}

// Get uses the specified Doer to run a digest exchange for a GET to
// the specified URL.
//
// To make a request plan with custom headers, use request.NewPlan and
// d.Do.
func Get(d Doer, url, username, password string) (*request.Execution, error) {
	p, err := request.NewPlan("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(p, username, password)
}

// Head uses the specified Doer to run a digest exchange for a HEAD to
// the specified URL.
func Head(d Doer, url, username, password string) (*request.Execution, error) {
	p, err := request.NewPlan("HEAD", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(p, username, password)
}

// Post uses the specified Doer to run a digest exchange for a POST to
// the specified URL.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes, namely: string; []byte;
// io.Reader; and io.ReadCloser.
func Post(d Doer, url, contentType string, body interface{}, username, password string) (*request.Execution, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return nil, err
	}
	p, err := request.NewPlan("POST", url, b)
	if err != nil {
		return nil, err
	}
	p.Header.Set("Content-Type", contentType)
	return d.Do(p, username, password)
}

// PostForm uses the specified Doer to run a digest exchange for a POST
// to the specified URL, with data's keys and values URL-encoded as the
// request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func PostForm(d Doer, url string, data url.Values, username, password string) (*request.Execution, error) {
	return Post(d, url, "application/x-www-form-urlencoded", data.Encode(), username, password)
}
