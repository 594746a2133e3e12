// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogama/digestx/answer"
	"github.com/gogama/digestx/request"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, timeouts) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// A Client sends request plans with HTTP Digest Authentication. Its
// zero value is a valid configuration which uses http.DefaultClient as
// the HTTPDoer and runs no event handlers.
//
// For each plan, Client sends the request once. If the response is a
// 401 carrying a usable Digest challenge, Client computes the answer
// and sends an equivalent request once more with the Authorization
// header added. The second response is final, whatever its status.
// Every other response, including a 401 without a usable challenge,
// is returned as it is.
//
// Client keeps no state between exchanges: no nonces or credentials
// are cached. It is safe for concurrent use by multiple goroutines, and
// should be reused, since its HTTPDoer typically caches connections.
//
// Client imposes no timeouts and never retries on transport errors.
// Both are the business of the HTTPDoer and of the plan's context.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient is used.
	HTTPDoer HTTPDoer
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during an exchange.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Do runs the digest exchange for p using username and password, and
// returns the final execution state. This is the blocking form of the
// exchange; see Go for the concurrent form.
//
// The final response body is read to the end, buffered into the
// execution's Body field, and closed.
//
// The returned error, which is also stored in the execution, is nil
// unless the exchange failed:
//
// • a transport error on either send is returned as a *url.Error, as
// with http.Client;
//
// • a challenge which cannot be answered is returned as an
// *answer.ComputationError, and the unauthenticated 401 is not
// silently returned in its place.
//
// A nil plan causes a panic.
func (c *Client) Do(p *request.Plan, username, password string) (*request.Execution, error) {
	e := c.execute(p, answer.Credentials{Username: username, Password: password})
	return e, e.Err
}

func (c *Client) execute(p *request.Plan, cred answer.Credentials) *request.Execution {
	if p == nil {
		panic("digestx: nil plan")
	}

	doer := c.doer()
	handlers := c.Handlers
	e := &request.Execution{Plan: p}

	start(e, handlers)
	exchange(e, cred, doer.Do, handlers)
	if e.Err != nil {
		e.Err = urlErrorWrap(p, e.Err)
	} else {
		readBody(p, e, handlers)
	}
	end(e, handlers)
	return e
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

// Get runs a digest exchange for a GET to the specified URL.
func (c *Client) Get(url, username, password string) (*request.Execution, error) {
	return Get(c, url, username, password)
}

// Head runs a digest exchange for a HEAD to the specified URL.
func (c *Client) Head(url, username, password string) (*request.Execution, error) {
	return Head(c, url, username, password)
}

// Post runs a digest exchange for a POST to the specified URL.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by request.BodyBytes. The body is buffered, so it can
// be sent twice and hashed for the auth-int quality of protection.
func (c *Client) Post(url, contentType string, body interface{}, username, password string) (*request.Execution, error) {
	return Post(c, url, contentType, body, username, password)
}

// PostForm runs a digest exchange for a POST to the specified URL, with
// data's keys and values URL-encoded as the request body.
func (c *Client) PostForm(url string, data url.Values, username, password string) (*request.Execution, error) {
	return PostForm(c, url, data, username, password)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if it has one.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

// urlErrorWrap wraps transport errors in *url.Error the way http.Client
// does. Computation errors are distinct from transport errors and are
// returned unchanged.
func urlErrorWrap(p *request.Plan, err error) error {
	var compErr *answer.ComputationError
	if errors.As(err, &compErr) {
		return err
	}
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
