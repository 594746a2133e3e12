// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"net/http"

	"github.com/gogama/digestx/answer"
	"github.com/gogama/digestx/request"
)

// Transport is an http.RoundTripper which adds HTTP Digest
// Authentication to every round trip made through it.
//
// Install it in an http.Client to get digest auth for all requests:
//
//	client := &http.Client{
//		Transport: &digestx.Transport{
//			Username: "user",
//			Password: "pass",
//		},
//	}
//
// Each round trip is an independent exchange: the request is sent
// through Base, and if the response is a 401 with a usable Digest
// challenge, an equivalent request with an Authorization header is
// sent through Base once more. No challenge or nonce is cached, so
// every authenticated round trip costs two requests.
//
// The request body must be replayable (have a GetBody function), which
// is the case for requests built by http.NewRequest with a
// *bytes.Buffer, *bytes.Reader or *strings.Reader body.
type Transport struct {
	Username string
	Password string

	// Base is the RoundTripper used to make the actual requests. If
	// Base is nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during an exchange. BeforeReadBody never
	// fires, since Transport does not read response bodies.
	Handlers *HandlerGroup
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	p, err := request.FromRequest(r)
	closeRequestBody(r)
	if err != nil {
		return nil, err
	}

	e := &request.Execution{Plan: p}
	start(e, t.Handlers)
	exchange(e, answer.Credentials{Username: t.Username, Password: t.Password}, t.base().RoundTrip, t.Handlers)
	end(e, t.Handlers)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Response, nil
}

// CloseIdleConnections closes idle connections on Base, if it supports
// doing so.
func (t *Transport) CloseIdleConnections() {
	if ic, ok := t.base().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

// closeRequestBody closes the caller's body, as the RoundTripper
// contract requires. Only copies built from the snapshot are sent.
func closeRequestBody(r *http.Request) {
	if r != nil && r.Body != nil {
		_ = r.Body.Close()
	}
}
