// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (a replayable snapshot of
an HTTP request) and Execution (the state of one digest authentication
exchange).

The first core type is Plan. A Plan captures everything needed to build
an equivalent HTTP request more than once: method, URL, headers and a
pre-buffered body. The digest flow sends the request once, and if the
server answers with a Digest challenge, builds a second request from
the same Plan with an Authorization header added. For those familiar
with net/http, a Plan looks like a stripped-down http.Request with the
server-side fields removed and the body replaced by a []byte.

Create a plan directly:

	p, err := request.NewPlan("GET", "https://example.com/resource", nil)
	...
	e, err := client.Do(p, "user", "pass")

Or capture one from an existing http.Request:

	p, err := request.FromRequest(req)

Capture fails with a *SnapshotError if the request body cannot be
replayed (a body stream with no GetBody function). In that case no
network I/O takes place.

A plan may carry a context which controls cancellation of the whole
exchange, both sends included:

	p, err := request.NewPlanWithContext(ctx, "POST", "https://example.com/upload", body)

The second core type is Execution, which represents the state of a
digest exchange as it moves through the Pending, Sent, Challenged,
Resent and Done states. Execution is the output type of the client's
plan executing methods and the input type of event handlers.
*/
package request
