// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"net/http"

	"github.com/gogama/digestx/answer"
	"github.com/gogama/digestx/request"
)

// Send sends r with HTTP Digest Authentication using d, and returns the
// final response with its body unread. If d is nil, http.DefaultClient
// is used.
//
// Send is the equivalent of d.Do(r) for a server which may answer with
// a Digest challenge. r is captured with request.FromRequest before
// anything is sent, and r itself is never sent or modified: both sends
// use fresh copies. If r cannot be captured, for example because its
// body cannot be replayed, Send returns the *request.SnapshotError
// without any network I/O.
//
// Transport errors from d are returned unchanged. A challenge which
// cannot be answered results in an *answer.ComputationError.
func Send(d HTTPDoer, r *http.Request, username, password string) (*http.Response, error) {
	p, err := request.FromRequest(r)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = http.DefaultClient
	}

	e := &request.Execution{Plan: p}
	start(e, nil)
	exchange(e, answer.Credentials{Username: username, Password: password}, d.Do, nil)
	end(e, nil)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Response, nil
}
