// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package answer computes the Authorization header value which answers a
Digest challenge.

	auth, err := answer.Compute(chal, answer.Params{
		Method: "GET",
		URI:    u.RequestURI(),
	}, answer.Credentials{Username: "user", Password: "pass"})

The hash computation itself is done by github.com/icholy/digest.
Compute decides what is supported before delegating, and reports
challenges it cannot honor with a *ComputationError.

Each call generates a fresh client nonce and, unless told otherwise,
uses a nonce count of 1. Nothing is remembered between calls, so
Compute is safe for concurrent use.
*/
package answer
