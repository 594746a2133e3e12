// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package challenge extracts HTTP Digest Authentication challenges (RFC
7616, RFC 2617) from WWW-Authenticate response headers.

	chal, ok := challenge.Parse(resp.Header)
	if !ok {
		// No usable Digest challenge: not an error.
	}

The directive syntax is parsed by github.com/icholy/digest. This
package adds the policy around it: which header values are considered,
and what counts as a usable challenge. A missing header, a non-Digest
scheme, and a malformed Digest value all mean "no challenge".
*/
package challenge
