// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package challenge

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/icholy/digest"
)

// HeaderName is the response header carrying authentication challenges.
const HeaderName = "WWW-Authenticate"

const scheme = "Digest"

var (
	// ErrNotDigest is returned by ParseValue when the value does not
	// use the Digest scheme.
	ErrNotDigest = errors.New("digestx/challenge: not a Digest challenge")
	// ErrMalformed is returned by ParseValue when a Digest value can
	// not be parsed or lacks a nonce.
	ErrMalformed = errors.New("digestx/challenge: malformed Digest challenge")
)

// A Challenge is a parsed Digest challenge.
//
// A Challenge only exists for a well-formed Digest value with a
// non-empty nonce. It is only valid for the single exchange it was
// received in and is never cached.
type Challenge struct {
	Realm  string
	Nonce  string
	Opaque string
	// Algorithm is the algorithm directive exactly as sent. Empty means
	// MD5.
	Algorithm string
	// QOP lists the quality of protection options offered. Empty means
	// the server uses the RFC 2069 compatible form.
	QOP      []string
	Domain   []string
	Stale    bool
	Charset  string
	Userhash bool
}

// Parse looks for a usable Digest challenge in h.
//
// Every WWW-Authenticate value is considered in order, and the first
// one which parses as a Digest challenge is returned. If there is no
// WWW-Authenticate header, or none of its values is a well-formed
// Digest challenge, Parse returns nil and false.
func Parse(h http.Header) (*Challenge, bool) {
	for _, v := range h.Values(HeaderName) {
		if c, err := ParseValue(v); err == nil {
			return c, true
		}
	}
	return nil, false
}

// ParseValue parses a single WWW-Authenticate header value.
//
// The scheme token is matched case-insensitively. ParseValue returns an
// error wrapping ErrNotDigest if the scheme is not Digest, and an error
// wrapping ErrMalformed if the directives can not be parsed or the
// nonce is missing.
func ParseValue(s string) (*Challenge, error) {
	s = strings.TrimSpace(s)
	token, rest := splitScheme(s)
	if !strings.EqualFold(token, scheme) {
		return nil, ErrNotDigest
	}
	dc, err := digest.ParseChallenge(scheme + " " + rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dc.Nonce == "" {
		return nil, fmt.Errorf("%w: missing nonce", ErrMalformed)
	}
	return &Challenge{
		Realm:     dc.Realm,
		Nonce:     dc.Nonce,
		Opaque:    dc.Opaque,
		Algorithm: dc.Algorithm,
		QOP:       qopTokens(dc.QOP),
		Domain:    dc.Domain,
		Stale:     dc.Stale,
		Charset:   dc.Charset,
		Userhash:  dc.Userhash,
	}, nil
}

// qopTokens trims the qop options and drops empty ones. The directive is
// a comma separated list which servers usually write with spaces, as in
// qop="auth-int, auth".
func qopTokens(qop []string) []string {
	var tokens []string
	for _, q := range qop {
		if q = strings.TrimSpace(q); q != "" {
			tokens = append(tokens, q)
		}
	}
	return tokens
}

func splitScheme(s string) (token, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// SupportsQOP reports whether qop is one of the offered quality of
// protection options.
func (c *Challenge) SupportsQOP(qop string) bool {
	for _, q := range c.QOP {
		if q == qop {
			return true
		}
	}
	return false
}

// Digest converts c back into the representation used by
// github.com/icholy/digest.
func (c *Challenge) Digest() *digest.Challenge {
	return &digest.Challenge{
		Realm:     c.Realm,
		Domain:    append([]string(nil), c.Domain...),
		Nonce:     c.Nonce,
		Opaque:    c.Opaque,
		Stale:     c.Stale,
		Algorithm: c.Algorithm,
		QOP:       append([]string(nil), c.QOP...),
		Charset:   c.Charset,
		Userhash:  c.Userhash,
	}
}

// String formats c as a WWW-Authenticate header value.
func (c *Challenge) String() string {
	return c.Digest().String()
}
