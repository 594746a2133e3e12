// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package answer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogama/digestx/challenge"
	"github.com/google/uuid"
	"github.com/icholy/digest"
)

// HeaderName is the request header carrying the answer.
const HeaderName = "Authorization"

var (
	// ErrUnsupportedAlgorithm is wrapped by a ComputationError when the
	// challenge names an algorithm outside RFC 7616.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrUnsupportedQOP is wrapped by a ComputationError when the
	// challenge offers only unknown quality of protection options.
	ErrUnsupportedQOP = errors.New("unsupported qop")
)

// algorithms are the algorithm directives the digest library hashes.
// The session variants (MD5-sess and friends) are not among them.
var algorithms = map[string]bool{
	"":            true,
	"MD5":         true,
	"SHA-256":     true,
	"SHA-512-256": true,
}

// A ComputationError indicates a challenge was received but could not
// be answered, for example because it requires an unsupported
// algorithm.
type ComputationError struct {
	// Algorithm is the algorithm named by the challenge.
	Algorithm string
	// QOP is the quality of protection options offered.
	QOP []string
	Err error
}

func (e *ComputationError) Error() string {
	return "digestx/answer: cannot answer challenge: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *ComputationError) Unwrap() error {
	return e.Err
}

// Credentials are the username and password used to answer a
// challenge. They are only borrowed for the duration of one call.
type Credentials struct {
	Username string
	Password string
}

// String returns the username with the password elided, so that
// Credentials never leak a password through fmt.
func (c Credentials) String() string {
	return c.Username + ":xxxxx"
}

// GoString is like String.
func (c Credentials) GoString() string {
	return fmt.Sprintf("answer.Credentials{Username:%q, Password:\"xxxxx\"}", c.Username)
}

// Params are the per-request inputs to the digest formula.
type Params struct {
	// Method is the request method.
	Method string
	// URI is the request target as sent on the request line: the path
	// and query of the URL, never the scheme or host.
	URI string
	// Body is the request body. It is only hashed when the qop is
	// auth-int, and nil hashes the same as an empty body.
	Body []byte
	// Count is the nonce count. Zero means 1.
	Count int
	// Cnonce is the client nonce. Empty means a fresh random one.
	Cnonce string
}

// Compute returns the Authorization header value answering c for the
// request described by p.
//
// When the challenge offers both auth and auth-int, auth is chosen.
// When it offers no qop at all, the RFC 2069 form is used. Any other
// offer, or an algorithm other than MD5, SHA-256 or SHA-512-256,
// results in a *ComputationError. Session algorithms such as MD5-sess
// are not supported.
func Compute(c *challenge.Challenge, p Params, cred Credentials) (string, error) {
	if !algorithms[strings.ToUpper(c.Algorithm)] {
		return "", computationError(c, fmt.Errorf("%w %q", ErrUnsupportedAlgorithm, c.Algorithm))
	}
	qop, err := selectQOP(c)
	if err != nil {
		return "", computationError(c, err)
	}

	dc := c.Digest()
	dc.Algorithm = strings.ToUpper(dc.Algorithm)
	dc.QOP = nil
	if qop != "" {
		dc.QOP = []string{qop}
	}

	count := p.Count
	if count <= 0 {
		count = 1
	}
	cnonce := p.Cnonce
	if cnonce == "" {
		cnonce = NewCnonce()
	}
	opts := digest.Options{
		Method:   p.Method,
		URI:      p.URI,
		Count:    count,
		Cnonce:   cnonce,
		Username: cred.Username,
		Password: cred.Password,
	}
	if qop == "auth-int" {
		body := p.Body
		opts.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	dcred, err := digest.Digest(dc, opts)
	if err != nil {
		return "", computationError(c, err)
	}
	return dcred.String(), nil
}

func selectQOP(c *challenge.Challenge) (string, error) {
	switch {
	case c.SupportsQOP("auth"):
		return "auth", nil
	case c.SupportsQOP("auth-int"):
		return "auth-int", nil
	case len(c.QOP) == 0:
		return "", nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedQOP, strings.Join(c.QOP, ","))
	}
}

func computationError(c *challenge.Challenge, err error) *ComputationError {
	return &ComputationError{
		Algorithm: c.Algorithm,
		QOP:       append([]string(nil), c.QOP...),
		Err:       err,
	}
}

// NewCnonce returns a fresh random client nonce of 32 hex digits.
func NewCnonce() string {
	u := uuid.New()
	return strings.ReplaceAll(u.String(), "-", "")
}
