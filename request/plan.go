// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "digestx/request: nil context"
)

// ErrBodyNotReplayable is wrapped by the SnapshotError returned from
// FromRequest when the request has a body stream but no GetBody
// function to obtain a fresh copy of it.
var ErrBodyNotReplayable = errors.New("digestx/request: request body is a stream and cannot be replayed")

// A SnapshotError indicates an http.Request could not be captured into
// a Plan. It is returned before any network I/O takes place.
type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string {
	return "digestx/request: cannot snapshot request: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// A Plan is an immutable snapshot of a logical HTTP request. It holds
// enough information to build byte-for-byte equivalent http.Request
// values any number of times, which the digest flow needs because the
// request may have to be sent a second time with an Authorization
// header attached.
//
// The field structure of Plan mirrors the lower-level http.Request
// with server-only fields removed and the body replaced by a
// pre-buffered []byte.
//
// Once a Plan has been handed to a client it must not be modified.
// Requests built from it never share mutable state with it.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent by the
	// client.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent.
	Body []byte

	// TransferEncoding lists the transfer encodings from outermost to
	// innermost. An empty list denotes the "identity" encoding.
	TransferEncoding []string

	// Close stipulates whether to close the connection after sending
	// each request built from the plan.
	Close bool

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host will be sent.
	Host string

	// ctx allows the whole exchange to be cancelled. It should only be
	// modified by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. If body is an io.Reader, it is
// read to the end and buffered into a []byte. If body is an
// io.ReadCloser, it is closed after buffering.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("digestx/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// FromRequest captures r into a new Plan. The plan takes its context
// from r.
//
// The caller's request is not modified: the URL, header map and
// transfer encodings are deep-copied, and a non-empty body is obtained
// through r.GetBody rather than by draining r.Body. If r has a body but
// no GetBody function, FromRequest fails with a *SnapshotError wrapping
// ErrBodyNotReplayable. Requests created by http.NewRequest with a
// *bytes.Buffer, *bytes.Reader or *strings.Reader body always have
// GetBody set.
func FromRequest(r *http.Request) (*Plan, error) {
	if r == nil {
		return nil, &SnapshotError{Err: errors.New("nil request")}
	}
	if r.URL == nil {
		return nil, &SnapshotError{Err: errors.New("nil request URL")}
	}
	method := r.Method
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, &SnapshotError{Err: fmt.Errorf("invalid method %q", method)}
	}
	body, err := snapshotBody(r)
	if err != nil {
		return nil, &SnapshotError{Err: err}
	}
	h := r.Header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	var te []string
	if len(r.TransferEncoding) > 0 {
		te = append(te, r.TransferEncoding...)
	}
	return &Plan{
		ctx:              r.Context(),
		Method:           method,
		URL:              cloneURL(r.URL),
		Header:           h,
		Body:             body,
		TransferEncoding: te,
		Close:            r.Close,
		Host:             r.Host,
	}, nil
}

func snapshotBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if r.GetBody == nil {
		return nil, ErrBodyNotReplayable
	}
	rc, err := r.GetBody()
	if err != nil {
		return nil, err
	}
	return BodyBytes(rc)
}

// Context returns the request plan's context. To change the context,
// use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the digest exchange:
// the first send, reading the challenge, and the authenticated resend.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
func (p *Plan) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the plan's Authorization header to use HTTP Basic
// Authentication with the provided username and password.
//
// A digest exchange replaces this header on the resend, so it is only
// useful for servers which accept either scheme.
func (p *Plan) SetBasicAuth(username, password string) {
	auth := username + ":" + password
	p.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
}

// ToRequest creates an HTTP request equivalent to the plan. The context
// of the new request is set to ctx, which may not be nil.
//
// Each call returns a request with its own URL and header map, so
// changes made to one request are never seen by the plan or by other
// requests built from it.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = cloneURL(p.URL)
	r.Header = p.Header.Clone()
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	if len(p.Body) > 0 {
		body := p.Body
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
	}
	if len(p.TransferEncoding) > 0 {
		r.TransferEncoding = append([]string(nil), p.TransferEncoding...)
	}
	r.Close = p.Close
	r.Host = p.Host
	return r
}

// ToRequestWithHeader is like ToRequest but additionally sets the
// header name to value, replacing any values already present under
// that name regardless of case. The plan itself is not changed.
//
// An error is returned if name is not a valid header field name or
// value is not a valid header field value.
func (p *Plan) ToRequestWithHeader(ctx context.Context, name, value string) (*http.Request, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return nil, fmt.Errorf("digestx/request: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return nil, fmt.Errorf("digestx/request: invalid value for header %q", name)
	}
	r := p.ToRequest(ctx)
	for k := range r.Header {
		if strings.EqualFold(k, name) {
			delete(r.Header, k)
		}
	}
	r.Header.Set(name, value)
	return r, nil
}

func cloneURL(u *urlpkg.URL) *urlpkg.URL {
	if u == nil {
		return nil
	}
	u2 := new(urlpkg.URL)
	*u2 = *u
	if u.User != nil {
		u2.User = new(urlpkg.Userinfo)
		*u2.User = *u.User
	}
	return u2
}

// validMethod reports whether method is an RFC 7230 token. The empty
// string is handled by callers, which interpret it as "GET".
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
