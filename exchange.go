// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package digestx

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gogama/digestx/answer"
	"github.com/gogama/digestx/challenge"
	"github.com/gogama/digestx/request"
)

// maxDiscard bounds how much of an unwanted 401 body is read before it
// is closed. Small bodies are drained so the connection can be reused
// for the resend; larger ones are abandoned.
const maxDiscard = 64 << 10

var errNilResponse = errors.New("digestx: sender returned nil response and nil error")

// A sendFunc performs one send. It is the only thing which differs
// between the blocking, concurrent and RoundTripper forms of the
// exchange, all of which run the same state machine.
type sendFunc func(*http.Request) (*http.Response, error)

func start(e *request.Execution, handlers *HandlerGroup) {
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()
}

// exchange runs the digest state machine for e, which must have a
// plan. On return e holds the final response or the error which ended
// the exchange. The caller moves e to Done using end.
//
// Transport errors are stored in e.Err exactly as send returned them.
// A *answer.ComputationError is stored when a challenge arrived but
// could not be answered; the unauthenticated 401 is then kept in
// e.Response with its body closed, and nothing is resent.
func exchange(e *request.Execution, cred answer.Credentials, send sendFunc, handlers *HandlerGroup) {
	p := e.Plan
	ctx := p.Context()

	attempt(e, p.ToRequest(ctx), send, handlers)
	if e.Err != nil || e.StatusCode() != http.StatusUnauthorized {
		return
	}

	chal, ok := challenge.Parse(e.Header())
	if !ok {
		return
	}
	e.Challenge = chal
	e.State = request.Challenged
	handlers.run(AfterChallenge, e)

	auth, err := answer.Compute(chal, answer.Params{
		Method: p.Method,
		URI:    p.URL.RequestURI(),
		Body:   p.Body,
	}, cred)
	if err != nil {
		discard(e.Response)
		e.Err = err
		return
	}
	req, err := p.ToRequestWithHeader(ctx, answer.HeaderName, auth)
	if err != nil {
		discard(e.Response)
		e.Err = &answer.ComputationError{Algorithm: chal.Algorithm, QOP: chal.QOP, Err: err}
		return
	}

	discard(e.Response)
	if err = ctx.Err(); err != nil {
		e.Response = nil
		e.Err = err
		return
	}

	e.Attempt++
	attempt(e, req, send, handlers)
}

func attempt(e *request.Execution, req *http.Request, send sendFunc, handlers *HandlerGroup) {
	e.Request = req
	e.Response = nil
	e.Err = nil
	handlers.run(BeforeAttempt, e)
	resp, err := send(e.Request)
	if err == nil && resp == nil {
		err = errNilResponse
	}
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		e.Err = err
	} else {
		e.Response = resp
	}
	if e.Attempt == 0 {
		e.State = request.Sent
	} else {
		e.State = request.Resent
	}
	handlers.run(AfterAttempt, e)
}

func end(e *request.Execution, handlers *HandlerGroup) {
	e.State = request.Done
	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
}

func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, maxDiscard)
	_ = resp.Body.Close()
}
