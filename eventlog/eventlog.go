// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package eventlog provides digestx event handlers which write
// structured logs using zerolog.
//
// Only the request method, the URL with any password redacted, and
// exchange metadata are logged. Header values, request bodies and
// credentials are never logged.
package eventlog

import (
	"net/url"

	"github.com/gogama/digestx"
	"github.com/gogama/digestx/request"
	"github.com/gogama/digestx/transient"
	"github.com/rs/zerolog"
)

var messages = map[digestx.Event]string{
	digestx.BeforeExecutionStart: "Starting digest exchange",
	digestx.BeforeAttempt:        "Sending request",
	digestx.AfterAttempt:         "Request sent",
	digestx.AfterChallenge:       "Received Digest challenge",
	digestx.BeforeReadBody:       "Reading response body",
	digestx.AfterExecutionEnd:    "Digest exchange ended",
}

// Install adds a logging handler to the back of every event handler
// chain in g.
func Install(g *digestx.HandlerGroup, logger zerolog.Logger) {
	h := Handler(logger)
	for _, evt := range digestx.Events() {
		g.PushBack(evt, h)
	}
}

// Handler returns a handler which logs every event it handles to
// logger.
//
// AfterChallenge and successful AfterExecutionEnd events are logged at
// info level, an AfterExecutionEnd with an error at warn level, and all
// other events at debug level.
func Handler(logger zerolog.Logger) digestx.Handler {
	return digestx.HandlerFunc(func(evt digestx.Event, e *request.Execution) {
		logEvent(logger, evt, e)
	})
}

func logEvent(logger zerolog.Logger, evt digestx.Event, e *request.Execution) {
	var ze *zerolog.Event
	switch {
	case evt == digestx.AfterExecutionEnd && e.Err != nil:
		ze = logger.Warn()
	case evt == digestx.AfterExecutionEnd, evt == digestx.AfterChallenge:
		ze = logger.Info()
	default:
		ze = logger.Debug()
	}
	if ze == nil {
		return
	}

	ze = ze.Str("event", evt.Name()).
		Str("method", e.Plan.Method).
		Str("url", redacted(e.Plan.URL)).
		Int("attempt", e.Attempt).
		Stringer("state", e.State)

	switch evt {
	case digestx.AfterAttempt:
		ze = withOutcome(ze, e)
	case digestx.AfterChallenge:
		c := e.Challenge
		ze = ze.Str("realm", c.Realm).
			Str("algorithm", c.Algorithm).
			Strs("qop", c.QOP).
			Bool("stale", c.Stale)
	case digestx.AfterExecutionEnd:
		ze = withOutcome(ze, e).
			Bool("challenged", e.Challenged()).
			Dur("duration", e.Duration())
	}

	ze.Msg(messages[evt])
}

func withOutcome(ze *zerolog.Event, e *request.Execution) *zerolog.Event {
	if e.Response != nil {
		ze = ze.Int("status", e.StatusCode())
	}
	if e.Err != nil {
		ze = ze.Err(e.Err).Stringer("transient", transient.Categorize(e.Err))
	}
	return ze
}

func redacted(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Redacted()
}
