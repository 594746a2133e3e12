// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package eventotel provides digestx event handlers which report digest
exchanges to OpenTelemetry.

InstallTracing records one client span per exchange, with span events
for each send and for the challenge. The span is also placed in the
context of every request sent, so an instrumented HTTPDoer or
RoundTripper parents its own spans under it:

	g := &digestx.HandlerGroup{}
	eventotel.InstallTracing(g, otel.GetTracerProvider())
	client := &digestx.Client{Handlers: g}

InstallMetrics records a counter of exchanges and a histogram of their
durations.

Credentials, nonces and header values are never recorded.
*/
package eventotel
