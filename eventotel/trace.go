// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package eventotel

import (
	"context"
	"strings"

	"github.com/gogama/digestx"
	"github.com/gogama/digestx/request"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// ScopeName is the instrumentation scope of the tracer and meter.
const ScopeName = "github.com/gogama/digestx/eventotel"

const (
	attrAttempt    = attribute.Key("digestx.attempt")
	attrChallenged = attribute.Key("digestx.challenged")
	attrRealm      = attribute.Key("digestx.realm")
	attrAlgorithm  = attribute.Key("digestx.algorithm")
	attrQOP        = attribute.Key("digestx.qop")
	attrStale      = attribute.Key("digestx.stale")
)

type spanKey struct{}

type tracer struct {
	tracer trace.Tracer
}

// InstallTracing adds tracing handlers to g which record every exchange
// as a span using a tracer from tp.
func InstallTracing(g *digestx.HandlerGroup, tp trace.TracerProvider) {
	t := &tracer{tracer: tp.Tracer(ScopeName)}
	g.PushBack(digestx.BeforeExecutionStart, digestx.HandlerFunc(t.start))
	g.PushBack(digestx.BeforeAttempt, digestx.HandlerFunc(t.beforeAttempt))
	g.PushBack(digestx.AfterAttempt, digestx.HandlerFunc(t.afterAttempt))
	g.PushBack(digestx.AfterChallenge, digestx.HandlerFunc(t.afterChallenge))
	g.PushBack(digestx.AfterExecutionEnd, digestx.HandlerFunc(t.end))
}

func (t *tracer) start(_ digestx.Event, e *request.Execution) {
	p := e.Plan
	_, span := t.tracer.Start(p.Context(), "digest "+p.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(p.Method),
			semconv.URLFull(p.URL.Redacted()),
			semconv.ServerAddress(p.URL.Hostname()),
		),
	)
	e.SetValue(spanKey{}, span)
}

func (t *tracer) beforeAttempt(_ digestx.Event, e *request.Execution) {
	span := spanOf(e)
	if span == nil {
		return
	}
	span.AddEvent("send", trace.WithAttributes(attrAttempt.Int(e.Attempt)))
	e.Request = e.Request.WithContext(trace.ContextWithSpan(e.Request.Context(), span))
}

func (t *tracer) afterAttempt(_ digestx.Event, e *request.Execution) {
	span := spanOf(e)
	if span == nil {
		return
	}
	attrs := []attribute.KeyValue{attrAttempt.Int(e.Attempt)}
	if e.Response != nil {
		attrs = append(attrs, semconv.HTTPResponseStatusCode(e.StatusCode()))
	}
	if e.Err != nil {
		attrs = append(attrs, attribute.String("error.message", e.Err.Error()))
	}
	span.AddEvent("response", trace.WithAttributes(attrs...))
}

func (t *tracer) afterChallenge(_ digestx.Event, e *request.Execution) {
	span := spanOf(e)
	if span == nil {
		return
	}
	c := e.Challenge
	span.AddEvent("challenge", trace.WithAttributes(
		attrRealm.String(c.Realm),
		attrAlgorithm.String(c.Algorithm),
		attrQOP.String(strings.Join(c.QOP, ",")),
		attrStale.Bool(c.Stale),
	))
}

func (t *tracer) end(_ digestx.Event, e *request.Execution) {
	span := spanOf(e)
	if span == nil {
		return
	}
	defer span.End()
	span.SetAttributes(
		attrAttempt.Int(e.Attempt),
		attrChallenged.Bool(e.Challenged()),
	)
	if e.Response != nil {
		span.SetAttributes(semconv.HTTPResponseStatusCode(e.StatusCode()))
	}
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	}
}

// SpanFromExecution returns the span recording e, if tracing handlers
// are installed, and otherwise a no-op span.
func SpanFromExecution(e *request.Execution) trace.Span {
	if span := spanOf(e); span != nil {
		return span
	}
	return trace.SpanFromContext(context.Background())
}

func spanOf(e *request.Execution) trace.Span {
	span, _ := e.Value(spanKey{}).(trace.Span)
	return span
}
