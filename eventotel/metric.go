// Copyright 2026 The digestx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package eventotel

import (
	"errors"
	"net/http"

	"github.com/gogama/digestx"
	"github.com/gogama/digestx/answer"
	"github.com/gogama/digestx/request"
	"github.com/gogama/digestx/transient"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	metricExchanges        = "digestx.client.exchanges"
	metricExchangeDuration = "digestx.client.exchange.duration"
)

const (
	attrOutcome = attribute.Key("digestx.outcome")
	attrErrType = attribute.Key("error.type")
)

// Outcomes recorded in the digestx.outcome attribute.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

type meter struct {
	exchanges metric.Int64Counter
	duration  metric.Float64Histogram
}

// InstallMetrics adds a handler to g which records the outcome and
// duration of every exchange using a meter from mp.
//
// The outcome is "rejected" when the final response is still a 401,
// "error" when the exchange ended with an error, and "ok" otherwise.
func InstallMetrics(g *digestx.HandlerGroup, mp metric.MeterProvider) error {
	m := mp.Meter(ScopeName)
	exchanges, err := m.Int64Counter(
		metricExchanges,
		metric.WithDescription("Number of digest exchanges"),
		metric.WithUnit("{exchange}"),
	)
	if err != nil {
		return err
	}
	duration, err := m.Float64Histogram(
		metricExchangeDuration,
		metric.WithDescription("Duration of digest exchanges, including both sends"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return err
	}

	mm := &meter{exchanges: exchanges, duration: duration}
	g.PushBack(digestx.AfterExecutionEnd, digestx.HandlerFunc(mm.end))
	return nil
}

func (m *meter) end(_ digestx.Event, e *request.Execution) {
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(e.Plan.Method),
		attrChallenged.Bool(e.Challenged()),
		attrOutcome.String(outcome(e)),
	}
	if e.Response != nil {
		attrs = append(attrs, semconv.HTTPResponseStatusCode(e.StatusCode()))
	}
	if e.Err != nil {
		attrs = append(attrs, attrErrType.String(errorType(e.Err)))
	}
	ctx := e.Plan.Context()
	opt := metric.WithAttributes(attrs...)
	m.exchanges.Add(ctx, 1, opt)
	m.duration.Record(ctx, e.Duration().Seconds(), opt)
}

func outcome(e *request.Execution) string {
	switch {
	case e.Err != nil:
		return OutcomeError
	case e.StatusCode() == http.StatusUnauthorized:
		return OutcomeRejected
	default:
		return OutcomeOK
	}
}

// errorType keeps the error.type attribute low-cardinality.
func errorType(err error) string {
	var compErr *answer.ComputationError
	if errors.As(err, &compErr) {
		return "computation"
	}
	if c := transient.Categorize(err); c != transient.Not {
		return c.String()
	}
	return "_OTHER"
}
