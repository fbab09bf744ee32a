// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errorhandler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// markSpan records the failure on the request's active OpenTelemetry span.
// exception.escaped is set only when the failure escaped the next stage as
// a panic.
func markSpan(r *http.Request, err error, escaped bool) {
	span := trace.SpanFromContext(r.Context())
	if span == nil || !span.SpanContext().IsValid() {
		return
	}

	span.SetStatus(codes.Error, "request failed")
	attrs := []attribute.KeyValue{
		attribute.String("exception.type", fmt.Sprintf("%T", err)),
		attribute.String("exception.message", err.Error()),
	}
	if escaped {
		attrs = append(attrs, attribute.Bool("exception.escaped", true))
	}
	span.SetAttributes(attrs...)
	span.RecordError(err)
}

// errorMetrics exposes Prometheus instrumentation for dispatched failures.
// The type and status labels keep cardinality bounded: error types form a
// small closed set per application, and status codes are finite.
type errorMetrics struct {
	// handled counts dispatched failures by error type and resolved status.
	handled *prometheus.CounterVec
}

// newErrorMetrics registers the error counter with reg.
func newErrorMetrics(reg prometheus.Registerer) (*errorMetrics, error) {
	handled := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of failures converted to HTTP error responses.",
		},
		[]string{"type", "status"},
	)
	if err := reg.Register(handled); err != nil {
		return nil, err
	}

	return &errorMetrics{handled: handled}, nil
}

// observe counts one dispatched failure.
func (m *errorMetrics) observe(err error, status int) {
	m.handled.WithLabelValues(fmt.Sprintf("%T", err), strconv.Itoa(status)).Inc()
}
