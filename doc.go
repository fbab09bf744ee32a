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

// Package errorhandler converts failures raised while serving an HTTP request
// into well-formed HTTP responses.
//
// The package provides a dispatch middleware that wraps the next stage of a
// request pipeline in a failure boundary. A caught failure is routed to a
// handler registered for its concrete error type (falling back to a default
// handler), the response representation is negotiated from the client's
// Accept header, a status code is resolved from the error, and a diagnostic
// body is rendered in the negotiated format. The pipeline itself never
// fails: every error reaching the boundary becomes a response. The one
// deliberate exception is *ConfigurationError, which indicates the system is
// unusable as configured and is allowed to propagate.
//
// # Quick Start
//
//	m := errorhandler.MustNew()
//
//	mux := http.NewServeMux()
//	mux.Handle("/users", m.WrapFunc(func(w http.ResponseWriter, r *http.Request) error {
//		user, err := lookupUser(r)
//		if err != nil {
//			return errorhandler.NewNotFound(r, "user not found")
//		}
//		return json.NewEncoder(w).Encode(user)
//	}))
//
//	http.ListenAndServe(":8080", mux)
//
// Handlers may also panic with an error value; Wrap establishes the same
// boundary around a plain http.Handler:
//
//	mux.Handle("/", m.Wrap(legacyHandler))
//
// # Error Types
//
// Failures can declare their own HTTP status by implementing StatusError
// (HTTPStatus() int). The package ships a request-aware *HTTPError with
// constructors for the common statuses, and *MethodNotAllowedError which
// carries the set of permitted methods and triggers the OPTIONS
// accommodation path (200 + Allow header, empty body) instead of an error
// body. Any other error resolves to 500.
//
// # Content Negotiation
//
// The negotiator walks the Accept header candidates in order and returns the
// first one that exactly matches a supported content type. Supported types,
// in preference order: application/json, application/xml, text/xml,
// text/html, text/plain. When nothing matches, the first supported type is
// the default. Candidates the client mangled simply match nothing.
//
// # Per-Type Handlers
//
//	m := errorhandler.MustNew(
//		errorhandler.WithHandler(&app.QuotaError{}, errorhandler.HandlerFunc(handleQuota)),
//		errorhandler.WithDisplayErrorDetails(true),
//	)
//
// Handler lookup is by exact concrete type; wrapping or embedding does not
// inherit a registration. Registration happens at construction time and the
// registries are read-only afterwards, so a single middleware instance is
// safe for any number of in-flight requests.
//
// # Logging and Observability
//
// Caught failures are logged through log/slog (one entry per failure,
// best-effort), mark the active OpenTelemetry span with exception
// attributes, and can feed a Prometheus counter via WithMetrics.
//
// # Framework Adapters
//
// The adapter/gin and adapter/echo subpackages bridge the same dispatcher
// into Gin and Echo pipelines.
package errorhandler
