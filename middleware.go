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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"sync"
)

// Middleware is the failure boundary of a request pipeline. It catches
// failures raised by the next stage, routes them to a handler registered for
// the failure's concrete type (falling back to a default handler), and
// always produces a response.
//
// Configure it once with New or MustNew; the handler and renderer registries
// are read-only afterwards and safe for concurrent use by any number of
// in-flight requests.
type Middleware struct {
	flags        Flags
	contentTypes []string
	renderers    rendererRegistry
	handlers     map[reflect.Type]Handler
	metrics      *errorMetrics
	logger       *slog.Logger

	// defaultHandler is populated lazily on first dispatch when no default
	// was configured. defaultOnce keeps first access idempotent under
	// concurrent dispatches.
	defaultHandler Handler
	defaultOnce    sync.Once
}

// New creates a dispatch middleware.
//
// New fails with a *ConfigurationError when an option does not resolve to a
// usable target: a nil renderer or handler, an empty content type list, a
// content type with no renderer, or a Prometheus registration conflict.
// Misconfiguration must be visible to the operator, not swallowed into a
// generic 500.
func New(opts ...Option) (*Middleware, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.errs) > 0 {
		return nil, &ConfigurationError{Op: "new middleware", Err: errors.Join(cfg.errs...)}
	}

	renderers := defaultRenderers()
	for contentType, r := range cfg.renderers {
		renderers[contentType] = r
	}
	for _, contentType := range cfg.contentTypes {
		if renderers[contentType] == nil {
			return nil, &ConfigurationError{
				Op:  "new middleware",
				Err: fmt.Errorf("%w: %q", ErrRendererNotRegistered, contentType),
			}
		}
	}

	m := &Middleware{
		flags:          cfg.flags,
		contentTypes:   cfg.contentTypes,
		renderers:      renderers,
		handlers:       cfg.handlers,
		logger:         cfg.logger,
		defaultHandler: cfg.defaultHandler,
	}

	if cfg.registerer != nil {
		metrics, err := newErrorMetrics(cfg.registerer)
		if err != nil {
			return nil, &ConfigurationError{Op: "register metrics", Err: err}
		}
		m.metrics = metrics
	}

	return m, nil
}

// MustNew creates a dispatch middleware and panics if the configuration is
// invalid. Use it when the middleware is constructed at program start.
func MustNew(opts ...Option) *Middleware {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Wrap establishes the failure boundary around next. Panics raised while
// next serves the request are converted to errors and dispatched; a panic
// carrying a *ConfigurationError is re-raised because the system is unusable
// as configured.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := panicError(rec)

				var cfgErr *ConfigurationError
				if errors.As(err, &cfgErr) {
					panic(rec)
				}

				m.dispatch(w, r, err, true)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// WrapFunc establishes the failure boundary around an error-returning
// handler. A returned error is dispatched exactly like a panic; returning
// is the idiomatic way for a stage to raise a failure.
func (m *Middleware) WrapFunc(next func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			m.dispatch(w, r, err, false)
		}
	}))
}

// Dispatch routes an already-caught failure to the handler registered for
// its concrete type, falling back to the default handler. It is the entry
// point for framework adapters that run their own failure boundary. A nil
// err is a no-op.
func (m *Middleware) Dispatch(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	m.dispatch(w, r, err, false)
}

// dispatch implements the handler selection state machine. escaped records
// whether the failure escaped the next stage as a panic.
func (m *Middleware) dispatch(w http.ResponseWriter, r *http.Request, err error, escaped bool) {
	// An HTTP-aware failure carries the request that raised it; that one,
	// not whatever the inner layers left behind, belongs to the handler.
	var carrier RequestError
	if errors.As(err, &carrier) {
		if orig := carrier.Request(); orig != nil {
			r = orig
		}
	}

	markSpan(r, err, escaped)
	if m.metrics != nil {
		m.metrics.observe(err, ResolveStatus(err))
	}

	h, ok := m.handlers[reflect.TypeOf(err)]
	if !ok {
		h = m.resolveDefaultHandler()
	}

	h.Handle(w, r, err, m.flags)
}

// resolveDefaultHandler returns the configured default handler, building a
// standard ErrorHandler on first use when none was set.
func (m *Middleware) resolveDefaultHandler() Handler {
	m.defaultOnce.Do(func() {
		if m.defaultHandler == nil {
			m.defaultHandler = &ErrorHandler{
				ContentTypes: m.contentTypes,
				Renderers:    m.renderers,
				Logger:       m.logger,
			}
		}
	})

	return m.defaultHandler
}

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("panic: %v", v)
}
