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
	"log/slog"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
)

// Option defines functional options for middleware configuration.
type Option func(*config)

// config holds the configuration for the dispatch middleware.
type config struct {
	// flags is passed unchanged to every handler invocation.
	flags Flags

	// logger receives error records. Nil disables logging.
	logger *slog.Logger

	// contentTypes is the supported content type list in preference order.
	contentTypes []string

	// renderers holds per-instance renderer overrides.
	renderers map[string]Renderer

	// handlers maps concrete error types to handlers.
	handlers map[reflect.Type]Handler

	// defaultHandler is the fallback when no type-specific handler matches.
	defaultHandler Handler

	// registerer enables the Prometheus error counter when non-nil.
	registerer prometheus.Registerer

	// errs collects registration mistakes; New reports them.
	errs []error
}

// defaultConfig returns the default middleware configuration: logging on,
// details off, slog default logger.
func defaultConfig() *config {
	return &config{
		flags:        Flags{LogErrors: true},
		logger:       slog.Default(),
		contentTypes: DefaultContentTypes(),
		renderers:    map[string]Renderer{},
		handlers:     map[reflect.Type]Handler{},
	}
}

// WithDisplayErrorDetails includes diagnostic detail in response bodies.
// Leave it off in production: error messages can leak internals.
//
// Example:
//
//	errorhandler.MustNew(errorhandler.WithDisplayErrorDetails(true))
func WithDisplayErrorDetails(enabled bool) Option {
	return func(cfg *config) {
		cfg.flags.DisplayErrorDetails = enabled
	}
}

// WithErrorLogging enables or disables logging of handled failures.
// Default: enabled.
func WithErrorLogging(enabled bool) Option {
	return func(cfg *config) {
		cfg.flags.LogErrors = enabled
	}
}

// WithDetailedErrorLogging includes the stack trace in log entries. Without
// it only a summary line is written. Default: disabled.
func WithDetailedErrorLogging(enabled bool) Option {
	return func(cfg *config) {
		cfg.flags.LogErrorDetails = enabled
	}
}

// WithLogger sets a custom slog.Logger for error records.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	errorhandler.MustNew(errorhandler.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithoutLogging disables error logging entirely.
// Useful for tests to avoid noisy output.
func WithoutLogging() Option {
	return func(cfg *config) {
		cfg.logger = nil
		cfg.flags.LogErrors = false
	}
}

// WithContentTypes overrides the supported content types and their
// preference order. The first entry is the negotiation fallback. Every
// listed type must have a renderer, built-in or supplied via WithRenderer;
// New fails otherwise.
//
// Example:
//
//	errorhandler.MustNew(errorhandler.WithContentTypes(
//		errorhandler.ContentTypeHTML,
//		errorhandler.ContentTypeJSON,
//	))
func WithContentTypes(types ...string) Option {
	return func(cfg *config) {
		if len(types) == 0 {
			cfg.errs = append(cfg.errs, ErrNoContentTypes)
			return
		}
		cfg.contentTypes = types
	}
}

// WithRenderer overrides the renderer for a content type. Overrides apply
// before the middleware serves its first request; a nil renderer is a
// configuration error reported by New.
//
// Example:
//
//	errorhandler.MustNew(errorhandler.WithRenderer(
//		errorhandler.ContentTypeJSON, &problemJSONRenderer{},
//	))
func WithRenderer(contentType string, r Renderer) Option {
	return func(cfg *config) {
		if r == nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: %q", ErrNilRenderer, contentType))
			return
		}
		cfg.renderers[contentType] = r
	}
}

// WithHandler registers a handler for the concrete type of target. Lookup
// during dispatch is by exact runtime type: wrapping or embedding does not
// inherit the registration. Raising any other type falls back to the
// default handler.
//
// Example:
//
//	errorhandler.MustNew(errorhandler.WithHandler(
//		&app.QuotaError{},
//		errorhandler.HandlerFunc(handleQuota),
//	))
func WithHandler(target error, h Handler) Option {
	return func(cfg *config) {
		if target == nil {
			cfg.errs = append(cfg.errs, ErrNilErrorTarget)
			return
		}
		if h == nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: for type %T", ErrNilHandler, target))
			return
		}
		cfg.handlers[reflect.TypeOf(target)] = h
	}
}

// WithDefaultHandler sets the fallback handler used when no type-specific
// handler is registered for a failure. Unset, a standard ErrorHandler is
// built lazily on first use.
func WithDefaultHandler(h Handler) Option {
	return func(cfg *config) {
		if h == nil {
			cfg.errs = append(cfg.errs, fmt.Errorf("%w: default handler", ErrNilHandler))
			return
		}
		cfg.defaultHandler = h
	}
}

// WithMetrics registers an http_errors_total counter (labels: type, status)
// with reg and increments it for every dispatched failure. A nil reg uses
// prometheus.DefaultRegisterer.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	errorhandler.MustNew(errorhandler.WithMetrics(reg))
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *config) {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		cfg.registerer = reg
	}
}
