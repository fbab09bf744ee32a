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
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

// Flags carries the per-request display and logging switches. The middleware
// passes its configured flags unchanged to every handler invocation.
type Flags struct {
	// DisplayErrorDetails includes diagnostic detail in the response body.
	// Leave it off in production: error messages can leak internals.
	DisplayErrorDetails bool

	// LogErrors writes one log entry per handled failure.
	LogErrors bool

	// LogErrorDetails includes the stack trace in the log entry. Without it
	// only a summary line is written.
	LogErrorDetails bool
}

// Handler converts a caught failure into a finished HTTP response.
//
// Implementations write the full response (status, headers, body) to w. They
// must not fail: a handler that cannot produce its preferred response still
// writes something well-formed.
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request, err error, flags Flags)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, err error, flags Flags)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(w http.ResponseWriter, r *http.Request, err error, flags Flags) {
	f(w, r, err, flags)
}

// ErrorHandler is the default Handler. It negotiates a response
// representation from the request headers, renders the failure in that
// format with the status resolved from the error, and optionally logs the
// failure through a slog.Logger.
//
// The zero value is usable and serves the default content types with the
// built-in renderers. Fields must not be mutated once the handler is
// serving traffic.
type ErrorHandler struct {
	// ContentTypes lists the supported content types in preference order.
	// The first entry is the fallback when negotiation matches nothing.
	// Nil means DefaultContentTypes().
	ContentTypes []string

	// Renderers maps content types to renderers. Nil means the built-in
	// mapping. Every entry in ContentTypes must have a renderer.
	Renderers map[string]Renderer

	// Logger receives error records when Flags.LogErrors is set. Nil
	// disables logging.
	Logger *slog.Logger
}

// NewErrorHandler creates an ErrorHandler with the default content types and
// renderers. A nil logger disables logging.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		ContentTypes: DefaultContentTypes(),
		Renderers:    defaultRenderers(),
		Logger:       logger,
	}
}

// Handle converts err into a response written to w.
//
// A *MethodNotAllowedError takes the OPTIONS accommodation path: 200, an
// Allow header listing the permitted methods, empty body. Everything else
// gets the negotiated representation with the resolved status. When
// flags.LogErrors is set, exactly one log entry is written per invocation;
// logging is best-effort and its failures never propagate.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error, flags Flags) {
	contentTypes := h.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = DefaultContentTypes()
	}
	renderers := h.Renderers
	if renderers == nil {
		renderers = defaultRenderers()
	}

	contentType := negotiateRequest(r, contentTypes)
	renderer := rendererRegistry(renderers).selectRenderer(contentType)

	var notAllowed *MethodNotAllowedError
	if errors.As(err, &notAllowed) {
		w.Header().Set("Allow", strings.Join(notAllowed.Allowed(), ", "))
		w.WriteHeader(http.StatusOK)
	} else {
		body := renderer.Render(err, flags.DisplayErrorDetails)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(ResolveStatus(err))
		_, _ = io.WriteString(w, body)
	}

	if flags.LogErrors {
		h.logError(r, err, flags.LogErrorDetails)
	}
}

// logError writes a single log entry for err. Logging failures are
// swallowed: observability must never break the response path.
func (h *ErrorHandler) logError(r *http.Request, err error, details bool) {
	if h.Logger == nil {
		return
	}

	defer func() {
		_ = recover()
	}()

	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("type", fmt.Sprintf("%T", err)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", ResolveStatus(err)),
	}
	if details {
		attrs = append(attrs, slog.String("stack", string(debug.Stack())))
	}

	h.Logger.Error("unhandled request error", attrs...)
}
