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
	"net/http"
)

// StatusError allows errors to declare their own HTTP status code.
// Domain errors can optionally implement this interface to control the
// status of the response they are converted into.
//
// Example:
//
//	type QuotaError struct {
//		Message string
//	}
//
//	func (e QuotaError) Error() string {
//		return e.Message
//	}
//
//	func (e QuotaError) HTTPStatus() int {
//		return http.StatusTooManyRequests
//	}
type StatusError interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// RequestError allows errors to carry a back-reference to the request that
// raised them. When a caught failure implements this interface, the dispatch
// middleware hands the carried request to the handler, preserving the
// original request identity across pipeline layers that may have replaced it.
type RequestError interface {
	error
	// Request returns the originating request, or nil if unknown.
	Request() *http.Request
}

// ResolveStatus maps a failure to an HTTP status code.
//
// If the error declares an intrinsic status via StatusError and the value is
// a valid HTTP status, that status is returned. Every other error resolves
// to 500. ResolveStatus is pure and total: it never fails.
func ResolveStatus(err error) int {
	var typed StatusError
	if errors.As(err, &typed) {
		if status := typed.HTTPStatus(); status >= 100 && status <= 599 {
			return status
		}
	}

	return http.StatusInternalServerError
}

// HTTPError is a failure with an intrinsic HTTP status code and a reference
// to the request that raised it. It is the routine, expected failure shape:
// raising one from a pipeline stage produces a response with the carried
// status instead of a generic 500.
type HTTPError struct {
	status  int
	message string
	request *http.Request
	cause   error
}

// NewHTTPError creates an HTTPError with the given status and message.
// If message is empty, the standard status text is used.
//
// Example:
//
//	return errorhandler.NewHTTPError(r, http.StatusGone, "document archived")
func NewHTTPError(r *http.Request, status int, message string) *HTTPError {
	return &HTTPError{status: status, message: message, request: r}
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(r *http.Request, message string) *HTTPError {
	return NewHTTPError(r, http.StatusBadRequest, message)
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(r *http.Request, message string) *HTTPError {
	return NewHTTPError(r, http.StatusUnauthorized, message)
}

// NewForbidden creates a 403 Forbidden error.
func NewForbidden(r *http.Request, message string) *HTTPError {
	return NewHTTPError(r, http.StatusForbidden, message)
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(r *http.Request, message string) *HTTPError {
	return NewHTTPError(r, http.StatusNotFound, message)
}

// NewInternalServerError creates a 500 Internal Server Error wrapping cause.
func NewInternalServerError(r *http.Request, cause error) *HTTPError {
	return &HTTPError{status: http.StatusInternalServerError, request: r, cause: cause}
}

// NewNotImplemented creates a 501 Not Implemented error.
func NewNotImplemented(r *http.Request, message string) *HTTPError {
	return NewHTTPError(r, http.StatusNotImplemented, message)
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.cause != nil {
		return e.cause.Error()
	}

	return http.StatusText(e.status)
}

// HTTPStatus returns the intrinsic status code.
func (e *HTTPError) HTTPStatus() int {
	return e.status
}

// Request returns the originating request, or nil if none was attached.
func (e *HTTPError) Request() *http.Request {
	return e.request
}

// Unwrap returns the wrapped cause, if any.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// MethodNotAllowedError reports that the request method is not supported by
// the matched route. It carries the set of methods the route does support.
// The default handler treats it as an OPTIONS/CORS accommodation rather than
// a generic error: the response is 200 with an Allow header and empty body.
type MethodNotAllowedError struct {
	*HTTPError
	allowed []string
}

// NewMethodNotAllowed creates a MethodNotAllowedError listing the methods
// the route supports.
//
// Example:
//
//	return errorhandler.NewMethodNotAllowed(r, http.MethodGet, http.MethodPost)
func NewMethodNotAllowed(r *http.Request, allowed ...string) *MethodNotAllowedError {
	return &MethodNotAllowedError{
		HTTPError: NewHTTPError(r, http.StatusMethodNotAllowed, ""),
		allowed:   allowed,
	}
}

// Allowed returns the methods the route supports, in registration order.
func (e *MethodNotAllowedError) Allowed() []string {
	return e.allowed
}

// WithStatus wraps an error with an explicit HTTP status code.
// The wrapped error implements the StatusError interface.
//
// This is useful to control the response status for an error type you do not
// own. If err is nil, the status text for the given code is used as the
// error message.
//
// Example:
//
//	return errorhandler.WithStatus(sql.ErrNoRows, http.StatusNotFound)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

// statusError wraps an error with an explicit status code.
type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}

	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}
