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
)

var (
	// ErrRendererNotRegistered indicates that no renderer is registered for a content type.
	ErrRendererNotRegistered = errors.New("no renderer registered for content type")

	// ErrNilRenderer indicates that a renderer override does not resolve to a usable renderer.
	ErrNilRenderer = errors.New("renderer must not be nil")

	// ErrNilHandler indicates that a handler registration does not resolve to a usable handler.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrNilErrorTarget indicates that a handler was registered for a nil error value.
	ErrNilErrorTarget = errors.New("handler target error must not be nil")

	// ErrNoContentTypes indicates that the supported content type list is empty.
	ErrNoContentTypes = errors.New("at least one content type is required")
)

// ConfigurationError reports that the middleware is unusable as configured.
// Unlike every other failure, it is not converted into a response: it
// propagates past the dispatch boundary so misconfiguration surfaces during
// development and integration testing instead of being swallowed as a 500.
type ConfigurationError struct {
	// Op names the operation that detected the misconfiguration.
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("errorhandler: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
