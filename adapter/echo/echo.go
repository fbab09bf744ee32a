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

// Package echoadapter bridges rivaas.dev/errorhandler into Echo pipelines.
//
// The adapter consumes errors returned by downstream handlers as well as
// panics, so Echo's HTTPErrorHandler never sees them:
//
//	m := errorhandler.MustNew()
//	e := echo.New()
//	e.Use(echoadapter.Middleware(m))
package echoadapter

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"rivaas.dev/errorhandler"
)

// Middleware returns an echo.MiddlewareFunc that routes failures through m.
// Errors returned by next are dispatched instead of being propagated to
// Echo's error handler; panics are recovered and dispatched the same way.
func Middleware(m *errorhandler.Middleware) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if rec := recover(); rec != nil {
					m.Dispatch(c.Response(), c.Request(), recoveredError(rec))
				}
			}()

			if err := next(c); err != nil {
				m.Dispatch(c.Response(), c.Request(), err)
			}

			return nil
		}
	}
}

// recoveredError converts a recovered panic value into an error.
func recoveredError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("panic: %v", v)
}
