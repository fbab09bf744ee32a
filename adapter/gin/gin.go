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

// Package ginadapter bridges rivaas.dev/errorhandler into Gin pipelines.
//
// Register the adapter early in the middleware chain, before Gin's own
// Recovery, so failures reach the dispatcher first:
//
//	m := errorhandler.MustNew()
//	r := gin.New()
//	r.Use(ginadapter.Middleware(m))
package ginadapter

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"rivaas.dev/errorhandler"
)

// Middleware returns a gin.HandlerFunc that routes failures through m.
// Panics raised by later handlers are recovered and dispatched, and errors
// collected via c.Error are drained after the chain runs; the last collected
// error wins. Both paths abort the remaining chain.
func Middleware(m *errorhandler.Middleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				c.Abort()
				m.Dispatch(c.Writer, c.Request, recoveredError(rec))
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			c.Abort()
			m.Dispatch(c.Writer, c.Request, c.Errors.Last().Err)
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
