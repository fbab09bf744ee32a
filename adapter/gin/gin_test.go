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

//go:build !integration

package ginadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rivaas.dev/errorhandler"
)

func newRouter(m *errorhandler.Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(m))

	return r
}

func TestMiddleware_PanicDispatch(t *testing.T) {
	t.Parallel()

	m := errorhandler.MustNew(errorhandler.WithoutLogging())
	r := newRouter(m)
	r.GET("/missing", func(c *gin.Context) {
		panic(errorhandler.NewNotFound(c.Request, "nothing here"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestMiddleware_CollectedErrorDispatch(t *testing.T) {
	t.Parallel()

	m := errorhandler.MustNew(errorhandler.WithoutLogging())
	r := newRouter(m)
	r.POST("/orders", func(c *gin.Context) {
		_ = c.Error(errorhandler.NewBadRequest(c.Request, "malformed payload"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMiddleware_NoFailurePassesThrough(t *testing.T) {
	t.Parallel()

	m := errorhandler.MustNew(errorhandler.WithoutLogging())
	r := newRouter(m)
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
