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

package errorhandler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "http error carries its status",
			err:  NewNotFound(req, "user not found"),
			want: http.StatusNotFound,
		},
		{
			name: "generic error is a server fault",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
		{
			name: "status error interface",
			err:  &testErrorWithStatus{message: "too many", status: http.StatusTooManyRequests},
			want: http.StatusTooManyRequests,
		},
		{
			name: "wrapped status error is still visible",
			err:  fmt.Errorf("outer: %w", NewForbidden(req, "nope")),
			want: http.StatusForbidden,
		},
		{
			name: "status wrapper",
			err:  WithStatus(errors.New("gone"), http.StatusGone),
			want: http.StatusGone,
		},
		{
			name: "out of range status is a server fault",
			err:  &testErrorWithStatus{message: "weird", status: 9000},
			want: http.StatusInternalServerError,
		},
		{
			name: "method not allowed resolves to 405",
			err:  NewMethodNotAllowed(req, http.MethodPost),
			want: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ResolveStatus(tt.err))
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)

	t.Run("constructors set status", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, http.StatusBadRequest, NewBadRequest(req, "").HTTPStatus())
		assert.Equal(t, http.StatusUnauthorized, NewUnauthorized(req, "").HTTPStatus())
		assert.Equal(t, http.StatusForbidden, NewForbidden(req, "").HTTPStatus())
		assert.Equal(t, http.StatusNotFound, NewNotFound(req, "").HTTPStatus())
		assert.Equal(t, http.StatusNotImplemented, NewNotImplemented(req, "").HTTPStatus())
	})

	t.Run("message defaults to status text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Not Found", NewNotFound(req, "").Error())
		assert.Equal(t, "order missing", NewNotFound(req, "order missing").Error())
	})

	t.Run("carries the originating request", func(t *testing.T) {
		t.Parallel()

		err := NewNotFound(req, "")
		assert.Same(t, req, err.Request())
	})

	t.Run("internal server error wraps its cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("db connection lost")
		err := NewInternalServerError(req, cause)

		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
		assert.Equal(t, "db connection lost", err.Error())
		require.ErrorIs(t, err, cause)
	})
}

func TestMethodNotAllowedError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodDelete, "/orders", nil)
	err := NewMethodNotAllowed(req, http.MethodGet, http.MethodPost)

	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, err.Allowed())
	assert.Equal(t, http.StatusMethodNotAllowed, err.HTTPStatus())
	assert.Same(t, req, err.Request())
}

func TestWithStatus(t *testing.T) {
	t.Parallel()

	t.Run("wraps an existing error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("no rows")
		err := WithStatus(cause, http.StatusNotFound)

		assert.Equal(t, "no rows", err.Error())
		assert.Equal(t, http.StatusNotFound, ResolveStatus(err))
		require.ErrorIs(t, err, cause)
	})

	t.Run("nil error uses status text", func(t *testing.T) {
		t.Parallel()

		err := WithStatus(nil, http.StatusNoContent)
		assert.Equal(t, "No Content", err.Error())
	})
}
