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

package errorhandler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"rivaas.dev/errorhandler"
)

// quotaError is a domain error used by the examples.
type quotaError struct{}

func (*quotaError) Error() string {
	return "quota exhausted"
}

// ExampleMustNew demonstrates the failure boundary around an error-returning
// handler.
func ExampleMustNew() {
	m := errorhandler.MustNew(errorhandler.WithoutLogging())

	h := m.WrapFunc(func(_ http.ResponseWriter, r *http.Request) error {
		return errorhandler.NewNotFound(r, "user not found")
	})

	r := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	r.Header.Set("Accept", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	fmt.Printf("Status: %d\n", w.Code)
	fmt.Printf("Content-Type: %s\n", w.Header().Get("Content-Type"))
	fmt.Printf("Body: %s\n", w.Body.String())
	// Output:
	// Status: 404
	// Content-Type: text/plain
	// Body: An error has occurred while processing your request.
}

// ExampleWithHandler demonstrates routing a domain error type to its own
// handler.
func ExampleWithHandler() {
	m := errorhandler.MustNew(
		errorhandler.WithoutLogging(),
		errorhandler.WithHandler(&quotaError{}, errorhandler.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request, _ error, _ errorhandler.Flags) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, "slow down")
			},
		)),
	)

	h := m.WrapFunc(func(_ http.ResponseWriter, _ *http.Request) error {
		return &quotaError{}
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	fmt.Printf("Status: %d\n", w.Code)
	fmt.Printf("Body: %s\n", w.Body.String())
	// Output:
	// Status: 429
	// Body: slow down
}

// ExampleNegotiate demonstrates content negotiation order.
func ExampleNegotiate() {
	known := errorhandler.DefaultContentTypes()

	fmt.Println(errorhandler.Negotiate("text/plain,text/html", known))
	fmt.Println(errorhandler.Negotiate("bogus/type", known))
	fmt.Println(errorhandler.Negotiate("", known))
	// Output:
	// text/plain
	// application/json
	// application/json
}
