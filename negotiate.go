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
	"net/http"
	"strings"
)

// Supported content types.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeXML     = "application/xml"
	ContentTypeTextXML = "text/xml"
	ContentTypeHTML    = "text/html"
	ContentTypeText    = "text/plain"
)

// DefaultContentTypes returns the supported content types in default
// preference order. JSON comes first so that clients with no usable Accept
// header get a machine-readable body.
func DefaultContentTypes() []string {
	return []string{
		ContentTypeJSON,
		ContentTypeXML,
		ContentTypeTextXML,
		ContentTypeHTML,
		ContentTypeText,
	}
}

// Negotiate selects a response representation from an Accept header value
// against an ordered list of known content types.
//
// The header is split on commas into candidates; media type parameters
// (quality weights and the like) are stripped and whitespace trimmed. The
// candidates are walked in header order and the first one that exactly
// matches a known type wins, so client preference order outranks registry
// order. A candidate the client mangled matches nothing; it is skipped
// rather than rejected. When no candidate matches any known type, including
// an empty or absent header, the first known type is the default.
//
// Selection is deterministic for identical inputs. An empty knownTypes list
// returns "".
//
// Examples:
//
//	Negotiate("text/plain,text/html", DefaultContentTypes()) // "text/plain"
//	Negotiate("bogus/type", DefaultContentTypes())           // "application/json"
//	Negotiate("", DefaultContentTypes())                     // "application/json"
func Negotiate(accept string, knownTypes []string) string {
	if len(knownTypes) == 0 {
		return ""
	}

	for _, candidate := range strings.Split(accept, ",") {
		media := candidate
		if i := strings.IndexByte(media, ';'); i >= 0 {
			media = media[:i]
		}
		media = strings.TrimSpace(media)
		if media == "" {
			continue
		}

		for _, known := range knownTypes {
			if media == known {
				return known
			}
		}
	}

	return knownTypes[0]
}

// negotiateRequest negotiates a content type from the request headers.
//
// The Accept header is the primary source. When it is absent, the request's
// Content-Type header is consulted as a legacy secondary source before
// falling back to the default. Content-Type describes the request body, not
// the desired response, so this fallback is questionable; it is kept for
// compatibility with clients that rely on it.
func negotiateRequest(r *http.Request, knownTypes []string) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		accept = r.Header.Get("Content-Type")
	}

	return Negotiate(accept, knownTypes)
}
