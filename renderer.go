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
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"strings"
)

// genericErrorMessage is the body shown when diagnostic details are hidden.
const genericErrorMessage = "An error has occurred while processing your request."

// Renderer serializes a failure's diagnostic content into a specific text
// format. When displayDetails is false the body carries only a generic
// summary, never the error message itself.
//
// Renderers must not fail: Render always returns a usable body.
type Renderer interface {
	// Render produces the response body for err.
	Render(err error, displayDetails bool) string
}

// rendererRegistry maps content types to renderers. It is populated at
// construction time and read-only afterwards, so concurrent reads from
// in-flight requests are safe.
type rendererRegistry map[string]Renderer

// defaultRenderers returns the built-in content type to renderer mapping.
func defaultRenderers() rendererRegistry {
	return rendererRegistry{
		ContentTypeJSON:    &JSONRenderer{},
		ContentTypeXML:     &XMLRenderer{},
		ContentTypeTextXML: &XMLRenderer{},
		ContentTypeHTML:    &HTMLRenderer{},
		ContentTypeText:    &TextRenderer{},
	}
}

// selectRenderer returns the renderer bound to contentType.
//
// The negotiator is contractually restricted to known types, so a miss here
// means the registry itself is misconfigured. The selector panics with a
// *ConfigurationError instead of silently defaulting so the fault surfaces
// at the point of misconfiguration.
func (reg rendererRegistry) selectRenderer(contentType string) Renderer {
	r, ok := reg[contentType]
	if !ok || r == nil {
		panic(&ConfigurationError{
			Op:  "select renderer",
			Err: fmt.Errorf("%w: %q", ErrRendererNotRegistered, contentType),
		})
	}

	return r
}

// causeOf returns the message of the first wrapped cause, or "".
func causeOf(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}

	return ""
}

// JSONRenderer renders failures as a JSON object.
type JSONRenderer struct{}

// Render implements the Renderer interface.
func (*JSONRenderer) Render(err error, displayDetails bool) string {
	body := map[string]any{
		"message": genericErrorMessage,
	}
	if displayDetails {
		body["message"] = err.Error()
		body["type"] = fmt.Sprintf("%T", err)
		if cause := causeOf(err); cause != "" {
			body["cause"] = cause
		}
	}

	encoded, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		return `{"message":"` + genericErrorMessage + `"}`
	}

	return string(encoded)
}

// xmlError is the document shape produced by XMLRenderer.
type xmlError struct {
	XMLName xml.Name `xml:"error"`
	Message string   `xml:"message"`
	Type    string   `xml:"type,omitempty"`
	Cause   string   `xml:"cause,omitempty"`
}

// XMLRenderer renders failures as an XML document. It serves both the
// application/xml and text/xml content types.
type XMLRenderer struct{}

// Render implements the Renderer interface.
func (*XMLRenderer) Render(err error, displayDetails bool) string {
	doc := xmlError{Message: genericErrorMessage}
	if displayDetails {
		doc.Message = err.Error()
		doc.Type = fmt.Sprintf("%T", err)
		doc.Cause = causeOf(err)
	}

	encoded, marshalErr := xml.Marshal(doc)
	if marshalErr != nil {
		return xml.Header + "<error><message>" + genericErrorMessage + "</message></error>"
	}

	return xml.Header + string(encoded)
}

// TextRenderer renders failures as plain text.
type TextRenderer struct{}

// Render implements the Renderer interface.
func (*TextRenderer) Render(err error, displayDetails bool) string {
	if !displayDetails {
		return genericErrorMessage
	}

	var b strings.Builder
	b.WriteString(err.Error())
	fmt.Fprintf(&b, "\ntype: %T", err)
	if cause := causeOf(err); cause != "" {
		b.WriteString("\ncause: ")
		b.WriteString(cause)
	}

	return b.String()
}

// HTMLRenderer renders failures as a minimal HTML page.
type HTMLRenderer struct{}

// Render implements the Renderer interface.
func (*HTMLRenderer) Render(err error, displayDetails bool) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Application Error</title></head><body>")
	b.WriteString("<h1>Application Error</h1>")
	if displayDetails {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(err.Error()))
		fmt.Fprintf(&b, "<p><code>%s</code></p>", html.EscapeString(fmt.Sprintf("%T", err)))
		if cause := causeOf(err); cause != "" {
			fmt.Fprintf(&b, "<p>caused by: %s</p>", html.EscapeString(cause))
		}
	} else {
		fmt.Fprintf(&b, "<p>%s</p>", genericErrorMessage)
	}
	b.WriteString("</body></html>")

	return b.String()
}
