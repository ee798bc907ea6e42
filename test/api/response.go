/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the outcome of a single API call.
// JSON is set when the body decodes to an object, Text always holds the raw body.
type Response struct {
	StatusCode int
	JSON       map[string]interface{}
	Text       string
}

func newResponse(statusCode int, body []byte) *Response {
	response := &Response{
		StatusCode: statusCode,
		Text:       string(body),
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err == nil {
		response.JSON = decoded
	}

	return response
}

// IsJSON reports whether the body was a JSON object.
func (r *Response) IsJSON() bool {
	return r.JSON != nil
}

// HasKey reports whether the JSON body has the given top level field.
// Text bodies never have fields.
func (r *Response) HasKey(field string) bool {
	if !r.IsJSON() {
		return false
	}

	_, ok := r.JSON[field]

	return ok
}

// Contains reports whether the raw body contains substr.
func (r *Response) Contains(substr string) bool {
	return strings.Contains(r.Text, substr)
}

// String returns a top level field formatted as text, or "" if it is absent.
// Numbers are rendered without a fractional part when they are integral.
func (r *Response) String(field string) string {
	if !r.HasKey(field) {
		return ""
	}

	return stringify(r.JSON[field])
}

// Pets returns the records of a pet listing.
func (r *Response) Pets() []map[string]interface{} {
	if !r.IsJSON() {
		return nil
	}

	raw, ok := r.JSON["pets"].([]interface{})
	if !ok {
		return nil
	}

	pets := make([]map[string]interface{}, 0, len(raw))

	for _, item := range raw {
		if pet, ok := item.(map[string]interface{}); ok {
			pets = append(pets, pet)
		}
	}

	return pets
}

// PetIDs returns the identifiers of a pet listing in listing order.
func (r *Response) PetIDs() []string {
	pets := r.Pets()

	ids := make([]string, 0, len(pets))

	for _, pet := range pets {
		if id := stringify(pet["id"]); id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}

		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
