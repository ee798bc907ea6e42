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
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema names defined in petfriends.yaml.
const (
	SchemaAuthKey = "AuthKey"
	SchemaPet     = "Pet"
	SchemaPetList = "PetList"
)

//go:embed petfriends.yaml
var petFriendsSchema []byte

//nolint:gochecknoglobals
var (
	schemaOnce sync.Once
	schemaDoc  *openapi3.T
	schemaErr  error
)

func loadSchemaDocument() (*openapi3.T, error) {
	schemaOnce.Do(func() {
		doc, err := openapi3.NewLoader().LoadFromData(petFriendsSchema)
		if err != nil {
			schemaErr = fmt.Errorf("loading embedded schema: %w", err)
			return
		}

		schemaDoc = doc
	})

	return schemaDoc, schemaErr
}

// ValidateSchema checks a decoded JSON body against a named component schema.
func ValidateSchema(name string, body map[string]interface{}) error {
	doc, err := loadSchemaDocument()
	if err != nil {
		return err
	}

	ref, ok := doc.Components.Schemas[name]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", name)
	}

	if body == nil {
		return fmt.Errorf("validating %s: body is not a JSON object", name)
	}

	if err := ref.Value.VisitJSON(body); err != nil {
		return fmt.Errorf("validating %s: %w", name, err)
	}

	return nil
}
