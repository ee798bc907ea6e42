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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
)

// PetPayload holds the fields submitted when creating or updating a pet.
// Age is sent as a form value whatever its origin.
type PetPayload struct {
	Name       string
	AnimalType string
	Age        string
}

func (p PetPayload) formData() map[string]string {
	return map[string]string{
		"name":        p.Name,
		"animal_type": p.AnimalType,
		"age":         p.Age,
	}
}

// PetPayloadBuilder builds pet payloads for testing.
type PetPayloadBuilder struct {
	payload PetPayload
}

// NewPetPayload creates a builder with a unique name and fixed defaults.
func NewPetPayload() *PetPayloadBuilder {
	return &PetPayloadBuilder{
		payload: PetPayload{
			Name:       generateRandomName("testautomation"),
			AnimalType: "cat",
			Age:        "3",
		},
	}
}

func (b *PetPayloadBuilder) WithName(name string) *PetPayloadBuilder {
	b.payload.Name = name
	return b
}

func (b *PetPayloadBuilder) WithAnimalType(animalType string) *PetPayloadBuilder {
	b.payload.AnimalType = animalType
	return b
}

// WithAge sets the age verbatim, so malformed values can be submitted.
func (b *PetPayloadBuilder) WithAge(age string) *PetPayloadBuilder {
	b.payload.Age = age
	return b
}

func (b *PetPayloadBuilder) WithAgeYears(years int) *PetPayloadBuilder {
	b.payload.Age = strconv.Itoa(years)
	return b
}

// Build returns the completed pet payload.
func (b *PetPayloadBuilder) Build() PetPayload {
	return b.payload
}

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}
