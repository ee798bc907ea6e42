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

package api_test

import (
	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/nscaledev/petfriends-acceptance/test/api"
)

var _ = Describe("ValidateSchema", func() {
	It("accepts a key response", func() {
		Expect(api.ValidateSchema(api.SchemaAuthKey, map[string]interface{}{"key": "abc"})).To(Succeed())
	})

	It("rejects a key response without a key", func() {
		Expect(api.ValidateSchema(api.SchemaAuthKey, map[string]interface{}{})).NotTo(Succeed())
	})

	It("accepts ages as text or numbers", func() {
		for _, age := range []interface{}{"7", float64(7)} {
			Expect(api.ValidateSchema(api.SchemaPet, map[string]interface{}{
				"id":          "1",
				"name":        "BOB",
				"animal_type": "catt",
				"age":         age,
			})).To(Succeed())
		}
	})

	It("validates every pet of a listing", func() {
		Expect(api.ValidateSchema(api.SchemaPetList, map[string]interface{}{
			"pets": []interface{}{
				map[string]interface{}{"id": "1", "name": "BOB", "animal_type": "catt", "age": "7"},
				map[string]interface{}{"id": "2", "name": "Rex"},
			},
		})).NotTo(Succeed())
	})

	It("rejects non-object bodies and unknown schemas", func() {
		Expect(api.ValidateSchema(api.SchemaPet, nil)).NotTo(Succeed())
		Expect(api.ValidateSchema("Owner", map[string]interface{}{})).To(MatchError(ContainSubstring("unknown schema")))
	})
})
