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
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive

	"github.com/nscaledev/petfriends-acceptance/test/api"
	"github.com/nscaledev/petfriends-acceptance/test/api/stub"
)

// setenv sets or clears an environment variable for the current spec.
func setenv(key, value string) {
	previous, had := os.LookupEnv(key)

	if value == "" {
		Expect(os.Unsetenv(key)).To(Succeed())
	} else {
		Expect(os.Setenv(key, value)).To(Succeed())
	}

	DeferCleanup(func() {
		if had {
			_ = os.Setenv(key, previous)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

var _ = Describe("LoadTestConfig", func() {
	BeforeEach(func() {
		for _, key := range []string{
			"API_BASE_URL", "PETFRIENDS_EMAIL", "PETFRIENDS_PASSWORD",
			"PETFRIENDS_INVALID_KEY", "REQUEST_TIMEOUT", "LOG_REQUESTS",
		} {
			setenv(key, "")
		}
	})

	It("defaults to the stand-in server's fixture user", func() {
		config, err := api.LoadTestConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(config.UseStub()).To(BeTrue())
		Expect(config.Email).To(Equal(stub.DefaultEmail))
		Expect(config.Password).To(Equal(stub.DefaultPassword))
		Expect(config.RequestTimeout).To(Equal(30 * time.Second))
		Expect(config.InvalidKey).NotTo(BeEmpty())
		Expect(config.InvalidPetID).NotTo(BeEmpty())
		Expect(api.PhotoPath(config, api.CatPhoto)).To(BeAnExistingFile())
	})

	It("requires credentials for a live service", func() {
		setenv("API_BASE_URL", "https://petfriends.example.com")

		_, err := api.LoadTestConfig()
		Expect(err).To(MatchError(ContainSubstring("PETFRIENDS_EMAIL, PETFRIENDS_PASSWORD")))
	})

	It("reads overrides and ignores malformed values", func() {
		setenv("API_BASE_URL", "https://petfriends.example.com")
		setenv("PETFRIENDS_EMAIL", "me@example.com")
		setenv("PETFRIENDS_PASSWORD", "secret")
		setenv("PETFRIENDS_INVALID_KEY", "nope")
		setenv("REQUEST_TIMEOUT", "not-a-duration")
		setenv("LOG_REQUESTS", "true")

		config, err := api.LoadTestConfig()
		Expect(err).NotTo(HaveOccurred())
		Expect(config.UseStub()).To(BeFalse())
		Expect(config.Email).To(Equal("me@example.com"))
		Expect(config.InvalidKey).To(Equal("nope"))
		Expect(config.RequestTimeout).To(Equal(30 * time.Second))
		Expect(config.LogRequests).To(BeTrue())
	})
})

var _ = Describe("PetPayloadBuilder", func() {
	It("generates unique names by default", func() {
		first := api.NewPetPayload().Build()
		second := api.NewPetPayload().Build()

		Expect(first.Name).To(HavePrefix("testautomation-"))
		Expect(first.Name).NotTo(Equal(second.Name))
	})

	It("applies overrides", func() {
		payload := api.NewPetPayload().WithName("BOB").WithAnimalType("catt").WithAgeYears(7).Build()

		Expect(payload).To(Equal(api.PetPayload{Name: "BOB", AnimalType: "catt", Age: "7"}))
	})
})
