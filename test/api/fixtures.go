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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/petfriends-acceptance/test/api/stub"
)

// Sample images under TEST_IMAGES_DIR.
const (
	CatPhoto             = "cat.jpg"
	IncorrectFormatPhoto = "incorrect_format_photo.bmp"
)

// PhotoPath returns the absolute path of a sample image.
func PhotoPath(config *TestConfig, name string) string {
	return filepath.Join(config.ImagesDir, name)
}

// StartStubServerIfNeeded points config at a fresh stand-in server when no
// base URL is configured, the server is closed when the calling node ends.
func StartStubServerIfNeeded(config *TestConfig) {
	if !config.UseStub() {
		return
	}

	server := httptest.NewServer(stub.NewRouter(stub.Options{
		Users: []stub.User{
			{Email: config.Email, Password: config.Password},
			{Email: stub.OtherEmail, Password: stub.OtherPassword},
		},
		Seed: stub.SeedFor(config.Email),
	}))

	GinkgoWriter.Printf("Started stand-in PetFriends API at %s\n", server.URL)
	config.BaseURL = server.URL

	DeferCleanup(func() {
		server.Close()
		config.BaseURL = ""
	})
}

// RequireAPIKey obtains an auth key for the configured user, failing the spec otherwise.
func RequireAPIKey(client *APIClient, ctx context.Context, config *TestConfig) string {
	resp, err := client.GetAPIKey(ctx, config.Email, config.Password)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "getting api key: %s", resp.Text)

	key := resp.String("key")
	Expect(key).NotTo(BeEmpty(), "api key response has no key: %s", resp.Text)

	return key
}

// RequireMyPets lists the caller's pets and fails loudly when there are none,
// scenarios depending on an existing pet must not pass vacuously.
func RequireMyPets(client *APIClient, ctx context.Context, authKey string) []map[string]interface{} {
	resp, err := client.ListPets(ctx, authKey, FilterMyPets)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "listing my pets: %s", resp.Text)

	pets := resp.Pets()
	Expect(pets).NotTo(BeEmpty(), "There are no my pets")

	return pets
}

// RequireMyPetID returns the ID of the first of the caller's pets.
func RequireMyPetID(client *APIClient, ctx context.Context, authKey string) string {
	pets := RequireMyPets(client, ctx, authKey)
	if len(pets) == 0 {
		return ""
	}

	id := stringify(pets[0]["id"])
	Expect(id).NotTo(BeEmpty(), "pet record has no id")

	return id
}

// CreatePetWithCleanup adds a pet, with a photo unless photoPath is empty,
// and schedules its deletion.
func CreatePetWithCleanup(client *APIClient, ctx context.Context, authKey string, payload PetPayload, photoPath string) (*Response, string) {
	var (
		resp *Response
		err  error
	)

	if photoPath == "" {
		resp, err = client.AddNewPetWithoutPhoto(ctx, authKey, payload)
	} else {
		resp, err = client.AddNewPet(ctx, authKey, payload, photoPath)
	}

	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "creating pet: %s", resp.Text)

	petID := resp.String("id")
	Expect(petID).NotTo(BeEmpty(), "created pet has no id")

	GinkgoWriter.Printf("Created pet with ID: %s\n", petID)

	// Runs whether the spec passes or fails.
	DeferCleanup(func() {
		deleteResp, deleteErr := client.DeletePet(ctx, authKey, petID)

		switch {
		case deleteErr != nil:
			GinkgoWriter.Printf("Warning: Failed to delete pet %s: %v\n", petID, deleteErr)
		case deleteResp.StatusCode != http.StatusOK:
			// Already removed by the spec itself.
			GinkgoWriter.Printf("Pet %s not deleted during cleanup (status: %d)\n", petID, deleteResp.StatusCode)
		default:
			GinkgoWriter.Printf("Successfully deleted pet: %s\n", petID)
		}
	})

	return resp, petID
}

// VerifyPetRecord checks a pet response echoes the submitted payload and has the expected shape.
func VerifyPetRecord(resp *Response, payload PetPayload) {
	Expect(resp.IsJSON()).To(BeTrue(), "pet response is not JSON: %s", resp.Text)
	Expect(ValidateSchema(SchemaPet, resp.JSON)).To(Succeed())
	Expect(resp.String("name")).To(Equal(payload.Name))
	Expect(resp.String("animal_type")).To(Equal(payload.AnimalType))
	Expect(resp.String("age")).To(Equal(payload.Age))
}
