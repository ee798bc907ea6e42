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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nscaledev/petfriends-acceptance/test/api/stub"
)

const (
	defaultInvalidEmail    = "not-an-email"
	defaultInvalidPassword = "definitely-not-the-password"
	defaultInvalidKey      = "ea738148a1f19838e1c5d1413877f3691a3731380e733e877b0ae729"
	defaultInvalidPetID    = "00000000-0000-0000-0000-000000000000"
)

type TestConfig struct {
	BaseURL         string
	Email           string
	Password        string
	InvalidEmail    string
	InvalidPassword string
	InvalidKey      string
	InvalidPetID    string
	ImagesDir       string
	RequestTimeout  time.Duration
	SkipIntegration bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Without API_BASE_URL the credentials default to the stand-in server's fixture
// user, otherwise an error is returned if required values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:         os.Getenv("API_BASE_URL"),
		Email:           os.Getenv("PETFRIENDS_EMAIL"),
		Password:        os.Getenv("PETFRIENDS_PASSWORD"),
		InvalidEmail:    getStringWithDefault("PETFRIENDS_INVALID_EMAIL", defaultInvalidEmail),
		InvalidPassword: getStringWithDefault("PETFRIENDS_INVALID_PASSWORD", defaultInvalidPassword),
		InvalidKey:      getStringWithDefault("PETFRIENDS_INVALID_KEY", defaultInvalidKey),
		InvalidPetID:    getStringWithDefault("PETFRIENDS_INVALID_PET_ID", defaultInvalidPetID),
		ImagesDir:       getStringWithDefault("TEST_IMAGES_DIR", findImagesDir()),
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:    getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	if config.UseStub() {
		if config.Email == "" {
			config.Email = stub.DefaultEmail
		}

		if config.Password == "" {
			config.Password = stub.DefaultPassword
		}
	}

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// UseStub reports whether the suites should run against the in-process stand-in server.
func (c *TestConfig) UseStub() bool {
	return c.BaseURL == ""
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// candidateDirs are relative to the packages that run tests: test/api and test/api/suites.
func candidateDirs(name string) []string {
	return []string{
		filepath.Join("..", name),
		filepath.Join("..", "..", name),
	}
}

func findImagesDir() string {
	for _, path := range candidateDirs("images") {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(path); err == nil {
				return absPath
			}
		}
	}

	return "images"
}

func loadEnvFile() {
	var envPath string

	for _, path := range candidateDirs(".env") {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
func validateRequiredFields(config *TestConfig) error {
	var missing []string

	required := map[string]string{
		"PETFRIENDS_EMAIL":    config.Email,
		"PETFRIENDS_PASSWORD": config.Password,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)

		return fmt.Errorf("missing required configuration: %s. Please set these environment variables or add them to a .env file", strings.Join(missing, ", "))
	}

	return nil
}
