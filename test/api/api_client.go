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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrMissingAuthKey is returned by authenticated calls made without a key.
var ErrMissingAuthKey = errors.New("auth key is required")

// Listing filters.
const (
	FilterAll    = ""
	FilterMyPets = "my_pets"
)

type APIClient struct {
	client    *resty.Client
	config    *TestConfig
	endpoints *Endpoints
	logger    *zap.Logger
}

func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = config.BaseURL
	}

	return newAPIClientWithConfig(config, baseURL), nil
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) *APIClient {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(config.RequestTimeout).
		SetHeader("Tracestate", "test-automation=ginkgo")

	return &APIClient{
		client:    client,
		config:    config,
		endpoints: NewEndpoints(),
		logger:    NewLogger(config),
	}
}

// logError logs a failed request with its trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.logger.Error(context,
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("duration", duration),
		zap.String("traceparent", traceParent),
		zap.String("trace_id", extractTraceID(traceParent)),
		zap.Error(err),
	)
}

// generateTraceID creates a new W3C trace ID.
// A fresh trace per request lets a failing call be found in the service logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// doRequest sends one request, prepare adds the operation specific parts.
func (c *APIClient) doRequest(ctx context.Context, method, path string, prepare func(*resty.Request)) (*Response, error) {
	req := c.client.R().SetContext(ctx)

	traceParent := createTraceParent()
	req.SetHeader("Traceparent", traceParent)

	if prepare != nil {
		prepare(req)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	if c.config.LogRequests {
		c.logger.Info("request completed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", duration),
			zap.String("traceparent", traceParent),
		)
	}

	if c.config.LogResponses && len(resp.Body()) > 0 {
		c.logger.Info("response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.ByteString("body", resp.Body()),
		)
	}

	return newResponse(resp.StatusCode(), resp.Body()), nil
}

func authenticated(authKey string, prepare func(*resty.Request)) (func(*resty.Request), error) {
	if authKey == "" {
		return nil, ErrMissingAuthKey
	}

	return func(req *resty.Request) {
		req.SetHeader("auth_key", authKey)

		if prepare != nil {
			prepare(req)
		}
	}, nil
}

// photo is an image file read into memory for upload.
type photo struct {
	fileName    string
	contentType string
	data        []byte
}

// readPhoto loads an image and detects its content type from the bytes, the
// file extension is not trusted.
func readPhoto(path string) (*photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading photo %s: %w", path, err)
	}

	return &photo{
		fileName:    filepath.Base(path),
		contentType: mimetype.Detect(data).String(),
		data:        data,
	}, nil
}

func (p *photo) attach(req *resty.Request) {
	req.SetMultipartField("pet_photo", p.fileName, p.contentType, bytes.NewReader(p.data))
}

// GetAPIKey requests an auth key for the given credentials.
func (c *APIClient) GetAPIKey(ctx context.Context, email, password string) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.APIKey(), func(req *resty.Request) {
		req.SetHeader("email", email)
		req.SetHeader("password", password)
	})
	if err != nil {
		return nil, fmt.Errorf("getting api key: %w", err)
	}

	return resp, nil
}

// ListPets lists all visible pets, or only the caller's with FilterMyPets.
func (c *APIClient) ListPets(ctx context.Context, authKey, filter string) (*Response, error) {
	prepare, err := authenticated(authKey, func(req *resty.Request) {
		req.SetQueryParam("filter", filter)
	})
	if err != nil {
		return nil, fmt.Errorf("listing pets: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListPets(), prepare)
	if err != nil {
		return nil, fmt.Errorf("listing pets: %w", err)
	}

	return resp, nil
}

// AddNewPet creates a pet with a photo read from photoPath.
func (c *APIClient) AddNewPet(ctx context.Context, authKey string, pet PetPayload, photoPath string) (*Response, error) {
	if authKey == "" {
		return nil, fmt.Errorf("adding pet: %w", ErrMissingAuthKey)
	}

	image, err := readPhoto(photoPath)
	if err != nil {
		return nil, fmt.Errorf("adding pet: %w", err)
	}

	prepare, err := authenticated(authKey, func(req *resty.Request) {
		req.SetMultipartFormData(pet.formData())
		image.attach(req)
	})
	if err != nil {
		return nil, fmt.Errorf("adding pet: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreatePet(), prepare)
	if err != nil {
		return nil, fmt.Errorf("adding pet: %w", err)
	}

	return resp, nil
}

// AddNewPetWithoutPhoto creates a pet from form fields only.
func (c *APIClient) AddNewPetWithoutPhoto(ctx context.Context, authKey string, pet PetPayload) (*Response, error) {
	prepare, err := authenticated(authKey, func(req *resty.Request) {
		req.SetFormData(pet.formData())
	})
	if err != nil {
		return nil, fmt.Errorf("adding pet without photo: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreatePetSimple(), prepare)
	if err != nil {
		return nil, fmt.Errorf("adding pet without photo: %w", err)
	}

	return resp, nil
}

// AddPhotoOfPet attaches a photo to an existing pet.
func (c *APIClient) AddPhotoOfPet(ctx context.Context, authKey, petID, photoPath string) (*Response, error) {
	if authKey == "" {
		return nil, fmt.Errorf("adding photo of pet %s: %w", petID, ErrMissingAuthKey)
	}

	image, err := readPhoto(photoPath)
	if err != nil {
		return nil, fmt.Errorf("adding photo of pet %s: %w", petID, err)
	}

	prepare, err := authenticated(authKey, image.attach)
	if err != nil {
		return nil, fmt.Errorf("adding photo of pet %s: %w", petID, err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.SetPetPhoto(petID), prepare)
	if err != nil {
		return nil, fmt.Errorf("adding photo of pet %s: %w", petID, err)
	}

	return resp, nil
}

// UpdatePet replaces the name, type and age of a pet.
func (c *APIClient) UpdatePet(ctx context.Context, authKey, petID string, pet PetPayload) (*Response, error) {
	prepare, err := authenticated(authKey, func(req *resty.Request) {
		req.SetFormData(pet.formData())
	})
	if err != nil {
		return nil, fmt.Errorf("updating pet %s: %w", petID, err)
	}

	resp, err := c.doRequest(ctx, http.MethodPut, c.endpoints.UpdatePet(petID), prepare)
	if err != nil {
		return nil, fmt.Errorf("updating pet %s: %w", petID, err)
	}

	return resp, nil
}

func (c *APIClient) DeletePet(ctx context.Context, authKey, petID string) (*Response, error) {
	prepare, err := authenticated(authKey, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting pet %s: %w", petID, err)
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.DeletePet(petID), prepare)
	if err != nil {
		return nil, fmt.Errorf("deleting pet %s: %w", petID, err)
	}

	return resp, nil
}
