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

// Package stub is an in-process stand-in for the PetFriends API.
// It reproduces the status codes and body shapes the acceptance suites assert
// on, backed by an in-memory store.
package stub

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Fixture users known to a server started without explicit users.
const (
	DefaultEmail    = "stub.user@petfriends.test"
	DefaultPassword = "stub-password"

	OtherEmail    = "other.user@petfriends.test"
	OtherPassword = "other-password"
)

// User is an account that can obtain an auth key.
type User struct {
	Email    string
	Password string
}

func (u User) id() string {
	sum := sha256.Sum256([]byte(u.Email))
	return hex.EncodeToString(sum[:6])
}

// KeyFor returns the auth key issued to the given credentials.
func KeyFor(email, password string) string {
	sum := sha256.Sum256([]byte(email + ":" + password))
	return hex.EncodeToString(sum[:28])
}

// SeedPet is a pet present when the server starts, owned by the user with Owner email.
type SeedPet struct {
	Owner      string
	Name       string
	AnimalType string
	Age        string
}

// DefaultSeed gives the default user a few pets and another user one more, so
// both listing filters return something.
func DefaultSeed() []SeedPet {
	return SeedFor(DefaultEmail)
}

// SeedFor is DefaultSeed with the default user's pets owned by owner instead.
func SeedFor(owner string) []SeedPet {
	return []SeedPet{
		{Owner: owner, Name: "Murka", AnimalType: "cat", Age: "4"},
		{Owner: owner, Name: "Rex", AnimalType: "dog", Age: "2"},
		{Owner: owner, Name: "Kesha", AnimalType: "parrot", Age: "1"},
		{Owner: OtherEmail, Name: "Sharik", AnimalType: "dog", Age: "6"},
	}
}

type Options struct {
	// Users defaults to the two fixture users.
	Users []User
	Seed  []SeedPet
	// Logger may be nil.
	Logger *zap.Logger
}

type server struct {
	store   *Store
	byEmail map[string]User
	byKey   map[string]User
	logger  *zap.Logger
}

type userKey struct{}

// NewRouter returns the stand-in API handler.
func NewRouter(opts Options) http.Handler {
	users := opts.Users
	if len(users) == 0 {
		users = []User{
			{Email: DefaultEmail, Password: DefaultPassword},
			{Email: OtherEmail, Password: OtherPassword},
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &server{
		store:   NewStore(),
		byEmail: make(map[string]User, len(users)),
		byKey:   make(map[string]User, len(users)),
		logger:  logger,
	}

	for _, u := range users {
		s.byEmail[u.Email] = u
		s.byKey[KeyFor(u.Email, u.Password)] = u
	}

	for _, seed := range opts.Seed {
		owner := User{Email: seed.Owner}

		s.store.Create(Pet{
			UserID:     owner.id(),
			Name:       seed.Name,
			AnimalType: seed.AnimalType,
			Age:        seed.Age,
		})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/api/key", s.getAPIKey)

	r.Group(func(ar chi.Router) {
		ar.Use(s.requireKey)

		ar.Get("/api/pets", s.listPets)
		ar.Post("/api/pets", s.createPet)
		ar.Post("/api/create_pet_simple", s.createPetSimple)
		ar.Post("/api/pets/set_photo/{petID}", s.setPhoto)
		ar.Put("/api/pets/{petID}", s.updatePet)
		ar.Delete("/api/pets/{petID}", s.deletePet)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("traceparent", r.Header.Get("Traceparent")),
		)
	})
}

func (s *server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.byKey[r.Header.Get("auth_key")]
		if !ok {
			writeForbidden(w, "Please provide 'auth_key' Header")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}

func currentUser(r *http.Request) User {
	u, _ := r.Context().Value(userKey{}).(User)
	return u
}
