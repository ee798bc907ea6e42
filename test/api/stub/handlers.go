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

package stub

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

var supportedPhotoTypes = []string{"image/jpeg", "image/png"}

type petResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        string `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at"`
}

type listResponse struct {
	Pets []petResponse `json:"pets"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:         p.ID,
		Name:       p.Name,
		AnimalType: p.AnimalType,
		Age:        p.Age,
		PetPhoto:   p.PetPhoto,
		UserID:     p.UserID,
		CreatedAt:  strconv.FormatFloat(float64(p.CreatedAt.UnixMicro())/1e6, 'f', 6, 64),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "<!doctype html>\n<html lang=en>\n<title>%d %s</title>\n<h1>%s</h1>\n<p>%s</p>\n", status, title, title, message)
}

func writeForbidden(w http.ResponseWriter, message string) {
	writeHTML(w, http.StatusForbidden, "Forbidden", message)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeHTML(w, http.StatusBadRequest, "Bad Request", message)
}

func (s *server) getAPIKey(w http.ResponseWriter, r *http.Request) {
	u, ok := s.byEmail[r.Header.Get("email")]
	if !ok || u.Password != r.Header.Get("password") {
		writeForbidden(w, "This user wasn't found in database")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": KeyFor(u.Email, u.Password)})
}

func (s *server) listPets(w http.ResponseWriter, r *http.Request) {
	var owner string

	switch filter := r.URL.Query().Get("filter"); filter {
	case "":
	case "my_pets":
		owner = currentUser(r).id()
	default:
		writeBadRequest(w, "Filter value is incorrect")
		return
	}

	pets := s.store.List(owner)

	out := listResponse{Pets: make([]petResponse, 0, len(pets))}
	for _, p := range pets {
		out.Pets = append(out.Pets, toPetResponse(p))
	}

	writeJSON(w, http.StatusOK, out)
}

// petFields reads and validates name, animal_type and age from a parsed form.
// With partial set empty values are allowed and left for the caller to skip.
func petFields(r *http.Request, partial bool) (Pet, error) {
	p := Pet{
		Name:       strings.TrimSpace(r.FormValue("name")),
		AnimalType: strings.TrimSpace(r.FormValue("animal_type")),
		Age:        strings.TrimSpace(r.FormValue("age")),
	}

	if !partial {
		if p.Name == "" || p.AnimalType == "" || p.Age == "" {
			return Pet{}, errors.New("name, animal_type and age are required")
		}
	}

	if p.Age != "" {
		if _, err := strconv.Atoi(p.Age); err != nil {
			return Pet{}, errors.New("age must be a number")
		}
	}

	return p, nil
}

var errUnsupportedPhoto = errors.New("unsupported photo format")

// readPhoto returns the uploaded pet_photo as a data URI, the type is
// detected from the content.
func readPhoto(r *http.Request) (string, error) {
	file, _, err := r.FormFile("pet_photo")
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), supportedPhotoTypes...) {
		return "", fmt.Errorf("%w: %s", errUnsupportedPhoto, mtype.String())
	}

	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *server) createPet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeBadRequest(w, "expected multipart form data")
		return
	}

	p, err := petFields(r, false)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	photo, err := readPhoto(r)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		writeBadRequest(w, err.Error())
		return
	}

	p.UserID = currentUser(r).id()
	p.PetPhoto = photo

	writeJSON(w, http.StatusOK, toPetResponse(s.store.Create(p)))
}

func (s *server) createPetSimple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "expected form data")
		return
	}

	p, err := petFields(r, false)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	p.UserID = currentUser(r).id()

	writeJSON(w, http.StatusOK, toPetResponse(s.store.Create(p)))
}

func (s *server) setPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeBadRequest(w, "expected multipart form data")
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	p, err := s.store.Update(chi.URLParam(r, "petID"), currentUser(r).id(), func(p *Pet) {
		p.PetPhoto = photo
	})

	switch {
	case errors.Is(err, ErrNotFound):
		// The service fails on an unknown ID here instead of validating it.
		writeHTML(w, http.StatusInternalServerError, "Internal Server Error", "The server encountered an internal error")
	case errors.Is(err, ErrNotOwner):
		writeForbidden(w, err.Error())
	case err != nil:
		writeHTML(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	default:
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func (s *server) updatePet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "expected form data")
		return
	}

	fields, err := petFields(r, true)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	p, err := s.store.Update(chi.URLParam(r, "petID"), currentUser(r).id(), func(p *Pet) {
		if fields.Name != "" {
			p.Name = fields.Name
		}

		if fields.AnimalType != "" {
			p.AnimalType = fields.AnimalType
		}

		if fields.Age != "" {
			p.Age = fields.Age
		}
	})

	switch {
	case errors.Is(err, ErrNotFound):
		writeBadRequest(w, "Pet with this id wasn't found")
	case errors.Is(err, ErrNotOwner):
		writeForbidden(w, err.Error())
	case err != nil:
		writeHTML(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	default:
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func (s *server) deletePet(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(chi.URLParam(r, "petID"), currentUser(r).id())

	switch {
	case errors.Is(err, ErrNotFound):
		writeBadRequest(w, "Pet with this id wasn't found")
	case errors.Is(err, ErrNotOwner):
		writeForbidden(w, err.Error())
	case err != nil:
		writeHTML(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	default:
		w.WriteHeader(http.StatusOK)
	}
}
