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
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("pet not found")
	ErrNotOwner = errors.New("pet belongs to another user")
)

// Pet is a stored pet record.
type Pet struct {
	ID         string
	UserID     string
	Name       string
	AnimalType string
	Age        string
	PetPhoto   string
	CreatedAt  time.Time

	seq int64
}

// Store is an in-memory pet store safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	byID map[string]Pet
	seq  int64
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]Pet),
	}
}

// Create assigns an ID and creation time to p and stores it.
func (s *Store) Create(p Pet) Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.seq = s.seq

	s.byID[p.ID] = p

	return p
}

// Get returns the pet with the given ID regardless of owner.
func (s *Store) Get(id string) (Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}

	return p, nil
}

// Update applies mutate to the pet if it exists and is owned by userID.
func (s *Store) Update(id, userID string, mutate func(*Pet)) (Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}

	if p.UserID != userID {
		return Pet{}, ErrNotOwner
	}

	mutate(&p)
	s.byID[id] = p

	return p, nil
}

func (s *Store) Delete(id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	if p.UserID != userID {
		return ErrNotOwner
	}

	delete(s.byID, id)

	return nil
}

// List returns pets newest first, restricted to userID unless it is empty.
func (s *Store) List(userID string) []Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pet, 0, len(s.byID))

	for _, p := range s.byID {
		if userID == "" || p.UserID == userID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].seq > out[j].seq
	})

	return out
}
