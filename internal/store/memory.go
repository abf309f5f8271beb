package store

import (
	"context"
	"sort"
	"sync"

	"github.com/maxkimambo/vetflow/internal/domain"
	wferrors "github.com/maxkimambo/vetflow/internal/errors"
)

// MemoryStore keeps objects in a map. Objects are cloned on the way in and
// out so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[domain.Reference]*domain.Object
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[domain.Reference]*domain.Object)}
}

func (s *MemoryStore) Get(_ context.Context, ref domain.Reference) (*domain.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[ref]
	if !ok {
		return nil, wferrors.NewObjectNotFoundError(ref)
	}
	return obj.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, obj *domain.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := obj.Ref
	if ref.IsNew() {
		ref.ID = newID()
	}
	stored, ok := s.objects[ref]
	switch {
	case ok && stored.Version != obj.Version:
		return wferrors.NewStaleObjectError(ref, obj.Version, stored.Version)
	case !ok && obj.Version != 0:
		return wferrors.NewObjectNotFoundError(ref)
	}

	obj.Ref = ref
	obj.Version++
	s.objects[obj.Ref] = obj.Clone()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, ref domain.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[ref]; !ok {
		return wferrors.NewObjectNotFoundError(ref)
	}
	delete(s.objects, ref)
	return nil
}

// List returns the objects of an archetype ordered by name, then id.
// The archetype may end in a * wildcard.
func (s *MemoryStore) List(_ context.Context, archetype string) ([]*domain.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*domain.Object
	for ref, obj := range s.objects {
		if domain.MatchArchetype(ref.Archetype, archetype) {
			result = append(result, obj.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Ref.ID < result[j].Ref.ID
	})
	return result, nil
}
