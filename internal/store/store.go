// Package store persists domain objects with optimistic versioning.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxkimambo/vetflow/internal/domain"
)

// ObjectService loads and saves domain objects.
//
// Save checks the object's version against the stored one and fails with a
// conflict error when another writer got there first. On success the
// object's version is incremented in place, and a new object is given an id.
type ObjectService interface {
	Get(ctx context.Context, ref domain.Reference) (*domain.Object, error)
	Save(ctx context.Context, obj *domain.Object) error
	Remove(ctx context.Context, ref domain.Reference) error
	List(ctx context.Context, archetype string) ([]*domain.Object, error)
}

func newID() string {
	return uuid.NewString()
}
