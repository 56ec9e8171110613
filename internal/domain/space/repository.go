package space

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for space aggregates.
type Repository interface {
	// FindByID retrieves a space by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Space, error)

	// FindByIDs retrieves the spaces matching the given identifiers,
	// keyed by ID. Missing IDs are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Space, error)

	// ListAll retrieves every space.
	ListAll(ctx context.Context) ([]*Space, error)

	// Save persists a new space.
	Save(ctx context.Context, s *Space) error

	// Update persists changes to an existing space.
	Update(ctx context.Context, s *Space) error

	// Delete removes a space by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
