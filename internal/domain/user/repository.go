package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts persistence for administrator accounts.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
	CountAll(ctx context.Context) (int64, error)
}
