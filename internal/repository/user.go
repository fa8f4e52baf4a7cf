package repository

import (
	"context"
	"errors"

	"userboard/internal/domain"
)

// ErrNotFound is returned by lookups when no row matches the given id.
var ErrNotFound = errors.New("user not found")

// UserRepository defines persistence operations for User records. Mutations
// are unguarded here; credential checks happen one layer up.
type UserRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, user domain.User) (int64, error)
	InsertMany(ctx context.Context, users []domain.User) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateUsername(ctx context.Context, id, username string) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}
