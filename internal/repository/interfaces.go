package repository

import (
	"context"

	"github.com/clinicare/clinic-backend/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. The store enforces email uniqueness and
	// returns domain.ErrDuplicateEmail when the address is already taken.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	ListByUserEmail(ctx context.Context, email string) ([]*domain.Note, error)
}

type CodeRepository interface {
	// Search filters the catalog by chapter and, when non-empty, category
	// and subcategory.
	Search(ctx context.Context, chapter, category, subcategory string) ([]*domain.Code, error)
	GetByKey(ctx context.Context, chapter, category, subcategory string) (*domain.Code, error)
	UpsertMany(ctx context.Context, codes []*domain.Code) error
}

type Repositories struct {
	User UserRepository
	Note NoteRepository
	Code CodeRepository
}
