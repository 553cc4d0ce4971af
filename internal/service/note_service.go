package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/repository"
	"github.com/google/uuid"
)

type NoteService struct {
	notes repository.NoteRepository
	codes repository.CodeRepository
}

func NewNoteService(notes repository.NoteRepository, codes repository.CodeRepository) *NoteService {
	return &NoteService{
		notes: notes,
		codes: codes,
	}
}

type CreateNoteInput struct {
	Title   string
	Content string
	Codes   []CodeKey
}

type CodeKey struct {
	ChapterCode     string
	CategoryCode    string
	SubcategoryCode string
}

// Normalize upper-cases the parts and applies the "no subcategory" default.
func (k CodeKey) Normalize() CodeKey {
	normalized := CodeKey{
		ChapterCode:     strings.ToUpper(k.ChapterCode),
		CategoryCode:    strings.ToUpper(k.CategoryCode),
		SubcategoryCode: strings.ToUpper(k.SubcategoryCode),
	}
	if normalized.SubcategoryCode == "" {
		normalized.SubcategoryCode = domain.NoSubcategory
	}
	return normalized
}

// Create stores a consultation note for ownerEmail. Codes that do not exist
// in the catalog are skipped rather than failing the whole note. The owner
// always comes from the authenticated identity, never from the request body.
func (s *NoteService) Create(ctx context.Context, ownerEmail string, input CreateNoteInput) (*domain.Note, error) {
	var attached []domain.Code
	for _, key := range input.Codes {
		key = key.Normalize()
		code, err := s.codes.GetByKey(ctx, key.ChapterCode, key.CategoryCode, key.SubcategoryCode)
		if err != nil {
			if errors.Is(err, domain.ErrCodesNotFound) {
				continue
			}
			return nil, err
		}
		attached = append(attached, *code)
	}

	note := &domain.Note{
		ID:        uuid.New(),
		UserEmail: ownerEmail,
		Title:     input.Title,
		Content:   input.Content,
		Codes:     attached,
		CreatedAt: time.Now(),
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) List(ctx context.Context, ownerEmail string) ([]*domain.Note, error) {
	return s.notes.ListByUserEmail(ctx, ownerEmail)
}
