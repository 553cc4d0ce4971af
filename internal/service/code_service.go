package service

import (
	"context"
	"strings"

	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/repository"
)

type CodeService struct {
	codes repository.CodeRepository
}

func NewCodeService(codes repository.CodeRepository) *CodeService {
	return &CodeService{codes: codes}
}

// Search filters the catalog by chapter code, narrowing by category and
// subcategory when provided. Returns domain.ErrCodesNotFound when nothing
// matches, mirroring the catalog's lookup contract.
func (s *CodeService) Search(ctx context.Context, chapter, category, subcategory string) ([]*domain.Code, error) {
	results, err := s.codes.Search(
		ctx,
		strings.ToUpper(chapter),
		strings.ToUpper(category),
		strings.ToUpper(subcategory),
	)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.ErrCodesNotFound
	}
	return results, nil
}
