package postgres

import (
	"context"
	"errors"

	"github.com/clinicare/clinic-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type codeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) *codeRepository {
	return &codeRepository{db: db}
}

func (r *codeRepository) Search(ctx context.Context, chapter, category, subcategory string) ([]*domain.Code, error) {
	query := r.db.WithContext(ctx).Where("chapter_code = ?", chapter)

	if category != "" {
		query = query.Where("category_code = ?", category)
	}
	if subcategory != "" {
		query = query.Where("subcategory_code = ?", subcategory)
	}

	var codes []*domain.Code
	if err := query.Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *codeRepository) GetByKey(ctx context.Context, chapter, category, subcategory string) (*domain.Code, error) {
	var code domain.Code
	err := r.db.WithContext(ctx).
		First(&code, "chapter_code = ? AND category_code = ? AND subcategory_code = ?", chapter, category, subcategory).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodesNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *codeRepository) UpsertMany(ctx context.Context, codes []*domain.Code) error {
	if len(codes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(codes).Error
}
