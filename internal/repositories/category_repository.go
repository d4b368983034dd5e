package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rohits-web03/meshvault/internal/models"
)

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := r.db.WithContext(ctx).Order("display_order ASC").Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *GormCategoryRepository) findOne(ctx context.Context, query string, arg any) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where(query, arg).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) ListFields(ctx context.Context, categoryID uuid.UUID) ([]models.CustomField, error) {
	fields := make([]models.CustomField, 0)
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("display_order ASC").
		Order("field_name ASC").
		Find(&fields).Error
	return fields, err
}

var _ CategoryRepository = (*GormCategoryRepository)(nil)
