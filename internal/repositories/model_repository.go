package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rohits-web03/meshvault/internal/models"
)

type GormModelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) *GormModelRepository {
	return &GormModelRepository{db: db}
}

func (r *GormModelRepository) Create(ctx context.Context, model *models.Model, tags []string, data []models.ModelCustomData) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if err := replaceTags(tx, model.ID, tags); err != nil {
			return err
		}
		return replaceCustomData(tx, model.ID, data)
	})
	return translate(err)
}

func (r *GormModelRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	var model models.Model
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

// ThumbnailOwners lists the owners of models whose thumbnail_key is key.
func (r *GormModelRepository) ThumbnailOwners(ctx context.Context, key string) ([]uuid.UUID, error) {
	owners := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Model{}).
		Where("thumbnail_key = ?", key).
		Distinct("user_id").
		Pluck("user_id", &owners).Error
	return owners, err
}

func (r *GormModelRepository) FindDetailed(ctx context.Context, id uuid.UUID) (*models.Model, error) {
	var model models.Model
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("CustomData.Field").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *GormModelRepository) ownerScope(ownerID uuid.UUID, filter OwnerFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", ownerID)
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.IsPublic != nil {
			db = db.Where("is_public = ?", *filter.IsPublic)
		}
		return db
	}
}

func (r *GormModelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter OwnerFilter, offset, limit int) ([]models.Model, error) {
	rows := make([]models.Model, 0, limit)
	err := r.db.WithContext(ctx).
		Scopes(r.ownerScope(ownerID, filter)).
		Preload("Category").
		Order("created_at DESC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *GormModelRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID, filter OwnerFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Model{}).
		Scopes(r.ownerScope(ownerID, filter)).
		Count(&total).Error
	return total, err
}

func (r *GormModelRepository) publicScope(filter PublicFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_public = ?", true)
		if filter.CategoryID != nil {
			db = db.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.Search != "" {
			db = db.Where(substringCondition(db), filter.Search)
		}
		return db
	}
}

// substringCondition matches title case-sensitively; LIKE folds case on SQLite.
func substringCondition(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "instr(title, ?) > 0"
	}
	return "strpos(title, ?) > 0"
}

func (r *GormModelRepository) ListPublic(ctx context.Context, filter PublicFilter, sortBy string, offset, limit int) ([]models.Model, error) {
	query := r.db.WithContext(ctx).
		Scopes(r.publicScope(filter)).
		Preload("Category").
		Preload("Owner")

	switch sortBy {
	case SortViewCount:
		query = query.Order("view_count DESC")
	case SortDownloadCount:
		query = query.Order("download_count DESC")
	}

	rows := make([]models.Model, 0, limit)
	err := query.
		Order("created_at DESC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *GormModelRepository) CountPublic(ctx context.Context, filter PublicFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Model{}).
		Scopes(r.publicScope(filter)).
		Count(&total).Error
	return total, err
}

func (r *GormModelRepository) Update(ctx context.Context, id uuid.UUID, changes ModelChanges) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(changes.Fields) > 0 {
			if err := tx.Model(&models.Model{}).Where("id = ?", id).Updates(changes.Fields).Error; err != nil {
				return err
			}
		}
		if changes.Tags != nil {
			if err := replaceTags(tx, id, *changes.Tags); err != nil {
				return err
			}
		}
		if changes.CustomData != nil {
			return replaceCustomData(tx, id, *changes.CustomData)
		}
		return nil
	})
	return translate(err)
}

// Delete removes the model row together with its tag links and custom values.
func (r *GormModelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM model_tags WHERE model_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("model_id = ?", id).Delete(&models.ModelCustomData{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Model{}).Error
	})
}

func (r *GormModelRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "view_count")
}

func (r *GormModelRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "download_count")
}

// increment bumps a counter without touching updated_at.
func (r *GormModelRepository) increment(ctx context.Context, id uuid.UUID, column string) error {
	return r.db.WithContext(ctx).
		Model(&models.Model{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

func replaceTags(tx *gorm.DB, modelID uuid.UUID, names []string) error {
	if err := tx.Exec("DELETE FROM model_tags WHERE model_id = ?", modelID).Error; err != nil {
		return err
	}
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		if err := tx.Exec("INSERT INTO model_tags (model_id, tag_id) VALUES (?, ?)", modelID, tag.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceCustomData(tx *gorm.DB, modelID uuid.UUID, data []models.ModelCustomData) error {
	if err := tx.Where("model_id = ?", modelID).Delete(&models.ModelCustomData{}).Error; err != nil {
		return err
	}
	for i := range data {
		data[i].ID = uuid.Nil
		data[i].ModelID = modelID
		if err := tx.Omit(clause.Associations).Create(&data[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ ModelRepository = (*GormModelRepository)(nil)
