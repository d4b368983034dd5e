package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohits-web03/meshvault/internal/models"
)

// Sort orders accepted by ModelRepository.ListPublic.
const (
	SortCreatedAt     = "createdAt"
	SortViewCount     = "viewCount"
	SortDownloadCount = "downloadCount"
)

// OwnerFilter narrows an owner's listing. Nil fields are not applied.
type OwnerFilter struct {
	CategoryID *uuid.UUID
	IsPublic   *bool
}

// PublicFilter narrows the public listing. Search is a case-sensitive title substring.
type PublicFilter struct {
	CategoryID *uuid.UUID
	Search     string
}

// ModelChanges describes a partial update. Tags and CustomData are replaced wholesale when non-nil.
type ModelChanges struct {
	Fields     map[string]any
	Tags       *[]string
	CustomData *[]models.ModelCustomData
}

// ModelRepository persists models with their tags and custom data.
// Find methods return (nil, nil) when no row matches.
type ModelRepository interface {
	Create(ctx context.Context, model *models.Model, tags []string, data []models.ModelCustomData) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Model, error)
	FindDetailed(ctx context.Context, id uuid.UUID) (*models.Model, error)
	ThumbnailOwners(ctx context.Context, key string) ([]uuid.UUID, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter OwnerFilter, offset, limit int) ([]models.Model, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, filter OwnerFilter) (int64, error)
	ListPublic(ctx context.Context, filter PublicFilter, sortBy string, offset, limit int) ([]models.Model, error)
	CountPublic(ctx context.Context, filter PublicFilter) (int64, error)
	Update(ctx context.Context, id uuid.UUID, changes ModelChanges) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListFields(ctx context.Context, categoryID uuid.UUID) ([]models.CustomField, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}
