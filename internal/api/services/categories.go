package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
)

// FieldDefinition is a custom field as presented to clients.
type FieldDefinition struct {
	ID           uuid.UUID `json:"id"`
	FieldName    string    `json:"fieldName"`
	FieldType    string    `json:"fieldType"`
	Options      []string  `json:"options,omitempty"`
	IsRequired   bool      `json:"isRequired"`
	DisplayOrder int       `json:"displayOrder"`
}

type CategoryService struct {
	categories repositories.CategoryRepository
}

func NewCategoryService(categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch categories", err)
	}
	return categories, nil
}

// Fields returns the custom field definitions of the category with the given slug.
func (s *CategoryService) Fields(ctx context.Context, slug string) ([]FieldDefinition, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch category", err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Category not found")
	}

	fields, err := s.categories.ListFields(ctx, category.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch custom fields", err)
	}

	defs := make([]FieldDefinition, 0, len(fields))
	for _, f := range fields {
		def := FieldDefinition{
			ID:           f.ID,
			FieldName:    f.FieldName,
			FieldType:    f.FieldType,
			IsRequired:   f.IsRequired,
			DisplayOrder: f.DisplayOrder,
		}
		if len(f.FieldOptions) > 0 {
			if err := json.Unmarshal(f.FieldOptions, &def.Options); err != nil {
				return nil, apperrors.Wrap(apperrors.CodeInternal, "Invalid field options", err)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}
