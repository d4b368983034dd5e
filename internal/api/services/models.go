package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/storage"
	"github.com/rohits-web03/meshvault/internal/utils"
)

// Paging defaults for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CreateModelInput struct {
	Title            string            `json:"title" validate:"required,max=255"`
	Description      *string           `json:"description" validate:"omitempty,max=5000"`
	CategoryID       string            `json:"categoryId" validate:"required"`
	IsPublic         bool              `json:"isPublic"`
	ModelFileKey     string            `json:"modelFileKey" validate:"required"`
	ModelFileURL     string            `json:"modelFileUrl" validate:"required"`
	FileSize         int64             `json:"fileSize" validate:"gte=0"`
	FileFormat       string            `json:"fileFormat"`
	OriginalFileName *string           `json:"originalFileName"`
	ThumbnailKey     *string           `json:"thumbnailKey"`
	ThumbnailURL     *string           `json:"thumbnailUrl"`
	PolygonCount     *int              `json:"polygonCount" validate:"omitempty,gte=0"`
	VertexCount      *int              `json:"vertexCount" validate:"omitempty,gte=0"`
	TextureCount     *int              `json:"textureCount" validate:"omitempty,gte=0"`
	AnimationCount   int               `json:"animationCount" validate:"gte=0"`
	Tags             []string          `json:"tags" validate:"max=20,dive,max=50"`
	CustomData       map[string]string `json:"customData"`
}

// UpdateModelInput is a partial update; nil fields are left unchanged.
type UpdateModelInput struct {
	Title        *string            `json:"title" validate:"omitempty,max=255"`
	Description  *string            `json:"description" validate:"omitempty,max=5000"`
	CategoryID   *string            `json:"categoryId"`
	IsPublic     *bool              `json:"isPublic"`
	ThumbnailKey *string            `json:"thumbnailKey"`
	ThumbnailURL *string            `json:"thumbnailUrl"`
	Tags         *[]string          `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	CustomData   *map[string]string `json:"customData"`
}

// PublicQuery filters the public listing. An unknown CategorySlug matches nothing.
type PublicQuery struct {
	CategorySlug string
	Search       string
	SortBy       string
}

// ModelPage is one page of a listing.
type ModelPage struct {
	Items      []ModelSummary
	Pagination utils.Pagination
}

type ModelService struct {
	models     repositories.ModelRepository
	categories repositories.CategoryRepository
	uploader   *Uploader
	clock      Clock
	log        *zap.Logger
}

func NewModelService(models repositories.ModelRepository, categories repositories.CategoryRepository, uploader *Uploader, clock Clock, log *zap.Logger) *ModelService {
	return &ModelService{models: models, categories: categories, uploader: uploader, clock: clock, log: log}
}

func (s *ModelService) Create(ctx context.Context, ownerID uuid.UUID, in CreateModelInput) (*ModelDetail, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(in.ModelFileKey, fmt.Sprintf("models/%s/", ownerID)) {
		return nil, apperrors.InvalidArgument("Model file does not belong to the caller")
	}
	if in.ThumbnailKey != nil && *in.ThumbnailKey != "" {
		if err := s.uploader.CheckThumbnailKey(ctx, *in.ThumbnailKey, ownerID); err != nil {
			return nil, err
		}
	}

	format := strings.ToLower(strings.TrimSpace(in.FileFormat))
	if format == "" {
		format = "glb"
	}
	if !slices.Contains(storage.ModelFormats, format) {
		return nil, apperrors.New(apperrors.CodeInvalidFormat, "Unsupported file format")
	}

	category, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	data, err := s.customDataFor(ctx, category.ID, in.CustomData)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	model := &models.Model{
		ID:               uuid.New(),
		UserID:           ownerID,
		CategoryID:       category.ID,
		Title:            in.Title,
		Description:      nullable(in.Description),
		IsPublic:         in.IsPublic,
		ModelFileKey:     in.ModelFileKey,
		ModelFileURL:     in.ModelFileURL,
		FileSize:         in.FileSize,
		FileFormat:       format,
		OriginalFileName: nullable(in.OriginalFileName),
		ThumbnailKey:     nullable(in.ThumbnailKey),
		ThumbnailURL:     nullable(in.ThumbnailURL),
		PolygonCount:     in.PolygonCount,
		VertexCount:      in.VertexCount,
		TextureCount:     in.TextureCount,
		AnimationCount:   in.AnimationCount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.models.Create(ctx, model, normalizeTags(in.Tags), data); err != nil {
		if apperrors.Is(err, apperrors.CodeConflict) {
			return nil, apperrors.Wrap(apperrors.CodeConflict, "Invalid model references", err)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to create model", err)
	}

	s.log.Info("model created", zap.String("modelId", model.ID.String()), zap.String("userId", ownerID.String()))
	return s.detail(ctx, model.ID)
}

// Get returns a model visible to callerID (uuid.Nil for anonymous callers).
// Reads by anyone but the owner count as a view.
func (s *ModelService) Get(ctx context.Context, id, callerID uuid.UUID) (*ModelDetail, error) {
	model, err := s.models.FindDetailed(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch model", err)
	}
	if err := checkVisible(model, callerID); err != nil {
		return nil, err
	}

	if model.UserID != callerID {
		if err := s.models.IncrementViewCount(ctx, id); err != nil {
			s.log.Warn("failed to increment view count", zap.String("modelId", id.String()), zap.Error(err))
		} else {
			model.ViewCount++
		}
	}
	return newModelDetail(model), nil
}

func (s *ModelService) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter repositories.OwnerFilter, page, limit int) (*ModelPage, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	var (
		rows  []models.Model
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.models.ListByOwner(gctx, ownerID, filter, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.models.CountByOwner(gctx, ownerID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch models", err)
	}

	items := make([]ModelSummary, 0, len(rows))
	for i := range rows {
		items = append(items, newModelSummary(&rows[i], false))
	}
	return &ModelPage{Items: items, Pagination: pagination(page, limit, total)}, nil
}

func (s *ModelService) ListPublic(ctx context.Context, q PublicQuery, page, limit int) (*ModelPage, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	filter := repositories.PublicFilter{Search: q.Search}
	if slug := strings.TrimSpace(q.CategorySlug); slug != "" {
		category, err := s.categories.FindBySlug(ctx, slug)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch models", err)
		}
		// An unknown slug leaves the listing unfiltered.
		if category != nil {
			filter.CategoryID = &category.ID
		}
	}

	var (
		rows  []models.Model
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.models.ListPublic(gctx, filter, q.SortBy, offset, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.models.CountPublic(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch models", err)
	}

	items := make([]ModelSummary, 0, len(rows))
	for i := range rows {
		items = append(items, newModelSummary(&rows[i], true))
	}
	return &ModelPage{Items: items, Pagination: pagination(page, limit, total)}, nil
}

func (s *ModelService) Update(ctx context.Context, id, callerID uuid.UUID, in UpdateModelInput) (*ModelDetail, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	model, err := s.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": s.clock.Now()}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.InvalidArgument("Title cannot be empty")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = nullable(in.Description)
	}
	if in.IsPublic != nil {
		fields["is_public"] = *in.IsPublic
	}
	if in.ThumbnailKey != nil {
		key := strings.TrimSpace(*in.ThumbnailKey)
		if key != "" {
			if err := s.uploader.CheckThumbnailKey(ctx, key, callerID); err != nil {
				return nil, err
			}
		}
		fields["thumbnail_key"] = nullable(&key)
	}
	if in.ThumbnailURL != nil {
		fields["thumbnail_url"] = nullable(in.ThumbnailURL)
	}

	categoryID := model.CategoryID
	if in.CategoryID != nil {
		category, err := s.resolveCategory(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
		fields["category_id"] = categoryID
	}

	changes := repositories.ModelChanges{Fields: fields}
	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		changes.Tags = &tags
	}
	switch {
	case in.CustomData != nil:
		data, err := s.customDataFor(ctx, categoryID, *in.CustomData)
		if err != nil {
			return nil, err
		}
		changes.CustomData = &data
	case categoryID != model.CategoryID:
		// Values of the previous category's fields no longer apply.
		data := []models.ModelCustomData{}
		changes.CustomData = &data
	}

	if err := s.models.Update(ctx, id, changes); err != nil {
		if apperrors.Is(err, apperrors.CodeConflict) {
			return nil, apperrors.Wrap(apperrors.CodeConflict, "Invalid model references", err)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to update model", err)
	}
	return s.detail(ctx, id)
}

// Delete removes a model owned by callerID. Blob cleanup is best effort; the row is always removed.
func (s *ModelService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	model, err := s.owned(ctx, id, callerID)
	if err != nil {
		return err
	}

	thumbnailKey := ""
	if model.ThumbnailKey != nil {
		thumbnailKey = *model.ThumbnailKey
	}
	if err := s.uploader.DeleteModelFiles(ctx, model.ModelFileKey, thumbnailKey); err != nil {
		s.log.Error("failed to delete model files", zap.String("modelId", id.String()), zap.Error(err))
	}

	if err := s.models.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "Failed to delete model", err)
	}
	s.log.Info("model deleted", zap.String("modelId", id.String()), zap.String("userId", callerID.String()))
	return nil
}

// Download presigns the model file for callerID under the same visibility rules as Get.
func (s *ModelService) Download(ctx context.Context, id, callerID uuid.UUID) (*DownloadLink, error) {
	model, err := s.models.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch model", err)
	}
	if err := checkVisible(model, callerID); err != nil {
		return nil, err
	}

	filename := model.Title + "." + model.FileFormat
	if model.OriginalFileName != nil && *model.OriginalFileName != "" {
		filename = *model.OriginalFileName
	}
	link, err := s.uploader.DownloadURL(ctx, model.ModelFileKey, filename)
	if err != nil {
		return nil, err
	}

	if model.UserID != callerID {
		if err := s.models.IncrementDownloadCount(ctx, id); err != nil {
			s.log.Warn("failed to increment download count", zap.String("modelId", id.String()), zap.Error(err))
		}
	}
	return &DownloadLink{URL: link, Filename: filename, ExpiresIn: int(DownloadURLExpiry.Seconds())}, nil
}

func (s *ModelService) owned(ctx context.Context, id, callerID uuid.UUID) (*models.Model, error) {
	model, err := s.models.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch model", err)
	}
	if model == nil {
		return nil, apperrors.NotFound("Model not found")
	}
	if model.UserID != callerID {
		return nil, apperrors.Forbidden("You do not own this model")
	}
	return model, nil
}

func (s *ModelService) detail(ctx context.Context, id uuid.UUID) (*ModelDetail, error) {
	model, err := s.models.FindDetailed(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch model", err)
	}
	if model == nil {
		return nil, apperrors.NotFound("Model not found")
	}
	return newModelDetail(model), nil
}

func (s *ModelService) resolveCategory(ctx context.Context, raw string) (*models.Category, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperrors.InvalidArgument("Invalid category")
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch category", err)
	}
	if category == nil {
		return nil, apperrors.InvalidArgument("Invalid category")
	}
	return category, nil
}

func (s *ModelService) customDataFor(ctx context.Context, categoryID uuid.UUID, values map[string]string) ([]models.ModelCustomData, error) {
	fields, err := s.categories.ListFields(ctx, categoryID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to fetch custom fields", err)
	}
	return buildCustomData(fields, values, true)
}

func checkVisible(model *models.Model, callerID uuid.UUID) error {
	if model == nil {
		return apperrors.NotFound("Model not found")
	}
	if !model.IsPublic && model.UserID != callerID {
		return apperrors.Forbidden("You do not have access to this model")
	}
	return nil
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "Invalid input", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperrors.Wrap(apperrors.CodeInvalidArgument, "Missing required fields", err)
		}
	}
	return apperrors.Wrap(apperrors.CodeInvalidArgument, "Invalid field: "+verrs[0].Field(), err)
}

// normalizeTags trims, lowercases and de-duplicates tags, dropping empty ones.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func pagination(page, limit int, total int64) utils.Pagination {
	return utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}

// nullable maps an absent or blank string to NULL.
func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
