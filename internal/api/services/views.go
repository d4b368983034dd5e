package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/meshvault/internal/models"
)

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type OwnerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

// CustomValue is one custom field value joined with its definition.
type CustomValue struct {
	FieldID   uuid.UUID `json:"fieldId"`
	FieldName string    `json:"fieldName"`
	FieldType string    `json:"fieldType"`
	Value     string    `json:"value"`
}

// ModelDetail is the full record returned by single-model reads and writes.
type ModelDetail struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"userId"`
	Title            string        `json:"title"`
	Description      *string       `json:"description"`
	CategoryID       uuid.UUID     `json:"categoryId"`
	Category         CategoryRef   `json:"category"`
	Owner            OwnerRef      `json:"owner"`
	IsPublic         bool          `json:"isPublic"`
	ModelFileKey     string        `json:"modelFileKey"`
	ModelFileURL     string        `json:"modelFileUrl"`
	FileSize         int64         `json:"fileSize"`
	FileFormat       string        `json:"fileFormat"`
	OriginalFileName *string       `json:"originalFileName"`
	ThumbnailKey     *string       `json:"thumbnailKey"`
	ThumbnailURL     *string       `json:"thumbnailUrl"`
	PolygonCount     *int          `json:"polygonCount"`
	VertexCount      *int          `json:"vertexCount"`
	TextureCount     *int          `json:"textureCount"`
	AnimationCount   int           `json:"animationCount"`
	ViewCount        int64         `json:"viewCount"`
	DownloadCount    int64         `json:"downloadCount"`
	Tags             []string      `json:"tags"`
	CustomData       []CustomValue `json:"customData"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// ModelSummary is a listing row. Owner is only set in the public listing.
type ModelSummary struct {
	ID            uuid.UUID   `json:"id"`
	Title         string      `json:"title"`
	Description   *string     `json:"description"`
	Category      CategoryRef `json:"category"`
	Owner         *OwnerRef   `json:"owner,omitempty"`
	IsPublic      bool        `json:"isPublic"`
	ThumbnailURL  *string     `json:"thumbnailUrl"`
	FileFormat    string      `json:"fileFormat"`
	FileSize      int64       `json:"fileSize"`
	ViewCount     int64       `json:"viewCount"`
	DownloadCount int64       `json:"downloadCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// DownloadLink is a presigned URL for fetching a model file.
type DownloadLink struct {
	URL       string `json:"url"`
	Filename  string `json:"filename"`
	ExpiresIn int    `json:"expiresIn"`
}

func newModelDetail(m *models.Model) *ModelDetail {
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		tags = append(tags, t.Name)
	}
	values := make([]CustomValue, 0, len(m.CustomData))
	for _, d := range m.CustomData {
		values = append(values, CustomValue{
			FieldID:   d.FieldID,
			FieldName: d.Field.FieldName,
			FieldType: d.Field.FieldType,
			Value:     d.FieldValue,
		})
	}

	return &ModelDetail{
		ID:               m.ID,
		UserID:           m.UserID,
		Title:            m.Title,
		Description:      m.Description,
		CategoryID:       m.CategoryID,
		Category:         CategoryRef{ID: m.Category.ID, Name: m.Category.Name, Slug: m.Category.Slug},
		Owner:            OwnerRef{ID: m.Owner.ID, Name: m.Owner.Name, Image: m.Owner.Image},
		IsPublic:         m.IsPublic,
		ModelFileKey:     m.ModelFileKey,
		ModelFileURL:     m.ModelFileURL,
		FileSize:         m.FileSize,
		FileFormat:       m.FileFormat,
		OriginalFileName: m.OriginalFileName,
		ThumbnailKey:     m.ThumbnailKey,
		ThumbnailURL:     m.ThumbnailURL,
		PolygonCount:     m.PolygonCount,
		VertexCount:      m.VertexCount,
		TextureCount:     m.TextureCount,
		AnimationCount:   m.AnimationCount,
		ViewCount:        m.ViewCount,
		DownloadCount:    m.DownloadCount,
		Tags:             tags,
		CustomData:       values,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func newModelSummary(m *models.Model, withOwner bool) ModelSummary {
	s := ModelSummary{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      CategoryRef{ID: m.Category.ID, Name: m.Category.Name, Slug: m.Category.Slug},
		IsPublic:      m.IsPublic,
		ThumbnailURL:  m.ThumbnailURL,
		FileFormat:    m.FileFormat,
		FileSize:      m.FileSize,
		ViewCount:     m.ViewCount,
		DownloadCount: m.DownloadCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if withOwner {
		s.Owner = &OwnerRef{ID: m.Owner.ID, Name: m.Owner.Name, Image: m.Owner.Image}
	}
	return s
}
