package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is a single uploaded 3D asset.
type Model struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	Owner            User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CategoryID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Category         Category          `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Title            string            `gorm:"not null"`
	Description      *string
	IsPublic         bool              `gorm:"not null;default:false;index"`
	ModelFileKey     string            `gorm:"not null"`
	ModelFileURL     string            `gorm:"column:model_file_url;not null"`
	FileSize         int64             `gorm:"not null"`
	FileFormat       string            `gorm:"not null"`
	OriginalFileName *string
	ThumbnailKey     *string
	ThumbnailURL     *string           `gorm:"column:thumbnail_url"`
	PolygonCount     *int
	VertexCount      *int
	TextureCount     *int
	AnimationCount   int               `gorm:"not null;default:0"`
	ViewCount        int64             `gorm:"not null;default:0"`
	DownloadCount    int64             `gorm:"not null;default:0"`
	Tags             []Tag             `gorm:"many2many:model_tags;constraint:OnDelete:CASCADE"`
	CustomData       []ModelCustomData `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"index"`
	UpdatedAt        time.Time
}

func (m *Model) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ModelCustomData holds the value of one custom field for one model.
type ModelCustomData struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ModelID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_model_custom_data_model_field"`
	FieldID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_model_custom_data_model_field"`
	Field      CustomField `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE"`
	FieldValue string      `gorm:"not null"`
	CreatedAt  time.Time   `gorm:"autoCreateTime"`
}

func (ModelCustomData) TableName() string {
	return "model_custom_data"
}

func (d *ModelCustomData) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
