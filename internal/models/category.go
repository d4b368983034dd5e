package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description  *string   `json:"description"`
	Icon         *string   `json:"icon"`
	DisplayOrder int       `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Supported custom field types.
const (
	FieldTypeText    = "text"
	FieldTypeNumber  = "number"
	FieldTypeSelect  = "select"
	FieldTypeDate    = "date"
	FieldTypeURL     = "url"
	FieldTypeBoolean = "boolean"
)

// CustomField is a per-category attribute definition.
type CustomField struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CategoryID   uuid.UUID      `json:"categoryId" gorm:"type:uuid;not null;index"`
	Category     Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	FieldName    string         `json:"fieldName" gorm:"not null"`
	FieldType    string         `json:"fieldType" gorm:"not null"`
	FieldOptions datatypes.JSON `json:"fieldOptions,omitempty"`
	IsRequired   bool           `json:"isRequired" gorm:"not null;default:false"`
	DisplayOrder int            `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}

func (f *CustomField) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
