// Package testutil provides in-memory databases, fixtures and a controllable clock for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), repositories.GormConfig(zap.NewNop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every statement on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.CustomField{},
		&models.Model{},
		&models.ModelCustomData{},
	))
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, email, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:           email,
		Name:            name,
		Image:           "https://img.example.com/" + name + ".png",
		Provider:        "google",
		ProviderSubject: "sub-" + name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedCategory(t testing.TB, db *gorm.DB, name, slug string, order int) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug, DisplayOrder: order}
	require.NoError(t, db.Create(category).Error)
	return category
}

// SeedField adds a custom field to a category. options only apply to select fields.
func SeedField(t testing.TB, db *gorm.DB, categoryID uuid.UUID, name, fieldType string, required bool, order int, options ...string) *models.CustomField {
	t.Helper()
	field := &models.CustomField{
		CategoryID:   categoryID,
		FieldName:    name,
		FieldType:    fieldType,
		IsRequired:   required,
		DisplayOrder: order,
	}
	if len(options) > 0 {
		raw, err := json.Marshal(options)
		require.NoError(t, err)
		field.FieldOptions = datatypes.JSON(raw)
	}
	require.NoError(t, db.Create(field).Error)
	return field
}

// ModelFixture describes a model row inserted directly, bypassing services.
type ModelFixture struct {
	Title        string
	IsPublic     bool
	ThumbnailKey string
	ViewCount    int64
}

func SeedModel(t testing.TB, db *gorm.DB, owner *models.User, category *models.Category, f ModelFixture) *models.Model {
	t.Helper()
	model := &models.Model{
		UserID:        owner.ID,
		CategoryID:    category.ID,
		Title:         f.Title,
		IsPublic:      f.IsPublic,
		ModelFileKey:  fmt.Sprintf("models/%s/%s.glb", owner.ID, uuid.NewString()),
		FileFormat:    "glb",
		FileSize:      1024,
		ViewCount:    f.ViewCount,
	}
	model.ModelFileURL = "https://cdn.example.com/" + model.ModelFileKey
	if f.ThumbnailKey != "" {
		key := f.ThumbnailKey
		model.ThumbnailKey = &key
	}
	require.NoError(t, db.Omit("Owner", "Category", "Tags", "CustomData").Create(model).Error)
	return model
}
