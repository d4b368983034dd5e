package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/storage"
	"github.com/rohits-web03/meshvault/internal/testutil"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	store      *storage.MemoryStore
	clock      *testutil.Clock
	uploader   *Uploader
	models     *ModelService
	categories *CategoryService
	repo       *repositories.GormModelRepository

	owner    *models.User
	other    *models.User
	category *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStore("https://cdn.example.com")
	clock := testutil.NewClock(epoch, time.Second)
	log := zap.NewNop()

	repo := repositories.NewModelRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	uploader := NewUploader(store, repo, clock, log)

	return &fixture{
		db:         db,
		store:      store,
		clock:      clock,
		uploader:   uploader,
		models:     NewModelService(repo, categoryRepo, uploader, clock, log),
		categories: NewCategoryService(categoryRepo),
		repo:       repo,
		owner:      testutil.SeedUser(t, db, "u1@example.com", "u1"),
		other:      testutil.SeedUser(t, db, "u2@example.com", "u2"),
		category:   testutil.SeedCategory(t, db, "Furniture", "furniture", 1),
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.CodeOf(err), err.Error())
}
