package repositories_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/meshvault/internal/apperrors"
	"github.com/rohits-web03/meshvault/internal/models"
	"github.com/rohits-web03/meshvault/internal/repositories"
	"github.com/rohits-web03/meshvault/internal/testutil"
)

func TestModelRepositoryCreateWithTagsAndCustomData(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	owner := testutil.SeedUser(t, db, "u1@example.com", "u1")
	category := testutil.SeedCategory(t, db, "Vehicles", "vehicles", 1)
	scale := testutil.SeedField(t, db, category.ID, "scale", models.FieldTypeNumber, false, 1)

	model := &models.Model{
		UserID:       owner.ID,
		CategoryID:   category.ID,
		Title:        "Truck",
		ModelFileKey: "models/" + owner.ID.String() + "/a.glb",
		ModelFileURL: "https://cdn.example.com/a.glb",
		FileFormat:   "glb",
	}
	data := []models.ModelCustomData{{FieldID: scale.ID, FieldValue: "1.5"}}
	require.NoError(t, repo.Create(ctx, model, []string{"wheels", "red"}, data))
	require.NotEqual(t, uuid.Nil, model.ID)

	got, err := repo.FindDetailed(ctx, model.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Vehicles", got.Category.Name)
	assert.Equal(t, "u1", got.Owner.Name)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "red", got.Tags[0].Name)
	assert.Equal(t, "wheels", got.Tags[1].Name)
	require.Len(t, got.CustomData, 1)
	assert.Equal(t, "scale", got.CustomData[0].Field.FieldName)
	assert.Equal(t, "1.5", got.CustomData[0].FieldValue)
}

func TestModelRepositoryCreateRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)
	owner := testutil.SeedUser(t, db, "u1@example.com", "u1")

	model := &models.Model{
		UserID:       owner.ID,
		CategoryID:   uuid.New(),
		Title:        "Orphan",
		ModelFileKey: "models/x.glb",
		ModelFileURL: "https://cdn.example.com/x.glb",
		FileFormat:   "glb",
	}
	err := repo.Create(ctx, model, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestModelRepositoryFindMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	got, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindDetailed(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestModelRepositoryListPublic(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	owner := testutil.SeedUser(t, db, "u1@example.com", "u1")
	chars := testutil.SeedCategory(t, db, "Characters", "characters", 1)
	props := testutil.SeedCategory(t, db, "Props", "props", 2)

	testutil.SeedModel(t, db, owner, chars, testutil.ModelFixture{Title: "Knight", IsPublic: true, ViewCount: 5})
	testutil.SeedModel(t, db, owner, chars, testutil.ModelFixture{Title: "knight sketch", IsPublic: true, ViewCount: 9})
	testutil.SeedModel(t, db, owner, props, testutil.ModelFixture{Title: "Knight Shield", IsPublic: true, ViewCount: 1})
	testutil.SeedModel(t, db, owner, chars, testutil.ModelFixture{Title: "Secret Knight", IsPublic: false, ViewCount: 100})

	t.Run("only public rows", func(t *testing.T) {
		rows, err := repo.ListPublic(ctx, repositories.PublicFilter{}, repositories.SortCreatedAt, 0, 10)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		for _, r := range rows {
			assert.True(t, r.IsPublic)
			assert.Equal(t, "u1", r.Owner.Name)
		}

		total, err := repo.CountPublic(ctx, repositories.PublicFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
	})

	t.Run("search is case sensitive", func(t *testing.T) {
		filter := repositories.PublicFilter{Search: "Knight"}
		rows, err := repo.ListPublic(ctx, filter, repositories.SortCreatedAt, 0, 10)
		require.NoError(t, err)
		titles := make([]string, 0, len(rows))
		for _, r := range rows {
			titles = append(titles, r.Title)
		}
		assert.ElementsMatch(t, []string{"Knight", "Knight Shield"}, titles)
	})

	t.Run("category filter and view sort", func(t *testing.T) {
		filter := repositories.PublicFilter{CategoryID: &chars.ID}
		rows, err := repo.ListPublic(ctx, filter, repositories.SortViewCount, 0, 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "knight sketch", rows[0].Title)
		assert.Equal(t, "Knight", rows[1].Title)
	})

	t.Run("paging", func(t *testing.T) {
		rows, err := repo.ListPublic(ctx, repositories.PublicFilter{}, repositories.SortViewCount, 2, 2)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Knight Shield", rows[0].Title)
	})
}

func TestModelRepositoryListByOwner(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	u1 := testutil.SeedUser(t, db, "u1@example.com", "u1")
	u2 := testutil.SeedUser(t, db, "u2@example.com", "u2")
	category := testutil.SeedCategory(t, db, "Props", "props", 1)

	testutil.SeedModel(t, db, u1, category, testutil.ModelFixture{Title: "Mine public", IsPublic: true})
	testutil.SeedModel(t, db, u1, category, testutil.ModelFixture{Title: "Mine private"})
	testutil.SeedModel(t, db, u2, category, testutil.ModelFixture{Title: "Theirs", IsPublic: true})

	rows, err := repo.ListByOwner(ctx, u1.ID, repositories.OwnerFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, u1.ID, r.UserID)
	}

	private := false
	filter := repositories.OwnerFilter{IsPublic: &private}
	rows, err = repo.ListByOwner(ctx, u1.ID, filter, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mine private", rows[0].Title)

	total, err := repo.CountByOwner(ctx, u1.ID, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestModelRepositoryUpdateReplacesTags(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	owner := testutil.SeedUser(t, db, "u1@example.com", "u1")
	category := testutil.SeedCategory(t, db, "Props", "props", 1)
	model := testutil.SeedModel(t, db, owner, category, testutil.ModelFixture{Title: "Lamp"})

	tags := []string{"old", "shared"}
	require.NoError(t, repo.Update(ctx, model.ID, repositories.ModelChanges{Tags: &tags}))

	tags = []string{"shared", "new"}
	changes := repositories.ModelChanges{
		Fields: map[string]any{"title": "Desk lamp", "is_public": true},
		Tags:   &tags,
	}
	require.NoError(t, repo.Update(ctx, model.ID, changes))

	got, err := repo.FindDetailed(ctx, model.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", got.Title)
	assert.True(t, got.IsPublic)
	require.Len(t, got.Tags, 2)
	assert.Equal(t, "new", got.Tags[0].Name)
	assert.Equal(t, "shared", got.Tags[1].Name)

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 3, tagCount, "tags are shared and never deleted")
}

func TestModelRepositoryCounters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	owner := testutil.SeedUser(t, db, "u1@example.com", "u1")
	category := testutil.SeedCategory(t, db, "Props", "props", 1)
	model := testutil.SeedModel(t, db, owner, category, testutil.ModelFixture{Title: "Chair", ViewCount: 3})

	require.NoError(t, repo.IncrementViewCount(ctx, model.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, model.ID))
	require.NoError(t, repo.IncrementDownloadCount(ctx, model.ID))

	got, err := repo.FindByID(ctx, model.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.ViewCount)
	assert.EqualValues(t, 1, got.DownloadCount)
	assert.True(t, got.UpdatedAt.Equal(model.UpdatedAt), "counters do not touch updated_at")
}

func TestModelRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	owner := testutil.SeedUser(t, db, "u1@example.com", "u1")
	category := testutil.SeedCategory(t, db, "Props", "props", 1)
	field := testutil.SeedField(t, db, category.ID, "material", models.FieldTypeText, false, 1)
	model := testutil.SeedModel(t, db, owner, category, testutil.ModelFixture{Title: "Table"})

	tags := []string{"wood"}
	data := []models.ModelCustomData{{FieldID: field.ID, FieldValue: "oak"}}
	require.NoError(t, repo.Update(ctx, model.ID, repositories.ModelChanges{Tags: &tags, CustomData: &data}))

	require.NoError(t, repo.Delete(ctx, model.ID))

	got, err := repo.FindByID(ctx, model.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var links, values int64
	require.NoError(t, db.Table("model_tags").Where("model_id = ?", model.ID).Count(&links).Error)
	require.NoError(t, db.Model(&models.ModelCustomData{}).Where("model_id = ?", model.ID).Count(&values).Error)
	assert.Zero(t, links)
	assert.Zero(t, values)
}

func TestModelRepositoryThumbnailOwners(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewModelRepository(db)

	u1 := testutil.SeedUser(t, db, "u1@example.com", "u1")
	u2 := testutil.SeedUser(t, db, "u2@example.com", "u2")
	category := testutil.SeedCategory(t, db, "Props", "props", 1)
	testutil.SeedModel(t, db, u1, category, testutil.ModelFixture{Title: "A", ThumbnailKey: "thumbnails/shared.png"})
	testutil.SeedModel(t, db, u1, category, testutil.ModelFixture{Title: "B", ThumbnailKey: "thumbnails/shared.png"})
	testutil.SeedModel(t, db, u2, category, testutil.ModelFixture{Title: "C", ThumbnailKey: "thumbnails/other.png"})

	owners, err := repo.ThumbnailOwners(ctx, "thumbnails/shared.png")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{u1.ID}, owners)

	owners, err = repo.ThumbnailOwners(ctx, "thumbnails/unused.png")
	require.NoError(t, err)
	assert.Empty(t, owners)
}
