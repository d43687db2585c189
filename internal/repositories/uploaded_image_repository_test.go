package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photowalk/internal/infra/infratest"
	dbm "photowalk/internal/models/db_models"
)

func strPtr(s string) *string { return &s }

func TestUploadedImagesSideTable(t *testing.T) {
	repo := NewUploadedImageRepository(infratest.NewDB(t))
	ctx := context.Background()

	seed := []dbm.UploadedImage{
		{BaseModel: dbm.BaseModel{CreatedAt: 1}, PhotoID: "p1", ImageURL: "https://img/p1-old.jpg", WalkID: strPtr("w1")},
		{BaseModel: dbm.BaseModel{CreatedAt: 2}, PhotoID: "p1", ImageURL: "https://img/p1-new.jpg", WalkID: strPtr("w1")},
		{BaseModel: dbm.BaseModel{CreatedAt: 3}, PhotoID: "p2", ImageURL: "https://img/p2.jpg"},
	}
	for i := range seed {
		require.NoError(t, repo.SaveUploadedImage(ctx, &seed[i]))
	}

	all, err := repo.ListUploadedImages(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forWalk, err := repo.ListUploadedImages(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, forWalk, 2)

	latest, err := repo.FindLatestByPhotoIds(ctx, []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "https://img/p1-new.jpg", latest["p1"].ImageURL)
	assert.Equal(t, "https://img/p2.jpg", latest["p2"].ImageURL)

	n, err := repo.ClearUploadedImages(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.ClearUploadedImages(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err = repo.ListUploadedImages(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFindLatestByPhotoIdsEmpty(t *testing.T) {
	latest, err := NewUploadedImageRepository(nil).FindLatestByPhotoIds(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, latest)
}
