package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"photowalk/internal/infra/infratest"
	dbm "photowalk/internal/models/db_models"
)

func newWalk(createdAt int64) *dbm.Walk {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	return &dbm.Walk{
		BaseModel: dbm.BaseModel{CreatedAt: createdAt},
		StartLat:  35.6580992,
		StartLng:  139.7016358,
		EndLat:    35.6896067,
		EndLng:    139.7005713,
		Missions:  datatypes.JSON(`[{"id":"m1","name":"古い建物"}]`),
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		Photos: []dbm.Photo{
			{ClientID: "client-1", MissionType: "mission", MissionName: "古い建物", Lat: 35.66, Lng: 139.70, Timestamp: now.Add(10 * time.Minute)},
			{ClientID: "client-2", MissionType: "favorite", Lat: 35.67, Lng: 139.70, Timestamp: now.Add(5 * time.Minute)},
		},
		Routes: []dbm.WalkRoute{
			{Lat: 35.66, Lng: 139.70, Timestamp: now},
			{Lat: 35.67, Lng: 139.70, Timestamp: now.Add(time.Minute)},
			{Lat: 35.68, Lng: 139.70, Timestamp: now.Add(2 * time.Minute)},
		},
	}
}

func TestCreateWalkPersistsChildren(t *testing.T) {
	db := infratest.NewDB(t)
	repo := NewWalkRepository(db)
	ctx := context.Background()

	walk := newWalk(0)
	require.NoError(t, repo.CreateWalk(ctx, walk))
	require.NotEqual(t, uuid.Nil, walk.ID)
	require.Len(t, walk.Photos, 2)

	got, err := repo.GetWalkById(ctx, walk.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Photos, 2)
	require.Len(t, got.Routes, 3)
	for i, r := range got.Routes {
		assert.Equal(t, i, r.Seq)
		assert.Equal(t, walk.ID, r.WalkID)
	}
	assert.JSONEq(t, `[{"id":"m1","name":"古い建物"}]`, string(got.Missions))
}

func TestListWalksNewestFirst(t *testing.T) {
	db := infratest.NewDB(t)
	repo := NewWalkRepository(db)
	ctx := context.Background()

	older := newWalk(1_000)
	newer := newWalk(2_000)
	require.NoError(t, repo.CreateWalk(ctx, older))
	require.NoError(t, repo.CreateWalk(ctx, newer))

	walks, err := repo.ListWalksNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, walks, 2)
	assert.Equal(t, newer.ID, walks[0].ID)
	assert.Equal(t, older.ID, walks[1].ID)

	// photos come back in capture order
	require.Len(t, walks[0].Photos, 2)
	assert.Equal(t, "client-2", walks[0].Photos[0].ClientID)
}

func TestGetWalkByIdMissing(t *testing.T) {
	repo := NewWalkRepository(infratest.NewDB(t))

	got, err := repo.GetWalkById(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoriesWithoutDatabase(t *testing.T) {
	ctx := context.Background()

	assert.ErrorIs(t, NewWalkRepository(nil).CreateWalk(ctx, newWalk(0)), ErrNoDatabase)
	_, err := NewWalkRepository(nil).ListWalksNewestFirst(ctx)
	assert.ErrorIs(t, err, ErrNoDatabase)
	assert.ErrorIs(t, NewPhotoRepository(nil).AttachImageURL(ctx, "p", "u"), ErrNoDatabase)
	_, err = NewUploadedImageRepository(nil).ListUploadedImages(ctx, "")
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestAttachImageURL(t *testing.T) {
	db := infratest.NewDB(t)
	walks := NewWalkRepository(db)
	photos := NewPhotoRepository(db)
	ctx := context.Background()

	walk := newWalk(0)
	require.NoError(t, walks.CreateWalk(ctx, walk))

	t.Run("by client id", func(t *testing.T) {
		require.NoError(t, photos.AttachImageURL(ctx, "client-1", "https://img/1.jpg"))

		var p dbm.Photo
		require.NoError(t, db.Where("client_id = ?", "client-1").First(&p).Error)
		assert.Equal(t, "https://img/1.jpg", p.ImageURL)
	})

	t.Run("by row id", func(t *testing.T) {
		rowID := walk.Photos[1].ID.String()
		require.NoError(t, photos.AttachImageURL(ctx, rowID, "https://img/2.jpg"))

		var p dbm.Photo
		require.NoError(t, db.Where("id = ?", walk.Photos[1].ID).First(&p).Error)
		assert.Equal(t, "https://img/2.jpg", p.ImageURL)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := photos.AttachImageURL(ctx, "nope", "https://img/3.jpg")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestListPhotosWithoutImage(t *testing.T) {
	db := infratest.NewDB(t)
	ctx := context.Background()

	walk := newWalk(0)
	require.NoError(t, NewWalkRepository(db).CreateWalk(ctx, walk))
	require.NoError(t, NewPhotoRepository(db).AttachImageURL(ctx, "client-1", "https://img/1.jpg"))

	missing, err := NewPhotoRepository(db).ListPhotosWithoutImage(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "client-2", missing[0].ClientID)
}
