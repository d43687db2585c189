package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	dbm "photowalk/internal/models/db_models"
	"photowalk/internal/models/request_models"
	"photowalk/internal/repositories"
	"photowalk/pkg/utils"
)

const walkPayload = `{
  "startLat": "35.6580992", "startLng": "139.7016358",
  "endLat": 35.6896067, "endLng": 139.7005713,
  "missions": [{"id":"m1","name":"古い建物","description":"歴史を感じる建築物を撮影","completed":true,"count":3,"targetCount":3}],
  "photos": [
    {"id":"client-1","missionName":"古い建物","lat":"35.66","lng":"139.70","timestamp":"2025-04-01T10:05:00Z"},
    {"id":"client-2","missionType":"favorite","lat":35.67,"lng":139.70,"imageUrl":"https://img/already.jpg"}
  ],
  "routes": [{"lat":35.66,"lng":139.70},{"lat":"35.67","lng":"139.70"}],
  "distance": "1234.5",
  "steps": "1500"
}`

func decodeWalk(t *testing.T, body string) request_models.CreateWalkRequest {
	t.Helper()
	var req request_models.CreateWalkRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestSaveWalkParsesDefensively(t *testing.T) {
	repos := newRepoSet(t)
	svc := NewWalkService(repos.walks, repos.uploads, nil, zap.NewNop())
	ctx := context.Background()

	resp := svc.SaveWalk(ctx, decodeWalk(t, walkPayload))
	require.NotNil(t, resp.Walk)
	assert.Empty(t, resp.Message)

	_, err := uuid.Parse(resp.Walk.ID)
	require.NoError(t, err)
	assert.InDelta(t, 35.6580992, resp.Walk.StartLat, 1e-9)
	require.NotNil(t, resp.Walk.Distance)
	assert.InDelta(t, 1234.5, *resp.Walk.Distance, 1e-9)
	require.NotNil(t, resp.Walk.Steps)
	assert.Equal(t, 1500, *resp.Walk.Steps)

	require.Len(t, resp.Walk.Missions, 1)
	assert.True(t, resp.Walk.Missions[0].Completed)

	require.Len(t, resp.Walk.Photos, 2)
	assert.Equal(t, "mission", resp.Walk.Photos[0].MissionType)
	assert.Equal(t, "favorite", resp.Walk.Photos[1].MissionType)
	assert.Len(t, resp.Walk.Routes, 2)

	stored, err := repos.walks.GetWalkById(ctx, resp.Walk.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Photos, 2)
	assert.Len(t, stored.Routes, 2)
}

func TestSaveWalkSyntheticSuccess(t *testing.T) {
	svc := NewWalkService(repositories.NewWalkRepository(nil), repositories.NewUploadedImageRepository(nil), nil, zap.NewNop())

	resp := svc.SaveWalk(context.Background(), decodeWalk(t, walkPayload))
	assert.True(t, resp.Success)
	assert.Equal(t, "散歩データを記録しました", resp.Message)
	require.NotNil(t, resp.Walk)
	assert.NotEmpty(t, resp.Walk.ID)
}

func TestListWalksDegraded(t *testing.T) {
	svc := NewWalkService(repositories.NewWalkRepository(nil), repositories.NewUploadedImageRepository(nil), nil, zap.NewNop())

	resp := svc.ListWalks(context.Background())
	assert.NotNil(t, resp.Walks)
	assert.Empty(t, resp.Walks)
	assert.Equal(t, "データベース接続エラーのため履歴を表示できません", resp.Message)

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"walks":[],"message":"データベース接続エラーのため履歴を表示できません"}`, string(out))
}

func TestListWalksJoinsUploadedImages(t *testing.T) {
	repos := newRepoSet(t)
	svc := NewWalkService(repos.walks, repos.uploads, nil, zap.NewNop()).(*WalkService)
	ctx := context.Background()

	// upload raced ahead of the walk save
	require.NoError(t, repos.uploads.SaveUploadedImage(ctx, &dbm.UploadedImage{
		PhotoID: "client-1", ImageURL: "https://img/client-1.jpg",
	}))

	svc.now = func() time.Time { return time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC) }
	first := svc.SaveWalk(ctx, decodeWalk(t, walkPayload))
	require.Empty(t, first.Message)
	second := svc.SaveWalk(ctx, decodeWalk(t, `{"missions": "not-json", "photos": [], "routes": []}`))
	require.Empty(t, second.Message)

	require.NoError(t, repos.walks.CreateWalk(ctx, &dbm.Walk{BaseModel: dbm.BaseModel{CreatedAt: 1}}))

	resp := svc.ListWalks(ctx)
	assert.Empty(t, resp.Message)
	require.Len(t, resp.Walks, 3)

	idx := -1
	for i, w := range resp.Walks {
		if w.ID == first.Walk.ID {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	photos := resp.Walks[idx].Photos
	require.Len(t, photos, 2)
	assert.Equal(t, "https://img/client-1.jpg", photos[0].ImageURL, "filled from side table")
	assert.Equal(t, "https://img/already.jpg", photos[1].ImageURL)

	// oldest row last
	assert.Equal(t, int64(1), resp.Walks[2].CreatedAt)
	assert.Empty(t, resp.Walks[2].Missions)
}

func TestSaveWalkNonFiniteNumbersDefault(t *testing.T) {
	repos := newRepoSet(t)
	svc := NewWalkService(repos.walks, repos.uploads, nil, zap.NewNop())
	ctx := context.Background()

	resp := svc.SaveWalk(ctx, decodeWalk(t, `{"startLat":"NaN","startLng":"139.7","distance":"Infinity","routes":[{"lat":"-Inf","lng":139.7}]}`))
	require.NotNil(t, resp.Walk)
	assert.Zero(t, resp.Walk.StartLat)
	assert.InDelta(t, 139.7, resp.Walk.StartLng, 1e-9)
	assert.Nil(t, resp.Walk.Distance)
	require.Len(t, resp.Walk.Routes, 1)
	assert.Zero(t, resp.Walk.Routes[0].Lat)

	_, err := json.Marshal(resp)
	require.NoError(t, err)
}

func TestGetWalk(t *testing.T) {
	repos := newRepoSet(t)
	svc := NewWalkService(repos.walks, repos.uploads, nil, zap.NewNop())
	ctx := context.Background()

	saved := svc.SaveWalk(ctx, decodeWalk(t, walkPayload))
	require.NotNil(t, saved.Walk)
	require.NoError(t, repos.uploads.SaveUploadedImage(ctx, &dbm.UploadedImage{
		PhotoID: "client-1", ImageURL: "https://img/client-1.jpg",
	}))

	got, err := svc.GetWalk(ctx, saved.Walk.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Walk.ID, got.ID)
	require.Len(t, got.Photos, 2)
	assert.Equal(t, "https://img/client-1.jpg", got.Photos[0].ImageURL)

	_, err = svc.GetWalk(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = svc.GetWalk(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	offline := NewWalkService(repositories.NewWalkRepository(nil), repositories.NewUploadedImageRepository(nil), nil, zap.NewNop())
	_, err = offline.GetWalk(ctx, saved.Walk.ID)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}
