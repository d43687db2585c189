package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	dbm "photowalk/internal/models/db_models"
	"photowalk/internal/repositories"
)

func TestReconcileBackfillsImageURLs(t *testing.T) {
	repos := newRepoSet(t)
	ctx := context.Background()

	record := &dbm.Walk{
		Photos: []dbm.Photo{
			{ClientID: "client-a", MissionType: "mission"},
			{ClientID: "client-b", MissionType: "favorite"},
			{ClientID: "client-c", MissionType: "mission", ImageURL: "https://img/keep.jpg"},
		},
	}
	require.NoError(t, repos.walks.CreateWalk(ctx, record))

	require.NoError(t, repos.uploads.SaveUploadedImage(ctx, &dbm.UploadedImage{PhotoID: "client-a", ImageURL: "https://img/a.jpg"}))
	require.NoError(t, repos.uploads.SaveUploadedImage(ctx, &dbm.UploadedImage{PhotoID: "client-c", ImageURL: "https://img/c-new.jpg"}))

	svc := NewReconcileService(repos.photos, repos.uploads, nil, zap.NewNop())

	n, err := svc.ReconcileOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.ReconcileOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	stored, err := repos.walks.GetWalkById(ctx, record.ID.String())
	require.NoError(t, err)
	urls := map[string]string{}
	for _, p := range stored.Photos {
		urls[p.ClientID] = p.ImageURL
	}
	assert.Equal(t, "https://img/a.jpg", urls["client-a"])
	assert.Empty(t, urls["client-b"])
	assert.Equal(t, "https://img/keep.jpg", urls["client-c"])
}

func TestReconcileWithoutDatabase(t *testing.T) {
	svc := NewReconcileService(repositories.NewPhotoRepository(nil), repositories.NewUploadedImageRepository(nil), nil, zap.NewNop())

	_, err := svc.ReconcileOnce(context.Background())
	assert.ErrorIs(t, err, repositories.ErrNoDatabase)
}

type countingReconciler struct{ calls atomic.Int32 }

func (c *countingReconciler) ReconcileOnce(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) Sweep() int {
	c.calls.Add(1)
	return 0
}

func TestSchedulerRunsJobs(t *testing.T) {
	reconciler := &countingReconciler{}
	sweeper := &countingSweeper{}

	sched, err := NewScheduler(reconciler, sweeper, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sched.Start())
	t.Cleanup(func() { _ = sched.Stop() })

	assert.Eventually(t, func() bool {
		return reconciler.calls.Load() >= 2 && sweeper.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	reconciler := &countingReconciler{}
	sched, err := NewScheduler(reconciler, &countingSweeper{}, 0, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sched.Start())
	require.NoError(t, sched.Stop())

	assert.Zero(t, reconciler.calls.Load())
}
