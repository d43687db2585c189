package mem

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photowalk/internal/walk"
)

func newTestSessions(ttl time.Duration) (*Sessions, *time.Time) {
	clock := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	s := NewSessions(ttl)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestSessionsExpire(t *testing.T) {
	store, clock := newTestSessions(time.Hour)
	session := walk.NewSession(walk.DefaultMissions())
	store.Set(session)

	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)

	*clock = clock.Add(2 * time.Hour)
	_, ok = store.Get(session.ID)
	assert.False(t, ok)
}

func TestSessionsUpdateExtendsLifetime(t *testing.T) {
	store, clock := newTestSessions(time.Hour)
	session := walk.NewSession(walk.DefaultMissions())
	store.Set(session)

	*clock = clock.Add(50 * time.Minute)
	require.NoError(t, store.Update(session.ID, func(s *walk.Session) error {
		s.RecordRoutePoint(walk.Location{Lat: 35.6, Lng: 139.7}, time.Time{})
		return nil
	}))

	*clock = clock.Add(50 * time.Minute)
	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Len(t, got.Route, 1)
}

func TestSessionsUpdateErrors(t *testing.T) {
	store, _ := newTestSessions(time.Hour)
	assert.ErrorIs(t, store.Update("missing", func(*walk.Session) error { return nil }), ErrSessionExpired)

	session := walk.NewSession(walk.DefaultMissions())
	store.Set(session)
	boom := errors.New("boom")
	assert.ErrorIs(t, store.Update(session.ID, func(*walk.Session) error { return boom }), boom)
}

func TestSessionsSweep(t *testing.T) {
	store, clock := newTestSessions(time.Hour)
	old := walk.NewSession(walk.DefaultMissions())
	store.Set(old)

	*clock = clock.Add(30 * time.Minute)
	fresh := walk.NewSession(walk.DefaultMissions())
	store.Set(fresh)

	*clock = clock.Add(45 * time.Minute)
	assert.Equal(t, 1, store.Sweep())

	_, ok := store.Get(fresh.ID)
	assert.True(t, ok)
	store.Delete(fresh.ID)
	_, ok = store.Get(fresh.ID)
	assert.False(t, ok)
}

func TestConcurrentCapturesCountOnce(t *testing.T) {
	store, _ := newTestSessions(time.Hour)
	session := walk.NewSession(walk.DefaultMissions())
	store.Set(session)
	missionID := session.Missions[0].ID
	loc := &walk.Location{Lat: 35.6, Lng: 139.7}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Update(session.ID, func(s *walk.Session) error {
				_, err := s.RecordCapture(missionID, loc)
				return err
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, walk.TargetCount, accepted)
	got, _ := store.Get(session.ID)
	assert.True(t, got.Missions[0].Completed)
	assert.Equal(t, walk.TargetCount, got.Missions[0].Count)
}

func TestSessionsGetReturnsCopy(t *testing.T) {
	store, _ := newTestSessions(time.Hour)
	session := walk.NewSession(walk.DefaultMissions())
	store.Set(session)

	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.NotSame(t, session, got)
	got.Missions[0].Count = 99

	again, _ := store.Get(session.ID)
	assert.Equal(t, 0, again.Missions[0].Count)
}

func TestSessionsConsumeOnce(t *testing.T) {
	store, clock := newTestSessions(time.Hour)
	session := walk.NewSession(walk.DefaultMissions())
	store.Set(session)

	var wg sync.WaitGroup
	var mu sync.Mutex
	consumed := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, err := store.Consume(session.ID); err == nil {
				mu.Lock()
				consumed++
				mu.Unlock()
				assert.Equal(t, session.ID, got.ID)
			} else {
				assert.ErrorIs(t, err, ErrSessionExpired)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, consumed)
	_, ok := store.Get(session.ID)
	assert.False(t, ok)

	expired := walk.NewSession(walk.DefaultMissions())
	store.Set(expired)
	*clock = clock.Add(2 * time.Hour)
	_, err := store.Consume(expired.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestInFlight(t *testing.T) {
	f := NewInFlight()
	require.True(t, f.TryAcquire("10.0.0.1|POST /photos"))
	assert.False(t, f.TryAcquire("10.0.0.1|POST /photos"))
	assert.True(t, f.TryAcquire("10.0.0.2|POST /photos"))
	assert.Equal(t, 2, f.Len())

	f.Release("10.0.0.1|POST /photos")
	assert.True(t, f.TryAcquire("10.0.0.1|POST /photos"))
}
