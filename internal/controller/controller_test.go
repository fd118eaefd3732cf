package controller

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/jacksmith/profiles/internal/logging"
	"github.com/jacksmith/profiles/internal/model"
	"github.com/jacksmith/profiles/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (*Controller, *store.ProfileStore) {
	t.Helper()
	s := store.New()
	return New(logging.Discard(), s), s
}

func TestSaveCreatesWhenNoID(t *testing.T) {
	c, s := newController(t)

	p, ok := c.Save(model.Profile{Name: "Ana", Email: "a@x.com"})
	require.True(t, ok)
	assert.Equal(t, 1, p.ID)

	stored, found := s.Get(1)
	require.True(t, found)
	assert.Equal(t, p, stored)
}

func TestSaveUpdatesWhenIDSet(t *testing.T) {
	c, s := newController(t)

	p, _ := c.Save(model.Profile{Name: "Ana", Email: "a@x.com"})
	p.Phone = "555"

	got, ok := c.Save(p)
	require.True(t, ok)
	assert.Equal(t, p, got)

	stored, _ := s.Get(p.ID)
	assert.Equal(t, "555", stored.Phone)
	assert.Len(t, s.Snapshot(), 1, "update must not append")
}

func TestSaveUnknownIDIsNoOp(t *testing.T) {
	c, s := newController(t)
	c.Save(model.Profile{Name: "Ana"})
	before := s.Snapshot()

	_, ok := c.Save(model.Profile{ID: 9, Name: "ghost"})
	assert.False(t, ok)
	assert.Equal(t, before, s.Snapshot())
}

func TestSaveDoesNotValidate(t *testing.T) {
	c, _ := newController(t)

	p, ok := c.Save(model.Profile{})
	assert.True(t, ok, "the core stores any well-typed value")
	assert.Equal(t, 1, p.ID)
}

func TestDelete(t *testing.T) {
	c, s := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	assert.True(t, c.Delete(p))
	_, found := s.Get(p.ID)
	assert.False(t, found)

	assert.False(t, c.Delete(p))
}

func TestToggleFavoriteTwiceRestores(t *testing.T) {
	c, s := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	on, ok := c.ToggleFavorite(p)
	require.True(t, ok)
	assert.True(t, on.IsFavorite)

	// Toggle with the stale value: applies to the latest stored record
	off, ok := c.ToggleFavorite(p)
	require.True(t, ok)
	assert.False(t, off.IsFavorite)

	stored, _ := s.Get(p.ID)
	assert.Equal(t, p, stored)
}

func TestToggleFavoriteKeepsLatestFields(t *testing.T) {
	c, s := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	edited := p
	edited.Bio = "edited elsewhere"
	c.Save(edited)

	// p is stale: the edit above must survive the toggle
	got, ok := c.ToggleFavorite(p)
	require.True(t, ok)
	assert.True(t, got.IsFavorite)
	assert.Equal(t, "edited elsewhere", got.Bio)

	stored, _ := s.Get(p.ID)
	assert.Equal(t, got, stored)
}

func TestToggleFavoriteMissing(t *testing.T) {
	c, _ := newController(t)
	_, ok := c.ToggleFavorite(model.Profile{ID: 3})
	assert.False(t, ok)
}

func TestConcurrentTogglesLoseNothing(t *testing.T) {
	c, s := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ToggleFavorite(p)
		}()
	}
	wg.Wait()

	stored, _ := s.Get(p.ID)
	assert.False(t, stored.IsFavorite, "an even number of toggles cancels out")
}

func TestCurrentStartsEmpty(t *testing.T) {
	c, _ := newController(t)
	assert.Equal(t, Lookup{}, c.CurrentProfile())
}

func TestLoadPublishesFound(t *testing.T) {
	c, _ := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	c.Load(context.Background(), p.ID)
	require.NoError(t, c.Wait())

	cur := c.CurrentProfile()
	assert.True(t, cur.Found)
	assert.Equal(t, p.ID, cur.ID)
	assert.Equal(t, p, cur.Profile)
}

func TestLoadPublishesAbsent(t *testing.T) {
	c, _ := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	c.Load(context.Background(), p.ID)
	require.NoError(t, c.Wait())

	c.Load(context.Background(), 42)
	require.NoError(t, c.Wait())

	cur := c.CurrentProfile()
	assert.False(t, cur.Found)
	assert.Equal(t, 42, cur.ID)
	assert.Equal(t, model.Profile{}, cur.Profile)
}

func TestLoadCancelledPublishesNothing(t *testing.T) {
	c, _ := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.Load(ctx, p.ID)
	require.NoError(t, c.Wait())
	assert.Equal(t, Lookup{}, c.CurrentProfile())
}

func TestLoadNotifiesSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, _ := newController(t)
	p, _ := c.Save(model.Profile{Name: "Ana"})

	cur := c.Current(ctx)
	assert.Equal(t, Lookup{}, <-cur)

	c.Load(ctx, p.ID)
	got := <-cur
	assert.True(t, got.Found)
	assert.Equal(t, "Ana", got.Profile.Name)
	require.NoError(t, c.Wait())
}

func TestProfilesStreamFollowsCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, _ := newController(t)
	profiles := c.Profiles(ctx)
	assert.Empty(t, <-profiles)

	p, _ := c.Save(model.Profile{Name: "Ana", Email: "a@x.com"})
	snap := <-profiles
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].ID)

	c.ToggleFavorite(p)
	snap = <-profiles
	require.Len(t, snap, 1)
	assert.True(t, snap[0].IsFavorite)

	c.Delete(p)
	assert.Empty(t, <-profiles)

	again, _ := c.Save(model.Profile{Name: "Ana", Email: "a@x.com"})
	assert.Equal(t, 2, again.ID)
	snap = <-profiles
	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].ID)
}

func TestMissingProfilesLogBelowWarn(t *testing.T) {
	var logs bytes.Buffer
	log, err := logging.New(&logs, slog.LevelWarn, logging.FormatText)
	require.NoError(t, err)
	c := New(log, store.New())

	_, ok := c.Save(model.Profile{ID: 9, Name: "ghost"})
	assert.False(t, ok)
	assert.False(t, c.Delete(model.Profile{ID: 9}))
	_, ok = c.ToggleFavorite(model.Profile{ID: 9})
	assert.False(t, ok)
	c.Load(context.Background(), 9)
	require.NoError(t, c.Wait())

	assert.Empty(t, logs.String(), "a missing profile is an expected outcome, not a warning")
}
